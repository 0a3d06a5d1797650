package main

import (
	"encoding/json"
	"fmt"
	"time"
)

// TaskState is a task's position in its lifecycle. States only ever
// move forward; Done is terminal.
type TaskState int

const (
	StatePending TaskState = iota
	StateStarted
	StateInProgress
	StateDone
)

// stateTokens is the textual form used for persistence and display.
var stateTokens = [...]string{
	StatePending:    "pending",
	StateStarted:    "started",
	StateInProgress: "in progress",
	StateDone:       "done",
}

// InvalidStateError reports a lifecycle token that is not one of the
// four known states. Decoding never falls back to Pending.
type InvalidStateError struct {
	Token string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid task state %q", e.Token)
}

func (s TaskState) String() string {
	if s < StatePending || s > StateDone {
		return "unknown"
	}
	return stateTokens[s]
}

// ParseTaskState decodes a textual lifecycle token.
func ParseTaskState(token string) (TaskState, error) {
	for state, t := range stateTokens {
		if t == token {
			return TaskState(state), nil
		}
	}
	return StatePending, &InvalidStateError{Token: token}
}

// Next returns the state one step forward. Done stays Done.
func (s TaskState) Next() TaskState {
	switch s {
	case StatePending:
		return StateStarted
	case StateStarted:
		return StateInProgress
	default:
		return StateDone
	}
}

func (s TaskState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TaskState) UnmarshalJSON(data []byte) error {
	var token string
	if err := json.Unmarshal(data, &token); err != nil {
		return err
	}

	state, err := ParseTaskState(token)
	if err != nil {
		return err
	}

	*s = state
	return nil
}

// Task is a single to-do item with identity, name, lifecycle state and
// derived timestamps
type Task struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	State      TaskState  `json:"state"`
	CreatedAt  time.Time  `json:"created_at"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// now is a variable so tests can pin the clock.
var now = time.Now

// NewTask creates a Pending task stamped with the current time.
func NewTask(id int, name string) Task {
	return Task{
		ID:        id,
		Name:      name,
		State:     StatePending,
		CreatedAt: now().UTC(),
	}
}

// Advance moves the task one lifecycle step forward. Entering Started
// or Done stamps the matching timestamp the first time that state is
// reached; an already-set timestamp is never overwritten. Advancing a
// Done task is a no-op.
func (t *Task) Advance() {
	if t.State == StateDone {
		return
	}

	t.State = t.State.Next()
	at := now().UTC()

	switch t.State {
	case StateStarted:
		if t.StartedAt == nil {
			t.StartedAt = &at
		}
	case StateDone:
		if t.FinishedAt == nil {
			t.FinishedAt = &at
		}
	}
}
