package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// nextEventMsg runs NextCmd with a deadline so a broken producer fails
// the test instead of hanging it.
func nextEventMsg(t *testing.T, source *EventSource, timeout time.Duration) tea.Msg {
	t.Helper()

	result := make(chan tea.Msg, 1)
	go func() { result <- source.NextCmd()() }()

	select {
	case msg := <-result:
		return msg
	case <-time.After(timeout):
		t.Fatal("no event before deadline")
		return nil
	}
}

func TestEventSourceTicks(t *testing.T) {
	dir := t.TempDir()
	source, err := NewEventSource(filepath.Join(dir, "tasks.json"), 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewEventSource failed: %v", err)
	}
	defer source.Close()
	source.Start()

	for i := 0; i < 3; i++ {
		msg := nextEventMsg(t, source, time.Second)
		if _, ok := msg.(TickMsg); !ok {
			t.Fatalf("event %d: got %T, want TickMsg", i, msg)
		}
	}
}

func TestEventSourceStoreChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")

	// A long tick interval keeps ticks out of the way.
	source, err := NewEventSource(path, time.Hour)
	if err != nil {
		t.Fatalf("NewEventSource failed: %v", err)
	}
	defer source.Close()
	source.Start()

	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	msg := nextEventMsg(t, source, 2*time.Second)
	changed, ok := msg.(StoreChangedMsg)
	if !ok {
		t.Fatalf("got %T, want StoreChangedMsg", msg)
	}
	if filepath.Clean(changed.Path) != path {
		t.Errorf("changed path = %q, want %q", changed.Path, path)
	}
}

func TestEventSourceIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")

	source, err := NewEventSource(path, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewEventSource failed: %v", err)
	}
	defer source.Close()
	source.Start()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	// Only ticks should come through; a StoreChangedMsg for the
	// sibling file would be a filtering bug.
	deadline := time.After(300 * time.Millisecond)
	for {
		select {
		case <-deadline:
			return
		default:
		}

		msg := nextEventMsg(t, source, time.Second)
		if _, ok := msg.(StoreChangedMsg); ok {
			t.Fatalf("sibling file write produced %v", msg)
		}
	}
}

func TestEventSourceClose(t *testing.T) {
	dir := t.TempDir()
	source, err := NewEventSource(filepath.Join(dir, "tasks.json"), time.Hour)
	if err != nil {
		t.Fatalf("NewEventSource failed: %v", err)
	}
	source.Start()

	if err := source.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	// After shutdown the consumer sees the closed channel, not a hang.
	msg := nextEventMsg(t, source, time.Second)
	if _, ok := msg.(SourceClosedMsg); !ok {
		t.Fatalf("got %T after Close, want SourceClosedMsg", msg)
	}

	// Close is safe to call again.
	source.Close()
}
