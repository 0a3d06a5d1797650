package main

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

const defaultTickInterval = 200 * time.Millisecond

// TickMsg is the periodic wake-up. The controller is woken at least
// once per tick interval even with no user activity, so the display
// can reflect time-based or externally-changed state.
type TickMsg time.Time

// StoreChangedMsg is sent when the backing store file is modified,
// including by another process or a stray editor.
type StoreChangedMsg struct {
	Path string
}

// SourceClosedMsg is sent when the event source can no longer produce
// events. The interactive session cannot continue without it.
type SourceClosedMsg struct{}

// ErrEventSource is the fatal error the controller reports when the
// event channel closes unexpectedly.
var ErrEventSource = errors.New("event source failed")

// EventSource merges the tick and store-change notifications into one
// ordered channel. It is a single-producer/single-consumer pair: the
// producer goroutine only ever writes to the channel and never touches
// the store; the controller is the only reader.
type EventSource struct {
	interval  time.Duration
	storePath string
	watcher   *fsnotify.Watcher
	events    chan tea.Msg
	done      chan struct{}
	closeOnce sync.Once
}

// NewEventSource watches the store file's directory and prepares the
// tick loop. Start must be called before NextCmd.
func NewEventSource(storePath string, interval time.Duration) (*EventSource, error) {
	if interval <= 0 {
		interval = defaultTickInterval
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the parent directory: editors that replace the file via
	// rename would otherwise drop the watch.
	if err := w.Add(filepath.Dir(storePath)); err != nil {
		w.Close()
		return nil, err
	}

	return &EventSource{
		interval:  interval,
		storePath: filepath.Clean(storePath),
		watcher:   w,
		events:    make(chan tea.Msg, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start launches the producer goroutine. It runs for the lifetime of
// the interactive session and is torn down only at shutdown.
func (s *EventSource) Start() {
	go s.run()
}

func (s *EventSource) run() {
	defer close(s.events)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case t := <-ticker.C:
			if !s.send(TickMsg(t)) {
				return
			}

		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(ev.Name) != s.storePath {
				continue
			}

			relevant := ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) ||
				ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
			if !relevant {
				continue
			}

			if !s.send(StoreChangedMsg{Path: ev.Name}) {
				return
			}

		case _, ok := <-s.watcher.Errors:
			if !ok {
				return
			}

		case <-s.done:
			return
		}
	}
}

func (s *EventSource) send(msg tea.Msg) bool {
	select {
	case s.events <- msg:
		return true
	case <-s.done:
		return false
	}
}

// NextCmd returns a command that blocks for the next event. A closed
// channel means the producer died and the session must end.
func (s *EventSource) NextCmd() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-s.events
		if !ok {
			return SourceClosedMsg{}
		}
		return msg
	}
}

// Close tears the producer down at shutdown.
func (s *EventSource) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	return s.watcher.Close()
}
