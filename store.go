package main

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// StoreReadError means the backing file could not be opened or its
// bytes could not be decoded. A missing or empty file is not a read
// error; that is the first-run state.
type StoreReadError struct {
	Path string
	Err  error
}

func (e *StoreReadError) Error() string {
	return fmt.Sprintf("reading task store %s: %v", e.Path, e.Err)
}

func (e *StoreReadError) Unwrap() error {
	return e.Err
}

// StoreWriteError means the backing file could not be rewritten; the
// pending mutation is lost and the session cannot continue.
type StoreWriteError struct {
	Path string
	Err  error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("writing task store %s: %v", e.Path, e.Err)
}

func (e *StoreWriteError) Unwrap() error {
	return e.Err
}

// Store persists the task list as a single whole-document JSON file.
// It is the sole writer of the backing file; every mutation runs as
// load, compute, save with no in-memory cache in between.
type Store struct {
	path        string
	provisioned bool
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// provision creates the backing file and its parent directory. Runs at
// most once per Store.
func (s *Store) provision() error {
	if s.provisioned {
		return nil
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	f.Close()

	s.provisioned = true
	return nil
}

// Load reads the whole task document. A missing or empty file and a
// literal null document all decode to an empty list; anything else
// that fails to decode is a StoreReadError, except an unrecognized
// lifecycle token which surfaces as InvalidStateError.
func (s *Store) Load() ([]Task, error) {
	if err := s.provision(); err != nil {
		return nil, &StoreReadError{Path: s.path, Err: err}
	}

	data, err := os.ReadFile(s.path)

	if err != nil {
		return nil, &StoreReadError{Path: s.path, Err: err}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var tasks []Task

	if err := json.Unmarshal(data, &tasks); err != nil {
		var stateErr *InvalidStateError
		if errors.As(err, &stateErr) {
			return nil, stateErr
		}
		return nil, &StoreReadError{Path: s.path, Err: err}
	}

	return tasks, nil
}

// Save replaces the backing document with tasks sorted by ascending id
// and returns the sorted list so the caller's in-memory view matches
// what was persisted.
func (s *Store) Save(tasks []Task) ([]Task, error) {
	if err := s.provision(); err != nil {
		return nil, &StoreWriteError{Path: s.path, Err: err}
	}

	slices.SortFunc(tasks, func(a, b Task) int {
		return cmp.Compare(a.ID, b.ID)
	})

	data, err := json.MarshalIndent(tasks, "", "  ")

	if err != nil {
		return nil, &StoreWriteError{Path: s.path, Err: err}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return nil, &StoreWriteError{Path: s.path, Err: err}
	}

	return tasks, nil
}

// nextID returns one greater than the current maximum id, or 1 for an
// empty list.
func nextID(tasks []Task) int {
	id := 0
	for _, t := range tasks {
		if t.ID > id {
			id = t.ID
		}
	}
	return id + 1
}

// Add appends a new Pending task named name and persists the list.
func (s *Store) Add(name string) ([]Task, error) {
	tasks, err := s.Load()

	if err != nil {
		return nil, err
	}

	tasks = append(tasks, NewTask(nextID(tasks), name))

	return s.Save(tasks)
}

// Advance steps the task at index one lifecycle state forward and
// persists the list. An out-of-range index is a no-op.
func (s *Store) Advance(index int) ([]Task, error) {
	tasks, err := s.Load()

	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(tasks) {
		return tasks, nil
	}

	tasks[index].Advance()

	return s.Save(tasks)
}

// Remove deletes the task at index and persists the shortened list. An
// out-of-range index is a no-op.
func (s *Store) Remove(index int) ([]Task, error) {
	tasks, err := s.Load()

	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(tasks) {
		return tasks, nil
	}

	tasks = slices.Delete(tasks, index, index+1)

	return s.Save(tasks)
}
