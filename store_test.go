package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "tasks.json"))
}

func TestLoadMissingFile(t *testing.T) {
	store := tempStore(t)

	tasks, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected empty list, got %d tasks", len(tasks))
	}

	// Load provisions the backing file so a watcher has something to
	// attach to.
	if _, err := os.Stat(store.Path()); err != nil {
		t.Errorf("backing file was not created: %v", err)
	}
}

func TestLoadEmptyAndNullDocuments(t *testing.T) {
	for _, doc := range []string{"", "  \n", "null"} {
		store := tempStore(t)
		if err := os.WriteFile(store.Path(), []byte(doc), 0644); err != nil {
			t.Fatal(err)
		}

		tasks, err := store.Load()
		if err != nil {
			t.Errorf("Load(%q) failed: %v", doc, err)
		}
		if len(tasks) != 0 {
			t.Errorf("Load(%q) = %d tasks, want 0", doc, len(tasks))
		}
	}
}

func TestLoadGarbageDocument(t *testing.T) {
	store := tempStore(t)
	if err := os.WriteFile(store.Path(), []byte("not json{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := store.Load()

	var readErr *StoreReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("Load error = %v, want StoreReadError", err)
	}
	if readErr.Path != store.Path() {
		t.Errorf("error path = %q, want %q", readErr.Path, store.Path())
	}
}

func TestLoadUnknownStateToken(t *testing.T) {
	store := tempStore(t)
	doc := `[{"id":1,"name":"x","state":"blocked","created_at":"2025-03-01T09:00:00Z"}]`
	if err := os.WriteFile(store.Path(), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := store.Load()

	var stateErr *InvalidStateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("Load error = %v, want InvalidStateError", err)
	}
	if stateErr.Token != "blocked" {
		t.Errorf("error token = %q, want %q", stateErr.Token, "blocked")
	}
}

func TestSaveSortsByID(t *testing.T) {
	store := tempStore(t)
	pinClock(t, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))

	unsorted := []Task{NewTask(3, "c"), NewTask(1, "a"), NewTask(2, "b")}

	saved, err := store.Save(unsorted)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	for i, id := range []int{1, 2, 3} {
		if saved[i].ID != id {
			t.Errorf("saved[%d].ID = %d, want %d", i, saved[i].ID, id)
		}
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	for i, id := range []int{1, 2, 3} {
		if loaded[i].ID != id {
			t.Errorf("loaded[%d].ID = %d, want %d", i, loaded[i].ID, id)
		}
	}
}

func TestSaveLoadFixedPoint(t *testing.T) {
	store := tempStore(t)
	pinClock(t, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))

	if _, err := store.Add("first"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Add("second"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Advance(0); err != nil {
		t.Fatal(err)
	}

	before, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}

	tasks, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save(tasks); err != nil {
		t.Fatal(err)
	}

	after, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}

	if string(before) != string(after) {
		t.Errorf("save(load()) changed the document:\nbefore:\n%s\nafter:\n%s", before, after)
	}
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	store := tempStore(t)

	for i, name := range []string{"wash dishes", "walk dog", "write tests"} {
		tasks, err := store.Add(name)
		if err != nil {
			t.Fatalf("Add(%q) failed: %v", name, err)
		}
		if len(tasks) != i+1 {
			t.Fatalf("after Add(%q): %d tasks, want %d", name, len(tasks), i+1)
		}
		last := tasks[len(tasks)-1]
		if last.ID != i+1 {
			t.Errorf("Add(%q) assigned id %d, want %d", name, last.ID, i+1)
		}
		if last.Name != name {
			t.Errorf("Add(%q) stored name %q", name, last.Name)
		}
		if last.State != StatePending {
			t.Errorf("Add(%q) stored state %q, want pending", name, last.State)
		}
	}
}

func TestAddReusesNoIDsAfterRemove(t *testing.T) {
	store := tempStore(t)

	if _, err := store.Add("a"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Add("b"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Remove(0); err != nil {
		t.Fatal(err)
	}

	tasks, err := store.Add("c")
	if err != nil {
		t.Fatal(err)
	}

	// Max id is 2, so the next task gets 3 even though 1 is free.
	if got := tasks[len(tasks)-1].ID; got != 3 {
		t.Errorf("new id = %d, want 3", got)
	}
}

func TestAdvancePersistsTimestamps(t *testing.T) {
	store := tempStore(t)
	started := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	pinClock(t, started)

	if _, err := store.Add("write report"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Advance(0); err != nil {
		t.Fatal(err)
	}

	tasks, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if tasks[0].State != StateStarted {
		t.Errorf("state = %q, want started", tasks[0].State)
	}
	if tasks[0].StartedAt == nil || !tasks[0].StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", tasks[0].StartedAt, started)
	}
}

func TestAdvanceOutOfRange(t *testing.T) {
	store := tempStore(t)

	if _, err := store.Add("only"); err != nil {
		t.Fatal(err)
	}

	for _, index := range []int{-1, 1, 99} {
		tasks, err := store.Advance(index)
		if err != nil {
			t.Errorf("Advance(%d) failed: %v", index, err)
		}
		if len(tasks) != 1 || tasks[0].State != StatePending {
			t.Errorf("Advance(%d) mutated the list", index)
		}
	}
}

func TestRemove(t *testing.T) {
	store := tempStore(t)

	if _, err := store.Add("first"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Add("second"); err != nil {
		t.Fatal(err)
	}

	tasks, err := store.Remove(0)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != 2 {
		t.Errorf("after Remove(0): %+v, want single task with id 2", tasks)
	}

	// Out of range is a no-op.
	tasks, err = store.Remove(5)
	if err != nil {
		t.Errorf("Remove(5) failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("Remove(5) mutated the list")
	}
}
