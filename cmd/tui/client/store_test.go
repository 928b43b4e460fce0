package client

import "testing"

func sampleTodos() []Todo {
	return []Todo{
		{ID: "a", Title: "First", Completed: false},
		{ID: "b", Title: "Second", Completed: true},
		{ID: "c", Title: "Third", Completed: false},
	}
}

func TestStore_AddPrepends(t *testing.T) {
	s := NewStore()
	s.SetAll(sampleTodos())

	s.Add(Todo{ID: "d", Title: "Newest"})

	if s.Todos()[0].ID != "d" {
		t.Errorf("new todo at index 0 = %s, want d", s.Todos()[0].ID)
	}
	if len(s.Todos()) != 4 {
		t.Errorf("len = %d, want 4", len(s.Todos()))
	}
}

func TestStore_ApplyReplacesInPlace(t *testing.T) {
	s := NewStore()
	s.SetAll(sampleTodos())

	s.Apply(Todo{ID: "b", Title: "Second edited", Completed: false})

	if s.Todos()[1].Title != "Second edited" {
		t.Errorf("title = %q", s.Todos()[1].Title)
	}
	if len(s.Todos()) != 3 {
		t.Errorf("apply changed list length to %d", len(s.Todos()))
	}

	// Unknown ids are a no-op.
	s.Apply(Todo{ID: "zzz", Title: "Ghost"})
	if len(s.Todos()) != 3 {
		t.Error("applying an unknown id changed the list")
	}
}

func TestStore_Remove(t *testing.T) {
	s := NewStore()
	s.SetAll(sampleTodos())

	s.Remove("b")

	if len(s.Todos()) != 2 {
		t.Fatalf("len = %d, want 2", len(s.Todos()))
	}
	for _, todo := range s.Todos() {
		if todo.ID == "b" {
			t.Error("removed todo still present")
		}
	}
}

func TestStore_Filtered(t *testing.T) {
	s := NewStore()
	s.SetAll(sampleTodos())

	if got := len(s.Filtered("active")); got != 2 {
		t.Errorf("active count = %d, want 2", got)
	}
	if got := len(s.Filtered("completed")); got != 1 {
		t.Errorf("completed count = %d, want 1", got)
	}
	if got := len(s.Filtered("all")); got != 3 {
		t.Errorf("all count = %d, want 3", got)
	}
}

func TestStore_ErrorClearsOnLoad(t *testing.T) {
	s := NewStore()
	s.SetError("network down")

	if s.Err() == "" || s.Loading() {
		t.Fatal("SetError should record the error and stop loading")
	}

	s.SetLoading(true)
	if s.Err() != "" {
		t.Error("starting a load should clear the previous error")
	}
}
