package client

// Store holds the fetched todo list between refreshes. Mutations update
// it in place instead of refetching: Add prepends, Apply replaces the
// matching todo, Remove drops it.
type Store struct {
	todos   []Todo
	loading bool
	err     string
}

func NewStore() *Store {
	return &Store{todos: []Todo{}}
}

func (s *Store) Todos() []Todo {
	return s.todos
}

func (s *Store) Loading() bool {
	return s.loading
}

func (s *Store) Err() string {
	return s.err
}

func (s *Store) SetLoading(loading bool) {
	s.loading = loading
	if loading {
		s.err = ""
	}
}

func (s *Store) SetError(err string) {
	s.loading = false
	s.err = err
}

func (s *Store) SetAll(todos []Todo) {
	s.todos = todos
	s.loading = false
	s.err = ""
}

func (s *Store) Add(todo Todo) {
	s.todos = append([]Todo{todo}, s.todos...)
}

func (s *Store) Apply(todo Todo) {
	for i := range s.todos {
		if s.todos[i].ID == todo.ID {
			s.todos[i] = todo
			return
		}
	}
}

func (s *Store) Remove(id string) {
	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			return
		}
	}
}

// Filtered applies the all/active/completed view filter. It never hits
// the server; the filter is a view over the already-fetched list.
func (s *Store) Filtered(filter string) []Todo {
	switch filter {
	case "active":
		out := make([]Todo, 0, len(s.todos))
		for _, t := range s.todos {
			if !t.Completed {
				out = append(out, t)
			}
		}
		return out
	case "completed":
		out := make([]Todo, 0, len(s.todos))
		for _, t := range s.todos {
			if t.Completed {
				out = append(out, t)
			}
		}
		return out
	default:
		return s.todos
	}
}
