package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mwarren/todoapp/internal/models"
)

// MemoryUserStore keeps users in a mutex-guarded map. Used by tests and
// local development without a database.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users: make(map[string]*models.User),
	}
}

func (s *MemoryUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *MemoryUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *MemoryUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

// MemoryTodoStore keeps todos in a mutex-guarded map.
type MemoryTodoStore struct {
	mu    sync.RWMutex
	todos map[string]*models.Todo
}

func NewMemoryTodoStore() *MemoryTodoStore {
	return &MemoryTodoStore{
		todos: make(map[string]*models.Todo),
	}
}

func (s *MemoryTodoStore) Create(ctx context.Context, todo *models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *todo
	s.todos[todo.ID] = &copied
	return nil
}

func (s *MemoryTodoStore) GetByID(ctx context.Context, id, userID string) (*models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.todos[id]
	if !ok || t.UserID != userID {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (s *MemoryTodoStore) ListByUser(ctx context.Context, userID string, filter models.TodoFilter) ([]*models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Todo, 0)
	for _, t := range s.todos {
		if t.UserID != userID {
			continue
		}
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		copied := *t
		result = append(result, &copied)
	}

	switch filter.Sort {
	case models.SortDueDate:
		// Ascending; todos without a due date go last.
		sort.SliceStable(result, func(i, j int) bool {
			a, b := result[i].DueDate, result[j].DueDate
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.Before(*b)
		})
	case models.SortPriority:
		// Descending string order, same as the database collation:
		// medium > low > high.
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Priority > result[j].Priority
		})
	default:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	}

	return result, nil
}

func (s *MemoryTodoStore) Update(ctx context.Context, todo *models.Todo) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.todos[todo.ID]
	if !ok || existing.UserID != todo.UserID {
		return false, nil
	}

	copied := *todo
	copied.UpdatedAt = time.Now()
	// Wall clocks can be coarse; the save must still be observable.
	if !copied.UpdatedAt.After(existing.UpdatedAt) {
		copied.UpdatedAt = existing.UpdatedAt.Add(time.Nanosecond)
	}
	s.todos[todo.ID] = &copied
	todo.UpdatedAt = copied.UpdatedAt
	return true, nil
}

func (s *MemoryTodoStore) Delete(ctx context.Context, id, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok || t.UserID != userID {
		return false, nil
	}
	delete(s.todos, id)
	return true, nil
}
