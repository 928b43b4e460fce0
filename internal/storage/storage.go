package storage

import (
	"context"
	"errors"

	"github.com/mwarren/todoapp/internal/models"
)

// ErrDuplicateEmail is returned by UserStore.Create when the email is
// already taken. Email uniqueness is enforced at the store so concurrent
// registrations cannot both succeed.
var ErrDuplicateEmail = errors.New("email already exists")

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	// GetByEmail and GetByID return (nil, nil) when no user matches.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// TodoStore is always accessed with an owning user id; a todo is never
// visible or mutable through any path that does not carry its owner.
type TodoStore interface {
	Create(ctx context.Context, todo *models.Todo) error
	// GetByID returns (nil, nil) when the todo does not exist or belongs
	// to another user. Callers cannot tell the two apart.
	GetByID(ctx context.Context, id, userID string) (*models.Todo, error)
	ListByUser(ctx context.Context, userID string, filter models.TodoFilter) ([]*models.Todo, error)
	// Update persists the todo's current fields and refreshes UpdatedAt,
	// which strictly advances on every successful save. Returns
	// (false, nil) when the row is gone or owned by someone else.
	Update(ctx context.Context, todo *models.Todo) (bool, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}
