package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mwarren/todoapp/internal/database"
	"github.com/mwarren/todoapp/internal/models"
)

type PostgresTodoStore struct {
	db *database.DBManager
}

func NewPostgresTodoStore(db *database.DBManager) *PostgresTodoStore {
	return &PostgresTodoStore{db: db}
}

const todoColumns = "id, title, description, completed, priority, due_date, user_id, created_at, updated_at"

func scanTodo(row pgx.Row) (*models.Todo, error) {
	var todo models.Todo
	err := row.Scan(
		&todo.ID,
		&todo.Title,
		&todo.Description,
		&todo.Completed,
		&todo.Priority,
		&todo.DueDate,
		&todo.UserID,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

func (s *PostgresTodoStore) Create(ctx context.Context, todo *models.Todo) error {
	query := `
		INSERT INTO todos (id, title, description, completed, priority, due_date, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.db.Write().Exec(ctx, query,
		todo.ID,
		todo.Title,
		todo.Description,
		todo.Completed,
		todo.Priority,
		todo.DueDate,
		todo.UserID,
		todo.CreatedAt,
		todo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}

	return nil
}

func (s *PostgresTodoStore) GetByID(ctx context.Context, id, userID string) (*models.Todo, error) {
	// A malformed id cannot match any row; treat it as not found instead
	// of letting the uuid cast surface as a server error.
	if uuid.Validate(id) != nil {
		return nil, nil
	}

	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1 AND user_id = $2`

	todo, err := scanTodo(s.db.Read().QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return todo, nil
}

func (s *PostgresTodoStore) ListByUser(ctx context.Context, userID string, filter models.TodoFilter) ([]*models.Todo, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + todoColumns + ` FROM todos WHERE user_id = $1`)

	args := []interface{}{userID}
	if filter.Completed != nil {
		args = append(args, *filter.Completed)
		fmt.Fprintf(&sb, " AND completed = $%d", len(args))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		fmt.Fprintf(&sb, " AND priority = $%d", len(args))
	}

	switch filter.Sort {
	case models.SortDueDate:
		sb.WriteString(" ORDER BY due_date ASC NULLS LAST")
	case models.SortPriority:
		sb.WriteString(" ORDER BY priority DESC")
	default:
		sb.WriteString(" ORDER BY created_at DESC")
	}

	rows, err := s.db.Read().Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]*models.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read todos: %w", err)
	}

	return todos, nil
}

func (s *PostgresTodoStore) Update(ctx context.Context, todo *models.Todo) (bool, error) {
	// clock_timestamp() rather than NOW() so updated_at strictly advances
	// on every save regardless of transaction boundaries.
	query := `
		UPDATE todos
		SET title = $1, description = $2, completed = $3, priority = $4, due_date = $5,
		    updated_at = clock_timestamp()
		WHERE id = $6 AND user_id = $7
		RETURNING updated_at
	`

	err := s.db.Write().QueryRow(ctx, query,
		todo.Title,
		todo.Description,
		todo.Completed,
		todo.Priority,
		todo.DueDate,
		todo.ID,
		todo.UserID,
	).Scan(&todo.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to update todo: %w", err)
	}

	return true, nil
}

func (s *PostgresTodoStore) Delete(ctx context.Context, id, userID string) (bool, error) {
	if uuid.Validate(id) != nil {
		return false, nil
	}

	tag, err := s.db.Write().Exec(ctx, `DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete todo: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
