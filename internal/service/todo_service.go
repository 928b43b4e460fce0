package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mwarren/todoapp/internal/logger"
	"github.com/mwarren/todoapp/internal/models"
	"github.com/mwarren/todoapp/internal/storage"
	"github.com/mwarren/todoapp/internal/validation"
)

// TodoService owns all todo business rules. Every operation takes the
// authenticated user's id and never touches rows outside that scope.
type TodoService struct {
	todos storage.TodoStore
	log   *logger.Logger
}

func NewTodoService(todos storage.TodoStore, log *logger.Logger) *TodoService {
	return &TodoService{todos: todos, log: log}
}

type CreateTodoRequest struct {
	Title       string
	Description string
	Priority    models.Priority
	DueDate     *time.Time
}

// UpdateTodoRequest carries a partial update: nil pointers mean "leave
// the field alone". DueDateSet distinguishes clearing the due date from
// not mentioning it.
type UpdateTodoRequest struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *models.Priority
	DueDate     *time.Time
	DueDateSet  bool
}

func (s *TodoService) List(ctx context.Context, userID string, filter models.TodoFilter) ([]*models.Todo, error) {
	todos, err := s.todos.ListByUser(ctx, userID, filter)
	if err != nil {
		s.log.Error("Failed to list todos: %v", err)
		return nil, models.NewServerError("Failed to retrieve todos")
	}
	return todos, nil
}

func (s *TodoService) GetByID(ctx context.Context, userID, id string) (*models.Todo, error) {
	todo, err := s.todos.GetByID(ctx, id, userID)
	if err != nil {
		s.log.Error("Failed to get todo %s: %v", id, err)
		return nil, models.NewServerError("Failed to retrieve todo")
	}
	// Missing and foreign-owned look identical so ids can't be probed
	// across accounts.
	if todo == nil {
		return nil, models.NewNotFoundError("Todo not found")
	}
	return todo, nil
}

func (s *TodoService) Create(ctx context.Context, userID string, req CreateTodoRequest) (*models.Todo, error) {
	if req.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}

	title := validation.SanitizeString(req.Title)
	if length := utf8.RuneCountInString(title); length < 3 || length > 100 {
		return nil, models.NewValidationError("Title must be between 3 and 100 characters")
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, models.NewValidationError("Priority must be one of: low, medium, high")
	}

	now := time.Now()
	todo := &models.Todo{
		ID:          uuid.New().String(),
		Title:       title,
		Description: validation.SanitizeString(req.Description),
		Completed:   false,
		Priority:    priority,
		DueDate:     req.DueDate,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.todos.Create(ctx, todo); err != nil {
		s.log.Error("Failed to create todo: %v", err)
		return nil, models.NewServerError("Failed to create todo")
	}

	return todo, nil
}

func (s *TodoService) Update(ctx context.Context, userID, id string, req UpdateTodoRequest) (*models.Todo, error) {
	todo, err := s.todos.GetByID(ctx, id, userID)
	if err != nil {
		s.log.Error("Failed to get todo %s for update: %v", id, err)
		return nil, models.NewServerError("Failed to update todo")
	}
	if todo == nil {
		return nil, models.NewNotFoundError("Todo not found")
	}

	if req.Title != nil {
		title := validation.SanitizeString(*req.Title)
		if length := utf8.RuneCountInString(title); length < 3 || length > 100 {
			return nil, models.NewValidationError("Title must be between 3 and 100 characters")
		}
		todo.Title = title
	}
	if req.Description != nil {
		todo.Description = validation.SanitizeString(*req.Description)
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, models.NewValidationError("Priority must be one of: low, medium, high")
		}
		todo.Priority = *req.Priority
	}
	if req.DueDateSet {
		todo.DueDate = req.DueDate
	}

	ok, err := s.todos.Update(ctx, todo)
	if err != nil {
		s.log.Error("Failed to update todo %s: %v", id, err)
		return nil, models.NewServerError("Failed to update todo")
	}
	if !ok {
		return nil, models.NewNotFoundError("Todo not found")
	}

	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, userID, id string) error {
	ok, err := s.todos.Delete(ctx, id, userID)
	if err != nil {
		s.log.Error("Failed to delete todo %s: %v", id, err)
		return models.NewServerError("Failed to delete todo")
	}
	if !ok {
		return models.NewNotFoundError("Todo not found")
	}
	return nil
}
