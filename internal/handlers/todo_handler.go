package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mwarren/todoapp/internal/logger"
	"github.com/mwarren/todoapp/internal/middleware"
	"github.com/mwarren/todoapp/internal/models"
	"github.com/mwarren/todoapp/internal/service"
)

type TodoHandler struct {
	todos *service.TodoService
	log   *logger.Logger
}

func NewTodoHandler(todos *service.TodoService, log *logger.Logger) *TodoHandler {
	return &TodoHandler{todos: todos, log: log}
}

type createTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
}

type updateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Priority    *string `json:"priority"`
	// Raw so an explicit null is distinguishable from an absent key:
	// both null and "" clear the due date, absence leaves it alone.
	DueDate json.RawMessage `json:"dueDate"`
}

// List handles GET /api/todos. Any present completed value engages the
// filter; only the literal string "true" selects completed todos.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	query := r.URL.Query()
	filter := models.TodoFilter{
		Priority: models.Priority(query.Get("priority")),
		Sort:     query.Get("sort"),
	}
	if query.Has("completed") {
		completed := query.Get("completed") == "true"
		filter.Completed = &completed
	}

	todos, err := h.todos.List(r.Context(), userID, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeList(w, len(todos), todos)
}

// Get handles GET /api/todos/{id}.
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := chi.URLParam(r, "id")

	todo, err := h.todos.GetByID(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, todo)
}

// Create handles POST /api/todos.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	create := service.CreateTodoRequest{
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.Priority(req.Priority),
	}
	if req.DueDate != "" {
		due, err := parseDueDate(req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid due date")
			return
		}
		create.DueDate = &due
	}

	todo, err := h.todos.Create(r.Context(), userID, create)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusCreated, todo)
}

// Update handles PUT /api/todos/{id}. Absent fields are left alone; a
// null or empty-string dueDate clears the due date.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := chi.URLParam(r, "id")

	var req updateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := service.UpdateTodoRequest{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}
	if req.Priority != nil {
		priority := models.Priority(*req.Priority)
		update.Priority = &priority
	}
	if len(req.DueDate) > 0 {
		update.DueDateSet = true
		if string(req.DueDate) != "null" {
			var raw string
			if err := json.Unmarshal(req.DueDate, &raw); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid due date")
				return
			}
			if raw != "" {
				due, err := parseDueDate(raw)
				if err != nil {
					writeError(w, http.StatusBadRequest, "Invalid due date")
					return
				}
				update.DueDate = &due
			}
		}
	}

	todo, err := h.todos.Update(r.Context(), userID, id, update)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, todo)
}

// Delete handles DELETE /api/todos/{id}.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.todos.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, "Todo deleted successfully")
}

// parseDueDate accepts RFC 3339 timestamps and bare dates.
func parseDueDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
