package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Todo struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type envelope struct {
	Success bool            `json:"success"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// Client talks to the todo API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

func (c *Client) do(method, path string, body interface{}) (*envelope, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequest(method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("unexpected response from server (status %d)", resp.StatusCode)
	}

	if !env.Success {
		if env.Error != "" {
			return nil, fmt.Errorf("%s", env.Error)
		}
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	return &env, nil
}

func (c *Client) Register(name, email, password string) (*AuthResponse, error) {
	env, err := c.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := json.Unmarshal(env.Data, &auth); err != nil {
		return nil, err
	}
	c.token = auth.Token
	return &auth, nil
}

func (c *Client) Login(email, password string) (*AuthResponse, error) {
	env, err := c.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := json.Unmarshal(env.Data, &auth); err != nil {
		return nil, err
	}
	c.token = auth.Token
	return &auth, nil
}

// ListTodos fetches the caller's todos. All filter fields are optional.
func (c *Client) ListTodos(completed, priority, sort string) ([]Todo, error) {
	query := url.Values{}
	if completed != "" {
		query.Set("completed", completed)
	}
	if priority != "" {
		query.Set("priority", priority)
	}
	if sort != "" {
		query.Set("sort", sort)
	}

	path := "/api/todos"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	env, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var todos []Todo
	if err := json.Unmarshal(env.Data, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (c *Client) GetTodo(id string) (*Todo, error) {
	env, err := c.do(http.MethodGet, "/api/todos/"+id, nil)
	if err != nil {
		return nil, err
	}

	var todo Todo
	if err := json.Unmarshal(env.Data, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) CreateTodo(title, description, priority, dueDate string) (*Todo, error) {
	body := map[string]string{"title": title}
	if description != "" {
		body["description"] = description
	}
	if priority != "" {
		body["priority"] = priority
	}
	if dueDate != "" {
		body["dueDate"] = dueDate
	}

	env, err := c.do(http.MethodPost, "/api/todos", body)
	if err != nil {
		return nil, err
	}

	var todo Todo
	if err := json.Unmarshal(env.Data, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// UpdateTodo sends only the supplied fields. Nil pointers are omitted
// from the request body and those fields keep their stored values.
func (c *Client) UpdateTodo(id string, fields map[string]interface{}) (*Todo, error) {
	env, err := c.do(http.MethodPut, "/api/todos/"+id, fields)
	if err != nil {
		return nil, err
	}

	var todo Todo
	if err := json.Unmarshal(env.Data, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) ToggleTodo(id string, completed bool) (*Todo, error) {
	return c.UpdateTodo(id, map[string]interface{}{"completed": completed})
}

func (c *Client) DeleteTodo(id string) error {
	_, err := c.do(http.MethodDelete, "/api/todos/"+id, nil)
	return err
}
