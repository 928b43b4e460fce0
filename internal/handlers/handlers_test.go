package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mwarren/todoapp/internal/auth"
	"github.com/mwarren/todoapp/internal/logger"
	"github.com/mwarren/todoapp/internal/middleware"
	"github.com/mwarren/todoapp/internal/service"
	"github.com/mwarren/todoapp/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := logger.New("test")
	users := storage.NewMemoryUserStore()
	todos := storage.NewMemoryTodoStore()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	authHandler := NewAuthHandler(service.NewAuthService(users, jwtManager, log), log)
	todoHandler := NewTodoHandler(service.NewTodoService(todos, log), log)
	authMW := middleware.NewAuthMiddleware(jwtManager, users, log)

	srv := httptest.NewServer(NewRouter(authHandler, todoHandler, NewHealthHandler(), authMW, log))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (*http.Response, Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var envelope Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, envelope
}

func registerUser(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()

	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "secret123",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register returned %d, want 201 (error: %q)", resp.StatusCode, envelope.Error)
	}

	data := envelope.Data.(map[string]interface{})
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("register response has no token")
	}
	return token
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)

	registerUser(t, srv, "alice@example.com")

	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email":    "Alice@Example.COM",
		"password": "secret123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login returned %d, want 200", resp.StatusCode)
	}
	if !envelope.Success {
		t.Error("login envelope success = false")
	}
	data := envelope.Data.(map[string]interface{})
	user := data["user"].(map[string]interface{})
	if user["email"] != "alice@example.com" {
		t.Errorf("user email = %v, want lowercased alice@example.com", user["email"])
	}
	if _, ok := user["password"]; ok {
		t.Error("login response leaks a password field")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	srv := newTestServer(t)

	registerUser(t, srv, "bob@example.com")

	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"name":     "Bob Again",
		"email":    "bob@example.com",
		"password": "secret123",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate register returned %d, want 400", resp.StatusCode)
	}
	if envelope.Error != "User already exists with this email" {
		t.Errorf("error = %q", envelope.Error)
	}
}

func TestLogin_WrongPasswordAndUnknownEmailMatch(t *testing.T) {
	srv := newTestServer(t)

	registerUser(t, srv, "carol@example.com")

	_, wrongPass := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email":    "carol@example.com",
		"password": "not-the-password",
	})
	_, unknown := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever",
	})

	if wrongPass.Error != "Invalid credentials" || unknown.Error != wrongPass.Error {
		t.Errorf("login failures differ: %q vs %q", wrongPass.Error, unknown.Error)
	}
}

func TestRegister_InvalidBody(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/auth/register", bytes.NewBufferString("{not json"))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestTodos_RequireAuth(t *testing.T) {
	srv := newTestServer(t)

	resp, envelope := doJSON(t, http.MethodGet, srv.URL+"/api/todos", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if envelope.Error != "No authentication token provided" {
		t.Errorf("error = %q", envelope.Error)
	}
}

func TestTodoLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "dave@example.com")

	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/todos", token, map[string]string{
		"title":       "Buy groceries",
		"description": "milk and eggs",
		"priority":    "high",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create returned %d (error: %q)", resp.StatusCode, envelope.Error)
	}
	created := envelope.Data.(map[string]interface{})
	id := created["id"].(string)
	if created["completed"] != false {
		t.Error("new todo should start incomplete")
	}

	resp, envelope = doJSON(t, http.MethodGet, srv.URL+"/api/todos", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list returned %d", resp.StatusCode)
	}
	if envelope.Count == nil || *envelope.Count != 1 {
		t.Errorf("list count = %v, want 1", envelope.Count)
	}

	resp, envelope = doJSON(t, http.MethodPut, srv.URL+"/api/todos/"+id, token, map[string]interface{}{
		"completed": true,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update returned %d (error: %q)", resp.StatusCode, envelope.Error)
	}
	updated := envelope.Data.(map[string]interface{})
	if updated["completed"] != true {
		t.Error("update did not set completed")
	}
	if updated["title"] != "Buy groceries" {
		t.Errorf("partial update changed title to %v", updated["title"])
	}

	resp, envelope = doJSON(t, http.MethodDelete, srv.URL+"/api/todos/"+id, token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete returned %d", resp.StatusCode)
	}
	if envelope.Message != "Todo deleted successfully" {
		t.Errorf("delete message = %q", envelope.Message)
	}

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/todos/"+id, token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("fetch after delete returned %d, want 404", resp.StatusCode)
	}
}

func TestTodos_OwnerIsolation(t *testing.T) {
	srv := newTestServer(t)
	alice := registerUser(t, srv, "alice@example.com")
	mallory := registerUser(t, srv, "mallory@example.com")

	_, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/todos", alice, map[string]string{
		"title": "Private task",
	})
	id := envelope.Data.(map[string]interface{})["id"].(string)

	for _, tc := range []struct {
		method string
		body   interface{}
	}{
		{http.MethodGet, nil},
		{http.MethodPut, map[string]string{"title": "Hijacked task"}},
		{http.MethodDelete, nil},
	} {
		resp, envelope := doJSON(t, tc.method, srv.URL+"/api/todos/"+id, mallory, tc.body)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s as other user returned %d, want 404", tc.method, resp.StatusCode)
		}
		if envelope.Error != "Todo not found" {
			t.Errorf("%s error = %q", tc.method, envelope.Error)
		}
	}

	resp, envelope := doJSON(t, http.MethodGet, srv.URL+"/api/todos/"+id, alice, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner fetch returned %d", resp.StatusCode)
	}
	if envelope.Data.(map[string]interface{})["title"] != "Private task" {
		t.Error("todo was mutated by a non-owner request")
	}
}

func TestTodos_Filters(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "erin@example.com")

	for i, priority := range []string{"low", "high", "medium"} {
		_, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/todos", token, map[string]string{
			"title":    fmt.Sprintf("Task number %d", i),
			"priority": priority,
		})
		if i == 0 {
			id := envelope.Data.(map[string]interface{})["id"].(string)
			doJSON(t, http.MethodPut, srv.URL+"/api/todos/"+id, token, map[string]interface{}{"completed": true})
		}
	}

	_, envelope := doJSON(t, http.MethodGet, srv.URL+"/api/todos?completed=true", token, nil)
	if *envelope.Count != 1 {
		t.Errorf("completed=true count = %d, want 1", *envelope.Count)
	}

	_, envelope = doJSON(t, http.MethodGet, srv.URL+"/api/todos?priority=high", token, nil)
	if *envelope.Count != 1 {
		t.Errorf("priority=high count = %d, want 1", *envelope.Count)
	}

	_, envelope = doJSON(t, http.MethodGet, srv.URL+"/api/todos?completed=maybe", token, nil)
	if *envelope.Count != 2 {
		t.Errorf("non-true completed value selects incomplete todos, count = %d", *envelope.Count)
	}
}

func TestTodos_DueDateHandling(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "frank@example.com")

	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/todos", token, map[string]string{
		"title":   "Dated task",
		"dueDate": "2026-12-31",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create returned %d (error: %q)", resp.StatusCode, envelope.Error)
	}
	created := envelope.Data.(map[string]interface{})
	if created["dueDate"] == nil {
		t.Fatal("dueDate was not stored")
	}
	id := created["id"].(string)

	resp, envelope = doJSON(t, http.MethodPost, srv.URL+"/api/todos", token, map[string]string{
		"title":   "Bad date task",
		"dueDate": "next tuesday",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unparseable dueDate returned %d, want 400", resp.StatusCode)
	}
	if envelope.Error != "Invalid due date" {
		t.Errorf("error = %q", envelope.Error)
	}

	_, envelope = doJSON(t, http.MethodPut, srv.URL+"/api/todos/"+id, token, map[string]string{
		"dueDate": "",
	})
	if envelope.Data.(map[string]interface{})["dueDate"] != nil {
		t.Error("empty dueDate string should clear the due date")
	}
}

func TestTodos_DueDateNullVsAbsent(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "gina@example.com")

	_, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/todos", token, map[string]string{
		"title":   "Dated task",
		"dueDate": "2030-01-01",
	})
	id := envelope.Data.(map[string]interface{})["id"].(string)

	// A body without dueDate leaves the stored value alone.
	_, envelope = doJSON(t, http.MethodPut, srv.URL+"/api/todos/"+id, token, map[string]interface{}{
		"completed": true,
	})
	if envelope.Data.(map[string]interface{})["dueDate"] == nil {
		t.Fatal("absent dueDate key cleared the due date")
	}

	// An explicit null clears it.
	_, envelope = doJSON(t, http.MethodPut, srv.URL+"/api/todos/"+id, token, map[string]interface{}{
		"dueDate": nil,
	})
	if envelope.Data.(map[string]interface{})["dueDate"] != nil {
		t.Error("explicit null dueDate should clear the due date")
	}
}

func TestHealthAndRoot(t *testing.T) {
	srv := newTestServer(t)

	resp, envelope := doJSON(t, http.MethodGet, srv.URL+"/api/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health returned %d", resp.StatusCode)
	}
	if envelope.Data.(map[string]interface{})["status"] != "healthy" {
		t.Error("health status not healthy")
	}

	resp, envelope = doJSON(t, http.MethodGet, srv.URL+"/", "", nil)
	if resp.StatusCode != http.StatusOK || !envelope.Success {
		t.Errorf("root banner returned %d", resp.StatusCode)
	}
}
