package ui

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mwarren/todoapp/cmd/tui/client"
)

func todoAPIStub(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/todos", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"count":1,"data":[{"id":"t1","title":"First","completed":false,"priority":"medium"}]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestModel_SavedSessionLoadsListOnInit(t *testing.T) {
	srv := todoAPIStub(t)

	apiClient := client.NewClient(srv.URL)
	apiClient.SetToken("saved-token")

	m := NewModel(apiClient)
	if m.currentView != ListView {
		t.Fatalf("currentView = %v, want ListView", m.currentView)
	}

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init returned no command; the list would stay empty until a keypress")
	}
	if !m.list.store.Loading() {
		t.Error("list is not marked loading")
	}

	msg := cmd()
	success, ok := msg.(listSuccessMsg)
	if !ok {
		t.Fatalf("command produced %T, want listSuccessMsg", msg)
	}
	if len(success.todos) != 1 || success.todos[0].Title != "First" {
		t.Errorf("unexpected todos: %+v", success.todos)
	}
}

func TestModel_LoginTriggersListLoad(t *testing.T) {
	srv := todoAPIStub(t)
	apiClient := client.NewClient(srv.URL)

	// Keep the saved-token file out of the real config dir.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	m := NewModel(apiClient)
	if m.currentView != LoginView {
		t.Fatalf("currentView = %v, want LoginView", m.currentView)
	}

	apiClient.SetToken("fresh-token")
	updated, cmd := m.Update(authSuccessMsg{token: "fresh-token", name: "Alice", email: "alice@example.com"})
	m = updated.(Model)

	if m.currentView != ListView {
		t.Fatalf("currentView after login = %v, want ListView", m.currentView)
	}
	if cmd == nil {
		t.Fatal("login did not return a command; the list would stay empty until a keypress")
	}

	if _, ok := cmd().(listSuccessMsg); !ok {
		t.Error("login's follow-up command did not fetch the list")
	}
}
