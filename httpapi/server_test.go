package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jacentio/lattice/auth"
	"github.com/jacentio/lattice/hierarchy"
	"github.com/jacentio/lattice/internal/memstore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// recordingMailer captures sent messages for assertions.
type recordingMailer struct {
	subjects []string
	bodies   []string
	err      error
}

func (m *recordingMailer) Send(_ context.Context, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.subjects = append(m.subjects, subject)
	m.bodies = append(m.bodies, body)
	return nil
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	mailer *recordingMailer
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := hierarchy.New(memstore.New(), logger)
	tokens := auth.NewTokens([]byte("test-secret"), time.Hour)
	mailer := &recordingMailer{}

	return &testAPI{
		t:      t,
		router: New(engine, tokens, mailer, logger).Router(),
		mailer: mailer,
	}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			a.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) decode(w *httptest.ResponseRecorder, dst any) {
	a.t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		a.t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

// register creates an account and returns its bearer token.
func (a *testAPI) register(username string) string {
	a.t.Helper()

	w := a.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": username,
		"password": "long-enough-password",
	})
	if w.Code != http.StatusOK {
		a.t.Fatalf("register %s: expected 200, got %d: %s", username, w.Code, w.Body.String())
	}

	var out struct {
		Token string `json:"token"`
	}
	a.decode(w, &out)
	return out.Token
}

func (a *testAPI) createFolder(token, name string) string {
	a.t.Helper()

	w := a.do(http.MethodPost, "/api/folder", token, map[string]any{"name": name})
	if w.Code != http.StatusCreated {
		a.t.Fatalf("create folder %s: expected 201, got %d: %s", name, w.Code, w.Body.String())
	}

	var out struct {
		ID string `json:"id"`
	}
	a.decode(w, &out)
	return out.ID
}

func (a *testAPI) createList(token, name, container string) string {
	a.t.Helper()

	body := map[string]any{"name": name}
	if container != "" {
		body["container"] = container
	}
	w := a.do(http.MethodPost, "/api/todos", token, body)
	if w.Code != http.StatusCreated {
		a.t.Fatalf("create list %s: expected 201, got %d: %s", name, w.Code, w.Body.String())
	}

	var out struct {
		ID string `json:"id"`
	}
	a.decode(w, &out)
	return out.ID
}

func (a *testAPI) createTodo(token, listID, description string) string {
	a.t.Helper()

	w := a.do(http.MethodPost, "/api/todos/"+listID+"/todo", token, map[string]any{"description": description})
	if w.Code != http.StatusCreated {
		a.t.Fatalf("create todo: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var out struct {
		ID string `json:"id"`
	}
	a.decode(w, &out)
	return out.ID
}

func TestRegisterLoginVerify(t *testing.T) {
	api := newTestAPI(t)

	token := api.register("alice")

	w := api.do(http.MethodGet, "/api/auth/verify", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var p struct {
		Username string `json:"username"`
	}
	api.decode(w, &p)
	if p.Username != "alice" {
		t.Errorf("expected username %q, got %q", "alice", p.Username)
	}

	w = api.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "alice",
		"password": "long-enough-password",
	})
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = api.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "alice",
		"password": "wrong-password-here",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRegisterValidation(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"short username", map[string]any{"username": "ab", "password": "long-enough-password"}},
		{"non-alphanumeric username", map[string]any{"username": "al ice!", "password": "long-enough-password"}},
		{"short password", map[string]any{"username": "alice", "password": "short"}},
		{"missing password", map[string]any{"username": "alice"}},
	}

	for _, tt := range tests {
		w := api.do(http.MethodPost, "/api/auth/register", "", tt.body)
		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("%s: expected 422, got %d: %s", tt.name, w.Code, w.Body.String())
			continue
		}
		var out struct {
			Errors []string `json:"errors"`
		}
		api.decode(w, &out)
		if len(out.Errors) == 0 {
			t.Errorf("%s: expected field messages, got %s", tt.name, w.Body.String())
		}
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	api := newTestAPI(t)
	api.register("alice")

	w := api.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "alice",
		"password": "long-enough-password",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	var out struct {
		Message string `json:"message"`
	}
	api.decode(w, &out)
	if out.Message != "Username is not available" {
		t.Errorf("unexpected message %q", out.Message)
	}
}

func TestUnauthenticatedRequests(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/api/folder", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing token: expected 401, got %d", w.Code)
	}

	w = api.do(http.MethodGet, "/api/folder", "not-a-token", nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("garbage token: expected 403, got %d", w.Code)
	}
}

func TestFolderLifecycle(t *testing.T) {
	api := newTestAPI(t)
	token := api.register("alice")

	id := api.createFolder(token, "Work")

	w := api.do(http.MethodGet, "/api/folder/"+id, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = api.do(http.MethodPatch, "/api/folder/"+id, token, map[string]any{"description": "projects"})
	if w.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var folder struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	api.decode(w, &folder)
	if folder.Name != "Work" || folder.Description != "projects" {
		t.Errorf("unexpected folder after patch: %+v", folder)
	}

	w = api.do(http.MethodDelete, "/api/folder/"+id, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var out struct {
		Message string `json:"message"`
	}
	api.decode(w, &out)
	if out.Message != "Folder Removed Successfully" {
		t.Errorf("unexpected message %q", out.Message)
	}

	w = api.do(http.MethodGet, "/api/folder/"+id, token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", w.Code)
	}
}

func TestFolderConflict(t *testing.T) {
	api := newTestAPI(t)
	token := api.register("alice")
	api.createFolder(token, "Work")

	w := api.do(http.MethodPost, "/api/folder", token, map[string]any{"name": "Work"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	var out struct {
		Message string `json:"message"`
	}
	api.decode(w, &out)
	if out.Message != "That name is not available, please try another one" {
		t.Errorf("unexpected message %q", out.Message)
	}
}

func TestForeignFolderForbidden(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice")
	bob := api.register("bobby")

	id := api.createFolder(alice, "Private")

	w := api.do(http.MethodGet, "/api/folder/"+id, bob, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
	var out struct {
		Message string `json:"message"`
	}
	api.decode(w, &out)
	if out.Message != "You are not authorized to proceed" {
		t.Errorf("unexpected message %q", out.Message)
	}
}

func TestDeleteFolderKeepQuery(t *testing.T) {
	api := newTestAPI(t)
	token := api.register("alice")

	folderID := api.createFolder(token, "Work")
	listID := api.createList(token, "Sprint", folderID)

	w := api.do(http.MethodDelete, "/api/folder/"+folderID+"?keep=true", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = api.do(http.MethodGet, "/api/todos/"+listID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected the kept list to survive, got %d: %s", w.Code, w.Body.String())
	}
	var list struct {
		Container string `json:"container"`
	}
	api.decode(w, &list)
	if list.Container != "" {
		t.Errorf("expected the kept list to be detached, got container %q", list.Container)
	}
}

func TestListMoveAndNullDetach(t *testing.T) {
	api := newTestAPI(t)
	token := api.register("alice")

	src := api.createFolder(token, "Source")
	dst := api.createFolder(token, "Dest")
	listID := api.createList(token, "Sprint", src)

	w := api.do(http.MethodPatch, "/api/todos/"+listID, token, map[string]any{"container": dst})
	if w.Code != http.StatusOK {
		t.Fatalf("move: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var list struct {
		Container string `json:"container"`
	}
	api.decode(w, &list)
	if list.Container != dst {
		t.Errorf("expected container %q, got %q", dst, list.Container)
	}

	// An explicit null detaches; an absent field leaves the container alone.
	w = api.do(http.MethodPatch, "/api/todos/"+listID, token, map[string]any{"container": nil})
	if w.Code != http.StatusOK {
		t.Fatalf("detach: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	api.decode(w, &list)
	if list.Container != "" {
		t.Errorf("expected null to detach, got container %q", list.Container)
	}

	w = api.do(http.MethodPatch, "/api/todos/"+listID, token, map[string]any{"name": "Renamed"})
	if w.Code != http.StatusOK {
		t.Fatalf("rename: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var renamed struct {
		Name      string `json:"name"`
		Container string `json:"container"`
	}
	api.decode(w, &renamed)
	if renamed.Name != "Renamed" || renamed.Container != "" {
		t.Errorf("expected rename to leave container alone, got %+v", renamed)
	}
}

func TestTodoLifecycle(t *testing.T) {
	api := newTestAPI(t)
	token := api.register("alice")

	listID := api.createList(token, "Sprint", "")
	todoID := api.createTodo(token, listID, "write the report")

	w := api.do(http.MethodPatch, "/api/todos/"+listID+"/todo/"+todoID, token, map[string]any{"checked": true})
	if w.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var todo struct {
		Checked bool `json:"checked"`
	}
	api.decode(w, &todo)
	if !todo.Checked {
		t.Error("expected the todo to be checked")
	}

	w = api.do(http.MethodDelete, "/api/todos/"+listID+"/todo/"+todoID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var out struct {
		Message string `json:"message"`
	}
	api.decode(w, &out)
	if out.Message != "Todo Deleted Successfully" {
		t.Errorf("unexpected message %q", out.Message)
	}

	w = api.do(http.MethodGet, "/api/todos/"+listID+"/todo/"+todoID, token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", w.Code)
	}
}

func TestCascadeDeleteList(t *testing.T) {
	api := newTestAPI(t)
	token := api.register("alice")

	listID := api.createList(token, "Sprint", "")
	todoID := api.createTodo(token, listID, "doomed")

	w := api.do(http.MethodDelete, "/api/todos/"+listID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var out struct {
		Message string `json:"message"`
	}
	api.decode(w, &out)
	if out.Message != "Todo List Removed Successfully" {
		t.Errorf("unexpected message %q", out.Message)
	}

	w = api.do(http.MethodGet, "/api/todos/"+listID+"/todo/"+todoID, token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for cascaded todo, got %d", w.Code)
	}
}

func TestDownloadList(t *testing.T) {
	api := newTestAPI(t)
	token := api.register("alice")

	folderID := api.createFolder(token, "Work")
	listID := api.createList(token, "Sprint", folderID)
	api.createTodo(token, listID, "write the report")

	w := api.do(http.MethodGet, "/api/todos/"+listID+"/download", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="todo-download.txt"` {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}
	expected := "Work\nSprint: \n\n• write the report"
	if w.Body.String() != expected {
		t.Errorf("expected body %q, got %q", expected, w.Body.String())
	}
}

func TestListFoldersPagination(t *testing.T) {
	api := newTestAPI(t)
	token := api.register("alice")

	for i := 0; i < 3; i++ {
		api.createFolder(token, fmt.Sprintf("Folder %d", i))
	}

	w := api.do(http.MethodGet, "/api/folder?limit=2&page=2&sortProp=name", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var page struct {
		Docs  []json.RawMessage `json:"docs"`
		Total int               `json:"total"`
		Page  int               `json:"page"`
		Limit int               `json:"limit"`
	}
	api.decode(w, &page)
	if page.Total != 3 || page.Page != 2 || page.Limit != 2 || len(page.Docs) != 1 {
		t.Errorf("unexpected page: total=%d page=%d limit=%d docs=%d",
			page.Total, page.Page, page.Limit, len(page.Docs))
	}
}

func TestSendMail(t *testing.T) {
	api := newTestAPI(t)
	token := api.register("alice")

	w := api.do(http.MethodPost, "/api/services/sendMail", token, map[string]any{"message": "it crashed"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var out struct {
		Message string `json:"message"`
	}
	api.decode(w, &out)
	if out.Message != "Message sent successfully" {
		t.Errorf("unexpected message %q", out.Message)
	}

	if len(api.mailer.subjects) != 1 {
		t.Fatalf("expected 1 sent mail, got %d", len(api.mailer.subjects))
	}
	if api.mailer.subjects[0] != "Todo Desktop Bug Report, User: alice" {
		t.Errorf("unexpected subject %q", api.mailer.subjects[0])
	}
	if api.mailer.bodies[0] != "it crashed" {
		t.Errorf("unexpected body %q", api.mailer.bodies[0])
	}
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/api/nope", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var out struct {
		Message string `json:"message"`
	}
	api.decode(w, &out)
	if out.Message != "Route not found" {
		t.Errorf("unexpected message %q", out.Message)
	}
}
