package resthttp_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matryer/is"

	"organizo/internal/backend/resthttp"
	"organizo/internal/service"
	"organizo/internal/session"
)

// recordedRequest captures what the fake backend saw, so assertions can
// run on the test goroutine.
type recordedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Auth   string
	Body   []byte
}

func newServer(t *testing.T, status int, response any) (*httptest.Server, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.Auth = r.Header.Get("Authorization")
		rec.Query = map[string]string{}
		for k := range r.URL.Query() {
			rec.Query[k] = r.URL.Query().Get(k)
		}
		rec.Body, _ = io.ReadAll(r.Body)
		w.WriteHeader(status)
		if response != nil {
			json.NewEncoder(w).Encode(response)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestClient_AttachesBearerToken(t *testing.T) {
	is := is.New(t)

	srv, rec := newServer(t, http.StatusOK, map[string]any{"tasks": []service.Task{}})
	c := resthttp.New(context.Background(), srv.URL, session.Session{Token: "tok-123", UserID: "u1"})

	_, err := c.ListTasks(context.Background(), "", "")
	is.NoErr(err)
	is.Equal(rec.Auth, "Bearer tok-123")
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	is := is.New(t)

	srv, rec := newServer(t, http.StatusOK, []service.User{})
	c := resthttp.New(context.Background(), srv.URL, session.Session{})

	_, err := c.ListUsers(context.Background())
	is.NoErr(err)
	is.Equal(rec.Auth, "")
}

func TestClient_ListTasksEnvelopeAndQuery(t *testing.T) {
	is := is.New(t)

	srv, rec := newServer(t, http.StatusOK, map[string]any{"tasks": []service.Task{
		{ID: "t1", Title: "Write report", Priority: service.PriorityHigh, Status: service.StatusToDo},
	}})
	c := resthttp.New(context.Background(), srv.URL, session.Session{Token: "t", UserID: "u1"})

	tasks, err := c.ListTasks(context.Background(), "assigned", "u1")
	is.NoErr(err)
	is.Equal(len(tasks), 1)
	is.Equal(tasks[0].ID, "t1")
	is.Equal(rec.Path, "/api/tasks")
	is.Equal(rec.Query["category"], "assigned")
	is.Equal(rec.Query["userId"], "u1")
}

func TestClient_APIErrorUsesBodyMessage(t *testing.T) {
	is := is.New(t)

	srv, _ := newServer(t, http.StatusForbidden, map[string]string{"message": "Invalid credentials"})
	c := resthttp.New(context.Background(), srv.URL, session.Session{})

	_, err := c.Login(context.Background(), "maria", "wrong")
	var apiErr *resthttp.APIError
	is.True(errors.As(err, &apiErr))
	is.Equal(apiErr.Status, http.StatusForbidden)
	is.Equal(apiErr.Message, "Invalid credentials")
}

func TestClient_APIErrorGenericMessage(t *testing.T) {
	is := is.New(t)

	srv, _ := newServer(t, http.StatusBadGateway, nil)
	c := resthttp.New(context.Background(), srv.URL, session.Session{Token: "t"})

	err := c.DeleteTask(context.Background(), "t1")
	var apiErr *resthttp.APIError
	is.True(errors.As(err, &apiErr))
	is.Equal(apiErr.Message, "request failed with status 502")
}

func TestClient_MalformedTaskRejected(t *testing.T) {
	is := is.New(t)

	// priority outside the enum must not reach local state
	srv, _ := newServer(t, http.StatusOK, map[string]any{"tasks": []map[string]any{
		{"_id": "t1", "title": "x", "priority": "Urgent", "status": "To Do"},
	}})
	c := resthttp.New(context.Background(), srv.URL, session.Session{Token: "t"})

	_, err := c.ListTasks(context.Background(), "", "")
	var malformed *resthttp.MalformedResponseError
	is.True(errors.As(err, &malformed))
}

func TestClient_CreateTaskReturnsCanonicalObject(t *testing.T) {
	is := is.New(t)

	srv, rec := newServer(t, http.StatusOK, service.Task{
		ID:       "server-1",
		Title:    "Write report",
		DueDate:  "2024-05-01",
		Priority: service.PriorityHigh,
		Status:   service.StatusToDo,
		Creator:  "u1",
	})
	c := resthttp.New(context.Background(), srv.URL, session.Session{Token: "t", UserID: "u1"})

	created, err := c.CreateTask(context.Background(), service.TaskDraft{
		Title:    "Write report",
		DueDate:  "2024-05-01",
		Priority: service.PriorityHigh,
		Status:   service.StatusToDo,
	})
	is.NoErr(err)
	is.Equal(created.ID, "server-1")
	is.Equal(created.Creator, "u1")
	is.Equal(rec.Method, http.MethodPost)
	is.Equal(rec.Path, "/api/tasks/create")

	var sent service.TaskDraft
	is.NoErr(json.Unmarshal(rec.Body, &sent))
	is.Equal(sent.Title, "Write report")
}

func TestClient_AssignSendsOnlyAssignee(t *testing.T) {
	is := is.New(t)

	srv, rec := newServer(t, http.StatusOK, service.Task{
		ID: "t1", Title: "existing", Assignee: "u2",
		Priority: service.PriorityLow, Status: service.StatusInProgress,
	})
	c := resthttp.New(context.Background(), srv.URL, session.Session{Token: "t"})

	updated, err := c.AssignTask(context.Background(), "t1", "u2")
	is.NoErr(err)
	is.Equal(updated.Assignee, "u2")
	is.Equal(updated.Title, "existing") // full task comes back

	is.Equal(rec.Method, http.MethodPut)
	is.Equal(rec.Path, "/api/tasks/update/t1")
	var sent map[string]string
	is.NoErr(json.Unmarshal(rec.Body, &sent))
	is.Equal(sent, map[string]string{"assignee": "u2"})
}

func TestClient_UsersBareArray(t *testing.T) {
	is := is.New(t)

	srv, rec := newServer(t, http.StatusOK, []service.User{
		{ID: "u1", Name: "Maria", Username: "maria", Email: "m@x.io", Role: service.RoleAdmin},
	})
	c := resthttp.New(context.Background(), srv.URL, session.Session{Token: "t"})

	users, err := c.ListUsers(context.Background())
	is.NoErr(err)
	is.Equal(len(users), 1)
	is.Equal(users[0].Name, "Maria")
	is.Equal(rec.Path, "/api/auth/")
}

func TestClient_LoginDecodesCredentials(t *testing.T) {
	is := is.New(t)

	srv, rec := newServer(t, http.StatusOK, map[string]any{
		"token": "tok-xyz",
		"user":  map[string]string{"id": "u1", "role": "Manager"},
	})
	c := resthttp.New(context.Background(), srv.URL, session.Session{})

	creds, err := c.Login(context.Background(), "maria", "secret")
	is.NoErr(err)
	is.Equal(creds, service.Credentials{Token: "tok-xyz", UserID: "u1", Role: service.RoleManager})

	var sent map[string]string
	is.NoErr(json.Unmarshal(rec.Body, &sent))
	is.Equal(sent["username"], "maria")
}

func TestClient_LoginRejectsMissingToken(t *testing.T) {
	is := is.New(t)

	srv, _ := newServer(t, http.StatusOK, map[string]any{
		"user": map[string]string{"id": "u1", "role": "User"},
	})
	c := resthttp.New(context.Background(), srv.URL, session.Session{})

	_, err := c.Login(context.Background(), "maria", "secret")
	var malformed *resthttp.MalformedResponseError
	is.True(errors.As(err, &malformed))
}
