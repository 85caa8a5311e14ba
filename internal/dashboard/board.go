// Package dashboard implements the role-gated views: each one composes the
// session, the backend service, per-view synchronization state and the push
// channel. The role check runs on every mount; views repeat it independently.
package dashboard

import (
	"context"
	"errors"
	"fmt"

	"organizo/internal/push"
	"organizo/internal/service"
	"organizo/internal/session"
	"organizo/internal/state"
)

var (
	// ErrNotLoggedIn means no token or user id is present; the caller
	// should send the user to login.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrUnauthorized is the permission-denied state a view enters when
	// the session role does not match its required role. No fetch is
	// attempted.
	ErrUnauthorized = errors.New("Unauthorized: you do not have permission to access this page")

	// ErrNoPendingDelete means ConfirmDelete ran without a staged target.
	ErrNoPendingDelete = errors.New("no delete pending")
)

// Board is the elevated task+user view shared by the manager and admin
// dashboards, and (without a role requirement) the backing state for
// one-shot task actions.
type Board struct {
	// Tasks and Users hold the view's synchronization state.
	Tasks *state.Store[service.Task]
	Users *state.Store[service.User]

	required      service.Role // empty means any authenticated role
	sess          session.Session
	svc           service.Service
	ch            push.Broadcaster // nil disables emits
	pendingDelete string
}

// NewBoard creates a board gated to the given role. An empty required
// role admits any logged-in session. ch may be nil.
func NewBoard(required service.Role, sess session.Session, svc service.Service, ch push.Broadcaster) *Board {
	return &Board{
		Tasks:    state.NewStore[service.Task](),
		Users:    state.NewStore[service.User](),
		required: required,
		sess:     sess,
		svc:      svc,
		ch:       ch,
	}
}

// Mount runs the role gate and the initial fetches: users first, then
// tasks, so assignee names can resolve. Any fetch failure moves the view
// to its errored state with the message captured verbatim.
func (b *Board) Mount(ctx context.Context) error {
	if !b.sess.LoggedIn() {
		return ErrNotLoggedIn
	}
	if b.required != "" && b.sess.Role != b.required {
		return ErrUnauthorized
	}

	users, err := b.svc.ListUsers(ctx)
	if err != nil {
		b.Users.Fail(err.Error())
		b.Tasks.Fail(err.Error())
		return err
	}
	b.Users.Replace(users)

	tasks, err := b.svc.ListTasks(ctx, "", "")
	if err != nil {
		b.Tasks.Fail(err.Error())
		return err
	}
	b.Tasks.Replace(tasks)
	return nil
}

// CreateTask creates a task, admits the server's canonical object into
// the list, and broadcasts the change. A failed call leaves the list
// untouched.
func (b *Board) CreateTask(ctx context.Context, draft service.TaskDraft) (service.Task, error) {
	created, err := b.svc.CreateTask(ctx, draft)
	if err != nil {
		return service.Task{}, err
	}
	b.Tasks.Upsert(created)
	b.emit(push.EventTaskCreated, created)
	return created, nil
}

// UpdateTask replaces a task with the server's returned object.
func (b *Board) UpdateTask(ctx context.Context, id string, draft service.TaskDraft) (service.Task, error) {
	updated, err := b.svc.UpdateTask(ctx, id, draft)
	if err != nil {
		return service.Task{}, err
	}
	b.Tasks.Upsert(updated)
	b.emit(push.EventTaskUpdated, updated)
	return updated, nil
}

// AssignTask sends only the assignee field but patches the full task
// from the server response.
func (b *Board) AssignTask(ctx context.Context, id, assigneeID string) (service.Task, error) {
	updated, err := b.svc.AssignTask(ctx, id, assigneeID)
	if err != nil {
		return service.Task{}, err
	}
	b.Tasks.Upsert(updated)
	b.emit(push.EventTaskAssigned, updated)
	return updated, nil
}

// StageDelete selects a delete target. The destructive call only fires
// from ConfirmDelete.
func (b *Board) StageDelete(id string) error {
	if _, ok := b.Tasks.Get(id); !ok {
		return fmt.Errorf("task not found: %s", id)
	}
	b.pendingDelete = id
	return nil
}

// PendingDelete returns the staged target id, empty if none.
func (b *Board) PendingDelete() string {
	return b.pendingDelete
}

// CancelDelete clears the staged target without deleting anything.
func (b *Board) CancelDelete() {
	b.pendingDelete = ""
}

// ConfirmDelete fires the destructive call for the staged target. On
// success the entry leaves the list and the deletion is broadcast.
func (b *Board) ConfirmDelete(ctx context.Context) error {
	if b.pendingDelete == "" {
		return ErrNoPendingDelete
	}
	target, ok := b.Tasks.Get(b.pendingDelete)
	if !ok {
		b.pendingDelete = ""
		return ErrNoPendingDelete
	}
	if err := b.svc.DeleteTask(ctx, target.ID); err != nil {
		return err
	}
	b.Tasks.Remove(target.ID)
	b.pendingDelete = ""
	b.emit(push.EventTaskDeleted, target)
	return nil
}

// UpdateUser replaces a user with the server's returned object.
func (b *Board) UpdateUser(ctx context.Context, id string, draft service.UserDraft) (service.User, error) {
	updated, err := b.svc.UpdateUser(ctx, id, draft)
	if err != nil {
		return service.User{}, err
	}
	b.Users.Upsert(updated)
	b.emit(push.EventUserUpdated, updated)
	return updated, nil
}

// DeleteUser removes a user and broadcasts the deleted id.
func (b *Board) DeleteUser(ctx context.Context, id string) error {
	if err := b.svc.DeleteUser(ctx, id); err != nil {
		return err
	}
	b.Users.Remove(id)
	b.emit(push.EventUserDeleted, id)
	return nil
}

// UserName resolves a user id against the locally fetched user list for
// display. Unknown or empty ids fall back to "N/A"; there is no
// referential-integrity enforcement client-side.
func (b *Board) UserName(id string) string {
	if id == "" {
		return "N/A"
	}
	if u, ok := b.Users.Get(id); ok {
		return u.Name
	}
	return "N/A"
}

func (b *Board) emit(event string, payload any) {
	if b.ch != nil {
		b.ch.Emit(event, payload)
	}
}
