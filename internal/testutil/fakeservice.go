// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"organizo/internal/service"
)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

// ErrInvalidCredentials is returned for a bad username/password pair.
var ErrInvalidCredentials = errors.New("Invalid credentials")

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu            sync.RWMutex
	tasks         []service.Task
	users         []service.User
	notifications []service.Notification
	logs          []service.ActivityLog
	accounts      map[string]account
	nextID        int

	// AuthedUserID is used as the creator of tasks, standing in for the
	// identity the real backend derives from the bearer token.
	AuthedUserID string

	// Error injection for testing
	ListTasksErr          error
	CreateTaskErr         error
	UpdateTaskErr         error
	AssignTaskErr         error
	DeleteTaskErr         error
	ListUsersErr          error
	UpdateUserErr         error
	DeleteUserErr         error
	ListNotificationsErr  error
	CreateNotificationErr error
	ListLogsErr           error
	LogActionErr          error
	LoginErr              error
	RegisterErr           error
	RecoveryErr           error
}

type account struct {
	password string
	creds    service.Credentials
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{accounts: make(map[string]account)}
}

// AddUser seeds a user.
func (f *FakeService) AddUser(id, name, username string, role service.Role) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, service.User{
		ID:       id,
		Name:     name,
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	})
}

// AddTask seeds a task.
func (f *FakeService) AddTask(t service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.Priority == "" {
		t.Priority = service.PriorityMedium
	}
	if t.Status == "" {
		t.Status = service.StatusToDo
	}
	if t.Recurrence == "" {
		t.Recurrence = service.RecurrenceNone
	}
	f.tasks = append(f.tasks, t)
}

// AddNotification seeds a notification.
func (f *FakeService) AddNotification(n service.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, n)
}

// SeedAccount registers a username/password pair for Login.
func (f *FakeService) SeedAccount(username, password string, creds service.Credentials) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[username] = account{password: password, creds: creds}
}

// Tasks returns a snapshot of the stored tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Logs returns a snapshot of the recorded activity log.
func (f *FakeService) Logs() []service.ActivityLog {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.ActivityLog, len(f.logs))
	copy(out, f.logs)
	return out
}

func (f *FakeService) newID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s%d", prefix, f.nextID)
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, category, userID string) ([]service.Task, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	var out []service.Task
	today := time.Now().Format("2006-01-02")
	for _, t := range f.tasks {
		switch category {
		case "assigned":
			if t.Assignee != userID {
				continue
			}
		case "created":
			if t.Creator != userID {
				continue
			}
		case "overdue":
			if t.Status == service.StatusDone || t.DueDate == "" || t.DueDate >= today {
				continue
			}
		}
		out = append(out, t)
	}
	return out, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, draft service.TaskDraft) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	created := service.Task{
		ID:          f.newID("t"),
		Title:       draft.Title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Priority:    draft.Priority,
		Status:      draft.Status,
		Creator:     f.AuthedUserID,
		Assignee:    draft.Assignee,
		IsRecurring: draft.IsRecurring,
		Recurrence:  draft.Recurrence,
	}
	if created.Recurrence == "" {
		created.Recurrence = service.RecurrenceNone
	}
	f.tasks = append(f.tasks, created)
	return created, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, draft service.TaskDraft) (service.Task, error) {
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			t.Title = draft.Title
			t.Description = draft.Description
			t.DueDate = draft.DueDate
			t.Priority = draft.Priority
			t.Status = draft.Status
			t.Assignee = draft.Assignee
			t.IsRecurring = draft.IsRecurring
			t.Recurrence = draft.Recurrence
			f.tasks[i] = t
			return t, nil
		}
	}
	return service.Task{}, ErrNotFound
}

// AssignTask implements service.Service.
func (f *FakeService) AssignTask(ctx context.Context, id, assigneeID string) (service.Task, error) {
	if f.AssignTaskErr != nil {
		return service.Task{}, f.AssignTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].Assignee = assigneeID
			return f.tasks[i], nil
		}
	}
	return service.Task{}, ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ListUsers implements service.Service.
func (f *FakeService) ListUsers(ctx context.Context) ([]service.User, error) {
	if f.ListUsersErr != nil {
		return nil, f.ListUsersErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.User, len(f.users))
	copy(out, f.users)
	return out, nil
}

// UpdateUser implements service.Service.
func (f *FakeService) UpdateUser(ctx context.Context, id string, draft service.UserDraft) (service.User, error) {
	if f.UpdateUserErr != nil {
		return service.User{}, f.UpdateUserErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, u := range f.users {
		if u.ID == id {
			u.Name = draft.Name
			u.Email = draft.Email
			u.Role = draft.Role
			f.users[i] = u
			return u, nil
		}
	}
	return service.User{}, ErrNotFound
}

// DeleteUser implements service.Service.
func (f *FakeService) DeleteUser(ctx context.Context, id string) error {
	if f.DeleteUserErr != nil {
		return f.DeleteUserErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ListNotifications implements service.Service.
func (f *FakeService) ListNotifications(ctx context.Context) ([]service.Notification, error) {
	if f.ListNotificationsErr != nil {
		return nil, f.ListNotificationsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Notification, len(f.notifications))
	copy(out, f.notifications)
	return out, nil
}

// CreateNotification implements service.Service.
func (f *FakeService) CreateNotification(ctx context.Context, message string) (service.Notification, error) {
	if f.CreateNotificationErr != nil {
		return service.Notification{}, f.CreateNotificationErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	created := service.Notification{
		ID:        f.newID("n"),
		Message:   message,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	f.notifications = append(f.notifications, created)
	return created, nil
}

// ListLogs implements service.Service.
func (f *FakeService) ListLogs(ctx context.Context) ([]service.ActivityLog, error) {
	if f.ListLogsErr != nil {
		return nil, f.ListLogsErr
	}
	return f.Logs(), nil
}

// LogAction implements service.Service.
func (f *FakeService) LogAction(ctx context.Context, action string) error {
	if f.LogActionErr != nil {
		return f.LogActionErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, service.ActivityLog{
		Action:    action,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	return nil
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, username, password string) (service.Credentials, error) {
	if f.LoginErr != nil {
		return service.Credentials{}, f.LoginErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	acct, ok := f.accounts[username]
	if !ok || acct.password != password {
		return service.Credentials{}, ErrInvalidCredentials
	}
	return acct.creds, nil
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, reg service.Registration) (service.Credentials, error) {
	if f.RegisterErr != nil {
		return service.Credentials{}, f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.accounts[reg.Username]; exists {
		return service.Credentials{}, errors.New("Username already taken")
	}
	creds := service.Credentials{
		Token:  "fake-token-" + reg.Username,
		UserID: f.newID("u"),
		Role:   reg.Role,
	}
	f.accounts[reg.Username] = account{password: reg.Password, creds: creds}
	f.users = append(f.users, service.User{
		ID:       creds.UserID,
		Name:     reg.Name,
		Username: reg.Username,
		Email:    reg.Email,
		Role:     reg.Role,
	})
	return creds, nil
}

// ForgotPassword implements service.Service.
func (f *FakeService) ForgotPassword(ctx context.Context, username string) error {
	return f.RecoveryErr
}

// RequestReset implements service.Service.
func (f *FakeService) RequestReset(ctx context.Context, email string) error {
	return f.RecoveryErr
}

// VerifyOTP implements service.Service.
func (f *FakeService) VerifyOTP(ctx context.Context, email, otp string) error {
	if f.RecoveryErr != nil {
		return f.RecoveryErr
	}
	if otp != "123456" {
		return errors.New("Invalid OTP")
	}
	return nil
}

// ResetPassword implements service.Service.
func (f *FakeService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	return f.RecoveryErr
}
