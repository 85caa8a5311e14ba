// Package service defines the backend-agnostic interface for the task manager.
package service

import "context"

// Service defines the interface for backend operations.
// All REST API calls go through this interface.
// Commands never import the HTTP backend directly.
type Service interface {
	// ListTasks returns tasks visible to the session.
	// category narrows to "assigned", "created" or "overdue" for the given
	// user; both empty means every task the caller may see.
	ListTasks(ctx context.Context, category, userID string) ([]Task, error)

	// CreateTask creates a task and returns the server's canonical object
	// with the assigned id and creator.
	CreateTask(ctx context.Context, draft TaskDraft) (Task, error)

	// UpdateTask replaces a task's fields and returns the canonical object.
	UpdateTask(ctx context.Context, id string, draft TaskDraft) (Task, error)

	// AssignTask sends only the assignee field; the response is the full
	// updated task.
	AssignTask(ctx context.Context, id, assigneeID string) (Task, error)

	// DeleteTask deletes a task by id.
	DeleteTask(ctx context.Context, id string) error

	// ListUsers returns all users.
	ListUsers(ctx context.Context) ([]User, error)

	// UpdateUser replaces a user's editable fields.
	UpdateUser(ctx context.Context, id string, draft UserDraft) (User, error)

	// DeleteUser deletes a user by id.
	DeleteUser(ctx context.Context, id string) error

	// ListNotifications returns the session's notifications, newest first.
	ListNotifications(ctx context.Context) ([]Notification, error)

	// CreateNotification records a notification for later delivery.
	CreateNotification(ctx context.Context, message string) (Notification, error)

	// ListLogs returns the session's activity log entries.
	ListLogs(ctx context.Context) ([]ActivityLog, error)

	// LogAction appends an activity log entry. Failures are non-fatal for
	// callers; logging an action never blocks the action itself.
	LogAction(ctx context.Context, action string) error

	// Login exchanges credentials for a token and identity.
	Login(ctx context.Context, username, password string) (Credentials, error)

	// Register creates an account and returns a logged-in identity.
	Register(ctx context.Context, reg Registration) (Credentials, error)

	// ForgotPassword starts the credential-recovery flow for a username.
	ForgotPassword(ctx context.Context, username string) error

	// RequestReset sends a one-time code to the given email.
	RequestReset(ctx context.Context, email string) error

	// VerifyOTP checks a one-time code.
	VerifyOTP(ctx context.Context, email, otp string) error

	// ResetPassword completes recovery with a verified code.
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}
