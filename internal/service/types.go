package service

import (
	"fmt"
	"strings"
)

// Role is a user's access level.
type Role string

const (
	RoleUser    Role = "User"
	RoleManager Role = "Manager"
	RoleAdmin   Role = "Admin"
)

// ParseRole validates a role string.
func ParseRole(s string) (Role, error) {
	switch Role(strings.TrimSpace(s)) {
	case RoleUser:
		return RoleUser, nil
	case RoleManager:
		return RoleManager, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

// Priority is a task's priority level.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ParsePriority validates a priority string.
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.TrimSpace(s)) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("unknown priority: %q", s)
	}
}

// Rank orders priorities for sorting: High before Medium before Low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// Status is a task's workflow state.
type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.TrimSpace(s)) {
	case StatusToDo:
		return StatusToDo, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusDone:
		return StatusDone, nil
	default:
		return "", fmt.Errorf("unknown status: %q", s)
	}
}

// Recurrence is a task's repeat interval.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "None"
	RecurrenceDaily   Recurrence = "Daily"
	RecurrenceWeekly  Recurrence = "Weekly"
	RecurrenceMonthly Recurrence = "Monthly"
)

// ParseRecurrence validates a recurrence string.
func ParseRecurrence(s string) (Recurrence, error) {
	switch Recurrence(strings.TrimSpace(s)) {
	case RecurrenceNone:
		return RecurrenceNone, nil
	case RecurrenceDaily:
		return RecurrenceDaily, nil
	case RecurrenceWeekly:
		return RecurrenceWeekly, nil
	case RecurrenceMonthly:
		return RecurrenceMonthly, nil
	default:
		return "", fmt.Errorf("unknown recurrence: %q", s)
	}
}

// Task is a backend-owned task. The client holds transient cached copies;
// the backend assigns ID and Creator.
type Task struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     string     `json:"dueDate"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	Creator     string     `json:"creator"`
	Assignee    string     `json:"assignee,omitempty"`
	IsRecurring bool       `json:"isRecurring"`
	Recurrence  Recurrence `json:"recurrence"`
}

// EntityID returns the task's id for cache patching.
func (t Task) EntityID() string { return t.ID }

// Validate checks that a task decoded at the boundary is well-formed
// before it is admitted into local state.
func (t Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task missing _id")
	}
	if _, err := ParsePriority(string(t.Priority)); err != nil {
		return err
	}
	if _, err := ParseStatus(string(t.Status)); err != nil {
		return err
	}
	if t.Recurrence != "" {
		if _, err := ParseRecurrence(string(t.Recurrence)); err != nil {
			return err
		}
	}
	return nil
}

// TaskDraft mirrors the task form: the fields a client may set.
type TaskDraft struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     string     `json:"dueDate"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	Assignee    string     `json:"assignee,omitempty"`
	IsRecurring bool       `json:"isRecurring"`
	Recurrence  Recurrence `json:"recurrence"`
}

// User is a backend-owned user account.
type User struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// EntityID returns the user's id for cache patching.
func (u User) EntityID() string { return u.ID }

// Validate checks a user decoded at the boundary.
func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user missing _id")
	}
	if _, err := ParseRole(string(u.Role)); err != nil {
		return err
	}
	return nil
}

// UserDraft mirrors the user edit form.
type UserDraft struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Notification is an ephemeral message for the notification feed.
// It is never persisted client-side.
type Notification struct {
	ID        string `json:"_id"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}

// EntityID returns the notification's id for cache patching.
func (n Notification) EntityID() string { return n.ID }

// ActivityLog is one entry in the user activity log panel.
type ActivityLog struct {
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}

// Credentials is the identity returned by login and register.
type Credentials struct {
	Token  string
	UserID string
	Role   Role
}

// Registration is the signup payload.
type Registration struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}
