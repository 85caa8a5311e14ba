package dashboard

import (
	"context"
	"errors"
	"sort"
	"strings"

	"organizo/internal/push"
	"organizo/internal/service"
	"organizo/internal/session"
	"organizo/internal/state"
)

// Category narrows the generic dashboard's task list. Filtering happens
// server-side via the category query parameter; the client does not
// re-filter by date.
type Category string

const (
	CategoryAssigned Category = "assigned"
	CategoryCreated  Category = "created"
	CategoryOverdue  Category = "overdue"
)

// ParseCategory validates a category string.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryAssigned, CategoryCreated, CategoryOverdue:
		return Category(s), nil
	default:
		return "", errors.New("unknown category: " + s)
	}
}

// Title returns the section heading for a category.
func (c Category) Title() string {
	switch c {
	case CategoryAssigned:
		return "Tasks Assigned to You"
	case CategoryCreated:
		return "Tasks You Created"
	case CategoryOverdue:
		return "Overdue Tasks"
	default:
		return ""
	}
}

// Elevated roles are redirected away from the generic dashboard to
// their dedicated boards.
var (
	ErrUseManagerBoard = errors.New("managers use the manager board (run: organizo manager)")
	ErrUseAdminBoard   = errors.New("admins use the admin board (run: organizo admin)")
)

// UserDashboard is the generic per-user view: category-scoped tasks,
// client-side search and sort, and the activity-log panel. It renders
// only for the plain User role.
type UserDashboard struct {
	Tasks *state.Store[service.Task]
	Users *state.Store[service.User]
	Logs  []service.ActivityLog

	category Category
	sess     session.Session
	svc      service.Service
	ch       push.Broadcaster
}

// NewUserDashboard creates the generic dashboard scoped to a category.
func NewUserDashboard(category Category, sess session.Session, svc service.Service, ch push.Broadcaster) *UserDashboard {
	return &UserDashboard{
		Tasks:    state.NewStore[service.Task](),
		Users:    state.NewStore[service.User](),
		category: category,
		sess:     sess,
		svc:      svc,
		ch:       ch,
	}
}

// Mount runs the role gate and the users-then-tasks fetch sequence.
func (d *UserDashboard) Mount(ctx context.Context) error {
	if !d.sess.LoggedIn() {
		return ErrNotLoggedIn
	}
	switch d.sess.Role {
	case service.RoleManager:
		return ErrUseManagerBoard
	case service.RoleAdmin:
		return ErrUseAdminBoard
	}

	users, err := d.svc.ListUsers(ctx)
	if err != nil {
		d.Users.Fail(err.Error())
		d.Tasks.Fail(err.Error())
		return err
	}
	d.Users.Replace(users)

	tasks, err := d.svc.ListTasks(ctx, string(d.category), d.sess.UserID)
	if err != nil {
		d.Tasks.Fail(err.Error())
		return err
	}
	d.Tasks.Replace(tasks)
	return nil
}

// Category returns the mounted category.
func (d *UserDashboard) Category() Category {
	return d.category
}

// Search filters the cached list to tasks whose title or description
// contains the term, case-insensitive. An empty term matches everything.
func (d *UserDashboard) Search(term string) []service.Task {
	items := d.Tasks.Items()
	if term == "" {
		return items
	}
	term = strings.ToLower(term)
	var out []service.Task
	for _, t := range items {
		if strings.Contains(strings.ToLower(t.Title), term) ||
			strings.Contains(strings.ToLower(t.Description), term) {
			out = append(out, t)
		}
	}
	return out
}

// SortTasks reorders the cached list by "status", "priority" or
// "dueDate". Unknown keys leave the order alone.
func (d *UserDashboard) SortTasks(key string) {
	items := d.Tasks.Items()
	switch key {
	case "status":
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Status < items[j].Status
		})
	case "priority":
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Priority.Rank() < items[j].Priority.Rank()
		})
	case "dueDate":
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].DueDate < items[j].DueDate
		})
	default:
		return
	}
	d.Tasks.Replace(items)
}

// CreateTask creates a task from the dashboard's task form.
func (d *UserDashboard) CreateTask(ctx context.Context, draft service.TaskDraft) (service.Task, error) {
	created, err := d.svc.CreateTask(ctx, draft)
	if err != nil {
		return service.Task{}, err
	}
	d.Tasks.Upsert(created)
	if d.ch != nil {
		d.ch.Emit(push.EventTaskCreated, created)
	}
	return created, nil
}

// FetchLogs loads the activity-log panel.
func (d *UserDashboard) FetchLogs(ctx context.Context) error {
	logs, err := d.svc.ListLogs(ctx)
	if err != nil {
		return err
	}
	d.Logs = logs
	return nil
}

// LogAction records a user action. Best effort: the action itself never
// fails because logging did.
func (d *UserDashboard) LogAction(ctx context.Context, action string) {
	_ = d.svc.LogAction(ctx, action)
}

// UserName resolves an id for display, "N/A" when unknown.
func (d *UserDashboard) UserName(id string) string {
	if id == "" {
		return "N/A"
	}
	if u, ok := d.Users.Get(id); ok {
		return u.Name
	}
	return "N/A"
}
