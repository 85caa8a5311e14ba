package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"

	"organizo/internal/dashboard"
	"organizo/internal/service"
	"organizo/internal/session"
)

func userSession() session.Session {
	return session.Session{Token: "tok", UserID: "u2", Role: service.RoleUser}
}

func TestParseCategory(t *testing.T) {
	is := is.New(t)

	for _, valid := range []string{"assigned", "created", "overdue"} {
		c, err := dashboard.ParseCategory(valid)
		is.NoErr(err)
		is.Equal(string(c), valid)
	}
	_, err := dashboard.ParseCategory("starred")
	is.True(err != nil)
}

func TestUserDashboard_RedirectsElevatedRoles(t *testing.T) {
	is := is.New(t)
	svc := seededService()

	mgr := session.Session{Token: "tok", UserID: "u1", Role: service.RoleManager}
	d := dashboard.NewUserDashboard(dashboard.CategoryAssigned, mgr, svc, nil)
	is.True(errors.Is(d.Mount(context.Background()), dashboard.ErrUseManagerBoard))

	adm := session.Session{Token: "tok", UserID: "u1", Role: service.RoleAdmin}
	d = dashboard.NewUserDashboard(dashboard.CategoryAssigned, adm, svc, nil)
	is.True(errors.Is(d.Mount(context.Background()), dashboard.ErrUseAdminBoard))
}

func TestUserDashboard_MountScopesToCategory(t *testing.T) {
	is := is.New(t)

	svc := seededService()
	svc.AddTask(service.Task{ID: "t1", Title: "mine", Creator: "u1", Assignee: "u2"})
	svc.AddTask(service.Task{ID: "t2", Title: "theirs", Creator: "u1", Assignee: "u1"})
	svc.AddTask(service.Task{ID: "t3", Title: "authored", Creator: "u2"})

	d := dashboard.NewUserDashboard(dashboard.CategoryAssigned, userSession(), svc, nil)
	is.NoErr(d.Mount(context.Background()))
	items := d.Tasks.Items()
	is.Equal(len(items), 1)
	is.Equal(items[0].ID, "t1")

	d = dashboard.NewUserDashboard(dashboard.CategoryCreated, userSession(), svc, nil)
	is.NoErr(d.Mount(context.Background()))
	items = d.Tasks.Items()
	is.Equal(len(items), 1)
	is.Equal(items[0].ID, "t3")
}

func TestUserDashboard_Search(t *testing.T) {
	is := is.New(t)

	svc := seededService()
	svc.AddTask(service.Task{ID: "t1", Title: "Write report", Assignee: "u2"})
	svc.AddTask(service.Task{ID: "t2", Title: "Ship build", Description: "final REPORT pass", Assignee: "u2"})
	svc.AddTask(service.Task{ID: "t3", Title: "Water plants", Assignee: "u2"})

	d := dashboard.NewUserDashboard(dashboard.CategoryAssigned, userSession(), svc, nil)
	is.NoErr(d.Mount(context.Background()))

	// matches title and description, case-insensitive
	hits := d.Search("report")
	is.Equal(len(hits), 2)
	is.Equal(hits[0].ID, "t1")
	is.Equal(hits[1].ID, "t2")

	is.Equal(len(d.Search("")), 3)
	is.Equal(len(d.Search("nothing matches this")), 0)
}

func TestUserDashboard_SortTasks(t *testing.T) {
	is := is.New(t)

	svc := seededService()
	svc.AddTask(service.Task{ID: "t1", Title: "low", Priority: service.PriorityLow, DueDate: "2024-01-03", Assignee: "u2"})
	svc.AddTask(service.Task{ID: "t2", Title: "high", Priority: service.PriorityHigh, DueDate: "2024-01-02", Assignee: "u2"})
	svc.AddTask(service.Task{ID: "t3", Title: "medium", Priority: service.PriorityMedium, DueDate: "2024-01-01", Assignee: "u2"})

	d := dashboard.NewUserDashboard(dashboard.CategoryAssigned, userSession(), svc, nil)
	is.NoErr(d.Mount(context.Background()))

	d.SortTasks("priority")
	ids := taskIDs(d.Tasks.Items())
	is.Equal(ids, []string{"t2", "t3", "t1"}) // High, Medium, Low

	d.SortTasks("dueDate")
	ids = taskIDs(d.Tasks.Items())
	is.Equal(ids, []string{"t3", "t2", "t1"})

	// unknown keys leave the order alone
	d.SortTasks("color")
	is.Equal(taskIDs(d.Tasks.Items()), ids)
}

func taskIDs(tasks []service.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestUserDashboard_Logs(t *testing.T) {
	is := is.New(t)

	svc := seededService()
	d := dashboard.NewUserDashboard(dashboard.CategoryAssigned, userSession(), svc, nil)
	is.NoErr(d.Mount(context.Background()))

	d.LogAction(context.Background(), "Created task: Write report")
	is.NoErr(d.FetchLogs(context.Background()))
	is.Equal(len(d.Logs), 1)
	is.Equal(d.Logs[0].Action, "Created task: Write report")
}

func TestUserDashboard_LogActionNeverFailsTheAction(t *testing.T) {
	svc := seededService()
	svc.LogActionErr = errors.New("Failed to record action")
	d := dashboard.NewUserDashboard(dashboard.CategoryAssigned, userSession(), svc, nil)

	// must not panic or surface the error
	d.LogAction(context.Background(), "anything")
}
