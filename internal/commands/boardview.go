package commands

import (
	"fmt"
	"io"

	"organizo/internal/dashboard"
	"organizo/internal/output"
	"organizo/internal/service"
)

// renderTasks prints one task section with resolved assignee names.
func renderTasks(w io.Writer, title string, tasks []service.Task, name func(string) string) {
	output.FormatSectionHeader(w, title)
	if len(tasks) == 0 {
		fmt.Fprintln(w, "(no tasks)")
		return
	}
	for i, t := range tasks {
		output.FormatTask(w, i+1, t)
		if t.Assignee != "" {
			fmt.Fprintf(w, "      assignee: %s\n", name(t.Assignee))
		}
	}
}

// renderUsers prints the user table section.
func renderUsers(w io.Writer, users []service.User) {
	output.FormatSectionHeader(w, "Users")
	if len(users) == 0 {
		fmt.Fprintln(w, "(no users)")
		return
	}
	for i, u := range users {
		output.FormatUser(w, i+1, u)
	}
}

// renderBoard prints the elevated board: task table then user table.
func renderBoard(w io.Writer, title string, b *dashboard.Board) {
	renderTasks(w, title, b.Tasks.Items(), b.UserName)
	renderUsers(w, b.Users.Items())
}
