// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"organizo/internal/service"
)

const (
	// ListSeparator is the separator line for list sections.
	ListSeparator = "------------"
)

const (
	green  = lipgloss.Color("#00a352")
	red    = lipgloss.Color("#c42912")
	yellow = lipgloss.Color("#c4b810")
	blue   = lipgloss.Color("#4db7ff")
	faded  = lipgloss.Color("#555")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	unreadStyle = lipgloss.NewStyle().Foreground(blue).Bold(true)
	readStyle   = lipgloss.NewStyle().Foreground(faded)

	priorityStyles = map[service.Priority]lipgloss.Style{
		service.PriorityHigh:   lipgloss.NewStyle().Foreground(red),
		service.PriorityMedium: lipgloss.NewStyle().Foreground(yellow),
		service.PriorityLow:    lipgloss.NewStyle().Foreground(green),
	}
)

// FormatSectionHeader formats a section header for a list view.
func FormatSectionHeader(w io.Writer, title string) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, headerStyle.Render(title))
	fmt.Fprintln(w, ListSeparator)
}

// FormatTask formats a task line for a list.
// Format: "{N:>4}  {TITLE}  [{PRIORITY}] [{STATUS}]" plus a due date when set.
func FormatTask(w io.Writer, num int, task service.Task) {
	title := normalizeTitle(task.Title)
	line := fmt.Sprintf("%4d  %s  [%s] [%s]", num, title, priorityBadge(task.Priority), task.Status)
	if task.DueDate != "" {
		line += "  due " + task.DueDate
	}
	fmt.Fprintln(w, line)
}

// FormatTaskDetail formats the full task card. Creator and assignee are
// passed as resolved display names, "N/A" when unknown.
func FormatTaskDetail(w io.Writer, task service.Task, creator, assignee string) {
	fmt.Fprintln(w, headerStyle.Render(normalizeTitle(task.Title)))
	if task.Description != "" {
		fmt.Fprintln(w, task.Description)
	}
	fmt.Fprintf(w, "Priority:  %s\n", priorityBadge(task.Priority))
	fmt.Fprintf(w, "Status:    %s\n", task.Status)
	if task.DueDate != "" {
		fmt.Fprintf(w, "Due:       %s\n", task.DueDate)
	}
	fmt.Fprintf(w, "Creator:   %s\n", creator)
	fmt.Fprintf(w, "Assignee:  %s\n", assignee)
	if task.IsRecurring {
		fmt.Fprintf(w, "Repeats:   %s\n", task.Recurrence)
	}
}

// FormatUser formats a user line for the admin user list.
// Format: "{N:>4}  {NAME}  <{EMAIL}>  {ROLE}"
func FormatUser(w io.Writer, num int, user service.User) {
	name := user.Name
	if strings.TrimSpace(name) == "" {
		name = user.Username
	}
	fmt.Fprintf(w, "%4d  %s  <%s>  %s\n", num, name, user.Email, user.Role)
}

// FormatNotification formats a notification bell entry. Unread entries
// carry a dot marker; read ones are dimmed.
func FormatNotification(w io.Writer, n service.Notification) {
	if n.Read {
		fmt.Fprintf(w, "  %s\n", readStyle.Render(n.Message))
		return
	}
	fmt.Fprintf(w, "%s %s\n", unreadStyle.Render("•"), n.Message)
}

// FormatLog formats one activity-log row.
func FormatLog(w io.Writer, l service.ActivityLog) {
	fmt.Fprintf(w, "%s  %s\n", l.Timestamp, l.Action)
}

func priorityBadge(p service.Priority) string {
	if style, ok := priorityStyles[p]; ok {
		return style.Render(string(p))
	}
	return string(p)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
