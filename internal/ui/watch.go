package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"organizo/internal/service"
)

var (
	watchHeader = lipgloss.NewStyle().Bold(true)
	watchDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
	watchDot    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4db7ff")).Bold(true)
)

// NotificationMsg carries one notification into the watch model. The
// watch command sends it from the push handler via Program.Send.
type NotificationMsg struct {
	Notification service.Notification
}

// WatchModel renders the notification bell live: the initial list plus
// every pushed entry, newest first. Quit with q or ctrl+c.
type WatchModel struct {
	entries []service.Notification
}

// NewWatchModel seeds the model with the fetched list, newest first.
func NewWatchModel(initial []service.Notification) WatchModel {
	entries := make([]service.Notification, len(initial))
	copy(entries, initial)
	return WatchModel{entries: entries}
}

func (m WatchModel) Init() tea.Cmd {
	return nil
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case NotificationMsg:
		m.entries = append([]service.Notification{msg.Notification}, m.entries...)
	}
	return m, nil
}

func (m WatchModel) View() string {
	var b strings.Builder
	unread := 0
	for _, n := range m.entries {
		if !n.Read {
			unread++
		}
	}
	fmt.Fprintf(&b, "%s\n\n", watchHeader.Render(fmt.Sprintf("Notifications (%d unread)", unread)))
	if len(m.entries) == 0 {
		b.WriteString(watchDim.Render("no notifications yet") + "\n")
	}
	for _, n := range m.entries {
		if n.Read {
			fmt.Fprintf(&b, "  %s\n", watchDim.Render(n.Message))
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", watchDot.Render("•"), n.Message)
	}
	b.WriteString("\n" + watchDim.Render("q to quit") + "\n")
	return b.String()
}

// Entries returns the current list, for tests.
func (m WatchModel) Entries() []service.Notification {
	out := make([]service.Notification, len(m.entries))
	copy(out, m.entries)
	return out
}
