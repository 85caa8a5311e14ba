package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matryer/is"

	"organizo/internal/service"
)

func TestWatchModelPrependsPushedEntries(t *testing.T) {
	is := is.New(t)

	m := NewWatchModel([]service.Notification{
		{ID: "n1", Message: "older", Read: true},
	})

	next, _ := m.Update(NotificationMsg{Notification: service.Notification{ID: "n2", Message: "fresh"}})
	m = next.(WatchModel)

	entries := m.Entries()
	is.Equal(len(entries), 2)
	is.Equal(entries[0].ID, "n2") // newest first
	is.Equal(entries[1].ID, "n1")
}

func TestWatchModelQuitKeys(t *testing.T) {
	is := is.New(t)

	m := NewWatchModel(nil)
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		var msg tea.KeyMsg
		switch key {
		case "q":
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		}
		_, cmd := m.Update(msg)
		is.True(cmd != nil) // tea.Quit
	}
}

func TestWatchModelView(t *testing.T) {
	is := is.New(t)

	m := NewWatchModel([]service.Notification{
		{ID: "n1", Message: "New task assigned: Write report"},
		{ID: "n2", Message: "seen already", Read: true},
	})
	view := m.View()
	is.True(strings.Contains(view, "1 unread"))
	is.True(strings.Contains(view, "New task assigned: Write report"))
	is.True(strings.Contains(view, "seen already"))

	empty := NewWatchModel(nil).View()
	is.True(strings.Contains(empty, "no notifications yet"))
}
