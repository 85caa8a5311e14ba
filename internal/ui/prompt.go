// Package ui holds the interactive terminal pieces: the credential
// prompt and the live notification watch.
package ui

import (
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrPromptCancelled is returned when the user bails out of a prompt.
var ErrPromptCancelled = errors.New("cancelled")

// Field describes one prompt input.
type Field struct {
	Label  string
	Secret bool
}

var promptLabel = lipgloss.NewStyle().Bold(true)

type promptModel struct {
	fields    []Field
	inputs    []textinput.Model
	index     int
	done      bool
	cancelled bool
}

func newPromptModel(fields []Field) promptModel {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.Width = 40
		if f.Secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		inputs[i] = in
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return promptModel{fields: fields, inputs: inputs}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.inputs[m.index].Blur()
			m.index++
			if m.index >= len(m.inputs) {
				m.done = true
				return m, tea.Quit
			}
			m.inputs[m.index].Focus()
			return m, textinput.Blink
		}
	}
	var cmd tea.Cmd
	m.inputs[m.index], cmd = m.inputs[m.index].Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	s := ""
	for i := 0; i <= m.index && i < len(m.inputs); i++ {
		s += promptLabel.Render(m.fields[i].Label+":") + " " + m.inputs[i].View() + "\n"
	}
	return s
}

// RunPrompt collects one value per field interactively. The returned
// slice is parallel to fields.
func RunPrompt(fields []Field, in io.Reader, out io.Writer) ([]string, error) {
	p := tea.NewProgram(newPromptModel(fields), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(promptModel)
	if !ok || m.cancelled || !m.done {
		return nil, ErrPromptCancelled
	}
	values := make([]string, len(m.inputs))
	for i := range m.inputs {
		values[i] = m.inputs[i].Value()
	}
	return values, nil
}
