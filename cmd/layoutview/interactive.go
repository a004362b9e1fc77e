package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/gpu-layout/schema"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	filename string
	types    []schema.Type
	filter   textinput.Model
	selected int
	loaded   bool
}

type loadedMsg struct {
	err    error
	schema *schema.Schema
}

func newInteractiveModel(filename string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "path filter"
	ti.Prompt = "filter: "
	ti.Width = 40
	ti.Focus()
	return &interactiveModel{filename: filename, filter: ti}
}

func (m *interactiveModel) Init() tea.Cmd {
	return tea.Batch(m.loadSchema, textinput.Blink)
}

func (m *interactiveModel) loadSchema() tea.Msg {
	s, err := schema.Load(m.filename)
	return loadedMsg{schema: s, err: err}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "up":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "down":
			if m.selected < len(m.types)-1 {
				m.selected++
			}
			return m, nil
		}

	case loadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.setTypes(msg.schema.Types())
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

// setTypes replaces the type list, keeping the selection on the same name
// when it survives a reload.
func (m *interactiveModel) setTypes(types []schema.Type) {
	current := ""
	if m.selected < len(m.types) {
		current = m.types[m.selected].Name
	}
	m.types = types
	m.selected = 0
	for i, t := range types {
		if t.Name == current {
			m.selected = i
		}
	}
}

func (m *interactiveModel) View() string {
	if !m.loaded {
		return "Loading schema..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Layout Viewer"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	for i, t := range m.types {
		line := fmt.Sprintf("%s (%s, %d bytes)", t.Name, t.Packing, t.Struct.ByteSize())
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + typeStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	if m.selected < len(m.types) {
		t := m.types[m.selected]
		b.WriteString(renderTable(t.Name, t.Struct, m.filter.Value(), true))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ select type • type to filter • esc quit"))

	return b.String()
}

func runInteractive(ctx context.Context, opts options, watch bool) error {
	p := tea.NewProgram(newInteractiveModel(opts.schemaFile), tea.WithAltScreen(), tea.WithContext(ctx))
	if watch {
		go watchInto(ctx, opts.schemaFile, p.Send)
	}
	_, err := p.Run()
	if stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// watchInto forwards schema reloads to send until ctx is done. A watcher
// that fails to start is reported the same way as a failed reload.
func watchInto(ctx context.Context, path string, send func(tea.Msg)) {
	err := schema.Watch(ctx, path, func(s *schema.Schema, err error) {
		send(loadedMsg{schema: s, err: err})
	})
	if err != nil && !stderrors.Is(err, context.Canceled) {
		send(loadedMsg{err: fmt.Errorf("watch stopped: %w", err)})
	}
}
