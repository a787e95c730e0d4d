// Package view is a read-only terminal browser over the task list.
package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/metalagman/tasklist/internal/render"
	"github.com/metalagman/tasklist/internal/task"
)

var (
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
)

// Model is the bubbletea model of the viewer.
type Model struct {
	table    table.Model
	details  []string
	empty    bool
	quitting bool
}

type options struct {
	style  string
	wrap   int
	height int
}

// Option configures the viewer.
type Option func(*options)

// WithStyle selects a glamour style by name; "auto" follows the terminal.
func WithStyle(name string) Option {
	return func(o *options) { o.style = name }
}

// WithHeight sets the number of visible table rows.
func WithHeight(rows int) Option {
	return func(o *options) { o.height = rows }
}

// New builds the viewer for tasks. Body markdown is rendered up front.
func New(tasks []task.Task, now time.Time, loc *time.Location, opts ...Option) (Model, error) {
	o := options{style: "auto", wrap: 72, height: 10}
	for _, opt := range opts {
		opt(&o)
	}

	styleOpt := glamour.WithAutoStyle()
	if o.style != "auto" {
		styleOpt = glamour.WithStandardStyle(o.style)
	}
	md, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(o.wrap))
	if err != nil {
		return Model{}, fmt.Errorf("create markdown renderer: %w", err)
	}

	rows := make([]table.Row, 0, len(tasks))
	details := make([]string, 0, len(tasks))
	for i, item := range tasks {
		due := item.Due(now, loc)
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			item.Timestamp.Format("2006-01-02"),
			item.Timestamp.Format("15:04"),
			string(item.Priority),
			due.Code(),
			item.Body[0],
		})
		out, err := md.Render(detailMarkdown(item, due))
		if err != nil {
			return Model{}, fmt.Errorf("render task %d: %w", i+1, err)
		}
		details = append(details, out)
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "N", Width: 3},
			{Title: "Date", Width: 10},
			{Title: "Time", Width: 5},
			{Title: "P", Width: 1},
			{Title: "D", Width: 1},
			{Title: "Task", Width: 44},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(o.height),
	)
	return Model{table: t, details: details, empty: len(tasks) == 0}, nil
}

func detailMarkdown(item task.Task, due task.DueStatus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** priority, %s, %s\n\n",
		item.Priority.Name(),
		item.Timestamp.Format("2006-01-02 15:04"),
		due.String(),
	)
	for _, line := range item.Body {
		b.WriteString(line)
		b.WriteString("\n\n")
	}
	return b.String()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.empty {
		return emptyStyle.Render(render.NoTasks) + "\n" + helpStyle.Render("q quit") + "\n"
	}
	var b strings.Builder
	b.WriteString(m.table.View())
	b.WriteString("\n")
	if i := m.table.Cursor(); i >= 0 && i < len(m.details) {
		b.WriteString(m.details[i])
	}
	b.WriteString(helpStyle.Render("↑/↓ move • q quit"))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the 0-based index of the highlighted task.
func (m Model) Selected() int {
	return m.table.Cursor()
}

// Run starts the viewer on the terminal and blocks until it quits.
func Run(tasks []task.Task, now time.Time, loc *time.Location, opts ...Option) error {
	m, err := New(tasks, now, loc, opts...)
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}
