// Package render draws the fixed-width task table.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/metalagman/tasklist/internal/task"
	"github.com/muesli/termenv"
)

// DefaultWidth is the number of body characters per table row.
const DefaultWidth = 44

// NoTasks is shown instead of a table when the list is empty.
const NoTasks = "No tasks have been input"

const (
	minWidth     = 8
	rowPrefix    = "|    |            |       |   |   |"
	borderPrefix = "+----+------------+-------+---+---+"
)

// ANSI 16-color palette indexes; as backgrounds they render as ESC[10Xm.
var (
	colorRed    = lipgloss.Color("9")
	colorGreen  = lipgloss.Color("10")
	colorYellow = lipgloss.Color("11")
	colorBlue   = lipgloss.Color("12")
)

// Table renders tasks as a bordered text table.
type Table struct {
	width    int
	color    bool
	loc      *time.Location
	priority map[task.Priority]lipgloss.Style
	due      map[task.DueStatus]lipgloss.Style
}

// Option configures a Table.
type Option func(*Table)

// WithWidth sets the body column width. Values below 8 are raised to 8.
func WithWidth(width int) Option {
	return func(t *Table) {
		if width < minWidth {
			width = minWidth
		}
		t.width = width
	}
}

// WithColor toggles colored priority and due cells.
func WithColor(enabled bool) Option {
	return func(t *Table) { t.color = enabled }
}

// WithLocation sets the zone used to decide the current date.
func WithLocation(loc *time.Location) Option {
	return func(t *Table) {
		if loc != nil {
			t.loc = loc
		}
	}
}

// NewTable creates a renderer. Colors are always emitted as basic ANSI
// sequences when enabled, regardless of the attached terminal.
func NewTable(opts ...Option) *Table {
	t := &Table{width: DefaultWidth, color: true, loc: time.UTC}
	for _, opt := range opts {
		opt(t)
	}

	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)
	cell := func(c lipgloss.Color) lipgloss.Style { return r.NewStyle().Background(c) }
	t.priority = map[task.Priority]lipgloss.Style{
		task.PriorityCritical: cell(colorRed),
		task.PriorityHigh:     cell(colorYellow),
		task.PriorityNormal:   cell(colorGreen),
		task.PriorityLow:      cell(colorBlue),
	}
	t.due = map[task.DueStatus]lipgloss.Style{
		task.DueIncoming: cell(colorGreen),
		task.DueToday:    cell(colorYellow),
		task.DueOverdue:  cell(colorRed),
	}
	return t
}

// Width returns the body column width.
func (t *Table) Width() int {
	return t.width
}

// Render writes the table for tasks. now decides the due column.
func (t *Table) Render(w io.Writer, tasks []task.Task, now time.Time) error {
	var b strings.Builder
	border := t.border()
	b.WriteString(border)
	b.WriteString(t.header())
	for i, item := range tasks {
		b.WriteString(border)
		t.writeTask(&b, i+1, item, now)
	}
	b.WriteString(border)
	_, err := io.WriteString(w, b.String())
	return err
}

func (t *Table) border() string {
	return borderPrefix + strings.Repeat("-", t.width) + "+\n"
}

func (t *Table) header() string {
	left := (t.width-4)/2 - 1
	if left < 0 {
		left = 0
	}
	right := t.width - 4 - left
	return "| N  |    Date    | Time  | P | D |" +
		strings.Repeat(" ", left) + "Task" + strings.Repeat(" ", right) + "|\n"
}

func (t *Table) writeTask(b *strings.Builder, n int, item task.Task, now time.Time) {
	due := item.Due(now, t.loc)
	fmt.Fprintf(b, "| %-2d | %s | %s | %s | %s |",
		n,
		item.Timestamp.Format("2006-01-02"),
		item.Timestamp.Format("15:04"),
		t.priorityCell(item.Priority),
		t.dueCell(due),
	)
	first := true
	for _, line := range item.Body {
		for _, chunk := range Wrap(line, t.width) {
			if !first {
				b.WriteString(rowPrefix)
			}
			first = false
			b.WriteString(chunk)
			b.WriteString("|\n")
		}
	}
	if first {
		b.WriteString(strings.Repeat(" ", t.width))
		b.WriteString("|\n")
	}
}

func (t *Table) priorityCell(p task.Priority) string {
	if !t.color {
		return string(p)
	}
	style, ok := t.priority[p]
	if !ok {
		return " "
	}
	return style.Render(" ")
}

func (t *Table) dueCell(d task.DueStatus) string {
	if !t.color {
		return d.Code()
	}
	return t.due[d].Render(" ")
}

// Wrap cuts line into pieces of exactly width characters, padding the last
// piece with spaces. Word boundaries are ignored.
func Wrap(line string, width int) []string {
	runes := []rune(line)
	var out []string
	for len(runes) > width {
		out = append(out, string(runes[:width]))
		runes = runes[width:]
	}
	last := string(runes)
	if pad := width - utf8.RuneCountInString(last); pad > 0 {
		last += strings.Repeat(" ", pad)
	}
	return append(out, last)
}
