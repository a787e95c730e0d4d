// Package task holds the task record, its persisted string form and the
// ordered in-memory store the interactive session works on.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrMalformed marks a persisted task string that cannot be decoded.
	ErrMalformed = errors.New("malformed task")
	// ErrBlankTask is returned when a task has no body lines.
	ErrBlankTask = errors.New("task is blank")
)

// Task describes a task record.
type Task struct {
	Timestamp time.Time
	Priority  Priority
	Body      []string
}

// New builds a task from raw body lines. Lines are trimmed and empty lines
// are dropped.
func New(ts time.Time, priority Priority, lines []string) Task {
	return Task{Timestamp: ts, Priority: priority, Body: cleanBody(lines)}
}

// Blank reports whether the task has no body.
func (t Task) Blank() bool {
	return len(t.Body) == 0
}

// Encode renders the task in its persisted form:
// "<timestamp> <priority>\n<line>\n...".
func Encode(t Task) string {
	var b strings.Builder
	b.WriteString(formatTimestamp(t.Timestamp))
	b.WriteByte(' ')
	b.WriteString(string(t.Priority))
	b.WriteByte('\n')
	for _, line := range t.Body {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Decode parses a persisted task string. Only the exact form Encode writes
// is accepted, so a decoded task always encodes back to s.
func Decode(s string) (Task, error) {
	lines := strings.Split(s, "\n")
	header := strings.Fields(lines[0])
	if len(header) != 2 {
		return Task{}, fmt.Errorf("%w: header %q", ErrMalformed, lines[0])
	}
	ts, err := parseTimestamp(header[0])
	if err != nil {
		return Task{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	priority, err := ParsePriority(header[1])
	if err != nil {
		return Task{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	t := New(ts, priority, lines[1:])
	if t.Blank() {
		return Task{}, fmt.Errorf("%w: %v", ErrMalformed, ErrBlankTask)
	}
	if Encode(t) != s {
		return Task{}, fmt.Errorf("%w: not in canonical form: %q", ErrMalformed, s)
	}
	return t, nil
}

func cleanBody(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
