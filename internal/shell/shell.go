// Package shell runs the interactive, line-oriented task list session.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/metalagman/tasklist/internal/render"
	"github.com/metalagman/tasklist/internal/task"
	"github.com/rs/zerolog/log"
)

// ErrInputClosed is returned when input ends before the end command.
var ErrInputClosed = errors.New("input closed before end")

const (
	msgAction        = "Input an action (add, print, edit, delete, end):"
	msgInvalidAction = "The input action is invalid"
	msgBlank         = "The task is blank"
	msgChanged       = "The task is changed"
	msgDeleted       = "The task is deleted"
	msgExit          = "Tasklist exiting!"
)

// inputLine is one line read from input, or the error that ended it.
type inputLine struct {
	text string
	err  error
}

// Shell is one interactive session over a task store.
type Shell struct {
	store *task.Store
	table *render.Table
	in    *bufio.Reader
	out   io.Writer
	now   func() time.Time
	lines chan inputLine
}

// Option configures a Shell.
type Option func(*Shell)

// WithClock overrides the clock used for due status.
func WithClock(now func() time.Time) Option {
	return func(s *Shell) { s.now = now }
}

// New creates a session reading commands from in and writing to out.
func New(store *task.Store, table *render.Table, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		store: store,
		table: table,
		in:    bufio.NewReader(in),
		out:   out,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run reads commands until end, which saves the store. Any other exit,
// including cancellation of ctx while a prompt waits, leaves the backing
// store untouched. A Shell runs once.
func (s *Shell) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	s.lines = make(chan inputLine)
	go s.readLoop(done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.println(msgAction)
		input, err := s.readLine(ctx)
		if err != nil {
			return err
		}
		command := strings.ToLower(strings.TrimSpace(input))
		log.Debug().Str("command", command).Msg("shell command")
		switch command {
		case "add":
			err = s.add(ctx)
		case "print":
			err = s.print()
		case "edit":
			err = s.edit(ctx)
		case "delete":
			err = s.delete(ctx)
		case "end":
			return s.end(ctx)
		default:
			s.println(msgInvalidAction)
		}
		if err != nil {
			return err
		}
	}
}

func (s *Shell) add(ctx context.Context) error {
	priority, err := s.askPriority(ctx)
	if err != nil {
		return err
	}
	date, err := s.askDate(ctx)
	if err != nil {
		return err
	}
	hour, minute, err := s.askClock(ctx)
	if err != nil {
		return err
	}
	body, err := s.askBody(ctx)
	if err != nil {
		return err
	}
	item := task.New(task.WithClock(date, hour, minute), priority, body)
	if item.Blank() {
		s.println(msgBlank)
		return nil
	}
	return s.store.Add(item)
}

func (s *Shell) print() error {
	if s.store.Len() == 0 {
		s.println(render.NoTasks)
		return nil
	}
	return s.table.Render(s.out, s.store.All(), s.now())
}

func (s *Shell) edit(ctx context.Context) error {
	idx, ok, err := s.selectTask(ctx)
	if err != nil || !ok {
		return err
	}
	item, err := s.store.Get(idx)
	if err != nil {
		return err
	}
	for {
		s.println("Input a field to edit (priority, date, time, task):")
		field, err := s.readLine(ctx)
		if err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(field)) {
		case "priority":
			if item.Priority, err = s.askPriority(ctx); err != nil {
				return err
			}
		case "date":
			date, err := s.askDate(ctx)
			if err != nil {
				return err
			}
			item.Timestamp = task.WithDate(item.Timestamp, date)
		case "time":
			hour, minute, err := s.askClock(ctx)
			if err != nil {
				return err
			}
			item.Timestamp = task.WithClock(item.Timestamp, hour, minute)
		case "task":
			body, err := s.askBody(ctx)
			if err != nil {
				return err
			}
			edited := task.New(item.Timestamp, item.Priority, body)
			if edited.Blank() {
				s.println(msgBlank)
				return nil
			}
			item = edited
		default:
			s.println("Invalid field")
			continue
		}
		break
	}
	if err := s.store.Set(idx, item); err != nil {
		return err
	}
	s.println(msgChanged)
	return nil
}

func (s *Shell) delete(ctx context.Context) error {
	idx, ok, err := s.selectTask(ctx)
	if err != nil || !ok {
		return err
	}
	if err := s.store.RemoveAt(idx); err != nil {
		return err
	}
	s.println(msgDeleted)
	return nil
}

func (s *Shell) end(ctx context.Context) error {
	if err := s.store.Save(ctx); err != nil {
		return err
	}
	s.println(msgExit)
	return nil
}

// selectTask prints the table and asks for a task number. ok is false when
// the list is empty.
func (s *Shell) selectTask(ctx context.Context) (idx int, ok bool, err error) {
	if s.store.Len() == 0 {
		s.println(render.NoTasks)
		return 0, false, nil
	}
	if err := s.print(); err != nil {
		return 0, false, err
	}
	n, err := s.askTaskNumber(ctx, s.store.Len())
	if err != nil {
		return 0, false, err
	}
	return n - 1, true, nil
}

// readLoop feeds s.lines until input ends or done is closed. A read still
// blocked when done closes is abandoned with the goroutine.
func (s *Shell) readLoop(done <-chan struct{}) {
	for {
		text, err := s.in.ReadString('\n')
		if text != "" {
			text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
			if !s.send(done, inputLine{text: text}) {
				return
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = ErrInputClosed
			} else {
				err = fmt.Errorf("read input: %w", err)
			}
			s.send(done, inputLine{err: err})
			return
		}
	}
}

func (s *Shell) send(done <-chan struct{}, next inputLine) bool {
	select {
	case s.lines <- next:
		return true
	case <-done:
		return false
	}
}

func (s *Shell) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case next := <-s.lines:
		return next.text, next.err
	}
}

func (s *Shell) println(msg string) {
	_, _ = fmt.Fprintln(s.out, msg)
}
