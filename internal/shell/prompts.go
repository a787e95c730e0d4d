package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/metalagman/tasklist/internal/task"
)

var msgPriority = fmt.Sprintf("Input the task priority (%s):", priorityCodes())

func priorityCodes() string {
	codes := make([]string, 0, len(task.Priorities))
	for _, p := range task.Priorities {
		codes = append(codes, string(p))
	}
	return strings.Join(codes, ", ")
}

func (s *Shell) askPriority(ctx context.Context) (task.Priority, error) {
	for {
		s.println(msgPriority)
		line, err := s.readLine(ctx)
		if err != nil {
			return "", err
		}
		if p, err := task.ParsePriority(line); err == nil {
			return p, nil
		}
	}
}

func (s *Shell) askDate(ctx context.Context) (time.Time, error) {
	for {
		s.println("Input the date (yyyy-mm-dd):")
		line, err := s.readLine(ctx)
		if err != nil {
			return time.Time{}, err
		}
		if d, err := task.ParseDate(line); err == nil {
			return d, nil
		}
		s.println("The input date is invalid")
	}
}

func (s *Shell) askClock(ctx context.Context) (hour, minute int, err error) {
	for {
		s.println("Input the time (hh:mm):")
		line, err := s.readLine(ctx)
		if err != nil {
			return 0, 0, err
		}
		if h, m, err := task.ParseClock(line); err == nil {
			return h, m, nil
		}
		s.println("The input time is invalid")
	}
}

// askBody collects trimmed lines until a blank one.
func (s *Shell) askBody(ctx context.Context) ([]string, error) {
	s.println("Input a new task (enter a blank line to end):")
	var body []string
	for {
		line, err := s.readLine(ctx)
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return body, nil
		}
		body = append(body, line)
	}
}

// askTaskNumber returns a 1-based task number in [1, size].
func (s *Shell) askTaskNumber(ctx context.Context, size int) (int, error) {
	for {
		s.println(fmt.Sprintf("Input the task number (1-%d):", size))
		line, err := s.readLine(ctx)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && n >= 1 && n <= size {
			return n, nil
		}
		s.println("Invalid task number")
	}
}
