package task

import (
	"fmt"
	"slices"
	"strings"
)

// Priority is the single-letter urgency code of a task.
type Priority string

// Known priorities.
const (
	PriorityCritical Priority = "C"
	PriorityHigh     Priority = "H"
	PriorityNormal   Priority = "N"
	PriorityLow      Priority = "L"
)

// Priorities lists the known priorities in prompt order.
var Priorities = []Priority{PriorityCritical, PriorityHigh, PriorityNormal, PriorityLow}

// ParsePriority accepts a priority code in any case.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToUpper(strings.TrimSpace(s)))
	if !slices.Contains(Priorities, p) {
		return "", fmt.Errorf("unknown priority %q", s)
	}
	return p, nil
}

// Name returns the human readable priority name.
func (p Priority) Name() string {
	switch p {
	case PriorityCritical:
		return "Critical"
	case PriorityHigh:
		return "High"
	case PriorityNormal:
		return "Normal"
	case PriorityLow:
		return "Low"
	default:
		return "Unknown"
	}
}
