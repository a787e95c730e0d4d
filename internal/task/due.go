package task

import "time"

// DueStatus classifies a task date against the current date.
type DueStatus int

// Due statuses.
const (
	DueToday DueStatus = iota
	DueIncoming
	DueOverdue
)

// Code returns the single-letter form used in the task table.
func (d DueStatus) Code() string {
	switch d {
	case DueIncoming:
		return "I"
	case DueOverdue:
		return "O"
	default:
		return "T"
	}
}

func (d DueStatus) String() string {
	switch d {
	case DueIncoming:
		return "Incoming"
	case DueOverdue:
		return "Overdue"
	default:
		return "Today"
	}
}

// Due compares the calendar date of the task with the calendar date of now
// in loc. A nil loc means UTC.
func (t Task) Due(now time.Time, loc *time.Location) DueStatus {
	days := DaysUntil(now, t.Timestamp, loc)
	switch {
	case days == 0:
		return DueToday
	case days > 0:
		return DueIncoming
	default:
		return DueOverdue
	}
}

// DaysUntil returns the number of whole calendar days from the date of now
// (in loc) to the wall-clock date of ts.
func DaysUntil(now, ts time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	ny, nm, nd := now.In(loc).Date()
	ty, tm, td := ts.Date()
	from := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	to := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
