package task

import "context"

// Backend persists the encoded form of the task list.
type Backend interface {
	// Load returns the stored task strings in list order. A backend with
	// nothing stored yet returns an empty slice.
	Load(ctx context.Context) ([]string, error)
	// Save replaces the stored task strings.
	Save(ctx context.Context, encoded []string) error
}
