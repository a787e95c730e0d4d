// Package jsonstore keeps the task list in a JSON file holding a flat array
// of encoded task strings.
package jsonstore

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/metalagman/tasklist/internal/schema"
	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"
)

// DefaultPath is the file used when no path is configured.
const DefaultPath = "tasklist.json"

//go:embed schema.json
var fileSchema string

// ErrInvalidFile marks a task file that does not match the expected shape.
var ErrInvalidFile = errors.New("invalid task file")

// File is a JSON file backend.
type File struct {
	path string
}

// New returns a backend for the file at path.
func New(path string) *File {
	if path == "" {
		path = DefaultPath
	}
	return &File{path: path}
}

// Path returns the file location.
func (f *File) Path() string {
	return f.path
}

// Load reads the file. A missing file is an empty list.
func (f *File) Load(_ context.Context) ([]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("path", f.path).Msg("task file not found, starting empty")
			return []string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	if err := schema.Validate(fileSchema, gojsonschema.NewBytesLoader(data), ErrInvalidFile); err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}
	var encoded []string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFile, f.path, err)
	}
	if encoded == nil {
		encoded = []string{}
	}
	log.Debug().Str("path", f.path).Int("count", len(encoded)).Msg("task file read")
	return encoded, nil
}

// Save overwrites the file with encoded.
func (f *File) Save(_ context.Context, encoded []string) error {
	if encoded == nil {
		encoded = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(encoded); err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create task dir: %w", err)
		}
	}
	if err := os.WriteFile(f.path, bytes.TrimRight(buf.Bytes(), "\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	log.Debug().Str("path", f.path).Int("count", len(encoded)).Msg("task file written")
	return nil
}
