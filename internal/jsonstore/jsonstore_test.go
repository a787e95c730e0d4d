package jsonstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	f := New(filepath.Join(t.TempDir(), "tasklist.json"))
	got, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "tasklist.json")
	f := New(path)
	tasks := []string{
		"2024-01-01T09:00 H\nBuy milk\n",
		"2024-01-02T10:30 C\nFix <build> & deploy\nsecond line\n",
	}

	require.NoError(t, f.Save(ctx, tasks))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `["2024-01-01T09:00 H\nBuy milk\n","2024-01-02T10:30 C\nFix <build> & deploy\nsecond line\n"]`, string(raw))

	got, err := f.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, tasks, got)
}

func TestSaveEmptyWritesEmptyArray(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tasklist.json")
	require.NoError(t, New(path).Save(context.Background(), nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestLoadRejectsInvalidFiles(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"not json":       "{",
		"object":         `{"tasks":[]}`,
		"number items":   `[1, 2]`,
		"missing header": `["just text\n"]`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "tasklist.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			_, err := New(path).Load(context.Background())
			assert.ErrorIs(t, err, ErrInvalidFile)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultPath, New("").Path())
}
