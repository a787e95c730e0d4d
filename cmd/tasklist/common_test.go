package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/metalagman/tasklist/internal/config"
	"github.com/metalagman/tasklist/internal/lock"
	"github.com/metalagman/tasklist/internal/logging"
	"github.com/metalagman/tasklist/internal/render"
	"github.com/metalagman/tasklist/internal/shell"
	"github.com/metalagman/tasklist/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(driver, path string) config.Config {
	return config.Config{
		Store:   config.StoreConfig{Driver: driver, Path: path, Lock: true},
		Display: config.DisplayConfig{Color: false, Width: 44},
		Due:     config.DueConfig{Timezone: time.UTC},
	}
}

func runScript(t *testing.T, cfg config.Config, script string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	ctx := context.Background()
	err := withSession(ctx, cfg, func(store *task.Store, table *render.Table) error {
		return shell.New(store, table, strings.NewReader(script), &out).Run(ctx)
	})
	return out.String(), err
}

func TestSessionPersistsAcrossRuns(t *testing.T) {
	for _, driver := range []string{config.DriverJSON, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasklist."+driver)
			cfg := testConfig(driver, path)

			_, err := runScript(t, cfg, "add\nc\n2024-01-01\n09:00\nBuy milk\n\nend\n")
			require.NoError(t, err)

			out, err := runScript(t, cfg, "print\nend\n")
			require.NoError(t, err)
			assert.Contains(t, out, "| 1  | 2024-01-01 | 09:00 | C |")
			assert.Contains(t, out, "|Buy milk ")
		})
	}
}

func TestSessionWritesJSONArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasklist.json")

	_, err := runScript(t, testConfig(config.DriverJSON, path), "add\nl\n2024-03-01\n18:45\nwalk dog\n\nend\n")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `["2024-03-01T18:45 L\nwalk dog\n"]`, string(data))
}

func TestSessionWithoutEndKeepsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasklist.json")
	require.NoError(t, os.WriteFile(path, []byte(`["2024-03-01T18:45 L\nwalk dog\n"]`), 0o644))

	_, err := runScript(t, testConfig(config.DriverJSON, path), "delete\n1\n")
	require.ErrorIs(t, err, shell.ErrInputClosed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `["2024-03-01T18:45 L\nwalk dog\n"]`, string(data))
}

func TestSessionFailsWhenLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasklist.json")
	held, err := lock.TryAcquire(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = held.Release() })

	_, err = runScript(t, testConfig(config.DriverJSON, path), "end\n")
	assert.ErrorIs(t, err, lock.ErrBusy)

	cfg := testConfig(config.DriverJSON, path)
	cfg.Store.Lock = false
	_, err = runScript(t, cfg, "end\n")
	assert.NoError(t, err)
}

func TestSessionReleasesLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasklist.db")

	_, err := runScript(t, testConfig(config.DriverSQLite, path), "end\n")
	require.NoError(t, err)

	held, err := lock.TryAcquire(path)
	require.NoError(t, err)
	require.NoError(t, held.Release())
}

func TestSessionRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasklist.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"a list"}`), 0o644))

	_, err := runScript(t, testConfig(config.DriverJSON, path), "end\n")
	assert.Error(t, err)

	held, err := lock.TryAcquire(path)
	require.NoError(t, err, "failed start must release the lock")
	require.NoError(t, held.Release())
}

func TestSessionLogsWiringInDebugMode(t *testing.T) {
	var logs bytes.Buffer
	logging.InitWriter(&logs, true)
	t.Cleanup(func() { logging.InitWriter(&bytes.Buffer{}, false) })

	path := filepath.Join(t.TempDir(), "tasklist.json")
	_, err := runScript(t, testConfig(config.DriverJSON, path), "end\n")
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "RUNNING")
	assert.Contains(t, logs.String(), "store locked")

	logs.Reset()
	logging.InitWriter(&logs, false)
	_, err = runScript(t, testConfig(config.DriverJSON, path), "end\n")
	require.NoError(t, err)
	assert.NotContains(t, logs.String(), "RUNNING")
}
