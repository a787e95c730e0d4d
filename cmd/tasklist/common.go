package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/metalagman/tasklist/internal/config"
	internaldb "github.com/metalagman/tasklist/internal/db"
	"github.com/metalagman/tasklist/internal/jsonstore"
	"github.com/metalagman/tasklist/internal/lock"
	"github.com/metalagman/tasklist/internal/logging"
	"github.com/metalagman/tasklist/internal/render"
	"github.com/metalagman/tasklist/internal/task"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

const stopTimeout = 5 * time.Second

// withSession wires the store for cfg, starts it (lock, open, load), runs fn
// and stops it again. Saving is left to fn.
func withSession(ctx context.Context, cfg config.Config, fn func(*task.Store, *render.Table) error) error {
	var (
		store *task.Store
		table *render.Table
	)
	app := fx.New(
		eventLogger(),
		sessionModule(cfg),
		fx.Populate(&store, &table),
	)
	if err := app.Err(); err != nil {
		return fmt.Errorf("wire session: %w", err)
	}
	if err := app.Start(ctx); err != nil {
		return err
	}
	runErr := fn(store, table)

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return errors.Join(runErr, app.Stop(stopCtx))
}

// eventLogger reports fx wiring through the global logger in debug mode.
func eventLogger() fx.Option {
	if !logging.DebugEnabled() {
		return fx.NopLogger
	}
	return fx.WithLogger(func() fxevent.Logger {
		return &fxevent.ConsoleLogger{W: log.Logger}
	})
}

func sessionModule(cfg config.Config) fx.Option {
	return fx.Module("session",
		fx.Supply(cfg),
		fx.Provide(
			newStoreLock,
			newBackend,
			task.NewStore,
			newTable,
		),
		fx.Invoke(loadOnStart),
	)
}

func newTable(cfg config.Config) *render.Table {
	return render.NewTable(
		render.WithWidth(cfg.Display.Width),
		render.WithColor(cfg.Display.Color),
		render.WithLocation(cfg.Due.Timezone),
	)
}

func loadOnStart(lc fx.Lifecycle, store *task.Store) {
	lc.Append(fx.StartHook(store.Load))
}

type storeLock struct {
	path    string
	enabled bool
	held    *lock.Lock
}

func newStoreLock(lc fx.Lifecycle, cfg config.Config) *storeLock {
	l := &storeLock{path: cfg.Store.Path, enabled: cfg.Store.Lock}
	lc.Append(fx.Hook{OnStart: l.acquire, OnStop: l.release})
	return l
}

func (l *storeLock) acquire(context.Context) error {
	if !l.enabled {
		return nil
	}
	held, err := lock.TryAcquire(l.path)
	if err != nil {
		return err
	}
	l.held = held
	log.Debug().Str("lock", held.Path()).Msg("store locked")
	return nil
}

func (l *storeLock) release(context.Context) error {
	return l.held.Release()
}

// newBackend picks the persistence backend. The lock argument orders its
// hooks before the backend's.
func newBackend(lc fx.Lifecycle, cfg config.Config, _ *storeLock) task.Backend {
	if cfg.Store.Driver == config.DriverSQLite {
		b := &sqliteBackend{path: cfg.Store.Path}
		lc.Append(fx.Hook{OnStart: b.open, OnStop: b.close})
		return b
	}
	return jsonstore.New(cfg.Store.Path)
}

type sqliteBackend struct {
	path  string
	conn  *sql.DB
	store *internaldb.Store
}

func (b *sqliteBackend) open(context.Context) error {
	conn, err := internaldb.Open(b.path)
	if err != nil {
		return err
	}
	b.conn = conn
	b.store = internaldb.NewStore(conn)
	return nil
}

func (b *sqliteBackend) close(context.Context) error {
	if b.conn == nil {
		return nil
	}
	return b.conn.Close()
}

func (b *sqliteBackend) Load(ctx context.Context) ([]string, error) {
	return b.store.Load(ctx)
}

func (b *sqliteBackend) Save(ctx context.Context, encoded []string) error {
	return b.store.Save(ctx, encoded)
}
