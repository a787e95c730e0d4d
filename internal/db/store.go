package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Store keeps encoded tasks in the tasks table, one row per list position.
type Store struct {
	db *sql.DB
}

// NewStore creates a task backend over an opened database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load returns the encoded tasks ordered by position.
func (s *Store) Load(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT encoded FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var encoded string
		if err := rows.Scan(&encoded); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, encoded)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return out, nil
}

// Save replaces all rows with encoded in a single transaction.
func (s *Store) Save(ctx context.Context, encoded []string) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin save tasks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear tasks: %w", err)
	}
	for i, item := range encoded {
		if _, err := tx.ExecContext(ctx, `INSERT INTO tasks(position, encoded) VALUES(?, ?)`, i+1, item); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert task %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save tasks: %w", err)
	}
	return nil
}
