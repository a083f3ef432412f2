package store

import (
	"context"
	"database/sql"
	"time"
)

// DB exposes the internal *sql.DB for test helpers in store_test.
// This file only compiles during `go test`.
func (s *Store) DB() *sql.DB {
	return s.db
}

// SetNow replaces the clock used for handoff timestamps.
func (s *Store) SetNow(now func() time.Time) {
	s.now = now
}

// FailExec makes every write return err.
func (s *Store) FailExec(err error) {
	s.hooks.exec = func(context.Context, execer, string, ...any) (sql.Result, error) {
		return nil, err
	}
}
