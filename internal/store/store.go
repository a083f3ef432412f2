// Package store persists reservations and human handoffs in SQLite.
//
// It is the default persistence collaborator: a single file under the
// data directory, WAL mode, no external service. The postgres
// subpackage provides the same contract on PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lacabrera/cabrera-mcp/internal/escalation"
	"github.com/lacabrera/cabrera-mcp/internal/reservation"
	"github.com/lacabrera/cabrera-mcp/internal/schedule"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds store configuration.
type Config struct {
	DataDir  string
	FileName string
}

// DefaultConfig returns the default configuration for the store.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:  filepath.Join(home, ".cabrera-mcp"),
		FileName: "cabrera.db",
	}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the SQLite-backed reservation and handoff store.
type Store struct {
	db    *sql.DB
	cfg   Config
	hooks storeHooks
	now   func() time.Time
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type storeHooks struct {
	exec func(ctx context.Context, db execer, query string, args ...any) (sql.Result, error)
}

func (s *Store) execHook(ctx context.Context, db execer, query string, args ...any) (sql.Result, error) {
	if s.hooks.exec != nil {
		return s.hooks.exec(ctx, db, query, args...)
	}
	return db.ExecContext(ctx, query, args...)
}

// New creates a Store with the given configuration.
// It creates the data directory if needed, opens SQLite with WAL mode,
// and runs migrations.
func New(cfg Config) (*Store, error) {
	if cfg.FileName == "" {
		cfg.FileName = DefaultConfig().FileName
	}
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, cfg.FileName)
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg, now: func() time.Time { return time.Now().UTC() }}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS reservations (
			id                  TEXT    PRIMARY KEY,
			nombre              TEXT    NOT NULL,
			telefono            TEXT    NOT NULL,
			email               TEXT    NOT NULL,
			personas            INTEGER NOT NULL,
			fecha               TEXT    NOT NULL,
			hora                TEXT    NOT NULL,
			slot_minutes        INTEGER NOT NULL,
			tipo_menu           TEXT,
			preferencias        TEXT,
			residente_argentino INTEGER,
			status              TEXT    NOT NULL DEFAULT 'confirmed',
			created_at          TEXT    NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_res_slot    ON reservations(fecha, slot_minutes);
		CREATE INDEX IF NOT EXISTS idx_res_created ON reservations(created_at DESC);

		CREATE TABLE IF NOT EXISTS handoffs (
			conversation_id TEXT PRIMARY KEY,
			reason          TEXT NOT NULL,
			marked_at       TEXT NOT NULL
		);
	`
	_, err := s.execHook(ctx, s.db, schema)
	return err
}

// ─── Reservations ────────────────────────────────────────────────────────────

// SaveReservation inserts rec. Saving an id twice is an error; the
// workflow generates a fresh id per call.
func (s *Store) SaveReservation(ctx context.Context, rec reservation.Record) (string, error) {
	minutes, err := schedule.ParseMinutes(rec.Time)
	if err != nil {
		return "", fmt.Errorf("store: %w", err)
	}

	_, err = s.execHook(ctx, s.db,
		`INSERT INTO reservations (id, nombre, telefono, email, personas, fecha, hora, slot_minutes,
		                           tipo_menu, preferencias, residente_argentino, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.Phone, rec.Email, rec.PartySize, rec.Date, rec.Time, minutes,
		nullableString(rec.MenuType), nullableString(rec.Preferences), nullableBool(rec.Resident),
		rec.Status, rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("store: reservation %s already exists", rec.ID)
		}
		return "", fmt.Errorf("store: insert reservation: %w", err)
	}
	return rec.ID, nil
}

// GetReservation retrieves a reservation by id.
func (s *Store) GetReservation(ctx context.Context, id string) (*reservation.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, nombre, telefono, email, personas, fecha, hora, tipo_menu, preferencias,
		        residente_argentino, status, created_at
		 FROM reservations WHERE id = ?`, id,
	)

	var (
		rec             reservation.Record
		menuType, prefs sql.NullString
		resident        sql.NullBool
		createdAt       string
	)
	err := row.Scan(&rec.ID, &rec.Name, &rec.Phone, &rec.Email, &rec.PartySize, &rec.Date, &rec.Time,
		&menuType, &prefs, &resident, &rec.Status, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, reservation.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get reservation: %w", err)
	}

	rec.MenuType = menuType.String
	rec.Preferences = prefs.String
	if resident.Valid {
		v := resident.Bool
		rec.Resident = &v
	}
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("store: parse created_at %q: %w", createdAt, err)
	}
	return &rec, nil
}

// BookedCovers sums party sizes of confirmed reservations on date whose
// start falls in [fromMinutes, toMinutes).
func (s *Store) BookedCovers(ctx context.Context, date string, fromMinutes, toMinutes int) (int, error) {
	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(personas), 0) FROM reservations
		 WHERE fecha = ? AND slot_minutes >= ? AND slot_minutes < ? AND status = ?`,
		date, fromMinutes, toMinutes, reservation.StatusConfirmed,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("store: booked covers: %w", err)
	}
	return total, nil
}

// ─── Handoffs ────────────────────────────────────────────────────────────────

// MarkHumanRequired upserts the handoff for conversationID.
func (s *Store) MarkHumanRequired(ctx context.Context, conversationID, reason string) (escalation.Handoff, error) {
	h := escalation.Handoff{ConversationID: conversationID, Reason: reason, MarkedAt: s.now()}
	_, err := s.execHook(ctx, s.db,
		`INSERT INTO handoffs (conversation_id, reason, marked_at) VALUES (?, ?, ?)
		 ON CONFLICT(conversation_id) DO UPDATE SET reason = excluded.reason, marked_at = excluded.marked_at`,
		h.ConversationID, h.Reason, h.MarkedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return escalation.Handoff{}, fmt.Errorf("store: mark human required: %w", err)
	}
	return h, nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableBool(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}

// isUniqueViolation checks if an error is a SQLite UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
