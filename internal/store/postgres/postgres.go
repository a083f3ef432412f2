// Package postgres stores reservations and handoffs in PostgreSQL for
// deployments that run more than one server process.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lacabrera/cabrera-mcp/internal/escalation"
	"github.com/lacabrera/cabrera-mcp/internal/reservation"
	"github.com/lacabrera/cabrera-mcp/internal/schedule"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS reservations (
	id                  TEXT PRIMARY KEY,
	nombre              TEXT NOT NULL,
	telefono            TEXT NOT NULL,
	email               TEXT NOT NULL,
	personas            INTEGER NOT NULL,
	fecha               DATE NOT NULL,
	hora                TEXT NOT NULL,
	slot_minutes        INTEGER NOT NULL,
	tipo_menu           TEXT,
	preferencias        TEXT,
	residente_argentino BOOLEAN,
	status              TEXT NOT NULL DEFAULT 'confirmed',
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_reservations_slot ON reservations(fecha, slot_minutes);

CREATE TABLE IF NOT EXISTS handoffs (
	conversation_id TEXT PRIMARY KEY,
	reason          TEXT NOT NULL,
	marked_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Store is the PostgreSQL-backed reservation and handoff store.
type Store struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// Open connects to databaseURL and runs migrations.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse url: %w", err)
	}
	cfg.MaxConnLifetime = 5 * time.Minute
	cfg.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	s := &Store{pool: pool, now: func() time.Time { return time.Now().UTC() }}
	if err := s.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: migration: %w", err)
	}
	return s, nil
}

// Migrate creates the schema if it does not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schemaSQL)
	return err
}

// Close releases every pooled connection.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Ping checks connectivity with a short timeout.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: ping: %w", err)
	}
	return nil
}

// SaveReservation inserts rec. A duplicate id is an error.
func (s *Store) SaveReservation(ctx context.Context, rec reservation.Record) (string, error) {
	minutes, err := schedule.ParseMinutes(rec.Time)
	if err != nil {
		return "", fmt.Errorf("postgres: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO reservations (id, nombre, telefono, email, personas, fecha, hora, slot_minutes,
		                          tipo_menu, preferencias, residente_argentino, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8, $9, $10, $11, $12, $13)
	`, rec.ID, rec.Name, rec.Phone, rec.Email, rec.PartySize, rec.Date, rec.Time, minutes,
		nullable(rec.MenuType), nullable(rec.Preferences), rec.Resident, rec.Status, rec.CreatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", fmt.Errorf("postgres: reservation %s already exists", rec.ID)
		}
		return "", fmt.Errorf("postgres: insert reservation: %w", err)
	}
	return rec.ID, nil
}

// GetReservation returns reservation.ErrNotFound for an unknown id.
func (s *Store) GetReservation(ctx context.Context, id string) (*reservation.Record, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, nombre, telefono, email, personas, to_char(fecha, 'YYYY-MM-DD'), hora,
		       COALESCE(tipo_menu, ''), COALESCE(preferencias, ''), residente_argentino, status, created_at
		FROM reservations WHERE id = $1
	`, id)

	var rec reservation.Record
	err := row.Scan(&rec.ID, &rec.Name, &rec.Phone, &rec.Email, &rec.PartySize, &rec.Date, &rec.Time,
		&rec.MenuType, &rec.Preferences, &rec.Resident, &rec.Status, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, reservation.ErrNotFound
		}
		return nil, fmt.Errorf("postgres: get reservation: %w", err)
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec, nil
}

// BookedCovers sums party sizes of confirmed reservations on date whose
// start falls in [fromMinutes, toMinutes).
func (s *Store) BookedCovers(ctx context.Context, date string, fromMinutes, toMinutes int) (int, error) {
	var total int
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(personas), 0)::int FROM reservations
		WHERE fecha = $1::date AND slot_minutes >= $2 AND slot_minutes < $3 AND status = $4
	`, date, fromMinutes, toMinutes, reservation.StatusConfirmed).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("postgres: booked covers: %w", err)
	}
	return total, nil
}

// MarkHumanRequired upserts the handoff for conversationID.
func (s *Store) MarkHumanRequired(ctx context.Context, conversationID, reason string) (escalation.Handoff, error) {
	h := escalation.Handoff{ConversationID: conversationID, Reason: reason, MarkedAt: s.now()}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO handoffs (conversation_id, reason, marked_at) VALUES ($1, $2, $3)
		ON CONFLICT (conversation_id) DO UPDATE SET reason = EXCLUDED.reason, marked_at = EXCLUDED.marked_at
	`, h.ConversationID, h.Reason, h.MarkedAt)
	if err != nil {
		return escalation.Handoff{}, fmt.Errorf("postgres: mark human required: %w", err)
	}
	return h, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
