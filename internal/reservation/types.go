// Package reservation implements the reservation workflow: required-field
// checking, request invariants, menu eligibility, identifier generation
// and record assembly.
//
// The workflow never panics or returns a Go error to its caller. Every
// path ends in an Outcome with a success flag and a message, because the
// conversational agent on the other side has no other way to detect failure.
package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/lacabrera/cabrera-mcp/internal/menu"
)

// StatusConfirmed is the only status this workflow produces.
const StatusConfirmed = "confirmed"

// ErrNotFound is returned by repositories when a reservation id is unknown.
var ErrNotFound = errors.New("reservation not found")

// Request is one reservation attempt as submitted by the agent.
// JSON names follow the tool's argument names.
type Request struct {
	Name        string `json:"nombre" validate:"required"`
	Phone       string `json:"telefono" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PartySize   int    `json:"personas" validate:"min=1,max=20"`
	Date        string `json:"fecha" validate:"datetime=2006-01-02"`
	Time        string `json:"hora" validate:"datetime=15:04"`
	MenuType    string `json:"tipo_menu,omitempty"`
	Preferences string `json:"preferencias,omitempty"`
	// Resident is tri-state: nil means the customer was never asked.
	Resident *bool `json:"residente_argentino,omitempty"`
}

// Record is a confirmed reservation as handed to the Repository.
type Record struct {
	ID string `json:"id"`
	Request
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`
}

// Details echoes the key booking facts back to the customer.
type Details struct {
	Name      string `json:"nombre"`
	Date      string `json:"fecha"`
	Time      string `json:"hora"`
	PartySize int    `json:"personas"`
	MenuType  string `json:"tipo_menu"`
}

// State is the terminal state of one workflow run.
type State string

const (
	StatePersisted State = "persisted"
	StateRejected  State = "rejected"
	StateErrored   State = "errored"
)

// ErrorKind classifies an unsuccessful Outcome.
type ErrorKind string

const (
	KindMissingField ErrorKind = "missing_field"
	KindInvalidField ErrorKind = "invalid_field"
	KindBusinessRule ErrorKind = "business_rule"
	KindCollaborator ErrorKind = "collaborator_failure"
)

// Outcome is the structured result of Service.Create.
type Outcome struct {
	Success       bool      `json:"success"`
	Message       string    `json:"message"`
	State         State     `json:"state"`
	ReservationID string    `json:"reservation_id,omitempty"`
	Details       *Details  `json:"details,omitempty"`
	ErrorKind     ErrorKind `json:"error_kind,omitempty"`
	Errors        []string  `json:"errors,omitempty"`
	PriorityRule  menu.Rule `json:"priority_rule,omitempty"`
	Alternatives  []string  `json:"alternatives,omitempty"`

	// Record is set only when State is StatePersisted.
	Record *Record `json:"-"`
}

// Repository persists confirmed reservations. Implementations own
// durability and any duplicate-prevention policy.
type Repository interface {
	SaveReservation(ctx context.Context, rec Record) (string, error)
	GetReservation(ctx context.Context, id string) (*Record, error)
}

// Observer is notified after a reservation has been persisted.
// It's an optional dependency; a nil observer disables notification.
type Observer interface {
	OnConfirmed(ctx context.Context, rec Record)
}
