// Package calendar answers availability questions for a date and time.
//
// Two implementations exist. AlwaysAvailable is the explicit fallback
// used when no calendar integration is configured: it refuses only the
// configured closed dates and says so in every answer. Capacity derives availability from the
// reservations already stored, a seating capacity and a list of blocked
// dates. Neither one reserves seats; double-booking prevention is not
// provided here.
package calendar

import (
	"context"
	"time"
)

// Sources reported on every Availability.
const (
	SourceStub  = "stub"
	SourceStore = "store"
)

// DefaultDuration is how long a table is assumed to be occupied.
const DefaultDuration = 120 * time.Minute

// Availability is the answer for one date and time.
type Availability struct {
	Available         bool   `json:"available"`
	RemainingCapacity *int   `json:"remaining_capacity,omitempty"`
	Source            string `json:"source"`
	Note              string `json:"note,omitempty"`
}

// Slot is one candidate start time on a date.
type Slot struct {
	Time              string `json:"hora"`
	Available         bool   `json:"available"`
	RemainingCapacity *int   `json:"remaining_capacity,omitempty"`
}

// Calendar is the availability collaborator.
type Calendar interface {
	CheckAvailability(ctx context.Context, date, hhmm string) (Availability, error)
	AvailableSlots(ctx context.Context, date string, duration time.Duration) ([]Slot, error)
	IsDateBlocked(ctx context.Context, date string) (bool, error)
}

// Occupancy reports covers already booked. reservation.MemoryRepository
// and both stores implement it.
type Occupancy interface {
	BookedCovers(ctx context.Context, date string, fromMinutes, toMinutes int) (int, error)
}
