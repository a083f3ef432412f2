package calendar

import (
	"context"
	"slices"
	"time"

	"github.com/lacabrera/cabrera-mcp/internal/schedule"
)

// StubNote is attached to every AlwaysAvailable answer.
const StubNote = "no calendar integration configured: availability is assumed, not checked"

// stubSlots are the start times offered when no calendar is configured.
var stubSlots = []string{"12:30", "13:00", "20:00", "21:00"}

// AlwaysAvailable reports every date and time as available, except the
// YYYY-MM-DD dates in Closed. It still rejects malformed input so callers
// see the same errors as with a real calendar.
type AlwaysAvailable struct {
	Closed []string
}

// CheckAvailability implements Calendar.
func (s AlwaysAvailable) CheckAvailability(_ context.Context, date, hhmm string) (Availability, error) {
	if _, err := schedule.Evaluate(date, hhmm); err != nil {
		return Availability{}, err
	}
	if s.closed(date) {
		return Availability{Available: false, Source: SourceStub, Note: "the restaurant is closed on " + date}, nil
	}
	return Availability{Available: true, Source: SourceStub, Note: StubNote}, nil
}

// AvailableSlots implements Calendar.
func (s AlwaysAvailable) AvailableSlots(_ context.Context, date string, _ time.Duration) ([]Slot, error) {
	if _, err := schedule.Evaluate(date, "00:00"); err != nil {
		return nil, err
	}
	if s.closed(date) {
		return []Slot{}, nil
	}
	slots := make([]Slot, 0, len(stubSlots))
	for _, t := range stubSlots {
		slots = append(slots, Slot{Time: t, Available: true})
	}
	return slots, nil
}

// IsDateBlocked implements Calendar.
func (s AlwaysAvailable) IsDateBlocked(_ context.Context, date string) (bool, error) {
	return s.closed(date), nil
}

func (s AlwaysAvailable) closed(date string) bool { return slices.Contains(s.Closed, date) }
