package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lacabrera/cabrera-mcp/internal/schedule"
)

// SlotStep is the spacing of candidate start times.
const SlotStep = 30

// Capacity is a store-backed Calendar. A start time t is available
// when the covers of reservations overlapping [t, t+duration) leave
// room for at least one more guest. The estimate is read-only; two concurrent
// bookings can still both succeed.
type Capacity struct {
	occupancy Occupancy
	seats     int
	duration  time.Duration
	blocked   map[string]bool
	windows   []schedule.Window
}

// NewCapacity creates a Capacity calendar. Slots are generated inside
// windows; blocked lists YYYY-MM-DD dates that are closed.
func NewCapacity(occ Occupancy, seats int, duration time.Duration, blocked []string, windows ...schedule.Window) *Capacity {
	if duration <= 0 {
		duration = DefaultDuration
	}
	b := make(map[string]bool, len(blocked))
	for _, d := range blocked {
		b[d] = true
	}
	return &Capacity{occupancy: occ, seats: seats, duration: duration, blocked: b, windows: windows}
}

// IsDateBlocked implements Calendar.
func (c *Capacity) IsDateBlocked(_ context.Context, date string) (bool, error) {
	return c.blocked[date], nil
}

// CheckAvailability implements Calendar.
func (c *Capacity) CheckAvailability(ctx context.Context, date, hhmm string) (Availability, error) {
	m, err := schedule.Evaluate(date, hhmm)
	if err != nil {
		return Availability{}, err
	}
	if c.blocked[date] {
		zero := 0
		return Availability{Available: false, RemainingCapacity: &zero, Source: SourceStore, Note: "the restaurant is closed on " + date}, nil
	}
	if !c.inService(m.Minutes) {
		zero := 0
		return Availability{Available: false, RemainingCapacity: &zero, Source: SourceStore,
			Note: fmt.Sprintf("no service at %s; seating is %s", hhmm, c.serviceHours())}, nil
	}
	remaining, err := c.remaining(ctx, date, m.Minutes, c.duration)
	if err != nil {
		return Availability{}, err
	}
	a := Availability{Available: remaining > 0, RemainingCapacity: &remaining, Source: SourceStore}
	if !a.Available {
		a.Note = "fully booked at " + hhmm
	}
	return a, nil
}

// AvailableSlots implements Calendar. Every SlotStep-minute start inside
// the service windows is listed with its own availability. A blocked
// date has no slots.
func (c *Capacity) AvailableSlots(ctx context.Context, date string, duration time.Duration) ([]Slot, error) {
	if _, err := schedule.Evaluate(date, "00:00"); err != nil {
		return nil, err
	}
	if c.blocked[date] {
		return []Slot{}, nil
	}
	if duration <= 0 {
		duration = c.duration
	}

	var slots []Slot
	for _, w := range c.windows {
		for start := w.Start; start <= w.End; start += SlotStep {
			remaining, err := c.remaining(ctx, date, start, duration)
			if err != nil {
				return nil, err
			}
			r := remaining
			slots = append(slots, Slot{
				Time:              schedule.FormatMinutes(start),
				Available:         remaining > 0,
				RemainingCapacity: &r,
			})
		}
	}
	return slots, nil
}

// inService reports whether minutes falls in a configured window. With no
// windows every time is in service.
func (c *Capacity) inService(minutes int) bool {
	return len(c.windows) == 0 || schedule.AnyContains(minutes, c.windows...)
}

func (c *Capacity) serviceHours() string {
	parts := make([]string, len(c.windows))
	for i, w := range c.windows {
		parts[i] = w.String()
	}
	return strings.Join(parts, ", ")
}

func (c *Capacity) remaining(ctx context.Context, date string, minutes int, duration time.Duration) (int, error) {
	span := int(duration.Minutes())
	booked, err := c.occupancy.BookedCovers(ctx, date, minutes-span+1, minutes+span)
	if err != nil {
		return 0, fmt.Errorf("calendar: booked covers for %s %s: %w", date, schedule.FormatMinutes(minutes), err)
	}
	left := c.seats - booked
	if left < 0 {
		left = 0
	}
	return left, nil
}
