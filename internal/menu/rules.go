package menu

import (
	"fmt"
	"strings"

	"github.com/lacabrera/cabrera-mcp/internal/schedule"
)

// DayRange is a closed range of weekday ordinals (Monday = 0).
type DayRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Contains reports whether weekday is inside the range.
func (r DayRange) Contains(weekday int) bool {
	return schedule.IsWeekdayIn(weekday, r.From, r.To)
}

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// String renders the range as "Monday to Friday".
func (r DayRange) String() string {
	return dayNames[r.From] + " to " + dayNames[r.To]
}

// Rules holds the day ranges and service windows of both restricted menus.
type Rules struct {
	ExecutiveDays   DayRange          `json:"executive_days"`
	ExecutiveWindow schedule.Window   `json:"executive_window"`
	MansoDays       DayRange          `json:"manso_days"`
	MansoWindows    []schedule.Window `json:"manso_windows"`
}

// DefaultRules returns the house rules: executive menu Monday to Friday
// at lunch for residents, manso menu Monday to Thursday at lunch or dinner.
func DefaultRules() Rules {
	return Rules{
		ExecutiveDays:   DayRange{From: schedule.Monday, To: schedule.Friday},
		ExecutiveWindow: schedule.Lunch,
		MansoDays:       DayRange{From: schedule.Monday, To: schedule.Thursday},
		MansoWindows:    []schedule.Window{schedule.Lunch, schedule.Dinner},
	}
}

// Describe renders the rules as a short human-readable summary.
func (r Rules) Describe() string {
	windows := make([]string, 0, len(r.MansoWindows))
	for _, w := range r.MansoWindows {
		windows = append(windows, w.String())
	}
	return fmt.Sprintf(
		"Executive menu: %s, %s, Argentine residents only.\n"+
			"Manso menu: %s, %s. Never available outside those days.",
		r.ExecutiveDays, r.ExecutiveWindow, r.MansoDays, strings.Join(windows, " and "),
	)
}
