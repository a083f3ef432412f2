package menu

import (
	"fmt"
	"strings"

	"github.com/lacabrera/cabrera-mcp/internal/schedule"
)

// Engine evaluates the restricted menus against a fixed set of Rules.
// It is immutable after construction and safe for concurrent use.
type Engine struct {
	rules Rules
}

// NewEngine creates an Engine for the given rules.
func NewEngine(rules Rules) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the rules the engine was built with.
func (e *Engine) Rules() Rules { return e.rules }

// Executive runs the executive chain: day, then time, then residency.
func (e *Engine) Executive(date, hhmm string, resident bool) Verdict {
	m, err := schedule.Evaluate(date, hhmm)
	if err != nil {
		return Malformed(err)
	}

	r := e.rules
	if !r.ExecutiveDays.Contains(m.Weekday) {
		return reject(RuleRejectWeekend,
			fmt.Sprintf("The executive menu is only available %s", r.ExecutiveDays))
	}
	if !r.ExecutiveWindow.Contains(m.Minutes) {
		return reject(RuleRejectSchedule,
			fmt.Sprintf("The executive menu is only available from %s to %s",
				schedule.FormatMinutes(r.ExecutiveWindow.Start), schedule.FormatMinutes(r.ExecutiveWindow.End)))
	}
	if !resident {
		return reject(RuleRejectNotResident, "The executive menu is only available to Argentine residents")
	}
	return accept(RuleAccept, "Executive menu available")
}

// Manso runs the manso chain. The day check has absolute priority:
// outside the allowed days the menu is rejected whatever the time.
func (e *Engine) Manso(date, hhmm string) Verdict {
	m, err := schedule.Evaluate(date, hhmm)
	if err != nil {
		return Malformed(err)
	}

	r := e.rules
	if !r.MansoDays.Contains(m.Weekday) {
		return reject(RuleRejectAlways,
			fmt.Sprintf("Sorry, the manso menu is only available %s", r.MansoDays))
	}
	if schedule.AnyContains(m.Minutes, r.MansoWindows...) {
		return accept(RuleAcceptAlways, "Great! You can enjoy the manso menu")
	}

	windows := make([]string, 0, len(r.MansoWindows))
	for _, w := range r.MansoWindows {
		windows = append(windows, "from "+schedule.FormatMinutes(w.Start)+" to "+schedule.FormatMinutes(w.End))
	}
	return reject(RuleRejectSchedule,
		"The manso menu is available "+strings.Join(windows, " and "))
}

// ForKind dispatches to the chain for kind. resident is only consulted
// by the executive chain; KindFull is always valid.
func (e *Engine) ForKind(kind Kind, date, hhmm string, resident bool) Verdict {
	switch kind {
	case KindExecutive:
		return e.Executive(date, hhmm, resident)
	case KindManso:
		return e.Manso(date, hhmm)
	default:
		return RegularMenu()
	}
}
