// Package menu evaluates whether a requested date and time is eligible
// for one of the restaurant's restricted menus.
//
// Each menu is an ordered chain of checks. The first failing check
// decides the verdict and later checks are never evaluated, so the
// priority rule on a Verdict always names exactly one check.
package menu

import "strings"

// Rule tags the check that produced a Verdict.
type Rule string

const (
	RuleAccept            Rule = "ACCEPT"
	RuleAcceptAlways      Rule = "ACCEPT_ALWAYS"
	RuleRejectWeekend     Rule = "REJECT_WEEKEND"
	RuleRejectSchedule    Rule = "REJECT_SCHEDULE"
	RuleRejectNotResident Rule = "REJECT_NOT_RESIDENT"
	RuleRejectAlways      Rule = "REJECT_ALWAYS"
	RuleError             Rule = "ERROR"
)

// FullMenu is the unrestricted menu, offered as the alternative to
// every rejection.
const FullMenu = "full menu"

// Kind identifies which rule chain a free-text menu type maps to.
type Kind string

const (
	KindExecutive Kind = "ejecutivo"
	KindManso     Kind = "manso"
	KindFull      Kind = "carta"
)

// Classify maps a menu type as typed by the customer to a Kind.
// Matching is by substring, so "Menú Ejecutivo" is executive.
func Classify(menuType string) Kind {
	v := strings.ToLower(menuType)
	switch {
	case strings.Contains(v, string(KindExecutive)):
		return KindExecutive
	case strings.Contains(v, string(KindManso)):
		return KindManso
	default:
		return KindFull
	}
}

// Verdict is the result of evaluating one rule chain.
type Verdict struct {
	Valid        bool     `json:"valid"`
	Message      string   `json:"message"`
	PriorityRule Rule     `json:"priority_rule"`
	Alternatives []string `json:"alternatives,omitempty"`
}

func accept(rule Rule, message string) Verdict {
	return Verdict{Valid: true, Message: message, PriorityRule: rule}
}

func reject(rule Rule, message string) Verdict {
	return Verdict{
		Valid:        false,
		Message:      message,
		PriorityRule: rule,
		Alternatives: []string{FullMenu},
	}
}

// Malformed is the verdict for input that could not be evaluated.
func Malformed(err error) Verdict {
	return Verdict{
		Valid:        false,
		Message:      "Could not validate: " + err.Error(),
		PriorityRule: RuleError,
	}
}

// RegularMenu is the verdict for any menu type without restrictions.
func RegularMenu() Verdict {
	return accept(RuleAccept, "Regular menu available")
}
