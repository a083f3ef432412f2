package schedule

import "fmt"

// Window is a closed interval of minutes since midnight.
type Window struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Lunch and Dinner are the two service windows of the restaurant.
var (
	Lunch  = Window{Start: 12*60 + 30, End: 16*60 + 30}
	Dinner = Window{Start: 20 * 60, End: 23*60 + 30}
)

// ParseWindow builds a Window from two HH:MM bounds.
func ParseWindow(start, end string) (Window, error) {
	s, err := ParseMinutes(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseMinutes(end)
	if err != nil {
		return Window{}, err
	}
	if e < s {
		return Window{}, fmt.Errorf("%w: window %s-%s ends before it starts", ErrMalformedInput, start, end)
	}
	return Window{Start: s, End: e}, nil
}

// Contains reports whether minutes is within the window, bounds included.
func (w Window) Contains(minutes int) bool {
	return minutes >= w.Start && minutes <= w.End
}

// String renders the window as "HH:MM-HH:MM".
func (w Window) String() string {
	return FormatMinutes(w.Start) + "-" + FormatMinutes(w.End)
}

// AnyContains reports whether any of the windows contains minutes.
func AnyContains(minutes int, windows ...Window) bool {
	for _, w := range windows {
		if w.Contains(minutes) {
			return true
		}
	}
	return false
}
