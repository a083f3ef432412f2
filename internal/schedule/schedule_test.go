package schedule

import (
	"errors"
	"testing"
)

func TestEvaluate_WeekdayOrdinals(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2024-03-11", Monday},
		{"2024-03-12", Tuesday},
		{"2024-03-13", Wednesday},
		{"2024-03-14", Thursday},
		{"2024-03-15", Friday},
		{"2024-03-16", Saturday},
		{"2024-03-17", Sunday},
		{"2024-02-29", Thursday},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			m, err := Evaluate(tt.date, "12:00")
			if err != nil {
				t.Fatalf("Evaluate(%q) error: %v", tt.date, err)
			}
			if m.Weekday != tt.want {
				t.Errorf("Weekday = %d, want %d", m.Weekday, tt.want)
			}
		})
	}
}

func TestEvaluate_Minutes(t *testing.T) {
	tests := []struct {
		hhmm string
		want int
	}{
		{"00:00", 0},
		{"12:30", 750},
		{"16:30", 990},
		{"20:00", 1200},
		{"23:30", 1410},
		{"23:59", 1439},
	}
	for _, tt := range tests {
		m, err := Evaluate("2024-03-11", tt.hhmm)
		if err != nil {
			t.Fatalf("Evaluate(%q) error: %v", tt.hhmm, err)
		}
		if m.Minutes != tt.want {
			t.Errorf("Minutes(%s) = %d, want %d", tt.hhmm, m.Minutes, tt.want)
		}
	}
}

func TestEvaluate_Malformed(t *testing.T) {
	tests := []struct {
		name, date, hhmm string
	}{
		{"slashes", "2024/03/11", "13:00"},
		{"day first", "11-03-2024", "13:00"},
		{"impossible date", "2024-02-30", "13:00"},
		{"empty date", "", "13:00"},
		{"hour out of range", "2024-03-11", "25:00"},
		{"seconds", "2024-03-11", "13:00:00"},
		{"am/pm", "2024-03-11", "1pm"},
		{"empty time", "2024-03-11", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.date, tt.hhmm)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrMalformedInput) {
				t.Errorf("error %v should wrap ErrMalformedInput", err)
			}
		})
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	first, err := Evaluate("2024-03-14", "21:15")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 50; i++ {
		again, _ := Evaluate("2024-03-14", "21:15")
		if again != first {
			t.Fatalf("iteration %d: got %+v, want %+v", i, again, first)
		}
	}
}

func TestWindow_ContainsBounds(t *testing.T) {
	cases := []struct {
		w       Window
		minutes int
		want    bool
	}{
		{Lunch, 749, false},
		{Lunch, 750, true},
		{Lunch, 990, true},
		{Lunch, 991, false},
		{Dinner, 1199, false},
		{Dinner, 1200, true},
		{Dinner, 1410, true},
		{Dinner, 1411, false},
	}
	for _, c := range cases {
		if got := c.w.Contains(c.minutes); got != c.want {
			t.Errorf("%s.Contains(%d) = %v, want %v", c.w, c.minutes, got, c.want)
		}
	}
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("12:30", "16:30")
	if err != nil {
		t.Fatal(err)
	}
	if w != Lunch {
		t.Errorf("ParseWindow = %+v, want %+v", w, Lunch)
	}
	if w.String() != "12:30-16:30" {
		t.Errorf("String() = %q", w.String())
	}

	if _, err := ParseWindow("16:30", "12:30"); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("reversed window error = %v, want ErrMalformedInput", err)
	}
}

func TestAnyContains(t *testing.T) {
	if !AnyContains(1300, Lunch, Dinner) {
		t.Error("1300 should be in dinner")
	}
	if AnyContains(1100, Lunch, Dinner) {
		t.Error("1100 is between services")
	}
	if AnyContains(800) {
		t.Error("no windows should never match")
	}
}
