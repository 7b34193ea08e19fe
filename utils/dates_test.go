package utils

import (
	"testing"
	"time"
)

func TestParseDateLayouts(t *testing.T) {
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2025-03-10", "2025-03-10T18:30:00Z", "2025-03-10T07:00:00", "10/03/2025"} {
		got, err := ParseDate(in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", in, err)
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseDate("next tuesday"); err == nil {
		t.Fatal("expected error for garbage input")
	}
}

func TestCalendarDayDifference(t *testing.T) {
	from := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 13, 1, 0, 0, 0, time.UTC)
	if got := CalendarDayDifference(to, from); got != 3 {
		t.Fatalf("got %d nights, want 3", got)
	}
	if got := CalendarDayDifference(from, to); got != -3 {
		t.Fatalf("reverse difference = %d, want -3", got)
	}
}
