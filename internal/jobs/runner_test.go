package jobs

import (
	"testing"
	"time"
)

func TestNextMonthlyFire(t *testing.T) {
	loc := time.UTC

	midJuly := time.Date(2024, time.July, 15, 10, 0, 0, 0, loc)
	if got := nextMonthlyFire(midJuly, 1); !got.Equal(time.Date(2024, time.August, 1, 0, 0, 0, 0, loc)) {
		t.Errorf("mid-month: want Aug 1, got %s", got)
	}

	firstMorning := time.Date(2024, time.July, 1, 0, 30, 0, 0, loc)
	if got := nextMonthlyFire(firstMorning, 1); !got.Equal(time.Date(2024, time.August, 1, 0, 0, 0, 0, loc)) {
		t.Errorf("already past today's fire: want Aug 1, got %s", got)
	}

	dec := time.Date(2024, time.December, 20, 0, 0, 0, 0, loc)
	if got := nextMonthlyFire(dec, 1); !got.Equal(time.Date(2025, time.January, 1, 0, 0, 0, 0, loc)) {
		t.Errorf("year boundary: want Jan 1 2025, got %s", got)
	}
}
