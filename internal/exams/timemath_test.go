package exams

import "testing"

func TestDurationLabel(t *testing.T) {
	cases := []struct {
		start, end, want string
	}{
		{"09:00", "12:00", "3h 0m"},
		{"09:15", "11:45", "2h 30m"},
		{"22:00", "01:30", "3h 30m"}, // crosses midnight
		{"09:00", "09:00", "0h 0m"},
	}
	for _, tc := range cases {
		got, err := durationLabel(tc.start, tc.end)
		if err != nil {
			t.Fatalf("durationLabel(%q, %q): %v", tc.start, tc.end, err)
		}
		if got != tc.want {
			t.Errorf("durationLabel(%q, %q) = %q, want %q", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestAddHoursWraps(t *testing.T) {
	got, err := addHours("23:00", 3)
	if err != nil {
		t.Fatal(err)
	}
	if got != "02:00" {
		t.Errorf("addHours(23:00, 3) = %q, want 02:00", got)
	}
}

func TestParseClockRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "9", "25:00", "09:60", "nine"} {
		if _, err := parseClock(bad); err == nil {
			t.Errorf("parseClock(%q) accepted garbage", bad)
		}
	}
}
