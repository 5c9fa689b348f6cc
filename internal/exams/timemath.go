package exams

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock strings are "HH:MM" on a 24h dial.

func parseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("bad time %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("bad hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("bad minute in %q", s)
	}
	return h*60 + m, nil
}

func formatClock(minutes int) string {
	minutes = ((minutes % 1440) + 1440) % 1440
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// addHours shifts a clock string, wrapping past midnight.
func addHours(start string, hours int) (string, error) {
	m, err := parseClock(start)
	if err != nil {
		return "", err
	}
	return formatClock(m + hours*60), nil
}

// durationLabel renders the span between two clock strings as "<H>h <M>m".
// An end before the start is read as crossing midnight.
func durationLabel(start, end string) (string, error) {
	s, err := parseClock(start)
	if err != nil {
		return "", err
	}
	e, err := parseClock(end)
	if err != nil {
		return "", err
	}
	d := e - s
	if d < 0 {
		d += 24 * 60
	}
	return fmt.Sprintf("%dh %dm", d/60, d%60), nil
}
