package fees

import "sync"

// monthLimiter serializes generator runs per billing month within this
// process. The existence-check-then-insert sequence in Generate is not
// guarded by the database, so two interleaved runs for the same month could
// both decide "no invoice yet" for a student; holding a per-month mutex
// closes that window for the single-process deployment we actually run.
type monthLimiter struct {
	mu      sync.Mutex
	byMonth map[string]*sync.Mutex
}

func newMonthLimiter() *monthLimiter {
	return &monthLimiter{byMonth: make(map[string]*sync.Mutex)}
}

func (l *monthLimiter) lock(month string) func() {
	l.mu.Lock()
	m, ok := l.byMonth[month]
	if !ok {
		m = &sync.Mutex{}
		l.byMonth[month] = m
	}
	l.mu.Unlock()

	m.Lock()
	return func() { m.Unlock() }
}
