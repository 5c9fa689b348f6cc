package ctxutil

import (
	"context"
	"time"
)

var DefaultDBTimeout = 5 * time.Second

// WithTimeout is a guard over context.WithTimeout for non-positive durations.
func WithTimeout(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, d)
}

// WithDBTimeout applies the standard DB timeout, respecting a tighter parent deadline.
func WithDBTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if dl, ok := parent.Deadline(); ok {
		remain := time.Until(dl)
		if remain < DefaultDBTimeout {
			return context.WithTimeout(parent, remain)
		}
	}
	return context.WithTimeout(parent, DefaultDBTimeout)
}
