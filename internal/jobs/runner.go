package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/Spok95/school-admin/internal/observability"
)

type Job func(ctx context.Context) error

type Runner struct {
	ctx context.Context
	loc *time.Location
}

func New(ctx context.Context, loc *time.Location) *Runner {
	if loc == nil {
		loc = time.Local
	}
	return &Runner{ctx: ctx, loc: loc}
}

func (r *Runner) Every(interval time.Duration, name string, fn Job) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-r.ctx.Done():
				return
			case <-t.C:
				r.run(name, fn)
			}
		}
	}()
}

// MonthlyAt fires fn once per month on the given day at 00:00 in the runner's
// location. The next fire time is recomputed after each run, so a process
// that sleeps through the boundary (laptop dev, container pause) fires on
// wake instead of skipping the month.
func (r *Runner) MonthlyAt(day int, name string, fn Job) {
	go func() {
		for {
			next := nextMonthlyFire(time.Now().In(r.loc), day)
			t := time.NewTimer(time.Until(next))
			select {
			case <-r.ctx.Done():
				t.Stop()
				return
			case <-t.C:
				r.run(name, fn)
			}
		}
	}()
}

func (r *Runner) run(name string, fn Job) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			observability.CaptureErr(fmt.Errorf("panic in job %s: %v", name, rec))
			jobErrors.WithLabelValues(name).Inc()
		}
	}()
	if err := fn(r.ctx); err != nil {
		observability.CaptureErr(fmt.Errorf("job %s: %w", name, err))
		jobErrors.WithLabelValues(name).Inc()
	}
	jobRuns.WithLabelValues(name).Inc()
	jobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}

func nextMonthlyFire(now time.Time, day int) time.Time {
	fire := time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, now.Location())
	if !fire.After(now) {
		fire = fire.AddDate(0, 1, 0)
	}
	return fire
}
