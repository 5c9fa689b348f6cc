package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Spok95/school-admin/internal/ctxutil"
	"github.com/Spok95/school-admin/internal/fees"
)

// MonthlyInvoices returns the job body for the 1st-of-month billing run.
// Month defaults inside the generator to the month the job fires in;
// overwrite stays false so a rerun after a crash only fills the gaps.
func MonthlyInvoices(gen *fees.Generator, log *zap.SugaredLogger) Job {
	return func(ctx context.Context) error {
		ctx, cancel := ctxutil.WithTimeout(ctx, 5*time.Minute)
		defer cancel()
		sum, err := gen.Generate(ctx, "", false)
		if err != nil {
			log.Errorw("monthly invoice run failed", "err", err)
			return err
		}
		log.Infow("monthly invoice run done",
			"generated", sum.Generated, "updated", sum.Updated, "skipped", sum.Skipped)
		return nil
	}
}
