package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Spok95/school-admin/internal/config"
	"github.com/Spok95/school-admin/internal/db"
	"github.com/Spok95/school-admin/internal/fees"
	"github.com/Spok95/school-admin/internal/httpapi"
	"github.com/Spok95/school-admin/internal/jobs"
	"github.com/Spok95/school-admin/internal/logging"
	"github.com/Spok95/school-admin/internal/observability"
)

var release = "dev" // set via -ldflags at build time

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer lg.Closer()
	sugar := lg.Sugar

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, release)
	if err != nil {
		sugar.Warnw("sentry init failed", "err", err)
	}
	defer flushSentry()

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		sugar.Fatalw("db connect failed", "err", err)
	}
	defer func() { _ = database.Close() }()

	if err := db.Migrate(database); err != nil {
		sugar.Fatalw("migrations failed", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	generator := fees.NewDBGenerator(database, cfg.InvoiceDueDay)

	if cfg.EnableScheduler {
		runner := jobs.New(ctx, cfg.Location)
		runner.MonthlyAt(1, "monthly_invoices", jobs.MonthlyInvoices(generator, sugar))
		sugar.Infow("monthly invoice job scheduled", "day", 1)
	} else {
		sugar.Info("scheduler disabled; invoices must be generated over HTTP")
	}

	httpapi.StartOps(ctx, cfg.MetricsAddr, database)

	handlers := httpapi.NewHandlers(database, generator, sugar, cfg.Location)
	app := httpapi.NewApp(handlers)

	go func() {
		<-ctx.Done()
		_ = app.ShutdownWithTimeout(3 * time.Second)
	}()

	sugar.Infow("listening", "addr", cfg.Addr, "metrics", cfg.MetricsAddr)
	if err := app.Listen(cfg.Addr); err != nil {
		sugar.Fatalw("server stopped", "err", err)
	}
}
