package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr            string
	MetricsAddr     string
	DatabaseURL     string
	Location        *time.Location
	LogLevel        string
	Env             string // dev|prod
	SentryDSN       string
	EnableScheduler bool // false under stateless deployments; invoices are then triggered over HTTP
	InvoiceDueDay   int  // day of month invoices fall due
}

func Load() (*Config, error) {
	tz := getenv("TZ", "Asia/Karachi")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.Local
	}

	dueDay, err := strconv.Atoi(getenv("INVOICE_DUE_DAY", "10"))
	if err != nil || dueDay < 1 || dueDay > 28 {
		return nil, fmt.Errorf("INVOICE_DUE_DAY: must be a day 1..28, got %q", os.Getenv("INVOICE_DUE_DAY"))
	}

	cfg := &Config{
		Addr:            getenv("ADDR", ":8080"),
		MetricsAddr:     getenv("METRICS_ADDR", ":9090"),
		DatabaseURL:     mustEnv("DATABASE_URL"),
		Location:        loc,
		LogLevel:        getenv("LOG_LEVEL", "info"),
		Env:             getenv("ENV", "dev"),
		SentryDSN:       os.Getenv("SENTRY_DSN"),
		EnableScheduler: getenv("ENABLE_SCHEDULER", "true") == "true",
		InvoiceDueDay:   dueDay,
	}
	return cfg, nil
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("required env " + k + " is empty")
	}
	return v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
