//go:build testutil
// +build testutil

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	_ "github.com/lib/pq"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/Spok95/school-admin/migrations"
)

type DBHandle struct {
	DB     *sql.DB
	cancel func()
	stop   func(context.Context) error
}

func (h *DBHandle) Close() {
	if h.DB != nil {
		_ = h.DB.Close()
	}
	if h.stop != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.stop(ctx)
	}
	if h.cancel != nil {
		h.cancel()
	}
}

func Start(ctx context.Context) (*DBHandle, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)

	pg, err := postgres.RunContainer(ctx,
		tc.WithImage("postgres:17-alpine"),
		postgres.WithDatabase("school"),
		postgres.WithUsername("school"),
		postgres.WithPassword("school"),
	)
	if err != nil {
		cancel()
		return nil, err
	}

	uri, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pg.Terminate(ctx)
		cancel()
		return nil, err
	}

	db, err := sql.Open("postgres", uri)
	if err != nil {
		_ = pg.Terminate(ctx)
		cancel()
		return nil, err
	}
	if err := waitReady(ctx, db); err != nil {
		_ = pg.Terminate(ctx)
		cancel()
		return nil, err
	}

	if err := applyMigrations(ctx, db); err != nil {
		_ = pg.Terminate(ctx)
		cancel()
		return nil, err
	}

	return &DBHandle{
		DB:     db,
		cancel: cancel,
		stop:   pg.Terminate,
	}, nil
}

func waitReady(ctx context.Context, db *sql.DB) error {
	dead := time.Now().Add(20 * time.Second)
	for time.Now().Before(dead) {
		if err := db.PingContext(ctx); err == nil {
			return nil
		}
		time.Sleep(200 * time.Millisecond)
	}
	return errors.New("db not ready")
}

// applyMigrations replays the Up sections of the embedded goose files in
// lexical order, same order goose itself would use.
func applyMigrations(ctx context.Context, db *sql.DB) error {
	ents, err := migrations.FS.ReadDir(".")
	if err != nil {
		return err
	}
	var names []string
	for _, e := range ents {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		sqlText, err := migrations.FS.ReadFile(name)
		if err != nil {
			return err
		}
		up := extractGooseUp(string(sqlText))
		if strings.TrimSpace(up) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, up); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
	}
	return nil
}

// extractGooseUp keeps only the block between "-- +goose Up" and "-- +goose Down".
func extractGooseUp(s string) string {
	upTag := "-- +goose Up"
	downTag := "-- +goose Down"
	upIdx := strings.Index(s, upTag)
	if upIdx == -1 {
		return s
	}
	rest := s[upIdx+len(upTag):]
	downIdx := strings.Index(rest, downTag)
	if downIdx == -1 {
		return rest
	}
	return rest[:downIdx]
}
