//go:build testutil
// +build testutil

package db

import (
	"context"
	"testing"
	"time"

	"github.com/Spok95/school-admin/internal/testutil/testdb"
)

func TestNextID_SeedsFromLegacyMax(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	defer h.Close()

	mustExec(t, ctx, h, `INSERT INTO accounts (id, username, password, role) VALUES ('5', 'acc5', 'x', 'admin')`)
	mustExec(t, ctx, h, `INSERT INTO students (id, name) VALUES (7, 'Legacy Student')`)
	mustExec(t, ctx, h, `INSERT INTO teachers (id, name) VALUES (3, 'Legacy Teacher')`)

	got, err := NextID(ctx, h.DB)
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}
	if got != 8 {
		t.Fatalf("first NextID after legacy ids {5, 7, 3}: want 8, got %d", got)
	}

	// Subsequent calls come off the counter, not another table scan.
	for want := int64(9); want <= 11; want++ {
		got, err := NextID(ctx, h.DB)
		if err != nil {
			t.Fatalf("NextID: %v", err)
		}
		if got != want {
			t.Fatalf("NextID: want %d, got %d", want, got)
		}
	}
}

func TestNextID_OpaqueAccountIDsIgnored(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	defer h.Close()

	mustExec(t, ctx, h, `INSERT INTO accounts (id, username, password, role) VALUES ('665f1c2ab91e8a0a7c3d9e41', 'legacy', 'x', 'student')`)
	mustExec(t, ctx, h, `INSERT INTO accounts (id, username, password, role) VALUES ('2', 'acc2', 'x', 'admin')`)

	got, err := NextID(ctx, h.DB)
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}
	if got != 3 {
		t.Fatalf("opaque ids must not feed the seed: want 3, got %d", got)
	}
}

func TestNextID_EmptyTablesStartAtOne(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	defer h.Close()

	got, err := NextID(ctx, h.DB)
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}
	if got != 1 {
		t.Fatalf("empty database: want 1, got %d", got)
	}
}

func mustExec(t *testing.T, ctx context.Context, h *testdb.DBHandle, q string, args ...any) {
	t.Helper()
	if _, err := h.DB.ExecContext(ctx, q, args...); err != nil {
		t.Fatalf("exec %q: %v", q, err)
	}
}
