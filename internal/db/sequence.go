package db

import (
	"context"
	"database/sql"
	"fmt"
)

const sharedSequence = "shared_entity_id"

// NextID hands out the next id in the numeric space shared by accounts,
// students and teachers. The counter row is bumped with a single atomic
// UPDATE ... RETURNING, so concurrent callers can never draw the same value.
// On first use the counter is seeded from the highest numeric id already
// present across the three tables, which keeps the historical max+1 contract.
func NextID(ctx context.Context, database *sql.DB) (int64, error) {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var next int64
	err = tx.QueryRowContext(ctx, `
		UPDATE id_sequence SET value = value + 1 WHERE name = $1 RETURNING value
	`, sharedSequence).Scan(&next)
	if err == sql.ErrNoRows {
		seed, serr := maxNumericID(ctx, tx)
		if serr != nil {
			return 0, serr
		}
		next = seed + 1
		if _, serr := tx.ExecContext(ctx, `
			INSERT INTO id_sequence (name, value) VALUES ($1, $2)
		`, sharedSequence, next); serr != nil {
			return 0, serr
		}
	} else if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return next, nil
}

// maxNumericID scans accounts (skipping opaque text ids), students and
// teachers for the largest integer id in use.
func maxNumericID(ctx context.Context, tx *sql.Tx) (int64, error) {
	var maxID int64
	err := tx.QueryRowContext(ctx, `
		SELECT GREATEST(
			COALESCE((SELECT MAX(id::bigint) FROM accounts WHERE id ~ '^[0-9]+$'), 0),
			COALESCE((SELECT MAX(id) FROM students), 0),
			COALESCE((SELECT MAX(id) FROM teachers), 0)
		)
	`).Scan(&maxID)
	if err != nil {
		return 0, fmt.Errorf("seed id sequence: %w", err)
	}
	return maxID, nil
}
