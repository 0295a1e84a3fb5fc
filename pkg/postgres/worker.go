package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
)

// GetWorkers retrieves all worker records
func (d *DB) GetWorkers(ctx context.Context) ([]model.Worker, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, worker_type, restricted_shifts, preferred_shifts
		FROM worker
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer rows.Close()

	var workers []model.Worker
	for rows.Next() {
		var w model.Worker
		var workerType, restricted, preferred *string
		if err := rows.Scan(&w.ID, &w.Name, &workerType, &restricted, &preferred); err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		if workerType != nil {
			w.WorkerType = *workerType
		}
		if restricted != nil {
			w.RestrictedShifts = splitList(*restricted)
		}
		if preferred != nil {
			w.PreferredShifts = splitList(*preferred)
		}
		workers = append(workers, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workers: %w", err)
	}

	return workers, nil
}

// UpsertWorkers inserts or replaces worker records in the database
func (d *DB) UpsertWorkers(ctx context.Context, workers []model.Worker) error {
	if len(workers) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, w := range workers {
		var workerType, restricted, preferred *string
		if w.WorkerType != "" {
			workerType = &w.WorkerType
		}
		if len(w.RestrictedShifts) > 0 {
			joined := strings.Join(w.RestrictedShifts, ",")
			restricted = &joined
		}
		if len(w.PreferredShifts) > 0 {
			joined := strings.Join(w.PreferredShifts, ",")
			preferred = &joined
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO worker (id, name, worker_type, restricted_shifts, preferred_shifts)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				worker_type = EXCLUDED.worker_type,
				restricted_shifts = EXCLUDED.restricted_shifts,
				preferred_shifts = EXCLUDED.preferred_shifts
		`, w.ID, w.Name, workerType, restricted, preferred)
		if err != nil {
			return fmt.Errorf("failed to upsert worker %s: %w", w.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
