package postgres

import (
	"context"
	"fmt"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
)

// GetShiftTypes retrieves all shift type records
func (d *DB) GetShiftTypes(ctx context.Context) ([]model.ShiftType, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, category, start_time, end_time, duration_hours, workers_required, is_undesirable
		FROM shift_type
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift types: %w", err)
	}
	defer rows.Close()

	var shiftTypes []model.ShiftType
	for rows.Next() {
		var st model.ShiftType
		if err := rows.Scan(&st.ID, &st.Name, &st.Category, &st.StartTime, &st.EndTime,
			&st.DurationHours, &st.WorkersRequired, &st.IsUndesirable); err != nil {
			return nil, fmt.Errorf("failed to scan shift type: %w", err)
		}
		shiftTypes = append(shiftTypes, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift types: %w", err)
	}

	return shiftTypes, nil
}

// UpsertShiftTypes inserts or replaces shift type records in the database
func (d *DB) UpsertShiftTypes(ctx context.Context, shiftTypes []model.ShiftType) error {
	if len(shiftTypes) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, st := range shiftTypes {
		_, err := tx.Exec(ctx, `
			INSERT INTO shift_type (id, name, category, start_time, end_time, duration_hours, workers_required, is_undesirable)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				category = EXCLUDED.category,
				start_time = EXCLUDED.start_time,
				end_time = EXCLUDED.end_time,
				duration_hours = EXCLUDED.duration_hours,
				workers_required = EXCLUDED.workers_required,
				is_undesirable = EXCLUDED.is_undesirable
		`, st.ID, st.Name, st.Category, st.StartTime, st.EndTime,
			st.DurationHours, st.WorkersRequired, st.IsUndesirable)
		if err != nil {
			return fmt.Errorf("failed to upsert shift type %s: %w", st.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
