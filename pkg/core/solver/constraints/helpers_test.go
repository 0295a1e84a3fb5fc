package constraints

import (
	"time"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/cpmodel"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/solver"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// weeklyPeriods builds count weekly periods starting Monday 2026-01-05.
func weeklyPeriods(count int) []model.Period {
	periods := make([]model.Period, 0, count)
	current := date(2026, 1, 5)
	for i := 0; i < count; i++ {
		periods = append(periods, model.Period{
			Index:     i,
			StartDate: current,
			EndDate:   current.AddDate(0, 0, 6),
		})
		current = current.AddDate(0, 0, 7)
	}
	return periods
}

func testWorkers() []model.Worker {
	return []model.Worker{
		{ID: "W001", Name: "Worker 1"},
		{ID: "W002", Name: "Worker 2"},
	}
}

func testShiftTypes() []model.ShiftType {
	return []model.ShiftType{
		{
			ID: "day", Name: "Day Shift", Category: "day",
			StartTime: "07:00", EndTime: "15:00", DurationHours: 8,
			WorkersRequired: 1,
		},
		{
			ID: "night", Name: "Night Shift", Category: "night",
			StartTime: "23:00", EndTime: "07:00", DurationHours: 8,
			WorkersRequired: 1, IsUndesirable: true,
		},
	}
}

// buildInputs assembles the default two-worker, two-shift, four-period
// fixture used across the family tests.
func buildInputs(numPeriods int) solver.Inputs {
	return solver.Inputs{
		Workers:    testWorkers(),
		ShiftTypes: testShiftTypes(),
		Periods:    weeklyPeriods(numPeriods),
	}
}

// newModelAndVars creates a fresh model with the assignment tensor for the
// given inputs.
func newModelAndVars(in solver.Inputs) (*cpmodel.Model, *solver.Variables) {
	m := cpmodel.New()
	vars := solver.BuildVariables(m, in.Workers, in.ShiftTypes, in.NumPeriods())
	return m, vars
}

func softConfig(weight int) model.ConstraintConfig {
	return model.ConstraintConfig{Enabled: true, IsHard: false, Weight: weight}
}

func hardConfig() model.ConstraintConfig {
	return model.ConstraintConfig{Enabled: true, IsHard: true}
}
