package constraints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/solver"
)

func TestFairness_EmitsSpreadBitsForUndesirableCategory(t *testing.T) {
	in := buildInputs(4)
	m, vars := newModelAndVars(in)

	f := NewFairness(softConfig(1000))
	require.NoError(t, f.Apply(m, vars, in))

	// One undesirable category (night, 1 shift type): one spread bit per
	// possible count level over 4 periods.
	assert.Len(t, f.Violations(), 4)
}

func TestFairness_SkippedWithSingleEligibleWorker(t *testing.T) {
	in := solver.Inputs{
		Workers: []model.Worker{
			{ID: "W001", Name: "Worker 1"},
			{ID: "W002", Name: "Worker 2", RestrictedShifts: []string{"night"}},
		},
		ShiftTypes: testShiftTypes(),
		Periods:    weeklyPeriods(4),
	}
	m, vars := newModelAndVars(in)

	f := NewFairness(softConfig(1000))
	require.NoError(t, f.Apply(m, vars, in))

	// Only W001 can work night: nothing to balance
	assert.Empty(t, f.Violations())
}

func TestFairness_NoUndesirableShiftsNoViolations(t *testing.T) {
	in := solver.Inputs{
		Workers: testWorkers(),
		ShiftTypes: []model.ShiftType{
			{ID: "day", Name: "Day", Category: "day", StartTime: "07:00", EndTime: "15:00", DurationHours: 8, WorkersRequired: 1},
		},
		Periods: weeklyPeriods(4),
	}
	m, vars := newModelAndVars(in)

	f := NewFairness(softConfig(1000))
	require.NoError(t, f.Apply(m, vars, in))
	assert.Empty(t, f.Violations())
}

func TestFairness_ConfiguredCategorySubset(t *testing.T) {
	in := buildInputs(4)
	cfg := softConfig(1000)
	cfg.Parameters = map[string]any{"categories": []string{"day"}}
	m, vars := newModelAndVars(in)

	f := NewFairness(cfg)
	require.NoError(t, f.Apply(m, vars, in))

	// Explicit subset overrides the undesirable default
	assert.Len(t, f.Violations(), 4)
}

func TestFairness_UnknownConfiguredCategoryIgnored(t *testing.T) {
	in := buildInputs(4)
	cfg := softConfig(1000)
	cfg.Parameters = map[string]any{"categories": []string{"nonexistent"}}
	m, vars := newModelAndVars(in)

	f := NewFairness(cfg)
	require.NoError(t, f.Apply(m, vars, in))
	assert.Empty(t, f.Violations())
}
