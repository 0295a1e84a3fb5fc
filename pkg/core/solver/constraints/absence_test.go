package constraints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
)

func absenceConfig(maxAbsent int, shiftTypes ...string) model.ConstraintConfig {
	cfg := softConfig(100)
	cfg.Parameters = map[string]any{"max_periods_absent": maxAbsent}
	if len(shiftTypes) > 0 {
		cfg.Parameters["shift_types"] = shiftTypes
	}
	return cfg
}

func TestMaxAbsence_CreatesViolationsPerWorkerWindow(t *testing.T) {
	in := buildInputs(10)
	m, vars := newModelAndVars(in)

	f := NewMaxAbsence(absenceConfig(4))
	require.NoError(t, f.Apply(m, vars, in))

	// 10 periods, window=5: 6 windows per worker, 2 workers
	assert.Len(t, f.Violations(), 12)
}

func TestMaxAbsence_ShiftTypeFilter(t *testing.T) {
	in := buildInputs(10)
	m, vars := newModelAndVars(in)

	f := NewMaxAbsence(absenceConfig(4, "night"))
	require.NoError(t, f.Apply(m, vars, in))

	assert.Len(t, f.Violations(), 12)
}

func TestMaxAbsence_WindowEqualsHorizon(t *testing.T) {
	in := buildInputs(5)
	m, vars := newModelAndVars(in)

	f := NewMaxAbsence(absenceConfig(4))
	require.NoError(t, f.Apply(m, vars, in))

	// window = 5 = horizon: exactly one window per worker
	assert.Len(t, f.Violations(), 2)
}

func TestMaxAbsence_WindowExceedsHorizonSkipped(t *testing.T) {
	in := buildInputs(4)
	m, vars := newModelAndVars(in)

	f := NewMaxAbsence(absenceConfig(4))
	require.NoError(t, f.Apply(m, vars, in))
	assert.Empty(t, f.Violations())
}

func TestMaxAbsence_WindowMuchLargerThanHorizonSkipped(t *testing.T) {
	in := buildInputs(2)
	m, vars := newModelAndVars(in)

	f := NewMaxAbsence(absenceConfig(100))
	require.NoError(t, f.Apply(m, vars, in))
	assert.Empty(t, f.Violations())
}

func TestMaxAbsence_ZeroMeansEveryPeriod(t *testing.T) {
	in := buildInputs(6)
	m, vars := newModelAndVars(in)

	f := NewMaxAbsence(absenceConfig(0))
	require.NoError(t, f.Apply(m, vars, in))

	// window=1: one violation slot per (worker, period)
	assert.Len(t, f.Violations(), 12)
}

func TestMaxAbsence_UnknownShiftTypesOnlySkipped(t *testing.T) {
	in := buildInputs(10)
	m, vars := newModelAndVars(in)

	f := NewMaxAbsence(absenceConfig(4, "nonexistent"))
	require.NoError(t, f.Apply(m, vars, in))
	assert.Empty(t, f.Violations())
}
