package constraints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
)

func TestRequest_DefaultConfig(t *testing.T) {
	f := NewRequest(DefaultConfig(IDRequest))

	assert.Equal(t, IDRequest, f.ID())
	assert.True(t, f.Enabled())
	assert.False(t, f.IsHard())
	assert.Equal(t, 100, f.Weight())
}

func TestRequest_PositiveCreatesViolationPerPeriod(t *testing.T) {
	in := buildInputs(4)
	in.Requests = []model.SchedulingRequest{{
		WorkerID:    "W001",
		StartDate:   date(2026, 1, 12),
		EndDate:     date(2026, 1, 18),
		Type:        model.RequestPositive,
		ShiftTypeID: "day",
		Priority:    1,
	}}
	m, vars := newModelAndVars(in)

	f := NewRequest(softConfig(100))
	require.NoError(t, f.Apply(m, vars, in))

	// The request covers exactly one period
	assert.Len(t, f.Violations(), 1)
	assert.Equal(t, 1, f.Violations()[0].Priority)
}

func TestRequest_SpanningRangeCoversMultiplePeriods(t *testing.T) {
	in := buildInputs(4)
	in.Requests = []model.SchedulingRequest{{
		WorkerID:    "W001",
		StartDate:   date(2026, 1, 5),
		EndDate:     date(2026, 1, 25),
		Type:        model.RequestNegative,
		ShiftTypeID: "night",
		Priority:    2,
	}}
	m, vars := newModelAndVars(in)

	f := NewRequest(softConfig(100))
	require.NoError(t, f.Apply(m, vars, in))

	require.Len(t, f.Violations(), 3)
	for _, v := range f.Violations() {
		assert.Equal(t, 2, v.Priority)
	}
}

func TestRequest_UnknownWorkerSkipped(t *testing.T) {
	in := buildInputs(4)
	in.Requests = []model.SchedulingRequest{{
		WorkerID:    "W999",
		StartDate:   date(2026, 1, 5),
		EndDate:     date(2026, 1, 11),
		Type:        model.RequestPositive,
		ShiftTypeID: "day",
		Priority:    1,
	}}
	m, vars := newModelAndVars(in)

	f := NewRequest(softConfig(100))
	require.NoError(t, f.Apply(m, vars, in))
	assert.Empty(t, f.Violations())
}

func TestRequest_UnknownShiftTypeSkipped(t *testing.T) {
	in := buildInputs(4)
	in.Requests = []model.SchedulingRequest{{
		WorkerID:    "W001",
		StartDate:   date(2026, 1, 5),
		EndDate:     date(2026, 1, 11),
		Type:        model.RequestPositive,
		ShiftTypeID: "nonexistent",
		Priority:    1,
	}}
	m, vars := newModelAndVars(in)

	f := NewRequest(softConfig(100))
	require.NoError(t, f.Apply(m, vars, in))
	assert.Empty(t, f.Violations())
}

func TestRequest_HardRecordEmitsNoViolation(t *testing.T) {
	hard := true
	in := buildInputs(4)
	in.Requests = []model.SchedulingRequest{{
		WorkerID:    "W001",
		StartDate:   date(2026, 1, 5),
		EndDate:     date(2026, 1, 11),
		Type:        model.RequestPositive,
		ShiftTypeID: "day",
		Priority:    1,
		IsHard:      &hard,
	}}
	m, vars := newModelAndVars(in)
	before := m.NumConstraints()

	f := NewRequest(softConfig(100))
	require.NoError(t, f.Apply(m, vars, in))

	// Hard requests compile assertions, not violation variables
	assert.Empty(t, f.Violations())
	assert.Greater(t, m.NumConstraints(), before)
}

func TestRequest_PriorityDefaultsToOne(t *testing.T) {
	in := buildInputs(4)
	in.Requests = []model.SchedulingRequest{{
		WorkerID:    "W001",
		StartDate:   date(2026, 1, 5),
		EndDate:     date(2026, 1, 11),
		Type:        model.RequestPositive,
		ShiftTypeID: "day",
	}}
	m, vars := newModelAndVars(in)

	f := NewRequest(softConfig(100))
	require.NoError(t, f.Apply(m, vars, in))

	require.Len(t, f.Violations(), 1)
	assert.Equal(t, 1, f.Violations()[0].Priority)
}
