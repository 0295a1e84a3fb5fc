package solver_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/cpmodel"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/solver"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/solver/constraints"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

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

func objectiveInputs(numWorkers, numPeriods int) solver.Inputs {
	workers := make([]model.Worker, 0, numWorkers)
	for i := 1; i <= numWorkers; i++ {
		workers = append(workers, model.Worker{
			ID:   "W00" + string(rune('0'+i)),
			Name: "Worker",
		})
	}
	return solver.Inputs{
		Workers: workers,
		ShiftTypes: []model.ShiftType{
			{ID: "day", Name: "Day", Category: "day", StartTime: "07:00", EndTime: "15:00", DurationHours: 8, WorkersRequired: 2},
			{ID: "night", Name: "Night", Category: "night", StartTime: "23:00", EndTime: "07:00", DurationHours: 8, WorkersRequired: 1, IsUndesirable: true},
		},
		Periods: weeklyPeriods(numPeriods),
	}
}

// requestsFor creates one request per worker in the first period.
func requestsFor(in solver.Inputs, priority int) []model.SchedulingRequest {
	var out []model.SchedulingRequest
	for _, w := range in.Workers {
		out = append(out, model.SchedulingRequest{
			WorkerID:    w.ID,
			StartDate:   in.Periods[0].StartDate,
			EndDate:     in.Periods[0].EndDate,
			Type:        model.RequestPositive,
			ShiftTypeID: "day",
			Priority:    priority,
		})
	}
	return out
}

func TestObjectiveBuilder_TotalWeightByFamily(t *testing.T) {
	in := objectiveInputs(5, 4)
	in.Requests = requestsFor(in, 1)

	m := cpmodel.New()
	vars := solver.BuildVariables(m, in.Workers, in.ShiftTypes, in.NumPeriods())

	request := constraints.NewRequest(model.ConstraintConfig{Enabled: true, Weight: 150})
	require.NoError(t, request.Apply(m, vars, in))

	builder := solver.NewObjectiveBuilder(m)
	builder.Add(request)
	builder.Build()

	totals := builder.TotalWeightByFamily()
	// 5 requests × weight 150
	assert.Equal(t, 750, totals[constraints.IDRequest])
}

func TestObjectiveBuilder_PriorityMultiplierEffect(t *testing.T) {
	in := objectiveInputs(4, 4)
	low := requestsFor(solver.Inputs{Workers: in.Workers[:2], ShiftTypes: in.ShiftTypes, Periods: in.Periods}, 1)
	high := requestsFor(solver.Inputs{Workers: in.Workers[2:], ShiftTypes: in.ShiftTypes, Periods: in.Periods}, 3)
	in.Requests = append(low, high...)

	m := cpmodel.New()
	vars := solver.BuildVariables(m, in.Workers, in.ShiftTypes, in.NumPeriods())

	request := constraints.NewRequest(model.ConstraintConfig{Enabled: true, Weight: 150})
	require.NoError(t, request.Apply(m, vars, in))

	builder := solver.NewObjectiveBuilder(m)
	builder.Add(request)
	builder.Build()

	terms := builder.Breakdown()[constraints.IDRequest]
	require.Len(t, terms, 4)

	for _, term := range terms {
		switch term.PriorityMultiplier {
		case 1:
			assert.Equal(t, 150, term.EffectiveWeight)
		case 3:
			assert.Equal(t, 450, term.EffectiveWeight)
		default:
			t.Fatalf("unexpected priority multiplier %d", term.PriorityMultiplier)
		}
	}
}

func TestObjectiveBuilder_HardFamilyContributesNothing(t *testing.T) {
	in := objectiveInputs(3, 2)

	m := cpmodel.New()
	vars := solver.BuildVariables(m, in.Workers, in.ShiftTypes, in.NumPeriods())

	coverage := constraints.NewCoverage(constraints.DefaultConfig(constraints.IDCoverage))
	require.NoError(t, coverage.Apply(m, vars, in))

	builder := solver.NewObjectiveBuilder(m)
	builder.Add(coverage)
	builder.Build()

	assert.Equal(t, 0, builder.NumTerms())
	assert.Empty(t, builder.TotalWeightByFamily())
}

func TestObjectiveBuilder_DisabledFamilyContributesNothing(t *testing.T) {
	in := objectiveInputs(3, 2)
	in.Requests = requestsFor(in, 1)

	m := cpmodel.New()
	vars := solver.BuildVariables(m, in.Workers, in.ShiftTypes, in.NumPeriods())

	request := constraints.NewRequest(model.ConstraintConfig{Enabled: false, Weight: 150})
	require.NoError(t, request.Apply(m, vars, in))

	builder := solver.NewObjectiveBuilder(m)
	builder.Add(request)
	builder.Build()

	assert.Equal(t, 0, builder.NumTerms())
}

func TestVariables_GetAndPanic(t *testing.T) {
	in := objectiveInputs(2, 2)
	m := cpmodel.New()
	vars := solver.BuildVariables(m, in.Workers, in.ShiftTypes, in.NumPeriods())

	assert.Equal(t, 2*2*2, vars.Count())
	assert.NotPanics(t, func() { vars.Get(in.Workers[0].ID, 0, "day") })
	assert.Panics(t, func() { vars.Get("W999", 0, "day") })
	assert.Panics(t, func() { vars.Get(in.Workers[0].ID, 5, "day") })

	_, ok := vars.Lookup("W999", 0, "day")
	assert.False(t, ok)
}
