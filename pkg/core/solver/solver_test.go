package solver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/solver"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/solver/constraints"
)

const solveSeconds = 30

func simpleWorkers(count int) []model.Worker {
	out := make([]model.Worker, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, model.Worker{
			ID:   string(rune('A'+i-1)) + "001",
			Name: "Worker",
		})
	}
	return out
}

func assignedTo(sched *model.Schedule, workerID string, periodIdx int, shiftTypeID string) bool {
	for _, inst := range sched.Periods[periodIdx].Assignments[workerID] {
		if inst.ShiftTypeID == shiftTypeID {
			return true
		}
	}
	return false
}

func countAssigned(sched *model.Schedule, periodIdx int, shiftTypeID string) int {
	count := 0
	for _, shifts := range sched.Periods[periodIdx].Assignments {
		for _, inst := range shifts {
			if inst.ShiftTypeID == shiftTypeID {
				count++
			}
		}
	}
	return count
}

func solveWith(t *testing.T, in solver.Inputs, configs map[string]model.ConstraintConfig) *solver.SolveResult {
	t.Helper()
	s := solver.New("SCH-TEST", in, constraints.NewDefaultFamilies(configs), nil)
	result, err := s.Solve(solver.Options{TimeLimitSeconds: solveSeconds})
	require.NoError(t, err)
	return result
}

func TestSolve_TrivialFeasible(t *testing.T) {
	in := solver.Inputs{
		Workers: simpleWorkers(1),
		ShiftTypes: []model.ShiftType{{
			ID: "day", Name: "Day", Category: "day",
			StartTime: "07:00", EndTime: "15:00", DurationHours: 8,
			WorkersRequired: 1,
		}},
		Periods: weeklyPeriods(1),
	}

	result := solveWith(t, in, nil)
	require.True(t, result.Success)
	require.NotNil(t, result.Schedule)
	assert.True(t, assignedTo(result.Schedule, in.Workers[0].ID, 0, "day"))
}

func TestSolve_ExactCoverage(t *testing.T) {
	in := solver.Inputs{
		Workers: simpleWorkers(3),
		ShiftTypes: []model.ShiftType{{
			ID: "day", Name: "Day", Category: "day",
			StartTime: "07:00", EndTime: "15:00", DurationHours: 8,
			WorkersRequired: 3,
		}},
		Periods: weeklyPeriods(1),
	}

	result := solveWith(t, in, nil)
	require.True(t, result.Success)
	assert.Equal(t, 3, countAssigned(result.Schedule, 0, "day"))
	for _, w := range in.Workers {
		assert.Equal(t, 1, result.Schedule.Statistics[w.ID]["total_shifts"])
	}
}

func TestSolve_OneShortInfeasible(t *testing.T) {
	in := solver.Inputs{
		Workers: simpleWorkers(2),
		ShiftTypes: []model.ShiftType{{
			ID: "day", Name: "Day", Category: "day",
			StartTime: "07:00", EndTime: "15:00", DurationHours: 8,
			WorkersRequired: 3,
		}},
		Periods: weeklyPeriods(1),
	}

	result := solveWith(t, in, nil)
	assert.False(t, result.Success)
	assert.Equal(t, "INFEASIBLE", result.StatusName)
	assert.Nil(t, result.Schedule)

	// The analyzer rejects pre-solve with a coverage issue
	require.NotEmpty(t, result.FeasibilityIssues)
	assert.Equal(t, "coverage", result.FeasibilityIssues[0].Type)
}

func TestSolve_SoftRequestYieldsToHardUnavailability(t *testing.T) {
	in := solver.Inputs{
		Workers: simpleWorkers(2),
		ShiftTypes: []model.ShiftType{{
			ID: "day", Name: "Day", Category: "day",
			StartTime: "07:00", EndTime: "15:00", DurationHours: 8,
			WorkersRequired: 1,
		}},
		Periods: weeklyPeriods(1),
	}
	w := in.Workers[0].ID
	in.Availabilities = []model.Availability{{
		WorkerID:  w,
		StartDate: in.Periods[0].StartDate,
		EndDate:   in.Periods[0].EndDate,
		Type:      model.AvailabilityUnavailable,
	}}
	in.Requests = []model.SchedulingRequest{{
		WorkerID:    w,
		StartDate:   in.Periods[0].StartDate,
		EndDate:     in.Periods[0].EndDate,
		Type:        model.RequestPositive,
		ShiftTypeID: "day",
		Priority:    1,
	}}

	result := solveWith(t, in, nil)
	require.True(t, result.Success)
	assert.False(t, assignedTo(result.Schedule, w, 0, "day"))

	// Exactly one soft-request violation is paid
	require.NotNil(t, result.ObjectiveValue)
	assert.Equal(t, constraints.DefaultConfig(constraints.IDRequest).Weight, *result.ObjectiveValue)
}

func TestSolve_FairnessBalancesNightShifts(t *testing.T) {
	in := solver.Inputs{
		Workers: simpleWorkers(6),
		ShiftTypes: []model.ShiftType{{
			ID: "night", Name: "Night", Category: "night",
			StartTime: "23:00", EndTime: "07:00", DurationHours: 8,
			WorkersRequired: 1, IsUndesirable: true,
		}},
		Periods: weeklyPeriods(4),
	}

	configs := map[string]model.ConstraintConfig{
		constraints.IDFairness: {Enabled: true, Weight: 500},
	}
	result := solveWith(t, in, configs)
	require.True(t, result.Success)
	require.Equal(t, "OPTIMAL", result.StatusName)

	// 4 night shifts across 6 workers: spread of counts is at most 1
	minCount, maxCount := 4, 0
	for _, w := range in.Workers {
		c := result.Schedule.Statistics[w.ID]["night"]
		if c < minCount {
			minCount = c
		}
		if c > maxCount {
			maxCount = c
		}
	}
	assert.LessOrEqual(t, maxCount-minCount, 1)
}

func TestSolve_OrderPreferenceAfter(t *testing.T) {
	in := solver.Inputs{
		Workers: simpleWorkers(3),
		ShiftTypes: []model.ShiftType{
			{
				ID: "weekend", Name: "Weekend", Category: "weekend",
				StartTime: "10:00", EndTime: "18:00", DurationHours: 8,
				WorkersRequired: 1, IsUndesirable: true,
			},
			{
				ID: "night", Name: "Night", Category: "night",
				StartTime: "23:00", EndTime: "07:00", DurationHours: 8,
				WorkersRequired: 1, IsUndesirable: true,
			},
		},
		Periods: weeklyPeriods(2),
	}
	w := in.Workers[0].ID
	hard := true
	in.Requests = []model.SchedulingRequest{{
		WorkerID:    w,
		StartDate:   in.Periods[0].StartDate,
		EndDate:     in.Periods[0].EndDate,
		Type:        model.RequestPositive,
		ShiftTypeID: "weekend",
		Priority:    1,
		IsHard:      &hard,
	}}
	in.OrderPreferences = []model.ShiftOrderPreference{{
		RuleID:         "weekend_then_night",
		TriggerType:    model.TriggerCategory,
		TriggerValue:   "weekend",
		Direction:      model.DirectionAfter,
		PreferredType:  model.PreferredShiftType,
		PreferredValue: "night",
		Priority:       1,
	}}

	configs := map[string]model.ConstraintConfig{
		// Disable fairness so the order preference is the only soft pull
		constraints.IDFairness:   {Enabled: false},
		constraints.IDShiftOrder: {Enabled: true, Weight: 1000},
	}
	result := solveWith(t, in, configs)
	require.True(t, result.Success)
	require.Equal(t, "OPTIMAL", result.StatusName)

	assert.True(t, assignedTo(result.Schedule, w, 0, "weekend"))
	assert.True(t, assignedTo(result.Schedule, w, 1, "night"))
}

func TestSolve_ExcludedCellsNeverAssigned(t *testing.T) {
	// Monday-Friday periods: the weekend shift has no applicable day in any
	// of them. With a surplus worker, the absence windows of the unassigned
	// worker can only be "filled" by excluded weekend cells; those must stay
	// pinned to zero rather than leak into the schedule.
	periods := make([]model.Period, 0, 5)
	current := weeklyPeriods(5)
	for i, p := range current {
		periods = append(periods, model.Period{
			Index:     i,
			StartDate: p.StartDate,
			EndDate:   p.StartDate.AddDate(0, 0, 4),
		})
	}
	in := solver.Inputs{
		Workers: simpleWorkers(2),
		ShiftTypes: []model.ShiftType{
			{
				ID: "day", Name: "Day", Category: "day",
				StartTime: "07:00", EndTime: "15:00", DurationHours: 8,
				WorkersRequired: 1,
			},
			{
				ID: "weekend", Name: "Weekend", Category: "weekend",
				StartTime: "10:00", EndTime: "18:00", DurationHours: 8,
				WorkersRequired: 1, IsUndesirable: true,
				ApplicableDays: []int{5, 6},
			},
		},
		Periods: periods,
	}

	result := solveWith(t, in, nil)
	require.True(t, result.Success)

	for _, p := range result.Schedule.Periods {
		for _, shifts := range p.Assignments {
			for _, inst := range shifts {
				assert.NotEqual(t, "weekend", inst.ShiftTypeID)
			}
		}
	}
}

func TestSolve_ValidatorIdempotence(t *testing.T) {
	in := solver.Inputs{
		Workers: simpleWorkers(3),
		ShiftTypes: []model.ShiftType{
			{
				ID: "day", Name: "Day", Category: "day",
				StartTime: "07:00", EndTime: "15:00", DurationHours: 8,
				WorkersRequired: 2,
			},
			{
				ID: "night", Name: "Night", Category: "night",
				StartTime: "23:00", EndTime: "07:00", DurationHours: 8,
				WorkersRequired: 1, IsUndesirable: true,
			},
		},
		Periods: weeklyPeriods(3),
	}
	in.Workers[2].RestrictedShifts = []string{"night"}

	result := solveWith(t, in, nil)
	require.True(t, result.Success)

	violations := solver.ValidateSchedule(result.Schedule, in, solver.ValidatorConfig{
		RestrictionHard:  true,
		AvailabilityHard: true,
	})
	assert.Empty(t, violations)
	assert.NoError(t, solver.ViolationsError(violations))
}

func TestSolve_DeterministicObjective(t *testing.T) {
	in := solver.Inputs{
		Workers: simpleWorkers(4),
		ShiftTypes: []model.ShiftType{{
			ID: "night", Name: "Night", Category: "night",
			StartTime: "23:00", EndTime: "07:00", DurationHours: 8,
			WorkersRequired: 1, IsUndesirable: true,
		}},
		Periods: weeklyPeriods(3),
	}
	in.Requests = []model.SchedulingRequest{{
		WorkerID:    in.Workers[0].ID,
		StartDate:   in.Periods[0].StartDate,
		EndDate:     in.Periods[0].EndDate,
		Type:        model.RequestNegative,
		ShiftTypeID: "night",
		Priority:    2,
	}}

	first := solveWith(t, in, nil)
	second := solveWith(t, in, nil)
	require.True(t, first.Success)
	require.True(t, second.Success)
	require.Equal(t, "OPTIMAL", first.StatusName)
	require.Equal(t, "OPTIMAL", second.StatusName)

	// Equal objective value on repeated OPTIMAL runs over the same inputs
	assert.Equal(t, *first.ObjectiveValue, *second.ObjectiveValue)
}

func TestValidateSchedule_DetectsCoverageShortfall(t *testing.T) {
	in := solver.Inputs{
		Workers: simpleWorkers(2),
		ShiftTypes: []model.ShiftType{{
			ID: "day", Name: "Day", Category: "day",
			StartTime: "07:00", EndTime: "15:00", DurationHours: 8,
			WorkersRequired: 2,
		}},
		Periods: weeklyPeriods(1),
	}
	sched := &model.Schedule{
		ScheduleID: "SCH-BAD",
		Periods: []model.SchedulePeriod{{
			PeriodIndex: 0,
			Assignments: map[string][]model.ShiftInstance{
				in.Workers[0].ID: {{ShiftTypeID: "day", Date: "2026-01-05"}},
			},
		}},
	}

	violations := solver.ValidateSchedule(sched, in, solver.ValidatorConfig{})
	require.Len(t, violations, 1)
	assert.Equal(t, "coverage", violations[0].Type)
	assert.Error(t, solver.ViolationsError(violations))
}

func TestValidateSchedule_DetectsRestrictionBreach(t *testing.T) {
	in := solver.Inputs{
		Workers: simpleWorkers(1),
		ShiftTypes: []model.ShiftType{{
			ID: "night", Name: "Night", Category: "night",
			StartTime: "23:00", EndTime: "07:00", DurationHours: 8,
			WorkersRequired: 1, IsUndesirable: true,
		}},
		Periods: weeklyPeriods(1),
	}
	in.Workers[0].RestrictedShifts = []string{"night"}
	sched := &model.Schedule{
		ScheduleID: "SCH-BAD",
		Periods: []model.SchedulePeriod{{
			PeriodIndex: 0,
			Assignments: map[string][]model.ShiftInstance{
				in.Workers[0].ID: {{ShiftTypeID: "night", Date: "2026-01-05"}},
			},
		}},
	}

	violations := solver.ValidateSchedule(sched, in, solver.ValidatorConfig{RestrictionHard: true})
	types := make([]string, 0, len(violations))
	for _, v := range violations {
		types = append(types, v.Type)
	}
	assert.Contains(t, types, "restriction")
}

func TestValidateSchedule_DetectsHardRequestMiss(t *testing.T) {
	in := solver.Inputs{
		Workers: simpleWorkers(2),
		ShiftTypes: []model.ShiftType{{
			ID: "day", Name: "Day", Category: "day",
			StartTime: "07:00", EndTime: "15:00", DurationHours: 8,
			WorkersRequired: 1,
		}},
		Periods: weeklyPeriods(1),
	}
	hard := true
	in.Requests = []model.SchedulingRequest{{
		WorkerID:    in.Workers[1].ID,
		StartDate:   in.Periods[0].StartDate,
		EndDate:     in.Periods[0].EndDate,
		Type:        model.RequestPositive,
		ShiftTypeID: "day",
		Priority:    1,
		IsHard:      &hard,
	}}
	sched := &model.Schedule{
		ScheduleID: "SCH-BAD",
		Periods: []model.SchedulePeriod{{
			PeriodIndex: 0,
			Assignments: map[string][]model.ShiftInstance{
				in.Workers[0].ID: {{ShiftTypeID: "day", Date: "2026-01-05"}},
			},
		}},
	}

	violations := solver.ValidateSchedule(sched, in, solver.ValidatorConfig{})
	types := make([]string, 0, len(violations))
	for _, v := range violations {
		types = append(types, v.Type)
	}
	assert.Contains(t, types, "request")
}
