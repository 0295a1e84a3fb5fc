package solver

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/cpmodel"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/feasibility"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
)

// Options controls one solve run.
type Options struct {
	TimeLimitSeconds int
	NumSearchWorkers int
}

// SolveResult is the canonical outcome of a solve. INFEASIBLE and UNKNOWN
// yield Success=false and no schedule; infeasibility is data, never an error.
type SolveResult struct {
	Success          bool
	StatusName       string
	SolveTimeSeconds float64
	ObjectiveValue   *int
	Schedule         *model.Schedule

	// FeasibilityIssues is populated when the pre-solve analyzer rejected the
	// inputs; Warnings accumulate regardless of outcome.
	FeasibilityIssues []feasibility.Issue
	Warnings          []feasibility.Issue
}

// ShiftSolver assembles the full pipeline for one scheduling problem. Every
// call to Solve constructs a fresh model; no state crosses solves.
type ShiftSolver struct {
	scheduleID string
	inputs     Inputs
	families   []Family
	logger     *zap.Logger
}

// New returns a solver over the given inputs. families is the ordered set of
// constraint compilers to run; order among them is irrelevant because they
// reference variables by identity. The logger may be nil.
func New(scheduleID string, inputs Inputs, families []Family, logger *zap.Logger) *ShiftSolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShiftSolver{
		scheduleID: scheduleID,
		inputs:     inputs,
		families:   families,
		logger:     logger.With(zap.String("schedule_id", scheduleID)),
	}
}

// Solve runs analyzer → variable factory → constraint families → objective →
// backend, then reconstructs a schedule on success.
func (s *ShiftSolver) Solve(opts Options) (*SolveResult, error) {
	start := time.Now()

	check := feasibility.NewChecker(
		s.inputs.Workers,
		s.inputs.ShiftTypes,
		s.inputs.Periods,
		s.inputs.Availabilities,
		s.inputs.FrequencyRequirements,
		s.inputs.OrderPreferences,
		s.logger,
	).Check()

	if !check.IsFeasible {
		return &SolveResult{
			Success:           false,
			StatusName:        cpmodel.StatusInfeasible.String(),
			SolveTimeSeconds:  time.Since(start).Seconds(),
			FeasibilityIssues: check.Issues,
			Warnings:          check.Warnings,
		}, nil
	}

	m := cpmodel.New()
	vars := BuildVariables(m, s.inputs.Workers, s.inputs.ShiftTypes, s.inputs.NumPeriods())
	fixExcludedCells(m, vars, s.inputs)
	s.logger.Debug("Assignment variables created", zap.Int("count", vars.Count()))

	objective := NewObjectiveBuilder(m)
	for _, f := range s.families {
		if !f.Enabled() {
			continue
		}
		if err := f.Apply(m, vars, s.inputs); err != nil {
			return nil, fmt.Errorf("constraint family %s: %w", f.ID(), err)
		}
		objective.Add(f)
		s.logger.Debug("Constraint family applied",
			zap.String("family", f.ID()),
			zap.Bool("hard", f.IsHard()),
			zap.Int("violation_vars", len(f.Violations())))
	}
	objective.Build()
	s.logger.Debug("Objective installed", zap.Int("terms", objective.NumTerms()))

	timeLimit := time.Duration(opts.TimeLimitSeconds) * time.Second
	res := m.Solve(timeLimit, opts.NumSearchWorkers)
	s.logger.Info("Solver finished",
		zap.String("status", res.Status.String()),
		zap.Duration("solve_time", res.SolveTime))

	result := &SolveResult{
		StatusName:       res.Status.String(),
		SolveTimeSeconds: res.SolveTime.Seconds(),
		Warnings:         check.Warnings,
	}
	if !res.HasSolution() {
		return result, nil
	}

	result.Success = true
	obj := res.ObjectiveValue
	result.ObjectiveValue = &obj
	result.Schedule = s.reconstruct(vars, res)
	return result, nil
}

// fixExcludedCells zeroes every assignment variable whose shift type has no
// applicable day in the period. Coverage emits nothing for those cells, but
// other families reference them (window sums, hard requests), so without this
// assertion the optimizer could satisfy a window with an assignment that can
// never be scheduled.
func fixExcludedCells(m *cpmodel.Model, vars *Variables, in Inputs) {
	for _, p := range in.Periods {
		for _, st := range in.ShiftTypes {
			if st.AppliesToPeriod(p) {
				continue
			}
			for _, w := range in.Workers {
				m.FixFalse(vars.Get(w.ID, p.Index, st.ID))
			}
		}
	}
}

// reconstruct reads the solved assignment variables back into a Schedule.
func (s *ShiftSolver) reconstruct(vars *Variables, res cpmodel.Result) *model.Schedule {
	periods := make([]model.SchedulePeriod, 0, len(s.inputs.Periods))
	stats := make(map[string]map[string]int, len(s.inputs.Workers))
	for _, w := range s.inputs.Workers {
		stats[w.ID] = map[string]int{"total_shifts": 0}
	}

	for _, p := range s.inputs.Periods {
		sp := model.SchedulePeriod{
			PeriodIndex: p.Index,
			PeriodStart: p.StartDate.Format(model.DateLayout),
			PeriodEnd:   p.EndDate.Format(model.DateLayout),
			Assignments: make(map[string][]model.ShiftInstance),
		}
		for _, w := range s.inputs.Workers {
			for _, st := range s.inputs.ShiftTypes {
				if !res.Value(vars.Get(w.ID, p.Index, st.ID)) {
					continue
				}
				day, ok := st.FirstApplicableDay(p)
				if !ok {
					// Excluded cells are pinned to 0 before solving, so a
					// set variable here indicates a broken reconstruction.
					panic(fmt.Sprintf("solver: assignment on excluded cell (%s, %d, %s)", w.ID, p.Index, st.ID))
				}
				sp.Assignments[w.ID] = append(sp.Assignments[w.ID], model.ShiftInstance{
					ShiftTypeID: st.ID,
					Date:        day.Format(model.DateLayout),
				})
				stats[w.ID]["total_shifts"]++
				stats[w.ID][st.Category]++
			}
		}
		periods = append(periods, sp)
	}

	first := s.inputs.Periods[0]
	last := s.inputs.Periods[len(s.inputs.Periods)-1]
	return &model.Schedule{
		ScheduleID: s.scheduleID,
		StartDate:  first.StartDate.Format(model.DateLayout),
		EndDate:    last.EndDate.Format(model.DateLayout),
		Periods:    periods,
		Statistics: stats,
	}
}
