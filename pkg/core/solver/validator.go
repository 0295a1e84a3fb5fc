package solver

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
)

// ScheduleViolation is one post-solve invariant breach found by the
// validator.
type ScheduleViolation struct {
	Type        string
	Message     string
	PeriodIndex int
	WorkerID    string
	ShiftTypeID string
}

// ValidatorConfig selects which families the validator treats as hard. It
// mirrors the family configs used for the solve.
type ValidatorConfig struct {
	RestrictionHard  bool
	AvailabilityHard bool
	RequestHard      bool

	// MinWorkersOnly relaxes coverage to a lower bound when true; otherwise
	// coverage is checked for exactness against WorkersRequired.
	MinWorkersOnly bool
}

// ValidateSchedule re-checks a produced schedule against the original inputs:
// coverage, restriction, availability, and hard-request satisfaction. An
// empty result means the schedule is valid.
func ValidateSchedule(sched *model.Schedule, in Inputs, cfg ValidatorConfig) []ScheduleViolation {
	var out []ScheduleViolation

	assigned := func(workerID string, periodIdx int, shiftTypeID string) bool {
		if periodIdx >= len(sched.Periods) {
			return false
		}
		for _, inst := range sched.Periods[periodIdx].Assignments[workerID] {
			if inst.ShiftTypeID == shiftTypeID {
				return true
			}
		}
		return false
	}

	// Coverage
	for _, p := range in.Periods {
		for _, st := range in.ShiftTypes {
			if st.WorkersRequired == 0 || !st.AppliesToPeriod(p) {
				continue
			}
			count := 0
			for _, w := range in.Workers {
				if assigned(w.ID, p.Index, st.ID) {
					count++
				}
			}
			ok := count == st.WorkersRequired
			if cfg.MinWorkersOnly {
				ok = count >= st.WorkersRequired
			}
			if !ok {
				out = append(out, ScheduleViolation{
					Type: "coverage",
					Message: fmt.Sprintf("period %d shift '%s': %d assigned, %d required",
						p.Index, st.ID, count, st.WorkersRequired),
					PeriodIndex: p.Index,
					ShiftTypeID: st.ID,
				})
			}
		}
	}

	// Restriction
	if cfg.RestrictionHard {
		for _, w := range in.Workers {
			for _, stID := range w.RestrictedShifts {
				for _, p := range in.Periods {
					if assigned(w.ID, p.Index, stID) {
						out = append(out, ScheduleViolation{
							Type: "restriction",
							Message: fmt.Sprintf("worker '%s' assigned to restricted shift '%s' in period %d",
								w.ID, stID, p.Index),
							PeriodIndex: p.Index,
							WorkerID:    w.ID,
							ShiftTypeID: stID,
						})
					}
				}
			}
		}
	}

	// Availability
	if cfg.AvailabilityHard {
		for _, a := range in.Availabilities {
			if a.Type != model.AvailabilityUnavailable {
				continue
			}
			for _, p := range in.Periods {
				if !a.Range().Overlaps(p.Range()) {
					continue
				}
				for _, st := range in.ShiftTypes {
					if a.ShiftTypeID != "" && a.ShiftTypeID != st.ID {
						continue
					}
					if assigned(a.WorkerID, p.Index, st.ID) {
						out = append(out, ScheduleViolation{
							Type: "availability",
							Message: fmt.Sprintf("worker '%s' assigned to '%s' in period %d while unavailable",
								a.WorkerID, st.ID, p.Index),
							PeriodIndex: p.Index,
							WorkerID:    a.WorkerID,
							ShiftTypeID: st.ID,
						})
					}
				}
			}
		}
	}

	// Hard requests
	for _, r := range in.Requests {
		if !r.Hard(cfg.RequestHard) {
			continue
		}
		for _, p := range in.Periods {
			if !r.Range().Overlaps(p.Range()) {
				continue
			}
			got := assigned(r.WorkerID, p.Index, r.ShiftTypeID)
			want := r.Type == model.RequestPositive
			if got != want {
				out = append(out, ScheduleViolation{
					Type: "request",
					Message: fmt.Sprintf("hard %s request for worker '%s' shift '%s' not honored in period %d",
						r.Type, r.WorkerID, r.ShiftTypeID, p.Index),
					PeriodIndex: p.Index,
					WorkerID:    r.WorkerID,
					ShiftTypeID: r.ShiftTypeID,
				})
			}
		}
	}

	return out
}

// ViolationsError folds validator output into a single error, or nil when the
// schedule is valid.
func ViolationsError(violations []ScheduleViolation) error {
	var result *multierror.Error
	for _, v := range violations {
		result = multierror.Append(result, fmt.Errorf("%s: %s", v.Type, v.Message))
	}
	return result.ErrorOrNil()
}
