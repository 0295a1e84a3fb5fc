package constraints

import (
	"github.com/jbolinge/shift-solver-sub000/pkg/core/cpmodel"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/solver"
)

// Availability zeroes assignments that collide with "unavailable" records.
// A record with a shift type id affects that one shift; a blanket record
// affects every shift of the worker in the overlapping periods. Overlap is
// inclusive on both ends. Hard by default; soft mode reuses the assignment
// variable as the violation.
type Availability struct {
	base
}

// NewAvailability creates the availability family.
func NewAvailability(config model.ConstraintConfig) *Availability {
	return &Availability{base: newBase(IDAvailability, config)}
}

// Apply processes every unavailable record against the overlapping periods.
// Records of other types (e.g. "preferred") carry no hard semantics and are
// ignored here.
func (a *Availability) Apply(m *cpmodel.Model, vars *solver.Variables, in solver.Inputs) error {
	a.reset()

	for _, rec := range in.Availabilities {
		if rec.Type != model.AvailabilityUnavailable {
			continue
		}
		for _, idx := range overlappingPeriods(rec.Range(), in.Periods) {
			for _, st := range in.ShiftTypes {
				if rec.ShiftTypeID != "" && rec.ShiftTypeID != st.ID {
					continue
				}
				v, ok := vars.Lookup(rec.WorkerID, idx, st.ID)
				if !ok {
					continue
				}
				if a.IsHard() {
					m.FixFalse(v)
				} else {
					a.addViolation(v, 1)
				}
			}
		}
	}
	return nil
}
