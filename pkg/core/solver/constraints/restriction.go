package constraints

import (
	"github.com/jbolinge/shift-solver-sub000/pkg/core/cpmodel"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/solver"
)

// Restriction zeroes every assignment of a worker to a shift type in their
// restricted set. Hard by default; in soft mode the assignment variable
// itself doubles as the violation variable (violation = assignment).
type Restriction struct {
	base
}

// NewRestriction creates the restriction family.
func NewRestriction(config model.ConstraintConfig) *Restriction {
	return &Restriction{base: newBase(IDRestriction, config)}
}

// Apply processes every (worker, restricted shift, period) cell.
func (r *Restriction) Apply(m *cpmodel.Model, vars *solver.Variables, in solver.Inputs) error {
	r.reset()

	for _, w := range in.Workers {
		for _, stID := range w.RestrictedShifts {
			for _, p := range in.Periods {
				v, ok := vars.Lookup(w.ID, p.Index, stID)
				if !ok {
					// Restriction naming a shift type the model doesn't know
					// restricts nothing.
					continue
				}
				if r.IsHard() {
					m.FixFalse(v)
				} else {
					r.addViolation(v, 1)
				}
			}
		}
	}
	return nil
}
