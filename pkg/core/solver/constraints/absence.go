package constraints

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/cpmodel"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/solver"
)

// MaxAbsence discourages any worker from going more than max_periods_absent
// consecutive periods without a shift from the configured set. The window
// gadget matches ShiftFrequency: one violation per empty window of size
// max_periods_absent+1, and a silent skip when the window exceeds the
// horizon.
//
// Parameters:
//   - max_periods_absent: window parameter (default 3).
//   - shift_types: optional shift-type subset; default is every shift type.
type MaxAbsence struct {
	base
}

// NewMaxAbsence creates the max-absence family.
func NewMaxAbsence(config model.ConstraintConfig) *MaxAbsence {
	return &MaxAbsence{base: newBase(IDMaxAbsence, config)}
}

// Apply slides the absence window for every worker.
func (a *MaxAbsence) Apply(m *cpmodel.Model, vars *solver.Variables, in solver.Inputs) error {
	a.reset()

	numPeriods := in.NumPeriods()
	window := a.config.IntParam("max_periods_absent", 3) + 1
	if window > numPeriods {
		return nil
	}

	shiftIDs := a.config.StringsParam("shift_types")
	if shiftIDs == nil {
		shiftIDs = lo.Map(in.ShiftTypes, func(st model.ShiftType, _ int) string { return st.ID })
	} else {
		known := lo.SliceToMap(in.ShiftTypes, func(st model.ShiftType) (string, bool) { return st.ID, true })
		shiftIDs = lo.Filter(shiftIDs, func(id string, _ int) bool { return known[id] })
	}
	if len(shiftIDs) == 0 {
		return nil
	}

	for _, w := range in.Workers {
		for start := 0; start+window <= numPeriods; start++ {
			cells := make([]cpmodel.Var, 0, window*len(shiftIDs))
			for p := start; p < start+window; p++ {
				for _, id := range shiftIDs {
					cells = append(cells, vars.Get(w.ID, p, id))
				}
			}
			if a.IsHard() {
				m.AddSumAtLeast(cells, 1)
				continue
			}
			v := m.NewBoolVar(fmt.Sprintf("absence_viol_%s_w%d", w.ID, start))
			m.AddReifiedSumZero(v, cells)
			a.addViolation(v, 1)
		}
	}
	return nil
}
