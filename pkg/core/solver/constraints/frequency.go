package constraints

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/cpmodel"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/solver"
)

// ShiftFrequency asks that a worker have at least one shift from a set in
// every sliding window of max_periods_between+1 periods. Soft mode emits one
// violation variable per window, true exactly when the window is empty; hard
// mode asserts a nonzero window sum.
//
// A requirement whose window exceeds the horizon emits nothing. Requirements
// naming an unknown worker, or whose entire shift set is unknown, are
// skipped.
type ShiftFrequency struct {
	base
}

// NewShiftFrequency creates the shift-frequency family.
func NewShiftFrequency(config model.ConstraintConfig) *ShiftFrequency {
	return &ShiftFrequency{base: newBase(IDShiftFrequency, config)}
}

// Apply slides the window for every requirement.
func (f *ShiftFrequency) Apply(m *cpmodel.Model, vars *solver.Variables, in solver.Inputs) error {
	f.reset()

	knownShifts := lo.SliceToMap(in.ShiftTypes, func(st model.ShiftType) (string, bool) { return st.ID, true })
	knownWorkers := lo.SliceToMap(in.Workers, func(w model.Worker) (string, bool) { return w.ID, true })
	numPeriods := in.NumPeriods()

	for reqIdx, req := range in.FrequencyRequirements {
		if !knownWorkers[req.WorkerID] {
			continue
		}
		shiftIDs := lo.Filter(req.ShiftTypes, func(id string, _ int) bool { return knownShifts[id] })
		if len(shiftIDs) == 0 {
			continue
		}
		window := req.MaxPeriodsBetween + 1
		if window > numPeriods {
			continue
		}

		for start := 0; start+window <= numPeriods; start++ {
			cells := make([]cpmodel.Var, 0, window*len(shiftIDs))
			for p := start; p < start+window; p++ {
				for _, id := range shiftIDs {
					cells = append(cells, vars.Get(req.WorkerID, p, id))
				}
			}
			if f.IsHard() {
				m.AddSumAtLeast(cells, 1)
				continue
			}
			v := m.NewBoolVar(fmt.Sprintf("freq_viol_r%d_w%d", reqIdx, start))
			m.AddReifiedSumZero(v, cells)
			f.addViolation(v, 1)
		}
	}
	return nil
}
