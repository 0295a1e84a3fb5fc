package constraints

import (
	"github.com/jbolinge/shift-solver-sub000/pkg/core/cpmodel"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/solver"
)

// Coverage asserts the required worker count for every applicable
// (period, shift type) cell. Always hard.
//
// Parameters:
//   - coverage_mode: "exact" (default) or "minimum". Minimum mode asserts
//     Σ workers ≥ workers_required instead of equality.
//   - max_workers: optional upper bound per cell in minimum mode.
type Coverage struct {
	base
}

// NewCoverage creates the coverage family.
func NewCoverage(config model.ConstraintConfig) *Coverage {
	return &Coverage{base: newBase(IDCoverage, config)}
}

// Apply emits one coverage assertion per applicable cell. Cells excluded by
// applicable_days emit nothing, regardless of workers_required.
func (c *Coverage) Apply(m *cpmodel.Model, vars *solver.Variables, in solver.Inputs) error {
	c.reset()

	minimumOnly := c.config.Parameters["coverage_mode"] == "minimum"
	maxWorkers := c.config.IntParam("max_workers", 0)

	for _, p := range in.Periods {
		for _, st := range in.ShiftTypes {
			// A zero requirement imposes no coverage at all; the shift merely
			// exists. applicable_days exclusion suppresses the cell the same
			// way, so either condition alone skips it.
			if st.WorkersRequired == 0 || !st.AppliesToPeriod(p) {
				continue
			}
			cell := make([]cpmodel.Var, 0, len(in.Workers))
			for _, w := range in.Workers {
				cell = append(cell, vars.Get(w.ID, p.Index, st.ID))
			}
			if minimumOnly {
				m.AddSumAtLeast(cell, st.WorkersRequired)
				if maxWorkers > 0 {
					m.AddSumAtMost(cell, maxWorkers)
				}
				continue
			}
			m.AddSumEqual(cell, st.WorkersRequired)
		}
	}
	return nil
}
