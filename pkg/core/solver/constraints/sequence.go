package constraints

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/cpmodel"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/solver"
)

// Sequence penalizes forbidden adjacencies of same-category work.
//
// Parameters:
//   - max_consecutive_same_category: a violation fires for every window of
//     max+1 adjacent periods all carrying a shift of the category (0 disables).
//   - min_gap_periods: a violation fires for every period pair of the same
//     category closer than the gap (0 or 1 disables).
//   - categories: optional category subset; default is every category.
type Sequence struct {
	base
}

// NewSequence creates the sequence family.
func NewSequence(config model.ConstraintConfig) *Sequence {
	return &Sequence{base: newBase(IDSequence, config)}
}

// Apply builds per-(worker, period, category) work indicators and the
// adjacency gadgets over them.
func (s *Sequence) Apply(m *cpmodel.Model, vars *solver.Variables, in solver.Inputs) error {
	s.reset()

	maxConsecutive := s.config.IntParam("max_consecutive_same_category", 0)
	minGap := s.config.IntParam("min_gap_periods", 0)
	if maxConsecutive <= 0 && minGap <= 1 {
		return nil
	}

	categories := s.config.StringsParam("categories")
	if categories == nil {
		set := map[string]bool{}
		for _, st := range in.ShiftTypes {
			set[st.Category] = true
		}
		categories = lo.Keys(set)
		sort.Strings(categories)
	}
	numPeriods := in.NumPeriods()

	for _, category := range categories {
		catShifts := lo.Filter(in.ShiftTypes, func(st model.ShiftType, _ int) bool {
			return st.Category == category
		})
		if len(catShifts) == 0 {
			continue
		}
		for _, w := range in.Workers {
			// works[p] ⇔ the worker has any shift of the category in period p.
			works := make([]cpmodel.Var, numPeriods)
			for p := 0; p < numPeriods; p++ {
				cells := make([]cpmodel.Lit, 0, len(catShifts))
				for _, st := range catShifts {
					cells = append(cells, vars.Get(w.ID, p, st.ID).Lit())
				}
				works[p] = m.NewBoolVar(fmt.Sprintf("seq_%s_%s_p%d", category, w.ID, p))
				m.AddReifiedOr(works[p], cells...)
			}

			if maxConsecutive > 0 {
				run := maxConsecutive + 1
				for start := 0; start+run <= numPeriods; start++ {
					window := make([]cpmodel.Lit, run)
					for i := 0; i < run; i++ {
						window[i] = works[start+i].Lit()
					}
					if s.IsHard() {
						// At least one period of the window must be off.
						negs := make([]cpmodel.Lit, run)
						for i, l := range window {
							negs[i] = l.Not()
						}
						m.AddClause(negs...)
						continue
					}
					v := m.NewBoolVar(fmt.Sprintf("seq_run_viol_%s_%s_w%d", category, w.ID, start))
					m.AddReifiedAnd(v, window...)
					s.addViolation(v, 1)
				}
			}

			if minGap > 1 {
				for p := 0; p < numPeriods; p++ {
					for d := 1; d < minGap && p+d < numPeriods; d++ {
						if s.IsHard() {
							m.AddClause(works[p].Lit().Not(), works[p+d].Lit().Not())
							continue
						}
						v := m.NewBoolVar(fmt.Sprintf("seq_gap_viol_%s_%s_p%d_d%d", category, w.ID, p, d))
						m.AddReifiedAnd(v, works[p].Lit(), works[p+d].Lit())
						s.addViolation(v, 1)
					}
				}
			}
		}
	}
	return nil
}
