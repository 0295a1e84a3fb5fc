package constraints

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/cpmodel"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/solver"
)

// Fairness balances how many shifts of each undesirable category every
// eligible worker carries across the horizon. Per-worker counts are order
// encoded (one "count ≥ k" bit per threshold); the spread between the
// maximum and minimum count materializes as one violation bit per threshold
// level where max ≥ k > min, so the sum of violation bits equals the spread.
//
// Parameters:
//   - categories: optional subset of categories to balance. Default: the
//     categories carrying at least one undesirable shift type.
//
// A category with fewer than two eligible workers is skipped entirely.
type Fairness struct {
	base
}

// NewFairness creates the fairness family.
func NewFairness(config model.ConstraintConfig) *Fairness {
	return &Fairness{base: newBase(IDFairness, config)}
}

// Apply emits the order encoding and spread bits for every balanced category.
func (f *Fairness) Apply(m *cpmodel.Model, vars *solver.Variables, in solver.Inputs) error {
	f.reset()

	categories := f.config.StringsParam("categories")
	if categories == nil {
		set := map[string]bool{}
		for _, st := range in.ShiftTypes {
			if st.IsUndesirable {
				set[st.Category] = true
			}
		}
		categories = lo.Keys(set)
		sort.Strings(categories)
	}

	for _, category := range categories {
		f.applyCategory(m, vars, in, category)
	}
	return nil
}

func (f *Fairness) applyCategory(m *cpmodel.Model, vars *solver.Variables, in solver.Inputs, category string) {
	catShifts := lo.Filter(in.ShiftTypes, func(st model.ShiftType, _ int) bool {
		return st.Category == category
	})
	if len(catShifts) == 0 {
		return
	}

	eligible := lo.Filter(in.Workers, func(w model.Worker, _ int) bool {
		return lo.SomeBy(catShifts, func(st model.ShiftType) bool {
			return w.CanWorkShift(st.ID)
		})
	})
	if len(eligible) < 2 {
		// Nothing to balance with a single eligible worker.
		return
	}

	numPeriods := in.NumPeriods()
	maxCount := numPeriods * len(catShifts)

	// countGe[w][k] ⇔ worker w has at least k shifts of this category.
	countGe := make([][]cpmodel.Var, len(eligible))
	for wi, w := range eligible {
		cells := make([]cpmodel.Var, 0, maxCount)
		for p := 0; p < numPeriods; p++ {
			for _, st := range catShifts {
				cells = append(cells, vars.Get(w.ID, p, st.ID))
			}
		}
		countGe[wi] = make([]cpmodel.Var, maxCount)
		for k := 1; k <= maxCount; k++ {
			ge := m.NewBoolVar(fmt.Sprintf("fairness_%s_ge_%s_%d", category, w.ID, k))
			m.AddReifiedSumAtLeast(ge, cells, k)
			countGe[wi][k-1] = ge
		}
	}

	for k := 1; k <= maxCount; k++ {
		level := make([]cpmodel.Lit, len(eligible))
		for wi := range eligible {
			level[wi] = countGe[wi][k-1].Lit()
		}

		maxGe := m.NewBoolVar(fmt.Sprintf("fairness_%s_max_ge_%d", category, k))
		m.AddReifiedOr(maxGe, level...)

		minGe := m.NewBoolVar(fmt.Sprintf("fairness_%s_min_ge_%d", category, k))
		m.AddReifiedAnd(minGe, level...)

		spread := m.NewBoolVar(fmt.Sprintf("fairness_%s_spread_%d", category, k))
		m.AddReifiedAnd(spread, maxGe.Lit(), minGe.Lit().Not())

		if f.IsHard() {
			// Hard fairness pins the spread to zero.
			m.FixFalse(spread)
			continue
		}
		f.addViolation(spread, 1)
	}
}
