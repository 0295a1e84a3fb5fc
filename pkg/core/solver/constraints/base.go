// Package constraints implements the constraint families of the scheduling
// pipeline. Each family compiles one rule kind into hard assertions and/or
// violation variables on the shared model; the solver package's
// ObjectiveBuilder folds the violation tables into the objective.
package constraints

import (
	"github.com/jbolinge/shift-solver-sub000/pkg/core/cpmodel"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/solver"
)

// Family IDs.
const (
	IDCoverage       = "coverage"
	IDRestriction    = "restriction"
	IDAvailability   = "availability"
	IDRequest        = "request"
	IDFairness       = "fairness"
	IDShiftFrequency = "shift_frequency"
	IDMaxAbsence     = "max_absence"
	IDSequence       = "sequence"
	IDShiftOrder     = "shift_order_preference"
)

// DefaultConfig returns the stock configuration for a family id.
func DefaultConfig(id string) model.ConstraintConfig {
	switch id {
	case IDCoverage:
		return model.ConstraintConfig{Enabled: true, IsHard: true}
	case IDRestriction:
		return model.ConstraintConfig{Enabled: true, IsHard: true, Weight: 200}
	case IDAvailability:
		return model.ConstraintConfig{Enabled: true, IsHard: true, Weight: 200}
	case IDRequest:
		return model.ConstraintConfig{Enabled: true, Weight: 100}
	case IDFairness:
		return model.ConstraintConfig{Enabled: true, Weight: 1000}
	case IDShiftFrequency:
		return model.ConstraintConfig{Enabled: true, Weight: 500}
	case IDMaxAbsence:
		return model.ConstraintConfig{Enabled: true, Weight: 100}
	case IDSequence:
		return model.ConstraintConfig{Enabled: false, Weight: 100}
	case IDShiftOrder:
		return model.ConstraintConfig{Enabled: true, Weight: 100}
	default:
		return model.ConstraintConfig{}
	}
}

// base carries the shared family plumbing: config access and the violation
// side table keyed by variable identity.
type base struct {
	id         string
	config     model.ConstraintConfig
	violations []solver.Violation
}

func newBase(id string, config model.ConstraintConfig) base {
	return base{id: id, config: config}
}

func (b *base) ID() string                     { return b.id }
func (b *base) Enabled() bool                  { return b.config.Enabled }
func (b *base) IsHard() bool                   { return b.config.IsHard }
func (b *base) Weight() int                    { return b.config.Weight }
func (b *base) Violations() []solver.Violation { return b.violations }

// Config returns the family's configuration.
func (b *base) Config() model.ConstraintConfig { return b.config }

func (b *base) addViolation(v cpmodel.Var, priority int) {
	b.violations = append(b.violations, solver.Violation{Var: v, Priority: priority})
}

// reset clears the violation table; Apply calls it so a family can be reused
// against a fresh model.
func (b *base) reset() { b.violations = nil }

// overlappingPeriods returns the indices of periods intersecting the
// inclusive range.
func overlappingPeriods(r model.DateRange, periods []model.Period) []int {
	var out []int
	for _, p := range periods {
		if r.Overlaps(p.Range()) {
			out = append(out, p.Index)
		}
	}
	return out
}

// NewDefaultFamilies builds the standard family set. configs entries override
// the per-family defaults; a missing entry keeps the default.
func NewDefaultFamilies(configs map[string]model.ConstraintConfig) []solver.Family {
	get := func(id string) model.ConstraintConfig {
		if c, ok := configs[id]; ok {
			return c
		}
		return DefaultConfig(id)
	}
	return []solver.Family{
		NewCoverage(get(IDCoverage)),
		NewRestriction(get(IDRestriction)),
		NewAvailability(get(IDAvailability)),
		NewRequest(get(IDRequest)),
		NewFairness(get(IDFairness)),
		NewShiftFrequency(get(IDShiftFrequency)),
		NewMaxAbsence(get(IDMaxAbsence)),
		NewSequence(get(IDSequence)),
		NewShiftOrder(get(IDShiftOrder)),
	}
}
