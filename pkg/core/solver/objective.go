package solver

import "github.com/jbolinge/shift-solver-sub000/pkg/core/cpmodel"

// Term is one objective entry retained for diagnostics.
type Term struct {
	Var                cpmodel.Var
	FamilyID           string
	PriorityMultiplier int
	EffectiveWeight    int
}

// ObjectiveBuilder collects every violation variable from every enabled soft
// family, weights each term by priority multiplier × family weight, and
// installs the minimization objective. It is a pure summer: no normalization
// across families.
type ObjectiveBuilder struct {
	model    *cpmodel.Model
	families []Family
	terms    []Term
	built    bool
}

// NewObjectiveBuilder returns a builder for the given model.
func NewObjectiveBuilder(m *cpmodel.Model) *ObjectiveBuilder {
	return &ObjectiveBuilder{model: m}
}

// Add registers a family whose violations contribute to the objective.
// Families must have had Apply called before Build runs.
func (b *ObjectiveBuilder) Add(f Family) {
	b.families = append(b.families, f)
}

// Build walks the registered families and installs min Σ effective_weight·v.
// With no terms the objective is a constant zero and the solve is a pure
// feasibility problem.
func (b *ObjectiveBuilder) Build() {
	b.terms = b.terms[:0]
	for _, f := range b.families {
		if !f.Enabled() || f.IsHard() {
			continue
		}
		for _, v := range f.Violations() {
			b.terms = append(b.terms, Term{
				Var:                v.Var,
				FamilyID:           f.ID(),
				PriorityMultiplier: v.Priority,
				EffectiveWeight:    v.Priority * f.Weight(),
			})
		}
	}

	objTerms := make([]cpmodel.ObjectiveTerm, len(b.terms))
	for i, t := range b.terms {
		objTerms[i] = cpmodel.ObjectiveTerm{Lit: t.Var.Lit(), Weight: t.EffectiveWeight}
	}
	b.model.Minimize(objTerms)
	b.built = true
}

// Breakdown returns the objective terms grouped by family.
func (b *ObjectiveBuilder) Breakdown() map[string][]Term {
	out := make(map[string][]Term)
	for _, t := range b.terms {
		out[t.FamilyID] = append(out[t.FamilyID], t)
	}
	return out
}

// TotalWeightByFamily returns, per family, the sum of effective weights — the
// maximum penalty the family can contribute.
func (b *ObjectiveBuilder) TotalWeightByFamily() map[string]int {
	out := make(map[string]int)
	for _, t := range b.terms {
		out[t.FamilyID] += t.EffectiveWeight
	}
	return out
}

// NumTerms returns the number of installed objective terms.
func (b *ObjectiveBuilder) NumTerms() int { return len(b.terms) }
