// Package cpmodel is a thin constraint-model layer over the gophersat
// pseudo-boolean solver. It names boolean decision variables, lowers linear
// constraints over boolean sums to pseudo-boolean form, and carries a weighted
// minimization objective.
package cpmodel

import (
	"fmt"

	"github.com/crillab/gophersat/solver"
)

// Var is a boolean decision variable handle. Handles are 1-based; the zero
// value is invalid.
type Var int

// Lit is a signed literal: +v for the variable, -v for its negation.
type Lit int

// Lit returns the positive literal of the variable.
func (v Var) Lit() Lit { return Lit(v) }

// Not returns the negated literal.
func (l Lit) Not() Lit { return -l }

// Var returns the underlying variable of the literal.
func (l Lit) Var() Var {
	if l < 0 {
		return Var(-l)
	}
	return Var(l)
}

// ObjectiveTerm is one weighted literal of the minimization objective.
type ObjectiveTerm struct {
	Lit    Lit
	Weight int
}

// Model accumulates variables, pseudo-boolean constraints, and an objective.
// One Model serves exactly one solve; nothing is shared between solves.
type Model struct {
	names        []string
	constrs      []solver.PBConstr
	objLits      []int
	objWeights   []int
	hasObjective bool

	// invalid records a construction error; Solve reports StatusModelInvalid
	// when set.
	invalid error
}

// New returns an empty model.
func New() *Model {
	return &Model{}
}

// NewBoolVar allocates a fresh boolean variable with the given name.
func (m *Model) NewBoolVar(name string) Var {
	m.names = append(m.names, name)
	return Var(len(m.names))
}

// Name returns the name a variable was created with.
func (m *Model) Name(v Var) string {
	if v < 1 || int(v) > len(m.names) {
		panic(fmt.Sprintf("cpmodel: unknown variable handle %d", v))
	}
	return m.names[v-1]
}

// NumVars returns the number of allocated variables.
func (m *Model) NumVars() int { return len(m.names) }

// NumConstraints returns the number of lowered pseudo-boolean constraints.
func (m *Model) NumConstraints() int { return len(m.constrs) }

func (m *Model) setInvalid(format string, args ...any) {
	if m.invalid == nil {
		m.invalid = fmt.Errorf(format, args...)
	}
}

func lits(ls []Lit) []int {
	out := make([]int, len(ls))
	for i, l := range ls {
		out[i] = int(l)
	}
	return out
}

func varLits(vs []Var) []int {
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i] = int(v)
	}
	return out
}

func ones(n int) []int {
	w := make([]int, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

// AddClause asserts that at least one of the literals is true.
func (m *Model) AddClause(ls ...Lit) {
	if len(ls) == 0 {
		m.setInvalid("cpmodel: empty clause")
		return
	}
	m.constrs = append(m.constrs, solver.GtEq(lits(ls), ones(len(ls)), 1))
}

// AddImplication asserts a → b.
func (m *Model) AddImplication(a, b Lit) {
	m.AddClause(a.Not(), b)
}

// FixTrue forces the variable to 1.
func (m *Model) FixTrue(v Var) { m.AddClause(v.Lit()) }

// FixFalse forces the variable to 0.
func (m *Model) FixFalse(v Var) { m.AddClause(v.Lit().Not()) }

// AddSumAtLeast asserts Σ vars ≥ n.
func (m *Model) AddSumAtLeast(vs []Var, n int) {
	if n <= 0 {
		return
	}
	if n > len(vs) {
		m.setInvalid("cpmodel: sum of %d variables can never reach %d", len(vs), n)
		return
	}
	m.constrs = append(m.constrs, solver.GtEq(varLits(vs), ones(len(vs)), n))
}

// AddSumAtMost asserts Σ vars ≤ n.
func (m *Model) AddSumAtMost(vs []Var, n int) {
	if n < 0 {
		m.setInvalid("cpmodel: negative sum bound %d", n)
		return
	}
	if n >= len(vs) {
		return
	}
	m.constrs = append(m.constrs, solver.LtEq(varLits(vs), ones(len(vs)), n))
}

// AddSumEqual asserts Σ vars = n.
func (m *Model) AddSumEqual(vs []Var, n int) {
	if n < 0 || n > len(vs) {
		m.setInvalid("cpmodel: sum of %d variables can never equal %d", len(vs), n)
		return
	}
	m.AddSumAtLeast(vs, n)
	m.AddSumAtMost(vs, n)
}

// AddWeightedAtLeast asserts Σ weights·lits ≥ n over true literals.
func (m *Model) AddWeightedAtLeast(ls []Lit, weights []int, n int) {
	if len(ls) != len(weights) {
		m.setInvalid("cpmodel: %d literals with %d weights", len(ls), len(weights))
		return
	}
	m.constrs = append(m.constrs, solver.GtEq(lits(ls), weights, n))
}

// AddReifiedSumZero links ind = 1 ⇔ Σ vars = 0.
func (m *Model) AddReifiedSumZero(ind Var, vs []Var) {
	// ind → every var false
	for _, v := range vs {
		m.AddImplication(ind.Lit(), v.Lit().Not())
	}
	// ¬ind → some var true
	clause := make([]Lit, 0, len(vs)+1)
	clause = append(clause, ind.Lit())
	for _, v := range vs {
		clause = append(clause, v.Lit())
	}
	m.AddClause(clause...)
}

// AddReifiedAnd links ind = 1 ⇔ every literal true.
func (m *Model) AddReifiedAnd(ind Var, ls ...Lit) {
	for _, l := range ls {
		m.AddImplication(ind.Lit(), l)
	}
	clause := make([]Lit, 0, len(ls)+1)
	clause = append(clause, ind.Lit())
	for _, l := range ls {
		clause = append(clause, l.Not())
	}
	m.AddClause(clause...)
}

// AddReifiedOr links ind = 1 ⇔ at least one literal true.
func (m *Model) AddReifiedOr(ind Var, ls ...Lit) {
	for _, l := range ls {
		m.AddImplication(l, ind.Lit())
	}
	clause := make([]Lit, 0, len(ls)+1)
	clause = append(clause, ind.Lit().Not())
	clause = append(clause, ls...)
	m.AddClause(clause...)
}

// AddReifiedSumAtLeast links ind = 1 ⇔ Σ vars ≥ k, using big-M pseudo-boolean
// constraints in both directions.
func (m *Model) AddReifiedSumAtLeast(ind Var, vs []Var, k int) {
	n := len(vs)
	if k <= 0 {
		m.FixTrue(ind)
		return
	}
	if k > n {
		m.FixFalse(ind)
		return
	}
	// ind → Σ ≥ k:  Σ vars + k·(¬ind) ≥ k
	fwd := make([]Lit, 0, n+1)
	fwdW := make([]int, 0, n+1)
	for _, v := range vs {
		fwd = append(fwd, v.Lit())
		fwdW = append(fwdW, 1)
	}
	fwd = append(fwd, ind.Lit().Not())
	fwdW = append(fwdW, k)
	m.AddWeightedAtLeast(fwd, fwdW, k)

	// ¬ind → Σ ≤ k−1:  Σ ¬vars + (n−k+1)·ind ≥ n−k+1
	bound := n - k + 1
	back := make([]Lit, 0, n+1)
	backW := make([]int, 0, n+1)
	for _, v := range vs {
		back = append(back, v.Lit().Not())
		backW = append(backW, 1)
	}
	back = append(back, ind.Lit())
	backW = append(backW, bound)
	m.AddWeightedAtLeast(back, backW, bound)
}

// Minimize installs the objective Σ weight·lit. A model without an objective
// is a pure feasibility problem.
func (m *Model) Minimize(terms []ObjectiveTerm) {
	m.objLits = m.objLits[:0]
	m.objWeights = m.objWeights[:0]
	for _, t := range terms {
		if t.Weight < 0 {
			m.setInvalid("cpmodel: negative objective weight %d", t.Weight)
			return
		}
		if t.Weight == 0 {
			continue
		}
		m.objLits = append(m.objLits, int(t.Lit))
		m.objWeights = append(m.objWeights, t.Weight)
	}
	m.hasObjective = len(m.objLits) > 0
}
