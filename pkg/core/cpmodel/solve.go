package cpmodel

import (
	"time"

	"github.com/crillab/gophersat/solver"
)

// Status is the canonical outcome of a solve.
type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusFeasible
	StatusInfeasible
	StatusModelInvalid
)

// String returns the canonical status name.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusModelInvalid:
		return "MODEL_INVALID"
	default:
		return "UNKNOWN"
	}
}

// Result carries the solve outcome and, on OPTIMAL or FEASIBLE, the variable
// assignment and objective value.
type Result struct {
	Status         Status
	ObjectiveValue int
	SolveTime      time.Duration

	values []bool
}

// HasSolution reports whether a variable assignment is available.
func (r Result) HasSolution() bool {
	return r.Status == StatusOptimal || r.Status == StatusFeasible
}

// padValues extends a backend model to the full variable count. Variables the
// backend never saw (mentioned in no constraint) default to false.
func padValues(values []bool, numVars int) []bool {
	if len(values) >= numVars {
		return values
	}
	out := make([]bool, numVars)
	copy(out, values)
	return out
}

// Value returns the solved value of a variable. Calling it without a solution
// is a programmer error.
func (r Result) Value(v Var) bool {
	if r.values == nil {
		panic("cpmodel: Value called on a result without a solution")
	}
	if v < 1 || int(v) > len(r.values) {
		panic("cpmodel: Value called with an unknown variable handle")
	}
	return r.values[v-1]
}

// LitValue returns the solved truth value of a literal.
func (r Result) LitValue(l Lit) bool {
	if l < 0 {
		return !r.Value(l.Var())
	}
	return r.Value(l.Var())
}

// Solve runs the backend with the given time limit. numWorkers is accepted as
// a parallel-search hint; the backend searches single-threaded, so the hint is
// ignored. Cancellation happens only through the time
// limit expiring.
func (m *Model) Solve(timeLimit time.Duration, numWorkers int) Result {
	_ = numWorkers

	start := time.Now()
	if m.invalid != nil {
		return Result{Status: StatusModelInvalid, SolveTime: time.Since(start)}
	}
	if len(m.names) == 0 {
		return Result{Status: StatusModelInvalid, SolveTime: time.Since(start)}
	}
	if timeLimit <= 0 {
		timeLimit = time.Minute
	}

	pb := solver.ParsePBConstrs(m.constrs)

	if !m.hasObjective {
		return m.solveDecision(solver.New(pb), start, timeLimit)
	}

	costLits := make([]solver.Lit, len(m.objLits))
	for i, l := range m.objLits {
		costLits[i] = solver.IntToLit(int32(l))
	}
	pb.SetCostFunc(costLits, m.objWeights)
	s := solver.New(pb)
	s.Verbose = false

	done := make(chan solver.Result, 1)
	stop := make(chan struct{})
	go func() {
		done <- s.Optimal(nil, stop)
	}()

	timer := time.NewTimer(timeLimit)
	defer timer.Stop()

	var res solver.Result
	interrupted := false
	select {
	case res = <-done:
	case <-timer.C:
		interrupted = true
		close(stop)
		res = <-done
	}
	elapsed := time.Since(start)

	switch res.Status {
	case solver.Unsat:
		return Result{Status: StatusInfeasible, SolveTime: elapsed}
	case solver.Sat:
		st := StatusOptimal
		if interrupted {
			st = StatusFeasible
		}
		return Result{
			Status:         st,
			ObjectiveValue: res.Weight,
			SolveTime:      elapsed,
			values:         padValues(res.Model, len(m.names)),
		}
	default:
		if len(res.Model) > 0 {
			return Result{
				Status:         StatusFeasible,
				ObjectiveValue: res.Weight,
				SolveTime:      elapsed,
				values:         padValues(res.Model, len(m.names)),
			}
		}
		return Result{Status: StatusUnknown, SolveTime: elapsed}
	}
}

// solveDecision handles the pure-feasibility case: no objective terms means
// any satisfying assignment is optimal.
func (m *Model) solveDecision(s *solver.Solver, start time.Time, timeLimit time.Duration) Result {
	type outcome struct {
		status solver.Status
		values []bool
	}
	done := make(chan outcome, 1)
	go func() {
		st := s.Solve()
		var vals []bool
		if st == solver.Sat {
			vals = s.Model()
		}
		done <- outcome{status: st, values: vals}
	}()

	timer := time.NewTimer(timeLimit)
	defer timer.Stop()

	select {
	case out := <-done:
		elapsed := time.Since(start)
		switch out.status {
		case solver.Sat:
			return Result{Status: StatusOptimal, SolveTime: elapsed, values: padValues(out.values, len(m.names))}
		case solver.Unsat:
			return Result{Status: StatusInfeasible, SolveTime: elapsed}
		default:
			return Result{Status: StatusUnknown, SolveTime: elapsed}
		}
	case <-timer.C:
		return Result{Status: StatusUnknown, SolveTime: time.Since(start)}
	}
}
