package constraints

import (
	"fmt"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/cpmodel"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/solver"
)

// Request compiles positive/negative scheduling requests. Soft by default:
// a positive request's violation is 1 exactly when the worker is not
// assigned; a negative request's violation is 1 exactly when they are. The
// priority multiplier is the request's own priority, recorded in the family's
// side table. A request whose effective mode is hard (per-record is_hard, or
// the family config) compiles equality assertions instead.
type Request struct {
	base
}

// NewRequest creates the request family.
func NewRequest(config model.ConstraintConfig) *Request {
	return &Request{base: newBase(IDRequest, config)}
}

// Apply processes every request against the periods its date range touches.
// Requests naming unknown workers or shift types compile to nothing.
func (r *Request) Apply(m *cpmodel.Model, vars *solver.Variables, in solver.Inputs) error {
	r.reset()

	for reqIdx, req := range in.Requests {
		priority := req.Priority
		if priority < 1 {
			priority = 1
		}
		for _, idx := range overlappingPeriods(req.Range(), in.Periods) {
			assign, ok := vars.Lookup(req.WorkerID, idx, req.ShiftTypeID)
			if !ok {
				continue
			}
			if req.Hard(r.IsHard()) {
				if req.Type == model.RequestPositive {
					m.FixTrue(assign)
				} else {
					m.FixFalse(assign)
				}
				continue
			}

			v := m.NewBoolVar(fmt.Sprintf("request_viol_r%d_p%d", reqIdx, idx))
			if req.Type == model.RequestPositive {
				m.AddReifiedAnd(v, assign.Lit().Not())
			} else {
				m.AddReifiedAnd(v, assign.Lit())
			}
			r.addViolation(v, priority)
		}
	}
	return nil
}
