package solver

import (
	"fmt"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/cpmodel"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
)

type varKey struct {
	workerID    string
	period      int
	shiftTypeID string
}

// Variables owns the assignment-variable tensor for one solve, indexed by
// (worker, period, shift type). It only names and allocates; no constraints
// are emitted here.
type Variables struct {
	index      map[varKey]cpmodel.Var
	numPeriods int
}

// BuildVariables allocates one boolean decision variable per
// (worker, period, shift type) cell.
func BuildVariables(m *cpmodel.Model, workers []model.Worker, shiftTypes []model.ShiftType, numPeriods int) *Variables {
	v := &Variables{
		index:      make(map[varKey]cpmodel.Var, len(workers)*numPeriods*len(shiftTypes)),
		numPeriods: numPeriods,
	}
	for _, w := range workers {
		for p := 0; p < numPeriods; p++ {
			for _, st := range shiftTypes {
				name := fmt.Sprintf("assign_%s_p%d_%s", w.ID, p, st.ID)
				v.index[varKey{w.ID, p, st.ID}] = m.NewBoolVar(name)
			}
		}
	}
	return v
}

// Get returns the variable for a cell. A missing key is a programmer error
// and panics.
func (v *Variables) Get(workerID string, period int, shiftTypeID string) cpmodel.Var {
	bv, ok := v.index[varKey{workerID, period, shiftTypeID}]
	if !ok {
		panic(fmt.Sprintf("solver: no assignment variable for (%s, %d, %s)", workerID, period, shiftTypeID))
	}
	return bv
}

// Lookup returns the variable for a cell, reporting whether it exists.
// Constraint families use it to skip rules referencing unknown entities.
func (v *Variables) Lookup(workerID string, period int, shiftTypeID string) (cpmodel.Var, bool) {
	bv, ok := v.index[varKey{workerID, period, shiftTypeID}]
	return bv, ok
}

// Count returns the number of assignment variables.
func (v *Variables) Count() int { return len(v.index) }

// NumPeriods returns the horizon length the tensor was built for.
func (v *Variables) NumPeriods() int { return v.numPeriods }
