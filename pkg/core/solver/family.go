package solver

import (
	"github.com/jbolinge/shift-solver-sub000/pkg/core/cpmodel"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
)

// Violation pairs a violation variable with its per-term priority multiplier.
// The multiplier lives here, in the family's side table, never in the
// variable's name.
type Violation struct {
	Var      cpmodel.Var
	Priority int
}

// Inputs carries the immutable solve inputs every constraint family reads
// from. Periods are indexed 0..NumPeriods-1; date-to-index conversion happens
// before families run.
type Inputs struct {
	Workers               []model.Worker
	ShiftTypes            []model.ShiftType
	Periods               []model.Period
	Availabilities        []model.Availability
	Requests              []model.SchedulingRequest
	FrequencyRequirements []model.ShiftFrequencyRequirement
	OrderPreferences      []model.ShiftOrderPreference
}

// NumPeriods returns the horizon length.
func (in Inputs) NumPeriods() int { return len(in.Periods) }

// Family is one constraint kind. Apply reads the variable tensor plus the
// family's inputs and emits hard assertions, auxiliary variables, and
// violation variables onto the model. A family holds no state across solves
// other than the violation table it filled during Apply.
type Family interface {
	// ID names the family ("coverage", "request", ...).
	ID() string

	// Enabled reports whether the family participates in the solve.
	Enabled() bool

	// IsHard reports whether the family compiles hard assertions instead of
	// violation variables.
	IsHard() bool

	// Weight is the family-level objective weight for soft mode.
	Weight() int

	// Apply emits the family's sub-model.
	Apply(m *cpmodel.Model, vars *Variables, in Inputs) error

	// Violations returns the violation table filled by Apply.
	Violations() []Violation
}
