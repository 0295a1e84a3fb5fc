package constraints

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/cpmodel"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/solver"
)

// ShiftOrder compiles shift-order preference rules over adjacent period
// pairs: when the trigger fires in one period, the preferred shift should
// appear in the neighboring period (per the rule's direction) for the same
// worker. The trigger can be a shift type, a category, or the worker being
// unavailable; the preferred target is a shift type or category.
//
// A rule emits nothing when the horizon has fewer than two periods or when
// its referenced ids are unknown. Workers restricted from the entire
// preferred target are excluded from the rule's scope.
type ShiftOrder struct {
	base
}

// NewShiftOrder creates the shift-order-preference family.
func NewShiftOrder(config model.ConstraintConfig) *ShiftOrder {
	return &ShiftOrder{base: newBase(IDShiftOrder, config)}
}

// Apply compiles every rule.
func (o *ShiftOrder) Apply(m *cpmodel.Model, vars *solver.Variables, in solver.Inputs) error {
	o.reset()

	if in.NumPeriods() < 2 {
		return nil
	}
	for _, rule := range in.OrderPreferences {
		o.applyRule(m, vars, in, rule)
	}
	return nil
}

// preferredShiftIDs resolves the rule's preferred target to shift type ids.
func preferredShiftIDs(rule model.ShiftOrderPreference, shiftTypes []model.ShiftType) []string {
	switch rule.PreferredType {
	case model.PreferredShiftType:
		for _, st := range shiftTypes {
			if st.ID == rule.PreferredValue {
				return []string{st.ID}
			}
		}
	case model.PreferredCategory:
		return lo.FilterMap(shiftTypes, func(st model.ShiftType, _ int) (string, bool) {
			return st.ID, st.Category == rule.PreferredValue
		})
	}
	return nil
}

// triggerShiftIDs resolves a shift-type or category trigger; unavailability
// triggers resolve to nil with ok=true.
func triggerShiftIDs(rule model.ShiftOrderPreference, shiftTypes []model.ShiftType) ([]string, bool) {
	switch rule.TriggerType {
	case model.TriggerUnavailability:
		return nil, true
	case model.TriggerShiftType:
		for _, st := range shiftTypes {
			if st.ID == rule.TriggerValue {
				return []string{st.ID}, true
			}
		}
		return nil, false
	case model.TriggerCategory:
		ids := lo.FilterMap(shiftTypes, func(st model.ShiftType, _ int) (string, bool) {
			return st.ID, st.Category == rule.TriggerValue
		})
		return ids, len(ids) > 0
	}
	return nil, false
}

func (o *ShiftOrder) applyRule(m *cpmodel.Model, vars *solver.Variables, in solver.Inputs, rule model.ShiftOrderPreference) {
	preferred := preferredShiftIDs(rule, in.ShiftTypes)
	if len(preferred) == 0 {
		return
	}
	trigger, ok := triggerShiftIDs(rule, in.ShiftTypes)
	if !ok {
		return
	}

	scope := in.Workers
	if len(rule.WorkerIDs) > 0 {
		ids := lo.SliceToMap(rule.WorkerIDs, func(id string) (string, bool) { return id, true })
		scope = lo.Filter(in.Workers, func(w model.Worker, _ int) bool { return ids[w.ID] })
	}
	// A worker restricted from every preferred shift could only ever violate
	// the rule; leave them out.
	scope = lo.Filter(scope, func(w model.Worker, _ int) bool {
		return lo.SomeBy(preferred, w.CanWorkShift)
	})
	if len(scope) == 0 {
		return
	}

	priority := rule.Priority
	if priority < 1 {
		priority = 1
	}

	for _, w := range scope {
		for n := 0; n+1 < in.NumPeriods(); n++ {
			triggerPeriod, preferredPeriod := n, n+1
			if rule.Direction == model.DirectionBefore {
				triggerPeriod, preferredPeriod = n+1, n
			}

			prefLits := make([]cpmodel.Lit, 0, len(preferred))
			for _, id := range preferred {
				prefLits = append(prefLits, vars.Get(w.ID, preferredPeriod, id).Lit())
			}

			if rule.TriggerType == model.TriggerUnavailability {
				if !workerUnavailable(in, w.ID, triggerPeriod) {
					continue
				}
				// The trigger is a fact: violation ⇔ no preferred shift in
				// the adjacent period.
				if o.IsHard() {
					m.AddClause(prefLits...)
					continue
				}
				v := m.NewBoolVar(fmt.Sprintf("order_viol_%s_%s_n%d", rule.RuleID, w.ID, n))
				m.AddReifiedSumZero(v, litVars(prefLits))
				o.addViolation(v, priority)
				continue
			}

			trigLits := make([]cpmodel.Lit, 0, len(trigger))
			for _, id := range trigger {
				trigLits = append(trigLits, vars.Get(w.ID, triggerPeriod, id).Lit())
			}

			trigFires := trigLits[0]
			if len(trigLits) > 1 {
				or := m.NewBoolVar(fmt.Sprintf("order_trig_%s_%s_n%d", rule.RuleID, w.ID, n))
				m.AddReifiedOr(or, trigLits...)
				trigFires = or.Lit()
			}
			prefFires := prefLits[0]
			if len(prefLits) > 1 {
				or := m.NewBoolVar(fmt.Sprintf("order_pref_%s_%s_n%d", rule.RuleID, w.ID, n))
				m.AddReifiedOr(or, prefLits...)
				prefFires = or.Lit()
			}

			if o.IsHard() {
				m.AddImplication(trigFires, prefFires)
				continue
			}
			v := m.NewBoolVar(fmt.Sprintf("order_viol_%s_%s_n%d", rule.RuleID, w.ID, n))
			m.AddReifiedAnd(v, trigFires, prefFires.Not())
			o.addViolation(v, priority)
		}
	}
}

// workerUnavailable reports whether any unavailable record of the worker
// overlaps the period.
func workerUnavailable(in solver.Inputs, workerID string, periodIdx int) bool {
	p := in.Periods[periodIdx]
	for _, a := range in.Availabilities {
		if a.WorkerID != workerID || a.Type != model.AvailabilityUnavailable {
			continue
		}
		if a.Range().Overlaps(p.Range()) {
			return true
		}
	}
	return false
}

func litVars(ls []cpmodel.Lit) []cpmodel.Var {
	out := make([]cpmodel.Var, len(ls))
	for i, l := range ls {
		out[i] = l.Var()
	}
	return out
}
