// Package feasibility runs cheap structural checks on solve inputs before any
// model construction, rejecting obviously unsatisfiable problems early.
package feasibility

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
)

// Issue is one analyzer finding. Severity is "error" or "warning".
type Issue struct {
	Type     string         `json:"type"`
	Message  string         `json:"message"`
	Severity string         `json:"severity"`
	Details  map[string]any `json:"details,omitempty"`
}

// Result aggregates analyzer findings. Errors flip IsFeasible; warnings never
// block solving.
type Result struct {
	IsFeasible bool    `json:"is_feasible"`
	Issues     []Issue `json:"issues"`
	Warnings   []Issue `json:"warnings"`
}

func (r *Result) addIssue(issueType, message string, details map[string]any) {
	r.Issues = append(r.Issues, Issue{Type: issueType, Message: message, Severity: "error", Details: details})
	r.IsFeasible = false
}

func (r *Result) addWarning(issueType, message string, details map[string]any) {
	r.Warnings = append(r.Warnings, Issue{Type: issueType, Message: message, Severity: "warning", Details: details})
}

// Checker validates solve inputs. The analyzer never guesses intent;
// borderline configurations surface as warnings.
type Checker struct {
	workers          []model.Worker
	shiftTypes       []model.ShiftType
	periods          []model.Period
	availabilities   []model.Availability
	frequencyReqs    []model.ShiftFrequencyRequirement
	orderPreferences []model.ShiftOrderPreference
	logger           *zap.Logger
}

// NewChecker builds an analyzer over the given inputs. The logger may be nil.
func NewChecker(
	workers []model.Worker,
	shiftTypes []model.ShiftType,
	periods []model.Period,
	availabilities []model.Availability,
	frequencyReqs []model.ShiftFrequencyRequirement,
	orderPreferences []model.ShiftOrderPreference,
	logger *zap.Logger,
) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		workers:          workers,
		shiftTypes:       shiftTypes,
		periods:          periods,
		availabilities:   availabilities,
		frequencyReqs:    frequencyReqs,
		orderPreferences: orderPreferences,
		logger:           logger,
	}
}

// Check runs every feasibility check in order and returns the findings.
func (c *Checker) Check() *Result {
	result := &Result{IsFeasible: true}

	c.checkPeriods(result)
	c.checkBasicCoverage(result)
	c.checkRestrictions(result)
	c.checkAvailabilityConflicts(result)
	c.checkCombinedFeasibility(result)
	c.checkFrequencyRequirements(result)
	c.checkOrderPreferences(result)

	if result.IsFeasible {
		c.logger.Info("Feasibility check passed", zap.Int("warnings", len(result.Warnings)))
	} else {
		c.logger.Warn("Feasibility check failed", zap.Int("issues", len(result.Issues)))
		for _, issue := range result.Issues {
			c.logger.Warn("Feasibility issue",
				zap.String("type", issue.Type),
				zap.String("message", issue.Message))
		}
	}
	return result
}

func (c *Checker) checkPeriods(result *Result) {
	if len(c.periods) == 0 {
		result.addIssue("period", "No scheduling periods defined", nil)
		return
	}
	for _, p := range c.periods {
		if p.EndDate.Before(p.StartDate) {
			result.addIssue("period",
				fmt.Sprintf("Period %d has end date before start date", p.Index),
				map[string]any{"period_index": p.Index})
		}
	}
}

func (c *Checker) checkBasicCoverage(result *Result) {
	if len(c.workers) == 0 {
		result.addIssue("coverage", "No workers defined", nil)
		return
	}
	maxRequired := 0
	for _, st := range c.shiftTypes {
		if st.WorkersRequired > maxRequired {
			maxRequired = st.WorkersRequired
		}
	}
	if len(c.workers) < maxRequired {
		result.addIssue("coverage",
			fmt.Sprintf("Not enough workers (%d) for shift requiring %d workers",
				len(c.workers), maxRequired),
			map[string]any{
				"workers_available": len(c.workers),
				"workers_required":  maxRequired,
			})
	}
}

func (c *Checker) checkRestrictions(result *Result) {
	for _, st := range c.shiftTypes {
		available := lo.CountBy(c.workers, func(w model.Worker) bool {
			return w.CanWorkShift(st.ID)
		})
		if available < st.WorkersRequired {
			result.addIssue("restriction",
				fmt.Sprintf("Not enough workers can work shift '%s': %d available, %d required",
					st.Name, available, st.WorkersRequired),
				map[string]any{
					"shift_type_id":     st.ID,
					"workers_available": available,
					"workers_required":  st.WorkersRequired,
				})
		}
	}
}

// unavailableWorkers returns the set of worker IDs with an overlapping
// blanket "unavailable" record for the period. Shift-specific records are
// not counted.
func (c *Checker) unavailableWorkers(p model.Period) map[string]bool {
	out := make(map[string]bool)
	for _, a := range c.availabilities {
		if a.Type != model.AvailabilityUnavailable {
			continue
		}
		if a.ShiftTypeID != "" {
			continue
		}
		if a.Range().Overlaps(p.Range()) {
			out[a.WorkerID] = true
		}
	}
	return out
}

// periodNeedsCoverage reports whether any shift type requires workers in the
// period, honoring applicable_days.
func (c *Checker) periodNeedsCoverage(p model.Period) bool {
	return lo.SomeBy(c.shiftTypes, func(st model.ShiftType) bool {
		return st.WorkersRequired > 0 && st.AppliesToPeriod(p)
	})
}

func (c *Checker) checkAvailabilityConflicts(result *Result) {
	if len(c.availabilities) == 0 {
		return
	}
	for _, p := range c.periods {
		// A period with no required coverage is satisfiable even when every
		// worker is away.
		if !c.periodNeedsCoverage(p) {
			continue
		}
		unavailable := c.unavailableWorkers(p)
		anyAvailable := lo.SomeBy(c.workers, func(w model.Worker) bool {
			return !unavailable[w.ID]
		})
		if !anyAvailable && len(c.workers) > 0 {
			result.addIssue("availability",
				fmt.Sprintf("All workers unavailable for period %d (%s to %s)",
					p.Index,
					p.StartDate.Format(model.DateLayout),
					p.EndDate.Format(model.DateLayout)),
				map[string]any{
					"period_index": p.Index,
					"period_start": p.StartDate.Format(model.DateLayout),
					"period_end":   p.EndDate.Format(model.DateLayout),
				})
		}
	}
}

func (c *Checker) checkCombinedFeasibility(result *Result) {
	if len(result.Issues) > 0 {
		// Fundamental issues already found, the detailed sweep would only
		// repeat them.
		return
	}
	for _, p := range c.periods {
		unavailable := c.unavailableWorkers(p)
		for _, st := range c.shiftTypes {
			if !st.AppliesToPeriod(p) {
				continue
			}
			available := 0
			for _, w := range c.workers {
				if unavailable[w.ID] {
					continue
				}
				if !w.CanWorkShift(st.ID) {
					continue
				}
				available++
			}
			if available < st.WorkersRequired {
				result.addIssue("combined",
					fmt.Sprintf("Period %d: Not enough workers for shift '%s' after restrictions and availability: %d available, %d required",
						p.Index, st.Name, available, st.WorkersRequired),
					map[string]any{
						"period_index":      p.Index,
						"shift_type_id":     st.ID,
						"workers_available": available,
						"workers_required":  st.WorkersRequired,
					})
			}
		}
	}
}

func (c *Checker) checkFrequencyRequirements(result *Result) {
	if len(c.frequencyReqs) == 0 {
		return
	}
	workerByID := lo.KeyBy(c.workers, func(w model.Worker) string { return w.ID })
	knownShifts := lo.SliceToMap(c.shiftTypes, func(st model.ShiftType) (string, bool) { return st.ID, true })
	numPeriods := len(c.periods)

	for _, req := range c.frequencyReqs {
		worker, ok := workerByID[req.WorkerID]
		if !ok {
			result.addWarning("shift_frequency",
				fmt.Sprintf("Shift frequency requirement references unknown worker '%s'", req.WorkerID),
				map[string]any{"worker_id": req.WorkerID})
			continue
		}

		valid := lo.Filter(req.ShiftTypes, func(id string, _ int) bool { return knownShifts[id] })
		if len(valid) == 0 {
			unknown := append([]string(nil), req.ShiftTypes...)
			sort.Strings(unknown)
			result.addIssue("shift_frequency",
				fmt.Sprintf("Shift frequency requirement for worker '%s' references unknown shift types: %v",
					req.WorkerID, unknown),
				map[string]any{
					"worker_id":           req.WorkerID,
					"unknown_shift_types": unknown,
				})
			continue
		}

		workable := lo.Filter(valid, func(id string, _ int) bool { return worker.CanWorkShift(id) })
		if len(workable) == 0 {
			sorted := append([]string(nil), req.ShiftTypes...)
			sort.Strings(sorted)
			result.addIssue("shift_frequency",
				fmt.Sprintf("Worker '%s' has shift frequency requirement for shift types %v but is restricted from all of them",
					req.WorkerID, sorted),
				map[string]any{
					"worker_id":            req.WorkerID,
					"required_shift_types": sorted,
				})
		}

		if req.MaxPeriodsBetween > numPeriods {
			result.addWarning("shift_frequency",
				fmt.Sprintf("Worker '%s' has max_periods_between=%d but schedule only has %d periods. Requirement will be skipped.",
					req.WorkerID, req.MaxPeriodsBetween, numPeriods),
				map[string]any{
					"worker_id":           req.WorkerID,
					"max_periods_between": req.MaxPeriodsBetween,
					"num_periods":         numPeriods,
				})
		}
	}
}

func (c *Checker) checkOrderPreferences(result *Result) {
	if len(c.orderPreferences) == 0 {
		return
	}
	workerByID := lo.KeyBy(c.workers, func(w model.Worker) string { return w.ID })
	knownShifts := lo.SliceToMap(c.shiftTypes, func(st model.ShiftType) (string, bool) { return st.ID, true })
	categories := lo.SliceToMap(c.shiftTypes, func(st model.ShiftType) (string, bool) { return st.Category, true })

	if len(c.periods) < 2 {
		for _, pref := range c.orderPreferences {
			result.addWarning("shift_order_preference",
				fmt.Sprintf("Rule '%s': schedule has fewer than 2 periods, constraint will have no effect", pref.RuleID),
				map[string]any{"rule_id": pref.RuleID})
		}
		return
	}

	for _, pref := range c.orderPreferences {
		switch pref.TriggerType {
		case model.TriggerShiftType:
			if !knownShifts[pref.TriggerValue] {
				result.addWarning("shift_order_preference",
					fmt.Sprintf("Rule '%s': unknown trigger shift type '%s'", pref.RuleID, pref.TriggerValue),
					map[string]any{"rule_id": pref.RuleID})
			}
		case model.TriggerCategory:
			if !categories[pref.TriggerValue] {
				result.addWarning("shift_order_preference",
					fmt.Sprintf("Rule '%s': unknown trigger category '%s'", pref.RuleID, pref.TriggerValue),
					map[string]any{"rule_id": pref.RuleID})
			}
		}

		switch pref.PreferredType {
		case model.PreferredShiftType:
			if !knownShifts[pref.PreferredValue] {
				result.addWarning("shift_order_preference",
					fmt.Sprintf("Rule '%s': unknown preferred shift type '%s'", pref.RuleID, pref.PreferredValue),
					map[string]any{"rule_id": pref.RuleID})
			}
		case model.PreferredCategory:
			if !categories[pref.PreferredValue] {
				result.addWarning("shift_order_preference",
					fmt.Sprintf("Rule '%s': unknown preferred category '%s'", pref.RuleID, pref.PreferredValue),
					map[string]any{"rule_id": pref.RuleID})
			}
		}

		if len(pref.WorkerIDs) > 0 {
			unknown := lo.Filter(pref.WorkerIDs, func(id string, _ int) bool {
				_, ok := workerByID[id]
				return !ok
			})
			if len(unknown) > 0 {
				sort.Strings(unknown)
				result.addWarning("shift_order_preference",
					fmt.Sprintf("Rule '%s': unknown worker IDs: %v", pref.RuleID, unknown),
					map[string]any{"rule_id": pref.RuleID})
			}
		}

		// A rule whose entire scope is restricted from the preferred shift
		// can never be satisfied; warn rather than silently penalize.
		if pref.PreferredType == model.PreferredShiftType && knownShifts[pref.PreferredValue] {
			scope := c.workers
			if len(pref.WorkerIDs) > 0 {
				scope = nil
				for _, id := range pref.WorkerIDs {
					if w, ok := workerByID[id]; ok {
						scope = append(scope, w)
					}
				}
			}
			if len(scope) > 0 {
				allRestricted := lo.EveryBy(scope, func(w model.Worker) bool {
					return !w.CanWorkShift(pref.PreferredValue)
				})
				if allRestricted {
					result.addWarning("shift_order_preference",
						fmt.Sprintf("Rule '%s': all applicable workers are restricted from preferred shift '%s'",
							pref.RuleID, pref.PreferredValue),
						map[string]any{"rule_id": pref.RuleID})
				}
			}
		}
	}
}
