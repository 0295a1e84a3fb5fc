package model

import (
	"slices"
	"time"
)

// Worker represents a schedulable worker. Immutable during a solve.
type Worker struct {
	ID         string
	Name       string
	WorkerType string

	// RestrictedShifts lists shift type IDs this worker can never be
	// assigned to.
	RestrictedShifts []string

	// PreferredShifts lists shift type IDs this worker favors. Purely
	// informational to the hard frontier; soft families may read it.
	PreferredShifts []string

	// Attributes carries free-form metadata from the loaders.
	Attributes map[string]string
}

// CanWorkShift reports whether the worker is not restricted from the shift.
func (w Worker) CanWorkShift(shiftTypeID string) bool {
	return !slices.Contains(w.RestrictedShifts, shiftTypeID)
}

// ShiftType describes one kind of shift. Immutable during a solve.
// WorkersRequired = 0 means the shift exists but imposes no coverage.
type ShiftType struct {
	ID              string
	Name            string
	Category        string
	StartTime       string // "HH:MM"
	EndTime         string // "HH:MM"
	DurationHours   float64
	WorkersRequired int
	IsUndesirable   bool

	// ApplicableDays restricts the shift to weekdays 0=Monday .. 6=Sunday.
	// nil means the shift applies every day.
	ApplicableDays []int
}

// AppliesOn reports whether the shift type applies on the given date.
func (s ShiftType) AppliesOn(d time.Time) bool {
	if s.ApplicableDays == nil {
		return true
	}
	return slices.Contains(s.ApplicableDays, weekdayIndex(d))
}

// AppliesToPeriod reports whether at least one day of the period is an
// applicable day for this shift type.
func (s ShiftType) AppliesToPeriod(p Period) bool {
	_, ok := s.FirstApplicableDay(p)
	return ok
}

// FirstApplicableDay returns the earliest day of the period the shift type
// applies on. The second return value is false when no day applies.
func (s ShiftType) FirstApplicableDay(p Period) (time.Time, bool) {
	for d := p.StartDate; !d.After(p.EndDate); d = d.AddDate(0, 0, 1) {
		if s.AppliesOn(d) {
			return d, true
		}
	}
	return time.Time{}, false
}

// Period is one scheduling unit in the horizon. Periods are ordered by Index
// and need not be contiguous.
type Period struct {
	Index     int
	StartDate time.Time
	EndDate   time.Time
}

// Range returns the period's inclusive date range.
func (p Period) Range() DateRange {
	return DateRange{Start: p.StartDate, End: p.EndDate}
}

// AvailabilityType classifies an availability record.
type AvailabilityType string

const (
	AvailabilityUnavailable AvailabilityType = "unavailable"
	AvailabilityPreferred   AvailabilityType = "preferred"
)

// Availability marks a worker's availability over an inclusive date range.
// When ShiftTypeID is set the record applies to that shift only.
type Availability struct {
	WorkerID    string
	StartDate   time.Time
	EndDate     time.Time
	Type        AvailabilityType
	ShiftTypeID string
}

// Range returns the record's inclusive date range.
func (a Availability) Range() DateRange {
	return DateRange{Start: a.StartDate, End: a.EndDate}
}

// RequestType classifies a scheduling request.
type RequestType string

const (
	RequestPositive RequestType = "positive"
	RequestNegative RequestType = "negative"
)

// SchedulingRequest expresses that a worker should (positive) or should not
// (negative) work a shift in the periods its date range touches.
type SchedulingRequest struct {
	WorkerID    string
	StartDate   time.Time
	EndDate     time.Time
	Type        RequestType
	ShiftTypeID string
	Priority    int

	// IsHard overrides the request family's hard/soft mode for this record.
	// nil inherits the family setting.
	IsHard *bool
}

// Range returns the request's inclusive date range.
func (r SchedulingRequest) Range() DateRange {
	return DateRange{Start: r.StartDate, End: r.EndDate}
}

// Hard resolves the effective hard/soft mode given the family default.
func (r SchedulingRequest) Hard(familyHard bool) bool {
	if r.IsHard != nil {
		return *r.IsHard
	}
	return familyHard
}

// ShiftFrequencyRequirement asks that a worker have at least one shift from
// the set in every sliding window of MaxPeriodsBetween+1 periods.
type ShiftFrequencyRequirement struct {
	WorkerID          string
	ShiftTypes        []string
	MaxPeriodsBetween int
}

// TriggerType selects what fires a shift-order rule.
type TriggerType string

const (
	TriggerShiftType      TriggerType = "shift_type"
	TriggerCategory       TriggerType = "category"
	TriggerUnavailability TriggerType = "unavailability"
)

// PreferredType selects what a shift-order rule asks for.
type PreferredType string

const (
	PreferredShiftType PreferredType = "shift_type"
	PreferredCategory  PreferredType = "category"
)

// Direction orients a shift-order rule relative to its trigger period.
type Direction string

const (
	DirectionBefore Direction = "before"
	DirectionAfter  Direction = "after"
)

// ShiftOrderPreference expresses "when the trigger occurs in period N, the
// preferred shift should occur in the adjacent period (per Direction) for the
// same worker". An empty WorkerIDs scope means all workers.
type ShiftOrderPreference struct {
	RuleID         string
	TriggerType    TriggerType
	TriggerValue   string
	Direction      Direction
	PreferredType  PreferredType
	PreferredValue string
	Priority       int
	WorkerIDs      []string
}

// ConstraintConfig selects a constraint family on or off, chooses hard vs
// soft mode, and sets the family-level weight.
type ConstraintConfig struct {
	Enabled    bool
	IsHard     bool
	Weight     int
	Parameters map[string]any
}

// IntParam reads an integer parameter, tolerating YAML/JSON numeric types.
func (c ConstraintConfig) IntParam(key string, fallback int) int {
	v, ok := c.Parameters[key]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return fallback
}

// StringsParam reads a list-of-strings parameter.
func (c ConstraintConfig) StringsParam(key string) []string {
	v, ok := c.Parameters[key]
	if !ok {
		return nil
	}
	switch l := v.(type) {
	case []string:
		return l
	case []any:
		out := make([]string, 0, len(l))
		for _, e := range l {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
