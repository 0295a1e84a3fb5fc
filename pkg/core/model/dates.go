package model

import "time"

// DateLayout is the canonical date format used in files and JSON output.
const DateLayout = "2006-01-02"

// DateRange is an inclusive closed interval of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two inclusive ranges share at least one day.
// Every overlap check in the pipeline goes through here.
func (r DateRange) Overlaps(o DateRange) bool {
	return !r.Start.After(o.End) && !r.End.Before(o.Start)
}

// Contains reports whether the day d falls inside the range.
func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days returns the number of calendar days covered by the range.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// weekdayIndex maps a date to the 0=Monday .. 6=Sunday convention used by
// ShiftType.ApplicableDays.
func weekdayIndex(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}
