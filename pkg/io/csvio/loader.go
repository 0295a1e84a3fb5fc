// Package csvio loads domain records from CSV files. Headers match
// case-insensitively; every malformed row is rejected with a single error
// naming the file, column, and 1-based line.
package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
)

// row is one parsed CSV record with its source position.
type row struct {
	file string
	line int
	cols map[string]string
}

// get returns a required column value.
func (r row) get(col string) (string, error) {
	v, ok := r.cols[col]
	if !ok || strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("%s line %d: missing required column %q", r.file, r.line, col)
	}
	return strings.TrimSpace(v), nil
}

// opt returns an optional column value, empty when absent.
func (r row) opt(col string) string {
	return strings.TrimSpace(r.cols[col])
}

func (r row) errf(col, format string, args ...any) error {
	return fmt.Errorf("%s line %d, column %q: %s", r.file, r.line, col, fmt.Sprintf(format, args...))
}

// readRows parses a CSV file into rows keyed by lowercased header.
func readRows(path string, required []string) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	base := filepath.Base(path)
	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", base, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: file is empty", base)
	}

	header := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		header[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range required {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("%s: missing required column %q", base, col)
		}
	}

	rows := make([]row, 0, len(records)-1)
	for i, rec := range records[1:] {
		cols := make(map[string]string, len(header))
		for name, idx := range header {
			if idx < len(rec) {
				cols[name] = rec[idx]
			}
		}
		rows = append(rows, row{file: base, line: i + 2, cols: cols})
	}
	return rows, nil
}

// LoadWorkers reads worker records from a CSV file.
func LoadWorkers(path string) ([]model.Worker, error) {
	rows, err := readRows(path, []string{"id", "name"})
	if err != nil {
		return nil, err
	}

	workers := make([]model.Worker, 0, len(rows))
	for _, r := range rows {
		id, err := r.get("id")
		if err != nil {
			return nil, err
		}
		name, err := r.get("name")
		if err != nil {
			return nil, err
		}
		workers = append(workers, model.Worker{
			ID:               id,
			Name:             name,
			WorkerType:       r.opt("worker_type"),
			RestrictedShifts: splitList(r.opt("restricted_shifts")),
			PreferredShifts:  splitList(r.opt("preferred_shifts")),
		})
	}
	return workers, nil
}

// LoadShiftTypes reads shift-type records from a CSV file.
func LoadShiftTypes(path string) ([]model.ShiftType, error) {
	rows, err := readRows(path, []string{
		"id", "name", "category", "start_time", "end_time",
		"duration_hours", "workers_required", "is_undesirable",
	})
	if err != nil {
		return nil, err
	}

	shiftTypes := make([]model.ShiftType, 0, len(rows))
	for _, r := range rows {
		id, err := r.get("id")
		if err != nil {
			return nil, err
		}
		name, err := r.get("name")
		if err != nil {
			return nil, err
		}
		category, err := r.get("category")
		if err != nil {
			return nil, err
		}
		startTime, err := r.get("start_time")
		if err != nil {
			return nil, err
		}
		endTime, err := r.get("end_time")
		if err != nil {
			return nil, err
		}

		durationStr, err := r.get("duration_hours")
		if err != nil {
			return nil, err
		}
		duration, err := parseFloat(durationStr)
		if err != nil {
			return nil, r.errf("duration_hours", "not a number: %q", durationStr)
		}

		requiredStr, err := r.get("workers_required")
		if err != nil {
			return nil, err
		}
		required, err := parseInt(requiredStr)
		if err != nil || required < 0 {
			return nil, r.errf("workers_required", "not a non-negative integer: %q", requiredStr)
		}

		undesirableStr, err := r.get("is_undesirable")
		if err != nil {
			return nil, err
		}
		undesirable, err := ParseBool(undesirableStr)
		if err != nil {
			return nil, r.errf("is_undesirable", "%v", err)
		}

		shiftTypes = append(shiftTypes, model.ShiftType{
			ID:              id,
			Name:            name,
			Category:        category,
			StartTime:       startTime,
			EndTime:         endTime,
			DurationHours:   duration,
			WorkersRequired: required,
			IsUndesirable:   undesirable,
		})
	}
	return shiftTypes, nil
}

// LoadAvailability reads availability records from a CSV file.
func LoadAvailability(path string) ([]model.Availability, error) {
	rows, err := readRows(path, []string{"worker_id", "start_date", "end_date", "availability_type"})
	if err != nil {
		return nil, err
	}

	records := make([]model.Availability, 0, len(rows))
	for _, r := range rows {
		workerID, err := r.get("worker_id")
		if err != nil {
			return nil, err
		}

		startStr, err := r.get("start_date")
		if err != nil {
			return nil, err
		}
		start, err := ParseDate(startStr)
		if err != nil {
			return nil, r.errf("start_date", "%v", err)
		}

		endStr, err := r.get("end_date")
		if err != nil {
			return nil, err
		}
		end, err := ParseDate(endStr)
		if err != nil {
			return nil, r.errf("end_date", "%v", err)
		}

		typeStr, err := r.get("availability_type")
		if err != nil {
			return nil, err
		}
		availType := model.AvailabilityType(strings.ToLower(typeStr))
		switch availType {
		case model.AvailabilityUnavailable, model.AvailabilityPreferred:
		default:
			return nil, r.errf("availability_type", "unknown availability type %q", typeStr)
		}

		records = append(records, model.Availability{
			WorkerID:    workerID,
			StartDate:   start,
			EndDate:     end,
			Type:        availType,
			ShiftTypeID: r.opt("shift_type_id"),
		})
	}
	return records, nil
}

// LoadRequests reads scheduling-request records from a CSV file. A missing
// priority defaults to 1; an empty is_hard cell stays nil and inherits the
// request family's configuration.
func LoadRequests(path string) ([]model.SchedulingRequest, error) {
	rows, err := readRows(path, []string{"worker_id", "start_date", "end_date", "request_type", "shift_type_id"})
	if err != nil {
		return nil, err
	}

	requests := make([]model.SchedulingRequest, 0, len(rows))
	for _, r := range rows {
		workerID, err := r.get("worker_id")
		if err != nil {
			return nil, err
		}

		startStr, err := r.get("start_date")
		if err != nil {
			return nil, err
		}
		start, err := ParseDate(startStr)
		if err != nil {
			return nil, r.errf("start_date", "%v", err)
		}

		endStr, err := r.get("end_date")
		if err != nil {
			return nil, err
		}
		end, err := ParseDate(endStr)
		if err != nil {
			return nil, r.errf("end_date", "%v", err)
		}

		typeStr, err := r.get("request_type")
		if err != nil {
			return nil, err
		}
		reqType := model.RequestType(strings.ToLower(typeStr))
		switch reqType {
		case model.RequestPositive, model.RequestNegative:
		default:
			return nil, r.errf("request_type", "unknown request type %q", typeStr)
		}

		shiftTypeID, err := r.get("shift_type_id")
		if err != nil {
			return nil, err
		}

		priority := 1
		if p := r.opt("priority"); p != "" {
			priority, err = parseInt(p)
			if err != nil || priority < 1 {
				return nil, r.errf("priority", "not a positive integer: %q", p)
			}
		}

		var isHard *bool
		if h := r.opt("is_hard"); h != "" {
			parsed, err := ParseBool(h)
			if err != nil {
				return nil, r.errf("is_hard", "%v", err)
			}
			isHard = &parsed
		}

		requests = append(requests, model.SchedulingRequest{
			WorkerID:    workerID,
			StartDate:   start,
			EndDate:     end,
			Type:        reqType,
			ShiftTypeID: shiftTypeID,
			Priority:    priority,
			IsHard:      isHard,
		})
	}
	return requests, nil
}

// Dataset bundles the loadable input files of one scheduling problem.
type Dataset struct {
	Workers        []model.Worker
	ShiftTypes     []model.ShiftType
	Availabilities []model.Availability
	Requests       []model.SchedulingRequest
}

// LoadAll loads every present file from a directory (workers.csv,
// shift_types.csv, availability.csv, requests.csv). Workers and shift types
// are required; the rest are optional. Errors across files accumulate.
func LoadAll(dir string) (*Dataset, error) {
	var errs *multierror.Error
	ds := &Dataset{}

	var err error
	if ds.Workers, err = LoadWorkers(filepath.Join(dir, "workers.csv")); err != nil {
		errs = multierror.Append(errs, err)
	}
	if ds.ShiftTypes, err = LoadShiftTypes(filepath.Join(dir, "shift_types.csv")); err != nil {
		errs = multierror.Append(errs, err)
	}

	availPath := filepath.Join(dir, "availability.csv")
	if _, statErr := os.Stat(availPath); statErr == nil {
		if ds.Availabilities, err = LoadAvailability(availPath); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	requestsPath := filepath.Join(dir, "requests.csv")
	if _, statErr := os.Stat(requestsPath); statErr == nil {
		if ds.Requests, err = LoadRequests(requestsPath); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return ds, nil
}
