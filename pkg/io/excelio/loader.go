package excelio

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
	"github.com/jbolinge/shift-solver-sub000/pkg/io/csvio"
)

// sheetRows reads a sheet into column-keyed rows, matching headers
// case-insensitively.
func sheetRows(f *excelize.File, sheet string, required []string) ([]map[string]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	header := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range required {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("sheet %q: missing required column %q", sheet, col)
		}
	}

	out := make([]map[string]string, 0, len(rows)-1)
	for _, rec := range rows[1:] {
		cols := make(map[string]string, len(header))
		for name, idx := range header {
			if idx < len(rec) {
				cols[name] = strings.TrimSpace(rec[idx])
			}
		}
		out = append(out, cols)
	}
	return out, nil
}

// LoadWorkers reads worker records from the Workers sheet of a workbook.
func LoadWorkers(path string) ([]model.Worker, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := sheetRows(f, "Workers", []string{"id", "name"})
	if err != nil {
		return nil, err
	}

	workers := make([]model.Worker, 0, len(rows))
	for i, cols := range rows {
		line := i + 2
		if cols["id"] == "" {
			return nil, fmt.Errorf("sheet Workers line %d: missing required column %q", line, "id")
		}
		if cols["name"] == "" {
			return nil, fmt.Errorf("sheet Workers line %d: missing required column %q", line, "name")
		}
		workers = append(workers, model.Worker{
			ID:         cols["id"],
			Name:       cols["name"],
			WorkerType: cols["worker_type"],
		})
	}
	return workers, nil
}

// LoadAvailability reads availability records from the Availability sheet.
func LoadAvailability(path string) ([]model.Availability, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := sheetRows(f, "Availability", []string{"worker_id", "start_date", "end_date", "availability_type"})
	if err != nil {
		return nil, err
	}

	records := make([]model.Availability, 0, len(rows))
	for i, cols := range rows {
		line := i + 2
		start, err := csvio.ParseDate(cols["start_date"])
		if err != nil {
			return nil, fmt.Errorf("sheet Availability line %d, column %q: %v", line, "start_date", err)
		}
		end, err := csvio.ParseDate(cols["end_date"])
		if err != nil {
			return nil, fmt.Errorf("sheet Availability line %d, column %q: %v", line, "end_date", err)
		}
		availType := model.AvailabilityType(strings.ToLower(cols["availability_type"]))
		switch availType {
		case model.AvailabilityUnavailable, model.AvailabilityPreferred:
		default:
			return nil, fmt.Errorf("sheet Availability line %d, column %q: unknown availability type %q",
				line, "availability_type", cols["availability_type"])
		}
		records = append(records, model.Availability{
			WorkerID:    cols["worker_id"],
			StartDate:   start,
			EndDate:     end,
			Type:        availType,
			ShiftTypeID: cols["shift_type_id"],
		})
	}
	return records, nil
}

// LoadRequests reads scheduling requests from the Requests sheet.
func LoadRequests(path string) ([]model.SchedulingRequest, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := sheetRows(f, "Requests", []string{"worker_id", "start_date", "end_date", "request_type", "shift_type_id"})
	if err != nil {
		return nil, err
	}

	requests := make([]model.SchedulingRequest, 0, len(rows))
	for i, cols := range rows {
		line := i + 2
		start, err := csvio.ParseDate(cols["start_date"])
		if err != nil {
			return nil, fmt.Errorf("sheet Requests line %d, column %q: %v", line, "start_date", err)
		}
		end, err := csvio.ParseDate(cols["end_date"])
		if err != nil {
			return nil, fmt.Errorf("sheet Requests line %d, column %q: %v", line, "end_date", err)
		}
		reqType := model.RequestType(strings.ToLower(cols["request_type"]))
		switch reqType {
		case model.RequestPositive, model.RequestNegative:
		default:
			return nil, fmt.Errorf("sheet Requests line %d, column %q: unknown request type %q",
				line, "request_type", cols["request_type"])
		}

		priority := 1
		if p := cols["priority"]; p != "" {
			if _, err := fmt.Sscanf(p, "%d", &priority); err != nil || priority < 1 {
				return nil, fmt.Errorf("sheet Requests line %d, column %q: not a positive integer: %q",
					line, "priority", p)
			}
		}
		var isHard *bool
		if h := cols["is_hard"]; h != "" {
			parsed, err := csvio.ParseBool(h)
			if err != nil {
				return nil, fmt.Errorf("sheet Requests line %d, column %q: %v", line, "is_hard", err)
			}
			isHard = &parsed
		}

		requests = append(requests, model.SchedulingRequest{
			WorkerID:    cols["worker_id"],
			StartDate:   start,
			EndDate:     end,
			Type:        reqType,
			ShiftTypeID: cols["shift_type_id"],
			Priority:    priority,
			IsHard:      isHard,
		})
	}
	return requests, nil
}
