package samplegen

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
)

// Dataset is one generated bundle of sample records.
type Dataset struct {
	Workers        []model.Worker
	ShiftTypes     []model.ShiftType
	Availabilities []model.Availability
	Requests       []model.SchedulingRequest
}

// Generate produces a full dataset covering [start, end].
func (g *Generator) Generate(numWorkers int, start, end time.Time) *Dataset {
	workers := g.GenerateWorkers(numWorkers)
	return &Dataset{
		Workers:        workers,
		ShiftTypes:     g.ShiftTypes(),
		Availabilities: g.GenerateAvailability(workers, start, end),
		Requests:       g.GenerateRequests(workers, start, end),
	}
}

func workerRows(ds *Dataset) [][]string {
	rows := [][]string{{"id", "name", "worker_type", "restricted_shifts", "preferred_shifts"}}
	for _, w := range ds.Workers {
		rows = append(rows, []string{
			w.ID, w.Name, w.WorkerType,
			strings.Join(w.RestrictedShifts, ","),
			strings.Join(w.PreferredShifts, ","),
		})
	}
	return rows
}

func shiftTypeRows(ds *Dataset) [][]string {
	rows := [][]string{{"id", "name", "category", "start_time", "end_time", "duration_hours", "workers_required", "is_undesirable"}}
	for _, st := range ds.ShiftTypes {
		rows = append(rows, []string{
			st.ID, st.Name, st.Category, st.StartTime, st.EndTime,
			strconv.FormatFloat(st.DurationHours, 'f', -1, 64),
			strconv.Itoa(st.WorkersRequired),
			strconv.FormatBool(st.IsUndesirable),
		})
	}
	return rows
}

func availabilityRows(ds *Dataset) [][]string {
	rows := [][]string{{"worker_id", "start_date", "end_date", "availability_type", "shift_type_id"}}
	for _, a := range ds.Availabilities {
		rows = append(rows, []string{
			a.WorkerID,
			a.StartDate.Format(model.DateLayout),
			a.EndDate.Format(model.DateLayout),
			string(a.Type),
			a.ShiftTypeID,
		})
	}
	return rows
}

func requestRows(ds *Dataset) [][]string {
	rows := [][]string{{"worker_id", "start_date", "end_date", "request_type", "shift_type_id", "priority", "is_hard"}}
	for _, r := range ds.Requests {
		isHard := ""
		if r.IsHard != nil {
			isHard = strconv.FormatBool(*r.IsHard)
		}
		rows = append(rows, []string{
			r.WorkerID,
			r.StartDate.Format(model.DateLayout),
			r.EndDate.Format(model.DateLayout),
			string(r.Type),
			r.ShiftTypeID,
			strconv.Itoa(r.Priority),
			isHard,
		})
	}
	return rows
}

// WriteCSV writes the dataset as the four loader-compatible CSV files.
func (ds *Dataset) WriteCSV(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	files := map[string][][]string{
		"workers.csv":      workerRows(ds),
		"shift_types.csv":  shiftTypeRows(ds),
		"availability.csv": availabilityRows(ds),
		"requests.csv":     requestRows(ds),
	}
	for name, rows := range files {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", name, err)
		}
		w := csv.NewWriter(f)
		if err := w.WriteAll(rows); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		w.Flush()
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", name, err)
		}
	}
	return nil
}

// WriteExcel writes the dataset as one workbook with a sheet per record kind.
func (ds *Dataset) WriteExcel(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name string
		rows [][]string
	}{
		{"Workers", workerRows(ds)},
		{"ShiftTypes", shiftTypeRows(ds)},
		{"Availability", availabilityRows(ds)},
		{"Requests", requestRows(ds)},
	}

	if err := f.SetSheetName("Sheet1", sheets[0].name); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	for _, s := range sheets[1:] {
		if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}
	}
	for _, s := range sheets {
		for rowIdx, row := range s.rows {
			for colIdx, v := range row {
				cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(s.name, cell, v); err != nil {
					return err
				}
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
