// Package excelio reads and writes the Excel forms of the scheduling data:
// input workbooks with Workers/Availability/Requests sheets, and schedule
// exports with Schedule, Statistics, and By Worker sheets.
package excelio

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
)

const (
	sheetSchedule   = "Schedule"
	sheetStatistics = "Statistics"
	sheetByWorker   = "By Worker"
)

// ExportSchedule writes a schedule workbook with three sheets. Headers are
// bold and frozen.
func ExportSchedule(sched *model.Schedule, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSchedule); err != nil {
		return fmt.Errorf("failed to create schedule sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetStatistics); err != nil {
		return fmt.Errorf("failed to create statistics sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetByWorker); err != nil {
		return fmt.Errorf("failed to create by-worker sheet: %w", err)
	}

	if err := writeScheduleSheet(f, sched); err != nil {
		return err
	}
	if err := writeStatisticsSheet(f, sched); err != nil {
		return err
	}
	if err := writeByWorkerSheet(f, sched); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// setHeader writes a bold, frozen header row.
func setHeader(f *excelize.File, sheet string, cols []string) error {
	for i, col := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}
	styleID, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(cols), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, styleID); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func sortedWorkerIDs(assignments map[string][]model.ShiftInstance) []string {
	ids := make([]string, 0, len(assignments))
	for id := range assignments {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func writeScheduleSheet(f *excelize.File, sched *model.Schedule) error {
	if err := setHeader(f, sheetSchedule, []string{"Period", "Period Start", "Period End", "Worker", "Shift Type", "Date"}); err != nil {
		return err
	}
	rowIdx := 2
	for _, p := range sched.Periods {
		for _, workerID := range sortedWorkerIDs(p.Assignments) {
			for _, inst := range p.Assignments[workerID] {
				values := []any{p.PeriodIndex, p.PeriodStart, p.PeriodEnd, workerID, inst.ShiftTypeID, inst.Date}
				for col, v := range values {
					cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
					if err != nil {
						return err
					}
					if err := f.SetCellValue(sheetSchedule, cell, v); err != nil {
						return err
					}
				}
				rowIdx++
			}
		}
	}
	return nil
}

func writeStatisticsSheet(f *excelize.File, sched *model.Schedule) error {
	// Collect every statistic key so each gets a column.
	keySet := map[string]bool{}
	for _, stats := range sched.Statistics {
		for k := range stats {
			keySet[k] = true
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	header := append([]string{"Worker"}, keys...)
	if err := setHeader(f, sheetStatistics, header); err != nil {
		return err
	}

	workerIDs := make([]string, 0, len(sched.Statistics))
	for id := range sched.Statistics {
		workerIDs = append(workerIDs, id)
	}
	sort.Strings(workerIDs)

	for i, workerID := range workerIDs {
		rowIdx := i + 2
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetStatistics, cell, workerID); err != nil {
			return err
		}
		for j, k := range keys {
			cell, err := excelize.CoordinatesToCellName(j+2, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetStatistics, cell, sched.Statistics[workerID][k]); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeByWorkerSheet(f *excelize.File, sched *model.Schedule) error {
	if err := setHeader(f, sheetByWorker, []string{"Worker", "Period", "Shift Type", "Date"}); err != nil {
		return err
	}

	workerIDs := map[string]bool{}
	for _, p := range sched.Periods {
		for id := range p.Assignments {
			workerIDs[id] = true
		}
	}
	sorted := make([]string, 0, len(workerIDs))
	for id := range workerIDs {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	rowIdx := 2
	for _, workerID := range sorted {
		for _, p := range sched.Periods {
			for _, inst := range p.Assignments[workerID] {
				values := []any{workerID, p.PeriodIndex, inst.ShiftTypeID, inst.Date}
				for col, v := range values {
					cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
					if err != nil {
						return err
					}
					if err := f.SetCellValue(sheetByWorker, cell, v); err != nil {
						return err
					}
				}
				rowIdx++
			}
		}
	}
	return nil
}
