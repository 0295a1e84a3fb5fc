package excelio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
)

func sampleSchedule() *model.Schedule {
	return &model.Schedule{
		ScheduleID: "SCH-20260105",
		StartDate:  "2026-01-05",
		EndDate:    "2026-01-18",
		Periods: []model.SchedulePeriod{
			{
				PeriodIndex: 0,
				PeriodStart: "2026-01-05",
				PeriodEnd:   "2026-01-11",
				Assignments: map[string][]model.ShiftInstance{
					"W001": {{ShiftTypeID: "day", Date: "2026-01-05"}},
					"W002": {{ShiftTypeID: "night", Date: "2026-01-05"}},
				},
			},
			{
				PeriodIndex: 1,
				PeriodStart: "2026-01-12",
				PeriodEnd:   "2026-01-18",
				Assignments: map[string][]model.ShiftInstance{
					"W001": {{ShiftTypeID: "night", Date: "2026-01-12"}},
				},
			},
		},
		Statistics: map[string]map[string]int{
			"W001": {"total_shifts": 2, "day": 1, "night": 1},
			"W002": {"total_shifts": 1, "night": 1},
		},
	}
}

func TestExportSchedule_CreatesThreeSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.xlsx")
	require.NoError(t, ExportSchedule(sampleSchedule(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Schedule")
	assert.Contains(t, sheets, "Statistics")
	assert.Contains(t, sheets, "By Worker")
}

func TestExportSchedule_ScheduleRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.xlsx")
	require.NoError(t, ExportSchedule(sampleSchedule(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Schedule")
	require.NoError(t, err)

	// Header plus one row per assignment
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Period", "Period Start", "Period End", "Worker", "Shift Type", "Date"}, rows[0])
	assert.Equal(t, "W001", rows[1][3])
	assert.Equal(t, "day", rows[1][4])
}

func TestExportSchedule_StatisticsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.xlsx")
	require.NoError(t, ExportSchedule(sampleSchedule(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Statistics")
	require.NoError(t, err)

	// Header plus one row per worker
	require.Len(t, rows, 3)
	assert.Equal(t, "Worker", rows[0][0])
	assert.Equal(t, "W001", rows[1][0])
	assert.Equal(t, "W002", rows[2][0])
}
