package samplegen

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbolinge/shift-solver-sub000/pkg/io/csvio"
)

func horizon() (time.Time, time.Time) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 3, 0)
}

func TestNew_UnknownIndustry(t *testing.T) {
	_, err := New("aerospace", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aerospace")
}

func TestGenerateWorkers_CountAndUniqueness(t *testing.T) {
	gen, err := New("retail", 42)
	require.NoError(t, err)

	workers := gen.GenerateWorkers(20)
	require.Len(t, workers, 20)

	seenIDs := map[string]bool{}
	seenNames := map[string]bool{}
	for _, w := range workers {
		assert.False(t, seenIDs[w.ID], "duplicate id %s", w.ID)
		assert.False(t, seenNames[w.Name], "duplicate name %s", w.Name)
		seenIDs[w.ID] = true
		seenNames[w.Name] = true
		assert.NotEmpty(t, w.WorkerType)
	}
}

func TestGenerate_SeedDeterminism(t *testing.T) {
	start, end := horizon()

	gen1, err := New("healthcare", 7)
	require.NoError(t, err)
	gen2, err := New("healthcare", 7)
	require.NoError(t, err)

	ds1 := gen1.Generate(10, start, end)
	ds2 := gen2.Generate(10, start, end)

	assert.Equal(t, ds1.Workers, ds2.Workers)
	assert.Equal(t, ds1.Availabilities, ds2.Availabilities)
	assert.Equal(t, ds1.Requests, ds2.Requests)
}

func TestGenerate_RecordsStayInsideHorizon(t *testing.T) {
	start, end := horizon()
	gen, err := New("warehouse", 3)
	require.NoError(t, err)

	ds := gen.Generate(30, start, end)
	for _, a := range ds.Availabilities {
		assert.False(t, a.StartDate.Before(start))
		assert.False(t, a.EndDate.After(end))
		assert.False(t, a.EndDate.Before(a.StartDate))
	}
	for _, r := range ds.Requests {
		assert.False(t, r.StartDate.Before(start))
		assert.False(t, r.EndDate.After(end))
		assert.GreaterOrEqual(t, r.Priority, 1)
	}
}

func TestWriteCSV_LoaderRoundTrip(t *testing.T) {
	start, end := horizon()
	gen, err := New("retail", 99)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "samples")
	ds := gen.Generate(12, start, end)
	require.NoError(t, ds.WriteCSV(dir))

	loaded, err := csvio.LoadAll(dir)
	require.NoError(t, err)

	assert.Len(t, loaded.Workers, len(ds.Workers))
	assert.Len(t, loaded.ShiftTypes, len(ds.ShiftTypes))
	assert.Len(t, loaded.Availabilities, len(ds.Availabilities))
	assert.Len(t, loaded.Requests, len(ds.Requests))
}
