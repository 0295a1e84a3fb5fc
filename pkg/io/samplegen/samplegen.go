// Package samplegen fabricates realistic scheduling datasets for demos and
// loader testing. Generation is seeded for reproducibility.
package samplegen

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
)

// Preset bundles the shift types and probabilities of one industry.
type Preset struct {
	Name                   string
	ShiftTypes             []model.ShiftType
	WorkerTypes            []string
	RestrictionProbability float64
	VacationProbability    float64
	RequestProbability     float64
}

var presets = map[string]Preset{
	"retail": {
		Name: "retail",
		ShiftTypes: []model.ShiftType{
			{ID: "morning", Name: "Morning Shift", Category: "day", StartTime: "06:00", EndTime: "14:00", DurationHours: 8, WorkersRequired: 3},
			{ID: "afternoon", Name: "Afternoon Shift", Category: "day", StartTime: "14:00", EndTime: "22:00", DurationHours: 8, WorkersRequired: 4},
			{ID: "night", Name: "Night Shift", Category: "night", StartTime: "22:00", EndTime: "06:00", DurationHours: 8, WorkersRequired: 2, IsUndesirable: true},
			{ID: "weekend", Name: "Weekend Shift", Category: "weekend", StartTime: "10:00", EndTime: "18:00", DurationHours: 8, WorkersRequired: 5, IsUndesirable: true},
		},
		WorkerTypes:            []string{"full_time", "part_time", "seasonal"},
		RestrictionProbability: 0.15,
		VacationProbability:    0.1,
		RequestProbability:     0.15,
	},
	"healthcare": {
		Name: "healthcare",
		ShiftTypes: []model.ShiftType{
			{ID: "day", Name: "Day Shift", Category: "day", StartTime: "07:00", EndTime: "19:00", DurationHours: 12, WorkersRequired: 4},
			{ID: "night", Name: "Night Shift", Category: "night", StartTime: "19:00", EndTime: "07:00", DurationHours: 12, WorkersRequired: 3, IsUndesirable: true},
			{ID: "on_call", Name: "On-Call", Category: "on_call", StartTime: "00:00", EndTime: "23:59", DurationHours: 24, WorkersRequired: 1, IsUndesirable: true},
		},
		WorkerTypes:            []string{"physician", "nurse", "resident"},
		RestrictionProbability: 0.2,
		VacationProbability:    0.12,
		RequestProbability:     0.25,
	},
	"warehouse": {
		Name: "warehouse",
		ShiftTypes: []model.ShiftType{
			{ID: "first", Name: "First Shift", Category: "day", StartTime: "06:00", EndTime: "14:00", DurationHours: 8, WorkersRequired: 8},
			{ID: "second", Name: "Second Shift", Category: "evening", StartTime: "14:00", EndTime: "22:00", DurationHours: 8, WorkersRequired: 6},
			{ID: "third", Name: "Third Shift", Category: "night", StartTime: "22:00", EndTime: "06:00", DurationHours: 8, WorkersRequired: 4, IsUndesirable: true},
		},
		WorkerTypes:            []string{"forklift_operator", "picker", "supervisor"},
		RestrictionProbability: 0.1,
		VacationProbability:    0.08,
		RequestProbability:     0.1,
	},
}

var firstNames = []string{
	"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael",
	"Linda", "William", "Elizabeth", "David", "Barbara", "Richard", "Susan",
	"Joseph", "Jessica", "Thomas", "Sarah", "Charles", "Karen", "Christopher",
	"Lisa", "Daniel", "Nancy", "Matthew", "Betty", "Anthony", "Margaret",
	"Mark", "Sandra", "Donald", "Ashley", "Steven", "Kimberly", "Paul",
	"Emily", "Andrew", "Donna", "Joshua", "Michelle",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
	"Ramirez", "Lewis", "Robinson", "Walker",
}

// PresetFor returns the preset for an industry name.
func PresetFor(industry string) (Preset, error) {
	p, ok := presets[industry]
	if !ok {
		return Preset{}, fmt.Errorf("unknown industry %q (available: retail, healthcare, warehouse)", industry)
	}
	return p, nil
}

// Generator produces sample datasets for one industry preset.
type Generator struct {
	preset Preset
	rng    *rand.Rand
}

// New returns a generator seeded for reproducible output.
func New(industry string, seed int64) (*Generator, error) {
	preset, err := PresetFor(industry)
	if err != nil {
		return nil, err
	}
	return &Generator{preset: preset, rng: rand.New(rand.NewSource(seed))}, nil
}

// ShiftTypes returns the preset's shift types.
func (g *Generator) ShiftTypes() []model.ShiftType {
	return append([]model.ShiftType(nil), g.preset.ShiftTypes...)
}

// GenerateWorkers fabricates count workers with unique names, occasional
// restrictions from undesirable shifts, and a worker type from the preset.
func (g *Generator) GenerateWorkers(count int) []model.Worker {
	used := map[string]bool{}
	workers := make([]model.Worker, 0, count)
	for i := 1; i <= count; i++ {
		name := g.uniqueName(used)
		w := model.Worker{
			ID:         fmt.Sprintf("W%03d", i),
			Name:       name,
			WorkerType: g.preset.WorkerTypes[g.rng.Intn(len(g.preset.WorkerTypes))],
		}
		for _, st := range g.preset.ShiftTypes {
			if st.IsUndesirable && g.rng.Float64() < g.preset.RestrictionProbability {
				w.RestrictedShifts = append(w.RestrictedShifts, st.ID)
			}
		}
		workers = append(workers, w)
	}
	return workers
}

// GenerateAvailability fabricates vacation-style unavailability windows
// inside the horizon.
func (g *Generator) GenerateAvailability(workers []model.Worker, start, end time.Time) []model.Availability {
	horizonDays := int(end.Sub(start).Hours()/24) + 1
	if horizonDays < 7 {
		return nil
	}

	var out []model.Availability
	for _, w := range workers {
		if g.rng.Float64() >= g.preset.VacationProbability {
			continue
		}
		length := 3 + g.rng.Intn(12) // 3-14 days off
		offset := g.rng.Intn(horizonDays - 1)
		vacStart := start.AddDate(0, 0, offset)
		vacEnd := vacStart.AddDate(0, 0, length-1)
		if vacEnd.After(end) {
			vacEnd = end
		}
		out = append(out, model.Availability{
			WorkerID:  w.ID,
			StartDate: vacStart,
			EndDate:   vacEnd,
			Type:      model.AvailabilityUnavailable,
		})
	}
	return out
}

// GenerateRequests fabricates positive and negative shift requests inside
// the horizon.
func (g *Generator) GenerateRequests(workers []model.Worker, start, end time.Time) []model.SchedulingRequest {
	horizonDays := int(end.Sub(start).Hours()/24) + 1
	if horizonDays < 7 {
		return nil
	}

	var out []model.SchedulingRequest
	for _, w := range workers {
		if g.rng.Float64() >= g.preset.RequestProbability {
			continue
		}
		st := g.preset.ShiftTypes[g.rng.Intn(len(g.preset.ShiftTypes))]
		reqType := model.RequestPositive
		if g.rng.Float64() < 0.5 {
			reqType = model.RequestNegative
		}
		offset := g.rng.Intn(horizonDays)
		day := start.AddDate(0, 0, offset)
		weekEnd := day.AddDate(0, 0, 6)
		if weekEnd.After(end) {
			weekEnd = end
		}
		out = append(out, model.SchedulingRequest{
			WorkerID:    w.ID,
			StartDate:   day,
			EndDate:     weekEnd,
			Type:        reqType,
			ShiftTypeID: st.ID,
			Priority:    1 + g.rng.Intn(3),
		})
	}
	return out
}

func (g *Generator) uniqueName(used map[string]bool) string {
	for {
		name := fmt.Sprintf("%s %s",
			firstNames[g.rng.Intn(len(firstNames))],
			lastNames[g.rng.Intn(len(lastNames))])
		if !used[name] {
			used[name] = true
			return name
		}
	}
}
