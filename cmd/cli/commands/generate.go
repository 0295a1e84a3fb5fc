package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/solver"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/solver/constraints"
	"github.com/jbolinge/shift-solver-sub000/pkg/io/csvio"
)

// demoShiftTypes are used when no configuration file is present.
func demoShiftTypes() []model.ShiftType {
	return []model.ShiftType{
		{
			ID: "day", Name: "Day Shift", Category: "day",
			StartTime: "07:00", EndTime: "15:00", DurationHours: 8,
			WorkersRequired: 2,
		},
		{
			ID: "night", Name: "Night Shift", Category: "night",
			StartTime: "23:00", EndTime: "07:00", DurationHours: 8,
			WorkersRequired: 1, IsUndesirable: true,
		},
	}
}

func demoWorkers() []model.Worker {
	workers := make([]model.Worker, 0, 10)
	for i := 1; i <= 10; i++ {
		workers = append(workers, model.Worker{
			ID:   fmt.Sprintf("W%03d", i),
			Name: fmt.Sprintf("Worker %d", i),
		})
	}
	return workers
}

// GenerateCmd creates the generate command
func GenerateCmd(app *AppContext) *cobra.Command {
	var (
		startDateStr string
		endDateStr   string
		output       string
		quickSolve   bool
		timeLimit    int
		demo         bool
		dataDir      string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an optimized schedule for the specified date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := time.Parse(model.DateLayout, startDateStr)
			if err != nil {
				return fmt.Errorf("invalid --start-date %q: expected YYYY-MM-DD", startDateStr)
			}
			endDate, err := time.Parse(model.DateLayout, endDateStr)
			if err != nil {
				return fmt.Errorf("invalid --end-date %q: expected YYYY-MM-DD", endDateStr)
			}

			fmt.Printf("Generating schedule from %s to %s\n", startDateStr, endDateStr)

			inputs, configs, numSearchWorkers, err := app.gatherInputs(startDate, endDate, demo, dataDir)
			if err != nil {
				return err
			}
			fmt.Printf("Schedule covers %d periods\n", inputs.NumPeriods())

			solveTime := 300
			switch {
			case timeLimit > 0:
				solveTime = timeLimit
			case quickSolve:
				solveTime = 60
			}
			fmt.Printf("Solving with %ds time limit...\n", solveTime)

			scheduleID := fmt.Sprintf("SCH-%s-%s", startDate.Format("20060102"), uuid.New().String()[:8])
			s := solver.New(scheduleID, *inputs, constraints.NewDefaultFamilies(configs), app.Logger)
			result, err := s.Solve(solver.Options{
				TimeLimitSeconds: solveTime,
				NumSearchWorkers: numSearchWorkers,
			})
			if err != nil {
				return err
			}

			for _, w := range result.Warnings {
				fmt.Printf("Warning: %s\n", w.Message)
			}
			if !result.Success {
				fmt.Printf("No solution found. Status: %s\n", result.StatusName)
				for _, issue := range result.FeasibilityIssues {
					fmt.Printf("  - %s: %s\n", issue.Type, issue.Message)
				}
				return fmt.Errorf("failed to generate schedule")
			}

			fmt.Printf("Solution found! Status: %s\n", result.StatusName)
			fmt.Printf("Solve time: %.2fs\n", result.SolveTimeSeconds)

			cfgFor := func(id string) model.ConstraintConfig {
				if c, ok := configs[id]; ok {
					return c
				}
				return constraints.DefaultConfig(id)
			}
			if violations := solver.ValidateSchedule(result.Schedule, *inputs, solver.ValidatorConfig{
				RestrictionHard:  cfgFor(constraints.IDRestriction).IsHard,
				AvailabilityHard: cfgFor(constraints.IDAvailability).IsHard,
				RequestHard:      cfgFor(constraints.IDRequest).IsHard,
				MinWorkersOnly:   cfgFor(constraints.IDCoverage).Parameters["coverage_mode"] == "minimum",
			}); len(violations) > 0 {
				app.Logger.Error("Generated schedule failed validation",
					zap.Int("violations", len(violations)))
				return solver.ViolationsError(violations)
			}

			if err := writeScheduleJSON(result.Schedule, output); err != nil {
				return err
			}
			fmt.Printf("Schedule written to: %s\n", output)

			if app.Verbosity > 0 {
				fmt.Println("\nWorker Statistics:")
				for workerID, stats := range result.Schedule.Statistics {
					fmt.Printf("  %s: %d shifts\n", workerID, stats["total_shifts"])
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDateStr, "start-date", "", "Schedule start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDateStr, "end-date", "", "Schedule end date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path")
	cmd.Flags().BoolVar(&quickSolve, "quick-solve", false, "Use a 60s time limit")
	cmd.Flags().IntVar(&timeLimit, "time-limit", 0, "Solver time limit in seconds")
	cmd.Flags().BoolVar(&demo, "demo", false, "Use demo workers and shift types")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory with workers.csv, shift_types.csv, availability.csv, requests.csv")
	cmd.MarkFlagRequired("start-date")
	cmd.MarkFlagRequired("end-date")
	cmd.MarkFlagRequired("output")

	return cmd
}

// gatherInputs assembles the solve inputs from demo data, a CSV data
// directory, or the config file plus the database.
func (a *AppContext) gatherInputs(startDate, endDate time.Time, demo bool, dataDir string) (*solver.Inputs, map[string]model.ConstraintConfig, int, error) {
	inputs := &solver.Inputs{}
	configs := map[string]model.ConstraintConfig{}
	numSearchWorkers := 0

	cfg, cfgErr := a.LoadConfig()
	if cfgErr == nil {
		inputs.ShiftTypes = cfg.ToShiftTypes()
		configs = cfg.ConstraintConfigs()
		numSearchWorkers = cfg.Solver.NumSearchWorkers
		fmt.Printf("Loaded %d shift types from config\n", len(inputs.ShiftTypes))
	} else {
		inputs.ShiftTypes = demoShiftTypes()
		fmt.Println("Using demo shift types (no config file)")
	}

	switch {
	case dataDir != "":
		ds, err := csvio.LoadAll(dataDir)
		if err != nil {
			return nil, nil, 0, err
		}
		inputs.Workers = ds.Workers
		if len(ds.ShiftTypes) > 0 {
			inputs.ShiftTypes = ds.ShiftTypes
		}
		inputs.Availabilities = ds.Availabilities
		inputs.Requests = ds.Requests
		fmt.Printf("Loaded %d workers from %s\n", len(inputs.Workers), dataDir)
	case demo:
		inputs.Workers = demoWorkers()
		fmt.Printf("Using %d demo workers\n", len(inputs.Workers))
	default:
		db, err := a.Database()
		if err != nil {
			return nil, nil, 0, fmt.Errorf("no worker source: use --demo, --data-dir, or --db (%w)", err)
		}
		inputs.Workers, err = db.GetWorkers(a.Ctx)
		if err != nil {
			return nil, nil, 0, err
		}
		if stored, err := db.GetShiftTypes(a.Ctx); err == nil && len(stored) > 0 {
			inputs.ShiftTypes = stored
		}
		fmt.Printf("Loaded %d workers from database\n", len(inputs.Workers))
	}

	var err error
	if cfgErr == nil {
		inputs.Periods, err = cfg.PeriodDates(startDate, endDate)
	} else {
		inputs.Periods, err = weeklyPeriods(startDate, endDate)
	}
	if err != nil {
		return nil, nil, 0, err
	}
	return inputs, configs, numSearchWorkers, nil
}

func weeklyPeriods(start, end time.Time) ([]model.Period, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end date before start date")
	}
	var periods []model.Period
	current := start
	for !current.After(end) {
		periodEnd := current.AddDate(0, 0, 6)
		if periodEnd.After(end) {
			periodEnd = end
		}
		periods = append(periods, model.Period{
			Index:     len(periods),
			StartDate: current,
			EndDate:   periodEnd,
		})
		current = periodEnd.AddDate(0, 0, 1)
	}
	return periods, nil
}

func writeScheduleJSON(sched *model.Schedule, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(sched, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write schedule: %w", err)
	}
	return nil
}
