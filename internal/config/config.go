package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
	"github.com/jbolinge/shift-solver-sub000/pkg/core/solver/constraints"
)

// ShiftTypeConfig describes one shift type in the configuration file.
type ShiftTypeConfig struct {
	ID              string  `yaml:"id" validate:"required"`
	Name            string  `yaml:"name" validate:"required"`
	Category        string  `yaml:"category" validate:"required"`
	StartTime       string  `yaml:"start_time" validate:"required,datetime=15:04"`
	EndTime         string  `yaml:"end_time" validate:"required,datetime=15:04"`
	DurationHours   float64 `yaml:"duration_hours" validate:"gt=0"`
	WorkersRequired int     `yaml:"workers_required" validate:"min=0"`
	IsUndesirable   bool    `yaml:"is_undesirable"`
	ApplicableDays  []int   `yaml:"applicable_days,omitempty" validate:"omitempty,dive,min=0,max=6"`
}

// FamilyConfig overrides one constraint family's defaults. nil fields keep
// the built-in default.
type FamilyConfig struct {
	Enabled    *bool          `yaml:"enabled,omitempty"`
	IsHard     *bool          `yaml:"is_hard,omitempty"`
	Weight     *int           `yaml:"weight,omitempty" validate:"omitempty,min=0"`
	Parameters map[string]any `yaml:"parameters,omitempty"`
}

// SolverConfig holds the backend run settings.
type SolverConfig struct {
	MaxTimeSeconds   int `yaml:"max_time_seconds" validate:"min=1"`
	NumSearchWorkers int `yaml:"num_search_workers" validate:"min=0"`
}

// ScheduleConfig holds horizon generation settings. PeriodRRule, when set,
// is an RFC-5545 recurrence whose occurrences become period start dates;
// without it periods are weekly.
type ScheduleConfig struct {
	PeriodRRule string `yaml:"period_rrule,omitempty"`
}

// Config represents the application configuration.
type Config struct {
	Schedule    ScheduleConfig          `yaml:"schedule,omitempty"`
	ShiftTypes  []ShiftTypeConfig       `yaml:"shift_types" validate:"required,min=1,dive"`
	Constraints map[string]FamilyConfig `yaml:"constraints,omitempty" validate:"dive"`
	Solver      SolverConfig            `yaml:"solver"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration with an environment
// suffix. For example, env="test" looks for "shift_solver.test.yaml".
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}
	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Config{
		Solver: SolverConfig{MaxTimeSeconds: 300},
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.Schedule.PeriodRRule != "" {
		if _, err := rrule.StrToRRule(cfg.Schedule.PeriodRRule); err != nil {
			return fmt.Errorf("invalid period_rrule: %w", err)
		}
	}
	return nil
}

// ToShiftTypes converts the configured shift types into domain records.
func (c *Config) ToShiftTypes() []model.ShiftType {
	out := make([]model.ShiftType, 0, len(c.ShiftTypes))
	for _, st := range c.ShiftTypes {
		out = append(out, model.ShiftType{
			ID:              st.ID,
			Name:            st.Name,
			Category:        st.Category,
			StartTime:       st.StartTime,
			EndTime:         st.EndTime,
			DurationHours:   st.DurationHours,
			WorkersRequired: st.WorkersRequired,
			IsUndesirable:   st.IsUndesirable,
			ApplicableDays:  st.ApplicableDays,
		})
	}
	return out
}

// ConstraintConfigs merges the configured family overrides onto the built-in
// defaults, yielding the full config map the solver consumes.
func (c *Config) ConstraintConfigs() map[string]model.ConstraintConfig {
	ids := []string{
		constraints.IDCoverage,
		constraints.IDRestriction,
		constraints.IDAvailability,
		constraints.IDRequest,
		constraints.IDFairness,
		constraints.IDShiftFrequency,
		constraints.IDMaxAbsence,
		constraints.IDSequence,
		constraints.IDShiftOrder,
	}
	out := make(map[string]model.ConstraintConfig, len(ids))
	for _, id := range ids {
		cfg := constraints.DefaultConfig(id)
		if override, ok := c.Constraints[id]; ok {
			if override.Enabled != nil {
				cfg.Enabled = *override.Enabled
			}
			if override.IsHard != nil {
				cfg.IsHard = *override.IsHard
			}
			if override.Weight != nil {
				cfg.Weight = *override.Weight
			}
			if override.Parameters != nil {
				cfg.Parameters = override.Parameters
			}
		}
		out[id] = cfg
	}
	return out
}

// PeriodDates expands the horizon [start, end] into scheduling periods.
// With a period_rrule, each recurrence occurrence starts a period that runs
// until the day before the next occurrence (or the horizon end). The default
// is weekly periods.
func (c *Config) PeriodDates(start, end time.Time) ([]model.Period, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s before start date %s",
			end.Format(model.DateLayout), start.Format(model.DateLayout))
	}

	if c.Schedule.PeriodRRule == "" {
		return weeklyPeriods(start, end), nil
	}

	r, err := rrule.StrToRRule(c.Schedule.PeriodRRule)
	if err != nil {
		return nil, fmt.Errorf("invalid period_rrule: %w", err)
	}
	r.DTStart(start)
	starts := r.Between(start, end, true)
	if len(starts) == 0 {
		return nil, fmt.Errorf("period_rrule yields no periods between %s and %s",
			start.Format(model.DateLayout), end.Format(model.DateLayout))
	}

	periods := make([]model.Period, 0, len(starts))
	for i, s := range starts {
		periodEnd := end
		if i+1 < len(starts) {
			periodEnd = starts[i+1].AddDate(0, 0, -1)
		}
		periods = append(periods, model.Period{Index: i, StartDate: s, EndDate: periodEnd})
	}
	return periods, nil
}

func weeklyPeriods(start, end time.Time) []model.Period {
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
	return periods
}

// findConfigFile searches for the config file in the current directory and
// the home directory. env adds an extension, e.g. "shift_solver.test.yaml".
func findConfigFile(env string) (string, error) {
	configFileName := "shift_solver.yaml"
	if env != "" {
		configFileName = "shift_solver." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
