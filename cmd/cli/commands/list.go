package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ListShiftsCmd creates the list-shifts command
func ListShiftsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list-shifts",
		Short: "List all shift types from configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}

			fmt.Println("Shift Types:")
			for _, st := range cfg.ShiftTypes {
				undesirable := ""
				if st.IsUndesirable {
					undesirable = " (undesirable)"
				}
				fmt.Printf("  %s: %s [%s] %s-%s (%d workers)%s\n",
					st.ID, st.Name, st.Category, st.StartTime, st.EndTime,
					st.WorkersRequired, undesirable)
			}
			return nil
		},
	}
}

// ListWorkersCmd creates the list-workers command
func ListWorkersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list-workers",
		Short: "List all workers in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := app.Database()
			if err != nil {
				return err
			}
			workers, err := db.GetWorkers(app.Ctx)
			if err != nil {
				return err
			}

			if len(workers) == 0 {
				fmt.Println("No workers found. Import data first with 'import-data'.")
				return nil
			}
			fmt.Printf("\nFound %d workers:\n\n", len(workers))
			for _, w := range workers {
				typeInfo := ""
				if w.WorkerType != "" {
					typeInfo = fmt.Sprintf(" [%s]", w.WorkerType)
				}
				restricted := ""
				if len(w.RestrictedShifts) > 0 {
					restricted = fmt.Sprintf(" (restricted: %v)", w.RestrictedShifts)
				}
				fmt.Printf("- %s (%s)%s%s\n", w.Name, w.ID, typeInfo, restricted)
			}
			return nil
		},
	}
}
