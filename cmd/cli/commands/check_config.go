package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CheckConfigCmd creates the check-config command
func CheckConfigCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Validate a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			fmt.Println("Configuration is valid!")
			fmt.Printf("  Shift types: %d\n", len(cfg.ShiftTypes))
			fmt.Printf("  Constraints configured: %d\n", len(cfg.Constraints))
			fmt.Printf("  Solver time limit: %ds\n", cfg.Solver.MaxTimeSeconds)
			return nil
		},
	}
}
