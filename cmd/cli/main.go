package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jbolinge/shift-solver-sub000/cmd/cli/commands"
	"github.com/jbolinge/shift-solver-sub000/pkg/utils/logging"
)

func main() {
	app := &commands.AppContext{
		Ctx: context.Background(),
	}

	rootCmd := &cobra.Command{
		Use:   "shift-solver",
		Short: "shift-solver: General-purpose shift scheduling optimization",
		Long:  `A CLI tool for generating optimized work-shift schedules from worker, availability, and request data.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.InitLogger(app.Verbosity)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			app.Logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
			app.Close()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&app.ConfigPath, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&app.DBConn, "db", "", "PostgreSQL connection string")
	rootCmd.PersistentFlags().CountVarP(&app.Verbosity, "verbose", "v", "Increase verbosity (-v, -vv)")

	rootCmd.AddCommand(commands.VersionCmd(app))
	rootCmd.AddCommand(commands.CheckConfigCmd(app))
	rootCmd.AddCommand(commands.GenerateCmd(app))
	rootCmd.AddCommand(commands.GenerateSamplesCmd(app))
	rootCmd.AddCommand(commands.ImportDataCmd(app))
	rootCmd.AddCommand(commands.ExportCmd(app))
	rootCmd.AddCommand(commands.ListShiftsCmd(app))
	rootCmd.AddCommand(commands.ListWorkersCmd(app))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
