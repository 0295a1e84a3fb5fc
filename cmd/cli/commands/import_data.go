package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jbolinge/shift-solver-sub000/pkg/io/csvio"
)

// ImportDataCmd creates the import-data command
func ImportDataCmd(app *AppContext) *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "import-data",
		Short: "Import CSV data files into the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := csvio.LoadAll(dataDir)
			if err != nil {
				return err
			}
			app.Logger.Info("Data files loaded",
				zap.Int("workers", len(ds.Workers)),
				zap.Int("shift_types", len(ds.ShiftTypes)))

			db, err := app.Database()
			if err != nil {
				return err
			}
			if err := db.UpsertWorkers(app.Ctx, ds.Workers); err != nil {
				return err
			}
			if err := db.UpsertShiftTypes(app.Ctx, ds.ShiftTypes); err != nil {
				return err
			}

			fmt.Printf("Imported %d workers and %d shift types\n", len(ds.Workers), len(ds.ShiftTypes))
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Directory containing CSV input files")
	return cmd
}
