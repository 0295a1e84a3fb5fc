package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
	"github.com/jbolinge/shift-solver-sub000/pkg/io/excelio"
)

// ExportCmd creates the export command
func ExportCmd(app *AppContext) *cobra.Command {
	var (
		input  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a generated schedule (JSON) to an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("failed to read schedule: %w", err)
			}
			var sched model.Schedule
			if err := json.Unmarshal(data, &sched); err != nil {
				return fmt.Errorf("failed to parse schedule JSON: %w", err)
			}

			if err := excelio.ExportSchedule(&sched, output); err != nil {
				return err
			}
			fmt.Printf("Schedule exported to: %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Schedule JSON file to export")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output Excel file path")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")

	return cmd
}
