package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jbolinge/shift-solver-sub000/pkg/io/samplegen"
)

// GenerateSamplesCmd creates the generate-samples command
func GenerateSamplesCmd(app *AppContext) *cobra.Command {
	var (
		outputDir  string
		industry   string
		numWorkers int
		months     int
		format     string
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "generate-samples",
		Short: "Generate sample input data for an industry preset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "csv" && format != "excel" && format != "both" {
				return fmt.Errorf("invalid --format %q (expected csv, excel, or both)", format)
			}

			gen, err := samplegen.New(industry, seed)
			if err != nil {
				return err
			}

			start := time.Now().Truncate(24 * time.Hour)
			end := start.AddDate(0, months, 0)
			ds := gen.Generate(numWorkers, start, end)

			if format == "csv" || format == "both" {
				if err := ds.WriteCSV(outputDir); err != nil {
					return err
				}
				fmt.Printf("CSV sample files written to: %s\n", outputDir)
			}
			if format == "excel" || format == "both" {
				path := filepath.Join(outputDir, "sample_data.xlsx")
				if err := ds.WriteExcel(path); err != nil {
					return err
				}
				fmt.Printf("Excel sample workbook written to: %s\n", path)
			}

			fmt.Printf("Generated %d workers, %d shift types, %d availability records, %d requests\n",
				len(ds.Workers), len(ds.ShiftTypes), len(ds.Availabilities), len(ds.Requests))
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "./data/samples", "Output directory for sample files")
	cmd.Flags().StringVar(&industry, "industry", "retail", "Industry preset (retail, healthcare, warehouse)")
	cmd.Flags().IntVar(&numWorkers, "num-workers", 15, "Number of workers to generate")
	cmd.Flags().IntVar(&months, "months", 3, "Number of months of data to generate")
	cmd.Flags().StringVar(&format, "format", "csv", "Output format (csv, excel, both)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for reproducible generation")

	return cmd
}
