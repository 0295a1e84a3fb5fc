package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// VersionCmd creates the version command
func VersionCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("shift-solver v%s\n", Version)
			return nil
		},
	}
}
