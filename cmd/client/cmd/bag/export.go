package bag

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exportFormat string

var ExportCmd = &cobra.Command{
	Use:   "export <bag-id>",
	Short: "Export a bag and its items to a spreadsheet file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		path, err := app.ExportBag(cmd.Context(), args[0], exportFormat)
		if err != nil {
			return fmt.Errorf("exporting bag: %w", err)
		}

		color.Green("Exported to %s", path)
		return nil
	},
}

func init() {
	ExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "output format (csv, xlsx)")
}
