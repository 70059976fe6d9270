package bag

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ScanCmd = &cobra.Command{
	Use:   "scan <image-file>",
	Short: "Resolve a photographed QR label to its bag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		bag, err := app.ScanLabel(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("resolving label: %w", err)
		}
		printBag(bag)
		return nil
	},
}
