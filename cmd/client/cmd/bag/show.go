package bag

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ShowCmd = &cobra.Command{
	Use:   "show <bag-id>",
	Short: "Show one bag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		bag, err := app.GetBag(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("fetching bag: %w", err)
		}
		printBag(bag)
		return nil
	},
}
