package item

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var ShowCmd = &cobra.Command{
	Use:   "show <item-id>",
	Short: "Show one item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}

		item, err := app.GetItem(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("fetching item: %w", err)
		}
		printItem(item)
		return nil
	},
}
