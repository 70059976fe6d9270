package item

import (
	"fmt"

	"github.com/spf13/cobra"
)

var CountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show the current user's item count",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		count, err := app.CountItems(cmd.Context())
		if err != nil {
			return fmt.Errorf("counting items: %w", err)
		}
		fmt.Println(count)
		return nil
	},
}
