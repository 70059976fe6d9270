package bag

import (
	"fmt"

	"github.com/spf13/cobra"
)

var CountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show the current user's bag count",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		count, err := app.CountBags(cmd.Context())
		if err != nil {
			return fmt.Errorf("counting bags: %w", err)
		}
		fmt.Println(count)
		return nil
	},
}
