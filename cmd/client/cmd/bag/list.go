package bag

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCached bool

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the current user's bags",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		if listCached {
			user, ok := app.CurrentUser()
			if !ok {
				return fmt.Errorf("not logged in")
			}
			bags, err := app.CachedBags(user.ID)
			if err != nil {
				return fmt.Errorf("reading cached bags: %w", err)
			}
			printBags(bags)
			return nil
		}

		bags, err := app.ListBags(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing bags: %w", err)
		}
		printBags(bags)
		return nil
	},
}

func init() {
	ListCmd.Flags().BoolVar(&listCached, "cached", false, "list from the local cache without contacting the server")
}
