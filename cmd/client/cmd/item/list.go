package item

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	listBagID  string
	listCached bool
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the items in a bag",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		if listBagID == "" {
			return fmt.Errorf("--bag is required")
		}

		if listCached {
			items, err := app.CachedItems(listBagID)
			if err != nil {
				return fmt.Errorf("reading cached items: %w", err)
			}
			printItems(items)
			return nil
		}

		items, err := app.ListItems(cmd.Context(), listBagID)
		if err != nil {
			return fmt.Errorf("listing items: %w", err)
		}
		printItems(items)
		return nil
	},
}

func init() {
	ListCmd.Flags().StringVarP(&listBagID, "bag", "b", "", "bag id")
	ListCmd.Flags().BoolVar(&listCached, "cached", false, "list from the local cache without contacting the server")
}
