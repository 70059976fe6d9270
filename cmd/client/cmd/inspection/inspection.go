package inspection

import (
	"fmt"

	"github.com/spf13/cobra"

	"bagsync/cmd/client/cmd/types"
	"bagsync/internal/app/client"
)

// InspectionCmd is the parent command for inspection history operations.
var InspectionCmd = &cobra.Command{
	Use:   "inspection",
	Short: "Manage inspection histories",
	Long:  `View and append to the append-only inspection history of an item.`,
}

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("application is not initialized")
	}
	return app, nil
}
