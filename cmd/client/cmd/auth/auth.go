package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"bagsync/cmd/client/cmd/types"
	"bagsync/internal/app/client"
)

// AuthCmd is the parent command for session management.
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the login session",
	Long:  `Log in to the inventory server, log out, or show the current identity.`,
}

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("application is not initialized")
	}
	return app, nil
}
