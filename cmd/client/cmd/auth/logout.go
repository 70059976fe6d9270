package auth

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		if err := app.Logout(); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
		color.Green("Logged out")
		return nil
	},
}
