package auth

import (
	"fmt"

	"github.com/spf13/cobra"
)

var WhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session identity",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		user, ok := app.CurrentUser()
		if !ok {
			fmt.Println("Not logged in")
			return nil
		}
		fmt.Printf("%s %s <%s> (id %d)\n", user.FirstName, user.LastName, user.Email, user.ID)
		return nil
	},
}
