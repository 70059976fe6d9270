// cmd/client/cmd/auth/login.go
package auth

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginEmail string

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the inventory server",
	Long: `Authenticate against the inventory server.

The returned identity is stored locally and scopes every bag and count
operation until logout.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		email := loginEmail
		if email == "" {
			fmt.Print("Email: ")
			_, _ = fmt.Scanln(&email)
		}
		if email == "" {
			return fmt.Errorf("email is required")
		}

		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		fmt.Println()

		user, err := app.Login(cmd.Context(), email, string(password))
		if err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}

		color.Green("Logged in as %s %s <%s>", user.FirstName, user.LastName, user.Email)
		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email (prompted if omitted)")
}
