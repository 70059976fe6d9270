package bag

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	createName     string
	createAssigned string
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a bag",
	Long:  `Create a bag owned by the current user. The bag id is generated locally.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		if createName == "" {
			return fmt.Errorf("--name is required")
		}

		bag, err := app.CreateBag(cmd.Context(), createName, createAssigned)
		if err != nil {
			return fmt.Errorf("creating bag: %w", err)
		}

		color.Green("Created bag %s", bag.ID)
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVarP(&createName, "name", "n", "", "bag name")
	CreateCmd.Flags().StringVar(&createAssigned, "assigned", "", "assignment date (YYYY-MM-DD HH:MM:SS)")
}
