package bag

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	updateName     string
	updateAssigned string
)

var UpdateCmd = &cobra.Command{
	Use:   "update <bag-id>",
	Short: "Update a bag",
	Long:  `Update a bag's mutable fields. Unset flags keep their current values.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		bag, err := app.GetBag(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("fetching bag: %w", err)
		}

		if cmd.Flags().Changed("name") {
			bag.Name = updateName
		}
		if cmd.Flags().Changed("assigned") {
			bag.AssignmentDate = updateAssigned
		}

		if err := app.UpdateBag(cmd.Context(), bag); err != nil {
			return fmt.Errorf("updating bag: %w", err)
		}

		color.Green("Updated bag %s", bag.ID)
		return nil
	},
}

func init() {
	UpdateCmd.Flags().StringVarP(&updateName, "name", "n", "", "new bag name")
	UpdateCmd.Flags().StringVar(&updateAssigned, "assigned", "", "new assignment date")
}
