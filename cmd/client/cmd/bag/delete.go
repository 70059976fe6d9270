package bag

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteYes bool

var DeleteCmd = &cobra.Command{
	Use:   "delete <bag-id>",
	Short: "Delete a bag and its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		if !deleteYes {
			fmt.Printf("Delete bag %s and all of its items? [y/N] ", args[0])
			var answer string
			_, _ = fmt.Scanln(&answer)
			if answer != "y" && answer != "Y" {
				fmt.Println("Aborted")
				return nil
			}
		}

		if err := app.DeleteBag(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("deleting bag: %w", err)
		}

		color.Green("Deleted bag %s", args[0])
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}
