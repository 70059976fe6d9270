package inspection

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bagsync/internal/domain/inventory"
)

var (
	addStatus    int
	addDate      string
	addInspector string
	addNext      string
	addComments  string
)

var AddCmd = &cobra.Command{
	Use:   "add <item-id>",
	Short: "Append an inspection record to an item",
	Long: `Append a record to an item's inspection history. Records are never
modified or removed once written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}

		status := inventory.InspectionStatus(addStatus)
		if !status.Valid() {
			return fmt.Errorf("invalid inspection status %d (0=failed, 1=passed, 2=n/a)", addStatus)
		}

		err = app.AddInspection(cmd.Context(), inventory.InspectionRecord{
			ItemID:             id,
			Status:             status,
			InspectionDate:     addDate,
			InspectorName:      addInspector,
			NextInspectionDate: addNext,
			Comments:           addComments,
		})
		if err != nil {
			return fmt.Errorf("recording inspection: %w", err)
		}

		color.Green("Recorded %s inspection for item %d", status.Label(), id)
		return nil
	},
}

func init() {
	AddCmd.Flags().IntVar(&addStatus, "status", int(inventory.StatusPassed), "inspection status (0=failed, 1=passed, 2=n/a)")
	AddCmd.Flags().StringVar(&addDate, "date", "", "inspection date")
	AddCmd.Flags().StringVar(&addInspector, "inspector", "", "inspector name")
	AddCmd.Flags().StringVar(&addNext, "next", "", "next inspection date")
	AddCmd.Flags().StringVar(&addComments, "comments", "", "free-form comments")
}
