// cmd/client/cmd/item/update.go
package item

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	updateDescription string
	updateModel       string
	updateBrand       string
	updateComment     string
	updateSerial      string
	updateCondition   string
	updateStatus      int
	updateInspected   string
	updateFollowUp    string
	updateExpires     string
	updatePhoto       string
)

var UpdateCmd = &cobra.Command{
	Use:   "update <item-id>",
	Short: "Update an item",
	Long: `Update an item's fields. Unset flags keep their current values.
A new --photo is uploaded before the update is sent; if the upload fails
the item is left untouched.`,
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

		item, err := app.GetItem(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("fetching item: %w", err)
		}

		if cmd.Flags().Changed("description") {
			item.Description = updateDescription
		}
		if cmd.Flags().Changed("model") {
			item.ModelName = updateModel
		}
		if cmd.Flags().Changed("brand") {
			item.Brand = updateBrand
		}
		if cmd.Flags().Changed("comment") {
			item.Comment = updateComment
		}
		if cmd.Flags().Changed("serial") {
			item.SerialNumber = updateSerial
		}
		if cmd.Flags().Changed("condition") {
			item.Condition = updateCondition
		}
		if cmd.Flags().Changed("status") {
			status, err := statusFromFlag(updateStatus)
			if err != nil {
				return err
			}
			item.InspectionStatus = status
		}
		if cmd.Flags().Changed("inspected") {
			item.InspectionDate = updateInspected
		}
		if cmd.Flags().Changed("follow-up") {
			item.FollowUpInspectionDate = updateFollowUp
		}
		if cmd.Flags().Changed("expires") {
			item.ExpirationDate = updateExpires
		}

		var photo []byte
		if updatePhoto != "" {
			photo, err = os.ReadFile(updatePhoto)
			if err != nil {
				return fmt.Errorf("reading photo: %w", err)
			}
		}

		if _, err := app.SaveItem(cmd.Context(), item, photo); err != nil {
			return fmt.Errorf("updating item: %w", err)
		}

		color.Green("Updated item %d", id)
		return nil
	},
}

func init() {
	UpdateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "item description")
	UpdateCmd.Flags().StringVar(&updateModel, "model", "", "model name")
	UpdateCmd.Flags().StringVar(&updateBrand, "brand", "", "brand")
	UpdateCmd.Flags().StringVar(&updateComment, "comment", "", "free-form comment")
	UpdateCmd.Flags().StringVar(&updateSerial, "serial", "", "serial number")
	UpdateCmd.Flags().StringVar(&updateCondition, "condition", "", "condition note")
	UpdateCmd.Flags().IntVar(&updateStatus, "status", 0, "inspection status (0=failed, 1=passed, 2=n/a)")
	UpdateCmd.Flags().StringVar(&updateInspected, "inspected", "", "last inspection date")
	UpdateCmd.Flags().StringVar(&updateFollowUp, "follow-up", "", "follow-up inspection date")
	UpdateCmd.Flags().StringVar(&updateExpires, "expires", "", "expiration date")
	UpdateCmd.Flags().StringVarP(&updatePhoto, "photo", "p", "", "replacement photo file to upload")
}
