// cmd/client/cmd/item/create.go
package item

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bagsync/internal/domain/inventory"
)

var (
	createBagID       string
	createDescription string
	createModel       string
	createBrand       string
	createComment     string
	createSerial      string
	createCondition   string
	createStatus      int
	createInspected   string
	createFollowUp    string
	createExpires     string
	createPhoto       string
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an item in a bag",
	Long: `Create an item. When --photo names an image file it is resized,
re-encoded and uploaded before the item is created; if the upload fails
the item is not created.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		if createBagID == "" {
			return fmt.Errorf("--bag is required")
		}
		status, err := statusFromFlag(createStatus)
		if err != nil {
			return err
		}

		var photo []byte
		if createPhoto != "" {
			photo, err = os.ReadFile(createPhoto)
			if err != nil {
				return fmt.Errorf("reading photo: %w", err)
			}
		}

		id, err := app.SaveItem(cmd.Context(), inventory.Item{
			Description:            createDescription,
			ModelName:              createModel,
			Brand:                  createBrand,
			Comment:                createComment,
			SerialNumber:           createSerial,
			Condition:              createCondition,
			InspectionStatus:       status,
			InspectionDate:         createInspected,
			FollowUpInspectionDate: createFollowUp,
			ExpirationDate:         createExpires,
			BagID:                  createBagID,
		}, photo)
		if err != nil {
			return fmt.Errorf("creating item: %w", err)
		}

		color.Green("Created item %d", id)
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVarP(&createBagID, "bag", "b", "", "bag id")
	CreateCmd.Flags().StringVarP(&createDescription, "description", "d", "", "item description")
	CreateCmd.Flags().StringVar(&createModel, "model", "", "model name")
	CreateCmd.Flags().StringVar(&createBrand, "brand", "", "brand")
	CreateCmd.Flags().StringVar(&createComment, "comment", "", "free-form comment")
	CreateCmd.Flags().StringVar(&createSerial, "serial", "", "serial number")
	CreateCmd.Flags().StringVar(&createCondition, "condition", "", "condition note")
	CreateCmd.Flags().IntVar(&createStatus, "status", int(inventory.StatusNotApplicable), "inspection status (0=failed, 1=passed, 2=n/a)")
	CreateCmd.Flags().StringVar(&createInspected, "inspected", "", "last inspection date")
	CreateCmd.Flags().StringVar(&createFollowUp, "follow-up", "", "follow-up inspection date")
	CreateCmd.Flags().StringVar(&createExpires, "expires", "", "expiration date")
	CreateCmd.Flags().StringVarP(&createPhoto, "photo", "p", "", "photo file to upload")
}
