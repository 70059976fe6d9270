package item

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bagsync/cmd/client/cmd/types"
	"bagsync/internal/app/client"
	"bagsync/internal/domain/inventory"
)

// ItemCmd is the parent command for item operations.
var ItemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage items",
	Long:  `List, create, update and delete the items carried in bags.`,
}

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("application is not initialized")
	}
	return app, nil
}

func printItems(items []inventory.Item) {
	if len(items) == 0 {
		fmt.Println("No items found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDESCRIPTION\tBRAND\tSERIAL\tSTATUS\tINSPECTED\t")
	for _, it := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
			it.ID, it.Description, it.Brand, it.SerialNumber,
			it.InspectionStatus.Label(), it.InspectionDate)
	}
	w.Flush()
}

func printItem(it inventory.Item) {
	fmt.Printf("ID:          %d\n", it.ID)
	fmt.Printf("Description: %s\n", it.Description)
	fmt.Printf("Model:       %s\n", it.ModelName)
	fmt.Printf("Brand:       %s\n", it.Brand)
	fmt.Printf("Serial:      %s\n", it.SerialNumber)
	fmt.Printf("Condition:   %s\n", it.Condition)
	fmt.Printf("Status:      %s\n", it.InspectionStatus.Label())
	fmt.Printf("Inspected:   %s\n", it.InspectionDate)
	fmt.Printf("Follow-up:   %s\n", it.FollowUpInspectionDate)
	fmt.Printf("Expires:     %s\n", it.ExpirationDate)
	fmt.Printf("Bag:         %s\n", it.BagID)
	if it.ImageURL != "" {
		fmt.Printf("Photo:       %s\n", it.ImageURL)
	}
	if it.Comment != "" {
		fmt.Printf("Comment:     %s\n", it.Comment)
	}
}

func statusFromFlag(value int) (inventory.InspectionStatus, error) {
	status := inventory.InspectionStatus(value)
	if !status.Valid() {
		return 0, fmt.Errorf("invalid inspection status %d (0=failed, 1=passed, 2=n/a)", value)
	}
	return status, nil
}
