package bag

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bagsync/cmd/client/cmd/types"
	"bagsync/internal/app/client"
	"bagsync/internal/domain/inventory"
)

// BagCmd is the parent command for bag operations.
var BagCmd = &cobra.Command{
	Use:   "bag",
	Short: "Manage bags",
	Long:  `List, create, label, scan and export bags.`,
}

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("application is not initialized")
	}
	return app, nil
}

func printBags(bags []inventory.Bag) {
	if len(bags) == 0 {
		fmt.Println("No bags found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tASSIGNED\t")
	for _, b := range bags {
		fmt.Fprintf(w, "%s\t%s\t%s\t\n", b.ID, b.Name, b.AssignmentDate)
	}
	w.Flush()
}

func printBag(b inventory.Bag) {
	fmt.Printf("ID:       %s\n", b.ID)
	fmt.Printf("Name:     %s\n", b.Name)
	fmt.Printf("Owner:    %d\n", b.OwnerUserID)
	fmt.Printf("Assigned: %s\n", b.AssignmentDate)
}
