package inspection

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var ListCmd = &cobra.Command{
	Use:   "list <item-id>",
	Short: "List an item's inspection history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}

		records, err := app.ListInspections(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("listing inspections: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No inspections recorded")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tSTATUS\tINSPECTOR\tNEXT\tCOMMENTS\t")
		for _, rec := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
				rec.InspectionDate, rec.Status.Label(), rec.InspectorName,
				rec.NextInspectionDate, rec.Comments)
		}
		w.Flush()
		return nil
	},
}
