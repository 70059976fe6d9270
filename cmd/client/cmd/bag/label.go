package bag

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var labelOut string

var LabelCmd = &cobra.Command{
	Use:   "label <bag-id>",
	Short: "Render a bag's QR label as a PNG file",
	Long: `Render the QR label that identifies a bag. Scanning the label with
"bag scan" resolves it back to the bag.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		out := labelOut
		if out == "" {
			out = args[0] + ".png"
		}

		if err := app.WriteLabel(args[0], out); err != nil {
			return fmt.Errorf("rendering label: %w", err)
		}

		color.Green("Wrote label to %s", out)
		return nil
	},
}

func init() {
	LabelCmd.Flags().StringVarP(&labelOut, "out", "o", "", "output file (default <bag-id>.png)")
}
