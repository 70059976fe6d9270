// cmd/client/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"bagsync/cmd/client/cmd/types"
	"bagsync/internal/app/client"
	"bagsync/internal/app/client/config"
	"bagsync/internal/utils/logger"
)

var (
	cfg           *config.Config
	log           *slog.Logger
	app           *client.App
	serverAddress string
)

var rootCmd = &cobra.Command{
	Use:   "bagsync",
	Short: "bagsync - inventory synchronization client",
	Long: `bagsync keeps a local view of bags, their items and inspection
histories in step with the inventory backend.

Bags are identified by QR labels; items carry photos and periodic
inspection records. All state lives on the server, with a local cache
for offline listing.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg = config.MustLoad()

	// Flags override the environment.
	if serverAddress != "" {
		cfg.ServerAddress = serverAddress
	}

	log = logger.New(cfg.Env)

	var err error
	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddress, "server", "", "inventory server address (host:port)")
}
