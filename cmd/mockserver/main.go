// Command mockserver runs the in-memory inventory backend for local
// development against the bagsync client.
package main

import (
	"net/http"
	"os"

	"golang.org/x/exp/slog"

	"bagsync/internal/mockserver"
)

func main() {
	addr := os.Getenv("MOCKSERVER_ADDRESS")
	if addr == "" {
		addr = ":8080"
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))
	log.Info("mock inventory server listening", "address", addr)

	if err := http.ListenAndServe(addr, mockserver.New().Router()); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
