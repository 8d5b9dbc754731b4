/*
Package main
File: main.go
Description: Command-line entry point. The root command groups the server
(serve), headless balance runs (simulate) and save inspection (inspect).
*/

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/everforgeworks/idleforge/internal/game"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "idleforge",
		Short: "Idle resource game server and tools",
		Long: `idleforge hosts an idle resource game: clicking, buildings, upgrades,
crafting, workers, achievements and unlocks, with autosaved progress
pushed live to connected clients.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newServeCmd(), newSimulateCmd(), newInspectCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *log.Logger {
	return log.New(os.Stdout, "[idleforge] ", log.LstdFlags|log.Lmicroseconds)
}

// loadCatalog reads path, or the embedded catalog when path is empty.
func loadCatalog(path string) (game.Catalog, error) {
	if path == "" {
		return game.DefaultCatalog()
	}
	return game.LoadCatalog(path)
}
