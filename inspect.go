/*
Package main
File: inspect.go
Description: Reads save slots straight from the database. Without --slot it
lists every slot; with --slot it decodes that save, replays it into a game
built from the catalog and prints the resulting state.
*/

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/everforgeworks/idleforge/internal/config"
	"github.com/everforgeworks/idleforge/internal/game"
	"github.com/everforgeworks/idleforge/internal/persistence/snapshot"
	"github.com/everforgeworks/idleforge/internal/persistence/store"
)

func newInspectCmd() *cobra.Command {
	var dbPath, slot, catalogPath, outPath string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List save slots or print one save",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), dbPath, slot, catalogPath, outPath)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", config.Defaults().DatabasePath(), "save database")
	cmd.Flags().StringVar(&slot, "slot", "", "slot to decode (empty lists all slots)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file (default: embedded)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "also write the raw save blob here, for /api/import")
	return cmd
}

func runInspect(ctx context.Context, dbPath, slot, catalogPath, outPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	// store.Open would create an empty database.
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("save database: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if slot == "" {
		slots, err := st.List(ctx)
		if err != nil {
			return err
		}
		titleColor.Printf("\n%d save slot(s) in %s\n\n", len(slots), dbPath)
		printSlots(slots)
		return nil
	}

	s, err := st.Get(ctx, slot)
	if err != nil {
		return fmt.Errorf("slot %q: %w", slot, err)
	}
	hdr, err := snapshot.ReadHeader(s.Blob)
	if err != nil {
		return fmt.Errorf("slot %q: %w", slot, err)
	}
	save, err := snapshot.Decode(s.Blob)
	if err != nil {
		return fmt.Errorf("slot %q: %w", slot, err)
	}

	cat, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}
	g, err := game.New(cat)
	if err != nil {
		return err
	}
	if err := g.Restore(save); err != nil {
		return fmt.Errorf("slot %q: %w", slot, err)
	}

	titleColor.Printf("\nSlot %q\n", slot)
	fmt.Printf("   Save ID: %s (format v%d)\n", hdr.SaveID, hdr.Version)
	fmt.Printf("   Saved at: %s\n", hdr.SavedAt.Format(time.RFC3339))
	fmt.Printf("   Blob: %d bytes\n\n", len(s.Blob))

	fmt.Println("Resources:")
	printResources(g.Resources())
	fmt.Println("\nBuildings:")
	printBuildings(g.Buildings())
	fmt.Println("\nWorkers:")
	printWorkers(g.Workers())
	fmt.Println("\nStatistics:")
	printStatistics(g.Statistics())

	if outPath != "" {
		if err := os.WriteFile(outPath, s.Blob, 0o644); err != nil {
			return err
		}
		successColor.Printf("\nWrote %s\n", outPath)
	}
	return nil
}

func printSlots(slots []store.Slot) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Slot", "Save ID", "Version", "Saved At", "Play Time"}),
	)
	for _, s := range slots {
		table.Append([]string{
			s.Name,
			s.SaveID,
			fmt.Sprintf("%d", s.Version),
			s.SavedAt.Format(time.RFC3339),
			whole(s.PlayTimeSeconds) + "s",
		})
	}
	table.Render()
}

func printWorkers(workers []game.Worker) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Worker", "Assigned", "Level", "XP", "Efficiency"}),
	)
	for _, w := range workers {
		assigned := w.AssignedBuilding
		if assigned == "" {
			assigned = "-"
		}
		table.Append([]string{
			w.Name,
			assigned,
			fmt.Sprintf("%d", w.Level),
			fmt.Sprintf("%s/%s", whole(w.XP), whole(w.XPToNextLevel)),
			fmt.Sprintf("x%.2f", w.Efficiency),
		})
	}
	table.Render()
}
