/*
Package main
File: simulate.go
Description: Headless balance runs. Plays a fresh game for a fixed span of
simulated time and prints what it bought and where it ended up.
*/

package main

import (
	"fmt"
	"math"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/everforgeworks/idleforge/internal/game"
	"github.com/everforgeworks/idleforge/internal/sim"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
)

func newSimulateCmd() *cobra.Command {
	var (
		opts        sim.Options
		strategy    string
		catalogPath string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a headless game and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Strategy = sim.Strategy(strategy)
			return runSimulate(catalogPath, opts)
		},
	}
	cmd.Flags().Float64VarP(&opts.Seconds, "seconds", "s", 600, "simulated seconds")
	cmd.Flags().Float64VarP(&opts.Tick, "tick", "t", 0.1, "seconds per tick")
	cmd.Flags().Float64Var(&opts.ClicksPerSecond, "cps", 0, "manual clicks per second")
	cmd.Flags().StringVar(&strategy, "strategy", string(sim.StrategyGreedy), "greedy or idle")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file (default: embedded)")
	return cmd
}

func runSimulate(catalogPath string, opts sim.Options) error {
	cat, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}
	g, err := game.New(cat)
	if err != nil {
		return err
	}

	titleColor.Printf("\nSimulating %.0fs (tick %.2fs, %.1f clicks/s, %s)\n\n",
		opts.Seconds, opts.Tick, opts.ClicksPerSecond, opts.Strategy)

	res, err := sim.Run(g, opts)
	if err != nil {
		return err
	}

	if len(res.Purchases) > 0 {
		fmt.Println("Purchases:")
		table := tablewriter.NewTable(os.Stdout,
			tablewriter.WithHeader([]string{"Time", "Kind", "ID", "Cost"}),
		)
		for _, p := range res.Purchases {
			table.Append([]string{
				fmt.Sprintf("%.1fs", p.At),
				p.Kind,
				p.ID,
				whole(p.Cost),
			})
		}
		table.Render()
		fmt.Println()
	}

	fmt.Println("Buildings:")
	printBuildings(g.Buildings())

	fmt.Println("\nResources:")
	printResources(res.Final)

	fmt.Println("\nStatistics:")
	printStatistics(res.Stats)

	unlocked := 0
	for _, a := range g.Achievements() {
		if a.Unlocked {
			unlocked++
		}
	}
	successColor.Printf("\n%d ticks, %d purchases, %d/%d achievements\n",
		res.Ticks, len(res.Purchases), unlocked, len(g.Achievements()))
	return nil
}

func printBuildings(buildings []game.Building) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Building", "Resource", "Count", "Next Cost", "Output/s", "Workers"}),
	)
	for _, b := range buildings {
		table.Append([]string{
			b.Name,
			string(b.Resource),
			fmt.Sprintf("%d", b.Count),
			fmt.Sprintf("%.0f", b.DisplayCost),
			fmt.Sprintf("%.2f", b.Production),
			fmt.Sprintf("%d", b.Workers),
		})
	}
	table.Render()
}

func printResources(v game.ResourceView) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Resource", "Amount", "Per Second"}),
	)
	table.Append([]string{"coins", whole(v.Coins), fmt.Sprintf("%.2f", v.CoinsPerSecond)})
	table.Append([]string{"wood", whole(v.Wood), fmt.Sprintf("%.2f", v.WoodPerSecond)})
	table.Append([]string{"stone", whole(v.Stone), fmt.Sprintf("%.2f", v.StonePerSecond)})
	table.Render()
	fmt.Printf("   Coins per click: %s, autoclickers: %d\n", whole(v.CoinsPerClick), v.Autoclickers)
}

func printStatistics(s game.Statistics) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Statistic", "Value"}),
	)
	rows := [][]string{
		{"Total clicks", fmt.Sprintf("%d", s.TotalClicks)},
		{"Coins earned", whole(s.TotalCoinsEarned)},
		{"Wood earned", whole(s.TotalWoodEarned)},
		{"Stone earned", whole(s.TotalStoneEarned)},
		{"Resources crafted", fmt.Sprintf("%d", s.TotalResourcesCrafted)},
		{"Achievements", fmt.Sprintf("%d", s.AchievementsUnlockedCount)},
		{"Buildings bought", fmt.Sprintf("%d", s.BuildingsPurchased)},
		{"Upgrades bought", fmt.Sprintf("%d", s.UpgradesPurchased)},
		{"Play time", whole(s.PlayTimeSeconds) + "s"},
	}
	for _, r := range rows {
		table.Append(r)
	}
	table.Render()
}

// whole formats an amount the way the HUD shows it: floored.
func whole(v float64) string {
	return fmt.Sprintf("%.0f", math.Floor(v))
}
