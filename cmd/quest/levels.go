package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels of the campaign",
	Long: `Loads and validates the campaign, then lists its levels in play order.

Examples:
  quest levels
  quest levels --levels ./my-levels.yaml`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: settings.LogLevel()})
	defs, err := loadLevels(logger)
	if err != nil {
		return err
	}

	fmt.Println("Campaign levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, d := range defs {
		maxIDLen = max(maxIDLen, len(d.ID))
	}

	fmt.Printf("  %-*s  %-20s  %-10s  %s\n", maxIDLen, "ID", "Name", "Kind", "Contents")
	fmt.Printf("  %-*s  %-20s  %-10s  %s\n", maxIDLen, "--", "----", "----", "--------")

	for _, d := range defs {
		var kind []string
		if d.Menu {
			kind = append(kind, "menu")
		}
		if d.Fog {
			kind = append(kind, "fog")
		}
		if len(kind) == 0 {
			kind = append(kind, "level")
		}
		contents := fmt.Sprintf("%d characters, %d chests", len(d.Characters), len(d.Chests))
		fmt.Printf("  %-*s  %-20s  %-10s  %s\n", maxIDLen, d.ID, d.Name, strings.Join(kind, ","), contents)
	}

	fmt.Println()
	fmt.Println("Run 'quest play' to start the campaign.")
	return nil
}
