package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-quest/internal/platform/tui"
	"github.com/vovakirdan/tui-quest/internal/storage"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List saved games",
	Long: `Display every save slot with its hero and progress.

Examples:
  quest saves
  quest saves delete alice
  quest saves --db ./saves.db`,
	Args: cobra.NoArgs,
	RunE: runSaves,
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <slot>",
	Short: "Delete a save slot and its battle history",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavesDelete,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse battles fought in each save slot",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	savesCmd.AddCommand(savesDeleteCmd)
}

func openSaves() (*storage.Store, error) {
	store, err := storage.Open(settings.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("opening save database: %w", err)
	}
	return store, nil
}

func runSaves(_ *cobra.Command, _ []string) error {
	store, err := openSaves()
	if err != nil {
		return err
	}
	defer store.Close()

	saves, err := store.ListSaves()
	if err != nil {
		return fmt.Errorf("retrieving saves: %w", err)
	}

	fmt.Println("Saved games")
	fmt.Println()

	if len(saves) == 0 {
		fmt.Println("No saves yet.")
		fmt.Println()
		fmt.Println("Pass a level in 'quest play' to create one!")
		return nil
	}

	// Print header
	fmt.Printf("  %-12s  %-18s  %-8s  %-5s  %-9s  %-6s  %s\n", "Slot", "Hero", "Class", "Level", "HP", "Passed", "Updated")
	fmt.Printf("  %-12s  %-18s  %-8s  %-5s  %-9s  %-6s  %s\n", "----", "----", "-----", "-----", "--", "------", "-------")

	for _, s := range saves {
		p := s.Player
		fmt.Printf("  %-12s  %-18s  %-8s  %-5d  %-9s  %-6d  %s\n",
			s.Slot, p.Name, p.Class, p.Level,
			fmt.Sprintf("%d/%d", p.HP, p.MaxHP),
			s.PassedCount(),
			s.UpdatedAt.Format("2006-01-02 15:04"),
		)
	}
	return nil
}

func runSavesDelete(_ *cobra.Command, args []string) error {
	store, err := openSaves()
	if err != nil {
		return err
	}
	defer store.Close()

	slot := args[0]
	save, err := store.LoadGame(slot)
	if err != nil {
		return err
	}
	if save == nil {
		return fmt.Errorf("no save in slot %q", slot)
	}
	if err := store.DeleteSave(slot); err != nil {
		return err
	}
	fmt.Printf("Deleted slot %s (%s, level %d)\n", slot, save.Player.Name, save.Player.Level)
	return nil
}

func runHistory(_ *cobra.Command, _ []string) error {
	store, err := openSaves()
	if err != nil {
		return err
	}
	defer store.Close()

	width, height := terminalSize()
	return tui.RunHistory(store, width, height)
}
