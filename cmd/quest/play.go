package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-quest/internal/audio"
	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/game"
	"github.com/vovakirdan/tui-quest/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the campaign",
	Long: `Start the campaign at the title menu.

Controls:
  Arrows/WASD  - Move, navigate menus
  Enter/E      - Talk, choose a class, pick an attack
  I/Tab        - Inventory
  Mouse        - Click battle menu entries
  ?            - Toggle help
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Examples:
  quest play
  quest play --slot second-hero
  quest play --levels ./my-levels.yaml --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closer, err := fileLogger(settings.Logging.File)
	if err != nil {
		return err
	}
	defer closer.Close()

	defs, err := loadLevels(logger)
	if err != nil {
		return err
	}

	store, saves := openStore(logger)
	if store != nil {
		defer store.Close()
	} else {
		fmt.Fprintln(os.Stderr, "Warning: could not open save database, progress will not be saved")
	}

	bank := audio.NewLogBank(logger, os.Stdout, settings.Audio.Bell)
	campaign, err := game.New(newContext(logger, bank), defs, saves, settings.Storage.Slot)
	if err != nil {
		return err
	}

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: settings.FPS,
		Seed:     settings.Seed,
	}
	return tui.Run(campaign, cfg)
}
