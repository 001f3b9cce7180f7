// quest is a tile-based RPG played in the terminal: explore levels, talk
// to characters, open chests and fight turn-based battles.
//
// Usage:
//
//	quest play               - Play the campaign
//	quest serve              - Start SSH server for remote play
//	quest levels             - List the levels of the campaign
//	quest saves              - List saved games
//	quest history            - Browse battles fought in each save slot
//
// Global flags:
//
//	--config <path>  - Settings file (default: ~/.quest/quest.yaml or ./configs/quest.yaml)
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible battles
//	--db <path>      - Set save database path (default: ~/.quest/saves.db)
//	--levels <path>  - Campaign file (default: embedded campaign)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/tui-quest/internal/config"
)

var (
	// Global flags
	flagConfig string

	// Loaded before every subcommand runs.
	settings     config.Settings
	settingsFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "quest",
	Short: "TUI Quest - a tile RPG in your terminal",
	Long: `TUI Quest is a terminal role-playing game. Pick a class, walk through
the levels, talk to the locals, open chests and defeat every foe in
turn-based battles. Progress is saved after each level.

Available commands:
  play     - Play the campaign
  serve    - Start SSH server for remote play
  levels   - List the levels of the campaign
  saves    - List or delete saved games
  history  - Browse battles fought in each save slot

Examples:
  quest play
  quest play --slot hero2 --levels ./my-levels.yaml
  quest serve --ssh :2222
  quest saves`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "Path to settings file")
	flags.Int("fps", 60, "Tick rate (frames per second)")
	flags.Int64("seed", 0, "RNG seed (0 = random based on time)")
	flags.String("db", "~/.quest/saves.db", "Path to save database")
	flags.String("levels", "", "Path to a campaign file")
	flags.String("slot", "default", "Save slot")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(historyCmd)
}

// flagKeys maps command-line flags to settings keys.
var flagKeys = map[string]string{
	"fps":          "fps",
	"seed":         "seed",
	"db":           "storage.path",
	"levels":       "levels",
	"slot":         "storage.slot",
	"log-level":    "logging.level",
	"ssh":          "ssh.address",
	"host-key":     "ssh.host_key",
	"idle-timeout": "ssh.idle_timeout",
}

// loadSettings merges defaults, the settings file, QUEST_ variables and
// the flags that were set, in increasing priority.
func loadSettings(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	for name, k := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(k, f); err != nil {
				return fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
	}

	s, path, err := config.Load(v, flagConfig)
	if err != nil {
		return err
	}
	settings, settingsFile = s, path
	return nil
}
