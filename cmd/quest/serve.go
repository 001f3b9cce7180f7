package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-quest/internal/audio"
	"github.com/vovakirdan/tui-quest/internal/game"
	"github.com/vovakirdan/tui-quest/internal/platform/tui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the quest SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own campaign. The SSH user name is the save
slot, so reconnecting as the same user offers "Load game".

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.quest/host_key

Examples:
  quest serve                           # Listen on :23235 with auto-generated key
  quest serve --ssh :2222               # Listen on port 2222
  quest serve --host-key ./my_host_key  # Use specific host key
  quest serve --db ./saves.db           # Use specific database

Users can connect with:
  ssh alice@localhost -p 23235`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().String("host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().Duration("idle-timeout", 0, "Idle timeout before disconnecting (default 30m)")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "quest-ssh",
		Level:           settings.LogLevel(),
	})

	defs, err := loadLevels(logger)
	if err != nil {
		return err
	}

	store, saves := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := tui.SSHServerConfig{
		Address:     settings.SSH.Address,
		HostKeyPath: settings.SSH.HostKey,
		IdleTimeout: settings.SSH.IdleTimeout,
		TickRate:    settings.FPS,
		Logger:      logger,
		NewCampaign: func(slot string, lg *log.Logger) (*game.Campaign, error) {
			// Sound keys go to the server log; bells would ring on the server.
			bank := audio.NewLogBank(lg, io.Discard, nil)
			return game.New(newContext(lg, bank), defs, saves, slot)
		},
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting quest SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
