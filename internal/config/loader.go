package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the settings file looked up in the search path.
const FileName = "quest.yaml"

// Load reads settings into v (a new instance when nil), applies QUEST_
// environment overrides and validates the result. It returns the file it
// read, or "" when only defaults and environment were used.
// Search order: customPath -> ~/.quest/quest.yaml -> ./configs/quest.yaml -> defaults
func Load(v *viper.Viper, customPath string) (Settings, string, error) {
	if v == nil {
		v = viper.New()
	}

	// Environment variable overrides with QUEST_ prefix
	v.SetEnvPrefix("QUEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	path, err := findFile(customPath)
	if err != nil {
		return Settings{}, "", err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, "", fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, "", fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, "", err
	}
	return s, path, nil
}

// findFile resolves the settings file. A custom path must exist; the
// fallbacks are optional.
func findFile(customPath string) (string, error) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err != nil {
			return "", fmt.Errorf("config %s: %w", customPath, err)
		}
		return customPath, nil
	}

	candidates := []string{filepath.Join("configs", FileName)}
	if p := userConfigPath(FileName); p != "" {
		candidates = append([]string{p}, candidates...)
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("config %s: %w", p, err)
		}
	}
	return "", nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".quest", filename)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("display.width", 512)
	v.SetDefault("display.height", 512)
	v.SetDefault("fps", 60)
	v.SetDefault("seed", 0)
	v.SetDefault("levels", "")

	v.SetDefault("gameplay.pace", string(PaceNormal))
	v.SetDefault("gameplay.walk_speed", 2.0)
	v.SetDefault("gameplay.impact_hold", 0)
	v.SetDefault("gameplay.fog_radius", 96)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "~/.quest/quest.log")

	v.SetDefault("storage.path", "~/.quest/saves.db")
	v.SetDefault("storage.slot", "default")

	v.SetDefault("ssh.address", ":23235")
	v.SetDefault("ssh.host_key", "")
	v.SetDefault("ssh.idle_timeout", "30m")

	v.SetDefault("audio.bell", []string{"chest", "cure"})
}
