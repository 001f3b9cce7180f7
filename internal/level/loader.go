package level

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed defaults/levels.yaml
var defaultLevelsYAML []byte

// FileName is the campaign file looked up in the search path.
const FileName = "levels.yaml"

// Load reads the campaign.
// Search order: customPath -> ~/.quest/levels.yaml -> ./configs/levels.yaml -> embedded default.
// A custom path that cannot be read or parsed is an error; files found on
// the search path must also parse, since a broken campaign is fatal.
func Load(customPath string) ([]*Definition, string, error) {
	if customPath != "" {
		defs, err := LoadFile(customPath)
		return defs, customPath, err
	}

	candidates := []string{filepath.Join("configs", FileName)}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append([]string{filepath.Join(home, ".quest", FileName)}, candidates...)
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		defs, err := LoadFile(path)
		return defs, path, err
	}

	defs, err := Default()
	return defs, "embedded", err
}

// LoadFile loads a single campaign file.
func LoadFile(path string) ([]*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: reading file %s: %w", path, err)
	}
	defs, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("level: parsing file %s: %w", path, err)
	}
	return defs, nil
}

// Default returns the embedded campaign.
func Default() ([]*Definition, error) {
	return Parse(defaultLevelsYAML, "")
}
