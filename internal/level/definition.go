package level

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-quest/internal/collision"
	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/entity"
)

// ErrInvalid marks a malformed level file.
var ErrInvalid = errors.New("level: invalid definition")

// Point is an (x, y) pair in reference pixels, written as [x, y].
type Point [2]float64

// Vec converts p to a vector.
func (p Point) Vec() core.Vec { return core.Vec{X: p[0], Y: p[1]} }

// File is the YAML document: an ordered list of levels.
type File struct {
	Levels []YAMLLevel `yaml:"levels"`
}

// YAMLLevel is one level as written in the data file.
type YAMLLevel struct {
	ID         string          `yaml:"id"`
	Name       string          `yaml:"name"`
	Menu       bool            `yaml:"menu"`
	Fog        bool            `yaml:"fog"`
	Music      string          `yaml:"music"`
	Background string          `yaml:"background"`
	Start      Point           `yaml:"start"`
	Exit       *Point          `yaml:"exit"`
	Mask       YAMLMask        `yaml:"mask"`
	Characters []YAMLCharacter `yaml:"characters"`
	Chests     []YAMLChest     `yaml:"chests"`
}

// YAMLMask is the boundary mask: inline ASCII rows or a PNG whose
// opaque pixels are walls.
type YAMLMask struct {
	Rows      []string `yaml:"rows"`
	Cell      int      `yaml:"cell"`
	File      string   `yaml:"file"`
	Threshold uint8    `yaml:"threshold"`
}

// YAMLCharacter places a character.
type YAMLCharacter struct {
	Class  string        `yaml:"class"`
	Args   yaml.Node     `yaml:"args"`
	Pos    Point         `yaml:"pos"`
	Facing entity.Facing `yaml:"facing"`
}

// YAMLChest places a chest holding one item.
type YAMLChest struct {
	Item ItemDef `yaml:"item"`
	Pos  Point   `yaml:"pos"`
}

// Definition is a validated level, ready to be instantiated any number
// of times. Coordinates are in reference pixels.
type Definition struct {
	ID         string
	Name       string
	Menu       bool
	Fog        bool
	Music      string
	Background string
	Start      core.Vec
	Exit       *core.Vec
	Mask       *collision.Mask // nil means no walls; files always carry one
	Characters []Placement
	Chests     []ChestPlacement
}

// Placement is a character definition and where it stands. Pos is the
// sprite centre.
type Placement struct {
	Character
	Class  string
	Pos    core.Vec
	Facing entity.Facing
}

// ChestPlacement is a chest item and the chest centre.
type ChestPlacement struct {
	Item entity.Attack
	Pos  core.Vec
}

// Parse decodes and validates a level file. dir resolves relative mask
// paths; it may be empty for embedded data.
func Parse(data []byte, dir string) ([]*Definition, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("level: yaml unmarshal: %w", err)
	}
	if len(f.Levels) == 0 {
		return nil, fmt.Errorf("%w: no levels", ErrInvalid)
	}

	seen := make(map[string]bool, len(f.Levels))
	defs := make([]*Definition, 0, len(f.Levels))
	for i, yl := range f.Levels {
		def, err := yl.build(dir)
		if err != nil {
			return nil, fmt.Errorf("level %d (%s): %w", i, yl.ID, err)
		}
		if seen[def.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalid, def.ID)
		}
		seen[def.ID] = true
		defs = append(defs, def)
	}
	return defs, nil
}

func (yl YAMLLevel) build(dir string) (*Definition, error) {
	if yl.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalid)
	}
	def := &Definition{
		ID:         yl.ID,
		Name:       yl.Name,
		Menu:       yl.Menu,
		Fog:        yl.Fog,
		Music:      yl.Music,
		Background: yl.Background,
		Start:      yl.Start.Vec(),
	}
	if def.Name == "" {
		def.Name = def.ID
	}
	if yl.Exit != nil {
		v := yl.Exit.Vec()
		def.Exit = &v
	}

	mask, err := yl.Mask.build(dir)
	if err != nil {
		return nil, err
	}
	def.Mask = mask

	for i, yc := range yl.Characters {
		c, err := Characters.Create(yc.Class, nodeDecoder(&yc.Args))
		if err != nil {
			return nil, fmt.Errorf("character %d: %w", i, err)
		}
		facing := yc.Facing
		if facing == "" {
			facing = entity.FacingRight
		}
		if facing != entity.FacingLeft && facing != entity.FacingRight {
			return nil, fmt.Errorf("%w: character %d: facing %q", ErrInvalid, i, facing)
		}
		def.Characters = append(def.Characters, Placement{
			Character: c,
			Class:     yc.Class,
			Pos:       yc.Pos.Vec(),
			Facing:    facing,
		})
	}

	for i, ych := range yl.Chests {
		item, err := ych.Item.Resolve()
		if err != nil {
			return nil, fmt.Errorf("chest %d: %w", i, err)
		}
		def.Chests = append(def.Chests, ChestPlacement{Item: item, Pos: ych.Pos.Vec()})
	}

	if def.Menu && !def.hasArchetype() {
		return nil, fmt.Errorf("%w: menu level without a Subplayer", ErrInvalid)
	}
	if !def.Menu && def.Exit == nil {
		return nil, fmt.Errorf("%w: level has no exit", ErrInvalid)
	}
	return def, nil
}

func (d *Definition) hasArchetype() bool {
	for _, c := range d.Characters {
		if c.Kind == entity.KindArchetype {
			return true
		}
	}
	return false
}

func (m YAMLMask) build(dir string) (*collision.Mask, error) {
	switch {
	case len(m.Rows) > 0 && m.File != "":
		return nil, fmt.Errorf("%w: mask has both rows and file", ErrInvalid)
	case len(m.Rows) > 0:
		cell := m.Cell
		if cell <= 0 {
			cell = core.ReferenceSize / len(m.Rows)
		}
		return collision.FromRows(m.Rows, cell, cell)
	case m.File != "":
		path := m.File
		if !filepath.IsAbs(path) && dir != "" {
			path = filepath.Join(dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("level: reading mask %s: %w", path, err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("level: decoding mask %s: %w", path, err)
		}
		threshold := m.Threshold
		if threshold == 0 {
			threshold = 127
		}
		return collision.FromImage(img, threshold), nil
	}
	return nil, fmt.Errorf("%w: missing mask", ErrInvalid)
}
