package level

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-quest/internal/entity"
	"github.com/vovakirdan/tui-quest/internal/registry"
)

func TestDefaultCampaign(t *testing.T) {
	defs, err := Default()
	require.NoError(t, err)
	require.Len(t, defs, 4)

	menu := defs[0]
	assert.True(t, menu.Menu)
	require.Len(t, menu.Characters, 3)
	classes := []string{}
	for _, c := range menu.Characters {
		assert.Equal(t, entity.KindArchetype, c.Kind)
		classes = append(classes, c.Template.Class)
	}
	assert.ElementsMatch(t, []string{"knight", "mage", "archer"}, classes)

	maze := defs[1]
	require.NotNil(t, maze.Exit)
	require.NotNil(t, maze.Mask)
	assert.Equal(t, 512, maze.Mask.Width())
	require.Len(t, maze.Chests, 1)
	assert.Equal(t, entity.AttackSpell, maze.Chests[0].Item.Kind)

	for _, d := range defs {
		x, y := d.Start.Round()
		assert.False(t, d.Mask.Get(x, y), "%s starts inside a wall", d.ID)
	}
}

func TestDefaultCampaignItems(t *testing.T) {
	defs, err := Default()
	require.NoError(t, err)

	var archer Placement
	for _, c := range defs[0].Characters {
		if c.Template.Class == "archer" {
			archer = c
		}
	}
	require.NotEmpty(t, archer.Template.Weapons)
	assert.Equal(t, entity.AttackBow, archer.Template.Weapons[0].Kind)
	require.NotEmpty(t, archer.Template.Spells)
	assert.Equal(t, entity.AttackCure, archer.Template.Spells[0].Kind)
}

func TestSpawnIsFresh(t *testing.T) {
	defs, err := Default()
	require.NoError(t, err)
	p := defs[1].Characters[1] // the goblin

	a, b := p.Spawn(), p.Spawn()
	a.Weapons[0].Damage = 999
	a.TakeDamage(1000)
	assert.NotEqual(t, 999, b.Weapons[0].Damage)
	assert.False(t, b.Dead)
	assert.True(t, b.Hostile)
}

func TestParseErrors(t *testing.T) {
	const mask = `
    mask:
      cell: 256
      rows: ["#.", ".."]`

	tests := []struct {
		name string
		yaml string
		is   error
	}{
		{"empty", `levels: []`, ErrInvalid},
		{"no mask", `
levels:
  - id: a
    exit: [1, 1]`, ErrInvalid},
		{"no exit", `
levels:
  - id: a` + mask, ErrInvalid},
		{"unknown character", `
levels:
  - id: a
    exit: [1, 1]` + mask + `
    characters:
      - class: Dragon
        args: {name: X, max_hp: 3}`, registry.ErrUnknown},
		{"unknown item", `
levels:
  - id: a
    exit: [1, 1]` + mask + `
    chests:
      - pos: [10, 10]
        item: {class: Bazooka, args: {name: Boom}}`, registry.ErrUnknown},
		{"enemy without hp", `
levels:
  - id: a
    exit: [1, 1]` + mask + `
    characters:
      - class: Enemy
        args: {name: Ghost}`, nil},
		{"bad facing", `
levels:
  - id: a
    exit: [1, 1]` + mask + `
    characters:
      - class: NPC
        facing: up
        args: {name: Bob}`, ErrInvalid},
		{"duplicate id", `
levels:
  - id: a
    exit: [1, 1]` + mask + `
  - id: a
    exit: [1, 1]` + mask, ErrInvalid},
		{"menu without heroes", `
levels:
  - id: a
    menu: true` + mask, ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), "")
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestParseMaskFile(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	img.Set(0, 0, color.NRGBA{A: 255})
	f, err := os.Create(filepath.Join(dir, "mask.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	data := []byte(`
levels:
  - id: png
    exit: [4, 4]
    mask: {file: mask.png}
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), data, 0o644))

	defs, err := LoadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.True(t, defs[0].Mask.Get(0, 0))
	assert.Equal(t, 1, defs[0].Mask.Count())
}

func TestLoadCustomPathMissing(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestCatalogKeys(t *testing.T) {
	assert.Equal(t, []string{"Character", "Enemy", "NPC", "Subplayer"}, Characters.List())
	assert.Equal(t, []string{"PlayerSpell", "PlayerWeapon", "Spell", "Weapon"}, Items.List())
}
