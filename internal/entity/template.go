package entity

import "github.com/google/uuid"

// DefaultSize is the sprite box used when a definition leaves it out.
var DefaultSize = Size{W: 24, H: 24}

// Template is the declarative description of a character, as decoded
// from level data.
type Template struct {
	Name     string   `yaml:"name"`
	Class    string   `yaml:"type"`
	Level    int      `yaml:"level"`
	MaxHP    int      `yaml:"max_hp"`
	MaxMana  int      `yaml:"max_mana"`
	Weakness []string `yaml:"weakness"`
	HPMult   float64  `yaml:"hp_mult"`
	ManaMult float64  `yaml:"mana_mult"`
	Dialogue string   `yaml:"dialogue"`
	Size     Size     `yaml:"size"`
	Sight    Size     `yaml:"sight_size"`

	// HasCollision defaults to true when nil.
	HasCollision *bool `yaml:"has_collision"`
	// Hostile overrides the kind's default when set.
	Hostile *bool `yaml:"is_hostile"`

	// Resolved attacks; filled in by the item registry, not decoded.
	Weapons []Attack `yaml:"-"`
	Spells  []Attack `yaml:"-"`
}

// New builds a character of the given kind. Every slice is copied so that
// two characters built from one template never share state.
func New(kind Kind, t Template) *Character {
	c := &Character{
		ID:           uuid.New(),
		Kind:         kind,
		Name:         t.Name,
		Class:        t.Class,
		Level:        max(t.Level, 1),
		MaxHP:        max(t.MaxHP, 0),
		MaxMana:      max(t.MaxMana, 0),
		Weakness:     cloneStrings(t.Weakness),
		Weapons:      cloneAttacks(t.Weapons),
		Spells:       cloneAttacks(t.Spells),
		HPMult:       t.HPMult,
		ManaMult:     t.ManaMult,
		HasCollision: true,
		Size:         t.Size,
		Sight:        t.Sight,
		Facing:       FacingRight,
	}
	if c.HPMult == 0 {
		c.HPMult = 1
	}
	if c.ManaMult == 0 {
		c.ManaMult = 1
	}
	if c.Size.W <= 0 || c.Size.H <= 0 {
		c.Size = DefaultSize
	}
	c.HP, c.Mana = c.MaxHP, c.MaxMana

	switch kind {
	case KindEnemy:
		c.Hostile = true
	case KindNPC:
		c.Dialogue = Paginate(t.Dialogue, DialogueWords)
		c.HasDialogue = len(c.Dialogue) > 0
	}
	if t.HasCollision != nil {
		c.HasCollision = *t.HasCollision
	}
	if t.Hostile != nil {
		c.Hostile = *t.Hostile
	}
	return c
}
