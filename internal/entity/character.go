package entity

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-quest/internal/core"
)

// Kind selects how a level treats a character on contact.
type Kind int

const (
	KindNPC       Kind = iota
	KindEnemy          // hostile until defeated
	KindArchetype      // a class presented on the class-selection level
)

func (k Kind) String() string {
	switch k {
	case KindNPC:
		return "NPC"
	case KindEnemy:
		return "Enemy"
	case KindArchetype:
		return "Archetype"
	default:
		return "Unknown"
	}
}

// Facing is the horizontal direction a sprite looks at.
type Facing string

const (
	FacingLeft  Facing = "left"
	FacingRight Facing = "right"
)

// Size is a width×height in world pixels.
type Size struct {
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

// DialogueWords is the number of words shown per dialogue page.
const DialogueWords = 20

// Character is any placed actor: NPC, enemy or class archetype. The
// player embeds one.
type Character struct {
	ID    uuid.UUID
	Kind  Kind
	Name  string
	Class string // knight, mage, archer or a sprite family for NPCs
	Level int

	HP, MaxHP     int
	Mana, MaxMana int
	Weakness      []string
	Weapons       []Attack
	Spells        []Attack

	// Growth multipliers applied on level-up.
	HPMult, ManaMult float64

	Hostile      bool
	HasDialogue  bool
	HasCollision bool
	Dead         bool

	Dialogue []string // pages
	Page     int

	Pos    core.Vec // top-left in world pixels
	Size   Size
	Sight  Size // extra contact area around the sprite
	Facing Facing
	Frame  int
}

// Rect is the sprite's bounding box.
func (c *Character) Rect() core.Rect {
	return core.RectAt(c.Pos, c.Size.W, c.Size.H)
}

// ContactRect is the area that triggers battles and dialogue. It is the
// sprite box grown by Sight.
func (c *Character) ContactRect() core.Rect {
	return c.Rect().Inflate(c.Sight.W, c.Sight.H)
}

// TakeDamage lowers hp. A hit that would reach zero kills the character,
// and a dead enemy stops being hostile.
func (c *Character) TakeDamage(dmg int) {
	if dmg < 0 {
		dmg = 0
	}
	if c.HP > dmg {
		c.HP -= dmg
		return
	}
	c.HP = 0
	c.Dead = true
	if c.Kind == KindEnemy {
		c.Hostile = false
	}
}

// Cure restores a fifth of max hp, capped at max hp.
func (c *Character) Cure() {
	healed := int(math.Round(float64(c.HP) + 0.2*float64(c.MaxHP)))
	c.HP = core.Clamp(healed, 0, c.MaxHP)
}

// SpendMana deducts cost, never going below zero.
func (c *Character) SpendMana(cost int) {
	c.Mana = core.Clamp(c.Mana-cost, 0, c.MaxMana)
}

// CanCast reports whether there is mana for a.
func (c *Character) CanCast(a Attack) bool {
	return !a.IsSpell() || a.Mana <= c.Mana
}

// WeakTo reports whether the elemental effect is in the weakness set.
func (c *Character) WeakTo(effect string) bool {
	return effect != "" && slices.Contains(c.Weakness, effect)
}

// Regenerate refills hp and mana.
func (c *Character) Regenerate() {
	c.HP, c.Mana = c.MaxHP, c.MaxMana
	c.Dead = false
}

// Turn sets facing.
func (c *Character) Turn(f Facing) {
	if f == FacingLeft || f == FacingRight {
		c.Facing = f
	}
}

// Talkable reports whether contact opens a dialogue.
func (c *Character) Talkable() bool {
	return !c.Hostile && c.HasDialogue && len(c.Dialogue) > 0
}

// AdvanceDialogue moves to the next page, wrapping to the first one after
// the last.
func (c *Character) AdvanceDialogue() {
	if len(c.Dialogue) == 0 {
		return
	}
	c.Page = (c.Page + 1) % len(c.Dialogue)
}

// CurrentPage returns the page on screen, or "".
func (c *Character) CurrentPage() string {
	if len(c.Dialogue) == 0 {
		return ""
	}
	return c.Dialogue[c.Page%len(c.Dialogue)]
}

// Clone returns a deep copy with its own slices and a fresh ID.
func (c *Character) Clone() *Character {
	cp := *c
	cp.ID = uuid.New()
	cp.Weakness = cloneStrings(c.Weakness)
	cp.Weapons = cloneAttacks(c.Weapons)
	cp.Spells = cloneAttacks(c.Spells)
	cp.Dialogue = cloneStrings(c.Dialogue)
	return &cp
}

func (c *Character) String() string {
	return fmt.Sprintf("%s lv.%d hp %d/%d mana %d/%d", c.Name, c.Level, c.HP, c.MaxHP, c.Mana, c.MaxMana)
}

// Paginate splits text into pages of at most words words.
func Paginate(text string, words int) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return []string{}
	}
	if words <= 0 {
		words = DialogueWords
	}
	pages := make([]string, 0, (len(fields)+words-1)/words)
	for start := 0; start < len(fields); start += words {
		end := min(start+words, len(fields))
		pages = append(pages, strings.Join(fields[start:end], " "))
	}
	return pages
}
