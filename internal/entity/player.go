package entity

import (
	"math"

	"github.com/google/uuid"
)

// Defaults for a player that has not chosen a class yet.
const (
	DefaultPlayerName  = "???"
	DefaultPlayerMaxHP = 10
)

// Player is the controlled character. It outlives levels and keeps the
// snapshot taken at level entry for death rollback.
type Player struct {
	Character
	snapshot *Data
}

// NewPlayer returns a classless player.
func NewPlayer() *Player {
	p := &Player{Character: Character{
		ID:           uuid.New(),
		Name:         DefaultPlayerName,
		MaxHP:        DefaultPlayerMaxHP,
		HP:           DefaultPlayerMaxHP,
		HPMult:       1,
		ManaMult:     1,
		Weakness:     []string{},
		Weapons:      []Attack{},
		Spells:       []Attack{},
		HasCollision: true,
		Size:         DefaultSize,
		Facing:       FacingRight,
	}}
	return p
}

// SetClass copies an archetype's full stat and equipment block onto the
// player and refills hp and mana. Position is kept.
func (p *Player) SetClass(a *Character) {
	p.Name = a.Name
	p.Class = a.Class
	p.Level = a.Level
	p.MaxHP, p.HP = a.MaxHP, a.MaxHP
	p.MaxMana, p.Mana = a.MaxMana, a.MaxMana
	p.HPMult, p.ManaMult = a.HPMult, a.ManaMult
	p.Weakness = cloneStrings(a.Weakness)
	p.Weapons = cloneAttacks(a.Weapons)
	p.Spells = cloneAttacks(a.Spells)
	p.Dead = false
	if a.Size.W > 0 && a.Size.H > 0 {
		// Keep the sprite centred where the old one was.
		cx := p.Pos.X + float64(p.Size.W)/2
		cy := p.Pos.Y + float64(p.Size.H)/2
		p.Size = a.Size
		p.Pos.X = cx - float64(a.Size.W)/2
		p.Pos.Y = cy - float64(a.Size.H)/2
	}
}

// AddItem puts a chest item into the right inventory list.
func (p *Player) AddItem(a Attack) {
	if a.IsSpell() {
		p.Spells = append(p.Spells, a)
		return
	}
	p.Weapons = append(p.Weapons, a)
}

// LevelUp grows max hp and max mana by the class multipliers. Current hp
// and mana are not refilled.
func (p *Player) LevelUp() {
	p.MaxHP = max(7, int(math.Round(float64(p.MaxHP)+15*p.HPMult)))
	p.MaxMana = max(1, int(math.Round(float64(p.MaxMana)+2*p.ManaMult)))
	p.Level++
}

// SaveState snapshots the stat block for Reset.
func (p *Player) SaveState() {
	d := p.Data()
	p.snapshot = &d
}

// Reset rolls the stat block back to the last SaveState. Without a
// snapshot it only revives the player.
func (p *Player) Reset() {
	if p.snapshot != nil {
		p.Load(*p.snapshot)
	}
	p.Dead = false
}

// Data is the persisted player stat and equipment block.
type Data struct {
	Name     string   `json:"name"`
	Class    string   `json:"class"`
	Level    int      `json:"level"`
	HP       int      `json:"hp"`
	MaxHP    int      `json:"max_hp"`
	Mana     int      `json:"mana"`
	MaxMana  int      `json:"max_mana"`
	HPMult   float64  `json:"hp_mult"`
	ManaMult float64  `json:"mana_mult"`
	Weakness []string `json:"weakness"`
	Weapons  []Attack `json:"weapons"`
	Spells   []Attack `json:"spells"`
}

// Data returns a copy of the stat block.
func (p *Player) Data() Data {
	return Data{
		Name:     p.Name,
		Class:    p.Class,
		Level:    p.Level,
		HP:       p.HP,
		MaxHP:    p.MaxHP,
		Mana:     p.Mana,
		MaxMana:  p.MaxMana,
		HPMult:   p.HPMult,
		ManaMult: p.ManaMult,
		Weakness: cloneStrings(p.Weakness),
		Weapons:  cloneAttacks(p.Weapons),
		Spells:   cloneAttacks(p.Spells),
	}
}

// Load replaces the stat block. Values are clamped so the hp and mana
// bounds hold even for hand-edited saves.
func (p *Player) Load(d Data) {
	p.Name = d.Name
	p.Class = d.Class
	p.Level = d.Level
	p.MaxHP = max(d.MaxHP, 0)
	p.MaxMana = max(d.MaxMana, 0)
	p.HP = min(max(d.HP, 0), p.MaxHP)
	p.Mana = min(max(d.Mana, 0), p.MaxMana)
	p.HPMult, p.ManaMult = d.HPMult, d.ManaMult
	p.Weakness = cloneStrings(d.Weakness)
	p.Weapons = cloneAttacks(d.Weapons)
	p.Spells = cloneAttacks(d.Spells)
	p.Dead = false
}
