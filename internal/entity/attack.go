// Package entity holds the characters, attacks and objects that populate a
// level. Behaviour is selected by tags (Kind, AttackKind) and capability
// flags rather than by type hierarchy.
package entity

import (
	"fmt"
	"strings"
)

// Source is the randomness used for critical-hit rolls.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// AttackKind is the variant tag of an Attack.
type AttackKind int

const (
	AttackNone  AttackKind = iota // the null attack: the turn passes
	AttackMelee                   // blade, axe, staff...
	AttackBow
	AttackSpell
	AttackCure
)

var attackKindNames = map[AttackKind]string{
	AttackNone:  "none",
	AttackMelee: "melee",
	AttackBow:   "bow",
	AttackSpell: "spell",
	AttackCure:  "cure",
}

func (k AttackKind) String() string {
	if s, ok := attackKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("AttackKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k AttackKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *AttackKind) UnmarshalText(b []byte) error {
	s := strings.ToLower(string(b))
	for kind, name := range attackKindNames {
		if name == s {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("entity: unknown attack kind %q", s)
}

// Attack is a weapon or a spell.
type Attack struct {
	Kind   AttackKind `json:"kind"`
	Name   string     `json:"name"`
	Type   string     `json:"type"`             // sprite family, e.g. "spada", "arco", "fuoco"
	Damage int        `json:"damage"`           // base damage before multipliers
	Crit   int        `json:"crit"`             // critical chance in percent
	Effect string     `json:"effect,omitempty"` // elemental tag, spells only
	Mana   int        `json:"mana,omitempty"`   // cost, spells only
	Frames int        `json:"frames"`
	// FrameMult is how many ticks each animation frame is held.
	FrameMult int `json:"frame_mult"`
}

// NullAttack is used when a combatant has nothing it can use.
var NullAttack = Attack{Kind: AttackNone, Name: "Wait"}

// IsNull reports whether a is the null attack.
func (a Attack) IsNull() bool { return a.Kind == AttackNone }

// IsSpell reports whether a costs mana.
func (a Attack) IsSpell() bool { return a.Kind == AttackSpell || a.Kind == AttackCure }

// IsCure reports whether a heals its user instead of dealing damage.
func (a Attack) IsCure() bool { return a.Kind == AttackCure }

// Duration is the number of ticks the strike animation lasts.
func (a Attack) Duration() int {
	return max(a.Frames, 1) * max(a.FrameMult, 1)
}

// Roll resolves one attack roll. A uniform 1..100 roll at or below Crit
// doubles the damage.
func (a Attack) Roll(src Source) (damage int, critical bool) {
	if a.IsNull() || a.IsCure() {
		return 0, false
	}
	if a.Crit > 0 && src.Intn(100)+1 <= a.Crit {
		return a.Damage * 2, true
	}
	return a.Damage, false
}

// ExpectedDamage is damage weighted by critical chance, the figure the
// enemy AI ranks weapons by.
func (a Attack) ExpectedDamage() float64 {
	return float64(a.Damage) * (1 + float64(a.Crit)/100)
}

func (a Attack) String() string {
	if a.IsSpell() {
		return fmt.Sprintf("%s (%s, dmg %d, mana %d)", a.Name, a.Effect, a.Damage, a.Mana)
	}
	return fmt.Sprintf("%s (dmg %d, crit %d%%)", a.Name, a.Damage, a.Crit)
}

func cloneAttacks(src []Attack) []Attack {
	if len(src) == 0 {
		return []Attack{}
	}
	return append([]Attack(nil), src...)
}

func cloneStrings(src []string) []string {
	if len(src) == 0 {
		return []string{}
	}
	return append([]string(nil), src...)
}
