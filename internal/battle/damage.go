// Package battle resolves turn-based fights between the player and one
// enemy: the damage formula, the enemy's move selection and the session
// state machine that paces the two strikes of a turn.
package battle

import (
	"math"

	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/entity"
)

// Multipliers of the damage formula.
const (
	WeaknessMultiplier = 1.5
	AffinityMultiplier = 1.5
)

// Outcome is a fully resolved attack, computed when the move is picked
// and applied later when its animation starts.
type Outcome struct {
	Attack   entity.Attack
	Damage   int
	Critical bool
	Weak     bool // the spell's effect is in the defender's weakness set
	Cure     bool
}

// LevelFactor scales damage by a quarter for every five levels of
// difference, clamped to [0.25, 2].
func LevelFactor(attackerLevel, defenderLevel int) float64 {
	steps := math.Floor(float64(attackerLevel-defenderLevel) / 5)
	return core.ClampF(1+0.25*steps, 0.25, 2.0)
}

// Affinity reports whether class is trained with the attack: mages with
// spells, archers with bows, knights with anything but a bow.
func Affinity(class string, a entity.Attack) bool {
	switch class {
	case "mage":
		return a.Kind == entity.AttackSpell
	case "archer":
		return a.Kind == entity.AttackBow
	case "knight":
		return a.Kind != entity.AttackBow
	}
	return false
}

// Resolve rolls attack a from attacker against defender.
func Resolve(attacker, defender *entity.Character, a entity.Attack, src entity.Source) Outcome {
	out := Outcome{Attack: a}
	switch {
	case a.IsNull():
		return out
	case a.IsCure():
		out.Cure = true
		return out
	}

	raw, crit := a.Roll(src)
	out.Critical = crit
	mult := LevelFactor(attacker.Level, defender.Level)
	if a.IsSpell() && defender.WeakTo(a.Effect) {
		out.Weak = true
		mult *= WeaknessMultiplier
	}
	if Affinity(attacker.Class, a) {
		mult *= AffinityMultiplier
	}
	out.Damage = int(math.Round(float64(raw) * mult))
	return out
}

// Apply carries out a resolved outcome. Spells cost mana whether they
// heal or hit.
func Apply(o Outcome, attacker, defender *entity.Character) {
	if o.Attack.IsSpell() {
		attacker.SpendMana(o.Attack.Mana)
	}
	if o.Cure {
		attacker.Cure()
		return
	}
	if !o.Attack.IsNull() {
		defender.TakeDamage(o.Damage)
	}
}
