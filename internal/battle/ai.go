package battle

import (
	"math"

	"github.com/vovakirdan/tui-quest/internal/entity"
)

// lowHPRatio is the hp fraction at or below which an enemy heals itself.
const lowHPRatio = 0.2

// ChooseMove picks the enemy's counter-move with a greedy first-match
// policy:
//
//   - the first weapon whose damage reaches the target's hp is taken at once;
//   - otherwise weapons compete on damage*(1+crit/100)*levelFactor;
//   - among affordable spells, the first lethal one, or the first cure when
//     the enemy is at or below a fifth of its hp, is taken at once;
//   - otherwise spells compete on damage*(1.5 if weak)*levelFactor, so a
//     cure above that threshold scores zero.
//
// Only a strictly better score replaces the running best. With nothing
// usable the null attack is returned and the turn passes.
func ChooseMove(enemy, target *entity.Character) entity.Attack {
	lf := LevelFactor(enemy.Level, target.Level)
	best := entity.NullAttack
	bestScore := math.Inf(-1)

	for _, w := range enemy.Weapons {
		if w.Damage >= target.HP {
			return w
		}
		if score := w.ExpectedDamage() * lf; score > bestScore {
			best, bestScore = w, score
		}
	}

	lowHP := float64(enemy.HP) <= lowHPRatio*float64(enemy.MaxHP)
	for _, s := range enemy.Spells {
		if !enemy.CanCast(s) {
			continue
		}
		if s.IsCure() && lowHP {
			return s
		}
		if !s.IsCure() && s.Damage >= target.HP {
			return s
		}
		score := float64(s.Damage) * lf
		if target.WeakTo(s.Effect) {
			score *= WeaknessMultiplier
		}
		if score > bestScore {
			best, bestScore = s, score
		}
	}
	return best
}
