package battle

import (
	"fmt"

	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/entity"
)

const panelHeight = 9

// Layout holds the clickable regions of the action menu, in screen cells.
type Layout struct {
	Panel   core.Rect
	Headers [2]core.Rect // indexed by Category
	Items   []core.Rect
}

// ComputeLayout places the action menu at the bottom of a w×h screen
// with room for up to n attacks.
func ComputeLayout(w, h, n int) Layout {
	panelH := min(panelHeight, h)
	panel := core.NewRect(0, h-panelH, w, panelH)
	half := w / 2
	l := Layout{Panel: panel}
	l.Headers[CategoryWeapons] = core.NewRect(1, panel.Y+1, max(half-1, 0), 1)
	l.Headers[CategorySpells] = core.NewRect(half, panel.Y+1, max(w-half-1, 0), 1)

	rows := max(panelH-4, 0)
	for i := 0; i < min(n, rows); i++ {
		l.Items = append(l.Items, core.NewRect(2, panel.Y+3+i, max(w-4, 0), 1))
	}
	return l
}

// Layout returns the regions of the last Render.
func (s *Session) Layout() Layout { return s.layout }

// Render draws both combatants, the strike in flight, the status line and
// the action menu. It also records the layout used for pointer hits.
func (s *Session) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	items := s.list(s.category)
	s.layout = ComputeLayout(w, h, len(items))

	s.drawStats(dst, 1, &s.player.Character, core.ColorBrightGreen)
	s.drawStats(dst, w/2+1, s.enemy, core.ColorBrightRed)

	row := max((h-panelHeight)/2+1, 5)
	px, ex := w/4, 3*w/4
	dst.SetCell(px, row, glyph(&s.player.Character, '@'), core.ColorBrightGreen)
	dst.SetCell(ex, row, glyph(s.enemy, []rune(s.enemy.Name + "E")[0]), core.ColorBrightRed)

	switch s.phase {
	case PhasePlayerAnimating:
		drawStrike(dst, s.playerAnim, px, ex, row)
	case PhaseEnemyAnimating:
		drawStrike(dst, s.enemyAnim, ex, px, row)
	}

	if s.message != "" {
		dst.DrawTextCentered(s.layout.Panel.Y-1, s.message)
	}
	s.drawPanel(dst, items)
}

func glyph(c *entity.Character, r rune) rune {
	if c.Dead {
		return 'x'
	}
	return r
}

func (s *Session) drawStats(dst *core.Screen, x int, c *entity.Character, color core.Color) {
	dst.DrawTextColor(x, 0, fmt.Sprintf("%s lv.%d", c.Name, c.Level), color)
	dst.DrawText(x, 1, "HP")
	dst.DrawBar(x+5, 1, 12, c.HP, c.MaxHP, core.ColorHP)
	dst.DrawText(x+18, 1, fmt.Sprintf("%d/%d", c.HP, c.MaxHP))
	if c.MaxMana > 0 {
		dst.DrawText(x, 2, "Mana")
		dst.DrawBar(x+5, 2, 12, c.Mana, c.MaxMana, core.ColorMana)
		dst.DrawText(x+18, 2, fmt.Sprintf("%d/%d", c.Mana, c.MaxMana))
	}
}

func drawStrike(dst *core.Screen, a *animation, from, to, row int) {
	if a == nil || a.outcome.Attack.IsNull() {
		return
	}
	if a.outcome.Cure {
		dst.SetCell(from, row-1, '+', core.ColorBrightGreen)
		return
	}
	var r rune
	var c core.Color
	switch a.outcome.Attack.Kind {
	case entity.AttackBow:
		r, c = '-', core.ColorYellow
	case entity.AttackSpell:
		r, c = '*', core.EffectColor(a.outcome.Attack.Effect)
	default:
		r, c = '/', core.ColorWhite
	}
	progress := float64(a.frame) / float64(max(a.frames, 1))
	x := from + int(float64(to-from)*progress)
	dst.SetCell(x, row, r, c)
}

func (s *Session) drawPanel(dst *core.Screen, items []entity.Attack) {
	l := s.layout
	dst.DrawBox(l.Panel)
	for i, r := range l.Headers {
		cat := Category(i)
		label := cat.String()
		color := core.ColorGray
		if cat == s.category {
			label = "[" + label + "]"
			color = core.ColorBrightYellow
		}
		dst.DrawTextColor(r.X+(r.W-len(label))/2, r.Y, label, color)
	}

	if s.phase == PhaseResolved {
		dst.DrawTextCentered(l.Panel.Y+l.Panel.H/2, "Press Enter to continue")
		return
	}
	if len(items) == 0 {
		dst.DrawTextColor(2, l.Panel.Y+3, "(nothing here)", core.ColorGray)
		return
	}
	for i, r := range l.Items {
		a := items[i]
		color := core.ColorDefault
		if !s.player.CanCast(a) {
			color = core.ColorGray
		}
		prefix := "  "
		if i == s.cursor && s.phase == PhaseChoosing {
			prefix = "> "
			color = core.ColorBrightWhite
		}
		dst.DrawTextColor(r.X, r.Y, prefix+describe(a), color)
	}
}

func describe(a entity.Attack) string {
	switch {
	case a.IsCure():
		return fmt.Sprintf("%-14s cure      mana %d", a.Name, a.Mana)
	case a.IsSpell():
		return fmt.Sprintf("%-14s dmg %-4d  mana %d  %s", a.Name, a.Damage, a.Mana, a.Effect)
	}
	return fmt.Sprintf("%-14s dmg %-4d  crit %d%%", a.Name, a.Damage, a.Crit)
}
