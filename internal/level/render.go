package level

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/entity"
)

// viewport maps the world (in pixels) onto screen cells below the HUD row.
type viewport struct {
	sw, sh int // map area in cells
	ww, wh float64
}

func (v viewport) world(cx, cy int) (float64, float64) {
	return (float64(cx) + 0.5) * v.ww / float64(v.sw), (float64(cy) + 0.5) * v.wh / float64(v.sh)
}

func (v viewport) cell(p core.Vec) (int, int) {
	return int(p.X * float64(v.sw) / v.ww), int(p.Y*float64(v.sh)/v.wh) + 1
}

func centre(r core.Rect) core.Vec {
	return core.Vec{X: float64(r.X) + float64(r.W)/2, Y: float64(r.Y) + float64(r.H)/2}
}

// Render draws the map, its occupants, the HUD and any overlay. During a
// battle the battle screen replaces the map.
func (l *Level) Render(dst *core.Screen) {
	if l.state == StateBattle && l.battle != nil {
		l.battle.Render(dst)
		return
	}
	if dst.Height() < 2 {
		return
	}
	v := viewport{
		sw: dst.Width(), sh: dst.Height() - 1,
		ww: float64(l.ctx.Display.Width), wh: float64(l.ctx.Display.Height),
	}
	pc := centre(l.player.Rect())
	fog := -1.0
	if l.def.Fog {
		fog = float64(l.ctx.Tuning.FogRadius) * l.ctx.Display.MinRatio
	}
	visible := func(p core.Vec) bool {
		return fog < 0 || math.Hypot(p.X-pc.X, p.Y-pc.Y) <= fog
	}

	for cy := 0; cy < v.sh; cy++ {
		for cx := 0; cx < v.sw; cx++ {
			wx, wy := v.world(cx, cy)
			if !visible(core.Vec{X: wx, Y: wy}) {
				continue
			}
			if l.mask.Get(int(wx), int(wy)) {
				dst.SetCell(cx, cy+1, '#', core.ColorWall)
			} else {
				dst.SetCell(cx, cy+1, '.', core.ColorFloor)
			}
		}
	}

	if l.def.Exit != nil && !l.def.Menu {
		exit := l.ctx.Scale(l.def.Exit.X, l.def.Exit.Y)
		if visible(exit) {
			x, y := v.cell(exit)
			dst.SetCell(x, y, '>', core.ColorBrightGreen)
		}
	}

	for _, o := range l.objects {
		c := centre(o.Rect())
		if !visible(c) {
			continue
		}
		x, y := v.cell(c)
		if o.Collidable() {
			dst.SetCell(x, y, '■', core.ColorYellow)
		} else {
			dst.SetCell(x, y, '□', core.ColorGray)
		}
	}

	for _, c := range l.characters {
		p := centre(c.Rect())
		if c.Dead || !visible(p) {
			continue
		}
		x, y := v.cell(p)
		r, color := characterGlyph(c)
		dst.SetCell(x, y, r, color)
		if c.Kind == entity.KindArchetype {
			dst.DrawTextColor(x-len([]rune(c.Name))/2, y+1, c.Name, core.ColorGray)
		}
	}

	px, py := v.cell(pc)
	dst.SetCell(px, py, '@', core.ColorBrightGreen)

	l.drawHUD(dst)
	switch {
	case l.state == StateInventory:
		l.drawInventory(dst)
	case l.state == StateDialogue && l.talking != nil:
		l.drawDialogue(dst, l.talking)
	case l.def.Menu:
		dst.DrawTextCentered(dst.Height()-1, " Walk up to a hero and press Enter ")
	}
}

func characterGlyph(c *entity.Character) (rune, core.Color) {
	name := c.Name
	if c.Kind == entity.KindArchetype && c.Class != "" {
		name = c.Class
	}
	r := '?'
	for _, ch := range name {
		r = unicode.ToUpper(ch)
		break
	}
	switch {
	case c.Hostile:
		return r, core.ColorBrightRed
	case c.Kind == entity.KindArchetype:
		return r, core.ColorBrightYellow
	default:
		return r, core.ColorBrightCyan
	}
}

func (l *Level) drawHUD(dst *core.Screen) {
	dst.DrawTextColor(0, 0, l.def.Name, core.ColorBrightYellow)
	p := l.player
	stats := fmt.Sprintf("%s lv.%d  HP %d/%d  Mana %d/%d", p.Name, p.Level, p.HP, p.MaxHP, p.Mana, p.MaxMana)
	dst.DrawText(dst.Width()-len([]rune(stats)), 0, stats)
}

func (l *Level) drawDialogue(dst *core.Screen, c *entity.Character) {
	w := dst.Width()
	lines := core.WrapText(c.CurrentPage(), max(w-4, 1))
	h := len(lines) + 3
	box := core.NewRect(0, dst.Height()-h, w, h)
	dst.DrawBoxColor(box, core.ColorCyan)
	dst.DrawTextColor(2, box.Y, " "+c.Name+" ", core.ColorBrightCyan)
	for i, line := range lines {
		dst.DrawText(2, box.Y+1+i, line)
	}
	more := fmt.Sprintf(" %d/%d Enter ", c.Page+1, len(c.Dialogue))
	dst.DrawTextColor(w-len(more)-1, box.Bottom()-1, more, core.ColorGray)
}

func (l *Level) drawInventory(dst *core.Screen) {
	p := l.player
	lines := []string{
		p.Name,
		fmt.Sprintf("lv. %d", p.Level),
		fmt.Sprintf("HP: %d/%d", p.HP, p.MaxHP),
		fmt.Sprintf("Mana: %d/%d", p.Mana, p.MaxMana),
		"",
		"Weapons",
	}
	for _, a := range p.Weapons {
		lines = append(lines, "  "+a.String())
	}
	lines = append(lines, "", "Spells")
	for _, a := range p.Spells {
		lines = append(lines, "  "+a.String())
	}
	if len(p.Weakness) > 0 {
		lines = append(lines, "", "Weak to: "+strings.Join(p.Weakness, ", "))
	}

	w := 4
	for _, s := range lines {
		w = max(w, len([]rune(s))+4)
	}
	w = min(w, dst.Width())
	h := min(len(lines)+2, dst.Height())
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
	dst.DrawBoxColor(box, core.ColorBrightYellow)
	dst.DrawTextColor(box.X+2, box.Y, " Inventory ", core.ColorBrightYellow)
	for i, s := range lines {
		if i >= h-2 {
			break
		}
		dst.DrawText(box.X+2, box.Y+1+i, s)
	}
}
