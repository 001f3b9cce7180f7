package game

import (
	"fmt"

	"github.com/vovakirdan/tui-quest/internal/core"
)

const gameTitle = "T U I   Q U E S T"

// titleRow is the screen row of title entry i.
func titleRow(i, height int) int {
	return height/2 + i*2
}

// Render draws the screen in control.
func (c *Campaign) Render(dst *core.Screen) {
	c.lastHeight = dst.Height()
	switch c.mode {
	case ModePlaying:
		c.level.Render(dst)
	case ModeComplete:
		c.renderComplete(dst)
	default:
		c.renderTitle(dst)
	}
}

func (c *Campaign) renderTitle(dst *core.Screen) {
	dst.Clear()
	h := dst.Height()
	drawCentered(dst, h/2-4, gameTitle, core.ColorBrightYellow)
	drawCentered(dst, h/2-2, "slot: "+c.slot, core.ColorGray)

	for i, label := range titleItems {
		color := core.ColorWhite
		prefix := "  "
		switch {
		case !c.enabled(i):
			color = core.ColorGray
		case i == c.cursor:
			color = core.ColorBrightCyan
			prefix = "> "
		}
		drawCentered(dst, titleRow(i, h), prefix+label, color)
	}

	if c.notice != "" {
		drawCentered(dst, titleRow(len(titleItems), h)+1, c.notice, core.ColorRed)
	}
	drawCentered(dst, h-1, "Up/Down: Navigate  |  Enter: Select  |  Q: Quit", core.ColorGray)
}

func (c *Campaign) renderComplete(dst *core.Screen) {
	dst.Clear()
	h := dst.Height()
	drawCentered(dst, h/2-3, "The quest is complete!", core.ColorBrightYellow)
	if p := c.player; p != nil {
		drawCentered(dst, h/2-1, fmt.Sprintf("%s the %s", p.Name, p.Class), core.ColorWhite)
		drawCentered(dst, h/2, fmt.Sprintf("Level %d  HP %d/%d  Mana %d/%d", p.Level, p.HP, p.MaxHP, p.Mana, p.MaxMana), core.ColorWhite)
	}
	drawCentered(dst, h/2+2, "Press Enter", core.ColorGray)
}

func drawCentered(dst *core.Screen, y int, text string, color core.Color) {
	x := (dst.Width() - len([]rune(text))) / 2
	if x < 0 {
		x = 0
	}
	dst.DrawTextColor(x, y, text, color)
}
