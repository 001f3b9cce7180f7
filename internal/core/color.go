package core

// Color is the foreground of a screen cell. The platform layer decides
// how each value is drawn.
type Color uint8

// Base terminal colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Map and battle roles.
const (
	ColorWall Color = iota + ColorGray + 1
	ColorFloor
	ColorHP
	ColorMana
)

// effectColors tints spell strikes by their elemental effect.
var effectColors = map[string]Color{
	"fuoco":    ColorOrange,
	"ghiaccio": ColorBrightCyan,
	"fulmine":  ColorBrightYellow,
	"veleno":   ColorGreen,
	"luce":     ColorBrightWhite,
}

// EffectColor returns the strike color of a spell effect. Unknown
// effects are magenta.
func EffectColor(effect string) Color {
	if c, ok := effectColors[effect]; ok {
		return c
	}
	return ColorMagenta
}
