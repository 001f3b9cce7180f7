package config

// Pace is a named battle pacing preset.
type Pace string

const (
	PaceSlow   Pace = "slow"
	PaceNormal Pace = "normal"
	PaceFast   Pace = "fast"
)

// Valid reports whether p is a known preset.
func (p Pace) Valid() bool {
	switch p {
	case PaceSlow, PaceNormal, PaceFast:
		return true
	}
	return false
}

// ImpactHold returns the pause between the two strikes of a battle turn,
// in ticks at the given frame rate. Normal is half a second.
func (p Pace) ImpactHold(fps int) int {
	if fps <= 0 {
		fps = 60
	}
	var hold int
	switch p {
	case PaceSlow:
		hold = fps
	case PaceFast:
		hold = fps / 4
	default:
		hold = fps / 2
	}
	return max(hold, 1)
}
