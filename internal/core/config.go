package core

// ReferenceSize is the side of the square reference resolution all level
// data is authored against.
const ReferenceSize = 512

// Display holds the ratios between the configured display size and the
// reference resolution. World coordinates are multiplied by these ratios so
// behaviour does not depend on the window size.
type Display struct {
	Width, Height int
	XRatio        float64
	YRatio        float64
	MinRatio      float64
	MaxRatio      float64
}

// NewDisplay computes display ratios for a width×height world.
func NewDisplay(width, height int) Display {
	if width <= 0 {
		width = ReferenceSize
	}
	if height <= 0 {
		height = ReferenceSize
	}
	w, h := float64(width), float64(height)
	return Display{
		Width:    width,
		Height:   height,
		XRatio:   w / ReferenceSize,
		YRatio:   h / ReferenceSize,
		MinRatio: min(w, h) / ReferenceSize,
		MaxRatio: max(w, h) / ReferenceSize,
	}
}

// Scale maps a reference-space point to world pixels.
func (d Display) Scale(x, y float64) Vec {
	return Vec{X: x * d.XRatio, Y: y * d.YRatio}
}

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}
