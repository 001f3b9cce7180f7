// Package engine holds the explicitly constructed context shared by the
// level and battle state machines: display ratios, the sound bank, the
// logger, the random source and gameplay tuning.
package engine

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-quest/internal/audio"
	"github.com/vovakirdan/tui-quest/internal/core"
)

// Tuning groups gameplay constants that settings may override.
type Tuning struct {
	WalkSpeed float64 // reference pixels per tick
	// ImpactHold is the number of ticks between the end of the player's
	// strike animation and the start of the enemy's.
	ImpactHold int
	FogRadius  int // reference pixels
}

// DefaultTuning matches the original pacing at 60 ticks per second.
func DefaultTuning() Tuning {
	return Tuning{WalkSpeed: 2, ImpactHold: 30, FogRadius: 96}
}

// Context is passed down to every level and battle.
type Context struct {
	Display core.Display
	Audio   audio.Bank
	Log     *log.Logger
	Rand    *rand.Rand
	Tuning  Tuning
}

// Option configures a Context.
type Option func(*Context)

// WithDisplay sets the world size.
func WithDisplay(d core.Display) Option { return func(c *Context) { c.Display = d } }

// WithAudio sets the sound bank.
func WithAudio(b audio.Bank) Option { return func(c *Context) { c.Audio = b } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(c *Context) { c.Log = l } }

// WithSeed seeds the random source. Zero uses the current time.
func WithSeed(seed int64) Option {
	return func(c *Context) {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		c.Rand = rand.New(rand.NewSource(seed))
	}
}

// WithTuning overrides gameplay tuning; zero fields keep their defaults.
func WithTuning(t Tuning) Option {
	return func(c *Context) {
		if t.WalkSpeed > 0 {
			c.Tuning.WalkSpeed = t.WalkSpeed
		}
		if t.ImpactHold > 0 {
			c.Tuning.ImpactHold = t.ImpactHold
		}
		if t.FogRadius > 0 {
			c.Tuning.FogRadius = t.FogRadius
		}
	}
}

// New builds a context. Without options it uses the reference display,
// a silent sound bank, a discarding logger and a time-seeded source.
func New(opts ...Option) *Context {
	c := &Context{
		Display: core.NewDisplay(core.ReferenceSize, core.ReferenceSize),
		Audio:   audio.Nop{},
		Log:     log.New(io.Discard),
		Tuning:  DefaultTuning(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Rand == nil {
		WithSeed(0)(c)
	}
	return c
}

// Scale maps a reference-space point to world pixels.
func (c *Context) Scale(x, y float64) core.Vec {
	return c.Display.Scale(x, y)
}
