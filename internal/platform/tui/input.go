package tui

import (
	"github.com/vovakirdan/tui-quest/internal/core"
)

// Sampler accumulates key and mouse events between ticks and hands the
// game one InputFrame per tick.
//
// Terminals report presses and auto-repeats but never releases, so a
// direction stays held for a number of ticks after its last event.
type Sampler struct {
	decay int
	held  map[core.Action]int
	frame core.InputFrame
}

// NewSampler creates a sampler holding directions for decay ticks.
func NewSampler(decay int) *Sampler {
	return &Sampler{
		decay: max(decay, 1),
		held:  make(map[core.Action]int),
		frame: core.NewInputFrame(),
	}
}

var opposite = map[core.Action]core.Action{
	core.ActionUp:    core.ActionDown,
	core.ActionDown:  core.ActionUp,
	core.ActionLeft:  core.ActionRight,
	core.ActionRight: core.ActionLeft,
}

// Key records a press or repeat of a.
func (s *Sampler) Key(a core.Action) {
	if a == core.ActionNone {
		return
	}
	s.frame.Set(a)
	if isDirection(a) {
		s.held[a] = s.decay
		delete(s.held, opposite[a])
	}
}

// Click records a left click at a screen cell.
func (s *Sampler) Click(x, y int) {
	s.frame.Click(x, y)
}

// Release drops every held direction.
func (s *Sampler) Release() {
	clear(s.held)
}

// Sample returns the frame for this tick and starts the next one.
func (s *Sampler) Sample() core.InputFrame {
	f := s.frame.Clone()
	for a, n := range s.held {
		f.Hold(a)
		if n <= 1 {
			delete(s.held, a)
		} else {
			s.held[a] = n - 1
		}
	}
	s.frame.Clear()
	return f
}
