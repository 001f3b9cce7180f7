// Package movement turns directional input into a candidate position.
// The controller never moves anything itself: the level decides whether
// the candidate is committed.
package movement

import (
	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/entity"
)

// DefaultWalkSpeed is the reference-resolution speed in pixels per tick.
const DefaultWalkSpeed = 2

// Controller holds the per-tick movement state of one entity.
type Controller struct {
	speed  float64
	facing entity.Facing
	delta  core.Vec
}

// New returns a controller moving walkSpeed reference pixels per tick,
// scaled by the display's larger ratio.
func New(walkSpeed float64, display core.Display) *Controller {
	if walkSpeed <= 0 {
		walkSpeed = DefaultWalkSpeed
	}
	ratio := display.MaxRatio
	if ratio <= 0 {
		ratio = 1
	}
	return &Controller{speed: walkSpeed * ratio, facing: entity.FacingRight}
}

// Speed returns the per-tick displacement magnitude.
func (c *Controller) Speed() float64 { return c.speed }

// Next reads the held directions and returns the top-left position the
// entity would occupy after this tick. Opposite directions cancel. Left
// is read before right, so right wins facing when both are held. The
// displacement always has magnitude Speed, diagonals included.
func (c *Controller) Next(in core.InputFrame, pos core.Vec) core.Vec {
	var d core.Vec
	if in.Down(core.ActionLeft) {
		c.facing = entity.FacingLeft
		d.X--
	}
	if in.Down(core.ActionRight) {
		c.facing = entity.FacingRight
		d.X++
	}
	if in.Down(core.ActionDown) {
		d.Y++
	}
	if in.Down(core.ActionUp) {
		d.Y--
	}
	if n := d.Len(); n != 0 {
		d = d.Scale(c.speed / n)
	}
	c.delta = d
	return pos.Add(d)
}

// Moving reports whether the last Next produced a displacement.
func (c *Controller) Moving() bool { return !c.delta.IsZero() }

// Facing returns the last horizontal direction pressed.
func (c *Controller) Facing() entity.Facing { return c.facing }

// SetFacing overrides the facing, e.g. when a level places the player.
func (c *Controller) SetFacing(f entity.Facing) { c.facing = f }

// Displacement returns the vector computed by the last Next.
func (c *Controller) Displacement() core.Vec { return c.delta }

// CanMove is the commit gate: the current mode must allow movement and
// the candidate must not collide.
func CanMove(modeAllows, collides bool) bool {
	return modeAllows && !collides
}
