package entity

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-quest/internal/core"
)

// Object is a placed, non-character thing the player can bump into.
type Object interface {
	Rect() core.Rect
	Collidable() bool
	// Interact runs the one-shot contact effect and reports what happened.
	Interact(p *Player) Interaction
}

// Interaction describes the effect of touching an object.
type Interaction struct {
	Sound string  // audio key, empty for none
	Item  *Attack // granted item, if any
}

// Chest holds exactly one item and opens on first contact.
type Chest struct {
	ID     uuid.UUID
	Item   Attack
	Pos    core.Vec
	Size   Size
	Opened bool
}

// NewChest places a closed chest.
func NewChest(item Attack, pos core.Vec) *Chest {
	return &Chest{ID: uuid.New(), Item: item, Pos: pos, Size: Size{W: 24, H: 20}}
}

func (c *Chest) Rect() core.Rect { return core.RectAt(c.Pos, c.Size.W, c.Size.H) }

// Collidable reports whether the chest is still closed.
func (c *Chest) Collidable() bool { return !c.Opened }

// Interact opens the chest and hands its item to p. Later calls do nothing.
func (c *Chest) Interact(p *Player) Interaction {
	if c.Opened {
		return Interaction{}
	}
	c.Opened = true
	item := c.Item
	p.AddItem(item)
	return Interaction{Sound: "chest", Item: &item}
}
