// Package game strings levels together into a campaign: the title menu,
// the class-selection level, the ordered levels and the completion
// screen. Progress is saved to a slot after every passed level.
package game

import (
	"fmt"

	"github.com/vovakirdan/tui-quest/internal/battle"
	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/engine"
	"github.com/vovakirdan/tui-quest/internal/entity"
	"github.com/vovakirdan/tui-quest/internal/level"
	"github.com/vovakirdan/tui-quest/internal/storage"
)

// Store is the persistence the campaign needs. *storage.Store satisfies it.
type Store interface {
	SaveGame(save *storage.Save) error
	LoadGame(slot string) (*storage.Save, error)
	RecordBattle(r storage.BattleRecord) (int64, error)
}

// Mode is the campaign screen currently in control.
type Mode int

const (
	ModeTitle Mode = iota
	ModePlaying
	ModeComplete
	ModeQuit
)

func (m Mode) String() string {
	switch m {
	case ModeTitle:
		return "Title"
	case ModePlaying:
		return "Playing"
	case ModeComplete:
		return "Complete"
	case ModeQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Title menu entries.
const (
	ItemNewGame = iota
	ItemLoadGame
	ItemQuit
)

var titleItems = [...]string{"New game", "Load game", "Quit"}

// Campaign is the top of the state stack.
type Campaign struct {
	ctx   *engine.Context
	defs  []*level.Definition
	store Store
	slot  string

	mode    Mode
	cursor  int
	hasSave bool
	notice  string

	player *entity.Player
	index  int
	level  *level.Level
	passed map[string]bool

	// Screen height seen by the last Render, for pointer hits.
	lastHeight int
}

// New opens the title menu. store may be nil, in which case nothing is
// persisted and Load game stays disabled.
func New(ctx *engine.Context, defs []*level.Definition, store Store, slot string) (*Campaign, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("game: campaign has no levels")
	}
	c := &Campaign{
		ctx:   ctx,
		defs:  defs,
		store: store,
		slot:  slot,

		lastHeight: 24,
	}
	if err := c.refreshSave(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Campaign) refreshSave() error {
	c.hasSave = false
	if c.store == nil {
		return nil
	}
	save, err := c.store.LoadGame(c.slot)
	if err != nil {
		return fmt.Errorf("game: cannot read save slot %q: %w", c.slot, err)
	}
	c.hasSave = save != nil
	return nil
}

// Mode returns the screen in control.
func (c *Campaign) Mode() Mode { return c.mode }

// Cursor returns the highlighted title entry.
func (c *Campaign) Cursor() int { return c.cursor }

// CanLoad reports whether the slot holds a save.
func (c *Campaign) CanLoad() bool { return c.hasSave }

// Player returns the current player, or nil before a game starts.
func (c *Campaign) Player() *entity.Player { return c.player }

// Level returns the running level, or nil.
func (c *Campaign) Level() *level.Level { return c.level }

// Slot returns the save slot name.
func (c *Campaign) Slot() string { return c.slot }

// Step advances whichever screen is in control by one tick.
func (c *Campaign) Step(in core.InputFrame) Mode {
	switch c.mode {
	case ModeTitle:
		c.stepTitle(in)
	case ModePlaying:
		c.stepPlaying(in)
	case ModeComplete:
		if in.Has(core.ActionQuit) {
			c.mode = ModeQuit
		} else if in.Has(core.ActionConfirm) || in.Pointer.Clicked {
			c.toTitle()
		}
	}
	return c.mode
}

func (c *Campaign) enabled(i int) bool {
	return i != ItemLoadGame || c.hasSave
}

func (c *Campaign) moveCursor(delta int) {
	for i := c.cursor + delta; i >= 0 && i < len(titleItems); i += delta {
		if c.enabled(i) {
			c.cursor = i
			return
		}
	}
}

func (c *Campaign) stepTitle(in core.InputFrame) {
	if in.Has(core.ActionQuit) {
		c.mode = ModeQuit
		return
	}
	if in.Pointer.Clicked {
		for i := range titleItems {
			if in.Pointer.Y == titleRow(i, c.lastHeight) && c.enabled(i) {
				c.cursor = i
				c.selectItem()
				return
			}
		}
	}
	switch {
	case in.Has(core.ActionUp):
		c.moveCursor(-1)
	case in.Has(core.ActionDown):
		c.moveCursor(1)
	case in.Has(core.ActionConfirm):
		c.selectItem()
	}
}

func (c *Campaign) selectItem() {
	switch c.cursor {
	case ItemNewGame:
		c.NewGame()
	case ItemLoadGame:
		if err := c.LoadGame(); err != nil {
			c.ctx.Log.Error("load failed", "slot", c.slot, "err", err)
			c.notice = "Could not load the saved game."
		}
	case ItemQuit:
		c.mode = ModeQuit
	}
}

// NewGame starts from the first level with a fresh player.
func (c *Campaign) NewGame() {
	c.player = entity.NewPlayer()
	c.passed = map[string]bool{}
	c.notice = ""
	c.ctx.Log.Info("new game", "slot", c.slot)
	c.enter(0)
}

// LoadGame restores the player from the slot and resumes at the first
// level not yet passed.
func (c *Campaign) LoadGame() error {
	if c.store == nil {
		return fmt.Errorf("game: no save store")
	}
	save, err := c.store.LoadGame(c.slot)
	if err != nil {
		return fmt.Errorf("game: cannot load slot %q: %w", c.slot, err)
	}
	if save == nil {
		c.hasSave = false
		return fmt.Errorf("game: slot %q is empty", c.slot)
	}

	c.player = entity.NewPlayer()
	c.player.Load(save.Player)
	c.passed = make(map[string]bool, len(save.Passed))
	for id, ok := range save.Passed {
		c.passed[id] = ok
	}
	c.notice = ""
	c.ctx.Log.Info("game loaded", "slot", c.slot, "class", c.player.Class, "level", c.player.Level)
	c.enter(c.nextUnpassed(0))
	return nil
}

func (c *Campaign) nextUnpassed(from int) int {
	for i := from; i < len(c.defs); i++ {
		if !c.passed[c.defs[i].ID] {
			return i
		}
	}
	return len(c.defs)
}

func (c *Campaign) enter(i int) {
	c.index = i
	if i >= len(c.defs) {
		c.complete()
		return
	}
	c.level = level.New(c.ctx, c.defs[i], c.player)
	c.level.OnBattleEnd(c.recordBattle)
	c.level.Enter()
	c.mode = ModePlaying
}

func (c *Campaign) stepPlaying(in core.InputFrame) {
	switch c.level.Step(in) {
	case level.StateQuit:
		c.mode = ModeQuit
	case level.StatePassed:
		c.passed[c.level.Definition().ID] = true
		c.save()
		c.enter(c.nextUnpassed(c.index + 1))
	}
}

func (c *Campaign) complete() {
	c.level = nil
	c.mode = ModeComplete
	c.ctx.Audio.Music("victory")
	c.ctx.Log.Info("campaign complete", "slot", c.slot, "level", c.player.Level)
}

func (c *Campaign) toTitle() {
	if err := c.refreshSave(); err != nil {
		c.ctx.Log.Error("save check failed", "err", err)
	}
	c.mode = ModeTitle
	c.cursor = ItemNewGame
	c.ctx.Audio.Stop()
}

func (c *Campaign) save() {
	if c.store == nil {
		return
	}
	err := c.store.SaveGame(&storage.Save{
		Slot:   c.slot,
		Player: c.player.Data(),
		Passed: c.passed,
	})
	if err != nil {
		c.ctx.Log.Error("save failed", "slot", c.slot, "err", err)
		c.notice = "Progress could not be saved."
		return
	}
	c.hasSave = true
	c.ctx.Log.Info("game saved", "slot", c.slot, "passed", len(c.passed))
}

func (c *Campaign) recordBattle(r level.BattleResult) {
	if c.store == nil {
		return
	}
	outcome := "quit"
	switch r.Phase {
	case battle.PhaseVictory:
		outcome = "victory"
	case battle.PhaseDefeat:
		outcome = "defeat"
	}
	_, err := c.store.RecordBattle(storage.BattleRecord{
		SessionID: r.SessionID,
		Slot:      c.slot,
		LevelID:   c.level.Definition().ID,
		Enemy:     r.Enemy,
		Outcome:   outcome,
		Turns:     r.Turns,
	})
	if err != nil {
		c.ctx.Log.Warn("battle not recorded", "session", r.SessionID, "err", err)
	}
}
