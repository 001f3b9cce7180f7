// Package level runs one level: spawning from a Definition, exploration
// with mask-based movement, dialogue, the inventory overlay, chest
// pickup, the class-selection variant and the battles pushed on top of
// exploration.
package level

import (
	"math"

	"github.com/vovakirdan/tui-quest/internal/battle"
	"github.com/vovakirdan/tui-quest/internal/collision"
	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/engine"
	"github.com/vovakirdan/tui-quest/internal/entity"
	"github.com/vovakirdan/tui-quest/internal/movement"
)

// State is the level mode.
type State int

const (
	StateExploring State = iota
	StateInventory
	StateDialogue
	StateBattle
	StatePassed
	StateQuit
)

func (s State) String() string {
	switch s {
	case StateExploring:
		return "Exploring"
	case StateInventory:
		return "InInventory"
	case StateDialogue:
		return "InDialogue"
	case StateBattle:
		return "InBattle"
	case StatePassed:
		return "Passed"
	case StateQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// battleMusic is played while a battle is on top of the level.
const battleMusic = "battle"

// Level is a live instance of a Definition. It owns the characters and
// objects it spawns; the player is borrowed.
type Level struct {
	def    *Definition
	ctx    *engine.Context
	player *entity.Player
	move   *movement.Controller

	mask       *collision.Mask // boundary, in world pixels
	playerMask *collision.Mask

	characters []*entity.Character
	objects    []entity.Object

	state   State
	talking *entity.Character
	battle  *battle.Session
	foe     *entity.Character

	// Positions before the current battle.
	savedPlayer core.Vec
	savedFoe    core.Vec
	savedFacing [2]entity.Facing

	frame    int
	restarts int

	onBattle func(BattleResult)
}

// BattleResult describes a battle that just ended.
type BattleResult struct {
	SessionID string
	Enemy     string
	Phase     battle.Phase
	Turns     int
}

// OnBattleEnd registers fn to be called whenever a battle ends.
func (l *Level) OnBattleEnd(fn func(BattleResult)) { l.onBattle = fn }

// New prepares a level. Call Enter before the first Step.
func New(ctx *engine.Context, def *Definition, player *entity.Player) *Level {
	l := &Level{
		def:    def,
		ctx:    ctx,
		player: player,
		move:   movement.New(ctx.Tuning.WalkSpeed, ctx.Display),
	}
	if def.Mask != nil {
		l.mask = def.Mask.Scale(ctx.Display.XRatio, ctx.Display.YRatio)
	}
	return l
}

// Definition returns the level data.
func (l *Level) Definition() *Definition { return l.def }

// State returns the current mode.
func (l *Level) State() State { return l.state }

// Characters returns the live characters.
func (l *Level) Characters() []*entity.Character { return l.characters }

// Objects returns the live objects.
func (l *Level) Objects() []entity.Object { return l.objects }

// Battle returns the running battle, or nil.
func (l *Level) Battle() *battle.Session { return l.battle }

// Restarts returns how many times the player died here.
func (l *Level) Restarts() int { return l.restarts }

// Enter respawns everything, refills the player and snapshots it for
// death rollback.
func (l *Level) Enter() {
	l.spawn()
	l.player.Regenerate()
	l.player.SaveState()
	l.placePlayer()
	if l.def.Music != "" {
		l.ctx.Audio.Music(l.def.Music)
	}
	l.ctx.Log.Info("level entered", "level", l.def.ID, "player", l.player.Name, "hp", l.player.HP)
}

// Restart is the death recovery: a fresh level and the player as it was
// on entry.
func (l *Level) Restart() {
	l.restarts++
	l.spawn()
	l.player.Reset()
	l.placePlayer()
	if l.def.Music != "" {
		l.ctx.Audio.Music(l.def.Music)
	}
	l.ctx.Log.Info("level restarted", "level", l.def.ID, "restarts", l.restarts)
}

func (l *Level) spawn() {
	l.characters = l.characters[:0]
	for _, p := range l.def.Characters {
		c := p.Spawn()
		c.Size = l.scaleSize(c.Size)
		c.Sight = l.scaleSize(c.Sight)
		c.Pos = l.centred(p.Pos, c.Size)
		c.Turn(p.Facing)
		l.characters = append(l.characters, c)
	}
	l.objects = l.objects[:0]
	for _, cp := range l.def.Chests {
		ch := entity.NewChest(cp.Item, core.Vec{})
		ch.Size = l.scaleSize(ch.Size)
		ch.Pos = l.centred(cp.Pos, ch.Size)
		l.objects = append(l.objects, ch)
	}
	l.state = StateExploring
	l.talking = nil
	l.battle = nil
	l.foe = nil
}

func (l *Level) placePlayer() {
	l.player.Pos = l.centred(l.def.Start, l.player.Size)
	l.player.Turn(entity.FacingRight)
	l.move.SetFacing(entity.FacingRight)
	l.playerMask = collision.Solid(l.player.Size.W, l.player.Size.H)
}

func (l *Level) scaleSize(s entity.Size) entity.Size {
	return entity.Size{
		W: int(math.Round(float64(s.W) * l.ctx.Display.XRatio)),
		H: int(math.Round(float64(s.H) * l.ctx.Display.YRatio)),
	}
}

// centred returns the top-left that puts a box of size s centred on the
// reference point p.
func (l *Level) centred(p core.Vec, s entity.Size) core.Vec {
	c := l.ctx.Scale(p.X, p.Y)
	return core.Vec{X: c.X - float64(s.W)/2, Y: c.Y - float64(s.H)/2}
}

// Step advances the level by one tick using a single input sample.
func (l *Level) Step(in core.InputFrame) State {
	if in.Has(core.ActionQuit) {
		l.state = StateQuit
		return l.state
	}
	switch l.state {
	case StatePassed, StateQuit:
		return l.state
	case StateBattle:
		l.stepBattle(in)
		return l.state
	}
	if l.player.HP == 0 {
		l.Restart()
		return l.state
	}

	if in.Has(core.ActionInventory) {
		if l.state == StateInventory {
			l.state = StateExploring
		} else {
			l.state = StateInventory
		}
	}

	l.stepMovement(in)

	if l.def.Menu {
		l.stepClassSelection(in)
	}
	if l.state != StatePassed {
		l.stepCharacters(in)
	}
	if l.state == StateExploring || l.state == StateDialogue {
		l.stepObjects()
		l.stepExit()
	}

	l.player.Frame++
	l.frame++
	return l.state
}

func (l *Level) stepMovement(in core.InputFrame) {
	next := l.move.Next(in, l.player.Pos)
	l.player.Turn(l.move.Facing())
	if !l.move.Moving() {
		return
	}
	allowed := l.state != StateInventory
	if movement.CanMove(allowed, l.blocked(next)) {
		l.player.Pos = next
	}
}

// blocked reports whether the player's footprint at pos overlaps a wall.
// Beyond the mask there is no collision data, so nothing blocks there.
func (l *Level) blocked(pos core.Vec) bool {
	r := core.RectAt(pos, l.player.Size.W, l.player.Size.H)
	return l.mask.Overlap(l.playerMask, r.X, r.Y)
}

func (l *Level) stepClassSelection(in core.InputFrame) {
	if !in.Has(core.ActionConfirm) {
		return
	}
	pr := l.player.Rect()
	for _, c := range l.characters {
		if c.Kind != entity.KindArchetype || !pr.Intersects(c.ContactRect()) {
			continue
		}
		l.player.SetClass(c)
		l.playerMask = collision.Solid(l.player.Size.W, l.player.Size.H)
		l.pass()
		l.ctx.Log.Info("class chosen", "class", c.Class, "name", c.Name)
		return
	}
}

func (l *Level) stepCharacters(in core.InputFrame) {
	pr := l.player.Rect()
	var talking *entity.Character
	for _, c := range l.characters {
		if c.Dead || !pr.Intersects(c.ContactRect()) {
			continue
		}
		if c.Hostile && c.HasCollision {
			l.startBattle(c)
			return
		}
		if talking == nil && c.Talkable() {
			talking = c
		}
	}

	if talking != nil && talking == l.talking && in.Has(core.ActionConfirm) {
		talking.AdvanceDialogue()
	}
	l.talking = talking
	switch {
	case l.state == StateInventory:
	case talking != nil:
		l.state = StateDialogue
	default:
		l.state = StateExploring
	}
}

func (l *Level) stepObjects() {
	pr := l.player.Rect()
	for _, o := range l.objects {
		if !o.Collidable() || !pr.Intersects(o.Rect()) {
			continue
		}
		res := o.Interact(l.player)
		if res.Sound != "" {
			l.ctx.Audio.Play(res.Sound)
		}
		if res.Item != nil {
			l.ctx.Log.Info("item found", "level", l.def.ID, "item", res.Item.Name)
		}
	}
}

func (l *Level) stepExit() {
	if l.def.Menu || l.def.Exit == nil {
		return
	}
	x, y := l.ctx.Scale(l.def.Exit.X, l.def.Exit.Y).Round()
	if l.player.Rect().Contains(x, y) {
		l.pass()
	}
}

func (l *Level) pass() {
	l.state = StatePassed
	l.talking = nil
	l.ctx.Log.Info("level passed", "level", l.def.ID, "restarts", l.restarts)
}

func (l *Level) startBattle(foe *entity.Character) {
	l.foe = foe
	l.talking = nil
	l.savedPlayer, l.savedFoe = l.player.Pos, foe.Pos
	l.savedFacing = [2]entity.Facing{l.player.Facing, foe.Facing}
	l.battle = battle.New(l.ctx, l.player, foe)
	l.state = StateBattle
	l.ctx.Audio.Music(battleMusic)
}

func (l *Level) stepBattle(in core.InputFrame) {
	phase := l.battle.Step(in)
	if phase.Done() && l.onBattle != nil {
		l.onBattle(BattleResult{
			SessionID: l.battle.ID.String(),
			Enemy:     l.foe.Name,
			Phase:     phase,
			Turns:     l.battle.Turn(),
		})
	}
	switch phase {
	case battle.PhaseVictory:
		l.endBattle()
		l.foe.HasCollision = false
		l.state = StateExploring
	case battle.PhaseDefeat:
		l.endBattle()
		l.Restart()
	case battle.PhaseQuit:
		l.state = StateQuit
	}
}

func (l *Level) endBattle() {
	l.player.Pos, l.foe.Pos = l.savedPlayer, l.savedFoe
	l.player.Turn(l.savedFacing[0])
	l.foe.Turn(l.savedFacing[1])
	l.battle = nil
	if l.def.Music != "" {
		l.ctx.Audio.Music(l.def.Music)
	}
}
