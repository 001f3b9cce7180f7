package battle

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/engine"
	"github.com/vovakirdan/tui-quest/internal/entity"
)

// MsgNoMana is shown when a spell costs more mana than the player has.
const MsgNoMana = "Not enough mana!"

var (
	// ErrInsufficientMana rejects a spell the player cannot afford.
	ErrInsufficientMana = errors.New("battle: not enough mana")
	// ErrNoAttack rejects a pick outside the current list.
	ErrNoAttack = errors.New("battle: no such attack")
	// ErrNotChoosing rejects a pick outside the choosing phase.
	ErrNotChoosing = errors.New("battle: not the player's turn")
)

// Phase is the session state.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseChoosing
	PhasePlayerAnimating
	PhaseImpact // pause between the two strikes of a turn
	PhaseEnemyAnimating
	PhaseResolved // someone died; waiting for the player to confirm
	PhaseVictory
	PhaseDefeat
	PhaseQuit
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseChoosing:
		return "Choosing"
	case PhasePlayerAnimating:
		return "PlayerAnimating"
	case PhaseImpact:
		return "Impact"
	case PhaseEnemyAnimating:
		return "EnemyAnimating"
	case PhaseResolved:
		return "Resolved"
	case PhaseVictory:
		return "Victory"
	case PhaseDefeat:
		return "Defeat"
	case PhaseQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Done reports whether the session has finished.
func (p Phase) Done() bool {
	return p == PhaseVictory || p == PhaseDefeat || p == PhaseQuit
}

// Category is a section of the action menu.
type Category int

const (
	CategoryWeapons Category = iota
	CategorySpells
)

func (c Category) String() string {
	if c == CategorySpells {
		return "Spells"
	}
	return "Weapons"
}

// Reference-space battle positions of the two combatants.
var (
	playerSpot = core.Vec{X: 154, Y: 224}
	enemySpot  = core.Vec{X: 357, Y: 224}
)

// animation plays one resolved strike. The outcome is applied on the
// first frame only.
type animation struct {
	outcome   Outcome
	frame     int
	frames    int
	inflicted bool
}

func newAnimation(o Outcome) *animation {
	return &animation{outcome: o, frames: o.Attack.Duration()}
}

// strike runs apply the first time it is called and never again.
func (a *animation) strike(apply func()) bool {
	if a.inflicted {
		return false
	}
	a.inflicted = true
	apply()
	return true
}

func (a *animation) finished() bool { return a.frame >= a.frames }

// Session is one encounter. It borrows the player and the enemy; the
// owning level restores positions when it ends.
type Session struct {
	ID uuid.UUID

	ctx    *engine.Context
	player *entity.Player
	enemy  *entity.Character

	phase    Phase
	category Category
	cursor   int
	message  string
	hold     int
	turn     int

	playerAnim *animation
	enemyAnim  *animation
	layout     Layout
}

// New opens a session between p and e.
func New(ctx *engine.Context, p *entity.Player, e *entity.Character) *Session {
	return &Session{
		ID:     uuid.New(),
		ctx:    ctx,
		player: p,
		enemy:  e,
		phase:  PhaseSetup,
	}
}

// Phase returns the current state.
func (s *Session) Phase() Phase { return s.phase }

// Message returns the status line.
func (s *Session) Message() string { return s.message }

// Category returns the selected menu section.
func (s *Session) Category() Category { return s.category }

// Cursor returns the highlighted attack index.
func (s *Session) Cursor() int { return s.cursor }

// Enemy returns the opponent.
func (s *Session) Enemy() *entity.Character { return s.enemy }

// Turn returns the number of completed picks.
func (s *Session) Turn() int { return s.turn }

// Step advances the session by one tick.
func (s *Session) Step(in core.InputFrame) Phase {
	if in.Has(core.ActionQuit) {
		s.phase = PhaseQuit
		return s.phase
	}

	switch s.phase {
	case PhaseSetup:
		s.setup()
	case PhaseChoosing:
		s.stepChoosing(in)
	case PhasePlayerAnimating:
		s.stepPlayer()
	case PhaseImpact:
		s.hold--
		if s.hold <= 0 {
			s.phase = PhaseEnemyAnimating
		}
	case PhaseEnemyAnimating:
		s.stepEnemy()
	case PhaseResolved:
		if in.Has(core.ActionConfirm) {
			s.finish()
		}
	}
	return s.phase
}

func (s *Session) setup() {
	s.player.Pos = s.ctx.Scale(playerSpot.X, playerSpot.Y)
	s.player.Turn(entity.FacingRight)
	s.enemy.Pos = s.ctx.Scale(enemySpot.X, enemySpot.Y)
	s.enemy.Turn(entity.FacingLeft)
	s.phase = PhaseChoosing
	s.ctx.Log.Info("battle started", "session", s.ID, "enemy", s.enemy.Name, "level", s.enemy.Level)
}

func (s *Session) list(c Category) []entity.Attack {
	if c == CategorySpells {
		return s.player.Spells
	}
	return s.player.Weapons
}

func (s *Session) stepChoosing(in core.InputFrame) {
	if in.Pointer.Clicked {
		s.click(in.Pointer.X, in.Pointer.Y)
		return
	}
	switch {
	case in.Has(core.ActionLeft):
		s.selectCategory(CategoryWeapons)
	case in.Has(core.ActionRight):
		s.selectCategory(CategorySpells)
	case in.Has(core.ActionUp):
		if n := len(s.list(s.category)); n > 0 {
			s.cursor = (s.cursor - 1 + n) % n
		}
	case in.Has(core.ActionDown):
		if n := len(s.list(s.category)); n > 0 {
			s.cursor = (s.cursor + 1) % n
		}
	case in.Has(core.ActionConfirm):
		_ = s.Choose(s.category, s.cursor)
	}
}

func (s *Session) selectCategory(c Category) {
	if s.category != c {
		s.category = c
		s.cursor = 0
	}
}

func (s *Session) click(x, y int) {
	for i, r := range s.layout.Headers {
		if r.Contains(x, y) {
			s.selectCategory(Category(i))
			return
		}
	}
	for i, r := range s.layout.Items {
		if r.Contains(x, y) {
			s.cursor = i
			_ = s.Choose(s.category, i)
			return
		}
	}
}

// Choose picks attack i of category c. Both the player's strike and the
// enemy's counter-move are resolved now; animations only apply them.
// An unaffordable spell leaves the session unchanged apart from the
// message.
func (s *Session) Choose(c Category, i int) error {
	if s.phase != PhaseChoosing {
		return ErrNotChoosing
	}
	attacks := s.list(c)
	if i < 0 || i >= len(attacks) {
		return fmt.Errorf("%w: %s #%d", ErrNoAttack, c, i)
	}
	a := attacks[i]
	if !s.player.CanCast(a) {
		s.message = MsgNoMana
		return ErrInsufficientMana
	}

	mine := Resolve(&s.player.Character, s.enemy, a, s.ctx.Rand)
	counter := ChooseMove(s.enemy, &s.player.Character)
	theirs := Resolve(s.enemy, &s.player.Character, counter, s.ctx.Rand)

	s.playerAnim = newAnimation(mine)
	s.enemyAnim = newAnimation(theirs)
	s.message = ""
	s.turn++
	s.phase = PhasePlayerAnimating
	s.ctx.Log.Debug("turn",
		"session", s.ID,
		"attack", a.Name, "damage", mine.Damage, "critical", mine.Critical,
		"counter", counter.Name, "counter_damage", theirs.Damage)
	return nil
}

func (s *Session) stepPlayer() {
	a := s.playerAnim
	if a.strike(func() { Apply(a.outcome, &s.player.Character, s.enemy) }) {
		s.playSound(a.outcome.Attack)
		s.message = s.playerMessage(a.outcome)
	}
	a.frame++
	if !a.finished() {
		return
	}
	if s.enemy.Dead {
		s.phase = PhaseResolved
		return
	}
	s.hold = s.ctx.Tuning.ImpactHold
	if s.hold > 0 {
		s.phase = PhaseImpact
	} else {
		s.phase = PhaseEnemyAnimating
	}
}

func (s *Session) stepEnemy() {
	a := s.enemyAnim
	if a.strike(func() { Apply(a.outcome, s.enemy, &s.player.Character) }) {
		s.playSound(a.outcome.Attack)
		s.message = s.enemyMessage(a.outcome)
	}
	a.frame++
	if !a.finished() {
		return
	}
	if s.player.Dead {
		s.phase = PhaseResolved
		return
	}
	s.phase = PhaseChoosing
}

func (s *Session) finish() {
	if s.enemy.Dead {
		s.player.LevelUp()
		s.phase = PhaseVictory
		s.ctx.Log.Info("battle won", "session", s.ID, "enemy", s.enemy.Name, "level", s.player.Level, "turns", s.turn)
		return
	}
	s.phase = PhaseDefeat
	s.ctx.Log.Info("battle lost", "session", s.ID, "enemy", s.enemy.Name, "turns", s.turn)
}

func (s *Session) playSound(a entity.Attack) {
	if a.IsNull() {
		return
	}
	key := a.Type
	if key == "" {
		key = a.Kind.String()
	}
	s.ctx.Audio.Play(key)
}

func (s *Session) playerMessage(o Outcome) string {
	switch {
	case s.enemy.Dead:
		return fmt.Sprintf("%s is defeated!", s.enemy.Name)
	case o.Cure:
		return fmt.Sprintf("%s recovers health.", s.player.Name)
	case o.Critical:
		return "Critical hit!"
	case o.Weak:
		return fmt.Sprintf("%s is weak to %s!", s.enemy.Name, o.Attack.Effect)
	}
	return ""
}

func (s *Session) enemyMessage(o Outcome) string {
	switch {
	case s.player.Dead:
		return "You have been defeated..."
	case o.Cure:
		return fmt.Sprintf("%s recovers health.", s.enemy.Name)
	case o.Critical:
		return fmt.Sprintf("%s lands a critical hit!", s.enemy.Name)
	case o.Weak:
		return fmt.Sprintf("You are weak to %s!", o.Attack.Effect)
	}
	return ""
}
