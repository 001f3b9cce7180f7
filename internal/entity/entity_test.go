package entity

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vovakirdan/tui-quest/internal/core"
)

// fixedSource always returns v, clamped to [0, n).
type fixedSource struct{ v int }

func (f fixedSource) Intn(n int) int { return min(f.v, n-1) }

func sword(dmg, crit int) Attack {
	return Attack{Kind: AttackMelee, Name: "Spada", Type: "spada", Damage: dmg, Crit: crit, Frames: 4, FrameMult: 2}
}

func TestRoll(t *testing.T) {
	a := sword(10, 25)

	dmg, crit := a.Roll(fixedSource{v: 24}) // rolls 25
	assert.Equal(t, 20, dmg)
	assert.True(t, crit)

	dmg, crit = a.Roll(fixedSource{v: 25}) // rolls 26
	assert.Equal(t, 10, dmg)
	assert.False(t, crit)

	dmg, _ = NullAttack.Roll(fixedSource{})
	assert.Zero(t, dmg)
}

func TestAttackKindText(t *testing.T) {
	var k AttackKind
	require.NoError(t, k.UnmarshalText([]byte("Bow")))
	assert.Equal(t, AttackBow, k)
	assert.Error(t, k.UnmarshalText([]byte("trebuchet")))
}

func TestTakeDamageKillsEnemy(t *testing.T) {
	e := New(KindEnemy, Template{Name: "Goblin", MaxHP: 10})
	require.True(t, e.Hostile)

	e.TakeDamage(4)
	assert.Equal(t, 6, e.HP)
	assert.False(t, e.Dead)

	e.TakeDamage(6)
	assert.Zero(t, e.HP)
	assert.True(t, e.Dead)
	assert.False(t, e.Hostile, "a dead enemy is no longer hostile")
}

func TestLethalHitOnPlayer(t *testing.T) {
	p := NewPlayer()
	p.Level = 1
	require.Equal(t, 10, p.HP)

	p.TakeDamage(12)
	assert.Zero(t, p.HP)
	assert.True(t, p.Dead)
}

func TestCure(t *testing.T) {
	e := New(KindEnemy, Template{MaxHP: 100})
	e.HP = 18
	e.Cure()
	assert.Equal(t, 38, e.HP)

	e.HP = 95
	e.Cure()
	assert.Equal(t, 100, e.HP)
}

func TestHPAndManaBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := New(KindEnemy, Template{
			MaxHP:   rapid.IntRange(1, 500).Draw(t, "max_hp"),
			MaxMana: rapid.IntRange(0, 100).Draw(t, "max_mana"),
		})
		p := NewPlayer()
		p.HPMult = rapid.Float64Range(0, 3).Draw(t, "hp_mult")
		p.ManaMult = rapid.Float64Range(0, 3).Draw(t, "mana_mult")

		ops := rapid.SliceOfN(rapid.IntRange(0, 3), 1, 30).Draw(t, "ops")
		for _, op := range ops {
			switch op {
			case 0:
				n := rapid.IntRange(-5, 600).Draw(t, "dmg")
				c.TakeDamage(n)
				p.TakeDamage(n)
			case 1:
				c.Cure()
				p.Cure()
			case 2:
				n := rapid.IntRange(0, 50).Draw(t, "mana")
				c.SpendMana(n)
				p.SpendMana(n)
			case 3:
				p.LevelUp()
			}
			for _, ch := range []*Character{c, &p.Character} {
				if ch.HP < 0 || ch.HP > ch.MaxHP {
					t.Fatalf("hp %d out of [0, %d]", ch.HP, ch.MaxHP)
				}
				if ch.Mana < 0 || ch.Mana > ch.MaxMana {
					t.Fatalf("mana %d out of [0, %d]", ch.Mana, ch.MaxMana)
				}
			}
		}
	})
}

func TestLevelUp(t *testing.T) {
	p := NewPlayer()
	p.Level, p.MaxHP, p.MaxMana = 1, 100, 30
	p.HPMult, p.ManaMult = 1.5, 0.5
	p.HP = 40

	p.LevelUp()
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 123, p.MaxHP) // 100 + 22.5 rounds half away from zero
	assert.Equal(t, 31, p.MaxMana)
	assert.Equal(t, 40, p.HP, "level-up does not refill")

	p.MaxHP, p.MaxMana, p.HPMult, p.ManaMult = 0, 0, 0, 0
	p.LevelUp()
	assert.Equal(t, 7, p.MaxHP)
	assert.Equal(t, 1, p.MaxMana)
}

func TestLevelUpMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := NewPlayer()
		p.MaxHP = rapid.IntRange(0, 1000).Draw(t, "max_hp")
		p.HPMult = rapid.Float64Range(0, 5).Draw(t, "hp_mult")
		lvl, hp := p.Level, p.MaxHP
		p.LevelUp()
		if p.Level <= lvl || p.MaxHP < hp {
			t.Fatalf("level %d->%d max_hp %d->%d", lvl, p.Level, hp, p.MaxHP)
		}
	})
}

func TestSaveStateReset(t *testing.T) {
	p := NewPlayer()
	p.SetClass(New(KindArchetype, Template{
		Name: "Cavaliere", Class: "knight", MaxHP: 100, MaxMana: 30,
	}))
	p.AddItem(sword(5, 0))
	p.SaveState()

	p.TakeDamage(150)
	p.SpendMana(10)
	p.AddItem(sword(99, 0))
	p.LevelUp()

	p.Reset()
	assert.False(t, p.Dead)
	assert.Equal(t, 100, p.HP)
	assert.Equal(t, 30, p.Mana)
	assert.Equal(t, 1, p.Level)
	assert.Len(t, p.Weapons, 1)
}

func TestSetClassCopiesSlices(t *testing.T) {
	arch := New(KindArchetype, Template{
		Name:     "Mago Merlino",
		Class:    "mage",
		MaxHP:    200,
		MaxMana:  50,
		Weakness: []string{"acqua"},
		Weapons:  []Attack{sword(3, 0)},
	})
	p := NewPlayer()
	p.SetClass(arch)

	p.Weapons[0].Damage = 1000
	p.Weakness[0] = "fuoco"
	assert.Equal(t, 3, arch.Weapons[0].Damage)
	assert.Equal(t, "acqua", arch.Weakness[0])
	assert.Equal(t, 200, p.HP)
	assert.Equal(t, "mage", p.Class)
}

func TestTemplateBuildsFreshSlices(t *testing.T) {
	tpl := Template{Name: "Goblin", MaxHP: 10, Weapons: []Attack{sword(2, 0)}}
	a := New(KindEnemy, tpl)
	b := New(KindEnemy, tpl)

	a.Weapons = append(a.Weapons, sword(9, 0))
	a.Weapons[0].Damage = 50
	assert.Len(t, b.Weapons, 1)
	assert.Equal(t, 2, b.Weapons[0].Damage)
	assert.NotEqual(t, a.ID, b.ID)

	// Empty lists are non-nil and independent too.
	c, d := New(KindNPC, Template{}), New(KindNPC, Template{})
	c.Spells = append(c.Spells, sword(1, 0))
	assert.Empty(t, d.Spells)
	assert.NotNil(t, d.Spells)
}

func TestDataRoundTrip(t *testing.T) {
	p := NewPlayer()
	p.SetClass(New(KindArchetype, Template{Name: "Robin Hood", Class: "archer", MaxHP: 100, MaxMana: 30}))
	p.AddItem(Attack{Kind: AttackBow, Name: "Arco", Damage: 7, Crit: 10})
	p.AddItem(Attack{Kind: AttackCure, Name: "Cura", Mana: 5})

	raw, err := json.Marshal(p.Data())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"kind":"bow"`)

	var d Data
	require.NoError(t, json.Unmarshal(raw, &d))
	q := NewPlayer()
	q.Load(d)
	assert.Equal(t, p.Data(), q.Data())
}

func TestLoadClampsStats(t *testing.T) {
	p := NewPlayer()
	p.Load(Data{MaxHP: 10, HP: 50, MaxMana: 5, Mana: -3})
	assert.Equal(t, 10, p.HP)
	assert.Zero(t, p.Mana)
}

func TestPaginate(t *testing.T) {
	text := strings.Repeat("parola ", 45)
	pages := Paginate(text, DialogueWords)
	require.Len(t, pages, 3)
	assert.Len(t, strings.Fields(pages[0]), 20)
	assert.Len(t, strings.Fields(pages[2]), 5)
	assert.Empty(t, Paginate("   ", DialogueWords))
}

func TestDialogueWraps(t *testing.T) {
	npc := New(KindNPC, Template{Name: "Vecchio", Dialogue: strings.Repeat("ciao ", 30)})
	require.True(t, npc.Talkable())
	require.Len(t, npc.Dialogue, 2)

	npc.AdvanceDialogue()
	assert.Equal(t, 1, npc.Page)
	npc.AdvanceDialogue()
	assert.Equal(t, 0, npc.Page)
}

func TestContactRectUsesSight(t *testing.T) {
	e := New(KindEnemy, Template{Size: Size{W: 10, H: 10}, Sight: Size{W: 20, H: 10}})
	e.Pos = core.Vec{X: 100, Y: 100}
	assert.Equal(t, core.NewRect(90, 95, 30, 20), e.ContactRect())
}

func TestChestOpensOnce(t *testing.T) {
	c := NewChest(Attack{Kind: AttackSpell, Name: "Fuoco", Effect: "fuoco", Mana: 3}, core.Vec{})
	p := NewPlayer()

	res := c.Interact(p)
	assert.Equal(t, "chest", res.Sound)
	require.NotNil(t, res.Item)
	assert.False(t, c.Collidable())
	assert.Len(t, p.Spells, 1)

	res = c.Interact(p)
	assert.Nil(t, res.Item)
	assert.Len(t, p.Spells, 1)
}
