package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/engine"
	"github.com/vovakirdan/tui-quest/internal/entity"
	"github.com/vovakirdan/tui-quest/internal/game"
	"github.com/vovakirdan/tui-quest/internal/level"
	"github.com/vovakirdan/tui-quest/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{runes("w"), core.ActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{runes("a"), core.ActionLeft},
		{runes("d"), core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{runes("e"), core.ActionConfirm},
		{runes("i"), core.ActionInventory},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{runes("q"), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runes("?"), core.ActionNone},
		{runes("z"), core.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, keys.Action(tt.msg))
		})
	}
}

func TestSamplerEdgesLastOneTick(t *testing.T) {
	s := NewSampler(3)
	s.Key(core.ActionConfirm)

	f := s.Sample()
	assert.True(t, f.Has(core.ActionConfirm))
	assert.False(t, f.Down(core.ActionConfirm), "confirm is never held")
	assert.False(t, s.Sample().Has(core.ActionConfirm))
}

func TestSamplerHeldDirectionDecays(t *testing.T) {
	s := NewSampler(3)
	s.Key(core.ActionRight)

	assert.True(t, s.Sample().Has(core.ActionRight))
	for i := 0; i < 2; i++ {
		f := s.Sample()
		assert.False(t, f.Has(core.ActionRight))
		assert.True(t, f.Down(core.ActionRight), "tick %d", i)
	}
	assert.False(t, s.Sample().Down(core.ActionRight))
}

func TestSamplerOppositeCancels(t *testing.T) {
	s := NewSampler(10)
	s.Key(core.ActionLeft)
	s.Sample()
	s.Key(core.ActionRight)

	f := s.Sample()
	assert.True(t, f.Down(core.ActionRight))
	assert.False(t, f.Down(core.ActionLeft))

	s.Release()
	assert.False(t, s.Sample().Down(core.ActionRight))
}

func TestSamplerClick(t *testing.T) {
	s := NewSampler(1)
	s.Click(4, 7)
	f := s.Sample()
	assert.Equal(t, core.Pointer{X: 4, Y: 7, Clicked: true}, f.Pointer)
	assert.False(t, s.Sample().Pointer.Clicked)
}

func testCampaign(t *testing.T) *game.Campaign {
	t.Helper()
	start := core.Vec{X: 100, Y: 100}
	far := core.Vec{X: 400, Y: 400}
	defs := []*level.Definition{{ID: "road", Name: "Road", Start: start, Exit: &far}}
	c, err := game.New(engine.New(engine.WithSeed(1)), defs, nil, "tester")
	require.NoError(t, err)
	return c
}

func step(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelTickDrivesCampaign(t *testing.T) {
	m := NewModel(testCampaign(t), core.RuntimeConfig{ScreenW: 60, ScreenH: 20, TickRate: 30})
	require.NotNil(t, m.Init())

	m, _ = step(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := step(m, TickMsg(time.Now()))
	assert.NotNil(t, cmd, "keeps ticking")
	assert.Equal(t, game.ModePlaying, m.Campaign().Mode())
	assert.Contains(t, m.View(), "Road")

	// A held direction keeps moving the player between key repeats.
	p := m.Campaign().Player()
	x := p.Pos.X
	m, _ = step(m, runes("d"))
	for i := 0; i < 5; i++ {
		m, _ = step(m, TickMsg(time.Now()))
	}
	assert.Greater(t, p.Pos.X, x+4)
}

func TestModelQuit(t *testing.T) {
	m := NewModel(testCampaign(t), core.RuntimeConfig{ScreenW: 60, ScreenH: 20, TickRate: 30})

	m, _ = step(m, runes("q"))
	m, cmd := step(m, TickMsg(time.Now()))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestModelClickAndResize(t *testing.T) {
	m := NewModel(testCampaign(t), core.RuntimeConfig{ScreenW: 60, ScreenH: 20, TickRate: 30})
	m, _ = step(m, tea.WindowSizeMsg{Width: 70, Height: 25})
	m.View() // lays out the title menu on a 24-row screen

	m, _ = step(m, tea.MouseMsg{X: 35, Y: 12, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = step(m, TickMsg(time.Now()))
	assert.Equal(t, game.ModePlaying, m.Campaign().Mode())
}

func TestModelHelpToggle(t *testing.T) {
	m := NewModel(testCampaign(t), core.RuntimeConfig{ScreenW: 60, ScreenH: 20, TickRate: 30})
	assert.Equal(t, 19, m.screen.Height())

	m, _ = step(m, runes("?"))
	assert.Equal(t, 16, m.screen.Height())
	assert.Contains(t, m.View(), "screenshot")
}

type fakeHistory struct {
	saves   []storage.Save
	battles map[string][]storage.BattleRecord
	err     error
}

func (f fakeHistory) ListSaves() ([]storage.Save, error) { return f.saves, f.err }

func (f fakeHistory) RecentBattles(slot string, _ int) ([]storage.BattleRecord, error) {
	return f.battles[slot], nil
}

func TestHistoryCyclesSlots(t *testing.T) {
	src := fakeHistory{
		saves: []storage.Save{
			{Slot: "alice", Player: entity.Data{Class: "mage", Level: 3}},
			{Slot: "bob", Player: entity.Data{Class: "knight", Level: 5}},
		},
		battles: map[string][]storage.BattleRecord{
			"alice": {{LevelID: "maze", Enemy: "Goblin", Outcome: "victory", Turns: 2}},
			"bob": {
				{LevelID: "castle", Enemy: "Drago", Outcome: "defeat", Turns: 6},
				{LevelID: "forest", Enemy: "Lupo", Outcome: "victory", Turns: 3},
			},
		},
	}
	m := NewHistoryModel(src, 100, 30)
	assert.Equal(t, "alice", m.Selected().Slot)
	assert.Len(t, m.Battles(), 1)
	assert.Contains(t, m.View(), "Goblin")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	assert.Equal(t, "bob", m.Selected().Slot)
	assert.Len(t, m.Battles(), 2)
	assert.Contains(t, m.View(), "bob (knight 5)")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(HistoryModel)
	assert.Equal(t, "alice", m.Selected().Slot)
}

func TestHistoryEmptyAndError(t *testing.T) {
	m := NewHistoryModel(fakeHistory{}, 60, 20)
	assert.Nil(t, m.Selected())
	assert.Contains(t, m.View(), "No saved games yet.")

	m = NewHistoryModel(fakeHistory{err: errors.New("locked")}, 60, 20)
	assert.Contains(t, m.View(), "locked")
}

func TestRenderScreenColors(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.SetCell(0, 0, '#', core.ColorGray)
	s.SetCell(1, 0, '@', core.ColorBrightYellow)
	out := RenderScreen(s)
	assert.Contains(t, out, "#")
	assert.Contains(t, out, "@")
}

func TestEveryColorHasAStyle(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorMana; c++ {
		_, ok := styles[c]
		assert.True(t, ok, "color %d", c)
	}
	assert.Equal(t, styles[core.ColorDefault], styleFor(core.Color(200)))
}

func TestRenderScreenKeepsCellOrder(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawTextColor(0, 0, "##", core.ColorWall)
	s.DrawTextColor(2, 0, "..", core.ColorFloor)
	s.SetCell(4, 0, '@', core.ColorBrightGreen)
	s.DrawTextColor(0, 1, "HP", core.ColorHP)

	lines := strings.Split(RenderScreen(s), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "##")
	assert.Contains(t, lines[0], "..")
	assert.Contains(t, lines[0], "@")
	assert.Contains(t, lines[1], "HP")
}
