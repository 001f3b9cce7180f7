package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-quest/internal/entity"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func knightData() entity.Data {
	return entity.Data{
		Name: "Cavaliere", Class: "knight", Level: 3,
		HP: 80, MaxHP: 130, Mana: 5, MaxMana: 34,
		HPMult: 1.5, ManaMult: 0.5,
		Weakness: []string{"fulmine"},
		Weapons:  []entity.Attack{{Kind: entity.AttackMelee, Name: "Spada", Type: "spada", Damage: 12, Crit: 10, Frames: 4, FrameMult: 8}},
		Spells:   []entity.Attack{{Kind: entity.AttackCure, Name: "Cura", Type: "cure", Mana: 10, Frames: 4, FrameMult: 8}},
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestLoadMissingSave(t *testing.T) {
	store := openTemp(t)

	save, err := store.LoadGame("nobody")
	require.NoError(t, err)
	assert.Nil(t, save)

	ok, err := store.HasSave("nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveAndLoad(t *testing.T) {
	store := openTemp(t)

	in := &Save{Slot: "default", Player: knightData(), Passed: map[string]bool{"menu": true, "maze": true}}
	require.NoError(t, store.SaveGame(in))
	assert.NotEqual(t, uuid.Nil, in.ID)

	out, err := store.LoadGame("default")
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, knightData(), out.Player)
	assert.Equal(t, 2, out.PassedCount())
	assert.False(t, out.UpdatedAt.IsZero())
}

func TestSaveOverwritesSlot(t *testing.T) {
	store := openTemp(t)

	first := &Save{Slot: "alice", Player: knightData()}
	require.NoError(t, store.SaveGame(first))

	d := knightData()
	d.Level = 4
	require.NoError(t, store.SaveGame(&Save{Slot: "alice", Player: d, Passed: map[string]bool{"forest": true}}))
	require.NoError(t, store.SaveGame(&Save{Slot: "bob", Player: knightData()}))

	out, err := store.LoadGame("alice")
	require.NoError(t, err)
	assert.Equal(t, 4, out.Player.Level)
	assert.True(t, out.Passed["forest"])

	saves, err := store.ListSaves()
	require.NoError(t, err)
	assert.Len(t, saves, 2)
}

func TestSaveRequiresSlot(t *testing.T) {
	store := openTemp(t)
	assert.Error(t, store.SaveGame(&Save{}))
}

func TestDeleteSave(t *testing.T) {
	store := openTemp(t)
	require.NoError(t, store.SaveGame(&Save{Slot: "alice", Player: knightData()}))
	_, err := store.RecordBattle(BattleRecord{SessionID: "s", Slot: "alice", LevelID: "maze", Enemy: "Goblin", Outcome: "victory"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteSave("alice"))

	out, err := store.LoadGame("alice")
	require.NoError(t, err)
	assert.Nil(t, out)
	battles, err := store.RecentBattles("alice", 10)
	require.NoError(t, err)
	assert.Empty(t, battles)
}

func TestBattleHistory(t *testing.T) {
	store := openTemp(t)

	for i, outcome := range []string{"defeat", "victory", "victory"} {
		_, err := store.RecordBattle(BattleRecord{
			SessionID: uuid.NewString(),
			Slot:      "default",
			LevelID:   "maze",
			Enemy:     "Goblin",
			Outcome:   outcome,
			Turns:     i + 1,
		})
		require.NoError(t, err)
	}
	_, err := store.RecordBattle(BattleRecord{SessionID: "x", Slot: "other", LevelID: "maze", Enemy: "Goblin", Outcome: "quit"})
	require.NoError(t, err)

	recent, err := store.RecentBattles("default", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 3, recent[0].Turns, "newest first")
	assert.Equal(t, "victory", recent[1].Outcome)
}
