package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimAndRelease(t *testing.T) {
	r := NewRegistry()

	s, err := r.Claim("alice", "10.0.0.1:5000")
	require.NoError(t, err)
	assert.Equal(t, "alice", s.Slot)
	assert.Equal(t, 1, r.Count())

	_, err = r.Claim("alice", "10.0.0.2:5000")
	assert.ErrorIs(t, err, ErrSlotBusy)

	got, ok := r.Get("alice")
	require.True(t, ok)
	assert.Same(t, s, got)

	r.Release(s)
	assert.Equal(t, 0, r.Count())
	select {
	case <-s.Done():
	default:
		t.Fatal("released session is not done")
	}

	_, err = r.Claim("alice", "10.0.0.2:5000")
	assert.NoError(t, err)
}

func TestStaleReleaseKeepsNewHolder(t *testing.T) {
	r := NewRegistry()
	old, err := r.Claim("bob", "a")
	require.NoError(t, err)
	r.Release(old)
	current, err := r.Claim("bob", "b")
	require.NoError(t, err)

	r.Release(old) // double release
	got, ok := r.Get("bob")
	require.True(t, ok)
	assert.Same(t, current, got)

	r.Release(nil)
}

func TestSlotsSorted(t *testing.T) {
	r := NewRegistry()
	for _, slot := range []string{"carol", "alice", "bob"} {
		_, err := r.Claim(slot, "")
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"alice", "bob", "carol"}, r.Slots())
}

func TestConcurrentClaimsOneWinner(t *testing.T) {
	r := NewRegistry()
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := r.Claim("shared", fmt.Sprintf("peer-%d", i)); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}
