package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-quest/internal/audio"
	"github.com/vovakirdan/tui-quest/internal/core"
)

func TestNewDefaults(t *testing.T) {
	c := New()
	assert.Equal(t, core.ReferenceSize, c.Display.Width)
	assert.IsType(t, audio.Nop{}, c.Audio)
	assert.NotNil(t, c.Log)
	assert.NotNil(t, c.Rand)
	assert.Equal(t, DefaultTuning(), c.Tuning)
}

func TestSeedIsDeterministic(t *testing.T) {
	a := New(WithSeed(42))
	b := New(WithSeed(42))
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Rand.Intn(100), b.Rand.Intn(100))
	}
}

func TestWithTuningKeepsDefaults(t *testing.T) {
	c := New(WithTuning(Tuning{ImpactHold: 5}))
	assert.Equal(t, 5, c.Tuning.ImpactHold)
	assert.Equal(t, DefaultTuning().WalkSpeed, c.Tuning.WalkSpeed)
	assert.Equal(t, DefaultTuning().FogRadius, c.Tuning.FogRadius)
}

func TestScale(t *testing.T) {
	c := New(WithDisplay(core.NewDisplay(1024, 256)))
	assert.Equal(t, core.Vec{X: 200, Y: 50}, c.Scale(100, 100))
}
