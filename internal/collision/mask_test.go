package collision

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFromRows(t *testing.T) {
	m, err := FromRows([]string{
		"#..",
		".#",
	}, 2, 3)
	require.NoError(t, err)

	assert.Equal(t, 6, m.Width())
	assert.Equal(t, 6, m.Height())
	assert.True(t, m.Get(0, 0))
	assert.True(t, m.Get(1, 2))
	assert.False(t, m.Get(2, 0))
	assert.True(t, m.Get(3, 4))
	assert.Equal(t, 12, m.Count())
}

func TestFromRowsErrors(t *testing.T) {
	_, err := FromRows(nil, 1, 1)
	assert.Error(t, err)

	_, err = FromRows([]string{"#"}, 0, 1)
	assert.Error(t, err)
}

func TestFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.Set(1, 0, color.NRGBA{A: 255})
	img.Set(3, 1, color.NRGBA{A: 10})

	m := FromImage(img, 127)
	assert.True(t, m.Get(1, 0))
	assert.False(t, m.Get(3, 1), "alpha below threshold is empty")
	assert.Equal(t, 1, m.Count())
}

func TestOverlap(t *testing.T) {
	boundary, err := FromRows([]string{
		"####",
		"#..#",
		"#..#",
		"####",
	}, 8, 8)
	require.NoError(t, err)
	sprite := Solid(8, 8)

	tests := []struct {
		name   string
		x, y   int
		expect bool
	}{
		{"inside free area", 8, 8, false},
		{"touching wall", 9, 8, false},
		{"into right wall", 17, 8, true},
		{"on wall", 0, 0, true},
		{"fully outside right", 100, 8, false},
		{"fully outside negative", -50, -50, false},
		{"partly outside", -4, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, boundary.Overlap(sprite, tt.x, tt.y))
		})
	}
}

func TestOverlapWideMask(t *testing.T) {
	// Wider than one word so whole-word skipping is exercised.
	m := New(200, 4)
	m.Set(190, 2, true)
	probe := Solid(2, 2)

	assert.False(t, m.Overlap(probe, 10, 1))
	assert.True(t, m.Overlap(probe, 189, 1))
}

func TestOverlapNil(t *testing.T) {
	var m *Mask
	assert.False(t, m.Overlap(Solid(1, 1), 0, 0))
	assert.False(t, Solid(1, 1).Overlap(nil, 0, 0))
}

func TestScale(t *testing.T) {
	m, err := FromRows([]string{"#.", ".#"}, 1, 1)
	require.NoError(t, err)

	s := m.Scale(2, 2)
	assert.Equal(t, 4, s.Width())
	assert.Equal(t, "##..\n##..\n..##\n..##", s.String())
}

func TestOverlapMatchesNaive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.IntRange(1, 80).Draw(t, "w")
		h := rapid.IntRange(1, 12).Draw(t, "h")
		a := New(w, h)
		for i := rapid.IntRange(0, 40).Draw(t, "na"); i > 0; i-- {
			a.Set(rapid.IntRange(0, w-1).Draw(t, "ax"), rapid.IntRange(0, h-1).Draw(t, "ay"), true)
		}
		bw := rapid.IntRange(1, 10).Draw(t, "bw")
		bh := rapid.IntRange(1, 10).Draw(t, "bh")
		b := Solid(bw, bh)
		dx := rapid.IntRange(-20, w+20).Draw(t, "dx")
		dy := rapid.IntRange(-20, h+20).Draw(t, "dy")

		naive := false
		for y := 0; y < bh && !naive; y++ {
			for x := 0; x < bw; x++ {
				if a.Get(x+dx, y+dy) {
					naive = true
					break
				}
			}
		}
		if got := a.Overlap(b, dx, dy); got != naive {
			t.Fatalf("Overlap(%d, %d) = %v, naive = %v", dx, dy, got, naive)
		}
	})
}
