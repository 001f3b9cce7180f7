// Package collision implements pixel-granular occupancy masks.
//
// A Mask answers one question: do two footprints share a solid pixel when
// one of them is offset by (dx, dy)? Areas outside a mask carry no
// collision data, so a query that falls partly or fully outside the bounds
// treats those pixels as empty instead of failing.
package collision

import (
	"fmt"
	"image"
	"math/bits"
	"strings"

	"github.com/vovakirdan/tui-quest/internal/core"
)

const wordBits = 64

// Mask is a width×height bit set of solid pixels.
type Mask struct {
	w, h  int
	words int // words per row
	bits  []uint64
}

// New returns an empty mask. Negative sizes are treated as zero.
func New(w, h int) *Mask {
	w, h = max(w, 0), max(h, 0)
	words := (w + wordBits - 1) / wordBits
	return &Mask{w: w, h: h, words: words, bits: make([]uint64, words*h)}
}

// Solid returns a mask with every pixel set, the footprint of a sprite
// without transparency.
func Solid(w, h int) *Mask {
	m := New(w, h)
	m.Fill(core.NewRect(0, 0, w, h))
	return m
}

// FromRows builds a mask from ASCII art. Each rune covers a cellW×cellH
// block; '#' is solid, anything else is empty. Rows may be ragged.
func FromRows(rows []string, cellW, cellH int) (*Mask, error) {
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("collision: invalid cell size %dx%d", cellW, cellH)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("collision: empty mask")
	}
	cols := 0
	for _, r := range rows {
		cols = max(cols, len([]rune(r)))
	}
	m := New(cols*cellW, len(rows)*cellH)
	for y, row := range rows {
		x := 0
		for _, r := range row {
			if r == '#' {
				m.Fill(core.NewRect(x*cellW, y*cellH, cellW, cellH))
			}
			x++
		}
	}
	return m, nil
}

// FromImage marks every pixel whose alpha exceeds threshold (0-255) as solid.
func FromImage(img image.Image, threshold uint8) *Mask {
	b := img.Bounds()
	m := New(b.Dx(), b.Dy())
	limit := uint32(threshold) * 0x101
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > limit {
				m.Set(x-b.Min.X, y-b.Min.Y, true)
			}
		}
	}
	return m
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int { return m.w }

// Height returns the mask height in pixels.
func (m *Mask) Height() int { return m.h }

// Bounds returns the mask rectangle anchored at the origin.
func (m *Mask) Bounds() core.Rect { return core.NewRect(0, 0, m.w, m.h) }

// Get reports whether (x, y) is solid. Out of bounds, or a nil mask, is empty.
func (m *Mask) Get(x, y int) bool {
	if m == nil || x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	return m.bits[y*m.words+x/wordBits]&(1<<uint(x%wordBits)) != 0
}

// Set marks (x, y) solid or empty. Out of bounds is ignored.
func (m *Mask) Set(x, y int, solid bool) {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return
	}
	i := y*m.words + x/wordBits
	bit := uint64(1) << uint(x%wordBits)
	if solid {
		m.bits[i] |= bit
	} else {
		m.bits[i] &^= bit
	}
}

// Fill marks every pixel of r solid, clipped to the mask.
func (m *Mask) Fill(r core.Rect) {
	for y := max(r.Y, 0); y < min(r.Bottom(), m.h); y++ {
		for x := max(r.X, 0); x < min(r.Right(), m.w); x++ {
			m.Set(x, y, true)
		}
	}
}

// Count returns the number of solid pixels.
func (m *Mask) Count() int {
	n := 0
	for _, w := range m.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// Scale returns a nearest-neighbour resampled copy of size
// round(w*sx)×round(h*sy).
func (m *Mask) Scale(sx, sy float64) *Mask {
	nw := int(float64(m.w)*sx + 0.5)
	nh := int(float64(m.h)*sy + 0.5)
	out := New(nw, nh)
	if nw == 0 || nh == 0 {
		return out
	}
	for y := 0; y < nh; y++ {
		srcY := y * m.h / nh
		for x := 0; x < nw; x++ {
			if m.Get(x*m.w/nw, srcY) {
				out.Set(x, y, true)
			}
		}
	}
	return out
}

// Overlap reports whether m and other share a solid pixel when other's
// origin is placed at (offX, offY) in m's coordinates. Only the
// intersection of the two bounds is compared.
func (m *Mask) Overlap(other *Mask, offX, offY int) bool {
	if m == nil || other == nil {
		return false
	}
	x0, y0 := max(0, offX), max(0, offY)
	x1, y1 := min(m.w, offX+other.w), min(m.h, offY+other.h)
	if x0 >= x1 || y0 >= y1 {
		return false
	}
	for y := y0; y < y1; y++ {
		oy := y - offY
		for x := x0; x < x1; {
			// Compare whole words of m where possible.
			if x%wordBits == 0 && x+wordBits <= x1 {
				if m.bits[y*m.words+x/wordBits] == 0 {
					x += wordBits
					continue
				}
			}
			if m.Get(x, y) && other.Get(x-offX, oy) {
				return true
			}
			x++
		}
	}
	return false
}

// String renders the mask as rows of '#' and '.', mainly for tests and
// the levels command.
func (m *Mask) String() string {
	var sb strings.Builder
	for y := 0; y < m.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < m.w; x++ {
			if m.Get(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
