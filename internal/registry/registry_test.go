package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct{ Size int }

func noArgs(any) error { return nil }

func TestCreate(t *testing.T) {
	r := New[widget]("widget")
	r.Register("small", func(decode Decoder) (widget, error) {
		var w widget
		if err := decode(&w); err != nil {
			return widget{}, err
		}
		return w, nil
	})

	w, err := r.Create("small", func(v any) error {
		v.(*widget).Size = 3
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, w.Size)
	assert.True(t, r.Exists("small"))
	assert.False(t, r.Exists("large"))
}

func TestCreateUnknown(t *testing.T) {
	r := New[widget]("widget")
	_, err := r.Create("missing", noArgs)
	assert.ErrorIs(t, err, ErrUnknown)
	assert.Contains(t, err.Error(), `widget "missing"`)
}

func TestCreateDecodeError(t *testing.T) {
	r := New[widget]("widget")
	boom := errors.New("boom")
	r.Register("bad", func(decode Decoder) (widget, error) { return widget{}, decode(nil) })

	_, err := r.Create("bad", func(any) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	r := New[widget]("widget")
	f := func(Decoder) (widget, error) { return widget{}, nil }
	r.Register("a", f)
	assert.Panics(t, func() { r.Register("a", f) })
}

func TestList(t *testing.T) {
	r := New[int]("number")
	for _, id := range []string{"c", "a", "b"} {
		r.Register(id, func(Decoder) (int, error) { return 0, nil })
	}
	assert.Equal(t, []string{"a", "b", "c"}, r.List())
}
