// Package audio is the fire-and-forget sound interface used by levels and
// battles. Playback itself is outside the game core; terminals get a log
// line per cue and, optionally, the terminal bell.
package audio

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Bank plays sound effects and ambient music by key.
type Bank interface {
	Play(key string)
	Music(key string)
	Stop()
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(string)  {}
func (Nop) Music(string) {}
func (Nop) Stop()        {}

// LogBank records cues to a logger. When Bell is set, effects listed in
// BellKeys also ring the terminal bell on w.
type LogBank struct {
	logger   *log.Logger
	w        io.Writer
	bellKeys map[string]bool

	mu    sync.Mutex
	music string
}

// NewLogBank returns a bank that logs at debug level. bellKeys may be nil.
func NewLogBank(logger *log.Logger, w io.Writer, bellKeys []string) *LogBank {
	keys := make(map[string]bool, len(bellKeys))
	for _, k := range bellKeys {
		keys[k] = true
	}
	return &LogBank{logger: logger, w: w, bellKeys: keys}
}

func (b *LogBank) Play(key string) {
	if key == "" {
		return
	}
	b.logger.Debug("sound", "key", key)
	if b.w != nil && b.bellKeys[key] {
		_, _ = io.WriteString(b.w, "\a")
	}
}

// Music switches the ambient track. Asking for the track already playing
// is a no-op.
func (b *LogBank) Music(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if key == b.music {
		return
	}
	b.music = key
	b.logger.Debug("music", "key", key)
}

func (b *LogBank) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.music != "" {
		b.logger.Debug("music stopped", "key", b.music)
	}
	b.music = ""
}

// Current returns the ambient track key, or "".
func (b *LogBank) Current() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.music
}

// Recorder keeps every cue in order. Tests use it to assert sounds.
type Recorder struct {
	mu     sync.Mutex
	Played []string
	Tracks []string
}

func (r *Recorder) Play(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Played = append(r.Played, key)
}

func (r *Recorder) Music(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Tracks = append(r.Tracks, key)
}

func (r *Recorder) Stop() {
	r.Music("")
}
