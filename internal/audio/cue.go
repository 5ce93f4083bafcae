// Package audio carries the arcade's sound cues from games to whatever can
// make noise. Games emit named cues; emitters decide what a cue sounds like
// or drop it. Nothing here ever fails loudly: a missing speaker is not a
// reason to stop a game.
package audio

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Cue names a sound event, e.g. "move" or "capture".
type Cue string

// Emitter consumes cues. Implementations must not block the game loop.
type Emitter interface {
	Emit(c Cue)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(c Cue)

// Emit calls f(c).
func (f EmitterFunc) Emit(c Cue) { f(c) }

// Nop drops every cue.
var Nop Emitter = EmitterFunc(func(Cue) {})

// Multi fans a cue out to several emitters in order.
type Multi []Emitter

// Emit forwards c to every non-nil emitter.
func (m Multi) Emit(c Cue) {
	for _, e := range m {
		if e != nil {
			e.Emit(c)
		}
	}
}

// Switch is the mute toggle in front of an emitter.
type Switch struct {
	mu    sync.Mutex
	next  Emitter
	muted bool
}

// NewSwitch wraps next. A nil next behaves like Nop.
func NewSwitch(next Emitter, muted bool) *Switch {
	if next == nil {
		next = Nop
	}
	return &Switch{next: next, muted: muted}
}

// Emit forwards c unless muted.
func (s *Switch) Emit(c Cue) {
	s.mu.Lock()
	muted := s.muted
	s.mu.Unlock()
	if !muted {
		s.next.Emit(c)
	}
}

// Toggle flips the mute flag and returns the new state.
func (s *Switch) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = !s.muted
	return s.muted
}

// Muted reports whether cues are currently dropped.
func (s *Switch) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// Bell rings the terminal bell for every cue. Write errors are ignored.
type Bell struct {
	w io.Writer
}

// NewBell returns a Bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Emit writes a BEL byte.
func (b *Bell) Emit(Cue) {
	if b.w == nil {
		return
	}
	_, _ = b.w.Write([]byte{'\a'})
}

// LogEmitter records cues at debug level.
type LogEmitter struct {
	logger *log.Logger
}

// NewLogEmitter returns an emitter logging through logger.
func NewLogEmitter(logger *log.Logger) *LogEmitter {
	return &LogEmitter{logger: logger}
}

// Emit logs the cue.
func (l *LogEmitter) Emit(c Cue) {
	if l.logger != nil {
		l.logger.Debug("cue", "name", string(c))
	}
}

// Recorder keeps every cue it sees. Handy in tests and for replays.
type Recorder struct {
	Cues []Cue
}

// Emit appends c.
func (r *Recorder) Emit(c Cue) {
	r.Cues = append(r.Cues, c)
}

// Reset forgets recorded cues.
func (r *Recorder) Reset() {
	r.Cues = r.Cues[:0]
}

// Last returns the most recent cue or "".
func (r *Recorder) Last() Cue {
	if len(r.Cues) == 0 {
		return ""
	}
	return r.Cues[len(r.Cues)-1]
}
