// Package input turns raw terminal bytes into movement axes and key-down
// edges.
package input

import (
	"io"
	"time"
)

// keyHoldDuration is how long a movement key is considered "held" after its
// last press. Terminals never report key releases.
const keyHoldDuration = 80 * time.Millisecond

// edgeRearmDuration is how long a key must go unseen before another press of
// it counts as a new key-down edge. Auto-repeat keeps it armed-off while held.
const edgeRearmDuration = 80 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Horizontal float64 // -1 turn left, +1 turn right
	Vertical   float64 // +1 forward, -1 reverse

	// Key-down edges, true for a single frame.
	Shade  bool
	Sol    bool
	Fire   bool
	Reload bool
	Quit   bool

	Active bool // Any byte arrived this frame
}

type key uint8

const (
	keyUp key = iota
	keyDown
	keyLeft
	keyRight
	keyShade
	keySol
	keyFire
	keyReload
	keyQuit

	numKeys
)

// escTimeout is how long a trailing ESC waits for the rest of an escape
// sequence before it counts as the Esc key. Sequences may be split across
// reads, especially over SSH.
const escTimeout = 50 * time.Millisecond

// Tracker keeps the last time each key was pressed and derives axes and
// edges from it.
type Tracker struct {
	last      [numKeys]time.Time
	hold      time.Duration
	rearm     time.Duration
	pressed   [numKeys]bool // scratch: keys seen in the current batch
	pending   []byte        // incomplete escape sequence from the last batch
	pendingAt time.Time
}

// NewTracker creates a tracker with the default hold and re-arm windows.
func NewTracker() *Tracker {
	return &Tracker{hold: keyHoldDuration, rearm: edgeRearmDuration}
}

// Reset forgets every key, so keys held across a level reload do not leak
// into the new match.
func (t *Tracker) Reset() {
	t.last = [numKeys]time.Time{}
	t.pending = t.pending[:0]
}

// Apply parses a batch of bytes received at now and returns the frame input.
// An escape sequence cut off at the end of the batch is kept for the next
// one; a lone ESC becomes Quit once escTimeout passes with nothing after it.
func (t *Tracker) Apply(buf []byte, now time.Time) Input {
	t.pressed = [numKeys]bool{}
	active := len(buf) > 0

	since := now
	expired := false
	if len(t.pending) > 0 {
		since = t.pendingAt
		expired = len(buf) == 0 && now.Sub(since) >= escTimeout
		buf = append(append([]byte(nil), t.pending...), buf...)
		t.pending = t.pending[:0]
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			if k, ok := keyForByte(b); ok {
				t.pressed[k] = true
			}
			continue
		}

		if i+1 == len(buf) {
			if !expired {
				t.keep(buf[i:], since)
				break
			}
			t.pressed[keyQuit] = true
			continue
		}

		// CSI (ESC [ <params> <final>) or SS3 (ESC O <final>).
		if next := buf[i+1]; next == '[' || next == 'O' {
			j := i + 2
			for j < len(buf) && (buf[j] < 0x40 || buf[j] > 0x7e) {
				j++
			}
			if j == len(buf) {
				if !expired {
					t.keep(buf[i:], since)
				}
				break
			}
			switch buf[j] {
			case 'A':
				t.pressed[keyUp] = true
			case 'B':
				t.pressed[keyDown] = true
			case 'C':
				t.pressed[keyRight] = true
			case 'D':
				t.pressed[keyLeft] = true
			}
			i = j
			continue
		}

		t.pressed[keyQuit] = true
	}

	in := Input{Active: active}
	edge := func(k key) bool {
		if !t.pressed[k] {
			return false
		}
		fresh := t.last[k].IsZero() || now.Sub(t.last[k]) > t.rearm
		t.last[k] = now
		return fresh
	}
	in.Shade = edge(keyShade)
	in.Sol = edge(keySol)
	in.Fire = edge(keyFire)
	in.Reload = edge(keyReload)
	in.Quit = edge(keyQuit)

	held := func(k key) bool {
		if t.pressed[k] {
			t.last[k] = now
			return true
		}
		return !t.last[k].IsZero() && now.Sub(t.last[k]) < t.hold
	}
	if held(keyUp) {
		in.Vertical++
	}
	if held(keyDown) {
		in.Vertical--
	}
	if held(keyRight) {
		in.Horizontal++
	}
	if held(keyLeft) {
		in.Horizontal--
	}
	return in
}

// keep holds an incomplete escape sequence for the next batch.
func (t *Tracker) keep(seq []byte, since time.Time) {
	t.pending = append(t.pending[:0], seq...)
	t.pendingAt = since
}

// keyForByte maps a single byte to its key.
func keyForByte(b byte) (key, bool) {
	switch b {
	case 'w', 'W':
		return keyUp, true
	case 's', 'S':
		return keyDown, true
	case 'a', 'A':
		return keyLeft, true
	case 'd', 'D':
		return keyRight, true
	case 'q', 'Q':
		return keyShade, true
	case 'e', 'E':
		return keySol, true
	case ' ':
		return keyFire, true
	case '\b', '\x7f':
		return keyReload, true
	case '\x03':
		return keyQuit, true
	}
	return 0, false
}

// Stream delivers input bytes via a channel and tracks key state.
type Stream struct {
	ch      chan byte
	tracker *Tracker
	closed  bool
	buf     []byte
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r io.Reader) *Stream {
	s := &Stream{
		ch:      make(chan byte, 128),
		tracker: NewTracker(),
	}
	go func() {
		one := make([]byte, 64)
		for {
			n, err := r.Read(one)
			for _, b := range one[:n] {
				s.ch <- b
			}
			if err != nil {
				close(s.ch)
				return
			}
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// returns the frame input at now.
func (s *Stream) ReadInput(now time.Time) Input {
	s.buf = s.buf[:0]
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			s.buf = append(s.buf, b)
		default:
			break drain
		}
	}
	return s.tracker.Apply(s.buf, now)
}

// Closed reports whether the underlying reader has hit EOF or an error.
func (s *Stream) Closed() bool {
	return s.closed
}

// Reset forgets held keys.
func (s *Stream) Reset() {
	s.tracker.Reset()
}
