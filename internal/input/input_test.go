package input

import (
	"bytes"
	"testing"
	"time"
)

func TestTrackerAxes(t *testing.T) {
	tests := []struct {
		name  string
		bytes string
		h, v  float64
	}{
		{"forward", "w", 0, 1},
		{"reverse arrow", "\x1b[B", 0, -1},
		{"turn right", "d", 1, 0},
		{"turn left arrow", "\x1b[D", -1, 0},
		{"diagonal", "wa", -1, 1},
		{"opposites cancel", "ws", 0, 0},
		{"nothing", "", 0, 0},
	}

	now := time.Unix(100, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewTracker().Apply([]byte(tt.bytes), now)
			if in.Horizontal != tt.h || in.Vertical != tt.v {
				t.Fatalf("axes = (%v, %v), want (%v, %v)", in.Horizontal, in.Vertical, tt.h, tt.v)
			}
		})
	}
}

func TestTrackerHoldsMovement(t *testing.T) {
	tr := NewTracker()
	now := time.Unix(100, 0)
	tr.Apply([]byte("w"), now)

	if in := tr.Apply(nil, now.Add(keyHoldDuration/2)); in.Vertical != 1 {
		t.Fatalf("movement should be held within the hold window")
	}
	if in := tr.Apply(nil, now.Add(2*keyHoldDuration)); in.Vertical != 0 {
		t.Fatalf("movement should stop after the hold window")
	}
}

func TestTrackerEdges(t *testing.T) {
	tr := NewTracker()
	now := time.Unix(100, 0)

	in := tr.Apply([]byte("q"), now)
	if !in.Shade {
		t.Fatalf("first press should be an edge")
	}

	// Auto-repeat while held.
	in = tr.Apply([]byte("q"), now.Add(30*time.Millisecond))
	if in.Shade {
		t.Fatalf("repeat within the re-arm window should not be an edge")
	}
	in = tr.Apply(nil, now.Add(40*time.Millisecond))
	if in.Shade {
		t.Fatalf("no bytes should mean no edge")
	}

	in = tr.Apply([]byte("q"), now.Add(time.Second))
	if !in.Shade {
		t.Fatalf("press after release should be a new edge")
	}
}

func TestTrackerKeyBindings(t *testing.T) {
	now := time.Unix(100, 0)
	in := NewTracker().Apply([]byte("qe \x7f"), now)
	if !in.Shade || !in.Sol || !in.Fire || !in.Reload {
		t.Fatalf("missing edges: %+v", in)
	}
	if in.Quit {
		t.Fatalf("quit should not be set")
	}

	if in := NewTracker().Apply([]byte{0x03}, now); !in.Quit {
		t.Fatalf("ctrl-c should quit")
	}
	if in := NewTracker().Apply([]byte("\x1bx"), now); !in.Quit {
		t.Fatalf("escape followed by another key should quit")
	}
	if in := NewTracker().Apply([]byte("\x1b[A"), now); in.Quit {
		t.Fatalf("arrow key must not quit")
	}
}

func TestTrackerEscapeAcrossReads(t *testing.T) {
	now := time.Unix(100, 0)
	tests := []struct {
		name   string
		chunks []string
		h, v   float64
	}{
		{"escape then bracket and final", []string{"\x1b", "[A"}, 0, 1},
		{"escape bracket then final", []string{"\x1b[", "D"}, -1, 0},
		{"three reads", []string{"\x1b", "[", "C"}, 1, 0},
		{"application mode arrow", []string{"\x1bO", "B"}, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			var in Input
			for i, c := range tt.chunks {
				in = tr.Apply([]byte(c), now.Add(time.Duration(i)*time.Millisecond))
				if in.Quit {
					t.Fatalf("chunk %d: split arrow key must not quit", i)
				}
			}
			if in.Horizontal != tt.h || in.Vertical != tt.v {
				t.Fatalf("axes = (%v, %v), want (%v, %v)", in.Horizontal, in.Vertical, tt.h, tt.v)
			}
		})
	}
}

func TestTrackerLoneEscapeQuitsAfterTimeout(t *testing.T) {
	tr := NewTracker()
	now := time.Unix(100, 0)
	if in := tr.Apply([]byte{0x1b}, now); in.Quit {
		t.Fatalf("escape should wait for the rest of a sequence")
	}
	if in := tr.Apply(nil, now.Add(escTimeout/2)); in.Quit {
		t.Fatalf("escape should still be pending before the timeout")
	}
	if in := tr.Apply(nil, now.Add(escTimeout)); !in.Quit {
		t.Fatalf("lone escape should quit after the timeout")
	}
	if in := tr.Apply(nil, now.Add(2*escTimeout)); in.Quit {
		t.Fatalf("quit should be reported once")
	}
}

func TestTrackerReset(t *testing.T) {
	tr := NewTracker()
	now := time.Unix(100, 0)
	tr.Apply([]byte("w"), now)
	tr.Reset()
	if in := tr.Apply(nil, now.Add(time.Millisecond)); in.Vertical != 0 {
		t.Fatalf("Reset should release held keys")
	}

	tr.Apply([]byte{0x1b}, now)
	tr.Reset()
	if in := tr.Apply(nil, now.Add(time.Second)); in.Quit {
		t.Fatalf("Reset should drop a pending escape")
	}
}

func TestStreamDrainsReader(t *testing.T) {
	s := StartStream(bytes.NewReader([]byte("q")))

	deadline := time.Now().Add(time.Second)
	var in Input
	for time.Now().Before(deadline) {
		in = s.ReadInput(time.Now())
		if in.Shade {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if !in.Shade {
		t.Fatalf("stream never delivered the key")
	}

	for time.Now().Before(deadline) && !s.Closed() {
		s.ReadInput(time.Now())
		time.Sleep(time.Millisecond)
	}
	if !s.Closed() {
		t.Fatalf("stream should report EOF")
	}
}
