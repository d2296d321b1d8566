package hud

import "time"

// Default flash shape.
const (
	FlashDuration = 250 * time.Millisecond
	FlashAlpha    = 0.5
)

// Flash is a full-screen colour flash that fades in and back out.
type Flash struct {
	color    string
	duration time.Duration
	maxAlpha float64
	elapsed  time.Duration
	running  bool
}

// Start begins a new flash, replacing any running one.
func (f *Flash) Start(duration time.Duration, maxAlpha float64, color string) {
	if duration <= 0 || maxAlpha <= 0 {
		f.running = false
		return
	}
	f.color = color
	f.duration = duration
	f.maxAlpha = maxAlpha
	f.elapsed = 0
	f.running = true
}

// Update advances the flash.
func (f *Flash) Update(dt time.Duration) {
	if !f.running {
		return
	}
	f.elapsed += dt
	if f.elapsed >= f.duration {
		f.running = false
	}
}

// Intensity returns the current alpha: a triangle peaking at maxAlpha
// halfway through the flash.
func (f *Flash) Intensity() float64 {
	if !f.running {
		return 0
	}
	half := f.duration / 2
	if half <= 0 {
		return 0
	}
	t := float64(f.elapsed) / float64(half)
	if t > 1 {
		t = 2 - t
	}
	if t < 0 {
		t = 0
	}
	return t * f.maxAlpha
}

// Color returns the colour of the current flash.
func (f *Flash) Color() string {
	return f.color
}

// Running reports whether a flash is in progress.
func (f *Flash) Running() bool {
	return f.running
}
