package config

import "time"

// View resolution - the visible viewport in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 120 // Logical viewport width
	ViewHeight = 80  // Logical viewport height (in sub-pixels, so 40 terminal rows)
)

// Max render resolution. Larger terminals get a centred, bordered area.
const (
	MaxTermWidth  = 240
	MaxTermHeight = 80
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxFrameDelta         = 100 * time.Millisecond // Longest frame a match simulates at once
)

// Reload
const (
	LevelWatchDebounce = 200 * time.Millisecond // Quiet period before a level file reload
)
