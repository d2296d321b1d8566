package hud

import (
	"github.com/charmbracelet/log"
)

// Cue is a one-shot sound effect.
type Cue uint8

const (
	CueShadeObtain Cue = iota
	CueShade
	CueSolObtain
	CueSol
	CueChargeObtain
	CueChargeFire
	CuePowerdown
	CueDeath
	CueWin
	CueShatter
)

var cueNames = [...]string{
	CueShadeObtain:  "shade-obtain",
	CueShade:        "shade",
	CueSolObtain:    "sol-obtain",
	CueSol:          "sol",
	CueChargeObtain: "charge-obtain",
	CueChargeFire:   "charge-fire",
	CuePowerdown:    "powerdown",
	CueDeath:        "death",
	CueWin:          "win",
	CueShatter:      "shatter",
}

func (c Cue) String() string {
	if int(c) < len(cueNames) {
		return cueNames[c]
	}
	return "cue"
}

// Audio stands in for the sound player. Terminals have no mixer, so a cue
// rings the bell (when enabled) and the engine hum is a flag the HUD shows.
type Audio struct {
	logger *log.Logger
	bell   bool
	ring   bool
	engine bool
	played []Cue
}

// NewAudio creates a cue player. logger may be nil.
func NewAudio(logger *log.Logger, bell bool) *Audio {
	return &Audio{logger: logger, bell: bell}
}

// maxRecent is how many played cues Recent keeps.
const maxRecent = 16

// Play plays a one-shot cue.
func (a *Audio) Play(c Cue) {
	if len(a.played) == maxRecent {
		a.played = append(a.played[:0], a.played[1:]...)
	}
	a.played = append(a.played, c)
	if a.bell {
		a.ring = true
	}
	if a.logger != nil {
		a.logger.Debug("cue", "name", c)
	}
}

// TakeBell reports whether the bell should ring this frame and clears it.
func (a *Audio) TakeBell() bool {
	r := a.ring
	a.ring = false
	return r
}

// SetEngine starts or stops the engine hum.
func (a *Audio) SetEngine(on bool) {
	a.engine = on
}

// Engine reports whether the engine hum is playing.
func (a *Audio) Engine() bool {
	return a.engine
}

// Recent returns a copy of the most recently played cues, oldest first.
func (a *Audio) Recent() []Cue {
	return append([]Cue(nil), a.played...)
}
