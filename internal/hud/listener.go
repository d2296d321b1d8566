package hud

import (
	"github.com/tomz197/shadestep/internal/draw"
	"github.com/tomz197/shadestep/internal/object"
	"github.com/tomz197/shadestep/internal/power"
	"github.com/tomz197/shadestep/internal/ship"
)

// PowerColor returns the signature colour of a power.
func PowerColor(k power.Kind) string {
	switch k {
	case power.Shade:
		return draw.ColorShade
	case power.Sol:
		return draw.ColorSol
	case power.Charge:
		return draw.ColorCharge
	}
	return draw.ColorShip
}

func obtainCue(k power.Kind) Cue {
	switch k {
	case power.Shade:
		return CueShadeObtain
	case power.Sol:
		return CueSolObtain
	}
	return CueChargeObtain
}

// Listener turns ship events into sounds, flashes, fin colours and particle
// bursts. Every field may be nil.
type Listener struct {
	Audio   *Audio
	Flash   *Flash
	Spawner object.Spawner
	Locate  func() (x, y float64) // Ship position for particle bursts

	fins power.Set
}

var _ ship.Listener = (*Listener)(nil)

// Fin reports whether the fin for k is tinted, which happens once k is
// obtained.
func (l *Listener) Fin(k power.Kind) bool {
	return l.fins.Has(k)
}

func (l *Listener) OnObtain(k power.Kind) {
	l.fins = l.fins.With(k)
	l.play(obtainCue(k))
	l.flash(PowerColor(k))
}

func (l *Listener) OnActivate(k power.Kind) {
	if k == power.Shade {
		l.play(CueShade)
	} else {
		l.play(CueSol)
	}
	l.flash(PowerColor(k))
	l.burst(12, 14, object.PowerInk(k))
}

func (l *Listener) OnDeactivate(k power.Kind) {
	l.play(CuePowerdown)
	l.flash(draw.ColorBackground)
}

func (l *Listener) OnFire() {
	l.play(CueChargeFire)
}

func (l *Listener) OnDeath() {
	l.play(CueDeath)
	if l.Audio != nil {
		l.Audio.SetEngine(false)
	}
	l.burst(24, 25, draw.InkHazard)
}

func (l *Listener) OnWin() {
	l.play(CueWin)
	if l.Audio != nil {
		l.Audio.SetEngine(false)
	}
	l.burst(24, 20, draw.InkWin)
}

func (l *Listener) play(c Cue) {
	if l.Audio != nil {
		l.Audio.Play(c)
	}
}

func (l *Listener) flash(color string) {
	if l.Flash != nil {
		l.Flash.Start(FlashDuration, FlashAlpha, color)
	}
}

func (l *Listener) burst(count int, speed float64, ink draw.Ink) {
	if l.Spawner == nil || l.Locate == nil {
		return
	}
	x, y := l.Locate()
	object.SpawnExplosion(x, y, count, speed, 0.8, ink, l.Spawner)
}
