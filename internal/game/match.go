// Package game runs matches: one ship flying through one level, driven by a
// frame loop that owns all match state.
package game

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"

	"github.com/tomz197/shadestep/internal/config"
	"github.com/tomz197/shadestep/internal/hud"
	"github.com/tomz197/shadestep/internal/input"
	"github.com/tomz197/shadestep/internal/level"
	"github.com/tomz197/shadestep/internal/object"
	"github.com/tomz197/shadestep/internal/physics"
	"github.com/tomz197/shadestep/internal/sched"
	"github.com/tomz197/shadestep/internal/ship"
	"github.com/tomz197/shadestep/internal/world"
)

// maxFixedSteps bounds how many physics steps one frame may run.
const maxFixedSteps = 8

// Match is one run through a level. It is not safe for concurrent use; the
// session goroutine calls every method.
type Match struct {
	def    *level.Def
	tuning config.Tuning
	logger *log.Logger
	audio  *hud.Audio

	world  *world.World
	space  *physics.Space
	sched  *sched.Scheduler
	body   *physics.Body
	ship   *ship.Ship
	text   *hud.Text
	flash  *hud.Flash
	fx     *hud.Listener
	camera *hud.Camera
	built  level.Built

	step    time.Duration
	acc     time.Duration
	done    bool
	reloads int
}

// NewMatch creates a match on def and builds it. logger may be nil.
func NewMatch(def *level.Def, tuning config.Tuning, logger *log.Logger, bell bool) *Match {
	if logger == nil {
		logger = log.Default()
	}
	m := &Match{
		def:    def,
		tuning: tuning,
		logger: logger,
		audio:  hud.NewAudio(logger, bell),
		step:   tuning.Step(),
	}
	m.Init()
	return m
}

// Init builds the level, the ship and its collaborators from scratch.
// Anything left from a previous build is released first.
func (m *Match) Init() {
	if m.world != nil {
		m.world.Clear()
	}
	m.world = world.New()
	m.space = physics.NewSpace(m.tuning.Physics())
	m.sched = sched.New()
	m.text = &hud.Text{}
	m.flash = &hud.Flash{}
	m.built = level.Build(m.def, m.world, m.space)

	m.body = m.space.AddShip(m.built.StartX, m.built.StartY, m.built.StartAngle, nil)
	m.fx = &hud.Listener{
		Audio:   m.audio,
		Flash:   m.flash,
		Spawner: m.world,
		Locate:  m.body.Position,
	}
	m.ship = ship.New(m.tuning.Ship(), ship.Deps{
		Body:      m.body,
		Index:     m.world,
		Scheduler: m.sched,
		Spawner:   m,
		Text:      m.text,
		Listener: ship.Listeners{m.fx, ship.ListenerFuncs{
			Death: func() { m.logger.Info("ship destroyed", "level", m.built.Name, "t", m.sched.Now()) },
			Win:   func() { m.logger.Info("level complete", "level", m.built.Name, "t", m.sched.Now()) },
		}},
	})
	m.camera = hud.NewCamera(m.built.StartX, m.built.StartY, m.built.StartX, m.built.StartY)
	m.audio.SetEngine(false)
	m.acc = 0
}

// Reload hides the message and rebuilds the match on the current level.
func (m *Match) Reload() {
	m.text.HideText()
	m.Init()
	m.reloads++
	m.logger.Info("level reloaded", "level", m.built.Name, "reloads", m.reloads)
}

// SetLevel swaps in a new level definition and rebuilds the match on it.
func (m *Match) SetLevel(def *level.Def) {
	m.def = def
	m.Reload()
}

// Tick advances the match by one frame of dt.
func (m *Match) Tick(dt time.Duration, in input.Input) error {
	if in.Quit {
		m.done = true
		return nil
	}
	if in.Reload {
		m.Reload()
		return nil
	}
	if dt > config.MaxFrameDelta {
		dt = config.MaxFrameDelta
	}

	m.sched.Tick(dt)
	m.ship.Tick(in)

	m.acc += dt
	for steps := 0; m.acc >= m.step; steps++ {
		if steps == maxFixedSteps {
			m.acc = 0
			break
		}
		m.FixedTick(in)
		m.acc -= m.step
	}

	if err := m.world.Update(dt); err != nil {
		return err
	}

	m.audio.SetEngine(m.ship.Thrusting())
	x, y := m.body.Position()
	if m.ship.Thrusting() && in.Vertical > 0 {
		object.SpawnThrust(x, y, m.body.Angle(), m.world)
	}
	m.camera.Follow(x, y)
	m.flash.Update(dt)
	return nil
}

// FixedTick runs one physics step and resolves the contacts it produced.
func (m *Match) FixedTick(in input.Input) {
	m.ship.FixedTick(in)
	m.space.Step(m.step.Seconds())
	m.resolve(m.space.Drain())
}

// resolve applies gameplay for contacts reported by the last step. Shapes
// may be removed here since the step has finished.
func (m *Match) resolve(contacts []physics.Contact) {
	for _, c := range contacts {
		switch c.A {
		case physics.KindShip:
			m.shipContact(c)
		case physics.KindBullet:
			m.bulletContact(c)
		}
	}
}

func (m *Match) shipContact(c physics.Contact) {
	switch other := c.OwnerB.(type) {
	case *object.Pickup:
		if other.Collect() {
			m.ship.Obtain(other.Kind)
		}
	case *object.Volume:
		if other.Kind == object.VolumeWin {
			m.ship.Win()
		} else {
			m.ship.Kill()
		}
	case *object.Block:
		if other.Mode() == object.Lethal {
			m.ship.Kill()
		}
	}
}

func (m *Match) bulletContact(c physics.Contact) {
	bullet, ok := c.OwnerA.(object.Destructible)
	if !ok || bullet.IsDestroyed() {
		return
	}
	bullet.MarkDestroyed()

	barrier, ok := c.OwnerB.(*object.Barrier)
	if !ok || !barrier.Shatter() {
		return
	}
	m.audio.Play(hud.CueShatter)
	m.sched.After(m.tuning.BarrierDelayDuration(), barrier.MarkDestroyed)
}

// SpawnBullet adds a bullet body with the given impulse and its world
// object.
func (m *Match) SpawnBullet(pos cp.Vector, angle float64, impulse cp.Vector) {
	b := object.NewBullet(pos.X, pos.Y, m.tuning.BulletLifetime)
	b.Attach(m.space.AddBullet(pos.X, pos.Y, object.BulletRadius, impulse, b))
	m.world.Spawn(b)
}

var _ ship.Spawner = (*Match)(nil)

// Done reports whether the player asked to quit.
func (m *Match) Done() bool { return m.done }

// Ship returns the player ship.
func (m *Match) Ship() *ship.Ship { return m.ship }

// Body returns the ship's physics body.
func (m *Match) Body() *physics.Body { return m.body }

// World returns the level objects.
func (m *Match) World() *world.World { return m.world }

// Text returns the message box.
func (m *Match) Text() *hud.Text { return m.text }

// Audio returns the cue player.
func (m *Match) Audio() *hud.Audio { return m.audio }

// Flash returns the screen flash.
func (m *Match) Flash() *hud.Flash { return m.flash }

// Camera returns the follow camera.
func (m *Match) Camera() *hud.Camera { return m.camera }

// Level describes the built level.
func (m *Match) Level() level.Built { return m.built }

// Now returns the match clock.
func (m *Match) Now() time.Duration { return m.sched.Now() }

// Reloads returns how many times the match has been rebuilt.
func (m *Match) Reloads() int { return m.reloads }
