// Package ship implements the player ship: power pickups, timed
// activations, firing, movement and the terminal death/win states.
package ship

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"

	"github.com/tomz197/shadestep/internal/input"
	"github.com/tomz197/shadestep/internal/power"
	"github.com/tomz197/shadestep/internal/sched"
	"github.com/tomz197/shadestep/internal/world"
)

// Status is the ship's lifecycle state. Dead and Won are terminal.
type Status uint8

const (
	Playing Status = iota
	Dead
	Won
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Dead:
		return "dead"
	case Won:
		return "won"
	}
	return "unknown"
}

// Messages shown on death and win.
const (
	DeathMessage = "You died!\nPress backspace to restart."
	WinMessage   = "You win!"
)

// Body is the physics body the ship drives.
type Body interface {
	ApplyForce(f cp.Vector)
	Rotate(delta float64)
	Angle() float64
	Vector() cp.Vector
	Freeze()
}

// Scheduler runs a callback after a delay on the match goroutine.
type Scheduler interface {
	After(delay time.Duration, fn func()) *sched.Task
}

// Spawner creates bullets.
type Spawner interface {
	SpawnBullet(pos cp.Vector, angle float64, impulse cp.Vector)
}

// TextDisplay shows a centred message.
type TextDisplay interface {
	ShowText(text string)
	HideText()
}

// Config holds the ship's tuning.
type Config struct {
	MoveSpeed       float64       // Thrust force per fixed step
	TurnSpeed       float64       // Degrees per fixed step
	ShadeDuration   time.Duration // How long Shadestep lasts
	SolDuration     time.Duration // How long Flamestride lasts
	BulletImpulse   float64       // Impulse given to each bullet
	NoseOffset      float64       // Bullet spawn distance ahead of the ship
	MessageDuration time.Duration // How long obtain messages stay up
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		MoveSpeed:       12,
		TurnSpeed:       3,
		ShadeDuration:   500 * time.Millisecond,
		SolDuration:     2 * time.Second,
		BulletImpulse:   40,
		NoseOffset:      2.5,
		MessageDuration: 4 * time.Second,
	}
}

// Deps are the ship's collaborators. Index and Scheduler are required; the
// rest may be nil.
type Deps struct {
	Body      Body
	Index     world.Index
	Scheduler Scheduler
	Spawner   Spawner
	Text      TextDisplay
	Listener  Listener
}

// Ship is the player ship of one match. It is not safe for concurrent use.
type Ship struct {
	cfg    Config
	powers power.State
	status Status

	body      Body
	sched     Scheduler
	hazards   *Coordinator
	spawner   Spawner
	text      TextDisplay
	listener  Listener
	thrusting bool
	message   *sched.Task // Pending hide of the current message
	expiry    map[power.Kind]time.Duration
}

// New creates a ship in the Playing state.
func New(cfg Config, deps Deps) *Ship {
	return &Ship{
		cfg:      cfg,
		body:     deps.Body,
		sched:    deps.Scheduler,
		hazards:  NewCoordinator(deps.Index),
		spawner:  deps.Spawner,
		text:     deps.Text,
		listener: deps.Listener,
		expiry:   make(map[power.Kind]time.Duration),
	}
}

// Status returns the lifecycle state.
func (s *Ship) Status() Status { return s.status }

// IsDead reports whether the ship was killed. A won ship is not dead.
func (s *Ship) IsDead() bool { return s.status == Dead }

// Active reports whether the ship still accepts movement and power input.
func (s *Ship) Active() bool { return s.status == Playing }

// Thrusting reports whether the engine hum should be playing.
func (s *Ship) Thrusting() bool { return s.thrusting }

// Obtained reports whether k has been picked up.
func (s *Ship) Obtained(k power.Kind) bool { return s.powers.Obtained(k) }

// Empowered reports whether k's timed effect is running.
func (s *Ship) Empowered(k power.Kind) bool { return s.powers.Empowered(k) }

// Powers returns a copy of the power state.
func (s *Ship) Powers() power.State { return s.powers }

// Obtain records a power pickup and reports whether k is new. Every pickup
// notifies listeners and shows the ability hint again, but the power state
// only changes the first time.
func (s *Ship) Obtain(k power.Kind) bool {
	fresh := s.powers.Obtain(k)
	if s.listener != nil {
		s.listener.OnObtain(k)
	}
	s.showMessage(ObtainMessage(k), s.cfg.MessageDuration)
	return fresh
}

// Activate starts the timed effect of k. It reports false, with no side
// effects, unless k is obtained, timed, not already empowered and the ship
// is active. The revert is scheduled and always runs, even after death.
func (s *Ship) Activate(k power.Kind) bool {
	if !s.Active() || !s.powers.Begin(k) {
		return false
	}
	s.hazards.Apply(k)
	if s.listener != nil {
		s.listener.OnActivate(k)
	}

	d := s.duration(k)
	task := s.sched.After(d, func() { s.expire(k) })
	s.expiry[k] = task.Due()
	return true
}

func (s *Ship) expire(k power.Kind) {
	s.hazards.Revert(k)
	s.powers.End(k)
	if s.listener != nil {
		s.listener.OnDeactivate(k)
	}
}

// ExpiresAt returns the scheduler time at which an empowered k ends.
func (s *Ship) ExpiresAt(k power.Kind) (time.Duration, bool) {
	if !s.powers.Empowered(k) {
		return 0, false
	}
	return s.expiry[k], true
}

func (s *Ship) duration(k power.Kind) time.Duration {
	switch k {
	case power.Shade:
		return s.cfg.ShadeDuration
	case power.Sol:
		return s.cfg.SolDuration
	}
	return 0
}

// Fire shoots one bullet from the nose if Chargeblaster is obtained.
func (s *Ship) Fire() bool {
	if !s.Active() || !s.powers.Obtained(power.Charge) {
		return false
	}
	if s.spawner != nil && s.body != nil {
		angle := s.body.Angle()
		facing := cp.ForAngle(angle)
		pos := s.body.Vector().Add(facing.Mult(s.cfg.NoseOffset))
		s.spawner.SpawnBullet(pos, angle, facing.Mult(s.cfg.BulletImpulse))
	}
	if s.listener != nil {
		s.listener.OnFire()
	}
	return true
}

// Kill ends the match in defeat. Only the first terminal transition counts.
func (s *Ship) Kill() bool {
	if !s.finish(Dead) {
		return false
	}
	if s.listener != nil {
		s.listener.OnDeath()
	}
	s.showMessage(DeathMessage, 0)
	return true
}

// Win ends the match in victory. Only the first terminal transition counts.
func (s *Ship) Win() bool {
	if !s.finish(Won) {
		return false
	}
	if s.listener != nil {
		s.listener.OnWin()
	}
	s.showMessage(WinMessage, 0)
	return true
}

func (s *Ship) finish(status Status) bool {
	if s.status != Playing {
		return false
	}
	s.status = status
	s.thrusting = false
	if s.body != nil {
		s.body.Freeze()
	}
	return true
}

// Tick handles key edges for one frame.
func (s *Ship) Tick(in input.Input) {
	if !s.Active() {
		s.thrusting = false
		return
	}
	s.thrusting = in.Vertical != 0
	if in.Shade {
		s.Activate(power.Shade)
	}
	if in.Sol {
		s.Activate(power.Sol)
	}
	if in.Fire {
		s.Fire()
	}
}

// FixedTick applies thrust and turning for one physics step.
func (s *Ship) FixedTick(in input.Input) {
	if !s.Active() || s.body == nil {
		return
	}
	s.body.ApplyForce(s.DesiredLinearForce(in.Vertical))
	s.body.Rotate(s.DesiredRotationDelta(in.Horizontal))
}

// DesiredLinearForce returns the thrust along the ship's facing for a
// forward axis value in [-1, 1].
func (s *Ship) DesiredLinearForce(forward float64) cp.Vector {
	if !s.Active() || s.body == nil || forward == 0 {
		return cp.Vector{}
	}
	return cp.ForAngle(s.body.Angle()).Mult(forward * s.cfg.MoveSpeed)
}

// DesiredRotationDelta returns the yaw change in radians for a turn axis
// value in [-1, 1].
func (s *Ship) DesiredRotationDelta(turn float64) float64 {
	if !s.Active() {
		return 0
	}
	return turn * s.cfg.TurnSpeed * math.Pi / 180
}

// showMessage replaces the current message. A positive hideAfter schedules
// a hide; the previous hide is cancelled so it cannot clear the new text.
func (s *Ship) showMessage(text string, hideAfter time.Duration) {
	if s.text == nil {
		return
	}
	s.message.Cancel()
	s.message = nil
	s.text.ShowText(text)
	if hideAfter > 0 {
		s.message = s.sched.After(hideAfter, s.text.HideText)
	}
}

// ObtainMessage returns the hint shown when k is picked up.
func ObtainMessage(k power.Kind) string {
	switch k {
	case power.Shade:
		return "Obtained Shadestep!\nPress Q to phase through shadow blocks"
	case power.Sol:
		return "Obtained Flamestride!\nPress E to be protected from fire blocks"
	case power.Charge:
		return "Obtained Chargeblaster!\nPress space to fire lasers that destroy blue barriers"
	}
	return ""
}
