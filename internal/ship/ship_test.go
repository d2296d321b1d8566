package ship

import (
	"math"
	"testing"
	"time"

	"github.com/jakecoffman/cp"

	"github.com/tomz197/shadestep/internal/input"
	"github.com/tomz197/shadestep/internal/object"
	"github.com/tomz197/shadestep/internal/power"
	"github.com/tomz197/shadestep/internal/sched"
	"github.com/tomz197/shadestep/internal/world"
)

type fakeBody struct {
	pos    cp.Vector
	angle  float64
	force  cp.Vector
	frozen int
}

func (b *fakeBody) ApplyForce(f cp.Vector) { b.force = b.force.Add(f) }
func (b *fakeBody) Rotate(delta float64)   { b.angle += delta }
func (b *fakeBody) Angle() float64         { return b.angle }
func (b *fakeBody) Vector() cp.Vector      { return b.pos }
func (b *fakeBody) Freeze()                { b.frozen++ }

type fakeSpawner struct {
	shots []cp.Vector
}

func (s *fakeSpawner) SpawnBullet(pos cp.Vector, angle float64, impulse cp.Vector) {
	s.shots = append(s.shots, impulse)
}

type fakeText struct {
	text  string
	shown int
}

func (t *fakeText) ShowText(text string) { t.text = text; t.shown++ }
func (t *fakeText) HideText()            { t.text = "" }

type counters struct {
	obtain, activate, deactivate, fire, death, win int
}

func (c *counters) listener() Listener {
	return ListenerFuncs{
		Obtain:     func(power.Kind) { c.obtain++ },
		Activate:   func(power.Kind) { c.activate++ },
		Deactivate: func(power.Kind) { c.deactivate++ },
		Fire:       func() { c.fire++ },
		Death:      func() { c.death++ },
		Win:        func() { c.win++ },
	}
}

type harness struct {
	ship    *Ship
	sched   *sched.Scheduler
	world   *world.World
	body    *fakeBody
	spawner *fakeSpawner
	text    *fakeText
	count   *counters
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		sched:   sched.New(),
		world:   world.New(),
		body:    &fakeBody{},
		spawner: &fakeSpawner{},
		text:    &fakeText{},
		count:   &counters{},
	}
	h.ship = New(DefaultConfig(), Deps{
		Body:      h.body,
		Index:     h.world,
		Scheduler: h.sched,
		Spawner:   h.spawner,
		Text:      h.text,
		Listener:  h.count.listener(),
	})
	return h
}

func (h *harness) addBlocks(tag object.Tag, n int) []*object.Block {
	blocks := make([]*object.Block, n)
	for i := range blocks {
		blocks[i] = object.NewBlock(tag, object.Rect{X: float64(i * 10), W: 4, H: 4})
		h.world.Add(blocks[i])
	}
	return blocks
}

func TestActivateRequiresObtained(t *testing.T) {
	for _, k := range power.Kinds {
		t.Run(k.String(), func(t *testing.T) {
			h := newHarness(t)
			if h.ship.Activate(k) {
				t.Fatalf("Activate(%v) succeeded before obtain", k)
			}
			if h.ship.Empowered(k) || h.count.activate != 0 || h.sched.Pending() != 0 {
				t.Fatalf("rejected activation had side effects")
			}
		})
	}
}

func TestActivateRejectedWhenTerminal(t *testing.T) {
	tests := []struct {
		name   string
		finish func(*Ship) bool
	}{
		{"dead", (*Ship).Kill},
		{"won", (*Ship).Win},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.ship.Obtain(power.Shade)
			tt.finish(h.ship)
			if h.ship.Activate(power.Shade) {
				t.Fatalf("Activate succeeded in a terminal state")
			}
			if h.ship.Empowered(power.Shade) {
				t.Fatalf("terminal ship became empowered")
			}
		})
	}
}

func TestChargeIsNeverActivated(t *testing.T) {
	h := newHarness(t)
	h.ship.Obtain(power.Charge)
	if h.ship.Activate(power.Charge) {
		t.Fatalf("charge has no timed effect to activate")
	}
}

func TestDoubleActivation(t *testing.T) {
	h := newHarness(t)
	h.ship.Obtain(power.Sol)

	if !h.ship.Activate(power.Sol) {
		t.Fatalf("first activation should succeed")
	}
	h.sched.Tick(time.Second)
	if h.ship.Activate(power.Sol) {
		t.Fatalf("second activation within the window should be a no-op")
	}
	if !h.ship.Empowered(power.Sol) || h.ship.Powers().EmpoweredSet().Len() != 1 {
		t.Fatalf("sol should be empowered exactly once")
	}
	if h.count.activate != 1 || h.sched.Pending() != 2 {
		// Pending: sol expiry plus the obtain message hide.
		t.Fatalf("activate events = %d, pending = %d", h.count.activate, h.sched.Pending())
	}
}

func TestShadeExpiryRestoresBlocks(t *testing.T) {
	h := newHarness(t)
	blocks := h.addBlocks(object.TagShadeBlock, 3)
	h.ship.Obtain(power.Shade)
	h.ship.Activate(power.Shade)

	for _, b := range blocks {
		if b.Mode() != object.PassThrough {
			t.Fatalf("shade block mode = %v during shade, want pass-through", b.Mode())
		}
	}

	h.sched.Tick(DefaultConfig().ShadeDuration - time.Millisecond)
	if !h.ship.Empowered(power.Shade) {
		t.Fatalf("shade ended early")
	}

	h.sched.Tick(time.Millisecond)
	for _, b := range blocks {
		if b.Mode() != object.Solid {
			t.Fatalf("shade block mode = %v after expiry, want solid", b.Mode())
		}
	}
	if h.ship.Empowered(power.Shade) {
		t.Fatalf("shade still empowered after expiry")
	}
	if h.count.deactivate != 1 {
		t.Fatalf("deactivate events = %d, want 1", h.count.deactivate)
	}
	if !h.ship.Activate(power.Shade) {
		t.Fatalf("shade should be usable again after expiry")
	}
}

func TestSolTogglesFireBlocks(t *testing.T) {
	h := newHarness(t)
	fire := h.addBlocks(object.TagFireBlock, 2)
	shade := h.addBlocks(object.TagShadeBlock, 1)
	h.ship.Obtain(power.Sol)
	h.ship.Activate(power.Sol)

	for _, b := range fire {
		if b.Mode() != object.Solid || b.Material() != object.MaterialAsteroid {
			t.Fatalf("fire block during sol = %v/%v", b.Mode(), b.Material())
		}
	}
	if shade[0].Mode() != object.Solid {
		t.Fatalf("sol must not touch shade blocks")
	}

	h.sched.Tick(DefaultConfig().SolDuration)
	for _, b := range fire {
		if b.Mode() != object.Lethal || b.Material() != object.MaterialHazard {
			t.Fatalf("fire block after sol = %v/%v", b.Mode(), b.Material())
		}
	}
}

func TestActivateWithNoBlocks(t *testing.T) {
	h := newHarness(t)
	h.ship.Obtain(power.Shade)
	if !h.ship.Activate(power.Shade) {
		t.Fatalf("activation over zero blocks should still succeed")
	}
	h.sched.Tick(time.Second)
	if h.ship.Empowered(power.Shade) {
		t.Fatalf("shade should expire")
	}
}

func TestKillIsIdempotent(t *testing.T) {
	h := newHarness(t)
	if !h.ship.Kill() {
		t.Fatalf("first Kill should succeed")
	}
	if h.ship.Kill() {
		t.Fatalf("second Kill should be a no-op")
	}
	if h.count.death != 1 || h.body.frozen != 1 || h.text.shown != 1 {
		t.Fatalf("death=%d frozen=%d shown=%d, want 1 each", h.count.death, h.body.frozen, h.text.shown)
	}
	if !h.ship.IsDead() || h.ship.Status() != Dead || h.text.text != DeathMessage {
		t.Fatalf("status=%v text=%q", h.ship.Status(), h.text.text)
	}
}

func TestWinAndKillExclusive(t *testing.T) {
	h := newHarness(t)
	h.ship.Win()
	if h.ship.Kill() {
		t.Fatalf("Kill after Win should be a no-op")
	}
	if h.ship.IsDead() || h.ship.Status() != Won {
		t.Fatalf("won ship must not be dead")
	}
	if h.count.win != 1 || h.count.death != 0 {
		t.Fatalf("win=%d death=%d", h.count.win, h.count.death)
	}
	if h.ship.Win() {
		t.Fatalf("second Win should be a no-op")
	}

	h = newHarness(t)
	h.ship.Kill()
	if h.ship.Win() {
		t.Fatalf("Win after Kill should be a no-op")
	}
}

func TestObtainTwice(t *testing.T) {
	h := newHarness(t)
	first := object.NewPickup(power.Charge, 0, 0)
	second := object.NewPickup(power.Charge, 5, 0)

	collect := func(p *object.Pickup) bool {
		changed := h.ship.Obtain(p.Kind)
		p.Collect()
		return changed
	}

	if !collect(first) {
		t.Fatalf("first obtain should change state")
	}
	before := h.ship.Powers()
	if collect(second) {
		t.Fatalf("second obtain should not change state")
	}
	if h.ship.Powers() != before {
		t.Fatalf("power state changed on repeat obtain")
	}
	if h.count.obtain != 2 || h.text.shown != 2 {
		t.Fatalf("every pickup should notify: obtain events = %d, messages = %d", h.count.obtain, h.text.shown)
	}
	if !first.Collected() || !second.Collected() {
		t.Fatalf("both pickups should be destroyed")
	}
}

func TestSolTimerSurvivesDeath(t *testing.T) {
	h := newHarness(t)
	fire := h.addBlocks(object.TagFireBlock, 1)
	h.ship.Obtain(power.Sol)
	h.ship.Activate(power.Sol)
	due, ok := h.ship.ExpiresAt(power.Sol)
	if !ok || due != DefaultConfig().SolDuration {
		t.Fatalf("ExpiresAt = %v, %v", due, ok)
	}

	h.sched.Tick(500 * time.Millisecond)
	h.ship.Kill()

	if !h.ship.Empowered(power.Sol) {
		t.Fatalf("death must not end sol early")
	}
	if fire[0].Mode() != object.Solid {
		t.Fatalf("death must not revert fire blocks early")
	}

	h.sched.Tick(DefaultConfig().SolDuration - 500*time.Millisecond - time.Millisecond)
	if !h.ship.Empowered(power.Sol) {
		t.Fatalf("sol expired before its schedule")
	}
	h.sched.Tick(time.Millisecond)
	if h.ship.Empowered(power.Sol) || fire[0].Mode() != object.Lethal {
		t.Fatalf("sol should expire on its original schedule after death")
	}
	if h.count.deactivate != 1 {
		t.Fatalf("deactivate events = %d", h.count.deactivate)
	}
}

func TestFireWithoutCharge(t *testing.T) {
	h := newHarness(t)
	if h.ship.Fire() {
		t.Fatalf("Fire without charge should be a no-op")
	}
	if len(h.spawner.shots) != 0 || h.count.fire != 0 {
		t.Fatalf("no bullet should be spawned")
	}
}

func TestFireWithCharge(t *testing.T) {
	h := newHarness(t)
	h.body.angle = math.Pi / 2
	h.ship.Obtain(power.Charge)

	if !h.ship.Fire() || !h.ship.Fire() {
		t.Fatalf("Fire should succeed with charge and has no cooldown")
	}
	if len(h.spawner.shots) != 2 || h.count.fire != 2 {
		t.Fatalf("shots = %d, fire events = %d", len(h.spawner.shots), h.count.fire)
	}
	imp := h.spawner.shots[0]
	if math.Abs(imp.X) > 1e-9 || math.Abs(imp.Y-DefaultConfig().BulletImpulse) > 1e-9 {
		t.Fatalf("impulse = %v, want along +Y", imp)
	}
	if h.ship.Empowered(power.Charge) {
		t.Fatalf("charge must never be empowered")
	}

	h.ship.Kill()
	if h.ship.Fire() {
		t.Fatalf("dead ship must not fire")
	}
}

func TestMovementZeroWhenTerminal(t *testing.T) {
	h := newHarness(t)
	f := h.ship.DesiredLinearForce(1)
	if math.Abs(f.X-DefaultConfig().MoveSpeed) > 1e-9 || math.Abs(f.Y) > 1e-9 {
		t.Fatalf("force = %v, want (%v, 0)", f, DefaultConfig().MoveSpeed)
	}
	rot := h.ship.DesiredRotationDelta(-1)
	want := -DefaultConfig().TurnSpeed * math.Pi / 180
	if math.Abs(rot-want) > 1e-12 {
		t.Fatalf("rotation = %v, want %v", rot, want)
	}

	h.ship.Kill()
	if h.ship.DesiredLinearForce(1) != (cp.Vector{}) || h.ship.DesiredRotationDelta(1) != 0 {
		t.Fatalf("terminal ship must not move")
	}
}

func TestFixedTickDrivesBody(t *testing.T) {
	h := newHarness(t)
	h.ship.FixedTick(input.Input{Vertical: 1, Horizontal: 1})
	if h.body.force.X <= 0 || h.body.angle <= 0 {
		t.Fatalf("body not driven: force=%v angle=%v", h.body.force, h.body.angle)
	}

	h.ship.Win()
	h.body.force = cp.Vector{}
	h.ship.FixedTick(input.Input{Vertical: 1})
	if h.body.force != (cp.Vector{}) {
		t.Fatalf("won ship still thrusting")
	}
}

func TestTickHandlesEdges(t *testing.T) {
	h := newHarness(t)
	h.ship.Obtain(power.Shade)
	h.ship.Obtain(power.Charge)

	h.ship.Tick(input.Input{Shade: true, Sol: true, Fire: true, Vertical: 1})
	if !h.ship.Empowered(power.Shade) || h.ship.Empowered(power.Sol) {
		t.Fatalf("edges applied wrongly: %v", h.ship.Powers().EmpoweredSet().Kinds())
	}
	if len(h.spawner.shots) != 1 {
		t.Fatalf("fire edge should shoot once")
	}
	if !h.ship.Thrusting() {
		t.Fatalf("engine should hum while thrusting")
	}

	h.ship.Kill()
	h.ship.Tick(input.Input{Vertical: 1})
	if h.ship.Thrusting() {
		t.Fatalf("dead ship must not hum")
	}
}

func TestNewMessageCancelsStaleHide(t *testing.T) {
	h := newHarness(t)
	h.ship.Obtain(power.Shade)
	h.sched.Tick(3 * time.Second)
	h.ship.Obtain(power.Sol)

	// The shade hint would have hidden at 4s.
	h.sched.Tick(2 * time.Second)
	if h.text.text != ObtainMessage(power.Sol) {
		t.Fatalf("newer message hidden early: %q", h.text.text)
	}
	h.sched.Tick(2 * time.Second)
	if h.text.text != "" {
		t.Fatalf("message should hide after its own duration")
	}
}

func TestDeathMessageOutlivesObtainHint(t *testing.T) {
	h := newHarness(t)
	h.ship.Obtain(power.Shade)
	h.ship.Kill()
	h.sched.Tick(10 * time.Second)
	if h.text.text != DeathMessage {
		t.Fatalf("death message cleared by stale timer: %q", h.text.text)
	}
}

func TestNilCollaborators(t *testing.T) {
	s := sched.New()
	sh := New(DefaultConfig(), Deps{Index: world.New(), Scheduler: s})
	sh.Obtain(power.Shade)
	sh.Obtain(power.Charge)
	if !sh.Activate(power.Shade) || !sh.Fire() {
		t.Fatalf("missing collaborators must not block transitions")
	}
	sh.FixedTick(input.Input{Vertical: 1})
	s.Tick(time.Second)
	if !sh.Kill() {
		t.Fatalf("Kill should succeed without collaborators")
	}
}

func TestListenersFanOut(t *testing.T) {
	var a, b counters
	ls := Listeners{a.listener(), nil, b.listener()}
	ls.OnObtain(power.Sol)
	ls.OnDeath()
	if a.obtain != 1 || b.obtain != 1 || a.death != 1 || b.death != 1 {
		t.Fatalf("fan-out incomplete: %+v %+v", a, b)
	}
}
