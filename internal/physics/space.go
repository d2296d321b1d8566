package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Kind is the collision category of a shape.
type Kind uint8

const (
	KindShip Kind = iota + 1
	KindSolid
	KindShade
	KindFire
	KindPickup
	KindVolume
	KindBarrier
	KindBullet
)

func (k Kind) collisionType() cp.CollisionType {
	return cp.CollisionType(k)
}

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindSolid:
		return "solid"
	case KindShade:
		return "shade"
	case KindFire:
		return "fire"
	case KindPickup:
		return "pickup"
	case KindVolume:
		return "volume"
	case KindBarrier:
		return "barrier"
	case KindBullet:
		return "bullet"
	}
	return "unknown"
}

// Contact is a begin-contact event between a ship or bullet (A) and another
// shape (B). Owners are the values passed when the shapes were added.
type Contact struct {
	A, B           Kind
	OwnerA, OwnerB any
}

// Options tunes a Space.
type Options struct {
	Damping    float64 // Fraction of velocity kept per second
	ShipRadius float64
	ShipMass   float64
}

// DefaultOptions returns the stock space settings.
func DefaultOptions() Options {
	return Options{Damping: 0.5, ShipRadius: 1.5, ShipMass: 1}
}

// shapeEntry is what the space remembers about each shape it created.
type shapeEntry struct {
	kind  Kind
	owner any
}

// Space owns a Chipmunk space, the shapes of one level and the queue of
// contacts reported by the collision handlers during Step.
type Space struct {
	space    *cp.Space
	opts     Options
	contacts []Contact
	shapes   map[*cp.Shape]shapeEntry
	stepping bool
}

// NewSpace creates a zero-gravity space with the ship and bullet handlers
// installed.
func NewSpace(opts Options) *Space {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	if opts.Damping > 0 && opts.Damping <= 1 {
		space.SetDamping(opts.Damping)
	}
	if opts.ShipRadius <= 0 {
		opts.ShipRadius = DefaultOptions().ShipRadius
	}
	if opts.ShipMass <= 0 {
		opts.ShipMass = DefaultOptions().ShipMass
	}

	s := &Space{
		space:  space,
		opts:   opts,
		shapes: make(map[*cp.Shape]shapeEntry),
	}
	s.setupHandlers()
	return s
}

// Step advances the simulation by dt seconds. Contacts reported during the
// step are queued for Drain.
func (s *Space) Step(dt float64) {
	s.stepping = true
	s.space.Step(dt)
	s.stepping = false
}

// Drain returns the queued contacts and empties the queue.
func (s *Space) Drain() []Contact {
	out := s.contacts
	s.contacts = nil
	return out
}

// AddShip creates the ship's dynamic circle body at (x,y) facing angle.
// Rotation is driven only by Body.Rotate.
func (s *Space) AddShip(x, y, angle float64, owner any) *Body {
	body := cp.NewBody(s.opts.ShipMass, math.Inf(1))
	body.SetPosition(cp.Vector{X: x, Y: y})
	body.SetAngle(angle)
	shape := cp.NewCircle(body, s.opts.ShipRadius, cp.Vector{})
	shape.SetFriction(0.2)
	shape.SetElasticity(0.3)
	shape.SetCollisionType(KindShip.collisionType())

	s.space.AddBody(body)
	s.space.AddShape(shape)
	s.shapes[shape] = shapeEntry{kind: KindShip, owner: owner}
	return &Body{Shape: Shape{space: s, shape: shape, body: body, kind: KindShip}}
}

// AddBox adds a static rectangle (top-left anchored) of the given kind.
func (s *Space) AddBox(kind Kind, x, y, w, h float64, sensor bool, owner any) *Shape {
	bb := cp.BB{L: x, B: y, R: x + w, T: y + h}
	shape := cp.NewBox2(s.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetSensor(sensor)
	shape.SetCollisionType(kind.collisionType())
	s.space.AddShape(shape)
	s.shapes[shape] = shapeEntry{kind: kind, owner: owner}
	return &Shape{space: s, shape: shape, kind: kind}
}

// AddCircle adds a static circle of the given kind centred on (x,y).
func (s *Space) AddCircle(kind Kind, x, y, radius float64, sensor bool, owner any) *Shape {
	shape := cp.NewCircle(s.space.StaticBody, radius, cp.Vector{X: x, Y: y})
	shape.SetFriction(0.8)
	shape.SetSensor(sensor)
	shape.SetCollisionType(kind.collisionType())
	s.space.AddShape(shape)
	s.shapes[shape] = shapeEntry{kind: kind, owner: owner}
	return &Shape{space: s, shape: shape, kind: kind}
}

// AddBullet creates a small dynamic body at (x,y) and gives it impulse.
func (s *Space) AddBullet(x, y, radius float64, impulse cp.Vector, owner any) *Shape {
	const mass = 1.0
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	body.SetPosition(cp.Vector{X: x, Y: y})
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetCollisionType(KindBullet.collisionType())

	s.space.AddBody(body)
	s.space.AddShape(shape)
	body.ApplyImpulseAtWorldPoint(impulse, body.Position())
	s.shapes[shape] = shapeEntry{kind: KindBullet, owner: owner}
	return &Shape{space: s, shape: shape, body: body, kind: KindBullet}
}

func (s *Space) setupHandlers() {
	queue := func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		a, b := arb.Shapes()
		s.push(a, b)
		return true
	}

	for _, other := range []Kind{KindPickup, KindVolume} {
		h := s.space.NewCollisionHandler(KindShip.collisionType(), other.collisionType())
		h.BeginFunc = queue
	}

	// Fire blocks change between solid and lethal while the ship may be
	// resting against them, so their contacts are reported every step.
	fire := s.space.NewCollisionHandler(KindShip.collisionType(), KindFire.collisionType())
	fire.PreSolveFunc = queue

	for _, other := range []Kind{KindSolid, KindShade, KindFire, KindPickup, KindVolume, KindBarrier} {
		h := s.space.NewCollisionHandler(KindBullet.collisionType(), other.collisionType())
		h.BeginFunc = queue
	}

	// Bullets leave the ship's nose and must not hit it or each other.
	for _, other := range []Kind{KindShip, KindBullet} {
		h := s.space.NewCollisionHandler(KindBullet.collisionType(), other.collisionType())
		h.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			return false
		}
	}
}

// push records a contact with the ship or bullet shape first.
func (s *Space) push(a, b *cp.Shape) {
	ea, ok := s.shapes[a]
	if !ok {
		return
	}
	eb, ok := s.shapes[b]
	if !ok {
		return
	}
	if eb.kind == KindShip || (eb.kind == KindBullet && ea.kind != KindShip) {
		ea, eb = eb, ea
	}
	s.contacts = append(s.contacts, Contact{
		A:      ea.kind,
		B:      eb.kind,
		OwnerA: ea.owner,
		OwnerB: eb.owner,
	})
}

// Shape is a handle to one shape in the space. It implements the object
// collider interfaces.
type Shape struct {
	space   *Space
	shape   *cp.Shape
	body    *cp.Body // nil for static shapes
	kind    Kind
	removed bool
}

// SetSensor toggles whether the shape only reports contacts instead of
// blocking.
func (sh *Shape) SetSensor(sensor bool) {
	if sh == nil || sh.removed {
		return
	}
	sh.shape.SetSensor(sensor)
}

// Sensor reports whether the shape is currently a sensor.
func (sh *Shape) Sensor() bool {
	return sh != nil && !sh.removed && sh.shape.Sensor()
}

// Kind returns the shape's collision category.
func (sh *Shape) Kind() Kind {
	return sh.kind
}

// Position returns the body's position, or the shape's centre for static
// shapes.
func (sh *Shape) Position() (x, y float64) {
	if sh.body != nil {
		p := sh.body.Position()
		return p.X, p.Y
	}
	bb := sh.shape.BB()
	return (bb.L + bb.R) / 2, (bb.B + bb.T) / 2
}

// Remove takes the shape (and its body, if dynamic) out of the space. It is
// safe to call more than once. It must not be called during Step.
func (sh *Shape) Remove() {
	if sh == nil || sh.removed {
		return
	}
	if sh.space.stepping {
		panic("physics: shape removed during step")
	}
	sh.removed = true
	sh.space.space.RemoveShape(sh.shape)
	if sh.body != nil {
		sh.space.space.RemoveBody(sh.body)
	}
	delete(sh.space.shapes, sh.shape)
}

// Removed reports whether Remove has been called.
func (sh *Shape) Removed() bool {
	return sh.removed
}

// Body is the ship's dynamic body.
type Body struct {
	Shape
	frozen bool
}

// ApplyForce pushes the body for the next step, in world coordinates.
func (b *Body) ApplyForce(f cp.Vector) {
	if b.frozen || b.removed {
		return
	}
	b.body.ApplyForceAtWorldPoint(f, b.body.Position())
}

// Rotate turns the body by delta radians.
func (b *Body) Rotate(delta float64) {
	if b.frozen || b.removed || delta == 0 {
		return
	}
	b.body.SetAngle(b.body.Angle() + delta)
}

// Angle returns the body's facing in radians.
func (b *Body) Angle() float64 {
	return b.body.Angle()
}

// Vector returns the body's position as a vector.
func (b *Body) Vector() cp.Vector {
	return b.body.Position()
}

// Velocity returns the body's linear velocity.
func (b *Body) Velocity() cp.Vector {
	return b.body.Velocity()
}

// Freeze stops the body and ignores further forces and rotation.
func (b *Body) Freeze() {
	if b.frozen || b.removed {
		return
	}
	b.frozen = true
	b.body.SetVelocity(0, 0)
	b.body.SetAngularVelocity(0)
	b.body.SetForce(cp.Vector{})
}

// Frozen reports whether Freeze has been called.
func (b *Body) Frozen() bool {
	return b.frozen
}
