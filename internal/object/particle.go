package object

import (
	"math"
	"math/rand"
	"sync"

	"github.com/tomz197/shadestep/internal/draw"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect.
type Particle struct {
	X, Y        float64  // Position
	VX, VY      float64  // Velocity
	Lifetime    float64  // Seconds remaining
	MaxLifetime float64  // Initial lifetime (for fade calculation)
	Drag        float64  // Velocity decay (1.0 = no drag)
	Ink         draw.Ink // Pixel colour
	Fade        bool     // Whether to fade out over lifetime
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64, ink draw.Ink) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.95
	p.Ink = ink
	p.Fade = true
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

func (p *Particle) Tag() Tag { return TagEffect }

// SpawnExplosion creates particles in a circular burst pattern.
func SpawnExplosion(x, y float64, count int, speed, lifetime float64, ink draw.Ink, spawner Spawner) {
	if spawner == nil {
		return
	}

	for i := 0; i < count; i++ {
		angle := rand.Float64() * 2 * math.Pi
		// Random speed variation (50% to 150%)
		spd := speed * (0.5 + rand.Float64())
		// Random lifetime variation (50% to 100%)
		life := lifetime * (0.5 + rand.Float64()*0.5)

		p := NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life, ink)
		spawner.Spawn(p)
	}
}

// SpawnThrust creates particles behind a thrusting ship.
func SpawnThrust(x, y, angle float64, spawner Spawner) {
	if spawner == nil {
		return
	}

	// Spawn 1-2 particles behind the ship
	count := 1 + rand.Intn(2)

	for i := 0; i < count; i++ {
		// Opposite direction of ship facing, with spread
		thrustAngle := angle + math.Pi + (rand.Float64()-0.5)*0.5
		speed := 8.0 + rand.Float64()*4.0
		lifetime := 0.1 + rand.Float64()*0.15

		p := NewParticle(x, y, math.Cos(thrustAngle)*speed, math.Sin(thrustAngle)*speed, lifetime, draw.InkSpark)
		p.Drag = 0.85
		spawner.Spawn(p)
	}
}

// Update moves the particle and checks lifetime.
func (p *Particle) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true, nil
	}

	dragFactor := math.Pow(p.Drag, dt*60) // Normalize drag to ~60fps
	p.VX *= dragFactor
	p.VY *= dragFactor

	p.X += p.VX * dt
	p.Y += p.VY * dt

	return false, nil
}

// Draw renders the particle as a pixel on the canvas.
func (p *Particle) Draw(ctx DrawContext) error {
	// Skip faded particles (< 25% lifetime)
	if p.Fade && p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25 {
		return nil
	}

	x, y, ok := WorldToScreen(p.X, p.Y, ctx.Camera, ctx.View, 0)
	if !ok {
		return nil
	}
	ctx.Canvas.SetPen(p.Ink)
	ctx.Canvas.SetFloat(x, y)
	return nil
}
