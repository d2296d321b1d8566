package object

import "github.com/tomz197/shadestep/internal/draw"

// BulletLifetime is how long bullets last before disappearing.
const BulletLifetime = 3.0

// BulletRadius is the collision radius of a bullet.
const BulletRadius = 0.5

// Bullet is a Chargeblaster shot. Its motion comes from the physics body;
// it is destroyed on any contact or when its lifetime runs out.
type Bullet struct {
	X, Y      float64 // Last known position
	Lifetime  float64 // Seconds remaining before removal
	body      Mover
	destroyed bool
}

// NewBullet creates a bullet at (x,y) that lives for lifetime seconds.
func NewBullet(x, y, lifetime float64) *Bullet {
	if lifetime <= 0 {
		lifetime = BulletLifetime
	}
	return &Bullet{X: x, Y: y, Lifetime: lifetime}
}

// Attach binds the bullet to its dynamic body.
func (b *Bullet) Attach(m Mover) {
	b.body = m
}

// Detach releases the bullet's body.
func (b *Bullet) Detach() {
	if b.body != nil {
		b.body.Remove()
		b.body = nil
	}
}

func (b *Bullet) Tag() Tag { return TagBullet }

// MarkDestroyed marks the bullet for removal.
func (b *Bullet) MarkDestroyed() {
	b.destroyed = true
}

// IsDestroyed returns true if the bullet is marked for destruction.
func (b *Bullet) IsDestroyed() bool {
	return b.destroyed || b.Lifetime <= 0
}

// Update follows the body and counts down the lifetime.
func (b *Bullet) Update(ctx UpdateContext) (bool, error) {
	if b.destroyed {
		SpawnExplosion(b.X, b.Y, 3, 10.0, 0.2, draw.InkBullet, ctx.Spawner)
		return true, nil
	}

	b.Lifetime -= ctx.Delta.Seconds()
	if b.Lifetime <= 0 {
		return true, nil
	}

	if b.body != nil {
		b.X, b.Y = b.body.Position()
	}
	return false, nil
}

// Draw renders the bullet as a short two-pixel streak.
func (b *Bullet) Draw(ctx DrawContext) error {
	x, y, ok := WorldToScreen(b.X, b.Y, ctx.Camera, ctx.View, 1)
	if !ok {
		return nil
	}
	ctx.Canvas.SetPen(draw.InkBullet)
	ctx.Canvas.SetFloat(x, y)
	ctx.Canvas.SetFloat(x+0.5, y)
	return nil
}
