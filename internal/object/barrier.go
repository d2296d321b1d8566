package object

import "github.com/tomz197/shadestep/internal/draw"

// Barrier is a blue wall that only Chargeblaster shots can break.
type Barrier struct {
	Rect      Rect
	shattered bool
	burst     bool
	destroyed bool
	collider  Collider
}

// NewBarrier creates a barrier covering r.
func NewBarrier(r Rect) *Barrier {
	return &Barrier{Rect: r}
}

// Attach binds the barrier to its solid shape.
func (b *Barrier) Attach(c Collider) {
	b.collider = c
}

// Detach releases the barrier's shape.
func (b *Barrier) Detach() {
	if b.collider != nil {
		b.collider.Remove()
		b.collider = nil
	}
}

func (b *Barrier) Tag() Tag { return TagBarrier }

// Shatter hides the barrier and drops its collider so the ship can pass.
// It reports false if the barrier was already shattered. The caller
// schedules MarkDestroyed to remove the object later.
func (b *Barrier) Shatter() bool {
	if b.shattered {
		return false
	}
	b.shattered = true
	b.Detach()
	return true
}

// Shattered reports whether a bullet has broken the barrier.
func (b *Barrier) Shattered() bool {
	return b.shattered
}

// MarkDestroyed marks the barrier for removal.
func (b *Barrier) MarkDestroyed() {
	b.destroyed = true
}

// IsDestroyed returns true if the barrier is marked for removal.
func (b *Barrier) IsDestroyed() bool {
	return b.destroyed
}

func (b *Barrier) Update(ctx UpdateContext) (bool, error) {
	if b.shattered && !b.burst {
		b.burst = true
		cx, cy := b.Rect.Center()
		SpawnExplosion(cx, cy, 16, 18.0, 0.6, draw.InkBarrier, ctx.Spawner)
	}
	return b.destroyed, nil
}

func (b *Barrier) Draw(ctx DrawContext) error {
	if b.shattered {
		return nil
	}
	r, ok := screenRect(b.Rect, ctx)
	if !ok {
		return nil
	}
	ctx.Canvas.SetPen(draw.InkBarrier)
	ctx.Canvas.FillRect(r.X, r.Y, r.W, r.H, false)
	return nil
}
