package object

import (
	"math"

	"github.com/tomz197/shadestep/internal/draw"
	"github.com/tomz197/shadestep/internal/power"
)

// PickupRadius is the trigger radius of a power-up.
const PickupRadius = 2.0

// Pickup grants a power when the ship touches it.
type Pickup struct {
	Kind      power.Kind
	X, Y      float64
	collected bool
	age       float64
	collider  Collider
}

// NewPickup creates a power-up of kind k at (x,y).
func NewPickup(k power.Kind, x, y float64) *Pickup {
	return &Pickup{Kind: k, X: x, Y: y}
}

// Attach binds the pickup to its trigger shape.
func (p *Pickup) Attach(c Collider) {
	p.collider = c
}

// Detach releases the trigger shape.
func (p *Pickup) Detach() {
	if p.collider != nil {
		p.collider.Remove()
		p.collider = nil
	}
}

func (p *Pickup) Tag() Tag { return TagPowerup }

// Collect latches the pickup. It reports true only on the first call; the
// pickup removes itself on the next update either way.
func (p *Pickup) Collect() bool {
	if p.collected {
		return false
	}
	p.collected = true
	return true
}

// Collected reports whether the pickup has been taken.
func (p *Pickup) Collected() bool {
	return p.collected
}

func (p *Pickup) Update(ctx UpdateContext) (bool, error) {
	if p.collected {
		SpawnExplosion(p.X, p.Y, 6, 12.0, 0.4, PowerInk(p.Kind), ctx.Spawner)
		return true, nil
	}
	p.age += ctx.Delta.Seconds()
	return false, nil
}

// Draw renders a small pulsing diamond in the power's colour.
func (p *Pickup) Draw(ctx DrawContext) error {
	if p.collected {
		return nil
	}
	x, y, ok := WorldToScreen(p.X, p.Y, ctx.Camera, ctx.View, PickupRadius)
	if !ok {
		return nil
	}
	r := PickupRadius * (0.8 + 0.2*math.Sin(p.age*6))
	points := ctx.Canvas.BorrowPoints(4)
	points[0] = draw.Point{X: x, Y: y - r}
	points[1] = draw.Point{X: x + r, Y: y}
	points[2] = draw.Point{X: x, Y: y + r}
	points[3] = draw.Point{X: x - r, Y: y}
	ctx.Canvas.SetPen(PowerInk(p.Kind))
	ctx.Canvas.DrawPolygon(points, true)
	return nil
}

// PowerInk returns the ink a power is drawn with.
func PowerInk(k power.Kind) draw.Ink {
	switch k {
	case power.Shade:
		return draw.InkShade
	case power.Sol:
		return draw.InkSol
	case power.Charge:
		return draw.InkCharge
	}
	return draw.InkDefault
}
