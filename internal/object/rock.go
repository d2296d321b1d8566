package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/shadestep/internal/draw"
)

// Rock is a round asteroid obstacle. It never moves, but it spins slowly
// so the field does not look frozen.
type Rock struct {
	X, Y          float64   // Position (center)
	Angle         float64   // Current rotation angle
	RotationSpeed float64   // Rotation speed (radians/sec)
	Radius        float64   // Collision/draw radius
	Vertices      []float64 // Vertex distances from center (for irregular shape)
	collider      Collider
}

// NewRock creates a rock at (x,y). rng drives its outline so a seeded level
// always looks the same.
func NewRock(x, y, radius float64, rng *rand.Rand) *Rock {
	// Generate irregular polygon vertices (8-12 vertices)
	numVerts := 8 + rng.Intn(5)
	vertices := make([]float64, numVerts)
	for i := 0; i < numVerts; i++ {
		// Vary radius by ±30% for irregular shape
		vertices[i] = radius * (0.7 + rng.Float64()*0.6)
	}

	return &Rock{
		X:             x,
		Y:             y,
		Angle:         rng.Float64() * 2 * math.Pi,
		RotationSpeed: (rng.Float64() - 0.5) * 0.6,
		Radius:        radius,
		Vertices:      vertices,
	}
}

// Attach binds the rock to its static physics shape.
func (r *Rock) Attach(c Collider) {
	r.collider = c
}

// Detach releases the rock's collider.
func (r *Rock) Detach() {
	if r.collider != nil {
		r.collider.Remove()
		r.collider = nil
	}
}

func (r *Rock) Tag() Tag { return TagAsteroid }

// Update spins the rock outline.
func (r *Rock) Update(ctx UpdateContext) (bool, error) {
	r.Angle += r.RotationSpeed * ctx.Delta.Seconds()
	return false, nil
}

// Draw renders the rock as an irregular polygon.
func (r *Rock) Draw(ctx DrawContext) error {
	x, y, ok := WorldToScreen(r.X, r.Y, ctx.Camera, ctx.View, r.Radius*1.3)
	if !ok {
		return nil
	}

	numVerts := len(r.Vertices)

	// Use reusable buffer from canvas to avoid per-frame allocations.
	points := ctx.Canvas.BorrowPoints(numVerts)
	for i, dist := range r.Vertices {
		vertAngle := r.Angle + float64(i)*2*math.Pi/float64(numVerts)
		points[i] = draw.Point{
			X: x + math.Cos(vertAngle)*dist,
			Y: y + math.Sin(vertAngle)*dist,
		}
	}

	ctx.Canvas.SetPen(draw.InkAsteroid)
	ctx.Canvas.DrawPolygon(points, false)
	return nil
}
