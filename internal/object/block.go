package object

import "github.com/tomz197/shadestep/internal/draw"

// Mode is how a block interacts with the ship on contact.
type Mode uint8

const (
	Solid       Mode = iota // Blocks movement
	PassThrough             // Sensor, no effect
	Lethal                  // Sensor, kills on contact
)

func (m Mode) String() string {
	switch m {
	case Solid:
		return "solid"
	case PassThrough:
		return "pass-through"
	case Lethal:
		return "lethal"
	}
	return "unknown"
}

// Material selects how a block looks.
type Material uint8

const (
	MaterialShadow Material = iota
	MaterialHazard
	MaterialAsteroid
)

func (m Material) ink() draw.Ink {
	switch m {
	case MaterialShadow:
		return draw.InkShadow
	case MaterialHazard:
		return draw.InkHazard
	default:
		return draw.InkAsteroid
	}
}

// Block is a rectangular level block. Shade and fire blocks change mode and
// material when powers toggle them; asteroid blocks are plain walls.
type Block struct {
	tag      Tag
	Rect     Rect
	mode     Mode
	material Material
	collider Collider
}

// NewBlock creates a block with the resting mode and material for its tag.
func NewBlock(tag Tag, r Rect) *Block {
	b := &Block{tag: tag, Rect: r}
	switch tag {
	case TagShadeBlock:
		b.mode, b.material = Solid, MaterialShadow
	case TagFireBlock:
		b.mode, b.material = Lethal, MaterialHazard
	default:
		b.mode, b.material = Solid, MaterialAsteroid
	}
	return b
}

// Attach binds the block to its physics collider and syncs the sensor flag.
func (b *Block) Attach(c Collider) {
	b.collider = c
	if c != nil {
		c.SetSensor(b.mode != Solid)
	}
}

// Detach releases the block's collider.
func (b *Block) Detach() {
	if b.collider != nil {
		b.collider.Remove()
		b.collider = nil
	}
}

func (b *Block) Tag() Tag { return b.tag }

// Mode returns the current collision mode.
func (b *Block) Mode() Mode { return b.mode }

// Material returns the current material.
func (b *Block) Material() Material { return b.material }

// SetMode changes the collision mode. Any non-solid mode makes the collider
// a sensor.
func (b *Block) SetMode(m Mode) {
	b.mode = m
	if b.collider != nil {
		b.collider.SetSensor(m != Solid)
	}
}

// SetMaterial swaps the block's look.
func (b *Block) SetMaterial(m Material) {
	b.material = m
}

func (b *Block) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}

// Draw fills the block; pass-through blocks render as a hatch.
func (b *Block) Draw(ctx DrawContext) error {
	r, ok := screenRect(b.Rect, ctx)
	if !ok {
		return nil
	}
	ctx.Canvas.SetPen(b.material.ink())
	ctx.Canvas.FillRect(r.X, r.Y, r.W, r.H, b.mode == PassThrough)
	return nil
}
