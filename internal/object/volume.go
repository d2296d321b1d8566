package object

import (
	"fmt"
	"strings"

	"github.com/tomz197/shadestep/internal/draw"
)

// VolumeKind decides what touching a volume does to the ship.
type VolumeKind uint8

const (
	VolumeHazard VolumeKind = iota // Kills the ship
	VolumeWin                      // Wins the level
)

func (k VolumeKind) String() string {
	if k == VolumeWin {
		return "win"
	}
	return "hazard"
}

// ParseVolumeKind converts "hazard" or "win" to a VolumeKind.
func ParseVolumeKind(s string) (VolumeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hazard":
		return VolumeHazard, nil
	case "win":
		return VolumeWin, nil
	}
	return 0, fmt.Errorf("unknown volume kind %q", s)
}

// Volume is a sensor area: a kill zone or the goal.
type Volume struct {
	Kind     VolumeKind
	Rect     Rect
	collider Collider
}

// NewVolume creates a volume covering r.
func NewVolume(kind VolumeKind, r Rect) *Volume {
	return &Volume{Kind: kind, Rect: r}
}

// Attach binds the volume to its sensor shape.
func (v *Volume) Attach(c Collider) {
	v.collider = c
	if c != nil {
		c.SetSensor(true)
	}
}

// Detach releases the sensor shape.
func (v *Volume) Detach() {
	if v.collider != nil {
		v.collider.Remove()
		v.collider = nil
	}
}

func (v *Volume) Tag() Tag {
	if v.Kind == VolumeWin {
		return TagWin
	}
	return TagHazard
}

func (v *Volume) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}

// Draw outlines the volume. The goal is filled with a hatch.
func (v *Volume) Draw(ctx DrawContext) error {
	r, ok := screenRect(v.Rect, ctx)
	if !ok {
		return nil
	}
	if v.Kind == VolumeWin {
		ctx.Canvas.SetPen(draw.InkWin)
		ctx.Canvas.FillRect(r.X, r.Y, r.W, r.H, true)
		return nil
	}
	points := ctx.Canvas.BorrowPoints(4)
	points[0] = draw.Point{X: r.X, Y: r.Y}
	points[1] = draw.Point{X: r.X + r.W, Y: r.Y}
	points[2] = draw.Point{X: r.X + r.W, Y: r.Y + r.H}
	points[3] = draw.Point{X: r.X, Y: r.Y + r.H}
	ctx.Canvas.SetPen(draw.InkHazard)
	ctx.Canvas.DrawPolygon(points, false)
	return nil
}
