// Package object holds the level entities: blocks, rocks, pickups, volumes,
// barriers, bullets, particles and labels.
package object

import (
	"time"

	"github.com/tomz197/shadestep/internal/draw"
)

// Tag groups entities for world queries.
type Tag string

const (
	TagShadeBlock Tag = "ShadeBlock"
	TagFireBlock  Tag = "FireBlock"
	TagAsteroid   Tag = "Asteroid"
	TagPowerup    Tag = "Powerup"
	TagHazard     Tag = "HazardVolume"
	TagWin        Tag = "WinVolume"
	TagBarrier    Tag = "Destructible"
	TagBullet     Tag = "Bullet"
	TagEffect     Tag = "Effect"
	TagLabel      Tag = "Label"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Spawner Spawner
}

// Camera represents the viewport position in world space.
type Camera struct {
	X, Y float64 // Camera center position in world coordinates
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas  *draw.Canvas      // High-resolution canvas (2x vertical)
	Writer  *draw.TextLayer   // Text overlay output
	Camera  Camera            // Camera position for viewport offset
	View    Screen            // Viewport dimensions (what the camera sees)
	Palette *draw.Palette     // Text colours; nil renders plain text
}

// Screen represents logical viewport dimensions.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// NewScreen returns a screen of the given size with its center filled in.
func NewScreen(width, height int) Screen {
	return Screen{Width: width, Height: height, CenterX: width / 2, CenterY: height / 2}
}

// WorldToScreen converts world coordinates to viewport coordinates relative
// to the camera. ok is false when the point is outside the view plus margin.
func WorldToScreen(worldX, worldY float64, cam Camera, view Screen, margin float64) (x, y float64, ok bool) {
	viewW := float64(view.Width)
	viewH := float64(view.Height)
	x = worldX - (cam.X - viewW/2)
	y = worldY - (cam.Y - viewH/2)
	ok = x >= -margin && x <= viewW+margin && y >= -margin && y <= viewH+margin
	return x, y, ok
}

// Rect is an axis-aligned rectangle in world units, top-left anchored.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Center returns the rectangle's center point.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// screenRect projects r into the viewport; ok is false if fully off-screen.
func screenRect(r Rect, ctx DrawContext) (Rect, bool) {
	x, y, _ := WorldToScreen(r.X, r.Y, ctx.Camera, ctx.View, 0)
	out := Rect{X: x, Y: y, W: r.W, H: r.H}
	if x+r.W < 0 || y+r.H < 0 || x > float64(ctx.View.Width) || y > float64(ctx.View.Height) {
		return out, false
	}
	return out, true
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Tag returns the query group the object belongs to.
	Tag() Tag

	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object onto the canvas or text overlay.
	Draw(ctx DrawContext) error
}

// Collider is the physics handle an object owns. Implemented by the physics
// package; objects only toggle and release it.
type Collider interface {
	SetSensor(sensor bool)
	Remove()
}

// Mover is a collider attached to a dynamic body.
type Mover interface {
	Collider
	Position() (x, y float64)
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on next update cycle.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Detachable is implemented by objects that hold physics resources which
// must be released when the object leaves the world.
type Detachable interface {
	Detach()
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object's physics handle and returns pooled
// objects to their pool.
func ReleaseObject(obj Object) {
	if d, ok := obj.(Detachable); ok {
		d.Detach()
	}
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// ShouldRenderBlink returns true if an object with remaining blink time
// should be rendered this frame. Returns true always if remainingTime <= 0.
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}
