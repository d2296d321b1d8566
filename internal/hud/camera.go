package hud

import "github.com/tomz197/shadestep/internal/object"

// Camera follows a target at the offset it had when created.
type Camera struct {
	object.Camera
	offX, offY float64
}

// NewCamera creates a camera at (camX, camY) tracking a target currently at
// (targetX, targetY).
func NewCamera(camX, camY, targetX, targetY float64) *Camera {
	return &Camera{
		Camera: object.Camera{X: camX, Y: camY},
		offX:   camX - targetX,
		offY:   camY - targetY,
	}
}

// Follow moves the camera to the target plus the initial offset. Call it
// after the physics step.
func (c *Camera) Follow(targetX, targetY float64) {
	c.X = targetX + c.offX
	c.Y = targetY + c.offY
}
