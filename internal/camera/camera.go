// Package camera computes a look-at view from a position and pitch/yaw/roll angles.
package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	DefaultMoveSpeed     = 0.30
	DefaultRotationSpeed = 3.0
)

var worldUp = rl.NewVector3(0, 1, 0)

// Camera holds position and rotation (pitch, yaw, roll in radians) and caches the derived
// basis and view matrix. Call Update after changing either; pitch limits are up to the caller.
type Camera struct {
	position rl.Vector3
	rotation rl.Vector3

	forward rl.Vector3
	right   rl.Vector3
	lookAt  rl.Vector3
	view    rl.Matrix

	moveSpeed     float32
	rotationSpeed float32
}

// New returns a camera at the origin looking down +Z.
func New() *Camera {
	c := &Camera{moveSpeed: DefaultMoveSpeed, rotationSpeed: DefaultRotationSpeed}
	c.Update()
	return c
}

// Update recomputes forward, right, look-at target and view matrix from the stored state.
func (c *Camera) Update() {
	pitch, yaw := c.rotation.X, c.rotation.Y
	c.forward = rl.Vector3Normalize(rl.NewVector3(
		math32.Cos(pitch)*math32.Sin(yaw),
		math32.Sin(pitch),
		math32.Cos(pitch)*math32.Cos(yaw),
	))
	c.right = rl.Vector3Normalize(rl.Vector3CrossProduct(c.forward, worldUp))
	c.lookAt = rl.Vector3Add(c.position, c.forward)
	c.view = rl.MatrixLookAt(c.position, c.lookAt, worldUp)
}

func (c *Camera) View() rl.Matrix { return c.view }
func (c *Camera) Forward() rl.Vector3 { return c.forward }
func (c *Camera) Right() rl.Vector3 { return c.right }
func (c *Camera) LookAt() rl.Vector3 { return c.lookAt }
func (c *Camera) Position() rl.Vector3 { return c.position }
func (c *Camera) Rotation() rl.Vector3 { return c.rotation }
func (c *Camera) MoveSpeed() float32 { return c.moveSpeed }
func (c *Camera) RotationSpeed() float32 { return c.rotationSpeed }

func (c *Camera) SetPosition(p rl.Vector3) { c.position = p }

// SetRotation sets pitch (X), yaw (Y) and roll (Z) in radians.
func (c *Camera) SetRotation(r rl.Vector3) { c.rotation = r }

// SetSpeeds overrides the movement and rotation speeds. Non-positive values keep the current ones.
func (c *Camera) SetSpeeds(move, rotate float32) {
	if move > 0 {
		c.moveSpeed = move
	}
	if rotate > 0 {
		c.rotationSpeed = rotate
	}
}

// Camera3D returns the raylib camera for the cached look-at state.
func (c *Camera) Camera3D(fovy float32) rl.Camera3D {
	return rl.Camera3D{
		Position:   c.position,
		Target:     c.lookAt,
		Up:         worldUp,
		Fovy:       fovy,
		Projection: rl.CameraPerspective,
	}
}
