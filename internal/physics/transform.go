package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Transform is a rigid placement: translation plus a unit-quaternion orientation.
type Transform struct {
	Origin   rl.Vector3
	Rotation rl.Quaternion
}

// Identity returns the transform at the origin with no rotation.
func Identity() Transform {
	return Transform{Origin: rl.Vector3Zero(), Rotation: rl.QuaternionIdentity()}
}

// At returns an unrotated transform placed at origin.
func At(origin rl.Vector3) Transform {
	return Transform{Origin: origin, Rotation: rl.QuaternionIdentity()}
}

// Matrix returns rotation followed by translation, the layout renderers expect for a world matrix.
func (t Transform) Matrix() rl.Matrix {
	return rl.MatrixMultiply(rl.QuaternionToMatrix(t.Rotation), rl.MatrixTranslate(t.Origin.X, t.Origin.Y, t.Origin.Z))
}

// Basis rotates a local-space direction into world space.
func (t Transform) Basis(local rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(local, t.Rotation)
}
