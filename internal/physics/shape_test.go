package physics

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestShapeKindString(t *testing.T) {
	assert.Equal(t, "sphere", ShapeSphere.String())
	assert.Equal(t, "box", ShapeBox.String())
	assert.Equal(t, "unknown", ShapeKind(9).String())
}

func TestSphereInertia(t *testing.T) {
	s := NewSphere(2)
	assert.Equal(t, float32(2), s.Radius())
	in := s.LocalInertia(5)
	assert.InDelta(t, 8.0, in.X, 1e-5)
	assert.Equal(t, in.X, in.Y)
	assert.Equal(t, in.X, in.Z)
}

func TestBoxInertia(t *testing.T) {
	s := NewBox(rl.NewVector3(1, 1, 2))
	in := s.LocalInertia(1)
	// full extents 2, 2, 4
	assert.InDelta(t, (4.0+16.0)/12.0, in.X, 1e-5)
	assert.InDelta(t, (4.0+16.0)/12.0, in.Y, 1e-5)
	assert.InDelta(t, (4.0+4.0)/12.0, in.Z, 1e-5)
	assert.InDelta(t, math32.Sqrt(6), s.Radius(), 1e-5)
}

func TestZeroMassHasNoInertia(t *testing.T) {
	assert.Equal(t, rl.Vector3Zero(), NewSphere(3).LocalInertia(0))
	assert.Equal(t, rl.Vector3Zero(), NewBox(rl.NewVector3(1, 1, 1)).LocalInertia(0))
}

func TestNonPositiveExtentsClamped(t *testing.T) {
	assert.Equal(t, float32(minExtent), NewSphere(-1).Radius())
	h := NewBox(rl.NewVector3(0, 2, -3)).HalfExtents()
	assert.Equal(t, rl.NewVector3(minExtent, 2, minExtent), h)
}

func TestRotatedBoxAABBEnclosesBox(t *testing.T) {
	s := NewBox(rl.NewVector3(1, 1, 2))
	tr := Transform{
		Origin:   rl.NewVector3(10, 0, 0),
		Rotation: rl.QuaternionFromAxisAngle(rl.NewVector3(0, 1, 0), math32.Pi/2),
	}
	box := s.aabb(tr)
	// a quarter turn about Y swaps the X and Z extents
	assert.InDelta(t, 8.0, box.Min.X, 1e-4)
	assert.InDelta(t, 12.0, box.Max.X, 1e-4)
	assert.InDelta(t, -1.0, box.Min.Z, 1e-4)
	assert.InDelta(t, 1.0, box.Max.Z, 1e-4)
}

func TestTransformMatrixTranslation(t *testing.T) {
	tr := Transform{
		Origin:   rl.NewVector3(1, 2, 3),
		Rotation: rl.QuaternionFromAxisAngle(rl.NewVector3(0, 1, 0), math32.Pi/2),
	}
	m := tr.Matrix()
	assert.InDelta(t, 1.0, m.M12, 1e-5)
	assert.InDelta(t, 2.0, m.M13, 1e-5)
	assert.InDelta(t, 3.0, m.M14, 1e-5)

	fwd := tr.Basis(rl.NewVector3(0, 0, 1))
	assert.InDelta(t, 1.0, fwd.X, 1e-5)
	assert.InDelta(t, 0.0, fwd.Z, 1e-5)
}
