package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ShapeKind identifies the collision volume of a rigid body.
type ShapeKind int

const (
	ShapeSphere ShapeKind = iota
	ShapeBox
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	default:
		return "unknown"
	}
}

// Shape is a collision shape descriptor: a sphere radius or box half extents.
// Shapes are values; a rigid body keeps its own copy and never changes it.
type Shape struct {
	Kind        ShapeKind
	radius      float32
	halfExtents rl.Vector3
}

// NewSphere returns a sphere shape. Non-positive radii are clamped to a tiny sphere.
func NewSphere(radius float32) Shape {
	if radius <= 0 {
		radius = minExtent
	}
	return Shape{Kind: ShapeSphere, radius: radius}
}

// NewBox returns a box shape with the given half extents (half width, half height, half depth).
func NewBox(halfExtents rl.Vector3) Shape {
	if halfExtents.X <= 0 {
		halfExtents.X = minExtent
	}
	if halfExtents.Y <= 0 {
		halfExtents.Y = minExtent
	}
	if halfExtents.Z <= 0 {
		halfExtents.Z = minExtent
	}
	return Shape{Kind: ShapeBox, halfExtents: halfExtents}
}

const minExtent = 0.001

// Radius returns the sphere radius, or the bounding-sphere radius of a box.
func (s Shape) Radius() float32 {
	if s.Kind == ShapeSphere {
		return s.radius
	}
	return rl.Vector3Length(s.halfExtents)
}

// HalfExtents returns the box half extents, or (r, r, r) for a sphere.
func (s Shape) HalfExtents() rl.Vector3 {
	if s.Kind == ShapeSphere {
		return rl.NewVector3(s.radius, s.radius, s.radius)
	}
	return s.halfExtents
}

// LocalInertia returns the diagonal inertia tensor for the given mass.
// Zero mass (static or kinematic) has zero inertia.
func (s Shape) LocalInertia(mass float32) rl.Vector3 {
	if mass <= 0 {
		return rl.Vector3Zero()
	}
	switch s.Kind {
	case ShapeSphere:
		i := 0.4 * mass * s.radius * s.radius
		return rl.NewVector3(i, i, i)
	default:
		lx := 2 * s.halfExtents.X
		ly := 2 * s.halfExtents.Y
		lz := 2 * s.halfExtents.Z
		k := mass / 12
		return rl.NewVector3(
			k*(ly*ly+lz*lz),
			k*(lx*lx+lz*lz),
			k*(lx*lx+ly*ly),
		)
	}
}

// aabb returns the world-space bounding box of the shape placed at t.
// Boxes use the absolute rotation matrix so a rotated box stays enclosed.
func (s Shape) aabb(t Transform) rl.BoundingBox {
	var half rl.Vector3
	if s.Kind == ShapeSphere {
		half = rl.NewVector3(s.radius, s.radius, s.radius)
	} else {
		m := rl.QuaternionToMatrix(t.Rotation)
		h := s.halfExtents
		half = rl.NewVector3(
			math32.Abs(m.M0)*h.X+math32.Abs(m.M4)*h.Y+math32.Abs(m.M8)*h.Z,
			math32.Abs(m.M1)*h.X+math32.Abs(m.M5)*h.Y+math32.Abs(m.M9)*h.Z,
			math32.Abs(m.M2)*h.X+math32.Abs(m.M6)*h.Y+math32.Abs(m.M10)*h.Z,
		)
	}
	o := t.Origin
	return rl.NewBoundingBox(
		rl.NewVector3(o.X-half.X, o.Y-half.Y, o.Z-half.Z),
		rl.NewVector3(o.X+half.X, o.Y+half.Y, o.Z+half.Z),
	)
}
