package body

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"orbit-demo/internal/physics"
)

// Appearance is an opaque surface handle (a texture) borrowed from the asset pool.
type Appearance any

// Orbiting is a zero-mass sphere moved from outside the simulation: a planet or the sun.
type Orbiting struct {
	*Body
	appearance Appearance
}

// NewOrbiting builds a kinematic sphere of the given radius at position. It never deactivates,
// since its motion comes from SetKinematicTransform rather than the step.
func NewOrbiting(position rl.Vector3, radius float32) *Orbiting {
	b := New(Descriptor{
		Shape:        physics.NewSphere(radius),
		Mass:         0,
		Kinematic:    true,
		AlwaysActive: true,
	}, position)
	return &Orbiting{Body: b}
}

func (o *Orbiting) SetAppearance(a Appearance) { o.appearance = a }
func (o *Orbiting) Appearance() Appearance { return o.appearance }

// Radius returns the sphere radius.
func (o *Orbiting) Radius() float32 {
	if o.shape == nil {
		return 0
	}
	return o.shape.Radius()
}
