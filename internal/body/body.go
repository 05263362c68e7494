// Package body wraps physics rigid bodies as the scene's drawable objects: a generic Body
// parameterized by a Descriptor, plus the Orbiting and Craft builders over it.
package body

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"orbit-demo/internal/physics"
)

var (
	// ErrNotSimulated is returned when a transform is read from a body that was never registered in a world.
	ErrNotSimulated = errors.New("body has never been simulated")
	// ErrStillInWorld is returned by Release while the body is still registered.
	ErrStillInWorld = errors.New("body still registered in a world")
	// ErrReleased is returned when a released body is used again.
	ErrReleased = errors.New("body released")
)

// Descriptor is the shape-and-mass description a Body is built from.
type Descriptor struct {
	Shape          physics.Shape
	Mass           float32 // 0 = static or kinematic
	Kinematic      bool
	AlwaysActive   bool
	LinearDamping  float32
	AngularDamping float32
}

// Body owns one rigid body handle and the render transform synchronized from it.
type Body struct {
	rigid *physics.RigidBody
	shape *physics.Shape
	world rl.Matrix
}

// New creates a body at position from desc. The rigid body is not registered anywhere yet.
func New(desc Descriptor, position rl.Vector3) *Body {
	shape := desc.Shape
	start := physics.At(position)
	rb := physics.NewRigidBody(physics.BodyOptions{
		Shape:          shape,
		Mass:           desc.Mass,
		Kinematic:      desc.Kinematic,
		AlwaysActive:   desc.AlwaysActive,
		LinearDamping:  desc.LinearDamping,
		AngularDamping: desc.AngularDamping,
	}, start)
	return &Body{rigid: rb, shape: &shape, world: start.Matrix()}
}

// AddToWorld registers the body in w; from then on the world steps it.
func (b *Body) AddToWorld(w *physics.World) error {
	if w == nil || b.rigid == nil {
		return fmt.Errorf("add body to world: %w", physics.ErrInvalidState)
	}
	return w.AddRigidBody(b.rigid)
}

// RemoveFromWorld unregisters the body from w.
func (b *Body) RemoveFromWorld(w *physics.World) error {
	if w == nil || b.rigid == nil {
		return fmt.Errorf("remove body from world: %w", physics.ErrInvalidState)
	}
	return w.RemoveRigidBody(b.rigid)
}

// SyncTransform copies the simulated motion state into the render world matrix.
func (b *Body) SyncTransform() error {
	if b.rigid == nil {
		return ErrReleased
	}
	if !b.rigid.Simulated() {
		return ErrNotSimulated
	}
	b.world = b.rigid.MotionState().Matrix()
	return nil
}

// WorldMatrix returns the transform stored by the last SyncTransform.
func (b *Body) WorldMatrix() rl.Matrix {
	return b.world
}

// RigidBody returns the underlying rigid body, or nil after Release.
func (b *Body) RigidBody() *physics.RigidBody {
	return b.rigid
}

// Position returns the rigid body's current origin.
func (b *Body) Position() rl.Vector3 {
	if b.rigid == nil {
		return rl.Vector3Zero()
	}
	return b.rigid.WorldTransform().Origin
}

// Release drops the rigid body, then its shape. The body must be removed from its world first.
func (b *Body) Release() error {
	if b.rigid == nil {
		return nil
	}
	if b.rigid.InWorld() {
		return ErrStillInWorld
	}
	b.rigid = nil
	b.shape = nil
	return nil
}

// Released reports whether Release has run.
func (b *Body) Released() bool {
	return b.rigid == nil
}
