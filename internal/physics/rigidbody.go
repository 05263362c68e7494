package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ActivationState controls whether the world's sleep heuristic may skip a body.
type ActivationState int

const (
	Active ActivationState = iota
	Sleeping
	// DisableDeactivation keeps a body simulated forever. Bodies moved from outside the
	// simulation need it, otherwise the sleep heuristic would freeze them.
	DisableDeactivation
)

// BodyOptions describe a rigid body at construction. Shape, mass and inertia never change afterward.
type BodyOptions struct {
	Shape          Shape
	Mass           float32 // 0 = static or kinematic, > 0 = dynamic
	Kinematic      bool    // transform driven from outside the step
	AlwaysActive   bool    // sets DisableDeactivation
	LinearDamping  float32 // fraction of velocity lost per second, 0..1
	AngularDamping float32
}

// RigidBody is one simulated body: shape, mass properties, placement and velocities.
// The transform is the body's own state; the motion state is the copy the world publishes
// after each step for rendering. Both are kept equal by SetWorldTransform.
type RigidBody struct {
	shape        Shape
	mass         float32
	invMass      float32
	localInertia rl.Vector3
	invInertia   rl.Vector3

	transform   Transform
	motionState Transform

	linearVelocity  rl.Vector3
	angularVelocity rl.Vector3
	totalForce      rl.Vector3
	totalTorque     rl.Vector3

	linearDamping  float32
	angularDamping float32
	kinematic      bool
	activation     ActivationState
	sleepTimer     float32

	inWorld   bool
	simulated bool
}

// NewRigidBody returns a body placed at start. Negative mass is treated as zero (static).
func NewRigidBody(opts BodyOptions, start Transform) *RigidBody {
	mass := opts.Mass
	if mass < 0 {
		mass = 0
	}
	rb := &RigidBody{
		shape:          opts.Shape,
		mass:           mass,
		localInertia:   opts.Shape.LocalInertia(mass),
		transform:      start,
		motionState:    start,
		linearDamping:  clamp01(opts.LinearDamping),
		angularDamping: clamp01(opts.AngularDamping),
		kinematic:      opts.Kinematic,
	}
	if mass > 0 {
		rb.invMass = 1 / mass
		rb.invInertia = invert(rb.localInertia)
	}
	if opts.AlwaysActive {
		rb.activation = DisableDeactivation
	}
	return rb
}

func invert(v rl.Vector3) rl.Vector3 {
	var out rl.Vector3
	if v.X != 0 {
		out.X = 1 / v.X
	}
	if v.Y != 0 {
		out.Y = 1 / v.Y
	}
	if v.Z != 0 {
		out.Z = 1 / v.Z
	}
	return out
}

func clamp01(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func (rb *RigidBody) Shape() Shape { return rb.shape }
func (rb *RigidBody) Mass() float32 { return rb.mass }
func (rb *RigidBody) InverseMass() float32 { return rb.invMass }
func (rb *RigidBody) LocalInertia() rl.Vector3 { return rb.localInertia }
func (rb *RigidBody) IsKinematic() bool { return rb.kinematic }
func (rb *RigidBody) InWorld() bool { return rb.inWorld }
func (rb *RigidBody) Activation() ActivationState { return rb.activation }

// IsDynamic reports whether the step integrates forces on this body.
func (rb *RigidBody) IsDynamic() bool {
	return rb.mass > 0 && !rb.kinematic
}

// Simulated reports whether the body has been registered in a world at least once,
// which is when its motion state becomes meaningful.
func (rb *RigidBody) Simulated() bool { return rb.simulated }

// WorldTransform returns the body's own transform (the one collision uses).
func (rb *RigidBody) WorldTransform() Transform { return rb.transform }

// MotionState returns the transform published for rendering.
func (rb *RigidBody) MotionState() Transform { return rb.motionState }

// SetWorldTransform places the body, updating both the body transform and the motion state
// so collision and rendering agree on the same frame.
func (rb *RigidBody) SetWorldTransform(t Transform) {
	rb.transform = t
	rb.motionState = t
}

func (rb *RigidBody) LinearVelocity() rl.Vector3 { return rb.linearVelocity }
func (rb *RigidBody) AngularVelocity() rl.Vector3 { return rb.angularVelocity }

// SetLinearVelocity overwrites the linear velocity. Ignored for non-dynamic bodies.
func (rb *RigidBody) SetLinearVelocity(v rl.Vector3) {
	if !rb.IsDynamic() {
		return
	}
	rb.linearVelocity = v
	rb.Activate()
}

// SetAngularVelocity overwrites the angular velocity. Ignored for non-dynamic bodies.
func (rb *RigidBody) SetAngularVelocity(w rl.Vector3) {
	if !rb.IsDynamic() {
		return
	}
	rb.angularVelocity = w
	rb.Activate()
}

// ApplyCentralForce accumulates a world-space force through the center of mass until the next step ends.
func (rb *RigidBody) ApplyCentralForce(f rl.Vector3) {
	if !rb.IsDynamic() {
		return
	}
	rb.totalForce = rl.Vector3Add(rb.totalForce, f)
	rb.Activate()
}

// ApplyTorque accumulates a world-space torque until the next step ends.
func (rb *RigidBody) ApplyTorque(t rl.Vector3) {
	if !rb.IsDynamic() {
		return
	}
	rb.totalTorque = rl.Vector3Add(rb.totalTorque, t)
	rb.Activate()
}

func (rb *RigidBody) TotalForce() rl.Vector3 { return rb.totalForce }
func (rb *RigidBody) TotalTorque() rl.Vector3 { return rb.totalTorque }

// ClearForces drops accumulated force and torque.
func (rb *RigidBody) ClearForces() {
	rb.totalForce = rl.Vector3Zero()
	rb.totalTorque = rl.Vector3Zero()
}

// Activate wakes a sleeping body. Bodies with DisableDeactivation are left as they are.
func (rb *RigidBody) Activate() {
	if rb.activation == Sleeping {
		rb.activation = Active
	}
	rb.sleepTimer = 0
}

// SetActivationState forces an activation state.
func (rb *RigidBody) SetActivationState(s ActivationState) {
	rb.activation = s
	rb.sleepTimer = 0
}

// worldInvInertia applies the inverse inertia tensor to a world-space vector by
// rotating into body space, scaling by the diagonal, and rotating back.
func (rb *RigidBody) worldInvInertia(v rl.Vector3) rl.Vector3 {
	inv := rl.QuaternionInvert(rb.transform.Rotation)
	local := rl.Vector3RotateByQuaternion(v, inv)
	local = rl.Vector3Multiply(local, rb.invInertia)
	return rl.Vector3RotateByQuaternion(local, rb.transform.Rotation)
}

func (rb *RigidBody) aabb() rl.BoundingBox {
	return rb.shape.aabb(rb.transform)
}
