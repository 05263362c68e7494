package physics

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// FixedTimeStep is the internal simulation step in seconds. StepSimulation slices frame time into these.
const FixedTimeStep = float32(1.0 / 60.0)

const (
	sleepLinearThreshold  = 0.8
	sleepAngularThreshold = 1.0
	timeToSleep           = 2.0
	// maxAngularMotion limits the rotation a body may take in one step.
	maxAngularMotion = math32.Pi / 4
)

var (
	// ErrInvalidState is returned when a world or rigid body handle is missing.
	// Continuing after it would leave a body that never renders or collides.
	ErrInvalidState   = errors.New("invalid physics state")
	ErrAlreadyInWorld = errors.New("rigid body already in world")
	ErrNotInWorld     = errors.New("rigid body not in world")
)

// World holds rigid bodies and advances them with a fixed internal step: forces, damping,
// integration, then AABB collision between dynamic bodies and everything else.
type World struct {
	gravity rl.Vector3
	bodies  []*RigidBody
	// localTime is frame time not yet consumed by a fixed step.
	localTime float32
}

// NewWorld returns an empty world with zero gravity (open space).
func NewWorld() *World {
	return &World{gravity: rl.Vector3Zero()}
}

// AddRigidBody registers rb. Order is preserved, so iteration and collision are repeatable.
func (w *World) AddRigidBody(rb *RigidBody) error {
	if w == nil || rb == nil {
		return fmt.Errorf("add rigid body: %w", ErrInvalidState)
	}
	if rb.inWorld {
		return fmt.Errorf("add rigid body: %w", ErrAlreadyInWorld)
	}
	rb.inWorld = true
	rb.simulated = true
	rb.motionState = rb.transform
	rb.Activate()
	w.bodies = append(w.bodies, rb)
	return nil
}

// RemoveRigidBody unregisters rb.
func (w *World) RemoveRigidBody(rb *RigidBody) error {
	if w == nil || rb == nil {
		return fmt.Errorf("remove rigid body: %w", ErrInvalidState)
	}
	for i, b := range w.bodies {
		if b == rb {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			rb.inWorld = false
			return nil
		}
	}
	return fmt.Errorf("remove rigid body: %w", ErrNotInWorld)
}

// Len returns the number of registered bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// SetKinematicTransform moves a registered body from outside the simulation. Body transform
// and motion state are written together, so collision and rendering see the same placement.
func (w *World) SetKinematicTransform(rb *RigidBody, t Transform) error {
	if w == nil || rb == nil {
		return fmt.Errorf("set kinematic transform: %w", ErrInvalidState)
	}
	if !rb.inWorld {
		return fmt.Errorf("set kinematic transform: %w", ErrNotInWorld)
	}
	rb.SetWorldTransform(t)
	return nil
}

// StepSimulation advances the world by dt seconds using fixed steps of FixedTimeStep.
// Leftover time carries into the next call; at most maxSubSteps steps run per call and
// any excess is dropped. maxSubSteps <= 0 runs a single variable step of dt.
// Accumulated forces are cleared afterwards. Returns the number of steps taken.
func (w *World) StepSimulation(dt float32, maxSubSteps int) int {
	if dt <= 0 {
		return 0
	}
	steps := 0
	if maxSubSteps <= 0 {
		w.internalStep(dt)
		steps = 1
	} else {
		w.localTime += dt
		steps = int(w.localTime / FixedTimeStep)
		w.localTime -= float32(steps) * FixedTimeStep
		if steps > maxSubSteps {
			steps = maxSubSteps
		}
		for i := 0; i < steps; i++ {
			w.internalStep(FixedTimeStep)
		}
	}
	for _, b := range w.bodies {
		b.ClearForces()
		if b.IsDynamic() {
			b.motionState = b.transform
		}
	}
	return steps
}

func (w *World) internalStep(dt float32) {
	for _, b := range w.bodies {
		if !b.IsDynamic() || b.activation == Sleeping {
			continue
		}
		integrate(b, w.gravity, dt)
		updateSleep(b, dt)
	}
	w.resolveCollisions()
}

// integrate applies forces, damping and velocities to one dynamic body (semi-implicit Euler).
func integrate(b *RigidBody, gravity rl.Vector3, dt float32) {
	accel := rl.Vector3Add(gravity, rl.Vector3Scale(b.totalForce, b.invMass))
	b.linearVelocity = rl.Vector3Add(b.linearVelocity, rl.Vector3Scale(accel, dt))
	angAccel := b.worldInvInertia(b.totalTorque)
	b.angularVelocity = rl.Vector3Add(b.angularVelocity, rl.Vector3Scale(angAccel, dt))

	b.linearVelocity = rl.Vector3Scale(b.linearVelocity, math32.Pow(1-b.linearDamping, dt))
	b.angularVelocity = rl.Vector3Scale(b.angularVelocity, math32.Pow(1-b.angularDamping, dt))

	b.transform.Origin = rl.Vector3Add(b.transform.Origin, rl.Vector3Scale(b.linearVelocity, dt))
	b.transform.Rotation = stepRotation(b.transform.Rotation, b.angularVelocity, dt)
}

// stepRotation integrates orientation by the angular velocity as one axis-angle rotation.
func stepRotation(q rl.Quaternion, angVel rl.Vector3, dt float32) rl.Quaternion {
	ang := rl.Vector3Length(angVel)
	if ang == 0 {
		return q
	}
	if ang*dt > maxAngularMotion {
		ang = maxAngularMotion / dt
	}
	axis := rl.Vector3Scale(angVel, 1/rl.Vector3Length(angVel))
	dq := rl.QuaternionFromAxisAngle(axis, ang*dt)
	return rl.QuaternionNormalize(rl.QuaternionMultiply(dq, q))
}

func updateSleep(b *RigidBody, dt float32) {
	if b.activation == DisableDeactivation {
		return
	}
	lin := rl.Vector3Length(b.linearVelocity)
	ang := rl.Vector3Length(b.angularVelocity)
	if lin < sleepLinearThreshold && ang < sleepAngularThreshold {
		b.sleepTimer += dt
	} else {
		b.sleepTimer = 0
	}
	if b.sleepTimer > timeToSleep {
		b.activation = Sleeping
		b.linearVelocity = rl.Vector3Zero()
		b.angularVelocity = rl.Vector3Zero()
	}
}

// penetrationAxis returns the overlap amount and axis index (0=X, 1=Y, 2=Z) for the minimum penetration.
// If no overlap, returns (0, -1).
func penetrationAxis(a, b rl.BoundingBox) (depth float32, axis int) {
	overlapX := min(a.Max.X, b.Max.X) - max(a.Min.X, b.Min.X)
	overlapY := min(a.Max.Y, b.Max.Y) - max(a.Min.Y, b.Min.Y)
	overlapZ := min(a.Max.Z, b.Max.Z) - max(a.Min.Z, b.Min.Z)
	if overlapX <= 0 || overlapY <= 0 || overlapZ <= 0 {
		return 0, -1
	}
	depth = overlapX
	axis = 0
	if overlapY < depth {
		depth = overlapY
		axis = 1
	}
	if overlapZ < depth {
		depth = overlapZ
		axis = 2
	}
	return depth, axis
}

// resolveCollisions separates overlapping pairs where at least one side is dynamic.
// Static and kinematic bodies never move; two dynamic bodies split the push by mass.
func (w *World) resolveCollisions() {
	for i := 0; i < len(w.bodies); i++ {
		bi := w.bodies[i]
		for j := i + 1; j < len(w.bodies); j++ {
			bj := w.bodies[j]
			dynI := bi.IsDynamic() && bi.activation != Sleeping
			dynJ := bj.IsDynamic() && bj.activation != Sleeping
			if !dynI && !dynJ {
				continue
			}
			boxI, boxJ := bi.aabb(), bj.aabb()
			if !rl.CheckCollisionBoxes(boxI, boxJ) {
				continue
			}
			depth, axis := penetrationAxis(boxI, boxJ)
			if axis < 0 {
				continue
			}
			// Push direction: i moves toward negative axis if it sits on the low side.
			sign := float32(1)
			if axisValue(bi.transform.Origin, axis) < axisValue(bj.transform.Origin, axis) {
				sign = -1
			}
			var moveI, moveJ float32
			switch {
			case !dynJ:
				moveI = sign * depth
			case !dynI:
				moveJ = -sign * depth
			default:
				total := bi.mass + bj.mass
				moveI = sign * depth * (bj.mass / total)
				moveJ = -sign * depth * (bi.mass / total)
			}
			if dynI {
				shiftAxis(&bi.transform.Origin, axis, moveI)
				setAxis(&bi.linearVelocity, axis, 0)
				bi.Activate()
			}
			if dynJ {
				shiftAxis(&bj.transform.Origin, axis, moveJ)
				setAxis(&bj.linearVelocity, axis, 0)
				bj.Activate()
			}
		}
	}
}

func axisValue(v rl.Vector3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func shiftAxis(v *rl.Vector3, axis int, d float32) {
	switch axis {
	case 0:
		v.X += d
	case 1:
		v.Y += d
	default:
		v.Z += d
	}
}

func setAxis(v *rl.Vector3, axis int, value float32) {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
}
