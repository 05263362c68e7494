package body

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbit-demo/internal/physics"
)

func newCraftInWorld(t *testing.T) (*Craft, *physics.World) {
	t.Helper()
	w := physics.NewWorld()
	c := NewCraft(rl.Vector3Zero())
	require.NoError(t, c.AddToWorld(w))
	return c, w
}

func TestCraftDefaults(t *testing.T) {
	c := NewCraft(rl.NewVector3(0, 0, -70))
	rb := c.RigidBody()
	assert.Equal(t, float32(1), rb.Mass())
	assert.True(t, rb.IsDynamic())
	assert.Equal(t, physics.DisableDeactivation, rb.Activation())
	assert.Equal(t, rl.NewVector3(1, 1, 2), c.HalfExtents())
	assert.NotEqual(t, rl.Vector3Zero(), rb.LocalInertia())
	assert.Equal(t, rl.NewVector3(0, 0, -70), c.Position())
}

func TestCraftConfigFallbacks(t *testing.T) {
	c := NewCraftWithConfig(rl.Vector3Zero(), CraftConfig{ThrustForce: 50})
	cfg := c.Config()
	assert.Equal(t, float32(50), cfg.ThrustForce)
	assert.Equal(t, float32(25), cfg.RotationTorque)
	assert.Equal(t, float32(1.5), cfg.MaxTurnRate)
}

// The magnitude passed to ApplyThrust is ignored; the configured force is used.
func TestApplyThrustUsesConfiguredForce(t *testing.T) {
	c, _ := newCraftInWorld(t)
	c.ApplyThrust(1000)
	assert.InDelta(t, 30.0, c.RigidBody().TotalForce().Z, 1e-5)

	other, _ := newCraftInWorld(t)
	other.ApplyThrust(1)
	assert.Equal(t, c.RigidBody().TotalForce(), other.RigidBody().TotalForce())
}

// Only the sign of the ApplyRotation magnitude matters.
func TestApplyRotationUsesConfiguredTorque(t *testing.T) {
	c, _ := newCraftInWorld(t)
	c.ApplyRotation(0.001)
	assert.InDelta(t, 25.0, c.RigidBody().TotalTorque().Y, 1e-5)

	right, _ := newCraftInWorld(t)
	right.ApplyRotation(-500)
	assert.InDelta(t, -25.0, right.RigidBody().TotalTorque().Y, 1e-5)
}

func TestApplyRotationClampsTurnRate(t *testing.T) {
	c, w := newCraftInWorld(t)
	for i := 0; i < 120; i++ {
		c.ApplyRotation(25)
		w.StepSimulation(physics.FixedTimeStep, 1)
	}
	// one step of torque may exceed the cap before the next call clamps it
	c.ApplyRotation(25)
	assert.LessOrEqual(t, rl.Vector3Length(c.AngularVelocity()), float32(1.5)+1e-4)
}

func TestApplyRotationBendsVelocityKeepingSpeed(t *testing.T) {
	c, _ := newCraftInWorld(t)
	c.ForceRotateInPlace(90)
	c.RigidBody().SetLinearVelocity(rl.NewVector3(0, 0, 10))

	c.ApplyRotation(1)

	v := c.LinearVelocity()
	assert.InDelta(t, 10.0, rl.Vector3Length(v), 1e-3)
	assert.Greater(t, v.X, float32(0))
}

func TestForceRotateInPlaceYaw(t *testing.T) {
	c, _ := newCraftInWorld(t)
	assert.InDelta(t, 0.0, c.Rotation(), 1e-4)

	c.ForceRotateInPlace(30)
	assert.InDelta(t, 30.0, c.Rotation(), 1e-3)
	c.ForceRotateInPlace(-45)
	assert.InDelta(t, -15.0, c.Rotation(), 1e-3)
	assert.Equal(t, c.RigidBody().WorldTransform(), c.RigidBody().MotionState())

	fwd := c.Forward()
	assert.InDelta(t, math32.Sin(-15*rl.Deg2rad), fwd.X, 1e-4)
}

func TestBrakeConverges(t *testing.T) {
	c, w := newCraftInWorld(t)
	c.RigidBody().SetLinearVelocity(rl.NewVector3(0, 0, 20))
	c.RigidBody().SetAngularVelocity(rl.NewVector3(0, 1, 0))

	prevSpeed := c.LinearVelocity().Z
	prevSpin := rl.Vector3Length(c.AngularVelocity())
	stopped := false
	for i := 0; i < 600; i++ {
		c.Brake(40)
		w.StepSimulation(physics.FixedTimeStep, 1)

		speed := rl.Vector3DotProduct(c.LinearVelocity(), c.Forward())
		spin := rl.Vector3Length(c.AngularVelocity())
		require.LessOrEqual(t, speed, prevSpeed)
		require.GreaterOrEqual(t, speed, float32(0))
		require.LessOrEqual(t, spin, prevSpin)
		prevSpeed, prevSpin = speed, spin
		if speed == 0 && spin < 1e-3 {
			stopped = true
			break
		}
	}
	assert.True(t, stopped)
}

func TestBrakeNeverReversesAcrossSubSteps(t *testing.T) {
	for _, start := range []float32{0.3, 0.45, 5} {
		c, w := newCraftInWorld(t)
		c.RigidBody().SetLinearVelocity(rl.NewVector3(0, 0, start))

		prev := start
		for i := 0; i < 200; i++ {
			c.Brake(30)
			w.StepSimulation(2*physics.FixedTimeStep, 10)
			speed := rl.Vector3DotProduct(c.LinearVelocity(), c.Forward())
			require.GreaterOrEqual(t, speed, float32(0), "start %v frame %d", start, i)
			require.LessOrEqual(t, speed, prev, "start %v frame %d", start, i)
			prev = speed
		}
		assert.Zero(t, prev)
	}
}

func TestBrakeIgnoresNegativeAmount(t *testing.T) {
	c, _ := newCraftInWorld(t)
	c.RigidBody().SetLinearVelocity(rl.NewVector3(0, 0, 4))
	c.Brake(-30)
	assert.Equal(t, float32(4), c.LinearVelocity().Z)
	assert.Equal(t, rl.Vector3Zero(), c.RigidBody().TotalForce())
}

func TestBrakeBelowThresholdStops(t *testing.T) {
	c, _ := newCraftInWorld(t)
	c.RigidBody().SetLinearVelocity(rl.NewVector3(0.3, 0, 0.05))
	c.Brake(10)
	assert.Equal(t, rl.Vector3Zero(), c.LinearVelocity())
	assert.Equal(t, rl.Vector3Zero(), c.RigidBody().TotalForce())
}
