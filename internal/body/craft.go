package body

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"orbit-demo/internal/physics"
)

// CraftConfig holds the craft's tunables. Zero fields fall back to DefaultCraftConfig.
type CraftConfig struct {
	HalfExtents        rl.Vector3
	Mass               float32
	ThrustForce        float32 // replaces the magnitude passed to ApplyThrust
	RotationTorque     float32 // replaces the magnitude passed to ApplyRotation
	MaxTurnRate        float32 // rad/s
	BrakeThreshold     float32 // forward speed below which Brake stops the craft outright
	AngularBrakeFactor float32 // angular velocity multiplier per Brake call
	SteerAlignment     float32 // 0..1 blend of velocity toward the new forward per ApplyRotation
	LinearDamping      float32
	AngularDamping     float32
}

// DefaultCraftConfig returns the tuning the demo ships with.
func DefaultCraftConfig() CraftConfig {
	return CraftConfig{
		HalfExtents:        rl.NewVector3(1, 1, 2),
		Mass:               1,
		ThrustForce:        30,
		RotationTorque:     25,
		MaxTurnRate:        1.5,
		BrakeThreshold:     0.1,
		AngularBrakeFactor: 0.9,
		SteerAlignment:     0.2,
		LinearDamping:      0.3,
		AngularDamping:     0.5,
	}
}

func (c CraftConfig) withDefaults() CraftConfig {
	d := DefaultCraftConfig()
	if c.HalfExtents.X <= 0 || c.HalfExtents.Y <= 0 || c.HalfExtents.Z <= 0 {
		c.HalfExtents = d.HalfExtents
	}
	if c.Mass <= 0 {
		c.Mass = d.Mass
	}
	if c.ThrustForce == 0 {
		c.ThrustForce = d.ThrustForce
	}
	if c.RotationTorque == 0 {
		c.RotationTorque = d.RotationTorque
	}
	if c.MaxTurnRate <= 0 {
		c.MaxTurnRate = d.MaxTurnRate
	}
	if c.BrakeThreshold <= 0 {
		c.BrakeThreshold = d.BrakeThreshold
	}
	if c.AngularBrakeFactor <= 0 || c.AngularBrakeFactor >= 1 {
		c.AngularBrakeFactor = d.AngularBrakeFactor
	}
	if c.SteerAlignment < 0 || c.SteerAlignment > 1 {
		c.SteerAlignment = d.SteerAlignment
	}
	if c.LinearDamping == 0 {
		c.LinearDamping = d.LinearDamping
	}
	if c.AngularDamping == 0 {
		c.AngularDamping = d.AngularDamping
	}
	return c
}

var (
	localForward = rl.NewVector3(0, 0, 1)
	localUp      = rl.NewVector3(0, 1, 0)
)

// Craft is the player ship: a dynamic box driven by thrust, torque and braking.
// It exposes stateless operations only; choosing between them each tick is the caller's job.
type Craft struct {
	*Body
	cfg CraftConfig
}

// NewCraft builds a craft at position with DefaultCraftConfig.
func NewCraft(position rl.Vector3) *Craft {
	return NewCraftWithConfig(position, CraftConfig{})
}

// NewCraftWithConfig builds a craft at position. Zero config fields use defaults.
func NewCraftWithConfig(position rl.Vector3, cfg CraftConfig) *Craft {
	cfg = cfg.withDefaults()
	b := New(Descriptor{
		Shape:          physics.NewBox(cfg.HalfExtents),
		Mass:           cfg.Mass,
		AlwaysActive:   true,
		LinearDamping:  cfg.LinearDamping,
		AngularDamping: cfg.AngularDamping,
	}, position)
	return &Craft{Body: b, cfg: cfg}
}

// Config returns the effective tuning.
func (c *Craft) Config() CraftConfig { return c.cfg }

// Forward returns the craft's nose direction in world space.
func (c *Craft) Forward() rl.Vector3 {
	return c.rigid.WorldTransform().Basis(localForward)
}

// ApplyThrust pushes the craft along its forward axis. The magnitude argument is accepted
// for call compatibility but the configured ThrustForce is what gets applied.
func (c *Craft) ApplyThrust(magnitude float32) {
	_ = magnitude
	c.rigid.ApplyCentralForce(rl.Vector3Scale(c.Forward(), c.cfg.ThrustForce))
}

// ApplyRotation turns the craft about its local up axis. Only the sign of magnitude is used
// (positive turns left); the torque is the configured RotationTorque. Linear velocity is
// bent toward the new forward direction and angular speed is capped at MaxTurnRate.
func (c *Craft) ApplyRotation(magnitude float32) {
	if magnitude == 0 {
		return
	}
	torque := c.cfg.RotationTorque
	if magnitude < 0 {
		torque = -torque
	}
	rb := c.rigid
	up := rb.WorldTransform().Basis(localUp)
	rb.ApplyTorque(rl.Vector3Scale(up, torque))

	v := rb.LinearVelocity()
	speed := rl.Vector3Length(v)
	if speed > 0 {
		aligned := rl.Vector3Scale(c.Forward(), speed)
		bent := rl.Vector3Lerp(v, aligned, c.cfg.SteerAlignment)
		if l := rl.Vector3Length(bent); l > 0 {
			rb.SetLinearVelocity(rl.Vector3Scale(bent, speed/l))
		}
	}

	w := rb.AngularVelocity()
	if rate := rl.Vector3Length(w); rate > c.cfg.MaxTurnRate {
		rb.SetAngularVelocity(rl.Vector3Scale(w, c.cfg.MaxTurnRate/rate))
	}
}

// ForceRotateInPlace yaws the craft by degrees without going through the simulation.
// Used when the craft is nearly stopped and torque alone would barely turn it.
func (c *Craft) ForceRotateInPlace(degrees float32) {
	rb := c.rigid
	t := rb.WorldTransform()
	delta := rl.QuaternionFromAxisAngle(localUp, degrees*rl.Deg2rad)
	t.Rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(delta, t.Rotation))
	rb.SetWorldTransform(t)
}

// Brake slows forward motion. Above BrakeThreshold the forward speed drops by the change
// amount would produce over one fixed step, never past zero, so the craft cannot reverse however
// many steps the next frame runs; at or below it the craft stops. Non-positive amounts only
// apply the stop below the threshold. Angular velocity decays by AngularBrakeFactor on every call.
func (c *Craft) Brake(amount float32) {
	rb := c.rigid
	fwd := c.Forward()
	v := rb.LinearVelocity()
	forwardSpeed := rl.Vector3DotProduct(v, fwd)
	if forwardSpeed > c.cfg.BrakeThreshold {
		dv := min(max(amount, 0)*rb.InverseMass()*physics.FixedTimeStep, forwardSpeed)
		rb.SetLinearVelocity(rl.Vector3Subtract(v, rl.Vector3Scale(fwd, dv)))
	} else {
		rb.SetLinearVelocity(rl.Vector3Zero())
	}
	rb.SetAngularVelocity(rl.Vector3Scale(rb.AngularVelocity(), c.cfg.AngularBrakeFactor))
}

// Rotation returns the craft's yaw in degrees.
func (c *Craft) Rotation() float32 {
	q := c.rigid.WorldTransform().Rotation
	yaw := math32.Atan2(2*(q.W*q.Y+q.X*q.Z), 1-2*(q.X*q.X+q.Y*q.Y))
	return yaw * rl.Rad2deg
}

func (c *Craft) LinearVelocity() rl.Vector3 { return c.rigid.LinearVelocity() }
func (c *Craft) AngularVelocity() rl.Vector3 { return c.rigid.AngularVelocity() }

// Speed returns the magnitude of the linear velocity.
func (c *Craft) Speed() float32 {
	return rl.Vector3Length(c.rigid.LinearVelocity())
}

func (c *Craft) HalfExtents() rl.Vector3 { return c.cfg.HalfExtents }
