// Package scene drives one frame of the demo: input routing, physics, the orbit system and the cameras.
package scene

import (
	"fmt"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"orbit-demo/internal/body"
	"orbit-demo/internal/camera"
	"orbit-demo/internal/debug"
	"orbit-demo/internal/graphics"
	"orbit-demo/internal/input"
	"orbit-demo/internal/logger"
	"orbit-demo/internal/orbit"
	"orbit-demo/internal/physics"
	"orbit-demo/internal/render"
)

// Mode selects who the input drives.
type Mode int

const (
	// FreeCamera flies the camera; the craft idles.
	FreeCamera Mode = iota
	// Gameplay flies the craft with a chase camera behind it.
	Gameplay
)

func (m Mode) String() string {
	if m == Gameplay {
		return "gameplay"
	}
	return "free camera"
}

const (
	// restSpeed is the craft speed below which steering turns in place.
	restSpeed       = 0.1
	inPlaceDegrees  = 0.5
	steerMagnitude  = 25
	pitchFactor     = 0.8
	mouseScale      = 0.01
	maxPitchDegrees = 89
)

// chaseOffset places the gameplay camera above and behind the craft, in craft space.
var chaseOffset = rl.NewVector3(0, 50, -20)

// Options configure a Scene. Zero values fall back to the demo defaults.
type Options struct {
	Center      rl.Vector3
	SunRadius   float32
	CraftStart  rl.Vector3
	Craft       body.CraftConfig
	Orbit       orbit.Config
	Ellipse     Ellipse
	MaxSubSteps int
	BrakeForce  float32

	MoveSpeed        float32
	RotationSpeed    float32
	MouseSensitivity float32
	FOV              float32
	SkyboxDir        string
	GridVisible      bool

	Planets []body.Appearance
	Sun     body.Appearance
}

// Scene owns the physics world, camera, craft, sun and orbit system.
type Scene struct {
	opts   Options
	log    *logger.Logger
	world  *physics.World
	camera *camera.Camera
	craft  *body.Craft
	sun    *body.Orbiting
	system *orbit.System
	planet *ellipticPlanet // nil when Options.Ellipse is disabled
	mode   Mode

	showFlames bool
	sky        skybox
}

// New builds the scene: an empty zero-gravity world with the craft and sun registered,
// and an orbit system around the center.
func New(opts Options, log *logger.Logger) (*Scene, error) {
	if opts.SunRadius <= 0 {
		opts.SunRadius = 1
	}
	if opts.BrakeForce <= 0 {
		opts.BrakeForce = 30
	}
	if opts.MouseSensitivity <= 0 {
		opts.MouseSensitivity = 0.25
	}
	if opts.FOV <= 0 {
		opts.FOV = 60
	}

	world := physics.NewWorld()
	craft := body.NewCraftWithConfig(opts.CraftStart, opts.Craft)
	if err := craft.AddToWorld(world); err != nil {
		return nil, fmt.Errorf("add craft: %w", err)
	}
	sun := body.NewOrbiting(opts.Center, opts.SunRadius)
	sun.SetAppearance(opts.Sun)
	if err := sun.AddToWorld(world); err != nil {
		return nil, fmt.Errorf("add sun: %w", err)
	}
	system, err := orbit.New(world, opts.Planets, opts.Center, opts.Orbit)
	if err != nil {
		return nil, fmt.Errorf("new orbit system: %w", err)
	}
	system.SetLogger(log.Logger)
	var planet *ellipticPlanet
	if opts.Ellipse.enabled() {
		planet, err = newEllipticPlanet(opts.Ellipse, opts.Center, opts.Planets, system.Seed(), world)
		if err != nil {
			return nil, err
		}
	}

	cam := camera.New()
	cam.SetSpeeds(opts.MoveSpeed, opts.RotationSpeed)
	cam.SetPosition(rl.NewVector3(opts.Center.X, opts.Center.Y+20, opts.Center.Z-100))
	cam.SetRotation(rl.NewVector3(-0.15, 0, 0))
	cam.Update()

	s := &Scene{
		opts:   opts,
		log:    log,
		world:  world,
		camera: cam,
		craft:  craft,
		sun:    sun,
		system: system,
		planet: planet,
	}
	if err := s.syncBodies(); err != nil {
		return nil, err
	}
	s.sky.find(opts.SkyboxDir)
	log.Info().Int64("seed", system.Seed()).Msg("scene ready")
	return s, nil
}

func (s *Scene) Mode() Mode { return s.mode }
func (s *Scene) Camera() *camera.Camera { return s.camera }
func (s *Scene) Craft() *body.Craft { return s.craft }
func (s *Scene) Sun() *body.Orbiting { return s.sun }
func (s *Scene) System() *orbit.System { return s.system }
func (s *Scene) World() *physics.World { return s.world }

// ShowFlames reports whether the engines fired this frame.
func (s *Scene) ShowFlames() bool { return s.showFlames }

// Update advances one frame: route input, step physics, move the planets, sync render
// transforms and place the camera. Quit returns graphics.ErrStop.
func (s *Scene) Update(dt float32, cmd input.Commands) error {
	if cmd.Quit {
		return graphics.ErrStop
	}
	if cmd.ToggleMode {
		s.mode = 1 - s.mode
		s.log.Info().Stringer("mode", s.mode).Msg("mode changed")
	}
	if cmd.ToggleGrid {
		s.opts.GridVisible = !s.opts.GridVisible
	}

	s.showFlames = false
	switch s.mode {
	case FreeCamera:
		s.flyCamera(dt, cmd)
	case Gameplay:
		s.steerCraft(cmd)
	}

	s.world.StepSimulation(dt, s.opts.MaxSubSteps)
	if err := s.system.Update(dt, s.camera.Position()); err != nil {
		return fmt.Errorf("update orbit system: %w", err)
	}
	if s.planet != nil {
		if err := s.planet.update(dt, s.world); err != nil {
			return err
		}
	}
	if err := s.syncBodies(); err != nil {
		return err
	}
	if s.mode == Gameplay {
		s.chase()
	}
	s.camera.Update()
	return nil
}

func (s *Scene) syncBodies() error {
	if err := s.craft.SyncTransform(); err != nil {
		return fmt.Errorf("sync craft: %w", err)
	}
	if err := s.sun.SyncTransform(); err != nil {
		return fmt.Errorf("sync sun: %w", err)
	}
	return nil
}

// flyCamera moves the free camera by MoveSpeed per frame and turns it with the mouse while
// the secondary button is held.
func (s *Scene) flyCamera(dt float32, cmd input.Commands) {
	cam := s.camera
	step := cam.MoveSpeed()
	pos := cam.Position()
	if cmd.Left {
		pos = rl.Vector3Subtract(pos, rl.Vector3Scale(cam.Right(), step))
	}
	if cmd.Right {
		pos = rl.Vector3Add(pos, rl.Vector3Scale(cam.Right(), step))
	}
	if cmd.Forward {
		pos = rl.Vector3Add(pos, rl.Vector3Scale(cam.Forward(), step))
	}
	if cmd.Back {
		pos = rl.Vector3Subtract(pos, rl.Vector3Scale(cam.Forward(), step))
	}
	if cmd.MoveUp {
		pos.Y += step
	}
	if cmd.MoveDown {
		pos.Y -= step
	}
	cam.SetPosition(pos)

	rot := cam.Rotation()
	if cmd.RotLeft {
		rot.Y += cam.RotationSpeed() * dt
	}
	if cmd.RotRight {
		rot.Y -= cam.RotationSpeed() * dt
	}
	if cmd.SecondaryHeld {
		sens := s.opts.MouseSensitivity * mouseScale
		rot.Y -= cmd.MouseDelta.X * sens
		rot.X -= cmd.MouseDelta.Y * sens * pitchFactor
	}
	limit := float32(maxPitchDegrees) * rl.Deg2rad
	rot.X = max(-limit, min(limit, rot.X))
	cam.SetRotation(rot)
}

// steerCraft routes gameplay input to the craft. Turning at rest rotates in place, since
// torque on a stopped craft barely turns it.
func (s *Scene) steerCraft(cmd input.Commands) {
	c := s.craft
	speed := c.Speed()
	s.showFlames = cmd.Forward || cmd.Left || cmd.Right

	if cmd.Forward {
		c.ApplyThrust(c.Config().ThrustForce)
	}
	if cmd.Back {
		c.Brake(s.opts.BrakeForce)
	}
	if cmd.Left {
		if speed < restSpeed {
			c.ForceRotateInPlace(inPlaceDegrees)
		} else {
			c.ApplyRotation(steerMagnitude)
		}
	}
	if cmd.Right {
		if speed < restSpeed {
			c.ForceRotateInPlace(-inPlaceDegrees)
		} else {
			c.ApplyRotation(-steerMagnitude)
		}
	}
}

// chase puts the camera at chaseOffset behind the craft and aims it at the craft.
func (s *Scene) chase() {
	target := s.craft.Position()
	yaw := s.craft.Rotation() * rl.Deg2rad
	offset := rl.Vector3Transform(chaseOffset, rl.MatrixRotateY(yaw))
	pos := rl.Vector3Add(target, offset)
	s.camera.SetPosition(pos)

	dir := rl.Vector3Normalize(rl.Vector3Subtract(target, pos))
	pitch := math32.Asin(dir.Y)
	heading := math32.Atan2(dir.X, dir.Z)
	s.camera.SetRotation(rl.NewVector3(pitch, heading, 0))
}

// Draw renders the 3D frame: skybox, optional grid, sun, craft, then every planet and halo.
func (s *Scene) Draw(reg *render.Registry, light render.Light) {
	rl.BeginMode3D(s.camera.Camera3D(s.opts.FOV))
	s.sky.draw(s.camera.Position())
	if s.opts.GridVisible {
		drawGrid(s.opts.Center)
	}
	reg.SetFrame(s.camera, light)
	r := s.sun.Radius()
	reg.DrawSun(rl.MatrixMultiply(rl.MatrixScale(r, r, r), s.sun.WorldMatrix()), s.sun.Appearance())
	reg.DrawCraft(s.craft.WorldMatrix(), s.craft.HalfExtents(), s.showFlames)
	s.system.Render(reg)
	if s.planet != nil {
		s.planet.render(reg, s.system.Config())
	}
	rl.EndMode3D()
}

// Stats returns the values shown on the HUD.
func (s *Scene) Stats() debug.Stats {
	return debug.Stats{
		Mode:       s.mode.String(),
		CraftSpeed: s.craft.Speed(),
		CraftYaw:   s.craft.Rotation(),
		Camera:     s.camera.Position(),
		Planets:    s.system.Len(),
		Seed:       s.system.Seed(),
		LastLog:    s.log.Last(),
	}
}

// Close removes the planets, craft and sun from the world and releases them.
func (s *Scene) Close() error {
	if err := s.system.Close(); err != nil {
		return err
	}
	if s.planet != nil {
		if err := s.planet.close(s.world); err != nil {
			return err
		}
	}
	for _, b := range []*body.Body{s.craft.Body, s.sun.Body} {
		if err := b.RemoveFromWorld(s.world); err != nil {
			return err
		}
		if err := b.Release(); err != nil {
			return err
		}
	}
	s.sky.unload()
	return nil
}
