package scene

import (
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"orbit-demo/internal/body"
	"orbit-demo/internal/orbit"
	"orbit-demo/internal/physics"
)

// Ellipse describes the lone planet that runs outside the slot system on a fixed ellipse.
// SemiMajor lies along X and SemiMinor along Z. A non-positive axis disables the planet.
type Ellipse struct {
	SemiMajor  float32
	SemiMinor  float32
	Radius     float32
	OrbitSpeed float32 // rad/s
	SpinSpeed  float32 // rad/s
}

// DefaultEllipse returns the planet the demo starts with.
func DefaultEllipse() Ellipse {
	return Ellipse{SemiMajor: 103, SemiMinor: 99, Radius: 0.5, OrbitSpeed: 0.02, SpinSpeed: 1}
}

func (e Ellipse) enabled() bool {
	return e.SemiMajor > 0 && e.SemiMinor > 0
}

type ellipticPlanet struct {
	cfg    Ellipse
	center rl.Vector3
	body   *body.Orbiting
	angle  float32
	spin   float32
}

// newEllipticPlanet places the planet at a random angle with a random appearance and registers it.
func newEllipticPlanet(cfg Ellipse, center rl.Vector3, appearances []body.Appearance, seed int64, w *physics.World) (*ellipticPlanet, error) {
	if cfg.Radius <= 0 {
		cfg.Radius = DefaultEllipse().Radius
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
	p := &ellipticPlanet{cfg: cfg, center: center, angle: rng.Float32() * 2 * math32.Pi}
	p.body = body.NewOrbiting(p.position(), cfg.Radius)
	if len(appearances) > 0 {
		p.body.SetAppearance(appearances[rng.IntN(len(appearances))])
	}
	if err := p.body.AddToWorld(w); err != nil {
		return nil, fmt.Errorf("add elliptic planet: %w", err)
	}
	return p, nil
}

func (p *ellipticPlanet) position() rl.Vector3 {
	return rl.NewVector3(
		p.center.X+p.cfg.SemiMajor*math32.Cos(p.angle),
		p.center.Y,
		p.center.Z+p.cfg.SemiMinor*math32.Sin(p.angle),
	)
}

// update advances orbit and spin, then writes the new placement to both body transform and motion state.
func (p *ellipticPlanet) update(dt float32, w *physics.World) error {
	p.angle += p.cfg.OrbitSpeed * dt
	p.spin += p.cfg.SpinSpeed * dt
	if p.spin > 2*math32.Pi {
		p.spin -= 2 * math32.Pi
	}
	if err := w.SetKinematicTransform(p.body.RigidBody(), physics.At(p.position())); err != nil {
		return fmt.Errorf("place elliptic planet: %w", err)
	}
	return p.body.SyncTransform()
}

func (p *ellipticPlanet) worldMatrix() rl.Matrix {
	r := p.body.Radius()
	pos := p.body.Position()
	m := rl.MatrixMultiply(rl.MatrixScale(r, r, r), rl.MatrixRotateY(p.spin))
	return rl.MatrixMultiply(m, rl.MatrixTranslate(pos.X, pos.Y, pos.Z))
}

// haloMatrix stretches the halo ring mesh onto the ellipse.
func (p *ellipticPlanet) haloMatrix(cfg orbit.Config) rl.Matrix {
	sx := p.cfg.SemiMajor / cfg.HaloModelRadius
	sz := p.cfg.SemiMinor / cfg.HaloModelRadius
	return rl.MatrixMultiply(
		rl.MatrixScale(sx, 1, sz),
		rl.MatrixTranslate(p.center.X, p.center.Y+cfg.HaloLift, p.center.Z),
	)
}

func (p *ellipticPlanet) render(r orbit.Renderer, cfg orbit.Config) {
	r.DrawPlanet(p.worldMatrix(), p.body.Appearance())
	if cfg.DrawHalos {
		r.DrawHalo(p.haloMatrix(cfg), cfg.HaloColor)
	}
}

func (p *ellipticPlanet) close(w *physics.World) error {
	if err := p.body.RemoveFromWorld(w); err != nil {
		return err
	}
	return p.body.Release()
}
