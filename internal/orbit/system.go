// Package orbit keeps a procedurally generated ring system around a fixed center.
//
// Orbits are grouped into slots, bands of width Spacing starting at BaseRadius. Only slots
// near the observer are generated; once generated, a slot keeps its radius, speed, size and
// appearance for its lifetime, so revisiting a region shows the same planets.
package orbit

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"orbit-demo/internal/body"
	"orbit-demo/internal/physics"
)

var (
	ErrEmptyPool     = errors.New("appearance pool is empty")
	ErrInvalidConfig = errors.New("invalid orbit config")
)

const twoPi = 2 * math32.Pi

// Entry is one generated slot. OrbitRadius, OrbitSpeed, SpinSpeed and the body's size and
// appearance are fixed at generation; the angles advance every Update.
type Entry struct {
	Slot        int
	Body        *body.Orbiting
	OrbitRadius float32
	OrbitAngle  float32
	OrbitSpeed  float32
	SpinAngle   float32 // always in [0, 2π)
	SpinSpeed   float32
	Position    rl.Vector3
}

// Renderer draws one planet or halo per call. It is only invoked from Render.
type Renderer interface {
	DrawPlanet(world rl.Matrix, appearance body.Appearance)
	DrawHalo(world rl.Matrix, tint rl.Color)
}

// System owns the generated slots, the bodies in them and the random stream they are drawn from.
type System struct {
	cfg         Config
	world       *physics.World
	appearances []body.Appearance
	center      rl.Vector3
	entries     map[int]*Entry
	rng         *rand.Rand
	seed        int64
	log         zerolog.Logger
}

// New returns an empty system around center. Bodies it generates are registered in world and
// take their appearance from appearances, which is copied.
func New(world *physics.World, appearances []body.Appearance, center rl.Vector3, cfg Config) (*System, error) {
	if world == nil {
		return nil, fmt.Errorf("new orbit system: %w", physics.ErrInvalidState)
	}
	if len(appearances) == 0 {
		return nil, ErrEmptyPool
	}
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &System{
		cfg:         cfg,
		world:       world,
		appearances: slices.Clone(appearances),
		center:      center,
		entries:     make(map[int]*Entry),
		rng:         rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
		seed:        seed,
		log:         zerolog.Nop(),
	}, nil
}

// SetLogger sets where generation and eviction events are reported.
func (s *System) SetLogger(l zerolog.Logger) {
	s.log = l.With().Str("component", "orbit").Logger()
}

func (s *System) Config() Config { return s.cfg }
func (s *System) Center() rl.Vector3 { return s.center }
func (s *System) Seed() int64 { return s.seed }
func (s *System) Len() int { return len(s.entries) }

// SlotIndex maps a distance from the center to its slot. Distances inside BaseRadius give
// negative slots, which are never generated.
func (s *System) SlotIndex(distance float32) int {
	return int(math32.Floor((distance - s.cfg.BaseRadius) / s.cfg.Spacing))
}

// Range is the number of slots generated on each side of the observer's slot.
func (s *System) Range() int {
	return int(math32.Floor(s.cfg.GenerationRadius / s.cfg.Spacing))
}

// Update generates missing slots around observer, then advances and places every entry.
func (s *System) Update(dt float32, observer rl.Vector3) error {
	distance := rl.Vector3Distance(observer, s.center)
	centerSlot := s.SlotIndex(distance)
	r := s.Range()
	lo, hi := max(centerSlot-r, 0), centerSlot+r
	for i := lo; i <= hi; i++ {
		if _, err := s.EnsureSlot(i); err != nil {
			return err
		}
	}
	if s.cfg.EvictFactor > 0 {
		if err := s.evict(distance, lo, hi); err != nil {
			return err
		}
	}

	for _, e := range s.entries {
		e.OrbitAngle += e.OrbitSpeed * s.cfg.OrbitMultiplier * dt
		e.SpinAngle = wrapAngle(e.SpinAngle + e.SpinSpeed*s.cfg.SpinMultiplier*dt)
		e.Position = s.onCircle(e.OrbitRadius, e.OrbitAngle)
		if err := s.world.SetKinematicTransform(e.Body.RigidBody(), physics.At(e.Position)); err != nil {
			return fmt.Errorf("place slot %d: %w", e.Slot, err)
		}
	}
	return nil
}

// EnsureSlot generates slot i if it does not exist yet. Existing slots are left untouched and
// negative slots are ignored; created reports whether a new entry was made.
func (s *System) EnsureSlot(i int) (created bool, err error) {
	if i < 0 {
		return false, nil
	}
	if _, ok := s.entries[i]; ok {
		return false, nil
	}

	orbitRadius := s.cfg.BaseRadius + float32(i)*s.cfg.Spacing
	angle := s.uniform(0, twoPi)
	orbitSpeed := s.uniform(s.cfg.OrbitSpeedMin, s.cfg.OrbitSpeedMax)
	spinSpeed := s.uniform(s.cfg.SpinSpeedMin, s.cfg.SpinSpeedMax)
	size := s.uniform(s.cfg.SizeMin, s.cfg.SizeMax)

	pos := s.onCircle(orbitRadius, angle)
	planet := body.NewOrbiting(pos, size)
	planet.SetAppearance(s.appearances[s.rng.IntN(len(s.appearances))])
	if err := planet.AddToWorld(s.world); err != nil {
		return false, fmt.Errorf("generate slot %d: %w", i, err)
	}

	s.entries[i] = &Entry{
		Slot:        i,
		Body:        planet,
		OrbitRadius: orbitRadius,
		OrbitAngle:  angle,
		OrbitSpeed:  orbitSpeed,
		SpinSpeed:   spinSpeed,
		Position:    pos,
	}
	s.log.Debug().Int("slot", i).Float32("radius", orbitRadius).Float32("size", size).Msg("slot generated")
	return true, nil
}

// Entry returns a copy of slot i's entry.
func (s *System) Entry(i int) (Entry, bool) {
	e, ok := s.entries[i]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Slots returns the generated slot indices in ascending order.
func (s *System) Slots() []int {
	out := make([]int, 0, len(s.entries))
	for i := range s.entries {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// Render hands every planet, and each orbit's halo when enabled, to r.
func (s *System) Render(r Renderer) {
	for _, i := range s.Slots() {
		e := s.entries[i]
		r.DrawPlanet(PlanetWorldMatrix(*e), e.Body.Appearance())
		if s.cfg.DrawHalos {
			r.DrawHalo(s.HaloWorldMatrix(*e), s.cfg.HaloColor)
		}
	}
}

// PlanetWorldMatrix returns scale by radius, then spin about Y, then translation to the entry's position.
func PlanetWorldMatrix(e Entry) rl.Matrix {
	r := e.Body.Radius()
	m := rl.MatrixMultiply(rl.MatrixScale(r, r, r), rl.MatrixRotateY(e.SpinAngle))
	return rl.MatrixMultiply(m, rl.MatrixTranslate(e.Position.X, e.Position.Y, e.Position.Z))
}

// HaloWorldMatrix returns the flat ring matching the entry's orbit, lifted slightly above the plane.
func (s *System) HaloWorldMatrix(e Entry) rl.Matrix {
	k := e.OrbitRadius / s.cfg.HaloModelRadius
	c := s.center
	return rl.MatrixMultiply(rl.MatrixScale(k, 1, k), rl.MatrixTranslate(c.X, c.Y+s.cfg.HaloLift, c.Z))
}

// Close removes every body from the world and releases it.
func (s *System) Close() error {
	var errs []error
	for _, i := range s.Slots() {
		if err := s.drop(i); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// evict drops entries further than EvictFactor*GenerationRadius from distance. Slots in the
// current window [lo, hi] always stay, whatever the factor.
func (s *System) evict(distance float32, lo, hi int) error {
	limit := s.cfg.EvictFactor * s.cfg.GenerationRadius
	for _, i := range s.Slots() {
		if i >= lo && i <= hi {
			continue
		}
		e := s.entries[i]
		if math32.Abs(e.OrbitRadius-distance) <= limit {
			continue
		}
		if err := s.drop(i); err != nil {
			return err
		}
		s.log.Debug().Int("slot", i).Msg("slot evicted")
	}
	return nil
}

func (s *System) drop(i int) error {
	e := s.entries[i]
	if err := e.Body.RemoveFromWorld(s.world); err != nil {
		return fmt.Errorf("drop slot %d: %w", i, err)
	}
	if err := e.Body.Release(); err != nil {
		return fmt.Errorf("drop slot %d: %w", i, err)
	}
	delete(s.entries, i)
	return nil
}

func (s *System) onCircle(radius, angle float32) rl.Vector3 {
	return rl.NewVector3(
		s.center.X+radius*math32.Cos(angle),
		s.center.Y,
		s.center.Z+radius*math32.Sin(angle),
	)
}

func (s *System) uniform(lo, hi float32) float32 {
	return lo + s.rng.Float32()*(hi-lo)
}

// wrapAngle maps a into [0, 2π).
func wrapAngle(a float32) float32 {
	a = math32.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	if a >= twoPi {
		a = 0
	}
	return a
}
