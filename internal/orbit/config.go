package orbit

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Config tunes slot layout, generation ranges and halo drawing.
// Zero numeric fields fall back to DefaultConfig.
type Config struct {
	BaseRadius       float32 // orbit radius of slot 0
	Spacing          float32 // radial distance between neighbouring slots
	GenerationRadius float32 // half-width of the generation window around the observer

	OrbitSpeedMin, OrbitSpeedMax float32 // rad/s
	SpinSpeedMin, SpinSpeedMax   float32 // rad/s
	SizeMin, SizeMax             float32 // planet radius

	OrbitMultiplier float32 // scales every orbit speed
	SpinMultiplier  float32 // scales every spin speed

	DrawHalos       bool
	HaloModelRadius float32 // radius of the halo mesh at scale 1
	HaloLift        float32 // halo height above the orbit plane
	HaloColor       rl.Color

	// EvictFactor > 0 removes entries whose orbit lies further than
	// EvictFactor*GenerationRadius from the observer, except slots in the current
	// generation window. 0 keeps every slot forever.
	EvictFactor float32

	// Seed for the generation stream. 0 picks a time-based seed.
	Seed int64
}

// DefaultConfig returns the layout used by the demo.
func DefaultConfig() Config {
	return Config{
		BaseRadius:       120,
		Spacing:          50,
		GenerationRadius: 150,
		OrbitSpeedMin:    0.01,
		OrbitSpeedMax:    0.04,
		SpinSpeedMin:     0.5,
		SpinSpeedMax:     2.0,
		SizeMin:          0.3,
		SizeMax:          0.8,
		OrbitMultiplier:  1,
		SpinMultiplier:   1,
		DrawHalos:        true,
		HaloModelRadius:  170,
		HaloLift:         0.1,
		HaloColor:        rl.NewColor(255, 255, 255, 38),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	fill := func(v *float32, def float32) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&c.BaseRadius, d.BaseRadius)
	fill(&c.Spacing, d.Spacing)
	fill(&c.GenerationRadius, d.GenerationRadius)
	if c.OrbitSpeedMin == 0 && c.OrbitSpeedMax == 0 {
		c.OrbitSpeedMin, c.OrbitSpeedMax = d.OrbitSpeedMin, d.OrbitSpeedMax
	}
	if c.SpinSpeedMin == 0 && c.SpinSpeedMax == 0 {
		c.SpinSpeedMin, c.SpinSpeedMax = d.SpinSpeedMin, d.SpinSpeedMax
	}
	if c.SizeMin == 0 && c.SizeMax == 0 {
		c.SizeMin, c.SizeMax = d.SizeMin, d.SizeMax
	}
	fill(&c.OrbitMultiplier, d.OrbitMultiplier)
	fill(&c.SpinMultiplier, d.SpinMultiplier)
	fill(&c.HaloModelRadius, d.HaloModelRadius)
	fill(&c.HaloLift, d.HaloLift)
	if c.HaloColor == (rl.Color{}) {
		c.HaloColor = d.HaloColor
	}
	return c
}

func (c Config) validate() error {
	switch {
	case c.Spacing < 0:
		return fmt.Errorf("%w: spacing %v must be positive", ErrInvalidConfig, c.Spacing)
	case c.GenerationRadius < 0:
		return fmt.Errorf("%w: generation radius %v is negative", ErrInvalidConfig, c.GenerationRadius)
	case c.OrbitSpeedMin > c.OrbitSpeedMax:
		return fmt.Errorf("%w: orbit speed range [%v, %v]", ErrInvalidConfig, c.OrbitSpeedMin, c.OrbitSpeedMax)
	case c.SpinSpeedMin > c.SpinSpeedMax:
		return fmt.Errorf("%w: spin speed range [%v, %v]", ErrInvalidConfig, c.SpinSpeedMin, c.SpinSpeedMax)
	case c.SizeMin <= 0 || c.SizeMin > c.SizeMax:
		return fmt.Errorf("%w: size range [%v, %v]", ErrInvalidConfig, c.SizeMin, c.SizeMax)
	case c.EvictFactor < 0:
		return fmt.Errorf("%w: evict factor %v is negative", ErrInvalidConfig, c.EvictFactor)
	}
	return nil
}
