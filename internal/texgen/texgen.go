// Package texgen paints procedural planet surfaces from fractal value noise.
package texgen

import (
	"time"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Style selects how noise is turned into a surface.
type Style int

const (
	// Rocky maps noise height straight through the palette (continents, craters).
	Rocky Style = iota
	// Banded stretches noise along latitude, for gas giants.
	Banded
	// Glow is a bright, low-contrast surface for the sun.
	Glow
)

// Options controls one texture. Width and Height are in pixels.
// Seed == 0 uses a time-based seed.
// Octaves, Frequency, Lacunarity, and Gain control the fractal noise shape.
type Options struct {
	Width   int
	Height  int
	Style   Style
	Palette Palette

	Seed       int64
	Octaves    int
	Frequency  float32
	Lacunarity float32
	Gain       float32
}

// DefaultOptions returns a 256x128 rocky planet.
func DefaultOptions() Options {
	return Options{
		Width:      256,
		Height:     128,
		Style:      Rocky,
		Palette:    Palettes[0],
		Octaves:    5,
		Frequency:  2.5,
		Lacunarity: 2.0,
		Gain:       0.5,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if len(o.Palette) == 0 {
		o.Palette = d.Palette
	}
	if o.Octaves <= 0 {
		o.Octaves = d.Octaves
	}
	if o.Frequency <= 0 {
		o.Frequency = d.Frequency
	}
	if o.Lacunarity <= 0 {
		o.Lacunarity = d.Lacunarity
	}
	if o.Gain <= 0 {
		o.Gain = d.Gain
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	return o
}

// Colors returns the texture as row-major pixels, Width*Height long.
// Noise is sampled on a cylinder so the texture wraps around the sphere without a seam.
func Colors(opts Options) []rl.Color {
	opts = opts.withDefaults()
	out := make([]rl.Color, 0, opts.Width*opts.Height)
	for y := 0; y < opts.Height; y++ {
		v := (float32(y) + 0.5) / float32(opts.Height)
		for x := 0; x < opts.Width; x++ {
			u := float32(x) / float32(opts.Width)
			out = append(out, opts.Palette.At(sample(opts, u, v)))
		}
	}
	return out
}

// sample returns the surface value in [0,1] at texture coordinate (u, v).
func sample(opts Options, u, v float32) float32 {
	theta := u * 2 * math32.Pi
	f := opts.Frequency
	cx, cz := math32.Cos(theta)*f, math32.Sin(theta)*f
	cy := v * f * 2
	seed := int32(opts.Seed)

	var h float32
	switch opts.Style {
	case Banded:
		// latitude dominates; noise only wobbles the bands
		warp := fractalValueNoise3D(cx, cy, cz, seed, opts.Octaves, opts.Lacunarity, opts.Gain)
		h = 0.5 + 0.5*math32.Sin(v*math32.Pi*7+warp*4)
	case Glow:
		n := fractalValueNoise3D(cx*2, cy*2, cz*2, seed, opts.Octaves, opts.Lacunarity, opts.Gain)
		h = 0.6 + 0.4*n
	default:
		h = fractalValueNoise3D(cx, cy, cz, seed, opts.Octaves, opts.Lacunarity, opts.Gain)
	}
	if !isFinite(h) {
		return 0
	}
	return clamp01(h)
}

// GenerateImage paints opts into a new raylib image. The caller unloads it.
func GenerateImage(opts Options) *rl.Image {
	opts = opts.withDefaults()
	pixels := Colors(opts)
	img := rl.GenImageColor(opts.Width, opts.Height, rl.Black)
	for i, c := range pixels {
		rl.ImageDrawPixel(img, int32(i%opts.Width), int32(i/opts.Width), c)
	}
	return img
}

// PoolOptions returns n texture descriptions cycling through the planet palettes,
// each with its own seed derived from seed. The result only depends on n and seed.
func PoolOptions(n int, seed int64) []Options {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	out := make([]Options, 0, n)
	for i := 0; i < n; i++ {
		o := DefaultOptions()
		o.Palette = Palettes[i%len(Palettes)]
		if i%3 == 2 {
			o.Style = Banded
		}
		o.Seed = seed + int64(i)*7919
		out = append(out, o)
	}
	return out
}

// SunOptions returns the texture description for the central star.
func SunOptions(seed int64) Options {
	o := DefaultOptions()
	o.Style = Glow
	o.Palette = SunPalette
	o.Seed = seed
	return o
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

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
