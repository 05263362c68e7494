package texgen

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoiseRangeAndDeterminism(t *testing.T) {
	for i := 0; i < 200; i++ {
		x := float32(i) * 0.37
		y := float32(i) * -0.91
		z := float32(i) * 0.13
		n := fractalValueNoise3D(x, y, z, 11, 4, 2, 0.5)
		assert.GreaterOrEqual(t, n, float32(0))
		assert.LessOrEqual(t, n, float32(1))
		assert.Equal(t, n, fractalValueNoise3D(x, y, z, 11, 4, 2, 0.5))
	}
}

func TestNoiseMatchesLatticeAtCorners(t *testing.T) {
	assert.Equal(t, hash3D(2, -3, 5, 9), valueNoise3D(2, -3, 5, 9))
}

func TestZeroOctavesIsZero(t *testing.T) {
	assert.Equal(t, float32(0), fractalValueNoise3D(1, 2, 3, 1, 0, 2, 0.5))
}

func TestSmoothStep(t *testing.T) {
	assert.Equal(t, float32(0), smoothStep(-1))
	assert.Equal(t, float32(1), smoothStep(2))
	assert.Equal(t, float32(0.5), smoothStep(0.5))
}

func TestPaletteAt(t *testing.T) {
	p := Palette{rl.NewColor(0, 0, 0, 255), rl.NewColor(200, 100, 50, 255)}
	assert.Equal(t, p[0], p.At(0))
	assert.Equal(t, p[1], p.At(1))
	assert.Equal(t, p[1], p.At(5))
	assert.Equal(t, rl.NewColor(100, 50, 25, 255), p.At(0.5))
	assert.Equal(t, rl.Magenta, Palette{}.At(0.3))
	assert.Equal(t, p[0], Palette{p[0]}.At(0.7))
}

func TestColorsSizeAndSeed(t *testing.T) {
	opts := Options{Width: 32, Height: 16, Seed: 5}
	a := Colors(opts)
	require.Len(t, a, 32*16)
	assert.Equal(t, a, Colors(opts))

	opts.Seed = 6
	assert.NotEqual(t, a, Colors(opts))
}

func TestBandedAndGlowStayInPalette(t *testing.T) {
	for _, style := range []Style{Banded, Glow} {
		opts := Options{Width: 16, Height: 16, Seed: 3, Style: style, Palette: Palette{rl.Black, rl.White}}
		for _, c := range Colors(opts) {
			assert.Equal(t, c.R, c.G)
			assert.Equal(t, uint8(255), c.A)
		}
	}
}

func TestPoolOptions(t *testing.T) {
	pool := PoolOptions(7, 100)
	require.Len(t, pool, 7)
	assert.Equal(t, pool, PoolOptions(7, 100))
	assert.Equal(t, Palettes[1], pool[1].Palette)
	assert.Equal(t, Banded, pool[2].Style)
	assert.NotEqual(t, pool[0].Seed, pool[1].Seed)

	sun := SunOptions(4)
	assert.Equal(t, Glow, sun.Style)
	assert.Equal(t, SunPalette, sun.Palette)
}
