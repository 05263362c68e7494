package texgen

import rl "github.com/gen2brain/raylib-go/raylib"

// Palette is an ordered list of colors spread evenly over [0,1].
type Palette []rl.Color

// At returns the palette color at t in [0,1], interpolating between neighbouring stops.
func (p Palette) At(t float32) rl.Color {
	switch len(p) {
	case 0:
		return rl.Magenta
	case 1:
		return p[0]
	}
	t = clamp01(t)
	pos := t * float32(len(p)-1)
	i := int(pos)
	if i >= len(p)-1 {
		return p[len(p)-1]
	}
	return lerpColor(p[i], p[i+1], pos-float32(i))
}

func lerpColor(a, b rl.Color, t float32) rl.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t + 0.5)
	}
	return rl.NewColor(mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A))
}

// Palettes are the planet surfaces the procedural pool cycles through.
var Palettes = []Palette{
	// ocean world
	{rl.NewColor(10, 30, 90, 255), rl.NewColor(20, 70, 160, 255), rl.NewColor(210, 190, 120, 255), rl.NewColor(40, 120, 50, 255), rl.NewColor(240, 240, 240, 255)},
	// desert
	{rl.NewColor(90, 50, 25, 255), rl.NewColor(170, 110, 60, 255), rl.NewColor(220, 180, 120, 255)},
	// gas giant
	{rl.NewColor(120, 80, 50, 255), rl.NewColor(210, 170, 120, 255), rl.NewColor(240, 225, 200, 255), rl.NewColor(160, 100, 70, 255)},
	// ice
	{rl.NewColor(120, 150, 180, 255), rl.NewColor(200, 225, 240, 255), rl.NewColor(255, 255, 255, 255)},
	// lava
	{rl.NewColor(20, 10, 10, 255), rl.NewColor(60, 20, 15, 255), rl.NewColor(230, 80, 20, 255), rl.NewColor(255, 200, 60, 255)},
}

// SunPalette is used by SunOptions.
var SunPalette = Palette{rl.NewColor(255, 140, 20, 255), rl.NewColor(255, 200, 60, 255), rl.NewColor(255, 245, 200, 255)}
