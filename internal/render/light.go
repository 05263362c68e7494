package render

import rl "github.com/gen2brain/raylib-go/raylib"

// Light is a single directional light with an ambient term.
// Direction is the way the light travels; shaders receive its negation.
type Light struct {
	Ambient   rl.Color
	Diffuse   rl.Color
	Position  rl.Vector3
	Direction rl.Vector3
}

// DefaultLight returns the demo's light: dim grey ambient, white diffuse, shining down and to -X.
func DefaultLight() Light {
	return Light{
		Ambient:   rl.ColorFromNormalized(rl.NewVector4(0.3, 0.3, 0.3, 1)),
		Diffuse:   rl.White,
		Position:  rl.NewVector3(2, 1, 1),
		Direction: rl.NewVector3(-1, -1, 0),
	}
}

// uniforms returns the shader inputs for l: direction to the light, ambient rgba and diffuse rgb.
// A zero direction falls back to straight down.
func (l Light) uniforms() (toLight [3]float32, ambient [4]float32, diffuse [3]float32) {
	d := l.Direction
	if rl.Vector3Length(d) == 0 {
		d = rl.NewVector3(0, -1, 0)
	}
	d = rl.Vector3Normalize(rl.Vector3Negate(d))
	toLight = [3]float32{d.X, d.Y, d.Z}

	a := rl.ColorNormalize(l.Ambient)
	ambient = [4]float32{a.X, a.Y, a.Z, a.W}
	c := rl.ColorNormalize(l.Diffuse)
	diffuse = [3]float32{c.X, c.Y, c.Z}
	return toLight, ambient, diffuse
}
