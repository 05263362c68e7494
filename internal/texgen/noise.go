package texgen

import "github.com/chewxy/math32"

// fractalValueNoise3D is layered smooth value noise with configurable octaves, lacunarity,
// and gain. Output is in [0,1].
func fractalValueNoise3D(x, y, z float32, seed int32, octaves int, lacunarity, gain float32) float32 {
	var sum float32
	var amplitude float32 = 1
	var maxAmp float32
	freq := float32(1)

	for i := 0; i < octaves; i++ {
		n := valueNoise3D(x*freq, y*freq, z*freq, seed+int32(i))
		sum += n * amplitude
		maxAmp += amplitude
		amplitude *= gain
		freq *= lacunarity
	}
	if maxAmp == 0 {
		return 0
	}
	return sum / maxAmp
}

// valueNoise3D is smooth value noise in [0,1] over a hashed integer lattice.
func valueNoise3D(x, y, z float32, seed int32) float32 {
	x0 := int32(math32.Floor(x))
	y0 := int32(math32.Floor(y))
	z0 := int32(math32.Floor(z))
	sx := smoothStep(x - float32(x0))
	sy := smoothStep(y - float32(y0))
	sz := smoothStep(z - float32(z0))

	corner := func(dx, dy, dz int32) float32 {
		return hash3D(x0+dx, y0+dy, z0+dz, seed)
	}
	x00 := lerp(corner(0, 0, 0), corner(1, 0, 0), sx)
	x10 := lerp(corner(0, 1, 0), corner(1, 1, 0), sx)
	x01 := lerp(corner(0, 0, 1), corner(1, 0, 1), sx)
	x11 := lerp(corner(0, 1, 1), corner(1, 1, 1), sx)
	return lerp(lerp(x00, x10, sy), lerp(x01, x11, sy), sz)
}

// hash3D maps integer lattice coordinates to a deterministic pseudo-random float in [0,1].
func hash3D(x, y, z, seed int32) float32 {
	n := x*374761393 + y*668265263 + z*1440670441 + seed*362437
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	const invMaxInt = 1.0 / 2147483647.0
	return float32(n&0x7fffffff) * float32(invMaxInt)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// smoothStep is Perlin-style cubic easing: 3t^2 - 2t^3.
func smoothStep(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
