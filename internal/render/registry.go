// Package render draws the scene's meshes with a lit shader. It implements orbit.Renderer.
package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"orbit-demo/internal/body"
	"orbit-demo/internal/camera"
)

type meshKind int

const (
	meshSphere meshKind = iota
	meshSun
	meshHalo
	meshFlame
)

// cached holds mesh and materials for one mesh kind. Created lazily on first draw.
// texturedMtl is used when drawing with an albedo texture (same mesh, different material).
type cached struct {
	mesh        rl.Mesh
	mtl         rl.Material
	texturedMtl rl.Material
	// adjust is applied in model space before the caller's world matrix.
	adjust rl.Matrix
}

// Registry owns GPU meshes and materials. Meshes are created on first use so that GPU
// resources are allocated after the window/OpenGL context exists.
type Registry struct {
	cache  map[meshKind]cached
	crafts map[rl.Vector3]cached

	viewPos [3]float32
	light   Light

	HaloModelRadius float32
}

// NewRegistry returns an empty registry. haloModelRadius is the ring radius of the halo mesh
// at scale 1, which orbit.Config.HaloModelRadius must match.
func NewRegistry(haloModelRadius float32) *Registry {
	if haloModelRadius <= 0 {
		haloModelRadius = 170
	}
	return &Registry{
		cache:           make(map[meshKind]cached),
		crafts:          make(map[rl.Vector3]cached),
		light:           DefaultLight(),
		HaloModelRadius: haloModelRadius,
	}
}

// SetFrame sets camera position and light for this frame. Call once per frame before drawing.
func (r *Registry) SetFrame(cam *camera.Camera, light Light) {
	p := cam.Position()
	r.viewPos = [3]float32{p.X, p.Y, p.Z}
	r.light = light
}

const (
	sphereRings   = 24
	sphereSlices  = 24
	haloTube      = 0.1
	haloSegments  = 96
	haloSides     = 6
	haloFlatten   = 0.01
	flameRadius   = 0.3
	flameLength   = 1.5
	flameSlices   = 10
	flameSpacingX = 0.6
)

var (
	flameColor = rl.NewColor(255, 51, 51, 255)
	craftColor = rl.NewColor(180, 185, 200, 255)
)

func newLitMaterial(tint rl.Color, shader rl.Shader) rl.Material {
	mtl := rl.LoadMaterialDefault()
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	if rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	return mtl
}

func (r *Registry) ensure(kind meshKind) cached {
	if c, ok := r.cache[kind]; ok {
		return c
	}
	var c cached
	c.adjust = rl.MatrixIdentity()
	switch kind {
	case meshSphere, meshSun:
		// radius 1 so the world matrix scale is the body radius
		c.mesh = rl.GenMeshSphere(1, sphereRings, sphereSlices)
	case meshHalo:
		// the torus is built around Z; lay it in the XZ plane and flatten it into a ring
		c.mesh = rl.GenMeshTorus(haloTube, 2*r.HaloModelRadius, haloSegments, haloSides)
		c.adjust = rl.MatrixMultiply(rl.MatrixRotateX(rl.Pi/2), rl.MatrixScale(1, haloFlatten, 1))
	case meshFlame:
		// cone base at the origin pointing +Y; turn it to trail behind the craft along -Z
		c.mesh = rl.GenMeshCone(flameRadius, flameLength, flameSlices)
		c.adjust = rl.MatrixRotateX(-rl.Pi / 2)
	}
	if kind == meshSun || kind == meshHalo {
		// the sun is the light source and the halo is a glow; neither is shaded
		c.mtl = rl.LoadMaterialDefault()
	} else {
		c.mtl = newLitMaterial(rl.White, loadLitShader())
		c.texturedMtl = newLitMaterial(rl.White, loadLitTexturedShader())
	}
	r.cache[kind] = c
	return c
}

func (r *Registry) ensureCraft(half rl.Vector3) cached {
	if c, ok := r.crafts[half]; ok {
		return c
	}
	c := cached{
		mesh:   rl.GenMeshCube(2*half.X, 2*half.Y, 2*half.Z),
		mtl:    newLitMaterial(craftColor, loadLitShader()),
		adjust: rl.MatrixIdentity(),
	}
	r.crafts[half] = c
	return c
}

// DrawPlanet draws a unit sphere with world. The appearance may be a texture, a color or nil.
// Must be called between BeginMode3D and EndMode3D.
func (r *Registry) DrawPlanet(world rl.Matrix, appearance body.Appearance) {
	c := r.ensure(meshSphere)
	r.drawAppearance(c, world, appearance)
}

// DrawHalo draws the flat orbit ring with world, blended with tint.
func (r *Registry) DrawHalo(world rl.Matrix, tint rl.Color) {
	c := r.ensure(meshHalo)
	setAlbedoColor(&c.mtl, tint)
	rl.BeginBlendMode(rl.BlendAlpha)
	rl.DrawMesh(c.mesh, c.mtl, rl.MatrixMultiply(c.adjust, world))
	rl.EndBlendMode()
}

// DrawSun draws an unlit sphere with world.
func (r *Registry) DrawSun(world rl.Matrix, appearance body.Appearance) {
	c := r.ensure(meshSun)
	switch a := appearance.(type) {
	case rl.Texture2D:
		setAlbedoColor(&c.mtl, rl.White)
		rl.SetMaterialTexture(&c.mtl, rl.MapAlbedo, a)
	case rl.Color:
		setAlbedoColor(&c.mtl, a)
	default:
		setAlbedoColor(&c.mtl, rl.Yellow)
	}
	rl.DrawMesh(c.mesh, c.mtl, world)
}

// DrawCraft draws the craft box with world, and two engine flames when flames is set.
func (r *Registry) DrawCraft(world rl.Matrix, half rl.Vector3, flames bool) {
	c := r.ensureCraft(half)
	r.setLitShaderUniforms(c.mtl.Shader)
	rl.DrawMesh(c.mesh, c.mtl, world)
	if !flames {
		return
	}
	f := r.ensure(meshFlame)
	setAlbedoColor(&f.mtl, flameColor)
	r.setLitShaderUniforms(f.mtl.Shader)
	for _, x := range []float32{-flameSpacingX, flameSpacingX} {
		local := rl.MatrixMultiply(f.adjust, rl.MatrixTranslate(x, 0, -half.Z))
		rl.DrawMesh(f.mesh, f.mtl, rl.MatrixMultiply(local, world))
	}
}

func (r *Registry) drawAppearance(c cached, world rl.Matrix, appearance body.Appearance) {
	transform := rl.MatrixMultiply(c.adjust, world)
	switch a := appearance.(type) {
	case rl.Texture2D:
		if rl.IsTextureValid(a) {
			rl.SetMaterialTexture(&c.texturedMtl, rl.MapAlbedo, a)
			r.setLitShaderUniforms(c.texturedMtl.Shader)
			rl.DrawMesh(c.mesh, c.texturedMtl, transform)
			return
		}
	case rl.Color:
		setAlbedoColor(&c.mtl, a)
		r.setLitShaderUniforms(c.mtl.Shader)
		rl.DrawMesh(c.mesh, c.mtl, transform)
		return
	}
	setAlbedoColor(&c.mtl, rl.Gray)
	r.setLitShaderUniforms(c.mtl.Shader)
	rl.DrawMesh(c.mesh, c.mtl, transform)
}

func setAlbedoColor(mtl *rl.Material, col rl.Color) {
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = col
	}
}

// Unload frees every GPU resource the registry created.
func (r *Registry) Unload() {
	for k, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		rl.UnloadShader(c.mtl.Shader)
		if c.texturedMtl.Maps != nil {
			rl.UnloadShader(c.texturedMtl.Shader)
		}
		delete(r.cache, k)
	}
	for k, c := range r.crafts {
		rl.UnloadMesh(&c.mesh)
		rl.UnloadShader(c.mtl.Shader)
		delete(r.crafts, k)
	}
}
