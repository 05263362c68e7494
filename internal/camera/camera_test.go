package camera

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func assertVec(t *testing.T, want, got rl.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-5, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-5, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-5, "z")
}

func TestDefaults(t *testing.T) {
	c := New()
	assert.Equal(t, float32(0.30), c.MoveSpeed())
	assert.Equal(t, float32(3.0), c.RotationSpeed())
	assertVec(t, rl.NewVector3(0, 0, 1), c.Forward())
}

func TestForwardFromYawAndPitch(t *testing.T) {
	c := New()
	c.SetRotation(rl.NewVector3(0, math32.Pi/2, 0))
	c.Update()
	assertVec(t, rl.NewVector3(1, 0, 0), c.Forward())

	c.SetRotation(rl.NewVector3(math32.Pi/4, 0, 0))
	c.Update()
	s := math32.Sqrt(2) / 2
	assertVec(t, rl.NewVector3(0, s, s), c.Forward())
	assert.InDelta(t, 1.0, rl.Vector3Length(c.Forward()), 1e-5)
}

func TestRightIsForwardCrossUp(t *testing.T) {
	c := New()
	c.Update()
	// (0,0,1) x (0,1,0) = (-1,0,0)
	assertVec(t, rl.NewVector3(-1, 0, 0), c.Right())
	assert.InDelta(t, 0.0, rl.Vector3DotProduct(c.Right(), c.Forward()), 1e-6)
}

func TestLookAtAndView(t *testing.T) {
	c := New()
	c.SetPosition(rl.NewVector3(3, 4, 5))
	c.SetRotation(rl.NewVector3(0, math32.Pi, 0))
	c.Update()

	assertVec(t, rl.NewVector3(3, 4, 4), c.LookAt())
	assert.Equal(t, rl.MatrixLookAt(c.Position(), c.LookAt(), rl.NewVector3(0, 1, 0)), c.View())

	// the camera position maps to the view-space origin
	p := rl.Vector3Transform(c.Position(), c.View())
	assertVec(t, rl.Vector3Zero(), p)

	cam := c.Camera3D(60)
	assert.Equal(t, c.Position(), cam.Position)
	assert.Equal(t, c.LookAt(), cam.Target)
	assert.Equal(t, float32(60), cam.Fovy)
}

func TestSetSpeedsKeepsPositive(t *testing.T) {
	c := New()
	c.SetSpeeds(1.5, 0)
	assert.Equal(t, float32(1.5), c.MoveSpeed())
	assert.Equal(t, float32(3.0), c.RotationSpeed())
}
