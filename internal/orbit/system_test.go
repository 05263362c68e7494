package orbit

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbit-demo/internal/body"
	"orbit-demo/internal/physics"
)

var pool = []body.Appearance{"rock", "ice", "gas"}

func newSystem(t *testing.T, cfg Config) (*System, *physics.World) {
	t.Helper()
	w := physics.NewWorld()
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	s, err := New(w, pool, rl.Vector3Zero(), cfg)
	require.NoError(t, err)
	return s, w
}

func observerAt(d float32) rl.Vector3 {
	return rl.NewVector3(d, 0, 0)
}

func TestNewErrors(t *testing.T) {
	_, err := New(nil, pool, rl.Vector3Zero(), Config{})
	assert.ErrorIs(t, err, physics.ErrInvalidState)

	_, err = New(physics.NewWorld(), nil, rl.Vector3Zero(), Config{})
	assert.ErrorIs(t, err, ErrEmptyPool)

	_, err = New(physics.NewWorld(), pool, rl.Vector3Zero(), Config{Spacing: -5})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(physics.NewWorld(), pool, rl.Vector3Zero(), Config{SizeMin: 2, SizeMax: 1})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDefaultsApplied(t *testing.T) {
	s, _ := newSystem(t, Config{})
	cfg := s.Config()
	assert.Equal(t, float32(120), cfg.BaseRadius)
	assert.Equal(t, float32(50), cfg.Spacing)
	assert.Equal(t, float32(150), cfg.GenerationRadius)
	assert.Equal(t, rl.NewColor(255, 255, 255, 38), cfg.HaloColor)
	assert.Equal(t, 3, s.Range())
}

func TestSlotIndex(t *testing.T) {
	s, _ := newSystem(t, Config{})
	cases := []struct {
		distance float32
		want     int
	}{
		{120, 0},
		{169.9, 0},
		{170, 1},
		{270, 3},
		{119, -1},
		{0, -3},
		{20, -2},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, s.SlotIndex(c.distance), "distance %v", c.distance)
	}
}

func TestWindowScenario(t *testing.T) {
	s, w := newSystem(t, Config{})

	require.NoError(t, s.Update(0.016, observerAt(120)))
	assert.Equal(t, []int{0, 1, 2, 3}, s.Slots())
	assert.Equal(t, 4, w.Len())

	before := map[int]Entry{}
	for _, i := range s.Slots() {
		e, _ := s.Entry(i)
		before[i] = e
	}

	require.NoError(t, s.Update(0.016, observerAt(270)))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, s.Slots())
	assert.Equal(t, 7, w.Len())

	for i, old := range before {
		e, ok := s.Entry(i)
		require.True(t, ok)
		assert.Same(t, old.Body, e.Body)
		assert.Equal(t, old.OrbitRadius, e.OrbitRadius)
		assert.Equal(t, old.OrbitSpeed, e.OrbitSpeed)
		assert.Equal(t, old.SpinSpeed, e.SpinSpeed)
		assert.Equal(t, old.Body.Appearance(), e.Body.Appearance())
	}
}

func TestObserverInsideBaseGeneratesNothingNegative(t *testing.T) {
	s, _ := newSystem(t, Config{})
	require.NoError(t, s.Update(0.016, observerAt(0)))
	// center slot -3, window [-6, 0]
	assert.Equal(t, []int{0}, s.Slots())

	created, err := s.EnsureSlot(-1)
	require.NoError(t, err)
	assert.False(t, created)
	_, ok := s.Entry(-1)
	assert.False(t, ok)
}

func TestEnsureSlotAtMostOnce(t *testing.T) {
	s, w := newSystem(t, Config{})
	created, err := s.EnsureSlot(5)
	require.NoError(t, err)
	assert.True(t, created)
	first, _ := s.Entry(5)

	created, err = s.EnsureSlot(5)
	require.NoError(t, err)
	assert.False(t, created)
	second, _ := s.Entry(5)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, w.Len())
	assert.Equal(t, float32(120+5*50), first.OrbitRadius)
}

func TestGeneratedParametersInRange(t *testing.T) {
	s, _ := newSystem(t, Config{})
	for i := 0; i < 20; i++ {
		_, err := s.EnsureSlot(i)
		require.NoError(t, err)
		e, _ := s.Entry(i)
		assert.GreaterOrEqual(t, e.OrbitSpeed, float32(0.01))
		assert.Less(t, e.OrbitSpeed, float32(0.04))
		assert.GreaterOrEqual(t, e.SpinSpeed, float32(0.5))
		assert.Less(t, e.SpinSpeed, float32(2.0))
		assert.GreaterOrEqual(t, e.Body.Radius(), float32(0.3))
		assert.LessOrEqual(t, e.Body.Radius(), float32(0.8))
		assert.Contains(t, pool, e.Body.Appearance())
		assert.True(t, e.Body.RigidBody().InWorld())
	}
}

func TestSpinAngleStaysWrapped(t *testing.T) {
	s, _ := newSystem(t, Config{SpinMultiplier: 50})
	steps := []float32{0, 0.016, 0.5, 1, 3.7, 10, 0.001}
	for n := 0; n < 50; n++ {
		require.NoError(t, s.Update(steps[n%len(steps)], observerAt(200)))
		for _, i := range s.Slots() {
			e, _ := s.Entry(i)
			assert.GreaterOrEqual(t, e.SpinAngle, float32(0))
			assert.Less(t, e.SpinAngle, float32(twoPi))
		}
	}
}

func TestWrapAngle(t *testing.T) {
	assert.Equal(t, float32(0), wrapAngle(0))
	assert.InDelta(t, 1.0, wrapAngle(1+2*twoPi), 1e-4)
	assert.InDelta(t, twoPi-1, wrapAngle(-1), 1e-4)
	assert.Equal(t, float32(0), wrapAngle(twoPi))
}

func TestBodiesStayOnTheirCircle(t *testing.T) {
	w := physics.NewWorld()
	center := rl.NewVector3(5, -3, 7)
	s, err := New(w, pool, center, Config{Seed: 7, OrbitMultiplier: 40})
	require.NoError(t, err)

	for n := 0; n < 100; n++ {
		require.NoError(t, s.Update(0.1, rl.NewVector3(5, -3, 7+250)))
		for _, i := range s.Slots() {
			e, _ := s.Entry(i)
			origin := e.Body.RigidBody().WorldTransform().Origin
			assert.Equal(t, center.Y, origin.Y)
			dx, dz := origin.X-center.X, origin.Z-center.Z
			assert.InDelta(t, e.OrbitRadius, math32.Sqrt(dx*dx+dz*dz), 1e-2)
			assert.Equal(t, origin, e.Body.RigidBody().MotionState().Origin)
			assert.Equal(t, rl.QuaternionIdentity(), e.Body.RigidBody().WorldTransform().Rotation)
		}
	}
}

func TestOrbitAngleAdvances(t *testing.T) {
	s, _ := newSystem(t, Config{OrbitMultiplier: 2})
	_, err := s.EnsureSlot(0)
	require.NoError(t, err)
	before, _ := s.Entry(0)

	require.NoError(t, s.Update(0.5, observerAt(0)))
	after, _ := s.Entry(0)
	assert.InDelta(t, before.OrbitAngle+before.OrbitSpeed*2*0.5, after.OrbitAngle, 1e-5)
}

func TestSeedReproducible(t *testing.T) {
	a, _ := newSystem(t, Config{Seed: 99})
	b, _ := newSystem(t, Config{Seed: 99})
	c, _ := newSystem(t, Config{Seed: 100})
	for _, s := range []*System{a, b, c} {
		require.NoError(t, s.Update(0, observerAt(300)))
	}
	require.Equal(t, a.Slots(), b.Slots())
	differs := false
	for _, i := range a.Slots() {
		ea, _ := a.Entry(i)
		eb, _ := b.Entry(i)
		ec, _ := c.Entry(i)
		assert.Equal(t, ea.OrbitAngle, eb.OrbitAngle)
		assert.Equal(t, ea.OrbitSpeed, eb.OrbitSpeed)
		assert.Equal(t, ea.Body.Radius(), eb.Body.Radius())
		assert.Equal(t, ea.Body.Appearance(), eb.Body.Appearance())
		if ea.OrbitAngle != ec.OrbitAngle {
			differs = true
		}
	}
	assert.True(t, differs)
}

func TestTimeSeedWhenZero(t *testing.T) {
	s, err := New(physics.NewWorld(), pool, rl.Vector3Zero(), Config{})
	require.NoError(t, err)
	assert.NotZero(t, s.Seed())
}

func TestEviction(t *testing.T) {
	s, w := newSystem(t, Config{EvictFactor: 2})
	require.NoError(t, s.Update(0, observerAt(120)))
	require.Equal(t, []int{0, 1, 2, 3}, s.Slots())
	slot0, _ := s.Entry(0)

	// far away: every orbit within 300 of distance 1120 survives, the rest go
	require.NoError(t, s.Update(0, observerAt(1120)))
	for _, i := range s.Slots() {
		e, _ := s.Entry(i)
		assert.LessOrEqual(t, math32.Abs(e.OrbitRadius-1120), float32(300))
	}
	_, ok := s.Entry(0)
	assert.False(t, ok)
	assert.True(t, slot0.Body.Released())
	assert.Equal(t, s.Len(), w.Len())
}

func TestEvictionKeepsWindow(t *testing.T) {
	s, _ := newSystem(t, Config{EvictFactor: 1})
	// distance 345: center slot 4, window 1..7; slot 1 (radius 170) is 175 away
	require.NoError(t, s.Update(0, observerAt(345)))
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, s.Slots())
	first, _ := s.Entry(1)

	require.NoError(t, s.Update(0.5, observerAt(345)))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, s.Slots())
	again, ok := s.Entry(1)
	require.True(t, ok)
	assert.Same(t, first.Body, again.Body)
	assert.Equal(t, first.OrbitSpeed, again.OrbitSpeed)
	assert.Equal(t, first.SpinSpeed, again.SpinSpeed)
	assert.False(t, first.Body.Released())
}

func TestGrowthOnlyByDefault(t *testing.T) {
	s, _ := newSystem(t, Config{})
	require.NoError(t, s.Update(0, observerAt(120)))
	require.NoError(t, s.Update(0, observerAt(2000)))
	_, ok := s.Entry(0)
	assert.True(t, ok)
}

func TestClose(t *testing.T) {
	s, w := newSystem(t, Config{})
	require.NoError(t, s.Update(0, observerAt(200)))
	require.NotZero(t, w.Len())
	entry, _ := s.Entry(0)

	require.NoError(t, s.Close())
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 0, s.Len())
	assert.True(t, entry.Body.Released())
}

type recordingRenderer struct {
	planets []rl.Matrix
	looks   []body.Appearance
	halos   []rl.Matrix
	tints   []rl.Color
}

func (r *recordingRenderer) DrawPlanet(world rl.Matrix, a body.Appearance) {
	r.planets = append(r.planets, world)
	r.looks = append(r.looks, a)
}

func (r *recordingRenderer) DrawHalo(world rl.Matrix, tint rl.Color) {
	r.halos = append(r.halos, world)
	r.tints = append(r.tints, tint)
}

func TestRender(t *testing.T) {
	s, _ := newSystem(t, Config{})
	require.NoError(t, s.Update(0.3, observerAt(120)))

	var r recordingRenderer
	s.Render(&r)
	require.Len(t, r.planets, 4)
	require.Len(t, r.halos, 4)

	e, _ := s.Entry(0)
	m := r.planets[0]
	assert.InDelta(t, e.Position.X, m.M12, 1e-4)
	assert.InDelta(t, e.Position.Y, m.M13, 1e-4)
	assert.InDelta(t, e.Position.Z, m.M14, 1e-4)
	// upper 3x3 is scale*rotY, so its Y column carries the radius
	assert.InDelta(t, e.Body.Radius(), m.M5, 1e-5)
	assert.Equal(t, e.Body.Appearance(), r.looks[0])

	h := r.halos[0]
	assert.InDelta(t, 120.0/170.0, h.M0, 1e-5)
	assert.InDelta(t, 1.0, h.M5, 1e-5)
	assert.InDelta(t, 0.1, h.M13, 1e-6)
	assert.Equal(t, s.Config().HaloColor, r.tints[0])
}

func TestRenderWithoutHalos(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DrawHalos = false
	s, _ := newSystem(t, cfg)
	require.NoError(t, s.Update(0, observerAt(120)))

	var r recordingRenderer
	s.Render(&r)
	assert.Len(t, r.planets, 4)
	assert.Empty(t, r.halos)
}
