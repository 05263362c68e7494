package debug

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestStatsLines(t *testing.T) {
	s := Stats{
		Mode:       "gameplay",
		CraftSpeed: 3.456,
		CraftYaw:   -12.34,
		Camera:     rl.NewVector3(1, 2, 3),
		Planets:    7,
		Seed:       42,
	}
	assert.Equal(t, []string{
		"Mode: gameplay",
		"Speed: 3.46",
		"Heading: -12.3°",
		"Camera: (1.0, 2.0, 3.0)",
		"Planets: 7",
		"Seed: 42",
	}, s.Lines())

	s.LastLog = "[t] INFO hi"
	assert.Equal(t, "[t] INFO hi", s.Lines()[6])
}

func TestNewHidesOverlays(t *testing.T) {
	d := New()
	assert.False(t, d.ShowFPS)
	assert.False(t, d.ShowMemAlloc)
	assert.False(t, d.ShowStats)
	d.SetShowStats(true)
	d.SetStats(Stats{Planets: 2})
	assert.True(t, d.ShowStats)
	assert.Equal(t, 2, d.stats.Planets)
}
