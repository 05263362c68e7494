package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30

	statsFontSize   = 18
	statsLineHeight = statsFontSize + 4
)

// Stats is the per-frame state shown in the top-left stats block.
type Stats struct {
	Mode       string
	CraftSpeed float32
	CraftYaw   float32 // degrees
	Camera     rl.Vector3
	Planets    int
	Seed       int64
	LastLog    string
}

// Lines formats s for display, one entry per line.
func (s Stats) Lines() []string {
	lines := []string{
		"Mode: " + s.Mode,
		fmt.Sprintf("Speed: %.2f", s.CraftSpeed),
		fmt.Sprintf("Heading: %.1f°", s.CraftYaw),
		fmt.Sprintf("Camera: (%.1f, %.1f, %.1f)", s.Camera.X, s.Camera.Y, s.Camera.Z),
		fmt.Sprintf("Planets: %d", s.Planets),
		fmt.Sprintf("Seed: %d", s.Seed),
	}
	if s.LastLog != "" {
		lines = append(lines, s.LastLog)
	}
	return lines
}

// Debug holds runtime debugging features (FPS, memory, stats). All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowStats    bool
	font         rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
	stats        Stats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowMemAlloc sets whether the memory allocation counter is drawn (top-right, under FPS).
func (d *Debug) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
}

// SetShowStats sets whether the stats block is drawn (top-left).
func (d *Debug) SetShowStats(show bool) {
	d.ShowStats = show
}

// SetStats replaces the stats shown on the next Draw.
func (d *Debug) SetStats(s Stats) {
	d.stats = s
}

// SetFont sets the font used for overlays. Zero texture ID = use raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// Draw renders any enabled debug overlays. Call after the 3D scene in the draw loop.
// FPS/Mem text is only recomputed every updateInterval frames to limit allocations.
func (d *Debug) Draw() {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(fpsPadding)

	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		d.drawRight(d.lastFpsText, screenW, y)
		y += fpsLineHeight
	}

	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		d.drawRight(d.lastMemText, screenW, y)
	}

	if d.ShowStats {
		sy := int32(fpsPadding)
		for _, line := range d.stats.Lines() {
			d.drawText(line, fpsPadding, sy, statsFontSize, rl.RayWhite)
			sy += statsLineHeight
		}
	}
}

func (d *Debug) drawRight(text string, screenW, y int32) {
	if text == "" {
		return
	}
	var w int32
	if d.font.Texture.ID != 0 {
		w = int32(rl.MeasureTextEx(d.font, text, fpsFontSize, 1).X)
	} else {
		w = rl.MeasureText(text, fpsFontSize)
	}
	d.drawText(text, screenW-w-fpsPadding, y, fpsFontSize, rl.Green)
}

func (d *Debug) drawText(text string, x, y, size int32, col rl.Color) {
	if d.font.Texture.ID != 0 {
		rl.DrawTextEx(d.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, col)
		return
	}
	rl.DrawText(text, x, y, size, col)
}
