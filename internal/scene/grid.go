package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 200
	gridMinorStep  = 10
	gridMajorStep  = 50
	gridMinorAlpha = 40
	gridMajorAlpha = 100
	axisLineAlpha  = 200
)

// drawGrid draws a reference grid on the orbital plane through center, with axis lines.
func drawGrid(center rl.Vector3) {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	cx, cy, cz := center.X, center.Y, center.Z
	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i += gridMinorStep {
		c := major
		if i%gridMajorStep != 0 {
			c = minor
		}
		f := float32(i)
		start.X, start.Y, start.Z = cx+f, cy, cz-gridExtent
		end.X, end.Y, end.Z = cx+f, cy, cz+gridExtent
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = cx-gridExtent, cy, cz+f
		end.X, end.Y, end.Z = cx+gridExtent, cy, cz+f
		rl.DrawLine3D(start, end, c)
	}

	rl.DrawLine3D(rl.NewVector3(cx-gridExtent, cy, cz), rl.NewVector3(cx+gridExtent, cy, cz), axisX)
	rl.DrawLine3D(rl.NewVector3(cx, cy-gridExtent, cz), rl.NewVector3(cx, cy+gridExtent, cz), axisY)
	rl.DrawLine3D(rl.NewVector3(cx, cy, cz-gridExtent), rl.NewVector3(cx, cy, cz+gridExtent), axisZ)
}
