// Package input turns raw keyboard and mouse state into per-frame commands.
package input

import rl "github.com/gen2brain/raylib-go/raylib"

// Commands is one frame of player intent. The scene reads these and never polls devices itself.
type Commands struct {
	Forward, Back     bool // W / S: camera forward/back or thrust/brake
	Left, Right       bool // A / D: camera strafe or steering
	RotLeft, RotRight bool // left / right arrows: camera yaw
	MoveUp, MoveDown  bool // Q / E or up / down arrows
	SecondaryHeld     bool // right mouse button, enables mouse look
	ToggleMode        bool // Tab, pressed this frame
	ToggleGrid        bool // G, pressed this frame
	Quit              bool // Escape
	MouseDelta        rl.Vector2
}

// device is the slice of raylib input state Poll reads.
type device struct {
	keyDown    func(key int32) bool
	keyPressed func(key int32) bool
	mouseDown  func(button rl.MouseButton) bool
	mouseDelta func() rl.Vector2
}

var raylibDevice = device{
	keyDown:    rl.IsKeyDown,
	keyPressed: rl.IsKeyPressed,
	mouseDown:  rl.IsMouseButtonDown,
	mouseDelta: rl.GetMouseDelta,
}

// Poll reads the current device state. Must run on the window thread between frames.
func Poll() Commands {
	return read(raylibDevice)
}

func read(d device) Commands {
	return Commands{
		Forward:       d.keyDown(rl.KeyW),
		Back:          d.keyDown(rl.KeyS),
		Left:          d.keyDown(rl.KeyA),
		Right:         d.keyDown(rl.KeyD),
		RotLeft:       d.keyDown(rl.KeyLeft),
		RotRight:      d.keyDown(rl.KeyRight),
		MoveUp:        d.keyDown(rl.KeyQ) || d.keyDown(rl.KeyUp),
		MoveDown:      d.keyDown(rl.KeyE) || d.keyDown(rl.KeyDown),
		SecondaryHeld: d.mouseDown(rl.MouseButtonRight),
		ToggleMode:    d.keyPressed(rl.KeyTab),
		ToggleGrid:    d.keyPressed(rl.KeyG),
		Quit:          d.keyPressed(rl.KeyEscape),
		MouseDelta:    d.mouseDelta(),
	}
}
