package graphics

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrStop may be returned by update to end the loop without an error.
var ErrStop = errors.New("stop requested")

// Options describe the window.
type Options struct {
	Width, Height int32
	Title         string
	Fullscreen    bool // fills the primary monitor, ignoring Width/Height
	TargetFPS     int32
}

// Run opens the window and runs the main loop. setup runs once after the window (and GL
// context) exists; teardown runs before it closes. Each frame calls update with the frame time,
// then clears the screen and calls draw. The loop ends when the window is closed, or when
// setup or update returns an error, which Run returns.
func Run(opts Options, setup func() error, update func(dt float32) error, draw func(), teardown func()) error {
	if opts.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode | rl.FlagMsaa4xHint)
		rl.InitWindow(int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0)), opts.Title)
	} else {
		rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
		rl.InitWindow(opts.Width, opts.Height, opts.Title)
	}
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull) // Escape is read as a Quit command instead
	if opts.TargetFPS <= 0 {
		opts.TargetFPS = 60
	}
	rl.SetTargetFPS(opts.TargetFPS)

	if setup != nil {
		if err := setup(); err != nil {
			return err
		}
	}
	if teardown != nil {
		defer teardown()
	}

	for !rl.WindowShouldClose() {
		if err := update(rl.GetFrameTime()); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
	return nil
}
