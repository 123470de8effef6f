//go:build !windows

package input

import "github.com/go-vgo/robotgo"

// RobotInjector injects mouse input through robotgo (X11 and macOS).
type RobotInjector struct{}

// NewInjector returns a robotgo-backed injector, failing when no display is reachable.
func NewInjector() (Injector, error) {
	w, h := robotgo.GetScreenSize()
	if w <= 0 || h <= 0 {
		return nil, ErrNoDisplay
	}
	return &RobotInjector{}, nil
}

// MoveAbs moves the cursor to an absolute screen coordinate.
func (r *RobotInjector) MoveAbs(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

// LeftDown presses the left mouse button.
func (r *RobotInjector) LeftDown() error {
	return robotgo.Toggle("left")
}

// LeftUp releases the left mouse button.
func (r *RobotInjector) LeftUp() error {
	return robotgo.Toggle("left", "up")
}

// RightDown presses the right mouse button.
func (r *RobotInjector) RightDown() error {
	return robotgo.Toggle("right")
}

// RightUp releases the right mouse button.
func (r *RobotInjector) RightUp() error {
	return robotgo.Toggle("right", "up")
}
