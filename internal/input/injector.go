// Package input injects synthesized pointer actions into the host OS.
package input

import "errors"

// ErrNoDisplay indicates no display is reachable for input injection.
var ErrNoDisplay = errors.New("input: no display available for injection")

// Injector defines the pointer operations used by the cursor mapper.
type Injector interface {
	MoveAbs(x, y int) error
	LeftDown() error
	LeftUp() error
	RightDown() error
	RightUp() error
}
