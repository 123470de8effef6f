// Package control maps touch contacts onto a single synthesized mouse pointer.
package control

import (
	"fmt"

	"github.com/frudas24/tuiomouse/internal/input"
)

// ActionType identifies the kind of pointer action to execute.
type ActionType string

const (
	// ActMove moves the mouse cursor.
	ActMove ActionType = "move"
	// ActLeftDown presses the left mouse button.
	ActLeftDown ActionType = "left_down"
	// ActLeftUp releases the left mouse button.
	ActLeftUp ActionType = "left_up"
	// ActRightDown presses the right mouse button.
	ActRightDown ActionType = "right_down"
	// ActRightUp releases the right mouse button.
	ActRightUp ActionType = "right_up"
)

// Action describes a pointer operation in screen pixels.
type Action struct {
	Type ActionType `json:"t"`
	X    int        `json:"x"`
	Y    int        `json:"y"`
}

// Apply executes a single action using the injector.
func Apply(inj input.Injector, action Action) error {
	switch action.Type {
	case ActMove:
		return inj.MoveAbs(action.X, action.Y)
	case ActLeftDown:
		return inj.LeftDown()
	case ActLeftUp:
		return inj.LeftUp()
	case ActRightDown:
		return inj.RightDown()
	case ActRightUp:
		return inj.RightUp()
	default:
		return fmt.Errorf("unknown action %q", action.Type)
	}
}
