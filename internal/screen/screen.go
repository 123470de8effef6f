// Package screen reports display geometry used to scale touch coordinates.
package screen

import (
	"errors"
	"fmt"
)

// ErrNoScreen indicates the screen size could not be determined.
var ErrNoScreen = errors.New("screen: size unavailable")

// Resolver reports the current screen size in pixels.
type Resolver interface {
	Size() (width, height int)
}

// Monitor describes a display and its bounds.
type Monitor struct {
	Index   int  `json:"index"`
	X       int  `json:"x"`
	Y       int  `json:"y"`
	W       int  `json:"w"`
	H       int  `json:"h"`
	Primary bool `json:"primary"`
}

// System queries the host OS on every call.
type System struct{}

// Size returns the primary screen size.
func (System) Size() (int, int) {
	return systemSize()
}

// Fixed reports a constant size.
type Fixed struct {
	W int
	H int
}

// Size returns the configured dimensions.
func (f Fixed) Size() (int, int) {
	return f.W, f.H
}

// Check verifies the resolver reports a usable size.
func Check(r Resolver) error {
	if r == nil {
		return ErrNoScreen
	}
	w, h := r.Size()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrNoScreen, w, h)
	}
	return nil
}

// PrimaryMonitor returns the monitor flagged as primary, or the first one.
func PrimaryMonitor(list []Monitor) (Monitor, bool) {
	for _, m := range list {
		if m.Primary {
			return m, true
		}
	}
	if len(list) > 0 {
		return list[0], true
	}
	return Monitor{}, false
}
