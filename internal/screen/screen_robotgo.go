//go:build !windows

package screen

import "github.com/go-vgo/robotgo"

// systemSize returns the main display size via robotgo.
func systemSize() (int, int) {
	return robotgo.GetScreenSize()
}

// ListMonitors returns the displays robotgo can see; display 0 is the main one.
func ListMonitors() ([]Monitor, error) {
	n := robotgo.DisplaysNum()
	if n <= 0 {
		return nil, ErrNoScreen
	}
	list := make([]Monitor, 0, n)
	for i := 0; i < n; i++ {
		x, y, w, h := robotgo.GetDisplayBounds(i)
		list = append(list, Monitor{Index: i + 1, X: x, Y: y, W: w, H: h, Primary: i == 0})
	}
	return list, nil
}
