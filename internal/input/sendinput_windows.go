//go:build windows

package input

import (
	"fmt"

	"github.com/lxn/win"
)

// WinInjector injects mouse input using WinAPI SendInput.
type WinInjector struct{}

// NewInjector returns a Windows input injector after confirming a desktop is attached.
func NewInjector() (Injector, error) {
	if win.GetSystemMetrics(win.SM_CXSCREEN) <= 0 || win.GetSystemMetrics(win.SM_CYSCREEN) <= 0 {
		return nil, ErrNoDisplay
	}
	return &WinInjector{}, nil
}

// sendMouseInput dispatches a single mouse input event.
func sendMouseInput(flags uint32, dx, dy int32, data uint32) error {
	in := win.INPUT{
		Type: win.INPUT_MOUSE,
		Mi: win.MOUSEINPUT{
			Dx:        dx,
			Dy:        dy,
			MouseData: data,
			DwFlags:   flags,
		},
	}
	if win.SendInput(1, &in, int32(win.SizeofINPUT)) != 1 {
		return fmt.Errorf("SendInput rejected event (flags=%#x): error %d", flags, win.GetLastError())
	}
	return nil
}
