// Package testutil holds shared test doubles.
package testutil

import (
	"sync"

	"github.com/frudas24/tuiomouse/internal/input"
)

// Call records a single injected action.
type Call struct {
	Name string
	X    int
	Y    int
}

// FakeInjector implements input.Injector and records calls for tests.
type FakeInjector struct {
	mu    sync.Mutex
	calls []Call
	// Err, when set, is returned from every call after recording it.
	Err error
}

// Ensure FakeInjector implements the interface.
var _ input.Injector = (*FakeInjector)(nil)

// Calls returns a copy of the recorded calls.
func (f *FakeInjector) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Reset clears the recorded calls.
func (f *FakeInjector) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *FakeInjector) record(c Call) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	return f.Err
}

// MoveAbs records an absolute move.
func (f *FakeInjector) MoveAbs(x, y int) error {
	return f.record(Call{Name: "MoveAbs", X: x, Y: y})
}

// LeftDown records a left mouse down.
func (f *FakeInjector) LeftDown() error {
	return f.record(Call{Name: "LeftDown"})
}

// LeftUp records a left mouse up.
func (f *FakeInjector) LeftUp() error {
	return f.record(Call{Name: "LeftUp"})
}

// RightDown records a right mouse down.
func (f *FakeInjector) RightDown() error {
	return f.record(Call{Name: "RightDown"})
}

// RightUp records a right mouse up.
func (f *FakeInjector) RightUp() error {
	return f.record(Call{Name: "RightUp"})
}
