package control

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/frudas24/tuiomouse/internal/input"
	"github.com/frudas24/tuiomouse/internal/screen"
)

// Contact is one active touch point and its last pixel position.
type Contact struct {
	SessionID int64 `json:"session"`
	X         int   `json:"x"`
	Y         int   `json:"y"`
}

// Mapper turns touch contact lifecycle events into single-pointer mouse actions.
//
// Contacts are kept in arrival order. The first one is primary: it alone moves
// the pointer and holds the left button. A second contact presses the left
// button and every further contact taps the right button.
type Mapper struct {
	mu       sync.Mutex
	screen   screen.Resolver
	injector input.Injector
	logger   zerolog.Logger
	observer func(Action)
	contacts []Contact
}

// NewMapper returns a mapper with an empty contact set.
func NewMapper(res screen.Resolver, injector input.Injector, logger zerolog.Logger) *Mapper {
	return &Mapper{
		screen:   res,
		injector: injector,
		logger:   logger.With().Str("module", "control").Logger(),
	}
}

// SetObserver registers fn to be called after every emitted action.
// fn runs with the mapper locked and must not block.
func (m *Mapper) SetObserver(fn func(Action)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observer = fn
}

// Contacts returns a copy of the active contacts in arrival order.
func (m *Mapper) Contacts() []Contact {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Contact, len(m.contacts))
	copy(out, m.contacts)
	return out
}

// ContactAppear records a new contact and emits the action for the new set size.
func (m *Mapper) ContactAppear(sessionID int64, xn, yn float64) {
	x, y := m.resolve(xn, yn)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexOf(sessionID) < 0 {
		m.contacts = append(m.contacts, Contact{SessionID: sessionID, X: x, Y: y})
	}

	switch len(m.contacts) {
	case 1:
		m.emit(Action{Type: ActMove, X: x, Y: y})
	case 2:
		m.emit(Action{Type: ActLeftDown})
	default:
		m.emit(Action{Type: ActRightDown})
		m.emit(Action{Type: ActRightUp})
	}
}

// ContactUpdate stores the new position and moves the pointer if the contact is primary.
func (m *Mapper) ContactUpdate(sessionID int64, xn, yn float64) {
	x, y := m.resolve(xn, yn)

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.contacts) > 0 && m.contacts[0].SessionID == sessionID {
		m.emit(Action{Type: ActMove, X: x, Y: y})
	}
	if i := m.indexOf(sessionID); i >= 0 {
		m.contacts[i].X = x
		m.contacts[i].Y = y
	}
}

// ContactRemove releases the left button when required, drops the contact and
// returns the pointer to the remaining primary's stored position.
func (m *Mapper) ContactRemove(sessionID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Exactly two contacts releases regardless of which one leaves.
	if len(m.contacts) > 0 && m.contacts[0].SessionID == sessionID {
		m.emit(Action{Type: ActLeftUp})
	} else if len(m.contacts) == 2 {
		m.emit(Action{Type: ActLeftUp})
	}

	if i := m.indexOf(sessionID); i >= 0 {
		m.contacts = append(m.contacts[:i], m.contacts[i+1:]...)
	}

	if len(m.contacts) > 0 {
		primary := m.contacts[0]
		m.emit(Action{Type: ActMove, X: primary.X, Y: primary.Y})
	}
}

// resolve scales normalized coordinates using the current screen size.
func (m *Mapper) resolve(xn, yn float64) (int, int) {
	w, h := m.screen.Size()
	return NormToPixels(xn, yn, w, h)
}

// indexOf returns the position of sessionID or -1. Callers hold m.mu.
func (m *Mapper) indexOf(sessionID int64) int {
	for i, c := range m.contacts {
		if c.SessionID == sessionID {
			return i
		}
	}
	return -1
}

// emit injects an action and notifies the observer. Callers hold m.mu.
func (m *Mapper) emit(action Action) {
	m.logger.Debug().Str("action", string(action.Type)).Int("x", action.X).Int("y", action.Y).Msg("pointer action")
	if err := Apply(m.injector, action); err != nil {
		m.logger.Warn().Err(err).Str("action", string(action.Type)).Msg("inject failed")
	}
	if m.observer != nil {
		m.observer(action)
	}
}
