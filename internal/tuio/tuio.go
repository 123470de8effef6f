// Package tuio receives TUIO 1.1 touch streams (OSC over UDP) and reports
// cursor, object and blob lifecycle events to registered listeners.
package tuio

import "time"

// OSC addresses of the supported 2D profiles.
const (
	AddrCursor = "/tuio/2Dcur"
	AddrObject = "/tuio/2Dobj"
	AddrBlob   = "/tuio/2Dblb"
)

// DefaultPort is the standard TUIO UDP port.
const DefaultPort = 3333

// Cursor is a single touch contact from the 2Dcur profile.
// Coordinates are normalized to [0..1].
type Cursor struct {
	SessionID   int64
	CursorID    int
	X           float32
	Y           float32
	XSpeed      float32
	YSpeed      float32
	MotionAccel float32
}

// Object is a tagged tangible from the 2Dobj profile.
type Object struct {
	SessionID     int64
	SymbolID      int
	X             float32
	Y             float32
	Angle         float32
	XSpeed        float32
	YSpeed        float32
	RotationSpeed float32
	MotionAccel   float32
	RotationAccel float32
}

// Blob is an untagged region from the 2Dblb profile.
type Blob struct {
	SessionID     int64
	BlobID        int
	X             float32
	Y             float32
	Angle         float32
	Width         float32
	Height        float32
	Area          float32
	XSpeed        float32
	YSpeed        float32
	RotationSpeed float32
	MotionAccel   float32
	RotationAccel float32
}

// Frame identifies a committed frame.
type Frame struct {
	ID   int64
	Time time.Duration
}

// Listener receives committed TUIO changes. Callbacks for one client are
// delivered sequentially on the goroutine reading the socket, while the client
// holds its packet lock. A callback may add or remove listeners but must not
// call HandlePacket or SetNowFunc.
type Listener interface {
	AddCursor(c Cursor)
	UpdateCursor(c Cursor)
	RemoveCursor(c Cursor)
	AddObject(o Object)
	UpdateObject(o Object)
	RemoveObject(o Object)
	AddBlob(b Blob)
	UpdateBlob(b Blob)
	RemoveBlob(b Blob)
	Refresh(f Frame)
}
