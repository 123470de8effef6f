package tuio

import (
	"fmt"

	"github.com/hypebeast/go-osc/osc"
)

// args reads typed OSC arguments sequentially, remembering the first failure.
type args struct {
	msg *osc.Message
	pos int
	err error
}

func newArgs(msg *osc.Message, start int) *args {
	return &args{msg: msg, pos: start}
}

func (a *args) next() (interface{}, bool) {
	if a.err != nil {
		return nil, false
	}
	if a.pos >= len(a.msg.Arguments) {
		a.err = fmt.Errorf("%s: missing argument %d", a.msg.Address, a.pos)
		return nil, false
	}
	v := a.msg.Arguments[a.pos]
	a.pos++
	return v, true
}

// integer accepts OSC int32/int64 and integral floats.
func (a *args) integer() int64 {
	v, ok := a.next()
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case float32:
		return int64(n)
	case float64:
		return int64(n)
	default:
		a.err = fmt.Errorf("%s: argument %d is %T, want integer", a.msg.Address, a.pos-1, v)
		return 0
	}
}

// number accepts OSC float32/float64 and integers.
func (a *args) number() float32 {
	v, ok := a.next()
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float32:
		return n
	case float64:
		return float32(n)
	case int32:
		return float32(n)
	case int64:
		return float32(n)
	default:
		a.err = fmt.Errorf("%s: argument %d is %T, want float", a.msg.Address, a.pos-1, v)
		return 0
	}
}

// rest reads every remaining argument as an integer.
func (a *args) rest() []int64 {
	out := make([]int64, 0, len(a.msg.Arguments)-a.pos)
	for a.err == nil && a.pos < len(a.msg.Arguments) {
		out = append(out, a.integer())
	}
	return out
}

func command(msg *osc.Message) (string, bool) {
	if len(msg.Arguments) == 0 {
		return "", false
	}
	cmd, ok := msg.Arguments[0].(string)
	return cmd, ok
}

func decodeCursor(msg *osc.Message) (Cursor, error) {
	a := newArgs(msg, 1)
	c := Cursor{
		SessionID:   a.integer(),
		X:           a.number(),
		Y:           a.number(),
		XSpeed:      a.number(),
		YSpeed:      a.number(),
		MotionAccel: a.number(),
	}
	return c, a.err
}

func decodeObject(msg *osc.Message) (Object, error) {
	a := newArgs(msg, 1)
	o := Object{
		SessionID:     a.integer(),
		SymbolID:      int(a.integer()),
		X:             a.number(),
		Y:             a.number(),
		Angle:         a.number(),
		XSpeed:        a.number(),
		YSpeed:        a.number(),
		RotationSpeed: a.number(),
		MotionAccel:   a.number(),
		RotationAccel: a.number(),
	}
	return o, a.err
}

func decodeBlob(msg *osc.Message) (Blob, error) {
	a := newArgs(msg, 1)
	b := Blob{
		SessionID:     a.integer(),
		X:             a.number(),
		Y:             a.number(),
		Angle:         a.number(),
		Width:         a.number(),
		Height:        a.number(),
		Area:          a.number(),
		XSpeed:        a.number(),
		YSpeed:        a.number(),
		RotationSpeed: a.number(),
		MotionAccel:   a.number(),
		RotationAccel: a.number(),
	}
	return b, a.err
}
