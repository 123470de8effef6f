package tuio

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/hypebeast/go-osc/osc"
	"github.com/rs/zerolog"
)

// ErrNotOSC is returned for packets that are neither an OSC message nor a bundle.
var ErrNotOSC = errors.New("tuio: not an OSC packet")

const (
	maxPacketSize = 65507
	// Frames older than the current one by at most this many are late and dropped.
	lateFrameWindow = 100
	frameTimeWindow = 100 * time.Millisecond
)

// Client decodes TUIO packets and notifies listeners of committed changes.
type Client struct {
	mu        sync.Mutex
	listeners []Listener

	// handleMu serializes packet processing and guards the fields below.
	handleMu  sync.Mutex
	logger    zerolog.Logger
	cursors   *profile[Cursor]
	objects   *profile[Object]
	blobs     *profile[Blob]
	frame     int64
	frameTime time.Time
	started   time.Time
	now       func() time.Time
}

// NewClient returns a client with no listeners.
func NewClient(logger zerolog.Logger) *Client {
	c := &Client{
		logger:  logger.With().Str("module", "tuio").Logger(),
		cursors: newProfile[Cursor](),
		objects: newProfile[Object](),
		blobs:   newProfile[Blob](),
		now:     time.Now,
	}
	c.cursors.carry = func(prev, next Cursor) Cursor {
		next.CursorID = prev.CursorID
		return next
	}
	c.cursors.assign = func(v Cursor, active map[int64]Cursor) Cursor {
		used := make(map[int]struct{}, len(active))
		for _, cur := range active {
			used[cur.CursorID] = struct{}{}
		}
		v.CursorID = lowestFreeID(used)
		return v
	}
	c.blobs.carry = func(prev, next Blob) Blob {
		next.BlobID = prev.BlobID
		return next
	}
	c.blobs.assign = func(v Blob, active map[int64]Blob) Blob {
		used := make(map[int]struct{}, len(active))
		for _, b := range active {
			used[b.BlobID] = struct{}{}
		}
		v.BlobID = lowestFreeID(used)
		return v
	}
	c.started = c.now()
	c.frameTime = c.started
	return c
}

// SetNowFunc overrides the clock used for frame timing.
func (c *Client) SetNowFunc(fn func() time.Time) {
	if fn == nil {
		return
	}
	c.handleMu.Lock()
	defer c.handleMu.Unlock()
	c.now = fn
	c.started = fn()
	c.frameTime = c.started
}

// AddListener registers l for subsequent callbacks.
func (c *Client) AddListener(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// RemoveListener unregisters l.
func (c *Client) RemoveListener(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.listeners {
		if existing == l {
			c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
			return
		}
	}
}

// ListenAndServe binds a UDP socket on addr and serves it until ctx is done.
func (c *Client) ListenAndServe(ctx context.Context, addr string) error {
	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return fmt.Errorf("tuio: listen %s: %w", addr, err)
	}
	return c.Serve(ctx, conn)
}

// Serve reads packets from conn until ctx is done. The connection is closed on return.
func (c *Client) Serve(ctx context.Context, conn net.PacketConn) error {
	defer conn.Close()
	c.logger.Info().Str("addr", conn.LocalAddr().String()).Msg("listening for TUIO messages")

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	buf := make([]byte, maxPacketSize)
	for {
		n, from, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("tuio: read: %w", err)
		}
		if err := c.HandlePacket(buf[:n]); err != nil {
			c.logger.Debug().Err(err).Str("from", from.String()).Msg("dropping packet")
		}
	}
}

// HandlePacket decodes one OSC message or bundle and dispatches it in order.
// Listeners must not call HandlePacket or SetNowFunc from a callback.
func (c *Client) HandlePacket(data []byte) error {
	pkt, err := osc.ParsePacket(string(data))
	if err != nil {
		return fmt.Errorf("tuio: parse packet: %w", err)
	}
	if pkt == nil {
		return ErrNotOSC
	}
	c.handleMu.Lock()
	defer c.handleMu.Unlock()
	c.handle(pkt)
	return nil
}

func (c *Client) handle(pkt osc.Packet) {
	switch p := pkt.(type) {
	case *osc.Message:
		c.handleMessage(p)
	case *osc.Bundle:
		for _, msg := range p.Messages {
			c.handleMessage(msg)
		}
		for _, b := range p.Bundles {
			c.handle(b)
		}
	}
}

func (c *Client) handleMessage(msg *osc.Message) {
	cmd, ok := command(msg)
	if !ok {
		c.logger.Debug().Str("address", msg.Address).Msg("message without command")
		return
	}
	switch msg.Address {
	case AddrCursor:
		handleProfile(c, c.cursors, msg, cmd, decodeCursor, func(v Cursor) int64 { return v.SessionID }, emitCursor)
	case AddrObject:
		handleProfile(c, c.objects, msg, cmd, decodeObject, func(v Object) int64 { return v.SessionID }, emitObject)
	case AddrBlob:
		handleProfile(c, c.blobs, msg, cmd, decodeBlob, func(v Blob) int64 { return v.SessionID }, emitBlob)
	default:
		c.logger.Trace().Str("address", msg.Address).Msg("ignoring unsupported profile")
	}
}

func handleProfile[T comparable](c *Client, p *profile[T], msg *osc.Message, cmd string,
	decode func(*osc.Message) (T, error), sessionOf func(T) int64, emit func(Listener, change[T])) {
	switch cmd {
	case "set":
		v, err := decode(msg)
		if err != nil {
			c.logger.Debug().Err(err).Msg("malformed set message")
			return
		}
		p.set(sessionOf(v), v)
	case "alive":
		a := newArgs(msg, 1)
		ids := a.rest()
		if a.err != nil {
			c.logger.Debug().Err(a.err).Msg("malformed alive message")
			return
		}
		p.alive(ids)
	case "fseq":
		a := newArgs(msg, 1)
		fseq := a.integer()
		if a.err != nil {
			c.logger.Debug().Err(a.err).Msg("malformed fseq message")
			return
		}
		frame, ok := c.acceptFrame(fseq)
		if !ok {
			c.logger.Trace().Int64("fseq", fseq).Int64("current", c.frame).Msg("dropping late frame")
			p.discard()
			return
		}
		changes := p.commit()
		for _, l := range c.snapshotListeners() {
			for _, ch := range changes {
				emit(l, ch)
			}
			l.Refresh(frame)
		}
	}
}

// acceptFrame advances the frame counter and reports whether fseq is on time.
func (c *Client) acceptFrame(fseq int64) (Frame, bool) {
	now := c.now()
	if fseq > 0 {
		if fseq > c.frame {
			c.frameTime = now
		}
		if fseq >= c.frame || c.frame-fseq > lateFrameWindow {
			c.frame = fseq
		} else {
			return Frame{}, false
		}
	} else if now.Sub(c.frameTime) > frameTimeWindow {
		c.frameTime = now
	}
	return Frame{ID: fseq, Time: c.frameTime.Sub(c.started)}, true
}

func (c *Client) snapshotListeners() []Listener {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Listener, len(c.listeners))
	copy(out, c.listeners)
	return out
}

func emitCursor(l Listener, ch change[Cursor]) {
	switch ch.kind {
	case changeAdd:
		l.AddCursor(ch.value)
	case changeUpdate:
		l.UpdateCursor(ch.value)
	case changeRemove:
		l.RemoveCursor(ch.value)
	}
}

func emitObject(l Listener, ch change[Object]) {
	switch ch.kind {
	case changeAdd:
		l.AddObject(ch.value)
	case changeUpdate:
		l.UpdateObject(ch.value)
	case changeRemove:
		l.RemoveObject(ch.value)
	}
}

func emitBlob(l Listener, ch change[Blob]) {
	switch ch.kind {
	case changeAdd:
		l.AddBlob(ch.value)
	case changeUpdate:
		l.UpdateBlob(ch.value)
	case changeRemove:
		l.RemoveBlob(ch.value)
	}
}
