package app

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hypebeast/go-osc/osc"
	"github.com/rs/zerolog"

	"github.com/frudas24/tuiomouse/internal/config"
	"github.com/frudas24/tuiomouse/internal/screen"
	"github.com/frudas24/tuiomouse/internal/testutil"
	"github.com/frudas24/tuiomouse/internal/tuio"
)

func newTestApp(t *testing.T, statusAddr string) (*App, *testutil.FakeInjector) {
	t.Helper()
	cfg := config.Default()
	cfg.Host = "127.0.0.1"
	cfg.StatusAddr = statusAddr
	inj := &testutil.FakeInjector{}
	a, err := New(cfg, zerolog.Nop(), inj, screen.Fixed{W: 1000, H: 1000})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return a, inj
}

func cursorFrame(t *testing.T, fseq int32, alive []int32, sets ...*osc.Message) []byte {
	t.Helper()
	b := osc.NewBundle(time.Now())
	args := []interface{}{"alive"}
	for _, id := range alive {
		args = append(args, id)
	}
	b.Messages = append(b.Messages, &osc.Message{Address: tuio.AddrCursor, Arguments: args})
	b.Messages = append(b.Messages, sets...)
	b.Messages = append(b.Messages, &osc.Message{Address: tuio.AddrCursor, Arguments: []interface{}{"fseq", fseq}})
	data, err := b.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal bundle: %v", err)
	}
	return data
}

func cursorSet(id int32, x, y float32) *osc.Message {
	return &osc.Message{Address: tuio.AddrCursor, Arguments: []interface{}{"set", id, x, y, float32(0), float32(0), float32(0)}}
}

// TestNew_RequiresDependencies verifies nil collaborators are rejected.
func TestNew_RequiresDependencies(t *testing.T) {
	if _, err := New(config.Default(), zerolog.Nop(), nil, screen.Fixed{W: 1, H: 1}); err == nil {
		t.Fatalf("expected error for nil injector")
	}
	if _, err := New(config.Default(), zerolog.Nop(), &testutil.FakeInjector{}, nil); err == nil {
		t.Fatalf("expected error for nil resolver")
	}
}

// TestRun_ListenFailure verifies a bad TUIO address is returned from Run.
func TestRun_ListenFailure(t *testing.T) {
	a, _ := newTestApp(t, "")
	a.cfg.Port = 99999
	err := a.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "tuio: listen") {
		t.Fatalf("expected listen error, got %v", err)
	}
}

// TestServe_TUIOPacketsDrivePointer verifies UDP packets reach the injector end to end.
func TestServe_TUIOPacketsDrivePointer(t *testing.T) {
	a, inj := newTestApp(t, "")

	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- a.serve(ctx, conn) }()

	sender, err := net.Dial("udp", conn.LocalAddr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer sender.Close()

	frames := [][]byte{
		cursorFrame(t, 1, []int32{1}, cursorSet(1, 0.5, 0.5)),
		cursorFrame(t, 2, []int32{1, 2}, cursorSet(2, 0.2, 0.2)),
		cursorFrame(t, 3, []int32{2}),
	}
	for _, f := range frames {
		if _, err := sender.Write(f); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(inj.Calls()) < 4 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	calls := inj.Calls()
	want := []testutil.Call{
		{Name: "MoveAbs", X: 500, Y: 500},
		{Name: "LeftDown"},
		{Name: "LeftUp"},
		{Name: "MoveAbs", X: 200, Y: 200},
	}
	if len(calls) != len(want) {
		t.Fatalf("expected %+v, got %+v", want, calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("expected %+v, got %+v", want, calls)
		}
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("serve did not stop after cancel")
	}
}

// TestHandleState_ReportsPrimary verifies /api/state reflects the contact set.
func TestHandleState_ReportsPrimary(t *testing.T) {
	a, _ := newTestApp(t, "127.0.0.1:0")
	a.Mapper().ContactAppear(7, 0.1, 0.1)
	a.Mapper().ContactAppear(8, 0.2, 0.2)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp stateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Contacts != 2 || resp.Primary == nil || *resp.Primary != 7 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.ListenAddr != "127.0.0.1:3333" {
		t.Fatalf("expected 127.0.0.1:3333, got %q", resp.ListenAddr)
	}
}

// TestHandler_ContactsRouteWhenStatusEnabled verifies status routes are mounted.
func TestHandler_ContactsRouteWhenStatusEnabled(t *testing.T) {
	a, _ := newTestApp(t, "127.0.0.1:0")
	a.Mapper().ContactAppear(3, 0.5, 0.5)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/contacts", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "[{\"session\":3,\"x\":500,\"y\":500}]\n" {
		t.Fatalf("unexpected body %q", got)
	}
}

// TestHandler_NoContactsRouteWhenStatusDisabled verifies the stream is off by default.
func TestHandler_NoContactsRouteWhenStatusDisabled(t *testing.T) {
	a, _ := newTestApp(t, "")

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/contacts", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
