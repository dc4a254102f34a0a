package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	session "github.com/Pranav-shellkode/voice-agent-learning/core"
	"github.com/gorilla/websocket"
)

var testUpgrader = websocket.Upgrader{}

type channelProbe struct {
	mu     sync.Mutex
	frames [][]byte
	errs   []error
	closed bool
}

func (p *channelProbe) callbacks() session.ChannelCallbacks {
	return session.ChannelCallbacks{
		OnFrame: func(data []byte) {
			p.mu.Lock()
			payload := make([]byte, len(data))
			copy(payload, data)
			p.frames = append(p.frames, payload)
			p.mu.Unlock()
		},
		OnError: func(err error) {
			p.mu.Lock()
			p.errs = append(p.errs, err)
			p.mu.Unlock()
		},
		OnClosed: func() {
			p.mu.Lock()
			p.closed = true
			p.mu.Unlock()
		},
	}
}

func (p *channelProbe) awaitFrames(t *testing.T, count int) [][]byte {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		p.mu.Lock()
		if len(p.frames) >= count {
			frames := make([][]byte, len(p.frames))
			copy(frames, p.frames)
			p.mu.Unlock()
			return frames
		}
		p.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d frames within deadline", count)
	return nil
}

func (p *channelProbe) awaitClosed(t *testing.T) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		p.mu.Lock()
		closed := p.closed
		p.mu.Unlock()
		if closed {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected the channel to report closure within deadline")
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestNewSocketRejectsNonWebsocketScheme(t *testing.T) {
	if _, err := NewSocket("http://localhost:8000/ws"); err == nil {
		t.Fatalf("expected an http URL to be rejected")
	}
}

func TestSocketSendsAndReceivesFrames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// Echo every inbound frame back with a prefix.
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, append([]byte("echo:"), msg...)); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	socket, err := NewSocket(wsURL(server))
	if err != nil {
		t.Fatalf("expected socket to build, got error: %v", err)
	}
	probe := &channelProbe{}
	if err := socket.Open(context.Background(), probe.callbacks()); err != nil {
		t.Fatalf("expected socket to open, got error: %v", err)
	}
	defer socket.Close()

	if err := socket.Send([]byte(`{"type":"ping"}`)); err != nil {
		t.Fatalf("expected send to succeed, got error: %v", err)
	}

	frames := probe.awaitFrames(t, 1)
	if got := string(frames[0]); got != `echo:{"type":"ping"}` {
		t.Fatalf("expected echoed frame, got %q", got)
	}
}

func TestSocketRemoteNormalClosureReportsClosedWithoutError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		_ = conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
		conn.Close()
	}))
	defer server.Close()

	socket, err := NewSocket(wsURL(server))
	if err != nil {
		t.Fatalf("expected socket to build, got error: %v", err)
	}
	probe := &channelProbe{}
	if err := socket.Open(context.Background(), probe.callbacks()); err != nil {
		t.Fatalf("expected socket to open, got error: %v", err)
	}

	probe.awaitClosed(t)
	probe.mu.Lock()
	defer probe.mu.Unlock()
	if len(probe.errs) != 0 {
		t.Fatalf("expected no transport errors on normal closure, got %v", probe.errs)
	}
}

func TestSocketLocalCloseStopsSends(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	socket, err := NewSocket(wsURL(server))
	if err != nil {
		t.Fatalf("expected socket to build, got error: %v", err)
	}
	probe := &channelProbe{}
	if err := socket.Open(context.Background(), probe.callbacks()); err != nil {
		t.Fatalf("expected socket to open, got error: %v", err)
	}

	if err := socket.Close(); err != nil {
		t.Fatalf("expected close to succeed, got error: %v", err)
	}
	if err := socket.Send([]byte("late")); err == nil {
		t.Fatalf("expected send after close to fail")
	}
	probe.awaitClosed(t)
}

func TestSocketOpenFailsWhenServerUnreachable(t *testing.T) {
	socket, err := NewSocket("ws://127.0.0.1:1/ws")
	if err != nil {
		t.Fatalf("expected socket to build, got error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := socket.Open(ctx, session.ChannelCallbacks{}); err == nil {
		t.Fatalf("expected open to fail against an unreachable server")
	}
}
