// Package transport carries session frames over a websocket
// connection.
package transport

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	session "github.com/Pranav-shellkode/voice-agent-learning/core"
	"github.com/gorilla/websocket"
)

// Socket is a websocket-backed [session.Channel]. A Socket is good for
// one connection; after Close it cannot be reopened.
type Socket struct {
	url string

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
}

// NewSocket builds a channel that will dial the given websocket URL on
// Open. The scheme must be ws or wss.
func NewSocket(rawURL string) (*Socket, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse websocket url: %w", err)
	}
	if parsed.Scheme != "ws" && parsed.Scheme != "wss" {
		return nil, fmt.Errorf("unsupported websocket scheme %q", parsed.Scheme)
	}

	return &Socket{url: parsed.String()}, nil
}

// Open dials the remote endpoint and starts delivering inbound frames
// through the callbacks. Frames are delivered one at a time, in arrival
// order, from a single reader goroutine.
func (s *Socket) Open(ctx context.Context, callbacks session.ChannelCallbacks) error {
	ctx, span := tracer.Start(ctx, "open websocket")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("socket already closed")
	}
	if s.conn != nil {
		return fmt.Errorf("socket already open")
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to open socket connection to %s: %w", s.url, err)
	}
	s.conn = conn

	go s.readAndProcessMessages(conn, callbacks)

	return nil
}

// Send writes one outbound payload as a text message. Writes are
// serialized; gorilla supports only one concurrent writer.
func (s *Socket) Send(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil || s.closed {
		return fmt.Errorf("websocket connection closed")
	}

	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("failed to write to websocket: %w", err)
	}
	return nil
}

// Close sends a close frame and tears the connection down. The reader
// goroutine reports the closure through OnClosed once the connection is
// actually gone.
func (s *Socket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.conn == nil {
		return nil
	}

	if err := s.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	); err != nil {
		logger.Debug("failed to send websocket close frame", "error", err)
	}

	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("failed to close websocket: %w", err)
	}
	return nil
}

func (s *Socket) readAndProcessMessages(conn *websocket.Conn, callbacks session.ChannelCallbacks) {
	defer func() {
		s.mu.Lock()
		s.closed = true
		s.conn = nil
		s.mu.Unlock()

		_ = conn.Close()
		if callbacks.OnClosed != nil {
			callbacks.OnClosed()
		}
	}()

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			s.mu.Lock()
			locallyClosed := s.closed
			s.mu.Unlock()

			if locallyClosed ||
				websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return
			}
			logger.Warn("websocket read error", "error", err)
			if callbacks.OnError != nil {
				callbacks.OnError(err)
			}
			return
		}

		switch msgType {
		case websocket.TextMessage, websocket.BinaryMessage:
			if callbacks.OnFrame != nil {
				callbacks.OnFrame(msg)
			}
		default:
		}
	}
}
