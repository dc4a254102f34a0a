// Package session implements the client endpoint of a duplex,
// real-time assistant conversation carried over a single persistent
// connection.
//
// The session reconciles three independently arriving streams
// (transcription, token-by-token text generation, and chunked speech
// synthesis) into one coherent turn, and serializes the two input
// paths (typed text and microphone capture) against the same channel.
// Rendering is left to subscribers of the typed event stream; the
// session itself holds pure state.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Pranav-shellkode/voice-agent-learning/core/audio"
	"github.com/Pranav-shellkode/voice-agent-learning/core/events"
	"github.com/Pranav-shellkode/voice-agent-learning/core/protocol"
	"go.opentelemetry.io/otel/codes"
)

type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnected    Status = "connected"
)

// Session is one logical conversation with the remote assistant.
//
// All state transitions are observable through the event stream; no
// error crosses the public boundary as a panic, only as a returned
// error that is also recorded as the session's surfaced error where it
// is user-visible.
type Session struct {
	mu sync.Mutex

	channel Channel
	status  Status
	lastErr error

	conversation *conversationLog
	queue        *playbackQueue
	recorder     *recorder

	// turn is the single open exchange; submissions are refused while
	// it is non-nil so outbound frames of two turns cannot interleave.
	turn *activeTurn

	subscribers []eventEmitter

	keepaliveInterval time.Duration

	baseContext context.Context
	closeOnce   sync.Once
}

func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		status:       StatusDisconnected,
		conversation: newConversationLog(),
		recorder:     newRecorder(nil),
		baseContext:  context.Background(),
	}
	s.queue = newPlaybackQueue(nil, s.emit)

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Session) emit(event events.Event) {
	for _, subscriber := range s.subscribers {
		subscriber(event)
	}
}

// Connect opens the duplex channel. On success the session reports
// connected and any previously surfaced error is cleared; on failure
// the error is recorded and returned.
//
// ctx outlives the call: it is the base context for playback and
// becomes the session's lifetime context.
func (s *Session) Connect(ctx context.Context) error {
	baseContext := ctx
	ctx, span := tracer.Start(ctx, "connect session")
	defer span.End()

	s.mu.Lock()
	channel := s.channel
	s.mu.Unlock()
	if channel == nil {
		return ErrNoChannel
	}

	if err := channel.Open(ctx, ChannelCallbacks{
		OnFrame:  s.handleFrame,
		OnError:  s.handleTransportError,
		OnClosed: s.handleChannelClosed,
	}); err != nil {
		transportErr := &TransportError{Op: "open", Err: err}
		span.RecordError(transportErr)
		span.SetStatus(codes.Error, transportErr.Error())
		s.recordError("transport", transportErr)
		return transportErr
	}

	s.mu.Lock()
	s.status = StatusConnected
	hadError := s.lastErr != nil
	s.lastErr = nil
	s.baseContext = baseContext
	s.mu.Unlock()
	s.queue.setBaseContext(baseContext)

	if hadError {
		s.emit(events.NewErrorCleared())
	}
	s.emit(events.NewStatusChanged(true))

	if s.keepaliveInterval > 0 {
		go s.keepalive(baseContext, channel, s.keepaliveInterval)
	}
	return nil
}

// keepalive sends a ping frame every interval so idle sessions are not
// reaped by intermediaries. Failures are logged only; the read loop is
// the authority on connection loss.
func (s *Session) keepalive(ctx context.Context, channel Channel, interval time.Duration) {
	payload, err := protocol.EncodeOutbound(protocol.Ping{})
	if err != nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.Status() != StatusConnected {
				return
			}
			if err := channel.Send(payload); err != nil {
				logger.Debug("keepalive ping failed", "error", err)
				return
			}
		}
	}
}

// Close sends a session-close frame and terminates the channel. The
// session only reports disconnected once the transport confirms the
// channel is gone, not on request.
func (s *Session) Close() error {
	var closeErr error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		channel := s.channel
		connected := s.status == StatusConnected
		s.mu.Unlock()

		if channel == nil {
			return
		}

		if connected {
			if payload, err := protocol.EncodeOutbound(protocol.CloseSession{}); err == nil {
				if err := channel.Send(payload); err != nil {
					logger.Warn("failed to send close frame", "error", err)
				}
			}
		}

		closeErr = channel.Close()
	})
	return closeErr
}

// SendText submits a typed user turn. It fails with a [*TransportError]
// while disconnected (nothing is sent) and with [ErrTurnInFlight] while
// a previous turn is still open.
func (s *Session) SendText(ctx context.Context, text string) error {
	_, span := tracer.Start(ctx, "submit text turn")
	defer span.End()

	s.mu.Lock()
	if s.status != StatusConnected {
		s.mu.Unlock()
		transportErr := &TransportError{Op: "send", Err: ErrNotConnected}
		s.recordError("transport", transportErr)
		span.RecordError(transportErr)
		return transportErr
	}
	if s.turn != nil {
		s.mu.Unlock()
		return ErrTurnInFlight
	}
	// A live recording owns the next turn; a typed submission now would
	// orphan the captured audio.
	if s.recorder.IsRecording() {
		s.mu.Unlock()
		return ErrRecordingActive
	}
	turn := newTurn(modalityText)
	turn.userText = text
	s.turn = turn
	s.mu.Unlock()

	// The history snapshot deliberately predates this submission: the
	// remote party owns the records and sends the updated set back with
	// turn completion.
	snapshot := s.conversation.Snapshot()

	message := s.conversation.AppendMessage(RoleUser, text)
	s.emit(events.NewMessageAppended(message.Role, message.Text))
	s.emit(events.NewTurnStarted(turn.id))

	if err := s.send(protocol.TextSubmission{Text: text, History: snapshot}); err != nil {
		s.abandonTurn(turn.id)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// StartRecording acquires the capture resource and begins a voice turn
// recording. Requires a connected session and no open turn.
func (s *Session) StartRecording(ctx context.Context) error {
	s.mu.Lock()
	if s.status != StatusConnected {
		s.mu.Unlock()
		transportErr := &TransportError{Op: "record", Err: ErrNotConnected}
		s.recordError("transport", transportErr)
		return transportErr
	}
	if s.turn != nil {
		s.mu.Unlock()
		return ErrTurnInFlight
	}
	s.mu.Unlock()

	if err := s.recorder.Start(ctx); err != nil {
		var captureErr *CaptureError
		if errors.As(err, &captureErr) {
			s.recordError("capture", err)
		}
		return err
	}

	s.emit(events.NewRecordingStarted())
	return nil
}

// StopRecording finalizes the capture into one payload and hands it to
// the outbound path: an audio-chunk frame immediately followed by an
// end-turn frame carrying the history snapshot, in that fixed order.
func (s *Session) StopRecording(ctx context.Context) error {
	_, span := tracer.Start(ctx, "submit voice turn")
	defer span.End()

	payload, err := s.recorder.Finalize()
	if err != nil {
		return err
	}
	defer s.recorder.Release()

	s.mu.Lock()
	if s.status != StatusConnected {
		s.mu.Unlock()
		transportErr := &TransportError{Op: "send", Err: ErrNotConnected}
		s.recordError("transport", transportErr)
		span.RecordError(transportErr)
		return transportErr
	}
	if s.turn != nil {
		s.mu.Unlock()
		return ErrTurnInFlight
	}
	turn := newTurn(modalityVoice)
	s.turn = turn
	s.mu.Unlock()

	s.emit(events.NewRecordingStopped(len(payload), s.captureDuration(payload)))
	s.emit(events.NewTurnStarted(turn.id))

	if err := s.send(protocol.AudioUpload{Audio: payload}); err != nil {
		s.abandonTurn(turn.id)
		span.RecordError(err)
		return err
	}
	if err := s.send(protocol.EndTurn{History: s.conversation.Snapshot()}); err != nil {
		s.abandonTurn(turn.id)
		span.RecordError(err)
		return err
	}
	return nil
}

// encodingInfoProvider is implemented by audio clients that know the
// encoding of the stream they produce.
type encodingInfoProvider interface {
	EncodingInfo() audio.EncodingInfo
}

// captureDuration derives the wall-clock length of a captured payload
// from the capture client's encoding, or zero when the client does not
// expose one.
func (s *Session) captureDuration(payload []byte) time.Duration {
	provider, ok := s.recorder.capture.(encodingInfoProvider)
	if !ok {
		return 0
	}
	return provider.EncodingInfo().Duration(payload)
}

// IsRecording reports whether a recording session is active.
func (s *Session) IsRecording() bool { return s.recorder.IsRecording() }

// Status returns the current connectivity status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status
}

// LastError returns the most recent surfaced error, or nil.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastErr
}

// ClearError dismisses the surfaced error.
func (s *Session) ClearError() {
	s.mu.Lock()
	hadError := s.lastErr != nil
	s.lastErr = nil
	s.mu.Unlock()

	if hadError {
		s.emit(events.NewErrorCleared())
	}
}

// Messages returns a copy of the in-memory message log.
func (s *Session) Messages() []Message { return s.conversation.Messages() }

// History returns a deep copy of the wire conversation history.
func (s *Session) History() protocol.History { return s.conversation.Snapshot() }

func (s *Session) send(frame protocol.Outbound) error {
	s.mu.Lock()
	channel := s.channel
	connected := s.status == StatusConnected
	s.mu.Unlock()

	if channel == nil || !connected {
		transportErr := &TransportError{Op: "send", Err: ErrNotConnected}
		s.recordError("transport", transportErr)
		return transportErr
	}

	payload, err := protocol.EncodeOutbound(frame)
	if err != nil {
		return err
	}

	if err := channel.Send(payload); err != nil {
		transportErr := &TransportError{Op: "send", Err: err}
		s.recordError("transport", transportErr)
		return transportErr
	}
	return nil
}

func (s *Session) recordError(scope string, err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()

	s.emit(events.NewErrorRaised(scope, err.Error()))
}

func (s *Session) abandonTurn(id string) {
	s.mu.Lock()
	if s.turn != nil && s.turn.id == id {
		s.turn = nil
	}
	s.mu.Unlock()
}

func (s *Session) handleTransportError(err error) {
	transportErr := &TransportError{Op: "channel", Err: err}
	logger.Warn("transport error", "error", transportErr)
	s.recordError("transport", transportErr)
}

func (s *Session) handleChannelClosed() {
	s.mu.Lock()
	wasConnected := s.status == StatusConnected
	s.status = StatusDisconnected
	s.mu.Unlock()

	if wasConnected {
		s.emit(events.NewStatusChanged(false))
	}
}
