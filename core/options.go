package session

import (
	"context"
	"time"

	"github.com/Pranav-shellkode/voice-agent-learning/core/events"
)

// Channel is the duplex connection resource the session speaks over.
// Implementations deliver inbound payloads and transport-level failures
// through the callbacks supplied to Open; delivery order must match
// arrival order.
type Channel interface {
	Open(ctx context.Context, callbacks ChannelCallbacks) error
	Send(data []byte) error
	Close() error
}

// ChannelCallbacks wires transport notifications into the session.
type ChannelCallbacks struct {
	// OnFrame delivers one raw inbound payload.
	OnFrame func(data []byte)
	// OnError reports a transport-level failure.
	OnError func(err error)
	// OnClosed confirms the channel is gone; the session only reports
	// disconnected once this fires.
	OnClosed func()
}

// CaptureClient is the microphone resource used for voice turns.
type CaptureClient interface {
	StartCapture(ctx context.Context, onAudio func(audio []byte)) error
	StopCapture() error
}

// PlaybackResource plays one fragment to completion. Play returns once
// the audio finished, failed, or ctx was cancelled; the playback queue
// relies on this to keep fragments from overlapping.
type PlaybackResource interface {
	Play(ctx context.Context, audio []byte) error
}

type SessionOption func(*Session)

func WithChannel(channel Channel) SessionOption {
	return func(s *Session) { s.channel = channel }
}

func WithCaptureClient(client CaptureClient) SessionOption {
	return func(s *Session) { s.recorder.capture = client }
}

func WithPlaybackResource(playback PlaybackResource) SessionOption {
	return func(s *Session) { s.queue.playback = playback }
}

// WithEventHandler subscribes a handler to the full typed event stream.
func WithEventHandler(handler func(events.Event)) SessionOption {
	return func(s *Session) {
		if handler != nil {
			s.subscribers = append(s.subscribers, handler)
		}
	}
}

// WithKeepaliveInterval enables periodic ping frames while connected.
// Zero or negative disables keepalive, which is also the default.
func WithKeepaliveInterval(interval time.Duration) SessionOption {
	return func(s *Session) { s.keepaliveInterval = interval }
}

// WithCallbacks subscribes granular callbacks for hosts that do not
// want to switch over event types themselves.
func WithCallbacks(callbacks Callbacks) SessionOption {
	return func(s *Session) {
		s.subscribers = append(s.subscribers, newCallbackEventEmitter(callbacks))
	}
}
