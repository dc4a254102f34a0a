package session

import (
	"errors"
	"fmt"
)

var (
	// ErrNoChannel reports a session constructed without a channel.
	ErrNoChannel = errors.New("no channel configured")
	// ErrNotConnected reports an outbound operation on a disconnected session.
	ErrNotConnected = errors.New("session not connected")
	// ErrTurnInFlight reports a submission while a previous turn is still open.
	ErrTurnInFlight = errors.New("turn already in flight")
	// ErrNoCaptureClient reports a recording request without a capture client.
	ErrNoCaptureClient = errors.New("no capture client configured")
	// ErrRecordingActive reports a recording start while recording or finalizing.
	ErrRecordingActive = errors.New("recording already active")
	// ErrNotRecording reports a recording stop without an active recording.
	ErrNotRecording = errors.New("no active recording")
)

// TransportError reports a failed channel operation. It is terminal to
// the one operation; the session itself only moves to disconnected when
// the transport reports loss of the channel.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// CaptureError reports a microphone acquisition or capture failure.
// Recording is aborted; the session continues.
type CaptureError struct {
	Err error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("capture failed: %v", e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }

// PlaybackError reports a single fragment that failed to play. The
// queue advances past it.
type PlaybackError struct {
	Index int
	Err   error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("playback of fragment %d failed: %v", e.Index, e.Err)
}

func (e *PlaybackError) Unwrap() error { return e.Err }

// RemoteError reports an explicit error frame from the remote party,
// surfaced verbatim.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error: %s", e.Message)
}
