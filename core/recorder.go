package session

import (
	"context"
	"fmt"
	"sync"
)

type recorderState int

const (
	recorderIdle recorderState = iota
	recorderRecording
	recorderFinalizing
)

// recorder serializes microphone capture into one discrete payload per
// recording session. Only one recording session can exist at a time;
// Start is refused while recording or finalizing, which also keeps one
// turn's outbound frames from interleaving with another's.
type recorder struct {
	capture CaptureClient

	mu    sync.Mutex
	state recorderState
	buf   []byte
}

func newRecorder(capture CaptureClient) *recorder {
	return &recorder{capture: capture}
}

func (r *recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state == recorderRecording
}

// Start acquires the capture resource and begins accumulating audio.
func (r *recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.capture == nil {
		r.mu.Unlock()
		return ErrNoCaptureClient
	}
	if r.state != recorderIdle {
		r.mu.Unlock()
		return ErrRecordingActive
	}
	r.state = recorderRecording
	r.buf = nil
	r.mu.Unlock()

	if err := r.capture.StartCapture(ctx, r.appendAudio); err != nil {
		r.mu.Lock()
		r.state = recorderIdle
		r.buf = nil
		r.mu.Unlock()
		return &CaptureError{Err: fmt.Errorf("failed to start capture: %w", err)}
	}

	return nil
}

// Finalize stops capture and materializes the accumulated bytes into
// one payload. The recorder stays in finalizing state until Release so
// no new recording can start while the handoff is in progress.
func (r *recorder) Finalize() ([]byte, error) {
	r.mu.Lock()
	if r.state != recorderRecording {
		r.mu.Unlock()
		return nil, ErrNotRecording
	}
	r.state = recorderFinalizing
	r.mu.Unlock()

	if err := r.capture.StopCapture(); err != nil {
		// The captured bytes are still usable; report the release
		// failure but keep going.
		logger.Warn("failed to stop capture device", "error", err)
	}

	r.mu.Lock()
	payload := r.buf
	r.buf = nil
	r.mu.Unlock()

	return payload, nil
}

// Release destroys the recording session and returns to idle.
func (r *recorder) Release() {
	r.mu.Lock()
	r.state = recorderIdle
	r.buf = nil
	r.mu.Unlock()
}

func (r *recorder) appendAudio(audio []byte) {
	r.mu.Lock()
	if r.state == recorderRecording {
		r.buf = append(r.buf, audio...)
	}
	r.mu.Unlock()
}
