package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Pranav-shellkode/voice-agent-learning/core/audio"
)

type fakeCaptureClient struct {
	onAudio  func([]byte)
	startErr error
	stopErr  error
	started  int
	stopped  int
}

func (c *fakeCaptureClient) EncodingInfo() audio.EncodingInfo {
	return audio.GetDefaultEncodingInfo()
}

func (c *fakeCaptureClient) StartCapture(_ context.Context, onAudio func(audio []byte)) error {
	if c.startErr != nil {
		return c.startErr
	}
	c.started++
	c.onAudio = onAudio
	return nil
}

func (c *fakeCaptureClient) StopCapture() error {
	c.stopped++
	return c.stopErr
}

func TestRecorderAccumulatesAudioIntoOnePayload(t *testing.T) {
	capture := &fakeCaptureClient{}
	r := newRecorder(capture)

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("expected recording to start, got error: %v", err)
	}
	if !r.IsRecording() {
		t.Fatalf("expected recorder to report recording")
	}

	capture.onAudio([]byte{1, 2})
	capture.onAudio([]byte{3})
	capture.onAudio([]byte{4, 5})

	payload, err := r.Finalize()
	if err != nil {
		t.Fatalf("expected finalize to succeed, got error: %v", err)
	}
	if want := []byte{1, 2, 3, 4, 5}; string(payload) != string(want) {
		t.Fatalf("expected payload %v, got %v", want, payload)
	}
	if capture.stopped != 1 {
		t.Fatalf("expected capture to be stopped once, got %d", capture.stopped)
	}
}

func TestRecorderStartWithoutCaptureClient(t *testing.T) {
	r := newRecorder(nil)

	if err := r.Start(context.Background()); !errors.Is(err, ErrNoCaptureClient) {
		t.Fatalf("expected ErrNoCaptureClient, got %v", err)
	}
}

func TestRecorderStartWhileRecordingIsRefused(t *testing.T) {
	r := newRecorder(&fakeCaptureClient{})
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("expected recording to start, got error: %v", err)
	}

	if err := r.Start(context.Background()); !errors.Is(err, ErrRecordingActive) {
		t.Fatalf("expected ErrRecordingActive, got %v", err)
	}
}

func TestRecorderStartFailureResetsToIdle(t *testing.T) {
	capture := &fakeCaptureClient{startErr: fmt.Errorf("no device")}
	r := newRecorder(capture)

	err := r.Start(context.Background())
	var captureErr *CaptureError
	if !errors.As(err, &captureErr) {
		t.Fatalf("expected a CaptureError, got %v", err)
	}
	if r.IsRecording() {
		t.Fatalf("expected recorder to stay idle after a failed start")
	}

	capture.startErr = nil
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("expected recording to start after recovery, got error: %v", err)
	}
}

func TestRecorderFinalizeWithoutRecording(t *testing.T) {
	r := newRecorder(&fakeCaptureClient{})

	if _, err := r.Finalize(); !errors.Is(err, ErrNotRecording) {
		t.Fatalf("expected ErrNotRecording, got %v", err)
	}
}

func TestRecorderFinalizeKeepsAudioWhenStopFails(t *testing.T) {
	capture := &fakeCaptureClient{stopErr: fmt.Errorf("device wedged")}
	r := newRecorder(capture)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("expected recording to start, got error: %v", err)
	}
	capture.onAudio([]byte{9, 9})

	payload, err := r.Finalize()
	if err != nil {
		t.Fatalf("expected finalize to succeed despite stop failure, got error: %v", err)
	}
	if len(payload) != 2 {
		t.Fatalf("expected 2 captured bytes, got %d", len(payload))
	}
}

func TestRecorderReleaseAllowsNewRecording(t *testing.T) {
	r := newRecorder(&fakeCaptureClient{})
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("expected recording to start, got error: %v", err)
	}
	if _, err := r.Finalize(); err != nil {
		t.Fatalf("expected finalize to succeed, got error: %v", err)
	}

	// Still finalizing; a new recording must wait for Release.
	if err := r.Start(context.Background()); !errors.Is(err, ErrRecordingActive) {
		t.Fatalf("expected ErrRecordingActive before release, got %v", err)
	}

	r.Release()
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("expected recording to start after release, got error: %v", err)
	}
}

func TestRecorderIgnoresAudioAfterFinalize(t *testing.T) {
	capture := &fakeCaptureClient{}
	r := newRecorder(capture)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("expected recording to start, got error: %v", err)
	}
	onAudio := capture.onAudio

	if _, err := r.Finalize(); err != nil {
		t.Fatalf("expected finalize to succeed, got error: %v", err)
	}
	onAudio([]byte{1, 2, 3})
	r.Release()

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("expected recording to start, got error: %v", err)
	}
	payload, err := r.Finalize()
	if err != nil {
		t.Fatalf("expected finalize to succeed, got error: %v", err)
	}
	if len(payload) != 0 {
		t.Fatalf("expected no bytes from a stale capture callback, got %d", len(payload))
	}
}
