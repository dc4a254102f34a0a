package miniaudio

import "testing"

func bytesOf(n int, value byte) []byte {
	payload := make([]byte, n)
	for i := range payload {
		payload[i] = value
	}
	return payload
}

func TestFeedDeviceBoundsCopyToRequestedFrames(t *testing.T) {
	client := &playbackClient{}
	for i := range 100 {
		client.buffered = append(client.buffered, byte(i))
	}
	client.marks = []playbackMark{{start: 0, end: 100, done: make(chan struct{})}}

	feed := client.feedDevice(2)
	out := make([]byte, 100)
	feed(out, nil, 10)

	if len(client.buffered) != 80 {
		t.Fatalf("expected 80 buffered bytes after feeding 10 frames of 2 bytes, got %d", len(client.buffered))
	}
	if out[19] != 19 {
		t.Fatalf("expected byte 19 copied to the device, got %d", out[19])
	}
	if out[20] != 0 {
		t.Fatalf("expected the copy to stop at the requested frame count, got byte %d past it", out[20])
	}
	if client.marks[0].end != 80 {
		t.Fatalf("expected the pending mark shifted to end at 80, got %d", client.marks[0].end)
	}
}

func TestFeedDeviceReleasesDrainedMarks(t *testing.T) {
	client := &playbackClient{}
	client.buffered = make([]byte, 30)
	first := playbackMark{start: 0, end: 10, done: make(chan struct{})}
	second := playbackMark{start: 10, end: 30, done: make(chan struct{})}
	client.marks = []playbackMark{first, second}

	client.feedDevice(1)(make([]byte, 10), nil, 10)

	select {
	case <-first.done:
	default:
		t.Fatalf("expected the drained mark to be released")
	}
	select {
	case <-second.done:
		t.Fatalf("expected the undrained mark to stay pending")
	default:
	}
	if len(client.marks) != 1 || client.marks[0].start != 0 || client.marks[0].end != 20 {
		t.Fatalf("expected one pending mark spanning [0,20), got %+v", client.marks)
	}
}

func TestCancelMarkKeepsOtherWaitersAudio(t *testing.T) {
	client := &playbackClient{}
	client.buffered = append(bytesOf(10, 1), bytesOf(20, 2)...)
	cancelled := playbackMark{start: 0, end: 10, done: make(chan struct{})}
	waiting := playbackMark{start: 10, end: 30, done: make(chan struct{})}
	client.marks = []playbackMark{cancelled, waiting}

	client.bufferMu.Lock()
	client.cancelMark(cancelled.done)
	client.bufferMu.Unlock()

	if len(client.buffered) != 20 {
		t.Fatalf("expected only the cancelled span removed, got %d buffered bytes", len(client.buffered))
	}
	for i, b := range client.buffered {
		if b != 2 {
			t.Fatalf("expected remaining audio to belong to the other waiter, got byte %d at %d", b, i)
		}
	}
	select {
	case <-waiting.done:
		t.Fatalf("expected the other waiter to stay pending")
	default:
	}
	if len(client.marks) != 1 || client.marks[0].start != 0 || client.marks[0].end != 20 {
		t.Fatalf("expected the surviving mark shifted to [0,20), got %+v", client.marks)
	}
}

func TestCancelMarkAfterPartialConsumption(t *testing.T) {
	client := &playbackClient{}
	client.buffered = append(bytesOf(10, 1), bytesOf(10, 2)...)
	cancelled := playbackMark{start: 0, end: 10, done: make(chan struct{})}
	waiting := playbackMark{start: 10, end: 20, done: make(chan struct{})}
	client.marks = []playbackMark{cancelled, waiting}

	// Half of the first payload already reached the device.
	client.feedDevice(1)(make([]byte, 5), nil, 5)

	client.bufferMu.Lock()
	client.cancelMark(cancelled.done)
	client.bufferMu.Unlock()

	if len(client.buffered) != 10 {
		t.Fatalf("expected only the unplayed remainder removed, got %d buffered bytes", len(client.buffered))
	}
	if len(client.marks) != 1 || client.marks[0].start != 0 || client.marks[0].end != 10 {
		t.Fatalf("expected the surviving mark shifted to [0,10), got %+v", client.marks)
	}
}
