package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Pranav-shellkode/voice-agent-learning/core/events"
)

type playbackInterval struct {
	index int
	start time.Time
	end   time.Time
}

type fakePlaybackResource struct {
	mu        sync.Mutex
	delay     time.Duration
	failIndex map[int]bool
	intervals []playbackInterval
	played    int
}

func (p *fakePlaybackResource) Play(ctx context.Context, audio []byte) error {
	start := time.Now()
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	index := int(audio[0])
	p.intervals = append(p.intervals, playbackInterval{index: index, start: start, end: time.Now()})
	if p.failIndex[index] {
		return fmt.Errorf("device failure on fragment %d", index)
	}
	p.played++
	return nil
}

func (p *fakePlaybackResource) snapshot() []playbackInterval {
	p.mu.Lock()
	defer p.mu.Unlock()
	intervals := make([]playbackInterval, len(p.intervals))
	copy(intervals, p.intervals)
	return intervals
}

type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *eventRecorder) record(event events.Event) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

func (r *eventRecorder) kinds() []events.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]events.Kind, 0, len(r.events))
	for _, event := range r.events {
		kinds = append(kinds, event.Kind())
	}
	return kinds
}

func (r *eventRecorder) ofKind(kind events.Kind) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []events.Event
	for _, event := range r.events {
		if event.Kind() == kind {
			matched = append(matched, event)
		}
	}
	return matched
}

func (r *eventRecorder) countKind(kind events.Kind) int {
	count := 0
	for _, k := range r.kinds() {
		if k == kind {
			count++
		}
	}
	return count
}

func (r *eventRecorder) awaitKind(t *testing.T, kind events.Kind) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if r.countKind(kind) > 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected event %q within deadline, got %v", kind, r.kinds())
}

func fragmentPayload(index int) []byte {
	return []byte{byte(index)}
}

func TestPlaybackQueuePlaysFragmentsInOrderWithoutOverlap(t *testing.T) {
	playback := &fakePlaybackResource{delay: 10 * time.Millisecond}
	recorder := &eventRecorder{}
	q := newPlaybackQueue(playback, recorder.record)

	for i := range 4 {
		q.Enqueue(fragment{audio: fragmentPayload(i), index: i, last: i == 3})
	}

	recorder.awaitKind(t, events.KindAssistantPlaybackEnded)

	intervals := playback.snapshot()
	if len(intervals) != 4 {
		t.Fatalf("expected 4 fragments played, got %d", len(intervals))
	}
	for i, interval := range intervals {
		if interval.index != i {
			t.Fatalf("expected fragment %d at position %d, got %d", i, i, interval.index)
		}
		if i > 0 && interval.start.Before(intervals[i-1].end) {
			t.Fatalf("expected fragment %d to start after fragment %d ended", i, i-1)
		}
	}
}

func TestPlaybackQueueSkipsFailedFragmentAndContinues(t *testing.T) {
	playback := &fakePlaybackResource{failIndex: map[int]bool{1: true}}
	recorder := &eventRecorder{}
	q := newPlaybackQueue(playback, recorder.record)

	for i := range 3 {
		q.Enqueue(fragment{audio: fragmentPayload(i), index: i, last: i == 2})
	}

	recorder.awaitKind(t, events.KindAssistantPlaybackEnded)

	if got := recorder.countKind(events.KindAssistantPlaybackFragmentSkipped); got != 1 {
		t.Fatalf("expected 1 skipped fragment, got %d", got)
	}
	if got := recorder.countKind(events.KindAssistantPlaybackFragmentPlayed); got != 2 {
		t.Fatalf("expected 2 played fragments, got %d", got)
	}
}

func TestPlaybackQueueFinishReportsEndWhenAlreadyDrained(t *testing.T) {
	playback := &fakePlaybackResource{}
	recorder := &eventRecorder{}
	q := newPlaybackQueue(playback, recorder.record)

	q.Enqueue(fragment{audio: fragmentPayload(0), index: 0})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if recorder.countKind(events.KindAssistantPlaybackFragmentPlayed) > 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	q.Finish()
	recorder.awaitKind(t, events.KindAssistantPlaybackEnded)
}

func TestPlaybackQueueDoesNotReportEndTwice(t *testing.T) {
	playback := &fakePlaybackResource{}
	recorder := &eventRecorder{}
	q := newPlaybackQueue(playback, recorder.record)

	q.Enqueue(fragment{audio: fragmentPayload(0), index: 0, last: true})
	recorder.awaitKind(t, events.KindAssistantPlaybackEnded)

	q.Finish()
	time.Sleep(20 * time.Millisecond)

	if got := recorder.countKind(events.KindAssistantPlaybackEnded); got != 1 {
		t.Fatalf("expected playback end to be reported once, got %d", got)
	}
}

func TestPlaybackQueueClearDiscardsPendingFragments(t *testing.T) {
	playback := &fakePlaybackResource{delay: 50 * time.Millisecond}
	recorder := &eventRecorder{}
	q := newPlaybackQueue(playback, recorder.record)

	for i := range 5 {
		q.Enqueue(fragment{audio: fragmentPayload(i), index: i})
	}
	q.Clear()

	// A fresh turn after the clear plays normally.
	q.Enqueue(fragment{audio: fragmentPayload(9), index: 0, last: true})
	recorder.awaitKind(t, events.KindAssistantPlaybackEnded)

	intervals := playback.snapshot()
	if last := intervals[len(intervals)-1]; last.index != 9 {
		t.Fatalf("expected the fresh fragment to play last, got %d", last.index)
	}
	for _, interval := range intervals[:len(intervals)-1] {
		if interval.index > 1 {
			t.Fatalf("expected cleared fragments not to play, but fragment %d did", interval.index)
		}
	}
}

func TestPlaybackQueueWithoutResourceStaysSilent(t *testing.T) {
	recorder := &eventRecorder{}
	q := newPlaybackQueue(nil, recorder.record)

	q.Enqueue(fragment{audio: fragmentPayload(0), index: 0, last: true})
	q.Finish()

	time.Sleep(20 * time.Millisecond)
	if got := recorder.countKind(events.KindAssistantPlaybackStarted); got != 0 {
		t.Fatalf("expected no playback events without a resource, got %d starts", got)
	}
}
