package session

import (
	"context"
	"sync"

	"github.com/Pranav-shellkode/voice-agent-learning/core/events"
	"go.opentelemetry.io/otel/metric"
)

var fragmentsPlayedCounter, _ = meter.Int64Counter(
	"session.playback.fragments_played",
	metric.WithDescription("Synthesized speech fragments played to completion"),
)

// fragment is one chunk of synthesized speech. The queue owns the
// payload until the fragment played (or failed), then releases it.
type fragment struct {
	audio []byte
	index int
	last  bool
}

// playbackQueue buffers ordered speech fragments and plays them
// back-to-back through a single sequential consumer: at most one
// fragment plays at a time, and the next starts only once the previous
// finished or failed. A failed fragment is logged and skipped rather
// than stalling the turn.
//
// The queue holds at most one turn's fragments; Clear discards residue
// from an interrupted or abandoned turn.
type playbackQueue struct {
	mu sync.Mutex

	pending  []fragment
	draining bool
	sawLast  bool
	// allLoaded is set once the remote announced synthesis completion;
	// it backs up the per-fragment last flag for remotes that omit it.
	allLoaded bool
	// endReported guards against reporting playback end twice when both
	// the last flag and the completion frame are present.
	endReported bool

	cancelDrain context.CancelFunc

	playback    PlaybackResource
	emitEvent   eventEmitter
	baseContext context.Context
}

func newPlaybackQueue(playback PlaybackResource, emitEvent eventEmitter) *playbackQueue {
	if emitEvent == nil {
		emitEvent = noopEventEmitter
	}
	return &playbackQueue{
		playback:    playback,
		emitEvent:   emitEvent,
		baseContext: context.Background(),
	}
}

func (q *playbackQueue) setBaseContext(ctx context.Context) {
	q.mu.Lock()
	q.baseContext = ctx
	q.mu.Unlock()
}

// Enqueue appends a fragment and, if the queue is idle, starts the
// consumer loop.
func (q *playbackQueue) Enqueue(f fragment) {
	q.mu.Lock()
	q.pending = append(q.pending, f)
	if f.last {
		q.sawLast = true
	}

	if q.draining || q.playback == nil {
		q.mu.Unlock()
		return
	}

	q.draining = true
	drainCtx, cancel := context.WithCancel(q.baseContext)
	q.cancelDrain = cancel
	q.mu.Unlock()

	q.emitEvent(events.NewAssistantPlaybackStarted())
	go q.drain(drainCtx)
}

// Clear discards any fragments left from a prior turn and interrupts
// an in-flight stale fragment, resetting the queue to idle.
func (q *playbackQueue) Clear() {
	q.mu.Lock()
	q.pending = nil
	q.sawLast = false
	q.allLoaded = false
	q.endReported = false
	if q.cancelDrain != nil {
		q.cancelDrain()
		q.cancelDrain = nil
		q.draining = false
	}
	q.mu.Unlock()
}

// Finish records that no further fragments will arrive for this turn.
// If everything already played, playback end is reported here.
func (q *playbackQueue) Finish() {
	q.mu.Lock()
	q.allLoaded = true
	alreadyDrained := !q.draining && len(q.pending) == 0 && !q.endReported
	if alreadyDrained {
		q.endReported = true
	}
	q.mu.Unlock()

	if alreadyDrained {
		q.emitEvent(events.NewAssistantPlaybackEnded())
	}
}

func (q *playbackQueue) drain(ctx context.Context) {
	for {
		q.mu.Lock()
		if ctx.Err() != nil {
			// Cleared mid-turn; Clear already reset the idle state.
			q.mu.Unlock()
			return
		}
		if len(q.pending) == 0 {
			q.draining = false
			q.cancelDrain = nil
			ended := (q.sawLast || q.allLoaded) && !q.endReported
			if ended {
				q.endReported = true
			}
			q.sawLast = false
			q.mu.Unlock()

			if ended {
				q.emitEvent(events.NewAssistantPlaybackEnded())
			}
			return
		}
		next := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		err := q.playback.Play(ctx, next.audio)
		next.audio = nil
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			playbackErr := &PlaybackError{Index: next.index, Err: err}
			logger.Warn("skipping speech fragment", "error", playbackErr)
			q.emitEvent(events.NewAssistantPlaybackFragmentSkipped(next.index))
			continue
		}

		fragmentsPlayedCounter.Add(ctx, 1)
		q.emitEvent(events.NewAssistantPlaybackFragmentPlayed(next.index))
	}
}
