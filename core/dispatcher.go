package session

import (
	"context"
	"errors"

	"github.com/Pranav-shellkode/voice-agent-learning/core/protocol"
	"go.opentelemetry.io/otel/metric"
)

var framesDroppedCounter, _ = meter.Int64Counter(
	"session.frames_dropped",
	metric.WithDescription("Inbound frames dropped because they could not be decoded"),
)

// handleFrame decodes one inbound payload and routes it by kind.
//
// Frames are delivered by the channel in arrival order and each handler
// runs to completion before the next frame is processed, which is what
// makes chunk i visible before chunk i+1 is applied. A malformed
// payload is logged and dropped; an unknown kind is ignored so newer
// remote parties stay compatible.
func (s *Session) handleFrame(data []byte) {
	frame, err := protocol.DecodeInbound(data)
	if err != nil {
		if errors.Is(err, protocol.ErrUnknownFrame) {
			logger.Debug("ignoring inbound frame", "reason", err)
			return
		}
		framesDroppedCounter.Add(context.Background(), 1)
		logger.Warn("dropping malformed inbound frame", "error", err)
		return
	}

	switch f := frame.(type) {
	case protocol.Transcription:
		s.applyTranscription(f)
	case protocol.GenerationStarted:
		s.applyGenerationStarted()
	case protocol.GenerationChunk:
		s.applyGenerationChunk(f)
	case protocol.GenerationComplete:
		s.applyGenerationComplete()
	case protocol.SynthesisStarted:
		// Any fragments a prior, abandoned turn left behind must not
		// bleed into this one.
		s.queue.Clear()
	case protocol.SynthesisChunk:
		s.queue.Enqueue(fragment{audio: f.Audio, index: f.Index, last: f.Last})
	case protocol.SynthesisComplete:
		s.queue.Finish()
	case protocol.TurnComplete:
		s.applyTurnComplete(f)
	case protocol.RemoteError:
		s.applyRemoteError(f)
	case protocol.AudioReceived:
		logger.Debug("audio upload acknowledged", "chunks", f.Chunks)
	case protocol.Pong:
	case protocol.LegacyResponse:
		s.applyLegacyResponse(f)
	}
}
