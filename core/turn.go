package session

import (
	"github.com/Pranav-shellkode/voice-agent-learning/core/events"
	"github.com/Pranav-shellkode/voice-agent-learning/core/protocol"
	"github.com/google/uuid"
)

type turnModality string

const (
	modalityText  turnModality = "text"
	modalityVoice turnModality = "voice"
)

type turnPhase int

const (
	// phaseAwaitingTranscript waits for the remote transcription of an
	// uploaded voice turn. Text turns skip straight to generating.
	phaseAwaitingTranscript turnPhase = iota
	phaseGenerating
)

// activeTurn tracks the one in-flight user-to-assistant exchange. It is
// created on submission, mutated as streamed frames arrive, and dropped
// (never reused) once a terminal frame closes or aborts it.
type activeTurn struct {
	id       string
	modality turnModality
	phase    turnPhase
	userText string
	response *textBuffer
}

func newTurn(modality turnModality) *activeTurn {
	turn := &activeTurn{
		id:       uuid.NewString(),
		modality: modality,
		response: newTextBuffer(),
	}
	if modality == modalityText {
		turn.phase = phaseGenerating
	}
	return turn
}

func (s *Session) applyTranscription(frame protocol.Transcription) {
	s.mu.Lock()
	turn := s.turn
	if turn == nil || turn.phase != phaseAwaitingTranscript {
		s.mu.Unlock()
		logger.Debug("ignoring transcription without a pending voice turn")
		return
	}
	turn.userText = frame.Text
	turn.phase = phaseGenerating
	s.mu.Unlock()

	message := s.conversation.AppendMessage(RoleUser, frame.Text)
	s.emit(events.NewUserTranscriptFinal(frame.Text))
	s.emit(events.NewMessageAppended(message.Role, message.Text))
}

func (s *Session) applyGenerationStarted() {
	s.mu.Lock()
	turn := s.turn
	if turn == nil {
		s.mu.Unlock()
		logger.Debug("ignoring generation start without an open turn")
		return
	}
	// A fresh buffer for the turn, even if a stray chunk arrived early.
	turn.response = newTextBuffer()
	s.mu.Unlock()

	s.emit(events.NewAssistantResponseStarted())
}

func (s *Session) applyGenerationChunk(frame protocol.GenerationChunk) {
	s.mu.Lock()
	turn := s.turn
	if turn == nil {
		s.mu.Unlock()
		logger.Debug("ignoring generation chunk without an open turn")
		return
	}
	accepted := turn.response.AddChunk(frame.Text)
	s.mu.Unlock()

	if accepted {
		s.emit(events.NewAssistantResponseSegment(frame.Text))
	}
}

func (s *Session) applyGenerationComplete() {
	s.mu.Lock()
	turn := s.turn
	if turn == nil {
		s.mu.Unlock()
		return
	}
	turn.response.Seal()
	text := turn.response.String()
	s.mu.Unlock()

	s.emit(events.NewAssistantResponseFinal(text))
}

func (s *Session) applyTurnComplete(frame protocol.TurnComplete) {
	s.mu.Lock()
	turn := s.turn
	s.turn = nil
	s.mu.Unlock()

	if turn != nil {
		turn.response.Seal()
		if text := turn.response.String(); text != "" {
			message := s.conversation.AppendMessage(RoleAssistant, text)
			s.emit(events.NewMessageAppended(message.Role, message.Text))
		}
	} else {
		logger.Debug("turn complete without an open turn; history still applied")
	}

	records := s.conversation.ReplaceRecords(frame.History)
	s.emit(events.NewHistoryReplaced(records))

	if turn != nil {
		s.emit(events.NewTurnCompleted(turn.id))
	}
}

func (s *Session) applyRemoteError(frame protocol.RemoteError) {
	s.mu.Lock()
	turn := s.turn
	s.turn = nil
	s.lastErr = &RemoteError{Message: frame.Message}
	s.mu.Unlock()

	s.emit(events.NewErrorRaised("turn", frame.Message))
	if turn != nil {
		s.emit(events.NewTurnAborted(turn.id, frame.Message))
	}
}

// applyLegacyResponse handles the pre-streaming response shape: it
// constructs a finished turn directly, bypassing all intermediate
// states, and plays its single optional fragment without the queue.
func (s *Session) applyLegacyResponse(frame protocol.LegacyResponse) {
	s.mu.Lock()
	turn := s.turn
	s.turn = nil
	playback := s.queue.playback
	baseContext := s.baseContext
	s.mu.Unlock()

	if frame.UserText != "" {
		message := s.conversation.AppendMessage(RoleUser, frame.UserText)
		s.emit(events.NewMessageAppended(message.Role, message.Text))
	}

	message := s.conversation.AppendMessage(RoleAssistant, frame.Text)
	s.emit(events.NewMessageAppended(message.Role, message.Text))

	records := s.conversation.ReplaceRecords(frame.History)
	s.emit(events.NewHistoryReplaced(records))

	if turn != nil {
		s.emit(events.NewTurnCompleted(turn.id))
	}

	if len(frame.Audio) == 0 || playback == nil {
		return
	}

	go func() {
		if err := playback.Play(baseContext, frame.Audio); err != nil {
			playbackErr := &PlaybackError{Err: err}
			logger.Warn("failed to play response audio", "error", playbackErr)
			s.emit(events.NewAssistantPlaybackFragmentSkipped(0))
			return
		}
		s.emit(events.NewAssistantPlaybackEnded())
	}()
}
