package protocol

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownFrame reports a structurally valid frame whose kind the
// client does not know. Callers are expected to ignore such frames so
// newer remote parties can add kinds without breaking older clients.
var ErrUnknownFrame = errors.New("unknown frame kind")

// DecodeError reports an inbound payload that could not be parsed into
// a frame. It is scoped to the single offending frame; dropping the
// frame and continuing the session is the expected reaction.
type DecodeError struct {
	Kind string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("failed to decode frame: %v", e.Err)
	}
	return fmt.Sprintf("failed to decode %q frame: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// inboundEnvelope is the superset of fields any inbound frame can
// carry. Decoding goes through the envelope first so the frame kind can
// route to the right variant.
type inboundEnvelope struct {
	Type                string  `json:"type"`
	Text                string  `json:"text"`
	Audio               string  `json:"audio"`
	ChunkIndex          int     `json:"chunk_index"`
	IsLast              bool    `json:"is_last"`
	Message             string  `json:"message"`
	Chunks              int     `json:"chunks"`
	UserText            string  `json:"user_text"`
	ConversationHistory History `json:"conversation_history"`
}

// DecodeInbound parses a raw payload into its tagged frame variant.
//
// Malformed payloads return a [*DecodeError]; structurally valid frames
// of an unknown kind return [ErrUnknownFrame].
func DecodeInbound(data []byte) (Inbound, error) {
	var envelope inboundEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if envelope.Type == "" {
		return nil, &DecodeError{Err: errors.New("missing frame type")}
	}

	switch envelope.Type {
	case "transcription":
		return Transcription{Text: envelope.Text}, nil
	case "llm_start":
		return GenerationStarted{}, nil
	case "llm_chunk":
		return GenerationChunk{Text: envelope.Text}, nil
	case "llm_complete":
		return GenerationComplete{}, nil
	case "tts_start":
		return SynthesisStarted{}, nil
	case "tts_chunk":
		audio, err := hex.DecodeString(envelope.Audio)
		if err != nil {
			return nil, &DecodeError{Kind: envelope.Type, Err: fmt.Errorf("invalid audio payload: %w", err)}
		}
		return SynthesisChunk{Audio: audio, Index: envelope.ChunkIndex, Last: envelope.IsLast}, nil
	case "tts_complete":
		return SynthesisComplete{}, nil
	case "turn_complete":
		return TurnComplete{History: envelope.ConversationHistory}, nil
	case "error":
		return RemoteError{Message: envelope.Message}, nil
	case "audio_received":
		return AudioReceived{Chunks: envelope.Chunks}, nil
	case "pong":
		return Pong{}, nil
	case "response":
		frame := LegacyResponse{
			UserText: envelope.UserText,
			Text:     envelope.Text,
			History:  envelope.ConversationHistory,
		}
		if envelope.Audio != "" {
			audio, err := hex.DecodeString(envelope.Audio)
			if err != nil {
				return nil, &DecodeError{Kind: envelope.Type, Err: fmt.Errorf("invalid audio payload: %w", err)}
			}
			frame.Audio = audio
		}
		return frame, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFrame, envelope.Type)
}
