package protocol

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

type textSubmissionWire struct {
	Type                string  `json:"type"`
	Data                string  `json:"data"`
	ConversationHistory History `json:"conversation_history"`
}

type audioUploadWire struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

type endTurnWire struct {
	Type                string  `json:"type"`
	ConversationHistory History `json:"conversation_history"`
}

type bareWire struct {
	Type string `json:"type"`
}

// EncodeOutbound serializes a frame into its wire payload. Captured
// audio is base64-encoded per the upload contract.
func EncodeOutbound(frame Outbound) ([]byte, error) {
	switch f := frame.(type) {
	case TextSubmission:
		return json.Marshal(textSubmissionWire{
			Type:                "text",
			Data:                f.Text,
			ConversationHistory: emptyIfNil(f.History),
		})
	case AudioUpload:
		return json.Marshal(audioUploadWire{
			Type: "audio_chunk",
			Data: base64.StdEncoding.EncodeToString(f.Audio),
		})
	case EndTurn:
		return json.Marshal(endTurnWire{
			Type:                "end_turn",
			ConversationHistory: emptyIfNil(f.History),
		})
	case CloseSession:
		return json.Marshal(bareWire{Type: "close"})
	case Ping:
		return json.Marshal(bareWire{Type: "ping"})
	}

	return nil, fmt.Errorf("unsupported outbound frame type %T", frame)
}

// emptyIfNil keeps the history field a JSON array even before any turn
// has completed; the remote party treats a missing field as "keep the
// server-side history", which is not what a fresh session wants.
func emptyIfNil(history History) History {
	if history == nil {
		return History{}
	}
	return history
}
