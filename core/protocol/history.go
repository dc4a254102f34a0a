package protocol

import "encoding/json"

// History is the ordered conversation log echoed between client and
// remote party. Records are kept opaque: the remote party owns their
// shape and the client only stores and resends them.
type History []json.RawMessage

// NewTextRecord builds a history record in the shape the remote party
// uses for plain text messages. It is only needed on the legacy REST
// path, where the client maintains the history itself; streamed turns
// take the snapshot supplied by the turn-complete frame verbatim.
func NewTextRecord(role, text string) (json.RawMessage, error) {
	type content struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	record := struct {
		Role    string    `json:"role"`
		Content []content `json:"content"`
	}{
		Role:    role,
		Content: []content{{Type: "text", Text: text}},
	}

	return json.Marshal(record)
}
