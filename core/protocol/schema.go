package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// WireSchema describes the wire contract of every frame kind as JSON
// schema, keyed by the frame's type tag. Intended for protocol
// documentation and for validating recorded traffic against the client's
// understanding of the contract.
func WireSchema() (json.RawMessage, error) {
	reflector := jsonschema.Reflector{DoNotReference: true}

	frames := map[string]any{
		"text":        textSubmissionWire{},
		"audio_chunk": audioUploadWire{},
		"end_turn":    endTurnWire{},
		"close":       bareWire{},
		"ping":        bareWire{},
		"inbound":     inboundEnvelope{},
	}

	schemas := map[string]*jsonschema.Schema{}
	for tag, frame := range frames {
		schemas[tag] = reflector.Reflect(frame)
	}

	payload, err := json.MarshalIndent(schemas, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wire schema: %w", err)
	}
	return payload, nil
}
