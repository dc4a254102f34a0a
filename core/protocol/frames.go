// Package protocol defines the JSON frame contract spoken over the
// session's duplex channel.
//
// Inbound and outbound frames are closed tagged-variant types: every
// frame kind is a distinct struct implementing the [Inbound] or
// [Outbound] marker, so dispatch sites can switch exhaustively and a
// new frame kind forces a compile-time decision.
//
// Audio payloads are hex-encoded on inbound frames and base64-encoded
// on outbound frames; both are exposed as raw bytes on the Go side.
package protocol

// Inbound is a frame received from the remote party.
type Inbound interface{ isInbound() }

// Transcription carries the final transcript of an uploaded voice turn.
type Transcription struct {
	Text string
}

// GenerationStarted announces the start of streamed response text.
type GenerationStarted struct{}

// GenerationChunk carries one streamed response text segment.
type GenerationChunk struct {
	Text string
}

// GenerationComplete announces the end of streamed response text. It
// does not close the turn; synthesis may still be in flight.
type GenerationComplete struct{}

// SynthesisStarted announces the start of streamed speech synthesis.
type SynthesisStarted struct{}

// SynthesisChunk carries one synthesized speech fragment.
type SynthesisChunk struct {
	Audio []byte
	Index int
	Last  bool
}

// SynthesisComplete announces the end of streamed speech synthesis.
type SynthesisComplete struct{}

// TurnComplete closes the current turn and supplies the authoritative
// conversation history snapshot.
type TurnComplete struct {
	History History
}

// RemoteError carries an explicit error reported by the remote party.
type RemoteError struct {
	Message string
}

// AudioReceived acknowledges uploaded audio. Informational only.
type AudioReceived struct {
	Chunks int
}

// Pong answers a keepalive ping. Informational only.
type Pong struct{}

// LegacyResponse is the pre-streaming response shape: complete text
// plus optional complete audio in a single frame.
type LegacyResponse struct {
	UserText string
	Text     string
	Audio    []byte
	History  History
}

func (Transcription) isInbound()      {}
func (GenerationStarted) isInbound()  {}
func (GenerationChunk) isInbound()    {}
func (GenerationComplete) isInbound() {}
func (SynthesisStarted) isInbound()   {}
func (SynthesisChunk) isInbound()     {}
func (SynthesisComplete) isInbound()  {}
func (TurnComplete) isInbound()       {}
func (RemoteError) isInbound()        {}
func (AudioReceived) isInbound()      {}
func (Pong) isInbound()               {}
func (LegacyResponse) isInbound()     {}

// Outbound is a frame sent to the remote party.
type Outbound interface{ isOutbound() }

// TextSubmission submits a typed user turn together with a history
// snapshot.
type TextSubmission struct {
	Text    string
	History History
}

// AudioUpload submits one recorded utterance as a single payload.
type AudioUpload struct {
	Audio []byte
}

// EndTurn terminates an audio submission and carries the history
// snapshot for the turn.
type EndTurn struct {
	History History
}

// CloseSession asks the remote party to end the session.
type CloseSession struct{}

// Ping is a keepalive probe.
type Ping struct{}

func (TextSubmission) isOutbound() {}
func (AudioUpload) isOutbound()    {}
func (EndTurn) isOutbound()        {}
func (CloseSession) isOutbound()   {}
func (Ping) isOutbound()           {}
