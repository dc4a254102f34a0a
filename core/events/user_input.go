package events

import "time"

const (
	// KindRecordingStarted identifies microphone capture start.
	KindRecordingStarted Kind = "user_input.recording_started"
	// KindRecordingStopped identifies microphone capture handoff.
	KindRecordingStopped Kind = "user_input.recording_stopped"
	// KindUserTranscriptFinal identifies the remote transcription of an
	// uploaded utterance.
	KindUserTranscriptFinal Kind = "user_input.transcript_final"
)

// RecordingStarted marks the start of a recording session.
type RecordingStarted struct{ Base }

// NewRecordingStarted creates a recording started event.
func NewRecordingStarted() RecordingStarted {
	return RecordingStarted{Base: NewBase(KindRecordingStarted)}
}

// RecordingStopped marks the end of a recording session. Bytes reports
// the size of the payload handed to the outbound path; Duration is its
// wall-clock length, zero when the capture encoding is unknown.
type RecordingStopped struct {
	Base
	Bytes    int
	Duration time.Duration
}

// NewRecordingStopped creates a recording stopped event.
func NewRecordingStopped(bytes int, duration time.Duration) RecordingStopped {
	return RecordingStopped{Base: NewBase(KindRecordingStopped), Bytes: bytes, Duration: duration}
}

// UserTranscriptFinal carries the terminal transcript for the uploaded
// utterance as recognized by the remote party.
type UserTranscriptFinal struct {
	Base
	Transcript string
}

// NewUserTranscriptFinal creates a user transcript final event.
func NewUserTranscriptFinal(transcript string) UserTranscriptFinal {
	return UserTranscriptFinal{Base: NewBase(KindUserTranscriptFinal), Transcript: transcript}
}
