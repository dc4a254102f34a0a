package session

import "github.com/Pranav-shellkode/voice-agent-learning/core/events"

type eventEmitter func(events.Event)

func noopEventEmitter(events.Event) {}

// Callbacks is the granular observer surface for hosts that prefer
// plain functions over switching on event types. Every field is
// optional.
type Callbacks struct {
	OnStatusChanged   func(connected bool)
	OnTranscription   func(transcript string)
	OnResponseSegment func(segment string)
	OnResponseEnd     func(text string)
	OnMessage         func(role, text string)
	OnPlaybackEnded   func()
	OnError           func(scope, message string)
}

func newCallbackEventEmitter(callbacks Callbacks) eventEmitter {
	return func(event events.Event) {
		switch typedEvent := event.(type) {
		case events.StatusChanged:
			if callbacks.OnStatusChanged != nil {
				callbacks.OnStatusChanged(typedEvent.Connected)
			}
		case events.UserTranscriptFinal:
			if callbacks.OnTranscription != nil {
				callbacks.OnTranscription(typedEvent.Transcript)
			}
		case events.AssistantResponseSegment:
			if callbacks.OnResponseSegment != nil {
				callbacks.OnResponseSegment(typedEvent.Segment)
			}
		case events.AssistantResponseFinal:
			if callbacks.OnResponseEnd != nil {
				callbacks.OnResponseEnd(typedEvent.Text)
			}
		case events.MessageAppended:
			if callbacks.OnMessage != nil {
				callbacks.OnMessage(typedEvent.Role, typedEvent.Text)
			}
		case events.AssistantPlaybackEnded:
			if callbacks.OnPlaybackEnded != nil {
				callbacks.OnPlaybackEnded()
			}
		case events.ErrorRaised:
			if callbacks.OnError != nil {
				callbacks.OnError(typedEvent.Scope, typedEvent.Message)
			}
		}
	}
}
