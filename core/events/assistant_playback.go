package events

const (
	// KindAssistantPlaybackStarted identifies playback leaving idle.
	KindAssistantPlaybackStarted Kind = "assistant_playback.started"
	// KindAssistantPlaybackFragmentPlayed identifies one played fragment.
	KindAssistantPlaybackFragmentPlayed Kind = "assistant_playback.fragment_played"
	// KindAssistantPlaybackFragmentSkipped identifies one failed fragment.
	KindAssistantPlaybackFragmentSkipped Kind = "assistant_playback.fragment_skipped"
	// KindAssistantPlaybackEnded identifies playback completion for the turn.
	KindAssistantPlaybackEnded Kind = "assistant_playback.ended"
)

// AssistantPlaybackStarted marks the playback queue leaving idle.
type AssistantPlaybackStarted struct{ Base }

// NewAssistantPlaybackStarted creates an assistant playback started event.
func NewAssistantPlaybackStarted() AssistantPlaybackStarted {
	return AssistantPlaybackStarted{Base: NewBase(KindAssistantPlaybackStarted)}
}

// AssistantPlaybackFragmentPlayed marks one fragment finishing playback.
type AssistantPlaybackFragmentPlayed struct {
	Base
	Index int
}

// NewAssistantPlaybackFragmentPlayed creates a fragment played event.
func NewAssistantPlaybackFragmentPlayed(index int) AssistantPlaybackFragmentPlayed {
	return AssistantPlaybackFragmentPlayed{Base: NewBase(KindAssistantPlaybackFragmentPlayed), Index: index}
}

// AssistantPlaybackFragmentSkipped marks a fragment the queue advanced
// past after a playback failure. Partial audio is acceptable, a stalled
// queue is not.
type AssistantPlaybackFragmentSkipped struct {
	Base
	Index int
}

// NewAssistantPlaybackFragmentSkipped creates a fragment skipped event.
func NewAssistantPlaybackFragmentSkipped(index int) AssistantPlaybackFragmentSkipped {
	return AssistantPlaybackFragmentSkipped{Base: NewBase(KindAssistantPlaybackFragmentSkipped), Index: index}
}

// AssistantPlaybackEnded marks playback completion for the current turn.
type AssistantPlaybackEnded struct{ Base }

// NewAssistantPlaybackEnded creates an assistant playback ended event.
func NewAssistantPlaybackEnded() AssistantPlaybackEnded {
	return AssistantPlaybackEnded{Base: NewBase(KindAssistantPlaybackEnded)}
}
