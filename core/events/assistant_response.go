package events

const (
	// KindAssistantResponseStarted identifies response generation start.
	KindAssistantResponseStarted Kind = "assistant_response.started"
	// KindAssistantResponseSegment identifies streamed assistant response text.
	KindAssistantResponseSegment Kind = "assistant_response.segment"
	// KindAssistantResponseFinal identifies assistant response stream completion.
	KindAssistantResponseFinal Kind = "assistant_response.final"
)

// AssistantResponseStarted marks the opening of a fresh response text
// buffer for the current turn.
type AssistantResponseStarted struct{ Base }

// NewAssistantResponseStarted creates an assistant response started event.
func NewAssistantResponseStarted() AssistantResponseStarted {
	return AssistantResponseStarted{Base: NewBase(KindAssistantResponseStarted)}
}

// AssistantResponseSegment carries a streamed assistant response text segment.
type AssistantResponseSegment struct {
	Base
	Segment string
}

// NewAssistantResponseSegment creates an assistant response segment event.
func NewAssistantResponseSegment(segment string) AssistantResponseSegment {
	return AssistantResponseSegment{Base: NewBase(KindAssistantResponseSegment), Segment: segment}
}

// AssistantResponseFinal marks assistant response stream completion and
// carries the full accumulated text. The turn itself stays open until
// the remote signals full completion.
type AssistantResponseFinal struct {
	Base
	Text string
}

// NewAssistantResponseFinal creates an assistant response final event.
func NewAssistantResponseFinal(text string) AssistantResponseFinal {
	return AssistantResponseFinal{Base: NewBase(KindAssistantResponseFinal), Text: text}
}
