package events

const (
	// KindStatusChanged identifies a connectivity change.
	KindStatusChanged Kind = "session.status_changed"
	// KindErrorRaised identifies a new user-visible error.
	KindErrorRaised Kind = "session.error_raised"
	// KindErrorCleared identifies dismissal of the surfaced error.
	KindErrorCleared Kind = "session.error_cleared"
)

// StatusChanged reports the session's new connectivity status.
type StatusChanged struct {
	Base
	Connected bool
}

// NewStatusChanged creates a status changed event.
func NewStatusChanged(connected bool) StatusChanged {
	return StatusChanged{Base: NewBase(KindStatusChanged), Connected: connected}
}

// ErrorRaised carries the most recent user-visible error. Scope names
// the narrowest failed unit (e.g. "transport", "frame", "fragment",
// "turn", "capture").
type ErrorRaised struct {
	Base
	Scope   string
	Message string
}

// NewErrorRaised creates an error raised event.
func NewErrorRaised(scope, message string) ErrorRaised {
	return ErrorRaised{Base: NewBase(KindErrorRaised), Scope: scope, Message: message}
}

// ErrorCleared marks dismissal of the surfaced error.
type ErrorCleared struct{ Base }

// NewErrorCleared creates an error cleared event.
func NewErrorCleared() ErrorCleared {
	return ErrorCleared{Base: NewBase(KindErrorCleared)}
}
