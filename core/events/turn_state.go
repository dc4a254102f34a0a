package events

const (
	// KindTurnStarted identifies a new user submission opening a turn.
	KindTurnStarted Kind = "turn_state.started"
	// KindTurnCompleted identifies remote confirmation of turn completion.
	KindTurnCompleted Kind = "turn_state.completed"
	// KindTurnAborted identifies a turn ended by a remote error.
	KindTurnAborted Kind = "turn_state.aborted"
)

// TurnStarted marks a user submission opening a turn.
type TurnStarted struct {
	Base
	TurnID string
}

// NewTurnStarted creates a turn started event.
func NewTurnStarted(turnID string) TurnStarted {
	return TurnStarted{Base: NewBase(KindTurnStarted), TurnID: turnID}
}

// TurnCompleted marks remote confirmation of full turn completion.
type TurnCompleted struct {
	Base
	TurnID string
}

// NewTurnCompleted creates a turn completed event.
func NewTurnCompleted(turnID string) TurnCompleted {
	return TurnCompleted{Base: NewBase(KindTurnCompleted), TurnID: turnID}
}

// TurnAborted marks a turn ended by a remote error without completion.
type TurnAborted struct {
	Base
	TurnID  string
	Message string
}

// NewTurnAborted creates a turn aborted event.
func NewTurnAborted(turnID, message string) TurnAborted {
	return TurnAborted{Base: NewBase(KindTurnAborted), TurnID: turnID, Message: message}
}
