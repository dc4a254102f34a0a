package events

const (
	// KindMessageAppended identifies growth of the in-memory message log.
	KindMessageAppended Kind = "conversation.message_appended"
	// KindHistoryReplaced identifies replacement of the wire history snapshot.
	KindHistoryReplaced Kind = "conversation.history_replaced"
)

// MessageAppended reports one message added to the in-memory log.
type MessageAppended struct {
	Base
	Role string
	Text string
}

// NewMessageAppended creates a message appended event.
func NewMessageAppended(role, text string) MessageAppended {
	return MessageAppended{Base: NewBase(KindMessageAppended), Role: role, Text: text}
}

// HistoryReplaced reports that a terminal frame supplied a new
// authoritative history snapshot. Records reports its length.
type HistoryReplaced struct {
	Base
	Records int
}

// NewHistoryReplaced creates a history replaced event.
func NewHistoryReplaced(records int) HistoryReplaced {
	return HistoryReplaced{Base: NewBase(KindHistoryReplaced), Records: records}
}
