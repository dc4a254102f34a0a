package session

import (
	"sync"
	"time"

	"github.com/Pranav-shellkode/voice-agent-learning/core/protocol"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of the in-memory, UI-facing message log.
type Message struct {
	ID        string
	Role      string
	Text      string
	Timestamp time.Time
}

// conversationLog holds both conversation representations: the opaque
// wire history echoed back by the remote party, and the readable
// message log shown to the user. Only the turn-assembly path writes to
// it; outbound frames read point-in-time snapshots.
type conversationLog struct {
	mu sync.RWMutex

	records  protocol.History
	messages []Message
}

func newConversationLog() *conversationLog {
	return &conversationLog{}
}

// Snapshot returns a deep copy of the wire history, safe to hand to an
// outbound frame without racing later replacements.
func (l *conversationLog) Snapshot() protocol.History {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.records) == 0 {
		return protocol.History{}
	}

	snapshot := protocol.History{}
	if err := copier.CopyWithOption(&snapshot, &l.records, copier.Option{DeepCopy: true}); err != nil {
		// Fall back to a shallow copy; records are never mutated in
		// place, only replaced wholesale.
		snapshot = make(protocol.History, len(l.records))
		copy(snapshot, l.records)
	}
	return snapshot
}

// ReplaceRecords installs the authoritative history snapshot supplied
// by a terminal frame and reports its length.
func (l *conversationLog) ReplaceRecords(records protocol.History) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = records
	return len(records)
}

// AppendMessage adds one entry to the readable log.
func (l *conversationLog) AppendMessage(role, text string) Message {
	message := Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}

	l.mu.Lock()
	l.messages = append(l.messages, message)
	l.mu.Unlock()

	return message
}

// Messages returns a copy of the readable log.
func (l *conversationLog) Messages() []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	messages := make([]Message, len(l.messages))
	copy(messages, l.messages)
	return messages
}
