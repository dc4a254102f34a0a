package session

import (
	"encoding/json"
	"testing"

	"github.com/Pranav-shellkode/voice-agent-learning/core/protocol"
)

func TestConversationLogSnapshotIsIndependent(t *testing.T) {
	l := newConversationLog()
	l.ReplaceRecords(protocol.History{
		json.RawMessage(`{"role":"user","content":"hi"}`),
	})

	snapshot := l.Snapshot()
	if len(snapshot) != 1 {
		t.Fatalf("expected 1 record in snapshot, got %d", len(snapshot))
	}

	l.ReplaceRecords(protocol.History{
		json.RawMessage(`{"role":"user"}`),
		json.RawMessage(`{"role":"assistant"}`),
	})

	if len(snapshot) != 1 {
		t.Fatalf("expected snapshot to be unaffected by replacement, got %d records", len(snapshot))
	}
}

func TestConversationLogSnapshotOfEmptyHistoryIsNotNil(t *testing.T) {
	l := newConversationLog()

	if snapshot := l.Snapshot(); snapshot == nil {
		t.Fatalf("expected an empty non-nil history snapshot")
	}
}

func TestConversationLogReplaceRecordsReportsLength(t *testing.T) {
	l := newConversationLog()

	got := l.ReplaceRecords(protocol.History{
		json.RawMessage(`{}`),
		json.RawMessage(`{}`),
		json.RawMessage(`{}`),
	})
	if got != 3 {
		t.Fatalf("expected 3 replaced records, got %d", got)
	}
}

func TestConversationLogAppendMessageAssignsIdentity(t *testing.T) {
	l := newConversationLog()

	message := l.AppendMessage(RoleUser, "hello")
	if message.ID == "" {
		t.Fatalf("expected appended message to get an ID")
	}
	if message.Timestamp.IsZero() {
		t.Fatalf("expected appended message to get a timestamp")
	}

	messages := l.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	if messages[0].Role != RoleUser || messages[0].Text != "hello" {
		t.Fatalf("expected user message %q, got %+v", "hello", messages[0])
	}
}

func TestConversationLogMessagesReturnsACopy(t *testing.T) {
	l := newConversationLog()
	l.AppendMessage(RoleUser, "hello")

	messages := l.Messages()
	messages[0].Text = "mutated"

	if got := l.Messages()[0].Text; got != "hello" {
		t.Fatalf("expected log to be unaffected by caller mutation, got %q", got)
	}
}
