package session

import "testing"

func TestTextBufferAccumulatesChunksInOrder(t *testing.T) {
	b := newTextBuffer()
	b.AddChunk("Hi ")
	b.AddChunk("there")
	b.AddChunk("!")

	if got := b.String(); got != "Hi there!" {
		t.Fatalf("expected accumulated text %q, got %q", "Hi there!", got)
	}
}

func TestTextBufferRefusesChunksAfterSeal(t *testing.T) {
	b := newTextBuffer()
	if !b.AddChunk("Hi") {
		t.Fatalf("expected chunk to be accepted before sealing")
	}

	b.Seal()

	if b.AddChunk(" there") {
		t.Fatalf("expected chunk to be refused after sealing")
	}
	if got := b.String(); got != "Hi" {
		t.Fatalf("expected sealed text %q, got %q", "Hi", got)
	}
}

func TestTextBufferEmptyString(t *testing.T) {
	b := newTextBuffer()
	b.Seal()

	if got := b.String(); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}
