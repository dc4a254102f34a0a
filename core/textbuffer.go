package session

import (
	"strings"
	"sync"
)

// textBuffer accumulates streamed response text for one turn. Chunks
// are appended atomically in arrival order; once sealed, further
// appends are refused so stray frames cannot grow a finished response.
type textBuffer struct {
	mu     sync.Mutex
	chunks []string
	sealed bool
}

func newTextBuffer() *textBuffer {
	return &textBuffer{}
}

// AddChunk appends one streamed segment. It reports whether the chunk
// was accepted.
func (b *textBuffer) AddChunk(chunk string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sealed {
		return false
	}
	b.chunks = append(b.chunks, chunk)
	return true
}

// Seal stops growth of the buffer. The accumulated text stays readable.
func (b *textBuffer) Seal() {
	b.mu.Lock()
	b.sealed = true
	b.mu.Unlock()
}

func (b *textBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return strings.Join(b.chunks, "")
}
