package main

import "sync"

// logBuffer keeps the most recent log entries for the log view
type logBuffer struct {
	mu      sync.Mutex
	entries [][]byte
	next    int
	full    bool
}

func newLogBuffer(size int) *logBuffer {
	if size < 1 {
		size = 1
	}
	return &logBuffer{entries: make([][]byte, size)}
}

func (b *logBuffer) WriteMessage(msg []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[b.next] = msg
	b.next = (b.next + 1) % len(b.entries)
	if b.next == 0 {
		b.full = true
	}
}

// ReadLastMessages returns up to n newest entries, oldest first
func (b *logBuffer) ReadLastMessages(n int) [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	count := b.next
	if b.full {
		count = len(b.entries)
	}
	if n > count {
		n = count
	}
	if n < 0 {
		n = 0
	}

	var out = make([][]byte, 0, n)
	for i := n; i > 0; i-- {
		idx := (b.next - i + len(b.entries)) % len(b.entries)
		out = append(out, b.entries[idx])
	}
	return out
}
