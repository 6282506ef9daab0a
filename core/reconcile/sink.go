package reconcile

import (
	"fmt"
	"io"
	"sync"
)

// Sink is a line writer shared by all workers of a run. A single lock around
// each write guarantees that no two lines interleave mid-line, without
// callers having to serialize themselves.
type Sink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewSink wraps a writer in a Sink.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// Print writes one line to the sink.
func (s *Sink) Print(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, line)
}
