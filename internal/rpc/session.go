package rpc

import (
	"sync"

	"joflow/internal/refmap"
	"joflow/internal/table"

	"golang.org/x/sync/semaphore"
)

// Session is the server-side counterpart of the original application window:
// one loaded table, the reference maps, and the gate that keeps a second
// enrichment run from starting while one is in flight. The reference maps
// are immutable after load and may be read without holding the mutex.
type Session struct {
	mu         sync.Mutex
	tbl        *table.Table
	sourcePath string
	maps       *refmap.Maps

	runGate *semaphore.Weighted
}

func NewSession() *Session {
	return &Session{runGate: semaphore.NewWeighted(1)}
}

// SetTable replaces the loaded table wholesale.
func (s *Session) SetTable(t *table.Table, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tbl = t
	s.sourcePath = path
}

// Table returns the loaded table and its source path.
func (s *Session) Table() (*table.Table, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tbl, s.sourcePath
}

// SetMaps replaces the reference maps wholesale.
func (s *Session) SetMaps(m *refmap.Maps) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maps = m
}

// Maps returns the current reference maps, which may be nil.
func (s *Session) Maps() *refmap.Maps {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maps
}

// TryBeginRun acquires the single-run gate. It never blocks: a second run
// while one is in flight is refused, mirroring the disabled trigger control
// in the original application. Callers that get true must call EndRun.
func (s *Session) TryBeginRun() bool {
	return s.runGate.TryAcquire(1)
}

func (s *Session) EndRun() {
	s.runGate.Release(1)
}
