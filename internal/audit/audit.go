// Package audit records the outcome of every dataset upload.
//
// Audit entries are an upload trail: who uploaded which file, whether it was
// accepted, and what the validator reported. Datasets themselves are kept in
// memory by the core store and are not persisted here.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Outcome is the result of an upload attempt.
type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeRejected Outcome = "rejected"
)

// Entry is one audit record.
type Entry struct {
	ID        uuid.UUID
	DatasetID string // empty for rejected uploads
	FileName  string
	Outcome   Outcome
	Rows      int
	Columns   int
	Warnings  []string
	Errors    []string
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}

// Recorder persists audit entries.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// NewEntry returns an entry with a fresh id and timestamp.
func NewEntry(fileName string, outcome Outcome) Entry {
	return Entry{
		ID:        uuid.New(),
		FileName:  fileName,
		Outcome:   outcome,
		CreatedAt: time.Now().UTC(),
	}
}

// Nop discards entries.
type Nop struct{}

// Record implements Recorder.
func (Nop) Record(context.Context, Entry) error { return nil }

// Memory keeps entries in process memory. Used in development and tests.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemory creates an empty in-memory recorder.
func NewMemory() *Memory {
	return &Memory{}
}

// Record implements Recorder.
func (m *Memory) Record(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

// Entries returns a copy of the recorded entries, oldest first.
func (m *Memory) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}
