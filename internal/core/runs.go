package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultRunTTL is how long a finished run stays retrievable.
const DefaultRunTTL = 30 * time.Minute

// Run is one finished reconciliation kept for display and export.
type Run struct {
	ID        string        `json:"id"`
	Profile   string        `json:"profile"`
	Settings  Settings      `json:"settings"`
	FileNameA string        `json:"fileNameA"`
	FileNameB string        `json:"fileNameB"`
	Result    *Result       `json:"result"`
	CreatedAt time.Time     `json:"createdAt"`
	Duration  time.Duration `json:"durationNs"`
	ClientIP  string        `json:"-"`
	UserAgent string        `json:"-"`
}

// RunStore keeps finished runs in memory and forgets them after a TTL.
// Nothing is written to disk.
type RunStore struct {
	ttl time.Duration

	mu   sync.RWMutex
	runs map[string]*Run
}

// NewRunStore creates a store whose entries expire after ttl.
func NewRunStore(ttl time.Duration) *RunStore {
	if ttl <= 0 {
		ttl = DefaultRunTTL
	}
	return &RunStore{
		ttl:  ttl,
		runs: make(map[string]*Run),
	}
}

// Put stores run, assigning an ID and creation time when missing, and
// schedules its eviction.
func (s *RunStore) Put(run *Run) string {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	s.mu.Lock()
	s.runs[run.ID] = run
	s.mu.Unlock()

	id := run.ID
	time.AfterFunc(s.ttl, func() {
		s.mu.Lock()
		delete(s.runs, id)
		s.mu.Unlock()
	})

	return id
}

// Get returns the run with the given ID, or ErrRunNotFound when it is
// unknown or expired.
func (s *RunStore) Get(id string) (*Run, error) {
	s.mu.RLock()
	run, ok := s.runs[id]
	s.mu.RUnlock()

	if !ok || time.Since(run.CreatedAt) > s.ttl {
		return nil, ErrRunNotFound
	}
	return run, nil
}

// Len returns the number of runs currently held.
func (s *RunStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}
