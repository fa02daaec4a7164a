package form

import (
	"strconv"
	"sync"
	"time"
)

// Sequence issues time-based tokens that strictly increase, even when
// several are requested within the same millisecond.
type Sequence struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewSequence creates a Sequence reading the given clock. A nil clock means
// time.Now.
func NewSequence(now func() time.Time) *Sequence {
	if now == nil {
		now = time.Now
	}
	return &Sequence{now: now}
}

// Next returns the next token: Unix milliseconds, bumped past the previous
// token when the clock has not advanced.
func (s *Sequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := s.now().UnixMilli()
	if ms <= s.last {
		ms = s.last + 1
	}
	s.last = ms
	return strconv.FormatInt(ms, 10)
}
