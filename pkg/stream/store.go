// Package stream buffers partial Markdown output by stream id until the
// final chunk arrives. The store is owned by the caller and passed to
// check.Checker.ValidateOutput; the checker itself keeps no state.
package stream

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity is the number of concurrent streams kept before the
// least recently used one is evicted.
const DefaultCapacity = 1024

// Store maps stream ids to partial buffers. It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	buffers *lru.Cache[string, *strings.Builder]
	evicted atomic.Int64
}

// New returns a Store holding at most capacity streams.
func New(capacity int) (*Store, error) {
	cache, err := lru.New[string, *strings.Builder](capacity)
	if err != nil {
		return nil, fmt.Errorf("create stream store: %w", err)
	}
	return &Store{buffers: cache}, nil
}

// NewDefault returns a Store with DefaultCapacity.
func NewDefault() *Store {
	s, err := New(DefaultCapacity)
	if err != nil {
		panic(err) // unreachable: DefaultCapacity is positive
	}
	return s
}

// Append adds chunk to the buffer for id and returns the buffered length
// in bytes.
func (s *Store) Append(id, chunk string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, ok := s.buffers.Get(id)
	if !ok {
		buf = &strings.Builder{}
		if s.buffers.Add(id, buf) {
			s.evicted.Add(1)
		}
	}
	buf.WriteString(chunk)
	return buf.Len()
}

// Peek returns the buffered content for id without removing it.
func (s *Store) Peek(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, ok := s.buffers.Peek(id)
	if !ok {
		return "", false
	}
	return buf.String(), true
}

// Take removes and returns the buffered content for id.
func (s *Store) Take(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, ok := s.buffers.Peek(id)
	if !ok {
		return "", false
	}
	s.buffers.Remove(id)
	return buf.String(), true
}

// Discard drops the buffer for id and reports whether one existed.
func (s *Store) Discard(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buffers.Remove(id)
}

// Len returns the number of open streams.
func (s *Store) Len() int {
	return s.buffers.Len()
}

// Evicted returns how many streams were dropped to stay within capacity.
func (s *Store) Evicted() int64 {
	return s.evicted.Load()
}
