package securesession

import (
	"bytes"
	"sort"
)

// Session is the application key/value state carried inside a transport
// blob. It is a pure value type with no locking of its own: a Session is
// expected to be owned by exactly one SessionTransport (and one request) at
// a time.
type Session struct {
	values map[string][]byte
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{values: make(map[string][]byte)}
}

// Get returns the value stored at key. The returned slice is the stored
// value itself, not a copy; callers that mutate it should Insert the result
// back to make the intent explicit.
func (s *Session) Get(key string) ([]byte, bool) {
	if s == nil || s.values == nil {
		return nil, false
	}
	value, ok := s.values[key]
	return value, ok
}

// Insert stores value at key and returns the previous value, if the key was
// occupied.
func (s *Session) Insert(key string, value []byte) ([]byte, bool) {
	if s.values == nil {
		s.values = make(map[string][]byte)
	}
	prev, ok := s.values[key]
	s.values[key] = value
	return prev, ok
}

// Remove deletes the entry at key and returns the removed value, if any.
func (s *Session) Remove(key string) ([]byte, bool) {
	if s == nil || s.values == nil {
		return nil, false
	}
	prev, ok := s.values[key]
	delete(s.values, key)
	return prev, ok
}

// Contains reports whether the session holds a value at key.
func (s *Session) Contains(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Clear removes all entries.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	clear(s.values)
}

// Len returns the number of entries.
func (s *Session) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// Keys returns all keys in sorted order. Sorting gives the session a
// canonical serialized form.
func (s *Session) Keys() []string {
	if s == nil || len(s.values) == 0 {
		return nil
	}
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether two sessions hold the same entries. A nil session
// equals an empty one.
func (s *Session) Equal(other *Session) bool {
	if s.Len() != other.Len() {
		return false
	}
	for key, value := range s.values {
		otherValue, ok := other.Get(key)
		if !ok || !bytes.Equal(value, otherValue) {
			return false
		}
	}
	return true
}
