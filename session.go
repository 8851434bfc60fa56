package smsaero

import (
	"net/http"
	"sync"
)

// session owns the underlying HTTP client. It is created lazily on
// first use and released by close. A closed session is not poisoned:
// the next acquire builds a fresh client.
type session struct {
	mu     sync.Mutex
	client *http.Client
	build  func() *http.Client
}

func newSession(build func() *http.Client) *session {
	return &session{build: build}
}

// acquire returns the live HTTP client, creating one if needed.
func (s *session) acquire() *http.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		s.client = s.build()
	}
	return s.client
}

// close releases idle connections and drops the client. Safe to call
// multiple times and concurrently; closing an unopened session is a
// no-op.
func (s *session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return
	}
	s.client.CloseIdleConnections()
	s.client = nil
}

// active reports whether a client is currently held.
func (s *session) active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client != nil
}
