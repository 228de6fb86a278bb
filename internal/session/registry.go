// Package session maps client session ids to their shells.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/jcmexdev/storefront/internal/shell"
)

const (
	DefaultMaxSessions = 10000
	DefaultIdleTTL     = 30 * time.Minute
)

// Factory builds the shell of a new session.
type Factory func() *shell.Shell

// Registry is an in-memory session store bounded in size and idle time. A
// session unused for idleTTL is dropped, and the least recently used one is
// dropped when maxSessions is reached.
type Registry struct {
	// mu makes lookup and creation one step; the LRU only locks per call.
	mu       sync.Mutex
	sessions *expirable.LRU[string, *shell.Shell]
	factory  Factory
}

// NewRegistry returns a registry. Zero or negative limits fall back to the
// defaults.
func NewRegistry(factory Factory, maxSessions int, idleTTL time.Duration) *Registry {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Registry{
		sessions: expirable.NewLRU[string, *shell.Shell](maxSessions, nil, idleTTL),
		factory:  factory,
	}
}

// Resolve returns the shell for id. A missing, unknown or expired id opens a
// new session; the returned id is the one the client must send next time.
func (r *Registry) Resolve(id string) (string, *shell.Shell) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id != "" {
		if s, ok := r.sessions.Get(id); ok {
			// Re-adding restarts the idle timer.
			r.sessions.Add(id, s)
			return id, s
		}
	}

	id = uuid.NewString()
	s := r.factory()
	r.sessions.Add(id, s)
	return id, s
}
