package server

import (
	"sync"

	"github.com/twiced-technology-gmbh/duewatch/internal/alert"
)

// registry holds one alert session per (owner, session id) pair.
type registry struct {
	mu       sync.Mutex
	sessions map[string]*alert.Session
}

func newRegistry() *registry {
	return &registry{sessions: make(map[string]*alert.Session)}
}

// with runs fn on the session for ownerID and sessionID, creating it on
// first use. fn runs under the registry lock.
func (r *registry) with(ownerID, sessionID string, fn func(*alert.Session)) {
	key := ownerID + "/" + sessionID

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[key]
	if !ok {
		s = alert.NewSession()
		r.sessions[key] = s
	}
	fn(s)
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
