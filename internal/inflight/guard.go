// Package inflight prevents duplicate concurrent form submissions. Each
// (session, operation) pair moves through idle -> submitting -> idle; a
// second Begin while submitting is refused, which is the server-side twin of
// disabling the submit button.
package inflight

import (
	"sync"
	"time"
)

// staleAfter bounds how long a submission can stay marked in-flight when its
// handler never called End (crashed request, lost client).
const staleAfter = time.Minute

type Guard struct {
	mu      sync.Mutex
	pending map[string]time.Time
	now     func() time.Time
}

func NewGuard() *Guard {
	return &Guard{
		pending: make(map[string]time.Time),
		now:     time.Now,
	}
}

func key(sessionTok, operation string) string {
	return sessionTok + "\x00" + operation
}

// Begin marks the operation in flight. It returns false when the same
// session already has this operation submitting.
func (g *Guard) Begin(sessionTok, operation string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	k := key(sessionTok, operation)
	if started, ok := g.pending[k]; ok && g.now().Sub(started) < staleAfter {
		return false
	}
	g.pending[k] = g.now()
	return true
}

// End releases the operation back to idle.
func (g *Guard) End(sessionTok, operation string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.pending, key(sessionTok, operation))
}
