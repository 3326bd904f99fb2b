package auth

import (
	"sync"
	"time"
)

// Revoker remembers logged-out token IDs until their tokens would have
// expired anyway.
type Revoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewRevoker() *Revoker {
	return &Revoker{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke blocks the token ID until expiresAt.
func (r *Revoker) Revoke(tokenID string, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, exp := range r.revoked {
		if !exp.After(now) {
			delete(r.revoked, id)
		}
	}
	if expiresAt.After(now) {
		r.revoked[tokenID] = expiresAt
	}
}

func (r *Revoker) IsRevoked(tokenID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	exp, ok := r.revoked[tokenID]
	return ok && exp.After(r.now())
}
