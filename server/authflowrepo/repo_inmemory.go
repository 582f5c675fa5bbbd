package authflowrepo

import (
	"errors"
	"fmt"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/go-expenses-tracker/internal/errors"
)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface.
// States older than ttl are treated as unknown and pruned on write.
type InMemoryRepo struct {
	mu     sync.RWMutex
	ttl    time.Duration
	now    func() time.Time
	states map[string]AuthFlowState
}

// NewInMemoryRepo creates a new in-memory auth flow state repository
func NewInMemoryRepo(ttl time.Duration) *InMemoryRepo {
	return &InMemoryRepo{
		ttl:    ttl,
		now:    time.Now,
		states: make(map[string]AuthFlowState),
	}
}

// Upsert stores or updates an auth flow state
func (r *InMemoryRepo) Upsert(state string, authState *AuthFlowState) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}
	if authState == nil {
		return errors.New("authState cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for k, v := range r.states {
		if r.expired(v) {
			delete(r.states, k)
		}
	}
	r.states[state] = *authState
	return nil
}

// Get retrieves an auth flow state by state parameter
func (r *InMemoryRepo) Get(state string) (*AuthFlowState, error) {
	if state == "" {
		return nil, fmt.Errorf("%w: state cannot be empty", apperrors.ErrInvalidState)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	authState, exists := r.states[state]
	if !exists || r.expired(authState) {
		return nil, fmt.Errorf("%w: state not found", apperrors.ErrInvalidState)
	}
	return &authState, nil
}

// Delete removes an auth flow state
func (r *InMemoryRepo) Delete(state string) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.states, state)
	return nil
}

// Len returns the number of stored states, expired ones included.
func (r *InMemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.states)
}

func (r *InMemoryRepo) expired(s AuthFlowState) bool {
	return r.ttl > 0 && r.now().Sub(s.CreatedAt) > r.ttl
}
