package fakeuserrepo

import (
	"errors"
	"sync"

	apperrors "github.com/jrsteele09/go-expenses-tracker/internal/errors"
	"github.com/jrsteele09/go-expenses-tracker/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

// FakeUserRepo keeps users in process memory. Records are lost on restart.
type FakeUserRepo struct {
	users map[string]*users.User
	lock  sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users: make(map[string]*users.User),
	}
}

func (ur *FakeUserRepo) Get(id string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	// Return a copy to prevent external modifications
	u := *user
	return &u, nil
}

func (ur *FakeUserRepo) Upsert(user *users.User) error {
	if user == nil || user.ID == "" {
		return errors.New("user id is required")
	}

	ur.lock.Lock()
	defer ur.lock.Unlock()

	u := *user
	if existing, ok := ur.users[user.ID]; ok && !existing.CreatedAt.IsZero() {
		u.CreatedAt = existing.CreatedAt
	}
	ur.users[user.ID] = &u
	return nil
}

// Len returns the number of stored users.
func (ur *FakeUserRepo) Len() int {
	ur.lock.RLock()
	defer ur.lock.RUnlock()
	return len(ur.users)
}
