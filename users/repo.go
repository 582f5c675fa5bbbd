package users

// UserRepo stores users by provider id. Get returns errors.ErrUserNotFound for an unknown id.
type UserRepo interface {
	Get(id string) (*User, error)
	Upsert(user *User) error
}
