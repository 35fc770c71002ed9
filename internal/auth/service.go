package auth

import (
	"errors"

	"github.com/rennsz/fansite/internal/entities"
)

// ErrInvalidCredentials is returned for unknown usernames and wrong
// passwords alike, so the two cases are indistinguishable to a caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the slice of the store the service needs.
type UserStore interface {
	GetUserByUsername(username string) (entities.User, bool)
}

// Service verifies admin credentials.
type Service struct {
	users UserStore
}

func NewService(users UserStore) *Service {
	return &Service{users: users}
}

// Authenticate checks a username/password pair against the stored bcrypt
// hash and returns the matched user.
func (s *Service) Authenticate(username, password string) (entities.User, error) {
	user, ok := s.users.GetUserByUsername(username)
	if !ok {
		return entities.User{}, ErrInvalidCredentials
	}
	if err := CheckPassword(password, user.Password); err != nil {
		return entities.User{}, ErrInvalidCredentials
	}
	return user, nil
}
