package store

import (
	"context"
	"strings"

	"github.com/rennsz/fansite/internal/entities"
)

// GetUser returns the user with the given id.
func (s *Store) GetUser(id int) (entities.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	return user, ok
}

// GetUserByUsername looks a user up by name, case-insensitively.
func (s *Store) GetUserByUsername(username string) (entities.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if strings.EqualFold(user.Username, username) {
			return user, true
		}
	}
	return entities.User{}, false
}

// CreateUser inserts a new user with the next id and persists. The password
// must already be hashed.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextIDLocked(counterUsers)
	user := entities.User{ID: id, Username: username, Password: passwordHash}
	s.users[id] = user

	if err := s.saveLocked(ctx); err != nil {
		return entities.User{}, err
	}
	return user, nil
}

// UserCount reports how many users exist.
func (s *Store) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
