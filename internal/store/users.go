package store

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// User is a signup record. Users are append-only: no update or delete path
// exists. The password is stored as a bcrypt hash; it is persisted to
// users.json but must never be echoed in HTTP responses.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUser validates a signup and appends a new user record. Field
// presence and password confirmation are checked before uniqueness, so a
// duplicate name submitted with mismatched passwords reports the mismatch.
func (s *Store) CreateUser(username, email, password, confirmPassword string) (User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || password == "" || confirmPassword == "" {
		return User{}, fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if password != confirmPassword {
		return User{}, fmt.Errorf("%w: passwords do not match", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return User{}, ErrConflict
		}
	}

	// bcrypt cost of 12, same balance the rest of the stack uses.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:       s.nextID(),
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	s.users = append(s.users, user)
	if err := saveCollection(s.path(usersFile), s.users); err != nil {
		return User{}, err
	}
	return user, nil
}

// Authenticate scans the user collection for a record whose username or
// email matches identifier and whose bcrypt hash verifies against password.
func (s *Store) Authenticate(identifier, password string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username != identifier && u.Email != identifier {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil {
			return u, nil
		}
	}
	return User{}, ErrBadCredentials
}
