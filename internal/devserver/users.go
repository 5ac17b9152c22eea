package devserver

import (
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/siteadmin/internal/common"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrUserExists = errors.New("user already exists")

type user struct {
	ID    string
	Name  string
	Email string
	hash  []byte
}

// userStore keeps accounts keyed by lower-cased email.
type userStore struct {
	cost int

	mu    sync.RWMutex
	users map[string]user
}

func newUserStore(cost int) *userStore {
	return &userStore{cost: cost, users: make(map[string]user)}
}

func (s *userStore) create(name, email, password string) (user, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return user{}, err
	}
	key := strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[key]; ok {
		return user{}, ErrUserExists
	}
	u := user{ID: uuid.NewString(), Name: name, Email: key, hash: hash}
	s.users[key] = u
	return u, nil
}

// authenticate returns common.ErrorUnauthorized for an unknown email or a
// wrong password alike.
func (s *userStore) authenticate(email, password string) (user, error) {
	s.mu.RLock()
	u, ok := s.users[strings.ToLower(strings.TrimSpace(email))]
	s.mu.RUnlock()
	if !ok {
		return user{}, common.ErrorUnauthorized
	}
	if bcrypt.CompareHashAndPassword(u.hash, []byte(password)) != nil {
		return user{}, common.ErrorUnauthorized
	}
	return u, nil
}
