package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store. It backs the package tests and lets a
// host run the middleware without a database.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[uint]User
	tokens map[uuid.UUID]Token
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[uint]User),
		tokens: make(map[uuid.UUID]Token),
	}
}

// PutUser adds or replaces a user record.
func (s *MemoryStore) PutUser(user User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
}

// TokenCount returns the number of stored token rows.
func (s *MemoryStore) TokenCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}

// FindUserByID implements UserStore.
func (s *MemoryStore) FindUserByID(_ context.Context, id uint) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

// FindTokenByAccessToken implements TokenStore.
func (s *MemoryStore) FindTokenByAccessToken(_ context.Context, accessToken string) (*Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, token := range s.tokens {
		if token.AccessToken == accessToken {
			t := token
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

// FindTokenByRefreshToken implements TokenStore.
func (s *MemoryStore) FindTokenByRefreshToken(_ context.Context, refreshToken string) (*Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, token := range s.tokens {
		if token.RefreshToken == refreshToken {
			t := token
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

// InsertToken implements TokenStore.
func (s *MemoryStore) InsertToken(_ context.Context, token *Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	s.tokens[token.ID] = *token
	return nil
}

// UpdateTokenAccessToken implements TokenStore.
func (s *MemoryStore) UpdateTokenAccessToken(_ context.Context, id uuid.UUID, accessToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[id]
	if !ok {
		return ErrNotFound
	}
	token.AccessToken = accessToken
	s.tokens[id] = token
	return nil
}

// DeleteTokenByAccessToken implements TokenStore.
func (s *MemoryStore) DeleteTokenByAccessToken(_ context.Context, accessToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, token := range s.tokens {
		if token.AccessToken == accessToken {
			delete(s.tokens, id)
		}
	}
	return nil
}

// DeleteTokensByRefreshToken implements TokenStore.
func (s *MemoryStore) DeleteTokensByRefreshToken(_ context.Context, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, token := range s.tokens {
		if token.RefreshToken == refreshToken {
			delete(s.tokens, id)
		}
	}
	return nil
}

// DeleteTokensByOwner implements TokenStore.
func (s *MemoryStore) DeleteTokensByOwner(_ context.Context, ownerID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, token := range s.tokens {
		if token.OwnerID == ownerID {
			delete(s.tokens, id)
		}
	}
	return nil
}
