package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned by lookups when no matching row exists.
// Implementations must translate their driver's own not-found error to it.
var ErrNotFound = errors.New("store: record not found")

// UserStore reads user records by identifier.
type UserStore interface {
	FindUserByID(ctx context.Context, id uint) (*User, error)
}

// TokenStore persists issued token pairs.
type TokenStore interface {
	FindTokenByAccessToken(ctx context.Context, accessToken string) (*Token, error)
	FindTokenByRefreshToken(ctx context.Context, refreshToken string) (*Token, error)
	InsertToken(ctx context.Context, token *Token) error
	UpdateTokenAccessToken(ctx context.Context, id uuid.UUID, accessToken string) error
	DeleteTokenByAccessToken(ctx context.Context, accessToken string) error
	DeleteTokensByRefreshToken(ctx context.Context, refreshToken string) error
	DeleteTokensByOwner(ctx context.Context, ownerID uint) error
}

// Store combines both capabilities.
type Store interface {
	UserStore
	TokenStore
}
