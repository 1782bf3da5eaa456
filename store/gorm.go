package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/kbukum/authkit/errors"
	"github.com/kbukum/authkit/logger"
)

// GormStore implements Store on top of a GORM database handle. The handle
// is owned by the host application; the store neither opens nor closes
// connections.
type GormStore struct {
	db  *gorm.DB
	log *logger.Logger
}

var _ Store = (*GormStore)(nil)

// NewGormStore wraps an existing GORM handle.
func NewGormStore(db *gorm.DB, log *logger.Logger) *GormStore {
	return &GormStore{db: db, log: log.WithComponent("store")}
}

// Migrate creates the users and tokens tables if they do not exist.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Token{})
}

// FindUserByID implements UserStore.
func (s *GormStore) FindUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindTokenByAccessToken implements TokenStore.
func (s *GormStore) FindTokenByAccessToken(ctx context.Context, accessToken string) (*Token, error) {
	var token Token
	err := s.db.WithContext(ctx).First(&token, "access_token = ?", accessToken).Error
	if err != nil {
		return nil, translate(err)
	}
	return &token, nil
}

// FindTokenByRefreshToken implements TokenStore.
func (s *GormStore) FindTokenByRefreshToken(ctx context.Context, refreshToken string) (*Token, error) {
	var token Token
	err := s.db.WithContext(ctx).First(&token, "refresh_token = ?", refreshToken).Error
	if err != nil {
		return nil, translate(err)
	}
	return &token, nil
}

// InsertToken implements TokenStore.
func (s *GormStore) InsertToken(ctx context.Context, token *Token) error {
	if err := s.db.WithContext(ctx).Create(token).Error; err != nil {
		return translate(err)
	}
	s.log.Debug("token row inserted", logger.Fields(
		logger.FieldUserID, token.OwnerID,
	))
	return nil
}

// UpdateTokenAccessToken implements TokenStore.
func (s *GormStore) UpdateTokenAccessToken(ctx context.Context, id uuid.UUID, accessToken string) error {
	res := s.db.WithContext(ctx).Model(&Token{}).Where("id = ?", id).
		Update("access_token", accessToken)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTokenByAccessToken implements TokenStore.
func (s *GormStore) DeleteTokenByAccessToken(ctx context.Context, accessToken string) error {
	err := s.db.WithContext(ctx).Where("access_token = ?", accessToken).Delete(&Token{}).Error
	return translate(err)
}

// DeleteTokensByRefreshToken implements TokenStore.
func (s *GormStore) DeleteTokensByRefreshToken(ctx context.Context, refreshToken string) error {
	err := s.db.WithContext(ctx).Where("refresh_token = ?", refreshToken).Delete(&Token{}).Error
	return translate(err)
}

// DeleteTokensByOwner implements TokenStore.
func (s *GormStore) DeleteTokensByOwner(ctx context.Context, ownerID uint) error {
	err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&Token{}).Error
	return translate(err)
}

// translate maps GORM errors to the store's error vocabulary.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return apperrors.DatabaseError(err)
}
