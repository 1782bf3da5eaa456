package token

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/kbukum/authkit/errors"
	"github.com/kbukum/authkit/logger"
	"github.com/kbukum/authkit/store"
)

// Pair is an access/refresh token pair.
type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// IssueOptions configures Issuer.Create.
type IssueOptions struct {
	// Secret signs access tokens.
	Secret string
	// RefreshSecret signs refresh tokens; falls back to Secret when empty.
	RefreshSecret string
	// AccessTTL is the access token lifetime.
	AccessTTL time.Duration
	// RefreshTTL is the refresh token lifetime.
	RefreshTTL time.Duration
}

// RefreshOptions configures Issuer.Refresh.
type RefreshOptions struct {
	Secret        string
	RefreshSecret string
	AccessTTL     time.Duration
}

// Issuer mints, rotates and revokes token pairs. A nil token store is
// allowed: tokens are then stateless JWTs that cannot be revoked.
type Issuer struct {
	users  store.UserStore
	tokens store.TokenStore
	log    *logger.Logger
}

// NewIssuer creates an Issuer. tokens may be nil to disable persistence.
func NewIssuer(users store.UserStore, tokens store.TokenStore, log *logger.Logger) *Issuer {
	return &Issuer{users: users, tokens: tokens, log: log.WithComponent("token")}
}

// Create mints a token pair for an existing user and persists it when a
// token store is configured. A persistence failure is logged but does not
// fail the call: the minted tokens are still returned.
func (i *Issuer) Create(ctx context.Context, userID uint, opts IssueOptions) (*Pair, error) {
	if err := checkIssueOptions(opts); err != nil {
		return nil, err
	}

	if _, err := i.users.FindUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.UserNotFound(userID)
		}
		return nil, err
	}

	accessToken, err := sign(&Claims{ID: userID}, opts.Secret, opts.AccessTTL)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	refreshToken, err := sign(
		&Claims{ID: userID, Date: time.Now().UnixMilli()},
		refreshSecret(opts.Secret, opts.RefreshSecret),
		opts.RefreshTTL,
	)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if i.tokens != nil {
		row := &store.Token{
			OwnerID:      userID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		}
		if err := i.tokens.InsertToken(ctx, row); err != nil {
			// Minting still succeeds; the pair is just not revocable.
			i.log.Warn("failed to persist token pair", logger.Fields(
				logger.FieldUserID, userID,
				logger.FieldError, err.Error(),
			))
		}
	}

	return &Pair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Remove revokes the token row matching accessToken.
func (i *Issuer) Remove(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return apperrors.MissingField("accessToken")
	}
	if i.tokens == nil {
		return apperrors.Configuration("token store is not configured")
	}
	if err := i.tokens.DeleteTokenByAccessToken(ctx, accessToken); err != nil {
		return apperrors.OperationFailed("remove token").WithCause(err)
	}
	return nil
}

// RemoveAll revokes every token row owned by ownerID.
func (i *Issuer) RemoveAll(ctx context.Context, ownerID uint) error {
	if i.tokens == nil {
		return apperrors.Configuration("token store is not configured")
	}
	if err := i.tokens.DeleteTokensByOwner(ctx, ownerID); err != nil {
		return apperrors.OperationFailed("remove user tokens").WithCause(err)
	}
	return nil
}

// Refresh verifies refreshToken and mints a fresh access token for its
// owner. The persisted row, when present, is updated in place; the
// returned pair keeps the original refresh token. An unverifiable refresh
// token deletes any matching row and fails with a token-expired error.
func (i *Issuer) Refresh(ctx context.Context, refreshToken string, opts RefreshOptions) (*Pair, error) {
	if refreshToken == "" {
		return nil, apperrors.MissingField("refreshToken")
	}
	if opts.Secret == "" {
		return nil, apperrors.MissingField("secret")
	}
	if opts.AccessTTL <= 0 {
		return nil, apperrors.Validation("accessTokenTime must be positive")
	}

	claims, err := parse(refreshToken, refreshSecret(opts.Secret, opts.RefreshSecret))
	if err != nil {
		if i.tokens != nil {
			// Best effort: an expired refresh token has no business staying around.
			if delErr := i.tokens.DeleteTokensByRefreshToken(ctx, refreshToken); delErr != nil {
				i.log.Warn("failed to delete expired refresh token", logger.Fields(
					logger.FieldError, delErr.Error(),
				))
			}
		}
		return nil, apperrors.TokenExpired()
	}

	var row *store.Token
	if i.tokens != nil {
		row, err = i.tokens.FindTokenByRefreshToken(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, apperrors.NotFound("token", "")
			}
			return nil, err
		}
	}

	ownerID := claims.ID
	if row != nil {
		ownerID = row.OwnerID
	}

	accessToken, err := sign(&Claims{ID: ownerID}, opts.Secret, opts.AccessTTL)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if row != nil {
		if err := i.tokens.UpdateTokenAccessToken(ctx, row.ID, accessToken); err != nil {
			return nil, apperrors.OperationFailed("rotate access token").WithCause(err)
		}
	}

	return &Pair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func checkIssueOptions(opts IssueOptions) error {
	if opts.Secret == "" {
		return apperrors.MissingField("secret")
	}
	if opts.AccessTTL <= 0 {
		return apperrors.Validation("accessTokenTime must be positive")
	}
	if opts.RefreshTTL <= 0 {
		return apperrors.Validation("refreshTokenTime must be positive")
	}
	return nil
}

func refreshSecret(secret, refresh string) string {
	if refresh != "" {
		return refresh
	}
	return secret
}
