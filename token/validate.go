package token

import (
	"context"
	"errors"

	apperrors "github.com/kbukum/authkit/errors"
	"github.com/kbukum/authkit/logger"
	"github.com/kbukum/authkit/routes"
	"github.com/kbukum/authkit/store"
)

// Auth is the per-request authentication result injected into the request
// context. IsConnected is true exactly when ConnectedUser is set.
type Auth struct {
	ConnectedUser *store.User
	IsConnected   bool
}

// UserValidationFunc is a caller-supplied hook run against the resolved
// user. An error rejects the request and propagates unchanged, which lets
// hosts turn away disabled or banned accounts.
type UserValidationFunc func(user *store.User) error

// Validator verifies a raw token value and resolves the owning user.
type Validator struct {
	secret          string
	verifyOnlyInJWT bool
	users           store.UserStore
	tokens          store.TokenStore
	userValidation  UserValidationFunc
	public          []routes.Rule
	log             *logger.Logger
}

// ValidatorConfig bundles the immutable dependencies of a Validator.
type ValidatorConfig struct {
	// Secret verifies token signatures.
	Secret string
	// VerifyOnlyInJWT trusts the JWT payload's id claim instead of
	// cross-checking a persisted token row.
	VerifyOnlyInJWT bool
	// Users resolves token owners. Required.
	Users store.UserStore
	// Tokens is the persisted token table. Required unless VerifyOnlyInJWT.
	Tokens store.TokenStore
	// UserValidation is an optional hook run against the resolved user.
	UserValidation UserValidationFunc
	// PublicRoutes tolerate verification failures.
	PublicRoutes []routes.Rule
}

// NewValidator creates a Validator.
func NewValidator(cfg ValidatorConfig, log *logger.Logger) *Validator {
	return &Validator{
		secret:          cfg.Secret,
		verifyOnlyInJWT: cfg.VerifyOnlyInJWT,
		users:           cfg.Users,
		tokens:          cfg.Tokens,
		userValidation:  cfg.UserValidation,
		public:          cfg.PublicRoutes,
		log:             log.WithComponent("auth"),
	}
}

// Check validates tokenValue for a request to (path, method).
//
// It returns (nil, nil) when no token was provided, or when verification
// failed but the route is public. On verification failure for a protected
// route it calls removeCookie (when non-nil) and returns an invalid-token
// error. A verified token resolves its user, runs the validation hook and
// yields a connected Auth.
func (v *Validator) Check(ctx context.Context, tokenValue, path, method string, removeCookie func()) (*Auth, error) {
	if tokenValue == "" {
		v.log.Debug("no token provided", logger.Fields(
			logger.FieldURL, path,
			logger.FieldMethod, method,
		))
		return nil, nil
	}

	userID, err := v.resolveOwner(ctx, tokenValue)
	if err != nil {
		v.log.Warn("token validation failed", logger.Fields(
			logger.FieldError, err.Error(),
			logger.FieldURL, path,
			logger.FieldMethod, method,
		))

		if routes.IsAllowed(path, method, v.public) {
			// Public routes tolerate garbage credentials.
			return nil, nil
		}
		if removeCookie != nil {
			removeCookie()
		}
		return nil, apperrors.InvalidToken("")
	}

	user, err := v.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			v.log.Error("token owner no longer exists", logger.Fields(
				logger.FieldUserID, userID,
			))
			return nil, apperrors.UserNotFound(userID)
		}
		return nil, err
	}

	if v.userValidation != nil {
		if err := v.userValidation(user); err != nil {
			v.log.Warn("user validation hook rejected user", logger.Fields(
				logger.FieldUserID, user.ID,
				logger.FieldError, err.Error(),
			))
			return nil, err
		}
	}

	return &Auth{ConnectedUser: user, IsConnected: true}, nil
}

// resolveOwner verifies the token and returns the owning user id.
func (v *Validator) resolveOwner(ctx context.Context, tokenValue string) (uint, error) {
	claims, err := parse(tokenValue, v.secret)
	if err != nil {
		return 0, err
	}

	if v.verifyOnlyInJWT {
		if claims.ID == 0 {
			return 0, errors.New("token: payload is missing the id claim")
		}
		return claims.ID, nil
	}

	if v.tokens == nil {
		return 0, errors.New("token: no token store configured for persisted verification")
	}
	row, err := v.tokens.FindTokenByAccessToken(ctx, tokenValue)
	if err != nil {
		return 0, err
	}
	if row.OwnerID == 0 {
		return 0, errors.New("token: persisted row has no owner")
	}
	return row.OwnerID, nil
}
