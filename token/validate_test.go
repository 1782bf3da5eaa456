package token

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/kbukum/authkit/errors"
	"github.com/kbukum/authkit/logger"
	"github.com/kbukum/authkit/routes"
	"github.com/kbukum/authkit/store"
)

const testSecret = "validator-secret"

func seededStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	s := store.NewMemoryStore()
	s.PutUser(store.User{ID: 7, Username: "alice"})
	return s
}

func mintAccess(t *testing.T, userID uint, secret string) string {
	t.Helper()
	value, err := sign(&Claims{ID: userID}, secret, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	return value
}

func TestValidator_NoToken(t *testing.T) {
	v := NewValidator(ValidatorConfig{
		Secret:          testSecret,
		VerifyOnlyInJWT: true,
		Users:           seededStore(t),
	}, logger.Nop())

	auth, err := v.Check(context.Background(), "", "/private", "GET", nil)
	if err != nil {
		t.Fatalf("missing token must not error at validator level: %v", err)
	}
	if auth != nil {
		t.Error("expected no auth result without a token")
	}
}

func TestValidator_WrongSecretProtectedRoute(t *testing.T) {
	removed := false
	v := NewValidator(ValidatorConfig{
		Secret:          testSecret,
		VerifyOnlyInJWT: true,
		Users:           seededStore(t),
	}, logger.Nop())

	tok := mintAccess(t, 7, "some-other-secret")
	auth, err := v.Check(context.Background(), tok, "/private", "GET", func() { removed = true })
	if auth != nil {
		t.Error("expected no user resolution for a bad signature")
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeInvalidToken {
		t.Fatalf("expected INVALID_TOKEN, got %v", err)
	}
	if !removed {
		t.Error("expected the cookie remover to be called")
	}
}

func TestValidator_WrongSecretPublicRoute(t *testing.T) {
	removed := false
	v := NewValidator(ValidatorConfig{
		Secret:          testSecret,
		VerifyOnlyInJWT: true,
		Users:           seededStore(t),
		PublicRoutes:    []routes.Rule{{URL: "/login", Method: "POST"}},
	}, logger.Nop())

	tok := mintAccess(t, 7, "some-other-secret")
	auth, err := v.Check(context.Background(), tok, "/login", "POST", func() { removed = true })
	if err != nil {
		t.Fatalf("public routes must swallow verification failures: %v", err)
	}
	if auth != nil {
		t.Error("expected unauthenticated result on public route")
	}
	if removed {
		t.Error("public fallback must not clear the cookie")
	}
}

func TestValidator_PublicFallbackUsesPatternMatching(t *testing.T) {
	v := NewValidator(ValidatorConfig{
		Secret:          testSecret,
		VerifyOnlyInJWT: true,
		Users:           seededStore(t),
		PublicRoutes:    []routes.Rule{{URL: "/docs/*", Method: "GET"}},
	}, logger.Nop())

	tok := mintAccess(t, 7, "some-other-secret")
	if _, err := v.Check(context.Background(), tok, "/docs/api/v2", "GET", nil); err != nil {
		t.Fatalf("wildcard public rule must apply in the fallback: %v", err)
	}
}

func TestValidator_JWTOnlyResolvesWithoutTokenStore(t *testing.T) {
	v := NewValidator(ValidatorConfig{
		Secret:          testSecret,
		VerifyOnlyInJWT: true,
		Users:           seededStore(t),
	}, logger.Nop())

	auth, err := v.Check(context.Background(), mintAccess(t, 7, testSecret), "/private", "GET", nil)
	if err != nil {
		t.Fatal(err)
	}
	if auth == nil || !auth.IsConnected {
		t.Fatal("expected a connected auth result")
	}
	if auth.ConnectedUser.ID != 7 {
		t.Errorf("expected user 7, got %d", auth.ConnectedUser.ID)
	}
}

func TestValidator_JWTOnlyMissingIDClaim(t *testing.T) {
	v := NewValidator(ValidatorConfig{
		Secret:          testSecret,
		VerifyOnlyInJWT: true,
		Users:           seededStore(t),
	}, logger.Nop())

	tok := mintAccess(t, 0, testSecret)
	_, err := v.Check(context.Background(), tok, "/private", "GET", nil)
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeInvalidToken {
		t.Fatalf("payload without id must fail verification, got %v", err)
	}
}

func TestValidator_PersistedCheckRequiresRow(t *testing.T) {
	s := seededStore(t)
	v := NewValidator(ValidatorConfig{
		Secret: testSecret,
		Users:  s,
		Tokens: s,
	}, logger.Nop())

	// Valid signature but no matching row in the token table.
	tok := mintAccess(t, 7, testSecret)
	_, err := v.Check(context.Background(), tok, "/private", "GET", nil)
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeInvalidToken {
		t.Fatalf("expected INVALID_TOKEN without a persisted row, got %v", err)
	}

	// With the row present the same token resolves.
	if err := s.InsertToken(context.Background(), &store.Token{
		OwnerID: 7, AccessToken: tok, RefreshToken: "r",
	}); err != nil {
		t.Fatal(err)
	}
	auth, err := v.Check(context.Background(), tok, "/private", "GET", nil)
	if err != nil {
		t.Fatal(err)
	}
	if auth == nil || auth.ConnectedUser.ID != 7 {
		t.Fatal("expected the persisted row to resolve user 7")
	}
}

func TestValidator_UserGone(t *testing.T) {
	v := NewValidator(ValidatorConfig{
		Secret:          testSecret,
		VerifyOnlyInJWT: true,
		Users:           store.NewMemoryStore(),
	}, logger.Nop())

	_, err := v.Check(context.Background(), mintAccess(t, 7, testSecret), "/private", "GET", nil)
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeUserNotFound {
		t.Fatalf("expected USER_NOT_FOUND, got %v", err)
	}
}

func TestValidator_HookErrorPropagates(t *testing.T) {
	hookErr := errors.New("account disabled")
	v := NewValidator(ValidatorConfig{
		Secret:          testSecret,
		VerifyOnlyInJWT: true,
		Users:           seededStore(t),
		UserValidation:  func(_ *store.User) error { return hookErr },
	}, logger.Nop())

	_, err := v.Check(context.Background(), mintAccess(t, 7, testSecret), "/private", "GET", nil)
	if !errors.Is(err, hookErr) {
		t.Fatalf("expected the hook error unchanged, got %v", err)
	}
}

func TestValidator_ExpiredToken(t *testing.T) {
	v := NewValidator(ValidatorConfig{
		Secret:          testSecret,
		VerifyOnlyInJWT: true,
		Users:           seededStore(t),
	}, logger.Nop())

	expired, err := sign(&Claims{ID: 7}, testSecret, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	_, err = v.Check(context.Background(), expired, "/private", "GET", nil)
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeInvalidToken {
		t.Fatalf("expected INVALID_TOKEN for an expired token, got %v", err)
	}
}
