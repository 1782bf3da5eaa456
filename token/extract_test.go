package token

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/authkit/cookies"
	apperrors "github.com/kbukum/authkit/errors"
)

func TestFromRequest_HeaderBearer(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc123")

	got, err := FromRequest(r, ExtractOptions{From: FromHeader}, "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "abc123" {
		t.Errorf("expected abc123, got %q", got)
	}
}

func TestFromRequest_HeaderBearerCaseInsensitive(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "bEaReR abc123")

	got, err := FromRequest(r, ExtractOptions{From: FromHeader}, "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "abc123" {
		t.Errorf("expected abc123, got %q", got)
	}
}

func TestFromRequest_HeaderWithoutScheme(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "  abc123  ")

	got, err := FromRequest(r, ExtractOptions{From: FromHeader}, "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "abc123" {
		t.Errorf("expected raw trimmed header, got %q", got)
	}
}

func TestFromRequest_HeaderMissing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	got, err := FromRequest(r, ExtractOptions{From: FromHeader}, "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("expected no token, got %q", got)
	}
}

func TestFromRequest_CustomHeaderName(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Api-Token", "Bearer tok")

	got, err := FromRequest(r, ExtractOptions{From: FromHeader, HeaderName: "X-Api-Token"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "tok" {
		t.Errorf("expected tok, got %q", got)
	}
}

func TestFromRequest_SignedCookie(t *testing.T) {
	signed, err := cookies.Sign("raw-token", "cookie-secret")
	if err != nil {
		t.Fatal(err)
	}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "authorization", Value: signed})

	got, err := FromRequest(r, ExtractOptions{From: FromCookie}, "cookie-secret")
	if err != nil {
		t.Fatal(err)
	}
	if got != "raw-token" {
		t.Errorf("expected raw-token, got %q", got)
	}
}

func TestFromRequest_TamperedCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "authorization", Value: "raw-token.bogussignature"})

	_, err := FromRequest(r, ExtractOptions{From: FromCookie}, "cookie-secret")
	if err == nil {
		t.Fatal("expected an error for a tampered cookie")
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeInvalidToken {
		t.Errorf("expected INVALID_TOKEN, got %v", err)
	}
}

func TestFromRequest_UnsignedCookieWithoutSecret(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "authorization", Value: "plain-token"})

	got, err := FromRequest(r, ExtractOptions{From: FromCookie}, "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "plain-token" {
		t.Errorf("expected plain-token, got %q", got)
	}
}

func TestFromRequest_CookieMissing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	got, err := FromRequest(r, ExtractOptions{From: FromCookie}, "secret")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("expected no token, got %q", got)
	}
}

func TestFromRequest_Query(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/path?access_token=qtok", nil)

	got, err := FromRequest(r, ExtractOptions{From: FromQuery}, "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "qtok" {
		t.Errorf("expected qtok, got %q", got)
	}
}

func TestFromRequest_QueryCustomName(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/path?tkn=qtok", nil)

	got, err := FromRequest(r, ExtractOptions{From: FromQuery, QueryName: "tkn"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "qtok" {
		t.Errorf("expected qtok, got %q", got)
	}
}

func TestFromRequest_UnknownSource(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc123")

	got, err := FromRequest(r, ExtractOptions{From: "session"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("expected unknown source to resolve nothing, got %q", got)
	}
}

func TestExtractOptions_ApplyDefaults(t *testing.T) {
	opts := ExtractOptions{}
	opts.ApplyDefaults()
	if opts.From != FromHeader {
		t.Errorf("expected header default, got %s", opts.From)
	}
	if opts.CookieName != "authorization" || opts.HeaderName != "authorization" {
		t.Error("expected authorization name defaults")
	}
	if opts.QueryName != "access_token" {
		t.Errorf("expected access_token default, got %s", opts.QueryName)
	}
}
