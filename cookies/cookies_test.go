package cookies

import (
	"strings"
	"testing"
)

func TestSign_Unsign_Roundtrip(t *testing.T) {
	values := []string{"token", "a.b.c", "x", "value with spaces", "émoji✓"}
	for _, v := range values {
		signed, err := Sign(v, "secret")
		if err != nil {
			t.Fatalf("Sign(%q): %v", v, err)
		}
		got, ok := Unsign(signed, "secret")
		if !ok {
			t.Fatalf("Unsign rejected its own signature for %q", v)
		}
		if got != v {
			t.Errorf("roundtrip mismatch: got %q, want %q", got, v)
		}
	}
}

func TestSign_StripsPadding(t *testing.T) {
	signed, err := Sign("abc", "secret")
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasSuffix(signed, "=") {
		t.Errorf("expected trailing '=' padding stripped, got %q", signed)
	}
	if !strings.Contains(signed, ".") {
		t.Errorf("expected value.signature form, got %q", signed)
	}
	if !strings.HasPrefix(signed, "abc.") {
		t.Errorf("expected plain value prefix, got %q", signed)
	}
}

func TestSign_EmptySecret(t *testing.T) {
	if _, err := Sign("abc", ""); err != ErrNoSecret {
		t.Errorf("expected ErrNoSecret, got %v", err)
	}
}

func TestUnsign_WrongSecret(t *testing.T) {
	signed, err := Sign("abc", "secret-one")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := Unsign(signed, "secret-two"); ok {
		t.Error("expected verification to fail with a different secret")
	}
}

func TestUnsign_TamperedValue(t *testing.T) {
	signed, err := Sign("abc", "secret")
	if err != nil {
		t.Fatal(err)
	}
	tampered := "abd" + signed[3:]
	if _, ok := Unsign(tampered, "secret"); ok {
		t.Error("expected verification to fail for a tampered value")
	}
}

func TestUnsign_Malformed(t *testing.T) {
	cases := []string{"", "no-dot-here", ".onlysig", "value."}
	for _, c := range cases {
		if _, ok := Unsign(c, "secret"); ok {
			t.Errorf("expected Unsign(%q) to fail", c)
		}
	}
}

func TestUnsign_ValueContainingDots(t *testing.T) {
	// JWTs contain dots; the signature split must use the last dot.
	v := "eyJhbGciOiJIUzI1NiJ9.eyJpZCI6MX0.sig"
	signed, err := Sign(v, "secret")
	if err != nil {
		t.Fatal(err)
	}
	got, ok := Unsign(signed, "secret")
	if !ok || got != v {
		t.Errorf("expected dotted value to roundtrip, got %q ok=%v", got, ok)
	}
}
