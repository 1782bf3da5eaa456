package store

import (
	"context"
	"testing"
)

func TestMemoryStore_Users(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.PutUser(User{ID: 7, Username: "bob"})

	user, err := s.FindUserByID(ctx, 7)
	if err != nil {
		t.Fatalf("FindUserByID: %v", err)
	}
	if user.Username != "bob" {
		t.Errorf("expected bob, got %s", user.Username)
	}

	if _, err := s.FindUserByID(ctx, 8); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_TokenLifecycle(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	tok := &Token{OwnerID: 7, AccessToken: "acc", RefreshToken: "ref"}
	if err := s.InsertToken(ctx, tok); err != nil {
		t.Fatalf("InsertToken: %v", err)
	}
	if s.TokenCount() != 1 {
		t.Fatalf("expected 1 token, got %d", s.TokenCount())
	}

	if err := s.UpdateTokenAccessToken(ctx, tok.ID, "acc2"); err != nil {
		t.Fatalf("UpdateTokenAccessToken: %v", err)
	}
	got, err := s.FindTokenByRefreshToken(ctx, "ref")
	if err != nil {
		t.Fatal(err)
	}
	if got.AccessToken != "acc2" {
		t.Errorf("expected rotated access token, got %s", got.AccessToken)
	}

	if err := s.DeleteTokensByOwner(ctx, 7); err != nil {
		t.Fatal(err)
	}
	if s.TokenCount() != 0 {
		t.Errorf("expected all owner tokens removed, got %d", s.TokenCount())
	}
}
