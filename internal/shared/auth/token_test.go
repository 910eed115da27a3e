package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndValidateRoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	token, err := codec.Issue("sess-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	sid, err := codec.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if sid != "sess-123" {
		t.Fatalf("unexpected session id: %s", sid)
	}
}

func TestValidateRejectsEmptyToken(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)
	if _, err := codec.Validate(""); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	issuer := NewTokenCodec("secret-a", time.Hour)
	verifier := NewTokenCodec("secret-b", time.Hour)

	token, err := issuer.Issue("sess-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)
	codec.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := codec.Issue("sess-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	codec.now = time.Now
	if _, err := codec.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestIssueRejectsEmptySessionID(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)
	if _, err := codec.Issue(" "); err == nil {
		t.Fatal("expected error for empty session id")
	}
}
