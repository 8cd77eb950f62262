package auth

import (
	"errors"
	"testing"
	"time"
)

func TestSessionManager(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour)

	t.Run("issue then validate round-trips the username", func(t *testing.T) {
		token, err := m.Issue("alice")
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.Username != "alice" {
			t.Errorf("Username = %q, want %q", claims.Username, "alice")
		}
		if claims.ID == "" {
			t.Error("Expected a token id")
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		expired := NewSessionManager("test-secret", -time.Minute)
		token, err := expired.Issue("alice")
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		_, err = m.Validate(token)
		if !errors.Is(err, ErrInvalidSession) {
			t.Fatalf("Expected ErrInvalidSession, got %v", err)
		}
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other := NewSessionManager("other-secret", time.Hour)
		token, err := other.Issue("alice")
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		_, err = m.Validate(token)
		if !errors.Is(err, ErrInvalidSession) {
			t.Fatalf("Expected ErrInvalidSession, got %v", err)
		}
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := m.Validate("not.a.token")
		if !errors.Is(err, ErrInvalidSession) {
			t.Fatalf("Expected ErrInvalidSession, got %v", err)
		}
	})
}
