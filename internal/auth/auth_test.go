package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmynk/splitledger/internal/storage/memory"
)

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	a := NewPasswordAuthenticator(memory.New())

	user, err := a.Register(ctx, "  Alice@Example.com ", "Alice", "correct-horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Email = %q, want lower-cased", user.Email)
	}
	if user.PasswordHash == "correct-horse" {
		t.Error("password stored in plain text")
	}

	tests := []struct {
		name, email, displayName, password string
		want                               error
	}{
		{"duplicate email", "alice@example.com", "Alice", "another-pass", ErrEmailExists},
		{"weak password", "bob@example.com", "Bob", "short", ErrWeakPassword},
		{"bad email", "not-an-email", "Bob", "long-enough", ErrInvalidEmail},
		{"missing name", "bob@example.com", " ", "long-enough", ErrMissingName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Register(ctx, tt.email, tt.displayName, tt.password)
			if !errors.Is(err, tt.want) {
				t.Errorf("Register() error = %v, want %v", err, tt.want)
			}
		})
	}

	got, err := a.Authenticate(ctx, "ALICE@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Authenticate returned %s, want %s", got.ID, user.ID)
	}

	if _, err := a.Authenticate(ctx, "alice@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := a.Authenticate(ctx, "nobody@example.com", "whatever1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestJWTManager(t *testing.T) {
	ctx := context.Background()
	a := NewPasswordAuthenticator(memory.New())
	user, err := a.Register(ctx, "carol@example.com", "Carol", "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	m := NewJWTManager("test-secret", time.Hour)
	token, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email || claims.DisplayName != "Carol" {
		t.Errorf("claims = %+v", claims)
	}

	other := NewJWTManager("other-secret", time.Hour)
	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate with wrong secret error = %v, want ErrInvalidToken", err)
	}

	expired := NewJWTManager("test-secret", -time.Minute)
	stale, err := expired.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := m.Validate(stale); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate expired error = %v, want ErrInvalidToken", err)
	}
}
