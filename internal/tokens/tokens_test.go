package tokens

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndVerifyAccess(t *testing.T) {
	t.Parallel()

	iss := NewIssuer("access-secret", "refresh-secret")

	tok, err := iss.IssueAccess(42)
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}
	userID, err := iss.VerifyAccess(tok)
	if err != nil {
		t.Fatalf("VerifyAccess error: %v", err)
	}
	if userID != 42 {
		t.Fatalf("userID mismatch: got %d want 42", userID)
	}
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	iss := NewIssuer("access-secret", "refresh-secret")

	// sign a token that expired an hour ago
	claims := &Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("access-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = iss.VerifyAccess(tok)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestSecretIsolation(t *testing.T) {
	t.Parallel()

	iss := NewIssuer("access-secret", "refresh-secret")

	refreshTok, err := iss.IssueRefresh(9)
	if err != nil {
		t.Fatalf("IssueRefresh error: %v", err)
	}
	// refresh token against the access secret must be Invalid, not Expired
	if _, err := iss.VerifyAccess(refreshTok); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}

	accessTok, err := iss.IssueAccess(9)
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}
	if _, err := iss.VerifyRefresh(accessTok); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	iss := NewIssuer("a", "b")
	if _, err := iss.VerifyAccess("not.a.jwt"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestNewMailToken(t *testing.T) {
	t.Parallel()

	a, err := NewMailToken(32)
	if err != nil {
		t.Fatalf("NewMailToken error: %v", err)
	}
	b, err := NewMailToken(0) // default size
	if err != nil {
		t.Fatalf("NewMailToken error: %v", err)
	}
	if len(a) != 64 || len(b) != 64 {
		t.Fatalf("unexpected token lengths: %d %d", len(a), len(b))
	}
	if a == b {
		t.Fatal("two mail tokens collided")
	}
}
