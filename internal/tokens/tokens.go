package tokens

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTTL  = time.Hour
	RefreshTTL = 7 * 24 * time.Hour
)

var (
	// ErrExpired means the signature checked out but the token is past its
	// expiry. The client may attempt a silent refresh on this one.
	ErrExpired = errors.New("token expired")
	// ErrInvalid covers bad signatures and malformed tokens. No retry.
	ErrInvalid = errors.New("token invalid")
)

type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies the two token kinds with distinct secrets, so a
// leaked access secret cannot forge refresh tokens and vice versa.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
}

func NewIssuer(accessSecret, refreshSecret string) *Issuer {
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}
}

func (i *Issuer) IssueAccess(userID int) (string, error) {
	return i.sign(userID, AccessTTL, i.accessSecret)
}

func (i *Issuer) IssueRefresh(userID int) (string, error) {
	return i.sign(userID, RefreshTTL, i.refreshSecret)
}

func (i *Issuer) sign(userID int, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyAccess checks signature and expiry against the access secret.
func (i *Issuer) VerifyAccess(token string) (int, error) {
	return verify(token, i.accessSecret)
}

// VerifyRefresh checks signature and expiry against the refresh secret.
func (i *Issuer) VerifyRefresh(token string) (int, error) {
	return verify(token, i.refreshSecret)
}

func verify(tokenStr string, secret []byte) (int, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		// HMAC only, reject anything else outright
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpired
		}
		return 0, ErrInvalid
	}
	if !token.Valid {
		return 0, ErrInvalid
	}
	if claims.ExpiresAt == nil {
		return 0, ErrInvalid
	}
	return claims.UserID, nil
}

// NewMailToken returns an opaque random token for email verification and
// password reset links.
func NewMailToken(nBytes int) (string, error) {
	if nBytes <= 0 {
		nBytes = 32
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
