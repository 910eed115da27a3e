package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims identifies a browser session. The subject carries the session id;
// no user data travels in the cookie, only the key into the session store.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenCodec issues and validates the HS256 tokens stored in the session cookie.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &TokenCodec{secret: []byte(strings.TrimSpace(secret)), ttl: ttl, now: time.Now}
}

// Issue signs a token whose subject is the given session id.
func (c *TokenCodec) Issue(sessionID string) (string, error) {
	trimmed := strings.TrimSpace(sessionID)
	if trimmed == "" {
		return "", fmt.Errorf("issue token: empty session id")
	}
	now := c.now()
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   trimmed,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Validate returns the session id carried by token.
func (c *TokenCodec) Validate(token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}
	if len(c.secret) == 0 {
		return "", fmt.Errorf("%w: session secret not configured", ErrInvalidToken)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithLeeway(5*time.Second))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	if exp := claims.ExpiresAt; exp != nil && !exp.Time.After(c.now()) {
		return "", fmt.Errorf("%w: token expired", ErrInvalidToken)
	}
	return claims.Subject, nil
}
