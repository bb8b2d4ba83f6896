package devserver

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// Tokens issues and verifies HS256 JWTs.
type Tokens struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokens returns a Tokens signing with key; issued tokens live for ttl.
func NewTokens(key string, ttl time.Duration) *Tokens {
	return &Tokens{key: []byte(key), ttl: ttl, now: time.Now}
}

// Issue signs a token for subject. A zero ttl uses the default lifetime.
func (t *Tokens) Issue(subject, role string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = t.ttl
	}
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": t.now().Add(ttl).Unix(),
	}
	if role != "" {
		claims["role"] = role
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
}

// Subject verifies tokenStr and returns its sub claim.
func (t *Tokens) Subject(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.key, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrInvalidKey
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}
