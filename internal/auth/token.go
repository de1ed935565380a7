package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired indicates a well-signed token past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid indicates a token that fails signature or structural
	// checks: tampered, signed with a different secret, or malformed.
	ErrTokenInvalid = errors.New("token invalid")
)

// Codec signs and verifies stateless bearer tokens. A token carries only the
// subject user id and an expiry; validity is a pure function of signature and
// clock at verification time.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue mints a token for the given user id with the configured TTL.
func (c *Codec) Issue(userID int64) (string, error) {
	return c.IssueWithTTL(userID, c.ttl)
}

// IssueWithTTL mints a token with an explicit TTL. Handlers always use Issue;
// this exists so tests can mint already-expired tokens.
func (c *Codec) IssueWithTTL(userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature integrity, then expiry, and returns the subject
// user id. Failures map to ErrTokenExpired or ErrTokenInvalid.
func (c *Codec) Verify(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		// signature integrity outranks expiry: a tampered token is invalid
		// even when it is also past its expiry
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return 0, ErrTokenInvalid
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}
	if !token.Valid {
		return 0, ErrTokenInvalid
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrTokenInvalid
	}
	return userID, nil
}
