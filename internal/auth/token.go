// Package auth issues the short-lived bearer tokens that authenticate this
// service's calls to the persistence API.
package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v4"
)

const (
	// DefaultValidity matches what the persistence API expects.
	DefaultValidity = 8640 * time.Second
	// clockSkewGrace backdates iat/nbf so a verifier whose clock runs
	// slightly behind ours still accepts a fresh token.
	clockSkewGrace = 60 * time.Second
)

var (
	ErrMissingSecret  = errors.New("auth: JWT_SECRET_KEY is not set")
	ErrTokenIntegrity = errors.New("auth: issued token failed self-verification")
)

// Claims is the fixed service identity embedded in every token. The service
// authenticates as itself, not as the end customer.
type Claims struct {
	UserID     int    `json:"user_id"`
	BusinessID int    `json:"business_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs HS256 bearer tokens and keeps a single cached token alive for
// most of its validity window.
type Issuer struct {
	secret []byte
	now    func() time.Time

	mu     sync.Mutex
	cached string
	expiry time.Time
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret), now: time.Now}
}

// Issue signs a fresh token valid for the given duration, then decodes its
// own output as a sanity check: a misconfigured algorithm or secret should
// fail here, not at call time against the verifier.
func (i *Issuer) Issue(validity time.Duration) (string, error) {
	if len(i.secret) == 0 {
		return "", ErrMissingSecret
	}

	// Whole seconds: NumericDate encodes unix seconds, and the self-check
	// below compares round-tripped timestamps.
	now := i.now().Truncate(time.Second)
	iat := now.Add(-clockSkewGrace)
	claims := Claims{
		UserID:     999,
		BusinessID: 999,
		Role:       "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "order-intake",
			IssuedAt:  jwt.NewNumericDate(iat),
			NotBefore: jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}

	// Expiry is deliberately not validated: the check is about the
	// signature and claim round-trip, not freshness.
	var decoded Claims
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, err := parser.ParseWithClaims(token, &decoded, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	}); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenIntegrity, err)
	}
	if decoded.Role != claims.Role || decoded.UserID != claims.UserID ||
		!decoded.ExpiresAt.Time.Equal(claims.ExpiresAt.Time) {
		return "", fmt.Errorf("%w: decoded claims disagree with encoded claims", ErrTokenIntegrity)
	}

	return token, nil
}

// Bearer returns a token suitable for an outbound call, reusing the cached
// one until it comes within a minute of expiry.
func (i *Issuer) Bearer() (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.cached != "" && i.now().Add(time.Minute).Before(i.expiry) {
		return i.cached, nil
	}
	token, err := i.Issue(DefaultValidity)
	if err != nil {
		return "", err
	}
	i.cached = token
	i.expiry = i.now().Add(DefaultValidity)
	return token, nil
}
