package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/paintcompare/marketplace-api/internal/core/domain"
)

const (
	// DefaultTokenTTL bounds a session token's lifetime. There is no
	// server-side revocation; expiry is the only way a token dies.
	DefaultTokenTTL = 7 * 24 * time.Hour

	// Issuer and Audience are checked on every verification so tokens minted
	// for another deployment of the same codebase do not validate here.
	Issuer   = "paintcompare"
	Audience = "paintcompare:web"
)

// Claims are the identity facts embedded in a session token.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies signed session tokens. It is immutable
// after construction and safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a TokenService. The secret is provisioned via
// configuration and validated at startup; an empty secret here is a
// programming error, so it panics rather than minting unverifiable tokens.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if secret == "" {
		panic("auth: token service constructed without a signing secret")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the configured token lifetime, also used as the session cookie
// max-age.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue mints a signed token for the given user. ExpiresAt is always
// IssuedAt + TTL.
func (s *TokenService) Issue(userID, email, role string) (string, error) {
	now := s.now().UTC()
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates signature, signing method, issuer, audience and expiry,
// and decodes the claims. Absent input yields ErrMissingToken; every other
// failure collapses into ErrInvalidToken so the boundary never has to guess
// which parse error is safe to show.
func (s *TokenService) Verify(raw string) (*Claims, error) {
	if raw == "" {
		return nil, domain.ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return s.secret, nil
		},
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: empty subject", domain.ErrInvalidToken)
	}
	return claims, nil
}
