package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/paintcompare/marketplace-api/internal/core/domain"
)

// signedWith signs claims with the service's own secret after applying a
// mutation, for crafting structurally valid but unacceptable tokens.
func signedWith(t *testing.T, svc *TokenService, mutate func(*Claims)) string {
	t.Helper()
	now := time.Now().UTC()
	claims := &Claims{
		Email: "a@x.com",
		Role:  domain.RoleCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user_1",
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	mutate(claims)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	return NewTokenService("0123456789abcdef0123456789abcdef", DefaultTokenTTL)
}

func TestTokenService_IssueVerify(t *testing.T) {
	svc := newTestTokenService(t)

	signed, err := svc.Issue("user_1", "a@x.com", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.Subject != "user_1" || claims.Email != "a@x.com" || claims.Role != domain.RoleCustomer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != Issuer {
		t.Fatalf("unexpected issuer: %s", claims.Issuer)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		t.Fatalf("expiresAt not after issuedAt")
	}
	if got, want := claims.ExpiresAt.Sub(claims.IssuedAt.Time), DefaultTokenTTL; got != want {
		t.Fatalf("ttl = %v, want %v", got, want)
	}
}

func TestTokenService_Verify_Missing(t *testing.T) {
	svc := newTestTokenService(t)
	if _, err := svc.Verify(""); !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	svc := newTestTokenService(t)

	issuedAt := time.Now().Add(-DefaultTokenTTL - time.Hour)
	svc.now = func() time.Time { return issuedAt }
	signed, err := svc.Issue("user_1", "a@x.com", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// One second past expiry.
	svc.now = func() time.Time { return issuedAt.Add(DefaultTokenTTL + time.Second) }
	if _, err := svc.Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	svc := newTestTokenService(t)
	other := NewTokenService("ffffffffffffffffffffffffffffffff", DefaultTokenTTL)

	signed, err := other.Issue("user_1", "a@x.com", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := svc.Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Verify_Tampered(t *testing.T) {
	svc := newTestTokenService(t)

	signed, err := svc.Issue("user_1", "a@x.com", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("expected compact JWS, got %d segments", len(parts))
	}

	flip := func(seg string) string {
		b := []byte(seg)
		if b[0] == 'A' {
			b[0] = 'B'
		} else {
			b[0] = 'A'
		}
		return string(b)
	}

	tamperedPayload := parts[0] + "." + flip(parts[1]) + "." + parts[2]
	if _, err := svc.Verify(tamperedPayload); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered payload, got %v", err)
	}

	tamperedSig := parts[0] + "." + parts[1] + "." + flip(parts[2])
	if _, err := svc.Verify(tamperedSig); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered signature, got %v", err)
	}
}

func TestTokenService_Verify_WrongIssuerAudience(t *testing.T) {
	svc := newTestTokenService(t)

	for _, raw := range []string{
		signedWith(t, svc, func(c *Claims) { c.Issuer = "someone-else" }),
		signedWith(t, svc, func(c *Claims) { c.Audience = nil }),
	} {
		if _, err := svc.Verify(raw); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	}
}
