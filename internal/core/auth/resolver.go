package auth

import (
	"context"
	"time"

	"github.com/paintcompare/marketplace-api/internal/core/domain"
	"github.com/paintcompare/marketplace-api/internal/core/ports"
)

// Mode selects how much the resolver trusts embedded claims.
type Mode int

const (
	// ModeStateless trusts verified claims as-is. Fast, but stale relative
	// to role or account changes made after the token was issued. Use for
	// low-risk reads only.
	ModeStateless Mode = iota
	// ModeAuthoritative re-fetches the credential record, rejecting missing
	// or deactivated accounts and picking up role changes immediately.
	// Required for privileged and mutating operations.
	ModeAuthoritative
)

// Resolver turns verified claims into a trustworthy Identity.
type Resolver struct {
	store ports.CredentialStore
	now   func() time.Time
}

func NewResolver(store ports.CredentialStore) *Resolver {
	return &Resolver{store: store, now: time.Now}
}

// Resolve builds the per-request Identity from claims according to mode.
func (r *Resolver) Resolve(ctx context.Context, claims *Claims, mode Mode) (*domain.Identity, error) {
	if claims == nil {
		return nil, domain.ErrInvalidToken
	}
	if mode == ModeStateless {
		return &domain.Identity{
			UserID:     claims.Subject,
			Email:      claims.Email,
			Role:       claims.Role,
			ResolvedAt: r.now().UTC(),
		}, nil
	}

	user, err := r.store.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveAccount
	}

	// The store is the source of truth here: a role change after issuance
	// takes effect without waiting for the token to expire.
	return &domain.Identity{
		UserID:     user.ID,
		Email:      user.Email,
		Role:       user.Role,
		ResolvedAt: r.now().UTC(),
	}, nil
}
