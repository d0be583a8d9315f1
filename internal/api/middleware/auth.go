package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paintcompare/marketplace-api/internal/api/metrics"
	"github.com/paintcompare/marketplace-api/internal/core/auth"
	"github.com/paintcompare/marketplace-api/internal/core/domain"
)

// identityKey is where Authenticate stores the resolved identity in the echo
// context.
const identityKey = "identity"

// Authenticate runs the extract → verify → resolve chain and injects the
// resulting Identity into the request context. Denials are returned as domain
// errors; the central error handler maps them to HTTP.
func Authenticate(tokens *auth.TokenService, resolver *auth.Resolver, mode auth.Mode) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := ExtractToken(c.Request())
			if !ok {
				metrics.AuthDeniedTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrMissingToken
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				metrics.AuthDeniedTotal.WithLabelValues("invalid_token").Inc()
				return err
			}

			identity, err := resolver.Resolve(c.Request().Context(), claims, mode)
			if err != nil {
				metrics.AuthDeniedTotal.WithLabelValues("unresolved_identity").Inc()
				// A token whose subject vanished is an auth failure here,
				// not a lookup miss: 404 is reserved for resource routes.
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "account no longer exists")
				}
				return err
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// Identity returns the identity stored by Authenticate, or nil when the
// request is unauthenticated.
func Identity(c echo.Context) *domain.Identity {
	identity, _ := c.Get(identityKey).(*domain.Identity)
	return identity
}

// SetIdentity stores an identity the way Authenticate does. Exposed so
// handler tests can exercise guarded routes without minting tokens.
func SetIdentity(c echo.Context, identity *domain.Identity) {
	c.Set(identityKey, identity)
}
