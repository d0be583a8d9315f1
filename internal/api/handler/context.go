package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/paintcompare/marketplace-api/internal/api/middleware"
	"github.com/paintcompare/marketplace-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Authenticate middleware.
// Its presence proves the auth chain ran; a guarded handler reached without
// one is a wiring bug, reported as unauthenticated rather than a panic.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	identity := middleware.Identity(c)
	if identity == nil {
		return nil, domain.ErrMissingToken
	}
	return identity, nil
}
