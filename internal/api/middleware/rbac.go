package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/paintcompare/marketplace-api/internal/api/metrics"
	"github.com/paintcompare/marketplace-api/internal/core/auth"
	"github.com/paintcompare/marketplace-api/internal/core/domain"
)

// RequireRoles enforces role-based access control via the guard. An empty
// role set admits any authenticated identity. Must run after Authenticate.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := auth.Authorize(Identity(c), roles...); err != nil {
				if err == domain.ErrForbidden {
					metrics.AuthDeniedTotal.WithLabelValues("forbidden").Inc()
				}
				return err
			}
			return next(c)
		}
	}
}
