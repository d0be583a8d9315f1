package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/paintcompare/marketplace-api/internal/api"
	"github.com/paintcompare/marketplace-api/internal/api/handler"
	"github.com/paintcompare/marketplace-api/internal/api/middleware"
	"github.com/paintcompare/marketplace-api/internal/core/domain"
)

// newTestEcho mirrors the router setup: same validator, same error mapping.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

// asIdentity stands in for the Authenticate middleware on guarded routes.
func asIdentity(identity *domain.Identity) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			middleware.SetIdentity(c, identity)
			return next(c)
		}
	}
}

func jsonReq(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func supplierIdentity() *domain.Identity {
	return &domain.Identity{UserID: "sup-1", Email: "paints@example.com", Role: domain.RoleSupplier}
}

func customerIdentity() *domain.Identity {
	return &domain.Identity{UserID: "cust-1", Email: "buyer@example.com", Role: domain.RoleCustomer}
}
