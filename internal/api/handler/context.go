package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/userhub/identity-service/internal/api/middleware"
	"github.com/userhub/identity-service/internal/core/domain"
)

// ctxClaims extracts the claims injected by the Auth middleware. Callers
// treat a nil result as an unauthenticated request; the access evaluator
// fails closed on nil claims anyway.
func ctxClaims(c echo.Context) (*domain.TokenClaims, error) {
	claims, _ := c.Get(middleware.ClaimsKey).(*domain.TokenClaims)
	if claims == nil {
		return nil, domain.ErrUnauthenticated
	}
	return claims, nil
}
