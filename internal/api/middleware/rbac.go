package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/userhub/identity-service/internal/core/domain"
	"github.com/userhub/identity-service/internal/core/ports"
)

// claimsFrom pulls the verified claims injected by Auth. Nil when the route
// was not wrapped by Auth or the assertion fails.
func claimsFrom(c echo.Context) *domain.TokenClaims {
	claims, _ := c.Get(ClaimsKey).(*domain.TokenClaims)
	return claims
}

// RequireAnyRole allows the request only when the caller's claims carry at
// least one of the given roles.
func RequireAnyRole(evaluator ports.AccessEvaluator, roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := claimsFrom(c)
			if claims == nil {
				return domain.ErrUnauthenticated
			}
			if !evaluator.HasAnyRole(claims, roles...) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// RequireAdminOrOwner allows admins through unconditionally and other
// callers only when they own the user record addressed by the :id route
// parameter.
func RequireAdminOrOwner(evaluator ports.AccessEvaluator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := evaluator.CanAccessUser(c.Request().Context(), claimsFrom(c), c.Param("id")); err != nil {
				return err
			}
			return next(c)
		}
	}
}
