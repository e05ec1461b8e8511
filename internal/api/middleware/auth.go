package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/userhub/identity-service/internal/api/metrics"
	"github.com/userhub/identity-service/internal/core/domain"
	"github.com/userhub/identity-service/internal/core/ports"
)

// ClaimsKey is the echo context key under which verified token claims are
// stored for downstream handlers.
const ClaimsKey = "claims"

// Auth verifies the bearer token and injects the decoded claims into the
// request context. Every verification failure (missing header, bad
// signature, expiry, garbage) collapses to the same 401 so callers learn
// nothing about why a token was rejected; the specific reason is only
// visible in metrics.
func Auth(tokens ports.TokenProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			metrics.TokenVerificationsTotal.WithLabelValues(metrics.ResultSuccess).Inc()

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

func verifyResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return metrics.ResultExpired
	case errors.Is(err, domain.ErrTokenInvalidSignature):
		return metrics.ResultBadSignature
	default:
		return metrics.ResultMalformed
	}
}
