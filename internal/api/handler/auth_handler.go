package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/userhub/identity-service/internal/api/metrics"
	"github.com/userhub/identity-service/internal/core/domain"
	"github.com/userhub/identity-service/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signUpRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=20"`
	Email    string   `json:"email" validate:"required,email,max=50"`
	Password string   `json:"password" validate:"required,min=6"`
	Roles    []string `json:"roles,omitempty"`
}

// signInResponse is the sign-in response surface: the token plus a
// projection of the authenticated identity for client convenience.
type signInResponse struct {
	Token    string   `json:"token"`
	Type     string   `json:"type"`
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// SignIn authenticates a user and returns a bearer token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  signInResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	result, err := h.authService.SignIn(c.Request().Context(), req.Username, req.Password)
	metrics.SignInDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SignInsTotal.WithLabelValues(signInResult(err)).Inc()
		return err
	}
	metrics.SignInsTotal.WithLabelValues(metrics.ResultSuccess).Inc()

	return c.JSON(http.StatusOK, signInResponse{
		Token:    result.Token,
		Type:     result.TokenType,
		ID:       result.User.ID,
		Username: result.User.Username,
		Email:    result.User.Email,
		Roles:    result.User.RoleNames(),
	})
}

// SignUp registers a new user account.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.SignUpsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.SignUp(c.Request().Context(), ports.SignUpInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Roles:    req.Roles,
	})
	if err != nil {
		metrics.SignUpsTotal.WithLabelValues(signUpResult(err)).Inc()
		return err
	}
	metrics.SignUpsTotal.WithLabelValues(metrics.ResultSuccess).Inc()

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

func signInResult(err error) string {
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return metrics.ResultInvalidCredentials
	}
	return metrics.ResultError
}

func signUpResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateUsername), errors.Is(err, domain.ErrDuplicateEmail):
		return metrics.ResultDuplicate
	case errors.Is(err, domain.ErrUnknownRole):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}
