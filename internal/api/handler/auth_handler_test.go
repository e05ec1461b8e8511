package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/userhub/identity-service/internal/core/domain"
	"github.com/userhub/identity-service/internal/core/ports"
)

type stubAuthService struct {
	signInFn func(ctx context.Context, username, password string) (*ports.SignInResult, error)
	signUpFn func(ctx context.Context, input ports.SignUpInput) (*domain.User, error)
}

func (s *stubAuthService) SignIn(ctx context.Context, username, password string) (*ports.SignInResult, error) {
	return s.signInFn(ctx, username, password)
}

func (s *stubAuthService) SignUp(ctx context.Context, input ports.SignUpInput) (*domain.User, error) {
	return s.signUpFn(ctx, input)
}

func newHandlerContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder, *echo.Echo) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec, e
}

func TestAuthHandler_SignIn_Success(t *testing.T) {
	stub := &stubAuthService{
		signInFn: func(ctx context.Context, username, password string) (*ports.SignInResult, error) {
			if username != "alice" || password != "Secret1!" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &ports.SignInResult{
				Token:     "token-123",
				TokenType: "Bearer",
				User: &domain.User{
					ID:       "5",
					Username: "alice",
					Email:    "a@x.com",
					Roles:    []domain.Role{domain.RoleUser},
				},
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec, _ := newHandlerContext(t, http.MethodPost, "/api/auth/signin", `{"username":"alice","password":"Secret1!"}`)
	if err := handler.SignIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token-123" || resp["type"] != "Bearer" {
		t.Fatalf("unexpected token payload: %+v", resp)
	}
	if resp["id"] != "5" || resp["username"] != "alice" || resp["email"] != "a@x.com" {
		t.Fatalf("unexpected identity projection: %+v", resp)
	}
	roles, _ := resp["roles"].([]any)
	if len(roles) != 1 || roles[0] != "ROLE_USER" {
		t.Fatalf("unexpected roles: %v", resp["roles"])
	}
}

func TestAuthHandler_SignIn_MissingFields(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		signInFn: func(context.Context, string, string) (*ports.SignInResult, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	})

	c, rec, e := newHandlerContext(t, http.MethodPost, "/api/auth/signin", `{"username":"alice"}`)
	if err := handler.SignIn(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_SignUp_Success(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, input ports.SignUpInput) (*domain.User, error) {
			if input.Username != "alice" || input.Email != "a@x.com" {
				t.Fatalf("unexpected input: %+v", input)
			}
			if input.Password == "" {
				t.Fatalf("password not forwarded")
			}
			return &domain.User{
				ID:       "5",
				Username: input.Username,
				Email:    input.Email,
				Roles:    []domain.Role{domain.RoleUser},
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec, _ := newHandlerContext(t, http.MethodPost, "/api/auth/signup",
		`{"username":"alice","email":"a@x.com","password":"Secret1!"}`)
	if err := handler.SignUp(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, leaked := resp["password"]; leaked {
		t.Fatalf("password echoed back in response")
	}
	if resp["username"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_SignUp_UsernameTooShort(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		signUpFn: func(context.Context, ports.SignUpInput) (*domain.User, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	})

	c, rec, e := newHandlerContext(t, http.MethodPost, "/api/auth/signup",
		`{"username":"al","email":"a@x.com","password":"Secret1!"}`)
	if err := handler.SignUp(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_SignUp_ForwardsDomainErrors(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		signUpFn: func(context.Context, ports.SignUpInput) (*domain.User, error) {
			return nil, domain.ErrDuplicateUsername
		},
	})

	c, _, _ := newHandlerContext(t, http.MethodPost, "/api/auth/signup",
		`{"username":"alice","email":"a@x.com","password":"Secret1!"}`)

	err := handler.SignUp(c)
	if err != domain.ErrDuplicateUsername {
		t.Fatalf("expected ErrDuplicateUsername to propagate, got %v", err)
	}
}
