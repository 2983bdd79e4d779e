package middleware

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"estate/config"
	deliverycontext "estate/internal/delivery/context"
	"estate/internal/domain/access"
	"estate/internal/domain/entity"
	domainerrors "estate/internal/domain/errors"
	"estate/internal/errors"
	"estate/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  string                    `json:"status"`
	Message string                    `json:"message"`
	Errors  []domainerrors.FieldError `json:"errors"`
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewErrorMiddleware(newDiscardLogger()).HandleHTTPError(err, c)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return rec, env
}

func TestHandleHTTPError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
		wantFields  int
	}{
		{
			name:        "validation error keeps field list",
			err:         domainerrors.NewValidationError(domainerrors.FieldError{Field: "email", Message: "is required"}),
			wantCode:    http.StatusBadRequest,
			wantMessage: "Input validation failed",
			wantFields:  1,
		},
		{
			name:        "wrapped app error",
			err:         errors.Wrap(domainerrors.ErrAuthorizationDenied, "listing owned by someone else"),
			wantCode:    http.StatusForbidden,
			wantMessage: domainerrors.ErrAuthorizationDenied.Message(),
		},
		{
			name:        "dependency error hides its cause",
			err:         domainerrors.NewDependencyError(errors.New("connection refused"), "failed to load listing"),
			wantCode:    http.StatusServiceUnavailable,
			wantMessage: domainerrors.ErrDependencyUnavailable.Message(),
		},
		{
			name:        "echo http error",
			err:         echo.NewHTTPError(http.StatusTooManyRequests, "slow down"),
			wantCode:    http.StatusTooManyRequests,
			wantMessage: "slow down",
		},
		{
			name:        "echo not found",
			err:         echo.ErrNotFound,
			wantCode:    http.StatusNotFound,
			wantMessage: "Not Found",
		},
		{
			name:        "unknown error",
			err:         errors.New("boom"),
			wantCode:    http.StatusInternalServerError,
			wantMessage: "Internal server error, please try again later",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := renderError(t, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "error", env.Status)
			assert.Equal(t, tt.wantMessage, env.Message)
			assert.Len(t, env.Errors, tt.wantFields)
			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}

type mockAuthUsecase struct {
	mock.Mock
}

func (m *mockAuthUsecase) Login(context.Context, usecase.LoginInput) (*usecase.LoginOutput, error) {
	panic("not used")
}

func (m *mockAuthUsecase) Logout(context.Context, string) error {
	panic("not used")
}

func (m *mockAuthUsecase) ResolvePrincipal(ctx context.Context, token string) (*access.Principal, error) {
	args := m.Called(ctx, token)
	p, _ := args.Get(0).(*access.Principal)

	return p, args.Error(1)
}

func (m *mockAuthUsecase) ChangePassword(context.Context, *access.Principal, usecase.ChangePasswordInput) error {
	panic("not used")
}

func (m *mockAuthUsecase) Me(context.Context, *access.Principal) (*usecase.MeOutput, error) {
	panic("not used")
}

func TestAuthenticate(t *testing.T) {
	principal := &access.Principal{ID: uuid.New(), Role: entity.RoleSeller}

	tests := []struct {
		name      string
		header    string
		setup     func(m *mockAuthUsecase)
		wantErr   error
		wantCalls bool
	}{
		{
			name:    "missing header",
			wantErr: domainerrors.ErrAuthenticationRequired,
		},
		{
			name:    "wrong scheme",
			header:  "Basic dXNlcjpwYXNz",
			wantErr: domainerrors.ErrAuthenticationRequired,
		},
		{
			name:    "empty token",
			header:  "Bearer   ",
			wantErr: domainerrors.ErrAuthenticationRequired,
		},
		{
			name:   "rejected token",
			header: "Bearer bad",
			setup: func(m *mockAuthUsecase) {
				m.On("ResolvePrincipal", mock.Anything, "bad").Return(nil, domainerrors.ErrInvalidToken)
			},
			wantErr: domainerrors.ErrInvalidToken,
		},
		{
			name:   "valid token with lowercase scheme",
			header: "bearer good",
			setup: func(m *mockAuthUsecase) {
				m.On("ResolvePrincipal", mock.Anything, "good").Return(principal, nil)
			},
			wantCalls: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authUC := &mockAuthUsecase{}
			if tt.setup != nil {
				tt.setup(authUC)
			}

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			called := false
			next := func(c echo.Context) error {
				called = true
				assert.Equal(t, principal, deliverycontext.GetPrincipal(c))
				assert.Equal(t, "good", deliverycontext.GetToken(c))

				return nil
			}

			err := NewAuthMiddleware(authUC).Authenticate(next)(c)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, called)
			authUC.AssertExpectations(t)
		})
	}
}

func TestLoginRateLimiter(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{LoginRateLimit: 0.001, LoginRateBurst: 1}}
	limiter := NewLoginRateLimiter(cfg)

	e := echo.New()
	handler := limiter(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	serve := func(remoteAddr string) error {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = remoteAddr

		return handler(e.NewContext(req, httptest.NewRecorder()))
	}

	require.NoError(t, serve("10.0.0.1:1000"))

	err := serve("10.0.0.1:1001")
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.Code)

	assert.NoError(t, serve("10.0.0.2:1000"), "limits are tracked per client")
}
