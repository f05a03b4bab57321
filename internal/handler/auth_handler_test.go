package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"threadapi/internal/auth"
	apperrors "threadapi/internal/errors"
	"threadapi/internal/model"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password, confirmPassword string) (*model.User, error) {
	args := m.Called(ctx, username, email, password, confirmPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

type testValidator struct {
	validator *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.validator.Struct(i)
}

func newAuthServer(svc *MockAuthService) *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	h := NewAuthHandler(svc)
	e.POST("/register", h.Register)
	e.POST("/login", h.Login)
	e.GET("/logout", h.Logout)
	return e
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Register", mock.Anything, "alice", "alice@example.com", "pw123", "pw123").
			Return(&model.User{ID: 7, Username: "alice", Email: "alice@example.com"}, nil)

		rec := postJSON(newAuthServer(svc),
			"/register",
			`{"username":"alice","email":"alice@example.com","password":"pw123","confirmPassword":"pw123"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"userId":7`)
		svc.AssertExpectations(t)
	})

	t.Run("missing field", func(t *testing.T) {
		svc := new(MockAuthService)

		rec := postJSON(newAuthServer(svc),
			"/register",
			`{"username":"alice","email":"alice@example.com","password":"pw123"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("password mismatch", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Register", mock.Anything, "alice", "alice@example.com", "pw123", "pw124").
			Return(nil, apperrors.ErrPasswordMismatch)

		rec := postJSON(newAuthServer(svc),
			"/register",
			`{"username":"alice","email":"alice@example.com","password":"pw123","confirmPassword":"pw124"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Register", mock.Anything, "alice", "alice@example.com", "pw123", "pw123").
			Return(nil, apperrors.ErrEmailTaken)

		rec := postJSON(newAuthServer(svc),
			"/register",
			`{"username":"alice","email":"alice@example.com","password":"pw123","confirmPassword":"pw123"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("successful login sets session cookie", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Login", mock.Anything, "alice@example.com", "pw123").
			Return("signed-token", &model.User{ID: 7, Email: "alice@example.com"}, nil)

		rec := postJSON(newAuthServer(svc),
			"/login",
			`{"email":"alice@example.com","password":"pw123"}`)

		assert.Equal(t, http.StatusOK, rec.Code)

		cookies := rec.Result().Cookies()
		var sessionCookie *http.Cookie
		for _, ck := range cookies {
			if ck.Name == auth.TokenCookieName {
				sessionCookie = ck
			}
		}
		assert.NotNil(t, sessionCookie)
		assert.Equal(t, "signed-token", sessionCookie.Value)
		assert.True(t, sessionCookie.HttpOnly)
		svc.AssertExpectations(t)
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Login", mock.Anything, "alice@example.com", "wrong").
			Return("", nil, apperrors.ErrInvalidCredentials)

		rec := postJSON(newAuthServer(svc),
			"/login",
			`{"email":"alice@example.com","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid credentials")
	})

	t.Run("malformed body fails like bad credentials", func(t *testing.T) {
		svc := new(MockAuthService)

		rec := postJSON(newAuthServer(svc), "/login", `{"email":"alice@example.com"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid credentials")
		svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := new(MockAuthService)
	e := newAuthServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: auth.TokenCookieName, Value: "signed-token"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var cleared *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == auth.TokenCookieName {
			cleared = ck
		}
	}
	assert.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Equal(t, -1, cleared.MaxAge)
}
