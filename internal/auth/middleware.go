package auth

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "threadapi/internal/errors"
	"threadapi/internal/model"
	"threadapi/internal/repository"
)

// ContextUserKey is the echo context key holding the authenticated *model.User.
const ContextUserKey = "auth_user"

// gate context key used by echo-jwt for the verified user ID.
const contextUserIDKey = "auth_user_id"

// unauthorized is the uniform 401 returned for every gate failure: no cookie,
// malformed token, bad signature, expired token, or a user deleted after the
// token was issued. The response never says which.
func unauthorized() error {
	return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
		Error: apperrors.ErrInvalidToken.Error(),
		Code:  "UNAUTHORIZED",
	})
}

// TokenMiddleware returns the first half of the authorization gate: it reads
// the session cookie and verifies the token, storing the user ID on the
// context. Any failure short-circuits with 401.
func TokenMiddleware(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  contextUserIDKey,
		TokenLookup: "cookie:" + TokenCookieName,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			userID, err := jwtService.Verify(tokenString)
			if err != nil {
				return nil, err
			}
			return userID, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return unauthorized()
		},
	})
}

// ResolveUser returns the second half of the gate: it resolves the verified
// user ID to a live User record and attaches it to the context. A user that
// no longer exists rejects with the same 401 as a bad token.
func ResolveUser(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get(contextUserIDKey).(uint)
			if !ok {
				return unauthorized()
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return unauthorized()
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user attached by the gate.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(ContextUserKey).(*model.User)
	return user, ok
}
