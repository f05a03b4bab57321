package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"threadapi/internal/auth"
	"threadapi/internal/handler"
	"threadapi/internal/repository"
)

// Register wires routes and middleware. Every route except registration,
// login, logout, and the root/health/docs endpoints sits behind the
// authorization gate.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Hello Thread API!"})
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	// Gated routes: verified session cookie, then live user resolution.
	secured := e.Group("", auth.TokenMiddleware(jwtService), auth.ResolveUser(userRepo))

	secured.GET("/users", userHandler.ListUsers)
	secured.GET("/user/:id", userHandler.GetUser)
	secured.GET("/user/:userId/posts", postHandler.ListPostsByUser)

	secured.GET("/posts", postHandler.ListPosts)
	secured.POST("/posts", postHandler.CreatePost)
	secured.DELETE("/posts/:id", postHandler.DeletePost)

	// POST kept for the comment listing to match the documented behavior of
	// the original surface; the operation reads, it does not write.
	secured.POST("/post/:postId/comments", commentHandler.ListForPost)
	secured.POST("/comments", commentHandler.CreateComment)
	secured.GET("/comment/:id", commentHandler.GetComment)
	secured.DELETE("/comment/:id", commentHandler.DeleteComment)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
