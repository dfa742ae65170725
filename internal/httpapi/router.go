// Package httpapi exposes the account service over HTTP. It owns request
// parsing and validation, bearer-token authentication, and the mapping of
// domain errors to status codes; all account semantics live below it.
package httpapi

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/accountd/internal/auth"
	"github.com/dmitrijs2005/accountd/internal/avatars"
	"github.com/dmitrijs2005/accountd/internal/common"
	"github.com/dmitrijs2005/accountd/internal/logging"
	"github.com/dmitrijs2005/accountd/internal/users"
)

// statusByError maps domain sentinels to HTTP status codes. Anything not
// listed is an internal error.
var statusByError = map[error]int{
	common.ErrUserNotFound:            fiber.StatusNotFound,
	common.ErrUserAlreadyExists:       fiber.StatusBadRequest,
	common.ErrUserAlreadyActivated:    fiber.StatusBadRequest,
	common.ErrUserNotActivated:        fiber.StatusBadRequest,
	common.ErrInvalidPassword:         fiber.StatusBadRequest,
	common.ErrInvalidConfirmationCode: fiber.StatusBadRequest,
	common.ErrValidation:              fiber.StatusBadRequest,
	common.ErrorNotFound:              fiber.StatusNotFound,
	common.ErrInvalidToken:            fiber.StatusUnauthorized,
}

func errorHandler(logger logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"detail": fiberErr.Message})
		}

		for sentinel, code := range statusByError {
			if errors.Is(err, sentinel) {
				return c.Status(code).JSON(fiber.Map{"detail": sentinel.Error()})
			}
		}

		logger.Error(c.UserContext(), "unhandled request error", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "internal server error"})
	}
}

func requestLogger(logger logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info(c.UserContext(), "request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start).String(),
		)
		return err
	}
}

// Router bundles the handlers of the public API.
type Router struct {
	accounts *users.Service
	avatars  *avatars.Service
	tokens   *auth.TokenService
	logger   logging.Logger
}

func NewRouter(accounts *users.Service, avatarSvc *avatars.Service, tokens *auth.TokenService, logger logging.Logger) *Router {
	return &Router{
		accounts: accounts,
		avatars:  avatarSvc,
		tokens:   tokens,
		logger:   logger.With("module", "httpapi"),
	}
}

// App builds the fiber application with all routes registered.
func (r *Router) App() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          errorHandler(r.logger),
		BodyLimit:             avatars.MaxSize + 1<<20,
		DisableStartupMessage: true,
	})

	app.Use(requestLogger(r.logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/login", r.login)
	authGroup.Post("/token_refresh", r.tokenRefresh)

	usersGroup := v1.Group("/users")
	usersGroup.Post("/signup", r.signup)
	usersGroup.Get("/me", r.requireAccessToken, r.me)
	usersGroup.Patch("/me", r.requireAccessToken, r.updateMe)
	usersGroup.Post("/resend_activation", r.resendActivation)
	usersGroup.Post("/activation", r.activation)
	usersGroup.Post("/reset_password_request", r.resetPasswordRequest)
	usersGroup.Post("/reset_password", r.resetPassword)

	avatarsGroup := v1.Group("/avatars")
	avatarsGroup.Post("", r.requireAccessToken, r.setAvatar)
	avatarsGroup.Get("", r.requireAccessToken, r.avatarURL)

	return app
}
