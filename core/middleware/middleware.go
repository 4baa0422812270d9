package middleware

import (
	"strings"
	"time"

	"github.com/OmatthewY/explore-with-me/core/constants"
	"github.com/OmatthewY/explore-with-me/core/controller"
	"github.com/OmatthewY/explore-with-me/core/errors"
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/core/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Middleware struct {
	adminSecret string
}

func NewMiddleware(adminSecret string) *Middleware {
	return &Middleware{adminSecret: adminSecret}
}

// AdminAuth requires a bearer token with the admin scope. It lets every
// request through when no secret is configured.
func (m *Middleware) AdminAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.adminSecret == "" {
				return next(c)
			}

			header := c.Request().Header.Get(constants.AuthorizationHeader)
			if header == "" {
				return controller.WriteError(c,
					errors.NewAppError(errors.ErrUnauthorized, "missing authorization header", nil))
			}
			token, found := strings.CutPrefix(header, constants.AuthorizationPrefix)
			if !found {
				return controller.WriteError(c,
					errors.NewAppError(errors.ErrUnauthorized, "invalid authorization header format", nil))
			}

			claims, err := utils.ParseToken(m.adminSecret, token)
			if err != nil {
				return controller.WriteError(c,
					errors.NewAppError(errors.ErrUnauthorized, "invalid or expired token", err))
			}
			if claims.Scope != constants.AdminTokenScope {
				return controller.WriteError(c,
					errors.NewAppError(errors.ErrForbidden, "admin scope required", nil))
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// RequestID tags every request with a uuid unless the caller sent one.
func RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, id string) {
			c.Set(constants.ContextRequestID, id)
		},
	})
}

// RequestLogger logs one line per request.
func RequestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.Round(time.Microsecond).String(),
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				logger.Warn("HTTP:Request", append(fields, "error", v.Error)...)
				return nil
			}
			logger.Info("HTTP:Request", fields...)
			return nil
		},
	})
}
