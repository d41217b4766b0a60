package server

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	httpHandlers "github.com/jobtasks/dashboard/internal/adapters/http"
	"github.com/jobtasks/dashboard/internal/infrastructure/config"
	"github.com/jobtasks/dashboard/internal/infrastructure/metrics"
)

// requireConfigured answers 503 while the database or the JWT secret is
// missing, naming what is missing.
func (s *Server) requireConfigured() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			missing := s.config.Readiness()
			if len(missing) == 0 && s.deps.States != nil && s.deps.Tokens != nil {
				return next(c)
			}
			names := make([]string, 0, len(missing))
			for name := range missing {
				names = append(names, name)
			}
			sort.Strings(names)
			return c.JSON(http.StatusServiceUnavailable, httpHandlers.ErrorResponse{
				Error:   config.ErrNotConfigured.Error(),
				Details: names,
			})
		}
	}
}

// authMiddleware validates JWT tokens
func (s *Server) authMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			claims, err := s.deps.Tokens.Validate(tokenString)
			if err != nil {
				s.logger.AuthRejected("invalid_token", c.RealIP(), c.Request().URL.Path, err)
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(httpHandlers.UserContextKey, claims.Subject)
			c.Set("user_email", claims.Email)
			return next(c)
		}
	}
}

func (s *Server) metricsMiddleware(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status, _ = httpHandlers.ErrorStatus(err)
			}
			m.ObserveRequest(c.Request().Method, c.Path(), strconv.Itoa(status), time.Since(start).Seconds())
			return err
		}
	}
}
