package server

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/jobtasks/dashboard/docs"
	"github.com/jobtasks/dashboard/internal/adapters/auth"
	httpHandlers "github.com/jobtasks/dashboard/internal/adapters/http"
	"github.com/jobtasks/dashboard/internal/infrastructure/config"
	"github.com/jobtasks/dashboard/internal/infrastructure/logger"
	"github.com/jobtasks/dashboard/internal/infrastructure/metrics"
	"github.com/jobtasks/dashboard/internal/ports"
)

// Dependencies are the collaborators the routes are served by. States and
// Tokens may be nil when the database or the JWT secret is not configured;
// the API then answers 503.
type Dependencies struct {
	States   httpHandlers.StateProvider
	Tokens   *auth.TokenService
	Calendar ports.CalendarSource
	Metrics  *metrics.Metrics
	// HealthCheck pings the backing store; nil skips the check.
	HealthCheck func(ctx context.Context) error
	// DatabaseStats reports connection pool figures on /ready; optional.
	DatabaseStats func() map[string]interface{}
}

// Server represents the HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
	deps   Dependencies
}

// New creates a new server instance
func New(cfg *config.Config, deps Dependencies, appLogger *logger.Logger) *Server {
	e := echo.New()
	e.Validator = httpHandlers.NewValidator()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	s := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		deps:   deps,
	}

	s.setupMiddleware()
	if cfg.Metrics.Enabled && deps.Metrics != nil {
		s.setupMetrics()
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"user_agent", values.UserAgent,
				"request_id", values.RequestID,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}
			return nil
		},
	}))

	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
			echo.HeaderAuthorization, httpHandlers.CalendarTokenHeader,
		},
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		ExposeHeaders: []string{echo.HeaderContentDisposition},
	}))

	if limit := s.config.Security.RateLimitRequests; limit > 0 {
		s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(
				middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(limit), Burst: limit, ExpiresIn: s.config.Security.RateLimitWindow},
			),
			IdentifierExtractor: func(ctx echo.Context) (string, error) {
				return ctx.RealIP(), nil
			},
			ErrorHandler: func(context echo.Context, err error) error {
				return context.JSON(http.StatusForbidden, httpHandlers.ErrorResponse{Error: "rate limit exceeded"})
			},
			DenyHandler: func(context echo.Context, identifier string, err error) error {
				return context.JSON(http.StatusTooManyRequests, httpHandlers.ErrorResponse{Error: "rate limit exceeded"})
			},
		}))
	}

	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}))

	s.echo.Use(middleware.RequestID())

	if timeout := s.config.Server.RequestTimeout; timeout > 0 {
		s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
			Timeout: timeout,
		}))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readinessCheck)
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := s.echo.Group("/api/v1", s.requireConfigured(), s.authMiddleware())

	tasks := httpHandlers.NewTaskHandler(s.deps.States, s.logger)
	v1.GET("/tasks", tasks.ListTasks)
	v1.POST("/tasks", tasks.CreateTask)
	v1.GET("/tasks/new", tasks.NewDraft)
	v1.GET("/tasks/:id", tasks.GetTask)
	v1.PUT("/tasks/:id", tasks.SaveTask)
	v1.PATCH("/tasks/:id", tasks.PatchTask)
	v1.DELETE("/tasks/:id", tasks.DeleteTask)
	v1.POST("/refresh", tasks.Refresh)

	board := httpHandlers.NewBoardHandler(s.deps.States, s.logger)
	v1.GET("/board", board.GetBoard)
	v1.POST("/board/moves", board.MoveCard)
	v1.GET("/analytics", board.GetAnalytics)

	docs := httpHandlers.NewDocumentHandler(s.deps.States, s.logger)
	v1.GET("/documents", docs.ListDocuments)
	v1.POST("/documents", docs.AddDocument)
	v1.DELETE("/documents/:id", docs.RemoveDocument)

	exports := httpHandlers.NewExportHandler(s.deps.States, s.logger)
	v1.GET("/export/tasks.csv", exports.ExportCSV)
	v1.GET("/export/tasks.pdf", exports.ExportPDF)

	if s.deps.Calendar != nil {
		cal := httpHandlers.NewCalendarHandler(s.deps.Calendar, s.logger)
		v1.GET("/calendar/events", cal.UpcomingEvents)
	}
}

// setupMetrics records every request and serves the registry.
func (s *Server) setupMetrics() {
	s.echo.Use(s.metricsMiddleware(s.deps.Metrics))
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.deps.Metrics.Registry, promhttp.HandlerOpts{})))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// readinessCheck lists every component that is not configured or not
// reachable.
func (s *Server) readinessCheck(c echo.Context) error {
	problems := make(map[string]string)
	for component, err := range s.config.Readiness() {
		problems[component] = err.Error()
	}
	if len(problems) == 0 && s.deps.HealthCheck != nil {
		if err := s.deps.HealthCheck(c.Request().Context()); err != nil {
			problems["database"] = err.Error()
		}
	}

	if len(problems) > 0 {
		names := make([]string, 0, len(problems))
		for name := range problems {
			names = append(names, name)
		}
		sort.Strings(names)
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "not_ready",
			"missing": names,
			"details": problems,
		})
	}

	response := map[string]interface{}{
		"status":  "ready",
		"version": s.config.App.Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}
	if s.deps.DatabaseStats != nil {
		response["database"] = s.deps.DatabaseStats()
	}
	return c.JSON(http.StatusOK, response)
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)
	srv := &http.Server{
		Addr:         address,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}
	if err := s.echo.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		code, body := httpHandlers.ErrorStatus(err)

		if code >= http.StatusInternalServerError {
			logger.Errorw("Request failed", "error", err, "path", c.Request().URL.Path, "status", code)
		}

		if c.Response().Committed {
			return
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			logger.Errorw("Error sending response", "error", err)
		}
	}
}
