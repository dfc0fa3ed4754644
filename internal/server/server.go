package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"unipile/internal/apperror"
	"unipile/internal/config"
	"unipile/internal/handlers"
	"unipile/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Server represents the application server
type Server struct {
	echo    *echo.Echo
	gateway handlers.Gateway
	config  *config.Config
	logger  zerolog.Logger
}

// New creates a new server instance
func New(cfg *config.Config, gateway handlers.Gateway, logger zerolog.Logger) *Server {
	return &Server{
		config:  cfg,
		gateway: gateway,
		logger:  logger,
	}
}

// zerologMiddleware creates a zerolog-based logging middleware for Echo
func (s *Server) zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()

			s.logger.Info().
				Str("method", req.Method).
				Str("uri", req.RequestURI).
				Str("remote_ip", c.RealIP()).
				Int("status", res.Status).
				Int64("latency_ms", time.Since(start).Milliseconds()).
				Str("user_agent", req.UserAgent()).
				Msg("HTTP request")

			return err
		}
	}
}

// errorHandler writes failures raised outside the tool handlers (body limit,
// recovered panics) in the same {detail} shape. Routing misses keep 404/405.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := apperror.StatusCode(apperror.KindOf(err))
	detail := err.Error()

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = apperror.StatusCode(apperror.ValidationFailure)
		if he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed {
			status = he.Code
		}
		detail = fmt.Sprint(he.Message)
	}

	s.logger.Error().Err(err).
		Str("uri", c.Request().RequestURI).
		Int("status", status).
		Msg("Request failed")

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, models.ErrorResponse{Detail: detail})
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to write error response")
	}
}

// Initialize sets up the Echo framework with middleware and routes
func (s *Server) Initialize() {
	s.echo = echo.New()
	s.echo.Validator = handlers.NewValidator()
	s.echo.HTTPErrorHandler = s.errorHandler

	// Middleware
	s.echo.Use(s.zerologMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())
	s.echo.Use(middleware.BodyLimit(s.config.BodyLimit))

	// Hide Echo banner
	s.echo.HideBanner = true

	// Setup routes
	s.setupRoutes()
}

// setupRoutes configures all the application routes
func (s *Server) setupRoutes() {
	if s.config.EnableSwagger {
		s.echo.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	s.echo.GET("/", handlers.RootHandler(s.config.Version))
	s.echo.GET("/healthz", handlers.HealthHandler(s.config.Version))

	tools := s.echo.Group("/tools")
	tools.POST("/unipile_get_accounts", handlers.GetAccountsHandler(s.gateway, s.logger))
	tools.POST("/unipile_reply_email", handlers.ReplyEmailHandler(s.gateway, s.logger))
	tools.POST("/unipile_send_email", handlers.SendEmailHandler(s.gateway, s.logger))
	tools.POST("/unipile_get_recent_messages", handlers.GetRecentMessagesHandler(s.gateway, s.logger))
	tools.POST("/unipile_get_emails", handlers.GetEmailsHandler(s.gateway, s.logger))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info().Str("port", s.config.Port).Msg("Server starting")
	return s.echo.Start(":" + s.config.Port)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
