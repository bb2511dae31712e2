package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/smartagro/smartagro/config"
)

const apiPrefix = "/api/v1"

// Server wraps the echo instance and the versioned API group
type Server struct {
	root *echo.Echo
	api  *echo.Group
	addr string
}

// NewServer builds an echo server with the standard middleware chain
func NewServer(cfg *config.AppConfig) (*Server, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, errors.Wrap(err, "request id generator")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.System.Debug
	e.JSONSerializer = &jsonSerializer{}
	e.Validator = newValidator()
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			zap.L().Error("panic recovered",
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.ByteString("stack", stack))
			return err
		},
	}))
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return node.Generate().String() },
	}))
	e.Use(requestLogger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	}))

	return &Server{
		root: e,
		api:  e.Group(apiPrefix),
		addr: fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port),
	}, nil
}

// Echo returns the underlying echo instance
func (s *Server) Echo() *echo.Echo {
	return s.root
}

// Use adds middleware to the whole server
func (s *Server) Use(m ...echo.MiddlewareFunc) {
	s.root.Use(m...)
}

// GET registers a route outside the API group
func (s *Server) GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return s.root.GET(path, h, m...)
}

// ApiGET registers a GET route under /api/v1
func (s *Server) ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return s.api.GET(path, h, m...)
}

// Start listens until the context is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("web server listening", zap.String("addr", s.addr))
		if err := s.root.Start(s.addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.root.Shutdown(shutdownCtx); err != nil {
		return err
	}
	zap.L().Info("web server stopped")
	return nil
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			if v.Status >= http.StatusInternalServerError {
				zap.L().Error("request", fields...)
			} else {
				zap.L().Debug("request", fields...)
			}
			return nil
		},
	})
}
