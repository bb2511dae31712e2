package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartagro/smartagro/internal/app"
	"github.com/smartagro/smartagro/internal/webserver"
)

// Register installs the application context middleware and every route
func Register(s *webserver.Server, appCtx app.AppContext) {
	s.Use(AppContextMiddleware(appCtx))
	s.GET("/health", health)
	registerProductRoutes(s)
	registerDashboardRoutes(s)
	registerNavigationRoutes(s)
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "success",
		"message": "API is healthy",
	})
}
