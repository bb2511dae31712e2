package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/smartagro/smartagro/internal/catalog"
	"github.com/smartagro/smartagro/internal/router"
	"github.com/smartagro/smartagro/internal/views"
	"github.com/smartagro/smartagro/internal/webserver"
)

// registerNavigationRoutes registers the route table and page rendering endpoints
func registerNavigationRoutes(s *webserver.Server) {
	s.ApiGET("/routes", listRoutes)
	s.ApiGET("/resolve", resolveRoute)
	s.ApiGET("/branding", getBranding)
	s.GET("/views", renderPage)
	s.GET("/views/*", renderPage)
}

func listRoutes(c echo.Context) error {
	table := GetAppContext(c).Routes()
	return ok(c, map[string]interface{}{
		"layouts": table.Layouts(),
		"routes":  table.Routes(),
	})
}

func resolveRoute(c echo.Context) error {
	path := strings.TrimSpace(c.QueryParam("path"))
	if path == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "path is required", nil)
	}
	m, err := GetAppContext(c).Routes().Resolve(path)
	if errors.Is(err, router.ErrNoRoute) {
		return fail(c, http.StatusNotFound, "NO_ROUTE", "No route matches path", map[string]string{"path": m.Path})
	}
	return ok(c, m)
}

func getBranding(c echo.Context) error {
	renderer := GetAppContext(c).Renderer()
	return ok(c, map[string]string{
		"logo": renderer.AssetURL(GetReader(c).Logo()),
	})
}

// renderPage resolves the path after /views and returns the rendered page.
// Unmatched paths and missing records produce the NotFound page with 404.
func renderPage(c echo.Context) error {
	path := "/" + c.Param("*")
	if raw := c.Request().URL.RawQuery; raw != "" {
		path += "?" + raw
	}
	page, err := GetAppContext(c).Renderer().Render(c.Request().Context(), path)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, page)
	case errors.Is(err, router.ErrNoRoute), errors.Is(err, catalog.ErrNotFound):
		return c.JSON(http.StatusNotFound, page)
	case errors.Is(err, views.ErrInvalidParam):
		return fail(c, http.StatusBadRequest, "INVALID_PARAM", "Invalid route parameter", page.Params)
	default:
		zap.L().Error("failed to render page", zap.String("path", path), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "RENDER_ERROR", "Failed to render page", nil)
	}
}
