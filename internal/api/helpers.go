package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/smartagro/smartagro/internal/app"
	"github.com/smartagro/smartagro/internal/catalog"
	"github.com/smartagro/smartagro/internal/webserver"
)

const appContextKey = "smartagro.appctx"

// Response wraps successful payloads
type Response struct {
	Data interface{} `json:"data"`
}

// ListResponse wraps paginated payloads
type ListResponse struct {
	Data     interface{} `json:"data"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"perPage"`
}

// AppContextMiddleware makes appCtx available to handlers through GetAppContext
func AppContextMiddleware(appCtx app.AppContext) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(appContextKey, appCtx)
			return next(c)
		}
	}
}

// GetAppContext returns the application context of the request
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(appContextKey).(app.AppContext)
}

// GetReader returns the data store of the request
func GetReader(c echo.Context) catalog.Reader {
	return GetAppContext(c).Reader()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Data: data})
}

func paged(c echo.Context, data interface{}, total, page, pageSize int) error {
	return c.JSON(http.StatusOK, ListResponse{Data: data, Total: total, Page: page, PageSize: pageSize})
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, webserver.ErrorResponse{Code: code, Message: message, Details: details})
}

// apiError is a failure detected before the handler writes its response
type apiError struct {
	status  int
	code    string
	message string
	details interface{}
}

func (e *apiError) Error() string {
	return e.code + ": " + e.message
}

func newAPIError(status int, code, message string, details interface{}) *apiError {
	return &apiError{status: status, code: code, message: message, details: details}
}

// respond writes err with the error envelope
func respond(c echo.Context, err error) error {
	var aerr *apiError
	if errors.As(err, &aerr) {
		return fail(c, aerr.status, aerr.code, aerr.message, aerr.details)
	}
	return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal Server Error", err.Error())
}

func validationError(err error) *apiError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return newAPIError(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request parameters", fields)
	}
	return newAPIError(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request parameters", err.Error())
}

// bindQuery binds query parameters into q and validates it
func bindQuery(c echo.Context, q interface{}) error {
	if err := c.Bind(q); err != nil {
		return newAPIError(http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse query", nil)
	}
	if err := c.Validate(q); err != nil {
		return validationError(err)
	}
	return nil
}

// parsePagination reads page and perPage, defaulting to 1 and 20
func parsePagination(c echo.Context) (int, int) {
	page := 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	pageSize := 20
	if ps, err := strconv.Atoi(c.QueryParam("perPage")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// pageSlice returns the bounds of page within n items
func pageSlice(n, page, pageSize int) (int, int) {
	if page-1 > n/pageSize {
		return n, n
	}
	start := (page - 1) * pageSize
	if start > n {
		start = n
	}
	end := start + pageSize
	if end > n {
		end = n
	}
	return start, end
}
