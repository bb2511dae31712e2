package webserver

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// jsonSerializer implements echo.JSONSerializer with json-iterator
type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	err := json.NewDecoder(c.Request().Body).Decode(i)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unable to parse request body").SetInternal(err)
	}
	return nil
}

type structValidator struct {
	validate *validator.Validate
}

func newValidator() *structValidator {
	return &structValidator{validate: validator.New()}
}

func (v *structValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// errorHandler renders echo errors with the ErrorResponse envelope
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	resp := ErrorResponse{Code: "INTERNAL_ERROR", Message: "Internal Server Error"}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		resp.Message = http.StatusText(status)
		if msg, ok := he.Message.(string); ok {
			resp.Message = msg
		}
		switch status {
		case http.StatusNotFound:
			resp.Code = "NOT_FOUND"
		case http.StatusMethodNotAllowed:
			resp.Code = "METHOD_NOT_ALLOWED"
		case http.StatusBadRequest:
			resp.Code = "INVALID_REQUEST"
		default:
			if status < http.StatusInternalServerError {
				resp.Code = "REQUEST_ERROR"
			}
		}
	}
	if status >= http.StatusInternalServerError {
		zap.L().Error("unhandled request error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, resp)
	}
	if err != nil {
		zap.L().Error("failed to write error response", zap.Error(err))
	}
}
