package http

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/jobtasks/dashboard/internal/application/controllers"
	"github.com/jobtasks/dashboard/internal/domain/entities"
	"github.com/jobtasks/dashboard/internal/infrastructure/config"
)

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var statusBySentinel = []struct {
	err  error
	code int
}{
	{entities.ErrTaskNotFound, http.StatusNotFound},
	{entities.ErrDocumentNotFound, http.StatusNotFound},
	{entities.ErrInvalidStatus, http.StatusBadRequest},
	{entities.ErrInvalidPriority, http.StatusBadRequest},
	{entities.ErrInvalidCategory, http.StatusBadRequest},
	{entities.ErrInvalidProgress, http.StatusBadRequest},
	{entities.ErrInvalidTimeSpent, http.StatusBadRequest},
	{entities.ErrEmptyTitle, http.StatusBadRequest},
	{entities.ErrInvalidDeadline, http.StatusBadRequest},
	{entities.ErrEmptyURL, http.StatusBadRequest},
	{entities.ErrUnauthenticated, http.StatusUnauthorized},
	{controllers.ErrDeleteNotConfirmed, http.StatusPreconditionRequired},
	{controllers.ErrNothingToDelete, http.StatusNotFound},
	{config.ErrNotConfigured, http.StatusServiceUnavailable},
}

// ErrorStatus maps an error returned by a handler to a status code and a
// response body. Unknown errors become a bare 500.
func ErrorStatus(err error) (int, ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return he.Code, ErrorResponse{Error: msg}
		}
		return he.Code, ErrorResponse{Error: http.StatusText(he.Code), Details: he.Message}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: fields}
	}

	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			return s.code, ErrorResponse{Error: err.Error()}
		}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)}
}
