package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"recicla/internal/auth"
	apperrors "recicla/internal/errors"
)

// bindAndValidate decodes the request body into req and runs struct
// validation, translating field failures into the errors[] slice of the
// standard error body.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			messages := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				messages = append(messages, fieldMessage(fe))
			}
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Message: "validation error",
				Errors:  messages,
			})
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// respondError maps a domain error onto the standard error body.
func respondError(c echo.Context, err error) error {
	he := apperrors.MapErrorToHTTP(err)
	return c.JSON(he.StatusCode, he.ToErrorResponse())
}

// callerIdentity fetches the identity the gate stored on the context.
func callerIdentity(c echo.Context) (auth.Identity, error) {
	ident, ok := auth.IdentityFrom(c)
	if !ok {
		return auth.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication token missing or malformed")
	}
	return ident, nil
}
