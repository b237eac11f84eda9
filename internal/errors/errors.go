package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailTaken is returned when registering with an email that already exists.
	ErrEmailTaken = errors.New("a user with this email already exists")
	// ErrInvalidCredentials is returned for unknown email OR wrong password;
	// the two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound is returned when a user id resolves to nothing.
	ErrUserNotFound = errors.New("user not found")
	// ErrCollectionNotFound is returned when a collection id resolves to nothing.
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrMaterialNotFound is returned when a line item references an unknown material.
	ErrMaterialNotFound = errors.New("one or more materials do not exist")
	// ErrNoMaterials is returned when a collection is scheduled without line items.
	ErrNoMaterials = errors.New("at least one material must be specified")
	// ErrCollectionForbidden is returned when the caller may not see or touch
	// an existing collection. Existing-but-forbidden is 403, never 404.
	ErrCollectionForbidden = errors.New("access to this collection is denied")
	// ErrAssignOtherCooperative is returned when a cooperative tries to assign
	// a collection to a different cooperative.
	ErrAssignOtherCooperative = errors.New("cannot assign a collection to another cooperative")
	// ErrIllegalTransition is returned when the requested status is not
	// reachable from the current one.
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrWeightWithoutCompletion is returned when weightKg accompanies a
	// status other than COMPLETED.
	ErrWeightWithoutCompletion = errors.New("weightKg may only be set when completing a collection")
	// ErrNegativeWeight is returned when the recorded weight is below zero.
	ErrNegativeWeight = errors.New("weightKg must not be negative")
	// ErrCollectionClaimed is returned when a conditional claim update loses
	// to a cooperative that already holds the collection.
	ErrCollectionClaimed = errors.New("collection is already claimed by another cooperative")
)

// ErrorResponse is the error body shape for every endpoint.
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// HTTPError carries a status code alongside a domain error message.
type HTTPError struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string, fieldErrors ...string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message, Errors: fieldErrors}
}

// ToErrorResponse converts an HTTPError to the wire shape.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Message: e.Message, Errors: e.Errors}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrCollectionNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrMaterialNotFound),
		errors.Is(err, ErrNoMaterials),
		errors.Is(err, ErrIllegalTransition),
		errors.Is(err, ErrWeightWithoutCompletion),
		errors.Is(err, ErrNegativeWeight):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrCollectionForbidden),
		errors.Is(err, ErrAssignOtherCooperative),
		errors.Is(err, ErrCollectionClaimed):
		return NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
