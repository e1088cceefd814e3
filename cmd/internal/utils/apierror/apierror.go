package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the error envelope services hand back to the routes.
// A nil ErrorResponse means success; anything else is serialized as the
// response body with its Code as the HTTP status.
type ErrorResponse interface {
	Code() int
	Error() string
}

type apiError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *apiError) Code() int     { return e.Status }
func (e *apiError) Error() string { return e.Message }

func NewSimple(status int, message string) ErrorResponse {
	return &apiError{Status: status, Message: message}
}

func NewMissingParamError(name string) ErrorResponse {
	return &apiError{Status: http.StatusBadRequest, Message: fmt.Sprintf("Missing required parameter: %s", name)}
}

func NewInvalidParamTypeError(name, expected string) ErrorResponse {
	return &apiError{Status: http.StatusBadRequest, Message: fmt.Sprintf("Parameter %s must be a valid %s", name, expected)}
}

// FromValidationError flattens a validator error into a single 400 message
// naming the offending fields.
func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MalformedBodyError
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return &apiError{
		Status:  http.StatusBadRequest,
		Message: "Invalid fields: " + strings.Join(fields, ", "),
	}
}

var (
	InternalServerError   = NewSimple(http.StatusInternalServerError, "Something went wrong on our side")
	MalformedBodyError    = NewSimple(http.StatusBadRequest, "Request body is malformed")
	NotFoundError         = NewSimple(http.StatusNotFound, "Resource not found")
	InvalidAuthTokenError = NewSimple(http.StatusUnauthorized, "Invalid or missing auth token")
	ForbiddenError        = NewSimple(http.StatusForbidden, "You are not allowed to do that")

	DuplicateEmailError     = NewSimple(http.StatusConflict, "A user with this email already exists")
	InvalidCredentialsError = NewSimple(http.StatusUnauthorized, "Invalid credentials")
	SlotUnavailableError    = NewSimple(http.StatusConflict, "This time slot is no longer available")
	InvalidTransitionError  = NewSimple(http.StatusUnprocessableEntity, "Appointment status cannot change that way")
	AppointmentInPastError  = NewSimple(http.StatusBadRequest, "Appointment date cannot be in the past")
	UnknownSlotError        = NewSimple(http.StatusBadRequest, "Time is not one of the bookable slots")
	NoActiveSessionError    = NewSimple(http.StatusNotFound, "No active session")
)
