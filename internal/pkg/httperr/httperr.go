package httperr

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// Error is the single structured error type domain failures travel in: a
// caller-visible title and message plus the HTTP status to answer with. It
// is converted to the wire envelope exactly once, at the response boundary.
type Error struct {
	Status  int
	Title   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Title, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, title, message string) *Error {
	return &Error{Status: status, Title: title, Message: message}
}

func NotFound(title, message string) *Error {
	return New(http.StatusNotFound, title, message)
}

func UserNotFound(email string) *Error {
	return NotFound("User Not Found", fmt.Sprintf("No user associated with the provided email %s", email))
}

func UserNotFoundForToken() *Error {
	return NotFound("User Not Found", "User associated with the token is not found")
}

func InvalidCredentials() *Error {
	return New(http.StatusBadRequest, "Incorrect password", "Supplied password is incorrect")
}

func InvalidIdentification(chassisNumber string) *Error {
	return New(http.StatusBadRequest, "Invalid chassis number",
		fmt.Sprintf("The submitted chassis number %s is invalid", chassisNumber))
}

func EmailTaken(email string) *Error {
	return New(http.StatusBadRequest, "Email Already Registered",
		fmt.Sprintf("An account already exists for the email %s", email))
}

func InvalidRefreshToken() *Error {
	return New(http.StatusBadRequest, "Invalid Refresh Token", "The provided token is invalid")
}

func InvalidAccessToken() *Error {
	return New(http.StatusUnauthorized, "Access Token Invalid", "The provided access token is not valid")
}

func MissingAuthorization() *Error {
	return New(http.StatusUnauthorized, "Unauthorized Access", "Authorization missing")
}

func Unauthorized() *Error {
	return New(http.StatusUnauthorized, "Unauthorized Access", "The user requesting this resource is not authorized")
}

func InvalidResetCode() *Error {
	return New(http.StatusBadRequest, "Invalid reset code", "Provided reset code is not valid")
}

func ServerError(err error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Title:   "Server Error",
		Message: "An error occurred. Contact an admin for assistance",
		Err:     err,
	}
}

// From normalizes any error into an *Error. Recognized domain errors pass
// through; bare record-not-found becomes a 404; everything else is wrapped
// into the generic 500 so internals never leak to the caller.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("Not Found", "The requested resource has not been found")
	}
	return ServerError(err)
}
