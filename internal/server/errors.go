package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-studio/internal/crawl"
	"github.com/jonathan/resume-studio/internal/normalize"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates a feature that is not configured on this server
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, normalize.ErrMalformedInput), errors.Is(err, crawl.ErrInvalidURL):
		return http.StatusBadRequest
	}

	switch err.(type) {
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrUnavailable:
		return http.StatusServiceUnavailable
	case *crawl.NetworkError:
		return http.StatusBadGateway
	case *crawl.TimedOutError:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage is the client-facing text for err.
func errorMessage(err error) string {
	var invalid *crawl.InvalidURLError
	if errors.As(err, &invalid) {
		return invalid.Message
	}
	if errors.Is(err, normalize.ErrMalformedInput) {
		return normalize.ParseErrorMessage
	}
	return err.Error()
}
