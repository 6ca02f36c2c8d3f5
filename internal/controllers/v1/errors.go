package v1

import (
	"errors"
	"net/http"

	"github.com/pocketplan/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate HTTP status for an error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Report errors
var (
	errOwnerNotSet       = errors.New("the owner parameter must be set")
	errMonthNotSetInPath = errors.New("the month parameter must be a month in YYYY-MM format")
	errDateInvalid       = errors.New("dates must be in YYYY-MM-DD format")
)
