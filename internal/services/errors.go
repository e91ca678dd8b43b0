package services

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthenticated = errors.New("Authentication credentials were not provided.")
	ErrForbidden       = errors.New("You do not have permission to perform this action.")
	ErrUserNotFound    = errors.New("user not found")
	ErrArtistNotFound  = errors.New("artist not found")
	ErrTweetNotFound   = errors.New("tweet not found")
	ErrFollowSelf      = errors.New("You cant follow yourself")
	ErrUsernameTaken   = errors.New("A user with that username already exists.")
	ErrInvalidOrdering = errors.New("invalid ordering field")
	ErrInvalidTimezone = errors.New("invalid timezone")
)

// ErrorMap maps domain errors to HTTP status codes
var ErrorMap = map[error]int{
	ErrUnauthenticated: http.StatusUnauthorized,
	ErrForbidden:       http.StatusForbidden,
	ErrUserNotFound:    http.StatusNotFound,
	ErrArtistNotFound:  http.StatusNotFound,
	ErrTweetNotFound:   http.StatusNotFound,
	ErrFollowSelf:      http.StatusBadRequest,
	ErrUsernameTaken:   http.StatusBadRequest,
	ErrInvalidOrdering: http.StatusBadRequest,
	ErrInvalidTimezone: http.StatusBadRequest,
}

// StatusCode returns the status mapped to err, or 500 for anything unmapped
func StatusCode(err error) int {
	for domainErr, code := range ErrorMap {
		if errors.Is(err, domainErr) {
			return code
		}
	}
	return http.StatusInternalServerError
}
