package openweathermap

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey is returned when a client is constructed without credentials.
	ErrMissingAPIKey = errors.New("openweathermap: API key is not set")

	// ErrTransport covers network failures, timeouts and non-200 upstream statuses.
	ErrTransport = errors.New("openweathermap: request failed")

	// ErrNoMatch is returned when the geocoding API finds no result for a
	// location name and country code pair.
	ErrNoMatch = errors.New("openweathermap: no geocoding match")

	// ErrBadResponse is returned when a response body cannot be decoded or
	// lacks a field the data model requires.
	ErrBadResponse = errors.New("openweathermap: malformed response")
)

func missingField(name string) error {
	return fmt.Errorf("%w: missing required field %q", ErrBadResponse, name)
}
