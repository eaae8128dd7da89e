package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrNetwork means the request never produced a usable HTTP response.
	ErrNetwork = errors.New("network failure")
	// ErrProtocol means the server answered but the envelope was not a success.
	ErrProtocol = errors.New("protocol failure")
	// ErrDataAbsent means an id could not be resolved in the product cache.
	ErrDataAbsent = errors.New("data absent")
	// ErrValidation blocks an action locally before any network call.
	ErrValidation = errors.New("validation failure")
	// ErrFeatureUnavailable is returned when the server does not expose an endpoint (404/405).
	ErrFeatureUnavailable = errors.New("feature unavailable")
)
