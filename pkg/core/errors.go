package core

import "errors"

// Sentinel errors for the webflash domain.
// Use errors.Is to check: errors.Is(err, core.ErrValidation)
var (
	// ErrValidation marks a create rejected for an empty required field.
	ErrValidation = errors.New("webflash: validation failed")

	// ErrExternalService marks a non-2xx or transport failure from the
	// completion service, embedding service, or an image fetch.
	ErrExternalService = errors.New("webflash: external service failure")

	// ErrParse marks a malformed response from the completion service.
	ErrParse = errors.New("webflash: malformed service response")
)
