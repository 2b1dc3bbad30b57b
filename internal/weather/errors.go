package weather

import "errors"

var (
	// ErrInvalidInput indicates malformed, missing or conflicting query parameters.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates the upstream provider cannot resolve the location,
	// or, for history, that no requested date yielded data.
	ErrNotFound = errors.New("location not found")

	// ErrConfig indicates the provider credential is not configured.
	ErrConfig = errors.New("weather api key is not configured")

	// ErrUpstream indicates a network failure, an authentication/quota failure
	// or an unexpected HTTP status from the provider.
	ErrUpstream = errors.New("upstream provider error")

	// ErrUpstreamTimeout indicates the provider call exceeded its deadline.
	ErrUpstreamTimeout = errors.New("upstream provider timed out")

	// ErrDataFormat indicates the provider response is missing an expected field.
	ErrDataFormat = errors.New("unexpected upstream response format")
)
