package fetcher

import "errors"

// Sentinel errors for direct page fetching. They are wrapped in an
// *entity.RemoteServiceError before leaving the package.
var (
	// ErrInvalidURL indicates that the URL is malformed or uses an unsupported scheme.
	ErrInvalidURL = errors.New("invalid URL or unsupported scheme")

	// ErrPrivateIP indicates that the URL resolves to a private, loopback or link-local address.
	ErrPrivateIP = errors.New("private IP access denied (SSRF prevention)")

	// ErrTooManyRedirects indicates that the redirect limit was exceeded.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge indicates that the response exceeded MaxBodySize.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTimeout indicates that the request exceeded the configured timeout.
	ErrTimeout = errors.New("request timeout")
)
