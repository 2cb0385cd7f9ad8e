// Package errors provides common domain error types for rosterbot.
//
// This package defines sentinel errors for the session protocol and the
// extraction pipeline. Using typed errors enables consistent error handling
// with errors.Is() checks across packages and at the HTTP boundary.
//
// Usage:
//
//	import rberrors "github.com/rosterbot/rosterbot/pkg/errors"
//
//	// Return a domain error
//	return rberrors.ErrBufferFull
//
//	// Check for domain errors
//	if rberrors.IsBufferFull(err) {
//	    // reject the upload, keep the buffer unchanged
//	}
package errors

import "errors"

// Domain errors - common sentinel errors for session and pipeline conditions.
var (
	// ErrBufferFull indicates the session file buffer is at its cap.
	ErrBufferFull = errors.New("file buffer full")

	// ErrUnsupportedFormat indicates a file suffix other than the two
	// recognized export formats.
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// ErrNoFiles indicates a finish was requested on an empty buffer.
	ErrNoFiles = errors.New("no files buffered")

	// ErrSessionNotFound indicates the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrValidation indicates invalid input or validation failure.
	ErrValidation = errors.New("validation error")
)

// IsBufferFull reports whether any error in err's chain is ErrBufferFull.
func IsBufferFull(err error) bool {
	return errors.Is(err, ErrBufferFull)
}

// IsUnsupportedFormat reports whether any error in err's chain is ErrUnsupportedFormat.
func IsUnsupportedFormat(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat)
}

// IsNoFiles reports whether any error in err's chain is ErrNoFiles.
func IsNoFiles(err error) bool {
	return errors.Is(err, ErrNoFiles)
}

// IsSessionNotFound reports whether any error in err's chain is ErrSessionNotFound.
func IsSessionNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

// IsValidation reports whether any error in err's chain is ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
