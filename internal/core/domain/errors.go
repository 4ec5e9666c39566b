// Package domain defines the core domain model for isis.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain error with a structured error code.
//
// Codes have the form IS-<AREA>-<NNNN>; the last four digits follow HTTP
// status semantics (4xxx caller error, 5xxx invariant or system failure).
type DomainError struct {
	Code    string // Error code (e.g., "IS-CAP-4130")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Capacity Errors (CAP)
// ============================================================================

var (
	// ErrCapacityExceeded indicates the record needs more bits than the
	// carrier addresses. Raised before any sample is modified.
	ErrCapacityExceeded = NewDomainError("IS-CAP-4130", "carrier image too small for payload")

	// ErrCapacityExhausted indicates the bit cursor ran past the last
	// bit-plane. On embed this is an invariant violation; on extract it
	// means the carrier declares more data than it can hold.
	ErrCapacityExhausted = NewDomainError("IS-CAP-5000", "no bit-planes left in carrier")
)

// ============================================================================
// Codec Errors (CODEC)
// ============================================================================

var (
	// ErrNameTooLong indicates the file name does not fit the 8-bit length field.
	ErrNameTooLong = NewDomainError("IS-CODEC-4000", "file name too long (max 255 bytes)")

	// ErrValueTooLarge indicates a value overflowed its fixed-width field.
	ErrValueTooLarge = NewDomainError("IS-CODEC-5001", "value larger than field width")
)

// ============================================================================
// Crypto Errors (CRYPT)
// ============================================================================

var (
	// ErrDecryptionFailed indicates the envelope could not be opened.
	ErrDecryptionFailed = NewDomainError("IS-CRYPT-4010", "wrong password or corrupted data")

	// ErrEncryptionFailed indicates the envelope could not be sealed.
	ErrEncryptionFailed = NewDomainError("IS-CRYPT-5000", "encryption failed")
)

// ============================================================================
// IO Errors (IO)
// ============================================================================

var (
	// ErrNotAnImage indicates the carrier could not be decoded as an image.
	ErrNotAnImage = NewDomainError("IS-IO-4150", "not a supported image")

	// ErrIO indicates a filesystem read or write failure.
	ErrIO = NewDomainError("IS-IO-5000", "i/o error")
)

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("IS-ARG-4000", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("IS-ARG-4001", "missing required argument")
)
