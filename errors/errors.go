package errors

import (
	"errors"
	"fmt"
)

// Common error types for categorization and handling

var (
	// ErrFormat indicates a knowledge-base file had the wrong container shape
	// or was not valid JSON at all
	ErrFormat = errors.New("invalid format")

	// ErrManifestUnavailable indicates the knowledge-base manifest could not
	// be fetched or decoded
	ErrManifestUnavailable = errors.New("manifest unavailable")

	// ErrInvalidInput indicates invalid user input
	ErrInvalidInput = errors.New("invalid input")

	// ErrServiceUnavailable indicates a required service is unavailable
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrLLMCommunication indicates LLM communication failed
	ErrLLMCommunication = errors.New("llm communication failed")
)

// WrapError wraps an error with context message and stack
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf wraps an error with formatted context message
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsFormat checks if error is a format error
func IsFormat(err error) bool {
	return errors.Is(err, ErrFormat)
}

// IsInvalidInput checks if error is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsServiceUnavailable checks if error is a service unavailable error
func IsServiceUnavailable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable)
}

// IsManifestUnavailable checks if error is a manifest availability error
func IsManifestUnavailable(err error) bool {
	return errors.Is(err, ErrManifestUnavailable)
}
