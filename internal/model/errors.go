package model

import "fmt"

// HTTPError wraps an HTTP status code so callers can inspect it.
type HTTPError struct {
	StatusCode int
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// OverloadedError signals the "service temporarily overloaded" condition from
// the model provider. It is the only failure the retry executor retries.
type OverloadedError struct {
	Err error
}

func (e *OverloadedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service overloaded: %v", e.Err)
	}
	return "service overloaded"
}

func (e *OverloadedError) Unwrap() error {
	return e.Err
}

// ConfigError reports invalid discovery input (empty keyword or site lists).
// Surfaced to the caller before any network activity.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Reason)
}
