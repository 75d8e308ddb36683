package model

import (
	"errors"
	"fmt"
)

// ErrColumnNotFound is returned when a cost query result lacks a required column
var ErrColumnNotFound = errors.New("column not found")

// ErrInvalidMonth is returned when a month parameter is not formatted as YYYY-MM
var ErrInvalidMonth = errors.New("month must be formatted as YYYY-MM")

// ConfigurationMissingError reports a required environment variable that is not set
type ConfigurationMissingError struct {
	Variable string
}

func (e *ConfigurationMissingError) Error() string {
	return fmt.Sprintf("%s environment variable is not set", e.Variable)
}

// InvalidValue is an environment variable that was set to an unparseable value
// and replaced by its default
type InvalidValue struct {
	Variable string
	Value    string
	Expected string
}

// FetchFailedError reports a failed call to an upstream API.
// StatusCode is zero when the failure happened before a response was received.
type FetchFailedError struct {
	Source     string
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchFailedError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %d %s", e.Source, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

func (e *FetchFailedError) Unwrap() error {
	return e.Err
}

// NewFetchFailed wraps err as a FetchFailedError for source
func NewFetchFailed(source string, statusCode int, err error) *FetchFailedError {
	return &FetchFailedError{
		Source:     source,
		StatusCode: statusCode,
		Message:    err.Error(),
		Err:        err,
	}
}
