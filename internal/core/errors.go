package core

import (
	"errors"
	"fmt"
)

// ErrEmptySelection is returned when an extremum is requested over zero rows.
var ErrEmptySelection = errors.New("empty selection")

// DataUnavailableError reports that a dataset source could not be read.
type DataUnavailableError struct {
	Source string
	Err    error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("data unavailable from %s: %v", e.Source, e.Err)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }

// MalformedRowError reports a row whose columns could not be parsed.
// Line is 1-based and counts the header row.
type MalformedRowError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *MalformedRowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("malformed row at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("malformed row at line %d: column %q value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }

// Unavailable wraps err as a DataUnavailableError for source unless it already is one.
func Unavailable(source string, err error) error {
	if err == nil {
		return nil
	}
	var du *DataUnavailableError
	if errors.As(err, &du) {
		return err
	}
	return &DataUnavailableError{Source: source, Err: err}
}

// IsDataUnavailable reports whether err is or wraps a DataUnavailableError.
func IsDataUnavailable(err error) bool {
	var du *DataUnavailableError
	return errors.As(err, &du)
}
