package tabu

import (
	"errors"
	"fmt"
)

const (
	CodeConfiguration = "CONFIGURATION_ERROR"
	CodeDataIntegrity = "DATA_INTEGRITY_ERROR"
	CodeEvaluation    = "EVALUATION_ERROR"
)

// Error is the typed error returned by a search. Invariant names the rule that was violated
type Error struct {
	Code      string
	Invariant string
	Err       error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Invariant, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Invariant)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches any error sharing the code, so errors.Is(err, ErrConfiguration) works for every configuration error
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) || other == nil {
		return false
	}
	return e.Code == other.Code
}

var (
	ErrConfiguration = &Error{Code: CodeConfiguration, Invariant: "invalid configuration"}
	ErrDataIntegrity = &Error{Code: CodeDataIntegrity, Invariant: "invalid input data"}
	ErrEvaluation    = &Error{Code: CodeEvaluation, Invariant: "evaluation failed"}
)

func configurationError(invariant string, err error) *Error {
	return &Error{Code: CodeConfiguration, Invariant: invariant, Err: err}
}

func dataIntegrityError(invariant string, err error) *Error {
	return &Error{Code: CodeDataIntegrity, Invariant: invariant, Err: err}
}

func evaluationError(invariant string, err error) *Error {
	return &Error{Code: CodeEvaluation, Invariant: invariant, Err: err}
}

// FromError returns the typed error wrapped by err, if any
func FromError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
