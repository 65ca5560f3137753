package model

import "fmt"

// ErrorKind distinguishes the error kinds exposed by the core. Insufficient
// data is deliberately not a member: the core expresses it as a normal
// "no output" result, not a failure.
type ErrorKind string

const (
	KindOrderingViolation ErrorKind = "ordering_violation"
	KindInvalidCandle     ErrorKind = "invalid_candle"
	KindConfigError       ErrorKind = "config_error"
)

// CoreError is the error type returned by the evaluation pipeline and by
// config loading. Callers distinguish kinds with errors.As and (*CoreError).Kind.
type CoreError struct {
	Kind    ErrorKind
	Message string
}

func (e *CoreError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is lets errors.Is match on kind-equivalent sentinels constructed with the
// same kind, e.g. errors.Is(err, &CoreError{Kind: KindOrderingViolation}).
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func NewOrderingViolationError(format string, args ...any) error {
	return &CoreError{Kind: KindOrderingViolation, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidCandleError(format string, args ...any) error {
	return &CoreError{Kind: KindInvalidCandle, Message: fmt.Sprintf(format, args...)}
}

func NewConfigError(format string, args ...any) error {
	return &CoreError{Kind: KindConfigError, Message: fmt.Sprintf(format, args...)}
}
