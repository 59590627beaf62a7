package common

import "errors"

// FeatureError represents errors raised by the feature extraction pipeline
type FeatureError struct {
	Code    string `json:"code"`
	Op      string `json:"op"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *FeatureError) Error() string {
	msg := e.Op + ": " + e.Message
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *FeatureError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeUnsupportedInput = "UNSUPPORTED_INPUT"
	ErrCodeDegenerateResult = "DEGENERATE_RESULT"
)

// NewFeatureError creates a new feature error
func NewFeatureError(code, op, message string, cause error) *FeatureError {
	return &FeatureError{
		Code:    code,
		Op:      op,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidInputError creates a FeatureError for malformed caller input
func NewInvalidInputError(op, message string) *FeatureError {
	return NewFeatureError(ErrCodeInvalidInput, op, message, nil)
}

// NewUnsupportedInputError creates a FeatureError for input kinds the
// pipeline does not handle
func NewUnsupportedInputError(op, message string) *FeatureError {
	return NewFeatureError(ErrCodeUnsupportedInput, op, message, nil)
}

// NewDegenerateResultError creates a FeatureError for numerically
// degenerate intermediate results
func NewDegenerateResultError(op, message string) *FeatureError {
	return NewFeatureError(ErrCodeDegenerateResult, op, message, nil)
}

// IsCode reports whether err is (or wraps) a FeatureError with the given code
func IsCode(err error, code string) bool {
	var fe *FeatureError
	if errors.As(err, &fe) {
		return fe.Code == code
	}
	return false
}
