package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Analysis argument errors
	ErrInvalidLevel     = errors.New("invalid analysis level")
	ErrInvalidDimension = errors.New("invalid grouping dimension")
	ErrInvalidFormat    = errors.New("invalid format policy")
	ErrMissingColumn    = errors.New("missing required column")

	// Data integrity errors
	ErrInconsistentGroup = errors.New("value not constant within deduplication key")
	ErrNonNumeric        = errors.New("non-numeric metric value")
	ErrInsufficientData  = errors.New("insufficient data for analysis")

	// Parsing errors
	ErrSheetLayout = errors.New("sheet does not match the evaluation layout")
)

// Error constructors with context
func NewInvalidLevelError(level string) error {
	return fmt.Errorf("%w: %q (must be 'action', 'response', or 'scenario')", ErrInvalidLevel, level)
}

func NewInvalidDimensionError(dimension string) error {
	return fmt.Errorf("%w: %q (must be 'context-level', 'category', or 'scenario')", ErrInvalidDimension, dimension)
}

func NewInvalidFormatError(format string) error {
	return fmt.Errorf("%w: %q (must be '', 'percentage', or 'zero-to-five')", ErrInvalidFormat, format)
}

func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumn, column)
}

func NewInconsistentGroupError(keyColumn string, key any, column string, first, other any) error {
	return fmt.Errorf("%w: %s=%v has %s=%v and %s=%v",
		ErrInconsistentGroup, keyColumn, key, column, first, column, other)
}

func NewNonNumericError(column string, value any) error {
	return fmt.Errorf("%w: %s=%v (%T)", ErrNonNumeric, column, value, value)
}

func NewSheetLayoutError(sheet, reason string) error {
	return fmt.Errorf("%w: sheet %s: %s", ErrSheetLayout, sheet, reason)
}

// Error checking helpers
func IsArgumentError(err error) bool {
	return errors.Is(err, ErrInvalidLevel) ||
		errors.Is(err, ErrInvalidDimension) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrMissingColumn)
}

func IsDataIntegrityError(err error) bool {
	return errors.Is(err, ErrInconsistentGroup) ||
		errors.Is(err, ErrNonNumeric)
}
