package ir

import (
	"errors"
	"fmt"
)

// Error is the typed failure returned by every engine operation.
//
// Error kinds:
//   - UNSUPPORTED_YEAR: date or table lookup outside the validated range
//   - INVALID_LUNAR_DATE: nonexistent lunar day/month/leap combination
//   - INVALID_GENDER: no luck-period direction for the supplied gender
//   - INCONSISTENT_TABLE: reference table failed self-consistency checks
//   - INVALID_INPUT: malformed Gregorian date, clock field or table index
//
// Callers branch on Code (or the Is* helpers), never on Message.
type Error struct {
	// Code identifies the error kind.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Details contains additional context (year, month, range bounds).
	Details map[string]string
}

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	ErrCodeUnsupportedYear   ErrorCode = "UNSUPPORTED_YEAR"
	ErrCodeInvalidLunarDate  ErrorCode = "INVALID_LUNAR_DATE"
	ErrCodeInvalidGender     ErrorCode = "INVALID_GENDER"
	ErrCodeInconsistentTable ErrorCode = "INCONSISTENT_TABLE"
	ErrCodeInvalidInput      ErrorCode = "INVALID_INPUT"
)

// Sentinels for errors.Is. They match any *Error with the same Code.
var (
	ErrUnsupportedYear   = &Error{Code: ErrCodeUnsupportedYear}
	ErrInvalidLunarDate  = &Error{Code: ErrCodeInvalidLunarDate}
	ErrInvalidGender     = &Error{Code: ErrCodeInvalidGender}
	ErrInconsistentTable = &Error{Code: ErrCodeInconsistentTable}
	ErrInvalidInput      = &Error{Code: ErrCodeInvalidInput}
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any *Error carrying the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// CodeOf returns the Code of the first *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsUnsupportedYear returns true if err is an UNSUPPORTED_YEAR error.
func IsUnsupportedYear(err error) bool { return CodeOf(err) == ErrCodeUnsupportedYear }

// IsInvalidLunarDate returns true if err is an INVALID_LUNAR_DATE error.
func IsInvalidLunarDate(err error) bool { return CodeOf(err) == ErrCodeInvalidLunarDate }

// IsInvalidGender returns true if err is an INVALID_GENDER error.
func IsInvalidGender(err error) bool { return CodeOf(err) == ErrCodeInvalidGender }

// IsInconsistentTable returns true if err is an INCONSISTENT_TABLE error.
func IsInconsistentTable(err error) bool { return CodeOf(err) == ErrCodeInconsistentTable }

// IsInvalidInput returns true if err is an INVALID_INPUT error.
func IsInvalidInput(err error) bool { return CodeOf(err) == ErrCodeInvalidInput }

// UnsupportedYear creates an error for a year outside [first, last].
func UnsupportedYear(year, first, last int) *Error {
	return &Error{
		Code:    ErrCodeUnsupportedYear,
		Message: fmt.Sprintf("year %d outside supported range %d-%d", year, first, last),
		Details: map[string]string{
			"year":  fmt.Sprintf("%d", year),
			"first": fmt.Sprintf("%d", first),
			"last":  fmt.Sprintf("%d", last),
		},
	}
}

// InvalidLunarDate creates an error for a lunar date that does not exist.
func InvalidLunarDate(d LunisolarDate, reason string) *Error {
	return &Error{
		Code:    ErrCodeInvalidLunarDate,
		Message: fmt.Sprintf("lunar date %s: %s", d, reason),
		Details: map[string]string{
			"year":  fmt.Sprintf("%d", d.Year),
			"month": fmt.Sprintf("%d", d.Month),
			"day":   fmt.Sprintf("%d", d.Day),
			"leap":  fmt.Sprintf("%t", d.Leap),
		},
	}
}

// InvalidGender creates an error for an unrecognized gender value.
func InvalidGender(value string) *Error {
	return &Error{
		Code:    ErrCodeInvalidGender,
		Message: fmt.Sprintf("unrecognized gender %q", value),
		Details: map[string]string{"value": value},
	}
}

// InconsistentTable creates an error for a reference table that failed validation.
func InconsistentTable(format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeInconsistentTable,
		Message: fmt.Sprintf(format, args...),
	}
}

// InvalidInput creates an error for malformed caller input.
func InvalidInput(format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeInvalidInput,
		Message: fmt.Sprintf(format, args...),
	}
}
