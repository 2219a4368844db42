package weight

import (
	"errors"
	"fmt"
)

var (
	// ErrParse indicates a malformed weight literal.
	ErrParse = errors.New("weight: parse error")

	// ErrDivideByZero indicates division by the Zero weight.
	ErrDivideByZero = errors.New("weight: division by zero")
)

// ParseError names the literal and the offending substring.
type ParseError struct {
	Input     string
	Offending string
	Reason    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("weight: parse %q: %s near %q", e.Input, e.Reason, e.Offending)
}

// Unwrap lets errors.Is(err, ErrParse) succeed.
func (e *ParseError) Unwrap() error { return ErrParse }

func parseErr(input, offending, reason string) error {
	return &ParseError{Input: input, Offending: offending, Reason: reason}
}
