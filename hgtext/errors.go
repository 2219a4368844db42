package hgtext

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/hyperlath/weight"
)

// ErrNilVocabulary indicates a nil *symbol.Vocabulary argument.
var ErrNilVocabulary = errors.New("hgtext: nil vocabulary")

// SyntaxError locates a malformed line. Line and Col are 1-based; Col counts
// bytes. Err holds the underlying cause, e.g. a *weight.ParseError.
//
// errors.Is(err, weight.ErrParse) holds for every SyntaxError.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
	Err  error
}

func (e *SyntaxError) Error() string {
	s := fmt.Sprintf("hgtext: line %d, col %d: %s", e.Line, e.Col, e.Msg)
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}

	return s
}

// Unwrap exposes weight.ErrParse and the cause.
func (e *SyntaxError) Unwrap() []error {
	if e.Err != nil {
		return []error{weight.ErrParse, e.Err}
	}

	return []error{weight.ErrParse}
}

func syntaxErr(col int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Col: col, Msg: fmt.Sprintf(format, args...)}
}
