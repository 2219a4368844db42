package hgtext

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// reserved are the bytes that force a label into quotes.
const reserved = "\"'()#\\"

// Quote returns s unchanged when it can be written as a bare token, and a
// double-quoted escaped form otherwise. The empty string becomes "".
func Quote(s string) string {
	if isBare(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\\', '"':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')

	return b.String()
}

// Unquote reverses Quote. A token that does not start with a quote is
// returned as is, provided it is a valid bare token.
//
// Errors:
//   - *SyntaxError (Line 1) for an unterminated quote, an unknown escape,
//     trailing bytes after the closing quote, or a bare token containing
//     whitespace or a reserved character.
func Unquote(s string) (string, error) {
	if s != "" && (s[0] == '"' || s[0] == '\'') {
		v, next, err := scanQuoted(s, 0)
		if err != nil {
			err.Line = 1
			return "", err
		}
		if next != len(s) {
			return "", &SyntaxError{Line: 1, Col: next + 1, Msg: "trailing characters after closing quote"}
		}

		return v, nil
	}
	if !isBare(s) {
		return "", &SyntaxError{Line: 1, Col: 1, Msg: "token must be quoted"}
	}

	return s, nil
}

// isBare reports whether s needs no quoting.
func isBare(s string) bool {
	if s == "" || !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) || strings.ContainsRune(reserved, r) {
			return false
		}
	}

	return true
}

// scanQuoted decodes the quoted token starting at line[i] and returns its
// value and the index just past the closing quote.
func scanQuoted(line string, i int) (string, int, *SyntaxError) {
	quote := line[i]
	start := i
	i++
	var b strings.Builder
	for i < len(line) {
		c := line[i]
		switch {
		case c == quote:
			return b.String(), i + 1, nil
		case c == '\\':
			if i+1 >= len(line) {
				return "", 0, syntaxErr(i+1, "escape at end of line")
			}
			switch e := line[i+1]; e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\', '"', '\'':
				b.WriteByte(e)
			default:
				return "", 0, syntaxErr(i+1, "unknown escape \\%c", e)
			}
			i += 2
		default:
			b.WriteByte(c)
			i++
		}
	}

	return "", 0, syntaxErr(start+1, "unterminated %c quote", quote)
}
