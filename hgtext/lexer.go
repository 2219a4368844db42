package hgtext

// token is one whitespace-separated item of a line. labels is nil unless the
// token carries a "(...)" annotation.
type token struct {
	text   string
	col    int
	labels []string
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
}

// scanLine splits one line into tokens, stopping at a '#' that starts a token.
// Returned errors carry Col but no Line.
func scanLine(line string) ([]token, *SyntaxError) {
	var toks []token
	i := 0
	for {
		for i < len(line) && isSpace(line[i]) {
			i++
		}
		if i >= len(line) || line[i] == '#' {
			return toks, nil
		}

		// 1) Bare word up to whitespace or an annotation.
		start := i
		for i < len(line) && !isSpace(line[i]) && line[i] != '(' {
			switch line[i] {
			case ')', '"', '\'':
				return nil, syntaxErr(i+1, "unexpected %q", line[i])
			}
			i++
		}
		tok := token{text: line[start:i], col: start + 1}
		if tok.text == "" {
			return nil, syntaxErr(i+1, "label without a state id")
		}

		// 2) Optional "(label)" or "(in out)".
		if i < len(line) && line[i] == '(' {
			labels, next, err := scanLabels(line, i)
			if err != nil {
				return nil, err
			}
			if next < len(line) && !isSpace(line[next]) && line[next] != '#' {
				return nil, syntaxErr(next+1, "expected whitespace after ')'")
			}
			tok.labels, i = labels, next
		}
		toks = append(toks, tok)
	}
}

// scanLabels reads the annotation opening at line[i] == '('.
func scanLabels(line string, i int) ([]string, int, *SyntaxError) {
	open := i
	i++
	labels := make([]string, 0, 2)
	for {
		for i < len(line) && isSpace(line[i]) {
			i++
		}
		if i >= len(line) {
			return nil, 0, syntaxErr(open+1, "unterminated label")
		}
		if line[i] == ')' {
			i++
			break
		}
		if len(labels) == 2 {
			return nil, 0, syntaxErr(i+1, "more than two labels")
		}
		if line[i] == '"' || line[i] == '\'' {
			v, next, err := scanQuoted(line, i)
			if err != nil {
				return nil, 0, err
			}
			labels = append(labels, v)
			i = next
			continue
		}
		start := i
		for i < len(line) && !isSpace(line[i]) && line[i] != ')' {
			switch line[i] {
			case '(', '"', '\'', '#', '\\':
				return nil, 0, syntaxErr(i+1, "unexpected %q in label", line[i])
			}
			i++
		}
		labels = append(labels, line[start:i])
	}
	if len(labels) == 0 {
		return nil, 0, syntaxErr(open+1, "empty label")
	}

	return labels, i, nil
}
