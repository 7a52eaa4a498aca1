package cypher

// maskText returns a copy of the query where the interiors of string literals
// and the bodies of comments are overwritten byte-for-byte with neutral
// filler. Pattern rules run against the masked copy, so an arrow or node
// inside data can never be mistaken for one in the query itself. Every byte
// keeps its offset: spans found on the masked text apply directly to the
// original.
//
// Quote characters, comment delimiters, and newlines stay in place. Both
// backslash escapes and doubled quotes ('' inside '...', "" inside "...") are
// understood. Backtick identifiers are left alone: they name labels and
// types, which the rules need to see.
//
// Parentheses inside brace-delimited property blocks are masked as well. A
// function call in a property value, such as point({x: 1}), would otherwise
// read as an anonymous node sitting in the middle of a relationship. The
// braces themselves stay visible so the property groups of the pattern rules
// still match.
func maskText(query string) string {
	out := []byte(query)

	var (
		inSingleQuote  bool
		inDoubleQuote  bool
		inLineComment  bool
		inBlockComment bool
		braceDepth     int
	)

	for i := 0; i < len(out); i++ {
		c := out[i]

		if inLineComment {
			if c == '\n' {
				inLineComment = false
			} else {
				out[i] = ' '
			}
			continue
		}
		if inBlockComment {
			if c == '*' && i+1 < len(out) && out[i+1] == '/' {
				inBlockComment = false
				i++
			} else if c != '\n' {
				out[i] = ' '
			}
			continue
		}

		if inSingleQuote {
			if c == '\\' && i+1 < len(out) {
				out[i] = '.'
				out[i+1] = '.'
				i++
				continue
			}
			if c == '\'' {
				if i+1 < len(out) && out[i+1] == '\'' {
					out[i] = '.'
					out[i+1] = '.'
					i++
					continue
				}
				inSingleQuote = false
				continue
			}
			if c != '\n' {
				out[i] = '.'
			}
			continue
		}
		if inDoubleQuote {
			if c == '\\' && i+1 < len(out) {
				out[i] = '.'
				out[i+1] = '.'
				i++
				continue
			}
			if c == '"' {
				if i+1 < len(out) && out[i+1] == '"' {
					out[i] = '.'
					out[i+1] = '.'
					i++
					continue
				}
				inDoubleQuote = false
				continue
			}
			if c != '\n' {
				out[i] = '.'
			}
			continue
		}

		if c == '/' && i+1 < len(out) {
			if out[i+1] == '/' {
				inLineComment = true
				i++
				continue
			}
			if out[i+1] == '*' {
				inBlockComment = true
				i++
				continue
			}
		}
		if c == '\'' {
			inSingleQuote = true
			continue
		}
		if c == '"' {
			inDoubleQuote = true
			continue
		}

		switch c {
		case '{':
			braceDepth++
		case '}':
			if braceDepth > 0 {
				braceDepth--
			}
		case '(', ')':
			if braceDepth > 0 {
				out[i] = '.'
			}
		}
	}

	return string(out)
}
