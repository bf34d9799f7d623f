// Package lexer splits a script into raw text tokens.
//
// Tokens carry no type: keywords, identifiers and literals are all plain
// words, and every delimiter is emitted as its own single-character token.
// Recognizing keywords is left to the parser.
package lexer

import "strings"

// Token is a single unit of script text.
type Token = string

// IsDelimiter reports whether r ends the current word and is emitted as a token.
func IsDelimiter(r rune) bool {
	switch r {
	case ';', ' ', '\t', '(', ')', ',', '*':
		return true
	default:
		return false
	}
}

// IsSpace reports whether tok is a whitespace marker.
func IsSpace(tok Token) bool {
	return tok == " " || tok == "\t"
}

// Tokenize scans text rune by rune.
// Newlines (\n, and the \r of a CRLF pair) end the current word but are not emitted.
// NOTE: there is no quoting, so a value containing a delimiter cannot be written.
func Tokenize(text string) []Token {
	var (
		out  []Token
		word strings.Builder
	)

	flush := func() {
		if word.Len() > 0 {
			out = append(out, word.String())
			word.Reset()
		}
	}

	for _, r := range text {
		switch {
		case r == '\n' || r == '\r':
			flush()
		case IsDelimiter(r):
			flush()
			out = append(out, string(r))
		default:
			word.WriteRune(r)
		}
	}
	flush()

	return out
}
