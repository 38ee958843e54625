// Package shellwords splits a string into words the way a POSIX shell
// would, honoring single quotes, double quotes and backslash escapes.
// It performs no expansion of any kind: variables, globs and comments
// are all taken literally.
package shellwords

import "errors"

var (
	ErrUnterminatedSingleQuote = errors.New("unterminated single-quoted string")
	ErrUnterminatedDoubleQuote = errors.New("unterminated double-quoted string")
	ErrTrailingBackslash       = errors.New("trailing backslash")
)

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// Split tokenizes s into words. Adjacent quoted and unquoted segments
// join into a single word, so `a"b c"d` is one word `ab cd`. A quoted
// empty string produces an empty word. Malformed quoting returns an
// error and no tokens.
func Split(s string) ([]string, error) {
	var words []string
	var word []byte
	inWord := false

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case isSpace(c):
			if inWord {
				words = append(words, string(word))
				word = word[:0]
				inWord = false
			}
			i++

		case c == '\\':
			if i+1 >= len(s) {
				return nil, ErrTrailingBackslash
			}
			word = append(word, s[i+1])
			inWord = true
			i += 2

		case c == '\'':
			end := i + 1
			for end < len(s) && s[end] != '\'' {
				end++
			}
			if end >= len(s) {
				return nil, ErrUnterminatedSingleQuote
			}
			word = append(word, s[i+1:end]...)
			inWord = true
			i = end + 1

		case c == '"':
			i++
			closed := false
			for i < len(s) {
				if s[i] == '"' {
					closed = true
					i++
					break
				}
				if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '\\' || s[i+1] == '"') {
					word = append(word, s[i+1])
					i += 2
					continue
				}
				word = append(word, s[i])
				i++
			}
			if !closed {
				return nil, ErrUnterminatedDoubleQuote
			}
			inWord = true

		default:
			word = append(word, c)
			inWord = true
			i++
		}
	}

	if inWord {
		words = append(words, string(word))
	}
	return words, nil
}
