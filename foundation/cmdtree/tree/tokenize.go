package tree

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize splits input on runs of whitespace
func Tokenize(input string) []string {
	return strings.Fields(input)
}

// SuggestionTokens splits input like Tokenize and appends an empty token
// when input is empty or ends in whitespace, so that the last token is
// always the partial word being completed.
func SuggestionTokens(input string) []string {
	tokens := strings.Fields(input)
	last, _ := utf8.DecodeLastRuneInString(input)
	if input == "" || unicode.IsSpace(last) {
		tokens = append(tokens, "")
	}
	return tokens
}
