// File: basic.go
// Title: Boolean and Character Parsers
// Description: BoolParser accepts true/false, and in liberal mode also
//              yes/no/on/off, case-insensitively. CharParser accepts exactly
//              one character.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package argument

import (
	"strings"
	"unicode/utf8"

	"github.com/msto63/argtree/foundation/cmdtree/params"
)

var (
	strictTrue   = []string{"true"}
	strictFalse  = []string{"false"}
	liberalTrue  = []string{"true", "yes", "on"}
	liberalFalse = []string{"false", "no", "off"}
)

// BoolParser parses boolean values
type BoolParser struct {
	liberal bool
}

// NewBoolParser reads params.Liberal
func NewBoolParser(p params.Parameters) *BoolParser {
	return &BoolParser{liberal: params.Lookup(p, params.Liberal, false)}
}

// Liberal reports whether yes/no/on/off are accepted
func (p *BoolParser) Liberal() bool { return p.liberal }

func (p *BoolParser) ValueType() ValueType { return TypeOf[bool]() }

func (p *BoolParser) Parse(_ any, input []string) (any, int, error) {
	if len(input) == 0 {
		return nil, 0, &ParseError{Type: p.ValueType(), Reason: ReasonNoInput}
	}
	token := strings.ToLower(input[0])
	trueWords, falseWords := strictTrue, strictFalse
	if p.liberal {
		trueWords, falseWords = liberalTrue, liberalFalse
	}
	for _, w := range trueWords {
		if token == w {
			return true, 1, nil
		}
	}
	for _, w := range falseWords {
		if token == w {
			return false, 1, nil
		}
	}
	return nil, 0, &ParseError{Type: p.ValueType(), Input: input[0], Reason: ReasonInvalidBoolean}
}

func (p *BoolParser) Suggestions(any, string) []string {
	if p.liberal {
		return []string{"true", "false", "yes", "no", "on", "off"}
	}
	return []string{"true", "false"}
}

// CharParser parses a single character into a Char
type CharParser struct{}

// NewCharParser ignores its parameters
func NewCharParser(params.Parameters) *CharParser {
	return &CharParser{}
}

func (p *CharParser) ValueType() ValueType { return TypeOf[Char]() }

func (p *CharParser) Parse(_ any, input []string) (any, int, error) {
	if len(input) == 0 {
		return nil, 0, &ParseError{Type: p.ValueType(), Reason: ReasonNoInput}
	}
	token := input[0]
	if utf8.RuneCountInString(token) != 1 {
		return nil, 0, &ParseError{Type: p.ValueType(), Input: token, Reason: ReasonInvalidChar}
	}
	r, _ := utf8.DecodeRuneInString(token)
	return Char(r), 1, nil
}

func (p *CharParser) Suggestions(any, string) []string {
	return nil
}
