// File: text.go
// Title: String Parsers
// Description: StringParser consumes one token, a quoted run of tokens or
//              the rest of the input. StringArrayParser always consumes the
//              rest of the input as a list.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package argument

import (
	"fmt"
	"strings"

	"github.com/msto63/argtree/foundation/cmdtree/params"
)

// StringMode selects how many tokens a string parser consumes
type StringMode int

const (
	// ModeSingle consumes exactly one token
	ModeSingle StringMode = iota
	// ModeQuoted consumes a "quoted run" of tokens, or one token if unquoted
	ModeQuoted
	// ModeGreedy consumes every remaining token
	ModeGreedy
)

// String returns the lower case mode name
func (m StringMode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeQuoted:
		return "quoted"
	case ModeGreedy:
		return "greedy"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseStringMode parses a mode name
func ParseStringMode(s string) (StringMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "word", "":
		return ModeSingle, nil
	case "quoted", "quotable":
		return ModeQuoted, nil
	case "greedy":
		return ModeGreedy, nil
	}
	return ModeSingle, fmt.Errorf("unknown string mode %q", s)
}

// StringParser parses string arguments
type StringParser struct {
	mode        StringMode
	completions []string
}

// NewStringParser reads params.StringMode and params.Completions
func NewStringParser(p params.Parameters) *StringParser {
	completions := params.Lookup[[]string](p, params.Completions, nil)
	return &StringParser{
		mode:        params.Lookup(p, params.StringMode, ModeSingle),
		completions: append([]string(nil), completions...),
	}
}

func (p *StringParser) ValueType() ValueType { return TypeOf[string]() }

// Mode returns the consumption mode
func (p *StringParser) Mode() StringMode { return p.mode }

// Completions returns the configured completion values
func (p *StringParser) Completions() []string {
	return append([]string(nil), p.completions...)
}

func (p *StringParser) Parse(_ any, input []string) (any, int, error) {
	if len(input) == 0 {
		return nil, 0, &ParseError{Type: p.ValueType(), Reason: ReasonNoInput}
	}

	switch p.mode {
	case ModeGreedy:
		return joinTokens(input), len(input), nil
	case ModeQuoted:
		return p.parseQuoted(input)
	default:
		return input[0], 1, nil
	}
}

func (p *StringParser) parseQuoted(input []string) (any, int, error) {
	first := input[0]
	if !strings.HasPrefix(first, `"`) {
		return first, 1, nil
	}
	if len(first) > 1 && strings.HasSuffix(first, `"`) {
		return first[1 : len(first)-1], 1, nil
	}
	for i := 1; i < len(input); i++ {
		if strings.HasSuffix(input[i], `"`) {
			joined := joinTokens(input[:i+1])
			return joined[1 : len(joined)-1], i + 1, nil
		}
	}
	return nil, 0, &ParseError{Type: p.ValueType(), Input: joinTokens(input), Reason: ReasonUnterminatedQuote}
}

func (p *StringParser) Suggestions(any, string) []string {
	return p.Completions()
}

// StringArrayParser consumes every remaining token into a []string
type StringArrayParser struct{}

// NewStringArrayParser ignores its parameters
func NewStringArrayParser(params.Parameters) *StringArrayParser {
	return &StringArrayParser{}
}

func (p *StringArrayParser) ValueType() ValueType { return TypeOf[[]string]() }

func (p *StringArrayParser) Parse(_ any, input []string) (any, int, error) {
	if len(input) == 0 {
		return nil, 0, &ParseError{Type: p.ValueType(), Reason: ReasonNoInput}
	}
	return append([]string(nil), input...), len(input), nil
}

func (p *StringArrayParser) Suggestions(any, string) []string {
	return nil
}

// EnumParser matches constant names exactly, case-sensitive
type EnumParser struct {
	valueType ValueType
	constants []fmt.Stringer
}

// NewEnumParser builds a parser for an enumeration type. It returns nil if
// vt does not implement Enum.
func NewEnumParser(vt ValueType) *EnumParser {
	if !vt.IsEnum() {
		return nil
	}
	return &EnumParser{valueType: vt.Canonical(), constants: vt.Constants()}
}

func (p *EnumParser) ValueType() ValueType { return p.valueType }

func (p *EnumParser) Parse(_ any, input []string) (any, int, error) {
	if len(input) == 0 {
		return nil, 0, &ParseError{Type: p.valueType, Reason: ReasonNoInput}
	}
	for _, c := range p.constants {
		if c.String() == input[0] {
			return c, 1, nil
		}
	}
	return nil, 0, &ParseError{Type: p.valueType, Input: input[0], Reason: ReasonUnknownConstant}
}

func (p *EnumParser) Suggestions(any, string) []string {
	names := make([]string, len(p.constants))
	for i, c := range p.constants {
		names[i] = c.String()
	}
	return names
}
