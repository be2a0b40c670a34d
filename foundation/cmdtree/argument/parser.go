// File: parser.go
// Title: Parser Contract
// Description: The Parser interface, optional capability interfaces used by
//              host adapters, and the ParseError type.
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
)

// Parser converts the leading tokens of input into a value.
//
// Parse returns the parsed value and the number of tokens consumed, which is
// at least one on success. On failure it returns a *ParseError and consumes
// nothing. Suggestions returns candidate completions for the token being
// typed; filtering by prefix is left to the caller.
type Parser interface {
	Parse(sender any, input []string) (value any, consumed int, err error)
	Suggestions(sender any, partial string) []string
	ValueType() ValueType
}

// Ranged is implemented by numeric parsers
type Ranged interface {
	Range() Range
}

// Range describes numeric bounds. MinSet and MaxSet are false when the bound
// equals the natural limit of the type.
type Range struct {
	Min, Max       any
	MinSet, MaxSet bool
}

// StringModer is implemented by string parsers
type StringModer interface {
	Mode() StringMode
}

// Reason classifies a parse failure
type Reason string

const (
	ReasonNoInput           Reason = "no_input"
	ReasonInvalidNumber     Reason = "invalid_number"
	ReasonOutOfRange        Reason = "out_of_range"
	ReasonInvalidBoolean    Reason = "invalid_boolean"
	ReasonInvalidChar       Reason = "invalid_char"
	ReasonUnknownConstant   Reason = "unknown_constant"
	ReasonUnterminatedQuote Reason = "unterminated_quote"
	ReasonUnknownFlag       Reason = "unknown_flag"
	ReasonDuplicateFlag     Reason = "duplicate_flag"
	ReasonMissingFlagValue  Reason = "missing_flag_value"
	ReasonUnexpectedToken   Reason = "unexpected_token"
)

// ParseError reports why a parser rejected its input
type ParseError struct {
	Type   ValueType
	Input  string
	Reason Reason
	// Min and Max are set for ReasonOutOfRange
	Min, Max any
	// Flag names the offending flag for flag reasons
	Flag string
	Err  error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	switch e.Reason {
	case ReasonNoInput:
		return fmt.Sprintf("no input was provided for %s", e.Type)
	case ReasonInvalidNumber:
		return fmt.Sprintf("%q is not a valid %s", e.Input, e.Type)
	case ReasonOutOfRange:
		return fmt.Sprintf("%s is not in the range [%v, %v]", e.Input, e.Min, e.Max)
	case ReasonInvalidBoolean:
		return fmt.Sprintf("%q is not a valid boolean", e.Input)
	case ReasonInvalidChar:
		return fmt.Sprintf("%q is not a single character", e.Input)
	case ReasonUnknownConstant:
		return fmt.Sprintf("%q is not a valid %s", e.Input, e.Type)
	case ReasonUnterminatedQuote:
		return fmt.Sprintf("unterminated quote in %q", e.Input)
	case ReasonUnknownFlag:
		return fmt.Sprintf("unknown flag %q", e.Input)
	case ReasonDuplicateFlag:
		return fmt.Sprintf("duplicate flag %q", e.Flag)
	case ReasonMissingFlagValue:
		return fmt.Sprintf("missing value for flag %q", e.Flag)
	case ReasonUnexpectedToken:
		return fmt.Sprintf("unexpected token %q, expected a flag", e.Input)
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid input %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("invalid input %q", e.Input)
}

// Unwrap returns the underlying cause
func (e *ParseError) Unwrap() error {
	return e.Err
}

func joinTokens(input []string) string {
	return strings.Join(input, " ")
}
