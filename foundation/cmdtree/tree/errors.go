package tree

import (
	"fmt"
)

// NoSuchCommandError reports that the first token names no command
type NoSuchCommandError struct {
	Token string
}

func (e *NoSuchCommandError) Error() string {
	if e.Token == "" {
		return "no command given"
	}
	return fmt.Sprintf("unknown command %q", e.Token)
}

// SyntaxReason tells incomplete input from input that matches nothing
type SyntaxReason int

const (
	// SyntaxIncomplete means the input ended at a non-executable node
	SyntaxIncomplete SyntaxReason = iota
	// SyntaxNoMatch means no child accepted the next token
	SyntaxNoMatch
)

// String returns the reason name
func (r SyntaxReason) String() string {
	if r == SyntaxIncomplete {
		return "incomplete command"
	}
	return "no matching argument"
}

// SyntaxError reports input that does not fit the tree
type SyntaxError struct {
	Reason SyntaxReason
	// Node is the last node matched
	Node *Node
	// Token is the offending token, empty for incomplete input
	Token string
	// Position is the index of Token, or the token count when incomplete
	Position int
}

func (e *SyntaxError) Error() string {
	if e.Reason == SyntaxIncomplete {
		return fmt.Sprintf("incomplete command, expected: %s", e.CorrectSyntax())
	}
	return fmt.Sprintf("unexpected %q at position %d, expected: %s", e.Token, e.Position, e.CorrectSyntax())
}

// CorrectSyntax renders the syntax expected at the failing node
func (e *SyntaxError) CorrectSyntax() string {
	if e.Node == nil {
		return ""
	}
	return e.Node.Syntax()
}

// ArgumentError reports that an argument parser rejected its token. Err is
// the parser's error, usually an *argument.ParseError.
type ArgumentError struct {
	Node     *Node
	Token    string
	Position int
	Err      error
}

func (e *ArgumentError) Error() string {
	if e.Node == nil {
		return fmt.Sprintf("invalid argument %q: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("invalid argument %s: %v", e.Node.Token(), e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}
