// File: failure.go
// Title: Failure Taxonomy
// Description: Every unsuccessful invocation is described by one Failure
//              whose Kind tells the caller what went wrong. Classification
//              happens in a single place, classify, so that callers never
//              inspect concrete error types themselves.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation
// - 2026-10-17 v0.1.1: Classify handler errors before tree errors

package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/msto63/argtree/foundation/cmdtree/tree"
	mdwerror "github.com/msto63/argtree/foundation/core/error"
)

// Kind classifies a failed invocation
type Kind int

const (
	KindLookup Kind = iota + 1
	KindPermission
	KindSyntax
	KindArgumentParse
	KindExecution
	KindSenderType
	KindCancelled
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindLookup:
		return "lookup"
	case KindPermission:
		return "permission"
	case KindSyntax:
		return "syntax"
	case KindArgumentParse:
		return "argument_parse"
	case KindExecution:
		return "execution"
	case KindSenderType:
		return "sender_type"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ParseKind parses a kind name as returned by String
func ParseKind(s string) (Kind, bool) {
	for k := KindLookup; k <= KindCancelled; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Code maps the kind to an error code
func (k Kind) Code() mdwerror.Code {
	switch k {
	case KindLookup:
		return mdwerror.CodeCommandNotFound
	case KindPermission:
		return mdwerror.CodePermission
	case KindSyntax:
		return mdwerror.CodeSyntax
	case KindArgumentParse:
		return mdwerror.CodeArgument
	case KindExecution:
		return mdwerror.CodeExecution
	case KindSenderType:
		return mdwerror.CodeSenderType
	case KindCancelled:
		return mdwerror.CodeCancelled
	default:
		return mdwerror.CodeUnknown
	}
}

// Failure describes why an invocation did not succeed
type Failure struct {
	Kind    Kind
	Message string
	// Path holds the names of the nodes matched before the failure
	Path []string
	// Token and Position locate the offending token, if any
	Token    string
	Position int
	// CorrectSyntax is set for syntax failures
	CorrectSyntax string
	// Permission is set for permission failures
	Permission string
	// Sender names the required sender type for sender failures
	Sender string
	// Cause is the innermost parser error for argument failures and the
	// handler's error or recovered panic for execution failures
	Cause error
}

// Error implements the error interface
func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Unwrap returns the cause
func (f *Failure) Unwrap() error {
	return f.Cause
}

// AsError converts the failure into a structured error for logging
func (f *Failure) AsError() *mdwerror.Error {
	var err *mdwerror.Error
	if f.Cause != nil {
		err = mdwerror.Wrap(f.Cause, f.Message)
		err = err.WithCode(f.Kind.Code()).WithSeverity(mdwerror.GetSeverityFromCode(f.Kind.Code()))
	} else {
		err = mdwerror.New(f.Message).WithCode(f.Kind.Code())
	}
	if len(f.Path) > 0 {
		err = err.WithDetail("path", strings.Join(f.Path, " "))
	}
	if f.Token != "" {
		err = err.WithDetail("token", f.Token).WithDetail("position", f.Position)
	}
	if f.CorrectSyntax != "" {
		err = err.WithDetail("syntax", f.CorrectSyntax)
	}
	if f.Permission != "" {
		err = err.WithDetail("permission", f.Permission)
	}
	return err.WithOperation("execute")
}

type permissionError struct {
	permission string
}

func (e *permissionError) Error() string {
	return fmt.Sprintf("missing permission %q", e.permission)
}

type senderError struct {
	want string
}

func (e *senderError) Error() string {
	return fmt.Sprintf("command requires a sender of type %s", e.want)
}

type handlerError struct {
	err error
}

func (e *handlerError) Error() string { return e.err.Error() }
func (e *handlerError) Unwrap() error { return e.err }

// PanicError wraps a value recovered from a panicking handler
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("handler panicked: %v", e.Value)
}

// classify turns any error produced while running an invocation into a
// Failure. path lists the nodes matched so far.
func classify(err error, path []string) *Failure {
	if err == nil {
		return nil
	}

	// Handler errors are matched first: a handler may return tree errors of
	// its own, which must not be mistaken for a failed walk.
	var handler *handlerError
	if errors.As(err, &handler) {
		if errors.Is(handler.err, context.Canceled) || errors.Is(handler.err, context.DeadlineExceeded) {
			return &Failure{Kind: KindCancelled, Message: handler.err.Error(), Path: path, Cause: handler.err}
		}
		return &Failure{Kind: KindExecution, Message: handler.err.Error(), Path: path, Cause: handler.err}
	}

	var (
		noCmd  *tree.NoSuchCommandError
		syntax *tree.SyntaxError
		argErr *tree.ArgumentError
		perm   *permissionError
		sender *senderError
	)

	switch {
	case errors.As(err, &noCmd):
		return &Failure{Kind: KindLookup, Message: noCmd.Error(), Token: noCmd.Token}

	case errors.As(err, &syntax):
		return &Failure{
			Kind:          KindSyntax,
			Message:       syntax.Reason.String(),
			Path:          nodePath(syntax.Node),
			Token:         syntax.Token,
			Position:      syntax.Position,
			CorrectSyntax: syntax.CorrectSyntax(),
		}

	case errors.As(err, &argErr):
		f := &Failure{
			Kind:     KindArgumentParse,
			Message:  argErr.Error(),
			Path:     path,
			Token:    argErr.Token,
			Position: argErr.Position,
			Cause:    argErr.Err,
		}
		if argErr.Err != nil {
			f.Message = argErr.Err.Error()
		}
		if argErr.Node != nil {
			f.Path = nodePath(argErr.Node.Parent())
		}
		return f

	case errors.As(err, &perm):
		return &Failure{Kind: KindPermission, Message: perm.Error(), Path: path, Permission: perm.permission}

	case errors.As(err, &sender):
		return &Failure{Kind: KindSenderType, Message: sender.Error(), Path: path, Sender: sender.want}

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &Failure{Kind: KindCancelled, Message: "invocation cancelled before execution", Path: path, Cause: err}
	}

	return &Failure{Kind: KindExecution, Message: err.Error(), Path: path, Cause: err}
}

func nodePath(n *tree.Node) []string {
	if n == nil {
		return nil
	}
	return n.Path()
}
