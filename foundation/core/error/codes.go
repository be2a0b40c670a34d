// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across the command framework.
//              Command codes mirror the failure kinds surfaced by the
//              execution pipeline.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-17 v0.2.0: Command taxonomy codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Command pipeline
	CodeCommandNotFound Code = "CMD_NOT_FOUND"
	CodePermission      Code = "CMD_PERMISSION"
	CodeSyntax          Code = "CMD_SYNTAX"
	CodeArgument        Code = "CMD_ARGUMENT"
	CodeExecution       Code = "CMD_EXECUTION"
	CodeSenderType      Code = "CMD_SENDER"
	CodeCancelled       Code = "CMD_CANCELLED"

	// Parser registry and tree construction
	CodeNoParser      Code = "NO_PARSER"
	CodeDuplicateNode Code = "DUPLICATE_NODE"
	CodeInvalidTree   Code = "INVALID_TREE"

	// Configuration and storage
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
	CodeDatabaseError Code = "DATABASE_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeCommandNotFound, CodePermission, CodeSyntax, CodeArgument,
		CodeExecution, CodeSenderType, CodeCancelled:
		return "command"
	case CodeNoParser, CodeDuplicateNode, CodeInvalidTree:
		return "definition"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	case CodeDatabaseError:
		return "database"
	default:
		return "generic"
	}
}

// IsUserError reports whether the code describes a mistake in the input
// rather than a fault of the program.
func (c Code) IsUserError() bool {
	switch c {
	case CodeCommandNotFound, CodePermission, CodeSyntax, CodeArgument,
		CodeSenderType, CodeInvalidInput:
		return true
	}
	return false
}
