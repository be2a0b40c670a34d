// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels used to prioritize errors in logs and audit
//              records.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-17 v0.2.0: Severity mapping for command codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a user mistake such as a mistyped command
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that affects a single invocation
	SeverityMedium

	// SeverityHigh indicates a broken definition or storage failure
	SeverityHigh

	// SeverityCritical indicates the framework cannot continue
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeCommandNotFound, CodePermission, CodeSyntax, CodeArgument,
		CodeSenderType, CodeCancelled, CodeInvalidInput, CodeNotFound:
		return SeverityLow
	case CodeExecution, CodeTimeout:
		return SeverityMedium
	case CodeNoParser, CodeDuplicateNode, CodeInvalidTree,
		CodeConfigError, CodeInvalidConfig, CodeDatabaseError:
		return SeverityHigh
	case CodeInternal:
		return SeverityCritical
	default:
		return SeverityMedium
	}
}
