// ============================================================================
// argtree - Typed Command Trees
// ============================================================================
//
// Package:     version
// Description: Central version management
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants
const (
	// Application version
	Application = "0.1.0"

	// DefinitionFormat is the version of the command definition file format
	DefinitionFormat = "1"

	// AuditSchema is the version of the audit store schema
	AuditSchema = "1"
)

// Build information, set via -ldflags
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "definitions":
		return DefinitionFormat
	case "audit":
		return AuditSchema
	default:
		return Application
	}
}

// String returns a one-line version summary
func String() string {
	return fmt.Sprintf("argtree %s (commit %s, built %s, %s)", Application, Commit, BuildDate, runtime.Version())
}
