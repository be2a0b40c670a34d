// Package error provides structured errors for the argtree command framework.
//
// Package: error
// Title: Structured Command Errors
// Description: Errors carry a code, a severity, free-form details and an
//              optional cause. Codes classify failures of command lookup,
//              permission checks, syntax, argument parsing and execution so
//              that logging and rendering can branch on them without string
//              matching.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-17 v0.2.0: Reduced to command framework codes, errors.Is support
//
// Usage:
//   import mdwerror "github.com/msto63/argtree/foundation/core/error"
//
//   err := mdwerror.New("no parser registered for type").
//     WithCode(mdwerror.CodeNoParser).
//     WithDetail("type", "time.Duration")
//
//   if mdwerror.HasCode(err, mdwerror.CodeNoParser) {
//     // ...
//   }
package error
