// Package log provides structured logging for the argtree command framework.
//
// Package: log
// Title: Structured Logging
// Description: A small structured logger with levels, persistent context
//              fields and pluggable formatters (JSON, text, console). The
//              audit level bypasses level filtering and records command
//              outcomes.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2026-10-17 v0.2.0: Console formatter on lipgloss, dropped async mode
//
// Usage:
//   import "github.com/msto63/argtree/foundation/core/log"
//
//   logger := log.New().WithLevel(log.LevelDebug).WithField("component", "registry")
//   logger.Info("parser registered", log.Fields{"type": "int32"})
//   logger.Audit("command executed", log.Fields{"path": "tp", "kind": "success"})
package log
