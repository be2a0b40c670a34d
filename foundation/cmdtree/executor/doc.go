// Package executor runs command lines against a command tree.
//
// Package: executor
// Title: Asynchronous Command Execution
// Description: A Pipeline tokenizes input, walks the tree, enforces
//              permissions and sender requirements and invokes the matched
//              handler on its own goroutine. Every invocation yields exactly
//              one Outcome, successful or carrying a Failure whose Kind is
//              one of lookup, permission, syntax, argument_parse, execution,
//              sender_type or cancelled.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation
//
// Usage:
//   p := executor.New(executor.Options{Tree: t, Permissions: checker})
//   h := p.Execute(ctx, sender, "tp 1 2 3")
//   outcome, err := h.Wait(ctx)
//   if err == nil && !outcome.Success() {
//     fmt.Println(outcome.Failure.Kind, outcome.Failure.Message)
//   }
package executor
