// Package argument defines the parsing contract for command arguments and
// the built-in parsers.
//
// Package: argument
// Title: Argument Parsers
// Description: A Parser turns the leading tokens of the remaining input into
//              a typed value and reports how many tokens it consumed. Parsers
//              are stateless after construction and safe for concurrent use.
//              Failures are reported as *ParseError carrying a Reason so that
//              callers can tell lexical failures from range violations.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation
//
// Built-in parsers:
//   - IntegerParser, UnsignedParser, FloatParser with optional bounds
//   - BoolParser (strict or liberal)
//   - CharParser
//   - StringParser in single, quoted or greedy mode with completions
//   - StringArrayParser consuming the rest of the input
//   - EnumParser for types implementing Enum
//   - FlagParser for --name value pairs
package argument
