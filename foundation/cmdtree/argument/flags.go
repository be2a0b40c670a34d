// File: flags.go
// Title: Flag Parser
// Description: Parses "--name value" pairs and "--name" presence flags. A
//              flag and its value form one consuming unit. Single letter
//              aliases are written "-a".
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package argument

import (
	"sort"
	"strings"
)

// Flag declares a single flag. A nil Parser makes it a presence flag.
type Flag struct {
	Name        string
	Aliases     []string
	Description string
	Parser      Parser
	Permission  string
}

// Syntax renders the flag as [--name <value>] or [--name]
func (f Flag) Syntax() string {
	if f.Parser == nil {
		return "[--" + f.Name + "]"
	}
	return "[--" + f.Name + " <" + f.Name + ">]"
}

// FlagValues holds the flags given in one invocation
type FlagValues struct {
	values map[string]any
}

// Get returns the value of a flag. Presence flags hold true.
func (v FlagValues) Get(name string) (any, bool) {
	val, ok := v.values[name]
	return val, ok
}

// IsPresent reports whether the flag was given
func (v FlagValues) IsPresent(name string) bool {
	_, ok := v.values[name]
	return ok
}

// Len returns the number of flags given
func (v FlagValues) Len() int {
	return len(v.values)
}

// Names returns the given flag names in sorted order
func (v FlagValues) Names() []string {
	names := make([]string, 0, len(v.values))
	for name := range v.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FlagValue returns the value of flag name as T, or def
func FlagValue[T any](v FlagValues, name string, def T) T {
	raw, ok := v.values[name]
	if !ok {
		return def
	}
	typed, ok := raw.(T)
	if !ok {
		return def
	}
	return typed
}

// FlagParser parses a run of flags. Unlike other parsers it succeeds on
// empty input, yielding no flags.
type FlagParser struct {
	flags   []Flag
	byToken map[string]int
}

// NewFlagParser builds a parser for the given flags in declaration order
func NewFlagParser(flags ...Flag) *FlagParser {
	p := &FlagParser{
		flags:   append([]Flag(nil), flags...),
		byToken: make(map[string]int, len(flags)*2),
	}
	for i, f := range p.flags {
		p.byToken["--"+f.Name] = i
		for _, alias := range f.Aliases {
			p.byToken["-"+alias] = i
			p.byToken["--"+alias] = i
		}
	}
	return p
}

// Flags returns the declared flags
func (p *FlagParser) Flags() []Flag {
	return append([]Flag(nil), p.flags...)
}

// Lookup returns the flag addressed by token, e.g. "--speed" or "-s"
func (p *FlagParser) Lookup(token string) (Flag, bool) {
	i, ok := p.byToken[token]
	if !ok {
		return Flag{}, false
	}
	return p.flags[i], true
}

func (p *FlagParser) ValueType() ValueType { return TypeOf[FlagValues]() }

func (p *FlagParser) Parse(sender any, input []string) (any, int, error) {
	values := make(map[string]any)
	i := 0
	for i < len(input) {
		token := input[i]
		if !strings.HasPrefix(token, "-") {
			return nil, 0, &ParseError{Type: p.ValueType(), Input: token, Reason: ReasonUnexpectedToken}
		}
		flag, ok := p.Lookup(token)
		if !ok {
			return nil, 0, &ParseError{Type: p.ValueType(), Input: token, Reason: ReasonUnknownFlag}
		}
		if _, dup := values[flag.Name]; dup {
			return nil, 0, &ParseError{Type: p.ValueType(), Input: token, Flag: flag.Name, Reason: ReasonDuplicateFlag}
		}
		i++

		if flag.Parser == nil {
			values[flag.Name] = true
			continue
		}
		if i >= len(input) {
			return nil, 0, &ParseError{Type: p.ValueType(), Input: token, Flag: flag.Name, Reason: ReasonMissingFlagValue}
		}
		value, n, err := flag.Parser.Parse(sender, input[i:])
		if err != nil {
			return nil, 0, err
		}
		values[flag.Name] = value
		i += n
	}
	return FlagValues{values: values}, i, nil
}

func (p *FlagParser) Suggestions(sender any, partial string) []string {
	return p.SuggestionsAfter(sender, nil, partial)
}

// SuggestionsAfter proposes the value candidates of a flag still waiting
// for its value, or otherwise the flags not used yet.
func (p *FlagParser) SuggestionsAfter(sender any, consumed []string, partial string) []string {
	used := make(map[string]bool)
	for i := 0; i < len(consumed); {
		flag, ok := p.Lookup(consumed[i])
		i++
		if !ok {
			continue
		}
		used[flag.Name] = true
		if flag.Parser == nil {
			continue
		}
		if i >= len(consumed) {
			return flag.Parser.Suggestions(sender, partial)
		}
		_, n, err := flag.Parser.Parse(sender, consumed[i:])
		if err != nil {
			n = 1
		}
		i += n
	}

	var out []string
	for _, f := range p.flags {
		if !used[f.Name] {
			out = append(out, "--"+f.Name)
		}
	}
	return out
}
