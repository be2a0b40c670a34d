// File: suggest.go
// Title: Suggestion Engine
// Description: Produces completion candidates for partially typed input.
//              Complete tokens are walked like Parse; candidates for the
//              last, partial token come from the children of the node where
//              the walk stopped, in declaration order, filtered by prefix.
//              Duplicates are kept and no state survives a call.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation
// - 2026-10-17 v0.1.1: Filter flag suggestions by permission

package tree

import (
	"strings"

	"github.com/msto63/argtree/foundation/cmdtree/argument"
)

// NodeFilter hides nodes from suggestions when it returns false
type NodeFilter func(sender any, n *Node) bool

// FlagFilter hides single flags from suggestions when it returns false
type FlagFilter func(sender any, f argument.Flag) bool

// Suggest returns completions for input. Dead ends yield nil.
func (t *Tree) Suggest(sender any, input string, filter NodeFilter) []string {
	return t.SuggestFiltered(sender, input, filter, nil)
}

// SuggestFiltered is Suggest with an additional filter for flags. A flag
// hidden by flagFilter is neither proposed nor completed.
func (t *Tree) SuggestFiltered(sender any, input string, filter NodeFilter, flagFilter FlagFilter) []string {
	tokens := SuggestionTokens(input)
	complete, partial := tokens[:len(tokens)-1], tokens[len(tokens)-1]

	if filter == nil {
		filter = func(any, *Node) bool { return true }
	}
	if flagFilter == nil {
		flagFilter = func(any, argument.Flag) bool { return true }
	}

	if len(complete) == 0 {
		return candidates(sender, t.root, partial, filter, flagFilter)
	}

	node := t.root.literalChild(complete[0])
	if node == nil || !filter(sender, node) {
		return nil
	}

	cc := NewContext(sender, complete)
	for pos := 1; pos < len(complete); {
		rest := complete[pos:]
		if flags := node.flagsChild(); flags != nil && strings.HasPrefix(rest[0], "-") {
			if !filter(sender, flags) {
				return nil
			}
			return filterPrefix(flagSuggestions(sender, flags, rest, partial, flagFilter), partial)
		}

		next, consumed, err := step(cc, node, rest, pos)
		if err != nil || !filter(sender, next) {
			return nil
		}
		node = next
		pos += consumed
	}

	return candidates(sender, node, partial, filter, flagFilter)
}

func candidates(sender any, node *Node, partial string, filter NodeFilter, flagFilter FlagFilter) []string {
	var out []string
	for _, c := range node.children {
		if !filter(sender, c) {
			continue
		}
		switch c.kind {
		case KindLiteral:
			out = append(out, filterPrefix(c.literalNames(), partial)...)
		case KindArgument:
			out = append(out, filterPrefix(c.parser.Suggestions(sender, partial), partial)...)
		case KindFlags:
			if partial == "" || strings.HasPrefix(partial, "-") {
				out = append(out, filterPrefix(flagSuggestions(sender, c, nil, partial, flagFilter), partial)...)
			}
		}
	}
	return out
}

func flagSuggestions(sender any, flags *Node, consumed []string, partial string, flagFilter FlagFilter) []string {
	fp := flags.FlagParser()
	if fp == nil {
		return flags.parser.Suggestions(sender, partial)
	}
	for _, token := range consumed {
		if f, ok := fp.Lookup(token); ok && !flagFilter(sender, f) {
			return nil
		}
	}

	var out []string
	for _, s := range fp.SuggestionsAfter(sender, consumed, partial) {
		if f, ok := fp.Lookup(s); ok && !flagFilter(sender, f) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func filterPrefix(values []string, prefix string) []string {
	if prefix == "" {
		return values
	}
	var out []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			out = append(out, v)
		}
	}
	return out
}
