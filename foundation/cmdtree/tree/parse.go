// File: parse.go
// Title: Tree Traversal
// Description: Walks input tokens through the tree. At each node an exact
//              literal match wins, a token starting with "-" selects the
//              flag group, and otherwise argument children are tried in
//              declaration order until one accepts. The first failure of
//              the first declared argument is reported when none accepts.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package tree

import (
	"strings"

	"github.com/msto63/argtree/foundation/cmdtree/argument"
)

// Match is the result of a successful walk
type Match struct {
	Node    *Node
	Context *Context
}

// Parse walks tokens from the root. It returns a *NoSuchCommandError when
// the first token names no command, a *SyntaxError when the input is
// incomplete or unmatched, and an *ArgumentError when a parser rejects a
// token.
func (t *Tree) Parse(sender any, tokens []string) (*Match, error) {
	cc := NewContext(sender, tokens)

	if len(tokens) == 0 {
		return nil, &NoSuchCommandError{}
	}
	node := t.root.literalChild(tokens[0])
	if node == nil {
		return nil, &NoSuchCommandError{Token: tokens[0]}
	}
	cc.push(node)

	pos := 1
	for {
		if pos == len(tokens) {
			if node.IsExecutable() {
				return &Match{Node: node, Context: cc}, nil
			}
			if flags := node.flagsChild(); flags != nil && flags.IsExecutable() {
				cc.flags, _ = emptyFlags(sender, flags)
				cc.push(flags)
				return &Match{Node: flags, Context: cc}, nil
			}
			return nil, &SyntaxError{Reason: SyntaxIncomplete, Node: node, Position: pos}
		}

		next, consumed, err := step(cc, node, tokens[pos:], pos)
		if err != nil {
			return nil, err
		}
		node = next
		pos += consumed
	}
}

func emptyFlags(sender any, flags *Node) (argument.FlagValues, error) {
	v, _, err := flags.parser.Parse(sender, nil)
	if err != nil {
		return argument.FlagValues{}, err
	}
	fv, _ := v.(argument.FlagValues)
	return fv, nil
}

func (n *Node) literalChild(token string) *Node {
	for _, c := range n.children {
		if c.Matches(token) {
			return c
		}
	}
	return nil
}

// step advances from node over rest, storing parsed values in cc
func step(cc *Context, node *Node, rest []string, pos int) (*Node, int, error) {
	token := rest[0]

	if lit := node.literalChild(token); lit != nil {
		cc.push(lit)
		return lit, 1, nil
	}

	if flags := node.flagsChild(); flags != nil && strings.HasPrefix(token, "-") {
		v, n, err := flags.parser.Parse(cc.sender, rest)
		if err != nil {
			return nil, 0, &ArgumentError{Node: flags, Token: token, Position: pos, Err: err}
		}
		cc.flags, _ = v.(argument.FlagValues)
		cc.push(flags)
		return flags, n, nil
	}

	var first *ArgumentError
	for _, c := range node.children {
		if c.kind != KindArgument {
			continue
		}
		v, n, err := c.parser.Parse(cc.sender, rest)
		if err == nil && n > 0 {
			cc.values[c.name] = v
			cc.push(c)
			return c, n, nil
		}
		if first == nil {
			if err == nil {
				err = &argument.ParseError{Type: c.ValueType(), Input: token, Reason: argument.ReasonNoInput}
			}
			first = &ArgumentError{Node: c, Token: token, Position: pos, Err: err}
		}
	}
	if first != nil {
		return nil, 0, first
	}

	return nil, 0, &SyntaxError{Reason: SyntaxNoMatch, Node: node, Token: token, Position: pos}
}
