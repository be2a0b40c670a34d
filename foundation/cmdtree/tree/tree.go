// File: tree.go
// Title: Command Tree
// Description: A Tree owns a root node whose children are the command
//              literals. Commands built separately are merged into the tree
//              so that shared prefixes become shared nodes.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package tree

import (
	"fmt"

	mdwerror "github.com/msto63/argtree/foundation/core/error"
)

// Tree is a command tree. It is safe for concurrent reads once built.
type Tree struct {
	root *Node
}

// New creates an empty tree
func New() *Tree {
	return &Tree{root: &Node{kind: KindRoot}}
}

// Root returns the root node
func (t *Tree) Root() *Node {
	return t.root
}

// Commands returns the top-level command literals in declaration order
func (t *Tree) Commands() []*Node {
	return t.root.Children()
}

// Insert merges a detached command chain into the tree. Nodes matching an
// existing sibling by name and kind are merged; a second handler for the
// same path is a duplicate.
func (t *Tree) Insert(cmd *Node) error {
	if cmd == nil || cmd.kind != KindLiteral {
		return mdwerror.Wrap(ErrInvalidTree, "commands must start with a literal")
	}
	return merge(t.root, cmd)
}

// Register builds b and inserts the result
func (t *Tree) Register(b *Builder) error {
	cmd, err := b.Build()
	if err != nil {
		return err
	}
	return t.Insert(cmd)
}

func merge(parent, incoming *Node) error {
	existing := parent.Child(incoming.name)
	if existing == nil {
		incoming.parent = nil
		return parent.AddChild(incoming)
	}

	if existing.kind != incoming.kind || existing.ValueType() != incoming.ValueType() {
		return mdwerror.Wrap(ErrDuplicateNode, fmt.Sprintf("%q conflicts with an existing %s node", incoming.name, existing.kind)).
			WithDetail("node", incoming.name)
	}

	if incoming.IsExecutable() {
		if existing.IsExecutable() {
			return mdwerror.Wrap(ErrDuplicateNode, fmt.Sprintf("command %q is already registered", existing.Syntax())).
				WithDetail("node", incoming.name)
		}
		existing.handler = incoming.handler
		existing.sender = incoming.sender
		if incoming.permission != "" {
			existing.permission = incoming.permission
		}
		if incoming.description != "" {
			existing.description = incoming.description
		}
	}

	for _, child := range incoming.children {
		if err := merge(existing, child); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the node reached by following child names from the root
func (t *Tree) Find(path ...string) *Node {
	cur := t.root
	for _, name := range path {
		cur = cur.Child(name)
		if cur == nil {
			return nil
		}
	}
	if cur == t.root {
		return nil
	}
	return cur
}

// Walk visits every node below the root depth-first in declaration order.
// Returning false from fn skips the node's children.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		for _, c := range n.children {
			if fn(c, depth) {
				visit(c, depth+1)
			}
		}
	}
	visit(t.root, 0)
}

// Executables returns every executable node in walk order
func (t *Tree) Executables() []*Node {
	var out []*Node
	t.Walk(func(n *Node, _ int) bool {
		if n.IsExecutable() {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Clone returns a structural copy of the tree. Parsers, handlers and sender
// requirements are shared with the original.
func (t *Tree) Clone() *Tree {
	return &Tree{root: t.root.clone(nil)}
}

func (n *Node) clone(parent *Node) *Node {
	c := *n
	c.aliases = append([]string(nil), n.aliases...)
	c.parent = parent
	c.children = make([]*Node, len(n.children))
	for i, child := range n.children {
		c.children[i] = child.clone(&c)
	}
	return &c
}
