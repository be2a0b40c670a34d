// File: node.go
// Title: Command Nodes
// Description: A Node is one step of a command path: the root, a literal
//              keyword, a typed argument or the trailing flag group.
//              Children keep their declaration order, which decides the
//              order arguments are tried and suggestions are listed.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation
// - 2026-10-17 v0.1.1: Reject repeated argument names on one path

package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/msto63/argtree/foundation/cmdtree/argument"
	mdwerror "github.com/msto63/argtree/foundation/core/error"
)

// Kind distinguishes node roles
type Kind int

const (
	KindRoot Kind = iota
	KindLiteral
	KindArgument
	KindFlags
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindLiteral:
		return "literal"
	case KindArgument:
		return "argument"
	case KindFlags:
		return "flags"
	default:
		return "unknown"
	}
}

// FlagsNodeName is the name of every flag group node
const FlagsNodeName = "flags"

// Handler executes a command. It runs on the invocation's goroutine and
// should honour ctx cancellation.
type Handler func(ctx context.Context, cc *Context) error

// SenderRequirement restricts which senders may run a command
type SenderRequirement struct {
	Name    string
	Accepts func(sender any) bool
}

// SenderOf requires the sender to be of type T
func SenderOf[T any]() *SenderRequirement {
	return &SenderRequirement{
		Name: argument.TypeOf[T]().String(),
		Accepts: func(sender any) bool {
			_, ok := sender.(T)
			return ok
		},
	}
}

var (
	// ErrDuplicateNode matches errors for sibling name collisions
	ErrDuplicateNode = mdwerror.New("duplicate node").WithCode(mdwerror.CodeDuplicateNode)
	// ErrInvalidTree matches errors for structurally invalid trees
	ErrInvalidTree = mdwerror.New("invalid tree").WithCode(mdwerror.CodeInvalidTree)
)

// Node is a vertex of a command tree. Nodes are configured while the tree
// is built and must not be modified once invocations run against it.
type Node struct {
	name        string
	aliases     []string
	kind        Kind
	parser      argument.Parser
	description string
	permission  string
	sender      *SenderRequirement
	handler     Handler

	parent   *Node
	children []*Node
}

// NewLiteral creates a keyword node matched exactly by name or alias
func NewLiteral(name string, aliases ...string) *Node {
	return &Node{name: name, aliases: append([]string(nil), aliases...), kind: KindLiteral}
}

// NewArgument creates a typed argument node
func NewArgument(name string, parser argument.Parser) *Node {
	return &Node{name: name, kind: KindArgument, parser: parser}
}

// NewFlags creates the flag group node
func NewFlags(parser *argument.FlagParser) *Node {
	return &Node{name: FlagsNodeName, kind: KindFlags, parser: parser}
}

func (n *Node) Name() string { return n.name }
func (n *Node) Kind() Kind { return n.kind }
func (n *Node) Parser() argument.Parser { return n.parser }
func (n *Node) Description() string { return n.description }
func (n *Node) Permission() string { return n.permission }
func (n *Node) Sender() *SenderRequirement { return n.sender }
func (n *Node) Handler() Handler { return n.handler }
func (n *Node) Parent() *Node { return n.parent }

// Aliases returns the alternative literal names
func (n *Node) Aliases() []string {
	return append([]string(nil), n.aliases...)
}

// IsExecutable reports whether a command may end at this node
func (n *Node) IsExecutable() bool {
	return n.handler != nil
}

// ValueType returns the type produced by the node's parser, or the zero
// ValueType for literal and root nodes.
func (n *Node) ValueType() argument.ValueType {
	if n.parser == nil {
		return argument.ValueType{}
	}
	return n.parser.ValueType()
}

// Children returns the children in declaration order
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// Child returns the child with the given name
func (n *Node) Child(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// FlagParser returns the flag parser of a flags node, nil otherwise
func (n *Node) FlagParser() *argument.FlagParser {
	fp, _ := n.parser.(*argument.FlagParser)
	return fp
}

// SetHandler makes the node executable
func (n *Node) SetHandler(h Handler) *Node {
	n.handler = h
	return n
}

// SetPermission sets the permission required to run through this node
func (n *Node) SetPermission(permission string) *Node {
	n.permission = permission
	return n
}

// SetDescription sets the help text
func (n *Node) SetDescription(description string) *Node {
	n.description = description
	return n
}

// SetSender sets the sender requirement
func (n *Node) SetSender(req *SenderRequirement) *Node {
	n.sender = req
	return n
}

// Matches reports whether token selects this literal
func (n *Node) Matches(token string) bool {
	if n.kind != KindLiteral {
		return false
	}
	if n.name == token {
		return true
	}
	for _, a := range n.aliases {
		if a == token {
			return true
		}
	}
	return false
}

func (n *Node) literalNames() []string {
	return append([]string{n.name}, n.aliases...)
}

// AddChild appends child. Sibling names and literal aliases must be unique,
// a node holds at most one flag group, and flag groups have no children.
func (n *Node) AddChild(child *Node) error {
	switch {
	case child == nil:
		return mdwerror.Wrap(ErrInvalidTree, "nil child")
	case child.kind == KindRoot:
		return mdwerror.Wrap(ErrInvalidTree, "root node cannot be a child")
	case child.parent != nil:
		return mdwerror.Wrap(ErrInvalidTree, fmt.Sprintf("node %q already has a parent", child.name))
	case n.kind == KindFlags:
		return mdwerror.Wrap(ErrInvalidTree, "flag group cannot have children")
	case child.kind == KindArgument && child.parser == nil:
		return mdwerror.Wrap(ErrInvalidTree, fmt.Sprintf("argument %q has no parser", child.name))
	case child.name == "":
		return mdwerror.Wrap(ErrInvalidTree, "node name is empty")
	}

	for _, sibling := range n.children {
		if sibling.name == child.name {
			return mdwerror.Wrap(ErrDuplicateNode, fmt.Sprintf("%q already exists under %q", child.name, n.displayName())).
				WithDetail("node", child.name)
		}
		if sibling.kind == KindLiteral && child.kind == KindLiteral {
			for _, name := range child.literalNames() {
				if sibling.Matches(name) {
					return mdwerror.Wrap(ErrDuplicateNode, fmt.Sprintf("alias %q collides with %q", name, sibling.name)).
						WithDetail("node", child.name)
				}
			}
		}
	}

	if name := repeatedArgument(n, child); name != "" {
		return mdwerror.Wrap(ErrInvalidTree, fmt.Sprintf("argument %q appears twice on one path", name)).
			WithDetail("node", name)
	}

	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// repeatedArgument returns the name of an argument that would occur twice
// on one path if child were attached below n. Values are stored by name,
// so such a path could not hold both.
func repeatedArgument(n, child *Node) string {
	seen := make(map[string]bool)
	for cur := n; cur != nil; cur = cur.parent {
		if cur.kind == KindArgument {
			seen[cur.name] = true
		}
	}

	var walk func(node *Node, seen map[string]bool) string
	walk = func(node *Node, seen map[string]bool) string {
		if node.kind == KindArgument {
			if seen[node.name] {
				return node.name
			}
			next := make(map[string]bool, len(seen)+1)
			for k := range seen {
				next[k] = true
			}
			next[node.name] = true
			seen = next
		}
		for _, c := range node.children {
			if name := walk(c, seen); name != "" {
				return name
			}
		}
		return ""
	}
	return walk(child, seen)
}

func (n *Node) displayName() string {
	if n.kind == KindRoot {
		return "<root>"
	}
	return n.name
}

func (n *Node) flagsChild() *Node {
	for _, c := range n.children {
		if c.kind == KindFlags {
			return c
		}
	}
	return nil
}

// Nodes returns the nodes from the first command literal down to n
func (n *Node) Nodes() []*Node {
	var path []*Node
	for cur := n; cur != nil && cur.kind != KindRoot; cur = cur.parent {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Path returns the node names from the first command literal down to n
func (n *Node) Path() []string {
	nodes := n.Nodes()
	names := make([]string, len(nodes))
	for i, node := range nodes {
		names[i] = node.name
	}
	return names
}

// Token renders the node as it appears in a syntax line
func (n *Node) Token() string {
	switch n.kind {
	case KindLiteral:
		return n.name
	case KindArgument:
		return "<" + n.name + ">"
	case KindFlags:
		fp := n.FlagParser()
		if fp == nil {
			return ""
		}
		parts := make([]string, 0, len(fp.Flags()))
		for _, f := range fp.Flags() {
			parts = append(parts, f.Syntax())
		}
		return strings.Join(parts, " ")
	}
	return ""
}

// Syntax renders the path to n followed by what may come next. A single
// continuation is expanded, alternatives are listed as (a|<b>), and
// optional continuations of executable nodes are bracketed.
func (n *Node) Syntax() string {
	var parts []string
	for _, node := range n.Nodes() {
		parts = append(parts, node.Token())
	}

	cur := n
	for len(cur.children) > 0 {
		var next string
		if len(cur.children) == 1 {
			next = cur.children[0].Token()
		} else {
			alts := make([]string, len(cur.children))
			for i, c := range cur.children {
				alts[i] = c.Token()
			}
			next = "(" + strings.Join(alts, "|") + ")"
		}

		if cur.IsExecutable() {
			if len(cur.children) == 1 && cur.children[0].kind == KindFlags {
				parts = append(parts, next)
			} else {
				parts = append(parts, "["+next+"]")
			}
			break
		}
		parts = append(parts, next)
		if len(cur.children) > 1 {
			break
		}
		cur = cur.children[0]
	}

	return strings.Join(parts, " ")
}
