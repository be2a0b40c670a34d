package tree

import (
	"fmt"

	"github.com/msto63/argtree/foundation/cmdtree/argument"
	mdwerror "github.com/msto63/argtree/foundation/core/error"
)

// Builder assembles one command path. The permission, sender requirement,
// description and handler apply to the last node of the path.
//
//	b := tree.Command("tp", "teleport").
//		Argument("x", xParser).
//		Argument("y", yParser).
//		Permission("cmd.tp").
//		Handler(handleTeleport)
type Builder struct {
	nodes       []*Node
	permission  string
	description string
	sender      *SenderRequirement
	handler     Handler
	err         error
}

// Command starts a builder with the command literal
func Command(name string, aliases ...string) *Builder {
	return &Builder{nodes: []*Node{NewLiteral(name, aliases...)}}
}

// Literal appends a keyword
func (b *Builder) Literal(name string, aliases ...string) *Builder {
	b.nodes = append(b.nodes, NewLiteral(name, aliases...))
	return b
}

// Argument appends a typed argument
func (b *Builder) Argument(name string, parser argument.Parser) *Builder {
	if parser == nil && b.err == nil {
		b.err = mdwerror.Wrap(ErrInvalidTree, fmt.Sprintf("argument %q has no parser", name))
	}
	b.nodes = append(b.nodes, NewArgument(name, parser))
	return b
}

// Flags appends the flag group. It must be the last element.
func (b *Builder) Flags(flags ...argument.Flag) *Builder {
	b.nodes = append(b.nodes, NewFlags(argument.NewFlagParser(flags...)))
	return b
}

// Permission sets the permission of the command
func (b *Builder) Permission(permission string) *Builder {
	b.permission = permission
	return b
}

// Description sets the help text of the command
func (b *Builder) Description(description string) *Builder {
	b.description = description
	return b
}

// Sender restricts the senders allowed to run the command
func (b *Builder) Sender(req *SenderRequirement) *Builder {
	b.sender = req
	return b
}

// Handler sets the handler of the command
func (b *Builder) Handler(h Handler) *Builder {
	b.handler = h
	return b
}

// Build links the nodes into a detached chain and returns its first node
func (b *Builder) Build() (*Node, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.handler == nil {
		return nil, mdwerror.Wrap(ErrInvalidTree, fmt.Sprintf("command %q has no handler", b.nodes[0].name))
	}

	for i := 1; i < len(b.nodes); i++ {
		if err := b.nodes[i-1].AddChild(b.nodes[i]); err != nil {
			return nil, err
		}
	}

	last := b.nodes[len(b.nodes)-1]
	last.handler = b.handler
	last.permission = b.permission
	last.description = b.description
	last.sender = b.sender
	return b.nodes[0], nil
}
