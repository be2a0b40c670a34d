// File: adapter.go
// Title: Host Tree Adapter
// Description: Converts a command tree into a host-neutral node tree that a
//              client can use for completion and validation. Argument nodes
//              are described by a host argument type chosen from a table
//              keyed by the parser's value type. Numeric bounds are emitted
//              only when they differ from the natural limits of the type.
//              The source tree is never modified.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package adapter

import (
	"sync"

	"github.com/msto63/argtree/foundation/cmdtree/argument"
	"github.com/msto63/argtree/foundation/cmdtree/tree"
)

// ArgumentType is the host-side type of an argument node
type ArgumentType string

const (
	TypeWord    ArgumentType = "word"
	TypeString  ArgumentType = "string"
	TypeGreedy  ArgumentType = "greedy"
	TypeInteger ArgumentType = "integer"
	TypeFloat   ArgumentType = "float"
	TypeDouble  ArgumentType = "double"
	TypeBool    ArgumentType = "bool"
)

// HostArgument describes an argument for the host
type HostArgument struct {
	Type ArgumentType `json:"type" yaml:"type"`
	Min  any          `json:"min,omitempty" yaml:"min,omitempty"`
	Max  any          `json:"max,omitempty" yaml:"max,omitempty"`
}

// HostNode is one node of the converted tree
type HostNode struct {
	Name        string        `json:"name" yaml:"name"`
	Kind        string        `json:"kind" yaml:"kind"`
	Aliases     []string      `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Argument    *HostArgument `json:"argument,omitempty" yaml:"argument,omitempty"`
	Executable  bool          `json:"executable" yaml:"executable"`
	Permission  string        `json:"permission,omitempty" yaml:"permission,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Children    []*HostNode   `json:"children,omitempty" yaml:"children,omitempty"`
}

// Mapper produces the host argument for a parser
type Mapper func(p argument.Parser) HostArgument

// Converter maps trees to host nodes
type Converter struct {
	mappers map[argument.ValueType]Mapper
	mutex   sync.RWMutex
}

// NewConverter creates a converter with mappings for the standard types
func NewConverter() *Converter {
	c := &Converter{mappers: make(map[argument.ValueType]Mapper)}

	c.RegisterMapper(argument.TypeOf[string](), mapString)
	for _, vt := range []argument.ValueType{
		argument.TypeOf[int](), argument.TypeOf[int8](), argument.TypeOf[int16](),
		argument.TypeOf[int32](), argument.TypeOf[int64](),
		argument.TypeOf[uint](), argument.TypeOf[uint8](), argument.TypeOf[uint16](),
		argument.TypeOf[uint32](), argument.TypeOf[uint64](),
	} {
		c.RegisterMapper(vt, ranged(TypeInteger))
	}
	c.RegisterMapper(argument.TypeOf[float32](), ranged(TypeFloat))
	c.RegisterMapper(argument.TypeOf[float64](), ranged(TypeDouble))
	c.RegisterMapper(argument.TypeOf[bool](), fixed(TypeBool))
	c.RegisterMapper(argument.TypeOf[argument.FlagValues](), fixed(TypeGreedy))
	c.RegisterMapper(argument.TypeOf[[]string](), fixed(TypeGreedy))

	return c
}

// RegisterMapper sets the mapper for a value type, replacing any previous one
func (c *Converter) RegisterMapper(vt argument.ValueType, m Mapper) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.mappers[vt.Canonical()] = m
}

// Argument returns the host argument for p. Parsers without a mapping are
// described as a single word.
func (c *Converter) Argument(p argument.Parser) HostArgument {
	c.mutex.RLock()
	m, ok := c.mappers[p.ValueType().Canonical()]
	c.mutex.RUnlock()
	if !ok {
		return HostArgument{Type: TypeWord}
	}
	return m(p)
}

// Convert converts the whole tree. The returned root has kind "root".
func (c *Converter) Convert(t *tree.Tree) *HostNode {
	return c.ConvertNode(t.Root())
}

// ConvertNode converts n and its descendants
func (c *Converter) ConvertNode(n *tree.Node) *HostNode {
	h := &HostNode{
		Name:        n.Name(),
		Kind:        n.Kind().String(),
		Aliases:     n.Aliases(),
		Executable:  n.IsExecutable(),
		Permission:  n.Permission(),
		Description: n.Description(),
	}
	if p := n.Parser(); p != nil {
		arg := c.Argument(p)
		h.Argument = &arg
	}
	for _, child := range n.Children() {
		h.Children = append(h.Children, c.ConvertNode(child))
	}
	return h
}

func fixed(t ArgumentType) Mapper {
	return func(argument.Parser) HostArgument { return HostArgument{Type: t} }
}

func ranged(t ArgumentType) Mapper {
	return func(p argument.Parser) HostArgument {
		arg := HostArgument{Type: t}
		r, ok := p.(argument.Ranged)
		if !ok {
			return arg
		}
		rng := r.Range()
		if rng.MinSet {
			arg.Min = rng.Min
		}
		if rng.MaxSet {
			arg.Max = rng.Max
		}
		return arg
	}
}

func mapString(p argument.Parser) HostArgument {
	m, ok := p.(argument.StringModer)
	if !ok {
		return HostArgument{Type: TypeWord}
	}
	switch m.Mode() {
	case argument.ModeQuoted:
		return HostArgument{Type: TypeString}
	case argument.ModeGreedy:
		return HostArgument{Type: TypeGreedy}
	default:
		return HostArgument{Type: TypeWord}
	}
}
