package tree

import (
	"sort"

	"github.com/msto63/argtree/foundation/cmdtree/argument"
)

// Context carries the values parsed during one invocation. It is created
// per invocation and discarded once the outcome is delivered.
type Context struct {
	sender any
	input  []string
	nodes  []*Node
	values map[string]any
	flags  argument.FlagValues
}

// NewContext creates an empty context for sender
func NewContext(sender any, input []string) *Context {
	return &Context{
		sender: sender,
		input:  append([]string(nil), input...),
		values: make(map[string]any),
	}
}

// Sender returns the invoking sender
func (c *Context) Sender() any { return c.sender }

// Input returns the tokens of the invocation
func (c *Context) Input() []string { return append([]string(nil), c.input...) }

// Flags returns the flags given, empty if the command has none
func (c *Context) Flags() argument.FlagValues { return c.flags }

// Nodes returns the matched nodes in order
func (c *Context) Nodes() []*Node { return append([]*Node(nil), c.nodes...) }

// Path returns the names of the matched nodes
func (c *Context) Path() []string {
	names := make([]string, len(c.nodes))
	for i, n := range c.nodes {
		names[i] = n.name
	}
	return names
}

// Get returns the value stored under name
func (c *Context) Get(name string) (any, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Has reports whether name holds a value
func (c *Context) Has(name string) bool {
	_, ok := c.values[name]
	return ok
}

// Set stores a value under name. Handlers may use it for scratch data.
func (c *Context) Set(name string, value any) {
	c.values[name] = value
}

// Names returns the stored value names in sorted order
func (c *Context) Names() []string {
	names := make([]string, 0, len(c.values))
	for name := range c.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Context) push(n *Node) {
	c.nodes = append(c.nodes, n)
}

// Get returns the value stored under name as T
func Get[T any](c *Context, name string) (T, bool) {
	raw, ok := c.values[name]
	if !ok {
		var zero T
		return zero, false
	}
	v, ok := raw.(T)
	return v, ok
}

// GetOr returns the value stored under name as T, or def
func GetOr[T any](c *Context, name string, def T) T {
	if v, ok := Get[T](c, name); ok {
		return v
	}
	return def
}
