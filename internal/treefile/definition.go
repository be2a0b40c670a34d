// Package treefile loads command trees from YAML or TOML definition files.
package treefile

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Definition is the root of a command definition file
type Definition struct {
	Version  int          `yaml:"version" toml:"version"`
	Commands []CommandDef `yaml:"commands" toml:"commands"`
}

// CommandDef describes a literal and everything below it. A command with an
// action is executable after its arguments, or after its flags when flags
// are declared.
type CommandDef struct {
	Name        string        `yaml:"name" toml:"name"`
	Aliases     []string      `yaml:"aliases,omitempty" toml:"aliases,omitempty"`
	Description string        `yaml:"description,omitempty" toml:"description,omitempty"`
	Permission  string        `yaml:"permission,omitempty" toml:"permission,omitempty"`
	Sender      string        `yaml:"sender,omitempty" toml:"sender,omitempty"`
	Action      string        `yaml:"action,omitempty" toml:"action,omitempty"`
	Arguments   []ArgumentDef `yaml:"arguments,omitempty" toml:"arguments,omitempty"`
	Flags       []FlagDef     `yaml:"flags,omitempty" toml:"flags,omitempty"`
	Subcommands []CommandDef  `yaml:"subcommands,omitempty" toml:"subcommands,omitempty"`
}

// ArgumentDef describes a typed argument
type ArgumentDef struct {
	Name string `yaml:"name" toml:"name"`
	Type string `yaml:"type" toml:"type"`
	// Optional makes the command executable without this and all following
	// arguments
	Optional    bool      `yaml:"optional,omitempty" toml:"optional,omitempty"`
	Range       *RangeDef `yaml:"range,omitempty" toml:"range,omitempty"`
	Completions string    `yaml:"completions,omitempty" toml:"completions,omitempty"`
	Mode        string    `yaml:"mode,omitempty" toml:"mode,omitempty"`
	Liberal     bool      `yaml:"liberal,omitempty" toml:"liberal,omitempty"`
}

// FlagDef describes a flag. A flag without a type is a presence flag.
type FlagDef struct {
	Name        string    `yaml:"name" toml:"name"`
	Aliases     []string  `yaml:"aliases,omitempty" toml:"aliases,omitempty"`
	Description string    `yaml:"description,omitempty" toml:"description,omitempty"`
	Permission  string    `yaml:"permission,omitempty" toml:"permission,omitempty"`
	Type        string    `yaml:"type,omitempty" toml:"type,omitempty"`
	Range       *RangeDef `yaml:"range,omitempty" toml:"range,omitempty"`
	Completions string    `yaml:"completions,omitempty" toml:"completions,omitempty"`
	Mode        string    `yaml:"mode,omitempty" toml:"mode,omitempty"`
	Liberal     bool      `yaml:"liberal,omitempty" toml:"liberal,omitempty"`
}

// RangeDef bounds a numeric argument. Bounds are kept as text and parsed
// in the argument's type.
type RangeDef struct {
	Min Bound `yaml:"min,omitempty" toml:"min,omitempty"`
	Max Bound `yaml:"max,omitempty" toml:"max,omitempty"`
}

// Bound is a numeric bound written as a number or a string
type Bound string

// UnmarshalYAML accepts any scalar
func (b *Bound) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: range bound must be a scalar", node.Line)
	}
	*b = Bound(node.Value)
	return nil
}

// UnmarshalTOML accepts integers, floats and strings
func (b *Bound) UnmarshalTOML(v interface{}) error {
	switch v := v.(type) {
	case int64, float64, string:
		*b = Bound(fmt.Sprint(v))
		return nil
	default:
		return fmt.Errorf("range bound must be a number or string, got %T", v)
	}
}
