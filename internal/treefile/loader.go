package treefile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/msto63/argtree/foundation/cmdtree/argument"
	"github.com/msto63/argtree/foundation/cmdtree/registry"
	"github.com/msto63/argtree/foundation/cmdtree/tree"
	mdwerror "github.com/msto63/argtree/foundation/core/error"
	mdwlog "github.com/msto63/argtree/foundation/core/log"
)

// Format of a definition file
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath detects the format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", mdwerror.Newf("unsupported definition file extension %q", filepath.Ext(path)).
		WithCode(mdwerror.CodeInvalidConfig).
		WithDetail("path", path)
}

// Loader builds command trees from definition files
type Loader struct {
	registry *registry.Registry
	actions  map[string]tree.Handler
	types    map[string]argument.ValueType
	senders  map[string]*tree.SenderRequirement
	logger   *mdwlog.Logger
}

// NewLoader creates a loader resolving argument types through reg. The
// standard type names are known from the start.
func NewLoader(reg *registry.Registry, logger *mdwlog.Logger) *Loader {
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	l := &Loader{
		registry: reg,
		actions:  make(map[string]tree.Handler),
		types:    make(map[string]argument.ValueType),
		senders:  make(map[string]*tree.SenderRequirement),
		logger:   logger.WithField("component", "treefile"),
	}

	l.RegisterType("int", argument.TypeOf[int]())
	l.RegisterType("int8", argument.TypeOf[int8]())
	l.RegisterType("int16", argument.TypeOf[int16]())
	l.RegisterType("int32", argument.TypeOf[int32]())
	l.RegisterType("int64", argument.TypeOf[int64]())
	l.RegisterType("uint", argument.TypeOf[uint]())
	l.RegisterType("uint8", argument.TypeOf[uint8]())
	l.RegisterType("uint16", argument.TypeOf[uint16]())
	l.RegisterType("uint32", argument.TypeOf[uint32]())
	l.RegisterType("uint64", argument.TypeOf[uint64]())
	l.RegisterType("float32", argument.TypeOf[float32]())
	l.RegisterType("float64", argument.TypeOf[float64]())
	l.RegisterType("bool", argument.TypeOf[bool]())
	l.RegisterType("char", argument.TypeOf[argument.Char]())
	l.RegisterType("string", argument.TypeOf[string]())
	l.RegisterType("strings", argument.TypeOf[[]string]())

	return l
}

// RegisterAction makes a handler available under name
func (l *Loader) RegisterAction(name string, h tree.Handler) {
	l.actions[name] = h
}

// RegisterType makes a value type available under name
func (l *Loader) RegisterType(name string, vt argument.ValueType) {
	l.types[name] = vt
}

// RegisterSender makes a sender requirement available under name
func (l *Loader) RegisterSender(name string, req *tree.SenderRequirement) {
	l.senders[name] = req
}

// Actions returns the registered action names, sorted
func (l *Loader) Actions() []string {
	names := make([]string, 0, len(l.actions))
	for name := range l.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFile reads and builds the definition file at path
func (l *Loader) LoadFile(path string) (*tree.Tree, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to read definition file").
			WithCode(mdwerror.CodeConfigError).
			WithDetail("path", path)
	}

	t, err := l.Load(data, format)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to load "+path).WithDetail("path", path)
	}
	return t, nil
}

// Load decodes data and builds a tree
func (l *Loader) Load(data []byte, format Format) (*tree.Tree, error) {
	def, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return l.Build(def)
}

// Decode parses a definition without building it. Unknown keys are errors.
func Decode(data []byte, format Format) (*Definition, error) {
	var def Definition
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, mdwerror.Wrap(err, "invalid YAML definition").WithCode(mdwerror.CodeInvalidConfig)
		}
	case FormatTOML:
		meta, err := toml.Decode(string(data), &def)
		if err != nil {
			return nil, mdwerror.Wrap(err, "invalid TOML definition").WithCode(mdwerror.CodeInvalidConfig)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, mdwerror.Newf("unknown definition key %q", undecoded[0].String()).WithCode(mdwerror.CodeInvalidConfig)
		}
	default:
		return nil, mdwerror.Newf("unsupported definition format %q", format).WithCode(mdwerror.CodeInvalidConfig)
	}

	if def.Version > 1 {
		return nil, mdwerror.Newf("definition version %d is not supported", def.Version).
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("version", def.Version)
	}
	return &def, nil
}

// Build creates a tree from a decoded definition
func (l *Loader) Build(def *Definition) (*tree.Tree, error) {
	t := tree.New()
	for _, cmd := range def.Commands {
		node, err := l.buildCommand(cmd, cmd.Name)
		if err != nil {
			return nil, err
		}
		if err := t.Insert(node); err != nil {
			return nil, mdwerror.Wrap(err, fmt.Sprintf("command %q", cmd.Name))
		}
	}

	l.logger.Debug("Command tree built", mdwlog.Fields{
		"commands":    len(t.Commands()),
		"executables": len(t.Executables()),
	})
	return t, nil
}

func (l *Loader) buildCommand(def CommandDef, path string) (*tree.Node, error) {
	if def.Name == "" {
		return nil, invalid(path, "command without name")
	}

	lit := tree.NewLiteral(def.Name, def.Aliases...)
	lit.SetDescription(def.Description)
	lit.SetPermission(def.Permission)

	var handler tree.Handler
	if def.Action != "" {
		h, ok := l.actions[def.Action]
		if !ok {
			return nil, invalid(path, fmt.Sprintf("unknown action %q", def.Action))
		}
		handler = h
	}

	var sender *tree.SenderRequirement
	if def.Sender != "" {
		req, ok := l.senders[def.Sender]
		if !ok {
			return nil, invalid(path, fmt.Sprintf("unknown sender %q", def.Sender))
		}
		sender = req
	}

	if handler == nil && (len(def.Arguments) > 0 || len(def.Flags) > 0) {
		return nil, invalid(path, "arguments and flags require an action")
	}
	if handler == nil && len(def.Subcommands) == 0 {
		return nil, invalid(path, "command has neither an action nor subcommands")
	}

	for _, sub := range def.Subcommands {
		child, err := l.buildCommand(sub, path+" "+sub.Name)
		if err != nil {
			return nil, err
		}
		if err := lit.AddChild(child); err != nil {
			return nil, mdwerror.Wrap(err, path)
		}
	}

	if handler == nil {
		return lit, nil
	}

	executable := func(n *tree.Node) {
		n.SetHandler(handler)
		if sender != nil {
			n.SetSender(sender)
		}
	}

	cur := lit
	optional := false
	for _, a := range def.Arguments {
		if a.Optional {
			if !optional {
				executable(cur)
			}
			optional = true
		} else if optional {
			return nil, invalid(path, fmt.Sprintf("required argument %q follows an optional one", a.Name))
		}

		p, err := l.parser(path, a.Name, a.Type, a.Range, a.Completions, a.Mode, a.Liberal)
		if err != nil {
			return nil, err
		}
		node := tree.NewArgument(a.Name, p)
		if err := cur.AddChild(node); err != nil {
			return nil, mdwerror.Wrap(err, path)
		}
		cur = node
		if optional {
			executable(cur)
		}
	}

	if len(def.Flags) == 0 {
		executable(cur)
		return lit, nil
	}

	flags := make([]argument.Flag, 0, len(def.Flags))
	for _, f := range def.Flags {
		flag := argument.Flag{Name: f.Name, Aliases: f.Aliases, Description: f.Description, Permission: f.Permission}
		if f.Type != "" {
			p, err := l.parser(path, "--"+f.Name, f.Type, f.Range, f.Completions, f.Mode, f.Liberal)
			if err != nil {
				return nil, err
			}
			flag.Parser = p
		}
		flags = append(flags, flag)
	}
	node := tree.NewFlags(argument.NewFlagParser(flags...))
	if err := cur.AddChild(node); err != nil {
		return nil, mdwerror.Wrap(err, path)
	}
	executable(node)
	return lit, nil
}

func (l *Loader) parser(path, name, typeName string, rng *RangeDef, completions, mode string, liberal bool) (argument.Parser, error) {
	vt, ok := l.types[typeName]
	if !ok {
		return nil, invalid(path, fmt.Sprintf("argument %q has unknown type %q", name, typeName))
	}

	var mods []registry.Modifier
	if rng != nil {
		mods = append(mods, registry.Range{Min: string(rng.Min), Max: string(rng.Max)})
	}
	if completions != "" {
		mods = append(mods, registry.Completions{Values: completions})
	}
	if mode != "" {
		m, err := argument.ParseStringMode(mode)
		if err != nil {
			return nil, invalid(path, fmt.Sprintf("argument %q: %v", name, err))
		}
		mods = append(mods, registry.StringMode{Mode: m})
	}
	if liberal {
		mods = append(mods, registry.Liberal{})
	}

	p, err := l.registry.Parser(vt, mods...)
	if err != nil {
		return nil, mdwerror.Wrap(err, fmt.Sprintf("%s: argument %q", path, name))
	}
	return p, nil
}

func invalid(path, msg string) error {
	return mdwerror.Newf("%s: %s", path, msg).
		WithCode(mdwerror.CodeInvalidTree).
		WithDetail("command", path)
}
