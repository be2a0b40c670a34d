// File: registry.go
// Title: Parser Registry
// Description: Maps value types to parser factories and modifier kinds to
//              modifier mappers. The registry resolves declarative
//              modifiers into parser parameters and builds parsers for a
//              requested type, falling back to an enum parser for types
//              implementing argument.Enum.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/msto63/argtree/foundation/cmdtree/argument"
	"github.com/msto63/argtree/foundation/cmdtree/params"
	mdwerror "github.com/msto63/argtree/foundation/core/error"
	"github.com/msto63/argtree/foundation/core/log"
)

// ErrNoParser matches errors returned by CreateParser when no parser can be
// built for a type.
var ErrNoParser = mdwerror.New("no parser available").WithCode(mdwerror.CodeNoParser)

// Factory builds a parser from resolved parameters
type Factory func(params.Parameters) argument.Parser

// Mapper turns a modifier into parameters for a value type. Mappers return
// empty parameters when the modifier does not apply to the type.
type Mapper func(mod Modifier, vt argument.ValueType) params.Parameters

// Options configures a Registry
type Options struct {
	// Logger receives registration and mapping diagnostics
	Logger *log.Logger
	// Bare skips the standard parsers and mappers
	Bare bool
}

// Registry holds parser factories and modifier mappers. Reads may run
// concurrently; registrations are serialized.
type Registry struct {
	mu        sync.RWMutex
	factories map[argument.ValueType]Factory
	mappers   map[ModifierKind]Mapper
	logger    *log.Logger
}

// New creates a registry with the standard parsers and mappers
func New() *Registry {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a registry with the given options
func NewWithOptions(opts Options) *Registry {
	logger := opts.Logger
	if logger == nil {
		logger = log.GetDefault()
	}

	r := &Registry{
		factories: make(map[argument.ValueType]Factory),
		mappers:   make(map[ModifierKind]Mapper),
		logger:    logger.WithField("component", "cmdtree-registry"),
	}
	if !opts.Bare {
		r.registerStandard()
	}
	return r
}

// RegisterParserFactory binds a factory to the canonical form of vt. A later
// registration for the same type replaces the earlier one.
func (r *Registry) RegisterParserFactory(vt argument.ValueType, factory Factory) {
	key := vt.Canonical()

	r.mu.Lock()
	_, replaced := r.factories[key]
	r.factories[key] = factory
	r.mu.Unlock()

	r.logger.Debug("Parser factory registered", log.Fields{
		"type":     key.String(),
		"replaced": replaced,
	})
}

// RegisterModifierMapper binds a mapper to a modifier kind, replacing any
// earlier mapper for the kind.
func (r *Registry) RegisterModifierMapper(kind ModifierKind, mapper Mapper) {
	r.mu.Lock()
	r.mappers[kind] = mapper
	r.mu.Unlock()

	r.logger.Debug("Modifier mapper registered", log.Fields{"kind": string(kind)})
}

// Register binds a factory for T
func Register[T any](r *Registry, factory Factory) {
	r.RegisterParserFactory(argument.TypeOf[T](), factory)
}

// ResolveParameters maps each modifier through its mapper and merges the
// results in the order the modifiers are given. Modifiers without a mapper
// contribute nothing.
func (r *Registry) ResolveParameters(vt argument.ValueType, modifiers ...Modifier) params.Parameters {
	resolved := params.Empty()
	for _, mod := range modifiers {
		if mod == nil {
			continue
		}
		r.mu.RLock()
		mapper, ok := r.mappers[mod.Kind()]
		r.mu.RUnlock()
		if !ok {
			continue
		}
		resolved = resolved.Merge(mapper(mod, vt))
	}
	return resolved
}

// CreateParser builds a parser for vt. Pointer types resolve like their
// element type. Enumerations without a registered factory get an
// argument.EnumParser. Otherwise the returned error matches ErrNoParser.
func (r *Registry) CreateParser(vt argument.ValueType, p params.Parameters) (argument.Parser, error) {
	key := vt.Canonical()

	r.mu.RLock()
	factory, ok := r.factories[key]
	r.mu.RUnlock()

	if ok {
		if parser := factory(p); parser != nil {
			return parser, nil
		}
	}

	if key.IsEnum() {
		return argument.NewEnumParser(key), nil
	}

	return nil, mdwerror.New(fmt.Sprintf("no parser available for type %s", key)).
		WithCode(mdwerror.CodeNoParser).
		WithDetail("type", key.String()).
		WithOperation("create_parser")
}

// Parser resolves modifiers and builds the parser in one step
func (r *Registry) Parser(vt argument.ValueType, modifiers ...Modifier) (argument.Parser, error) {
	return r.CreateParser(vt, r.ResolveParameters(vt, modifiers...))
}

// HasParser reports whether a factory is registered for vt or vt is an enum
func (r *Registry) HasParser(vt argument.ValueType) bool {
	key := vt.Canonical()

	r.mu.RLock()
	_, ok := r.factories[key]
	r.mu.RUnlock()

	return ok || key.IsEnum()
}

// Types lists the registered value types ordered by name
func (r *Registry) Types() []argument.ValueType {
	r.mu.RLock()
	types := make([]argument.ValueType, 0, len(r.factories))
	for vt := range r.factories {
		types = append(types, vt)
	}
	r.mu.RUnlock()

	sort.Slice(types, func(i, j int) bool { return types[i].String() < types[j].String() })
	return types
}
