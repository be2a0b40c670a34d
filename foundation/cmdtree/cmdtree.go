// File: cmdtree.go
// Title: Command Tree Manager
// Description: High-level entry point that wires a parser registry, a
//              command tree, the execution pipeline and the host adapter.
//              Hosts register commands through the manager, dispatch input
//              lines and query completions and the converted host tree.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

// Package cmdtree provides typed command trees with a pluggable parser
// registry and asynchronous execution.
package cmdtree

import (
	"context"
	"sync"
	"time"

	mdwadapter "github.com/msto63/argtree/foundation/cmdtree/adapter"
	mdwargument "github.com/msto63/argtree/foundation/cmdtree/argument"
	mdwexecutor "github.com/msto63/argtree/foundation/cmdtree/executor"
	mdwregistry "github.com/msto63/argtree/foundation/cmdtree/registry"
	mdwtree "github.com/msto63/argtree/foundation/cmdtree/tree"
	mdwlog "github.com/msto63/argtree/foundation/core/log"
)

// Options configures a Manager
type Options struct {
	// Logger for all components (optional, defaults to the default logger)
	Logger *mdwlog.Logger

	// Registry to build parsers with (optional, defaults to a fresh registry
	// with the standard parsers)
	Registry *mdwregistry.Registry

	// Permissions decides permission checks; nil grants everything
	Permissions mdwexecutor.PermissionChecker

	// Auditor receives every outcome (optional)
	Auditor mdwexecutor.Auditor

	// StripSlash accepts "/cmd" for "cmd"
	StripSlash bool

	// Timeout bounds each invocation (default: none)
	Timeout time.Duration

	// Workers bounds ExecuteAll concurrency (default: 4)
	Workers int

	// EnableAuditLog writes every outcome at audit level
	EnableAuditLog bool
}

// Manager coordinates registry, tree and pipeline
type Manager struct {
	registry  *mdwregistry.Registry
	pipeline  *mdwexecutor.Pipeline
	converter *mdwadapter.Converter
	logger    *mdwlog.Logger
	mutex     sync.Mutex
}

// NewManager creates a manager with an empty tree
func NewManager(opts ...Options) *Manager {
	var options Options
	if len(opts) > 0 {
		options = opts[0]
	}
	if options.Logger == nil {
		options.Logger = mdwlog.GetDefault()
	}
	if options.Registry == nil {
		options.Registry = mdwregistry.NewWithOptions(mdwregistry.Options{Logger: options.Logger})
	}

	logger := options.Logger.WithField("component", "cmdtree-manager")

	m := &Manager{
		registry: options.Registry,
		pipeline: mdwexecutor.New(mdwexecutor.Options{
			Tree:           mdwtree.New(),
			Permissions:    options.Permissions,
			Auditor:        options.Auditor,
			Logger:         options.Logger,
			StripSlash:     options.StripSlash,
			Timeout:        options.Timeout,
			Workers:        options.Workers,
			EnableAuditLog: options.EnableAuditLog,
		}),
		converter: mdwadapter.NewConverter(),
		logger:    logger,
	}

	logger.Debug("Command manager initialized", mdwlog.Fields{
		"parserTypes": len(m.registry.Types()),
		"stripSlash":  options.StripSlash,
		"timeout":     options.Timeout,
	})
	return m
}

// Registry returns the parser registry
func (m *Manager) Registry() *mdwregistry.Registry { return m.registry }

// Pipeline returns the execution pipeline
func (m *Manager) Pipeline() *mdwexecutor.Pipeline { return m.pipeline }

// Converter returns the host adapter
func (m *Manager) Converter() *mdwadapter.Converter { return m.converter }

// Tree returns the current tree
func (m *Manager) Tree() *mdwtree.Tree { return m.pipeline.Tree() }

// Parser builds a parser for vt from the registry
func (m *Manager) Parser(vt mdwargument.ValueType, modifiers ...mdwregistry.Modifier) (mdwargument.Parser, error) {
	return m.registry.Parser(vt, modifiers...)
}

// Register adds a command. The current tree is copied on write, so
// invocations already running keep the tree they started with.
func (m *Manager) Register(b *mdwtree.Builder) error {
	cmd, err := b.Build()
	if err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	next := m.pipeline.Tree().Clone()
	if err := next.Insert(cmd); err != nil {
		return err
	}
	m.pipeline.SetTree(next)

	m.logger.Debug("Command registered", mdwlog.Fields{"command": cmd.Name()})
	return nil
}

// ReplaceTree swaps the whole tree
func (m *Manager) ReplaceTree(t *mdwtree.Tree) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.pipeline.SetTree(t)
	m.logger.Info("Command tree replaced", mdwlog.Fields{"commands": len(t.Commands())})
}

// OnComplete registers a completion listener
func (m *Manager) OnComplete(fn func(*mdwexecutor.Outcome)) {
	m.pipeline.OnComplete(fn)
}

// Execute dispatches input asynchronously
func (m *Manager) Execute(ctx context.Context, sender any, input string) *mdwexecutor.Handle {
	return m.pipeline.Execute(ctx, sender, input)
}

// ExecuteSync dispatches input and waits for the outcome
func (m *Manager) ExecuteSync(ctx context.Context, sender any, input string) (*mdwexecutor.Outcome, error) {
	return m.pipeline.ExecuteSync(ctx, sender, input)
}

// Suggest returns completions visible to sender
func (m *Manager) Suggest(ctx context.Context, sender any, input string) []string {
	return m.pipeline.Suggest(ctx, sender, input)
}

// HostTree converts the current tree for a host
func (m *Manager) HostTree() *mdwadapter.HostNode {
	return m.converter.Convert(m.Tree())
}
