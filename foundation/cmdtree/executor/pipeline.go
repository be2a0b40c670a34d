// File: pipeline.go
// Title: Asynchronous Execution Pipeline
// Description: Runs invocations on their own goroutines. Each invocation
//              tokenizes its input, walks the tree, checks permissions and
//              sender requirements, invokes the handler and delivers exactly
//              one Outcome to its Handle, the audit sink and the completion
//              listeners.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation
// - 2026-10-17 v0.1.1: Check flag permissions, hide forbidden flags in suggestions

package executor

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/msto63/argtree/foundation/cmdtree/argument"
	"github.com/msto63/argtree/foundation/cmdtree/tree"
	"github.com/msto63/argtree/foundation/core/log"
)

// PermissionChecker decides whether a sender holds a permission
type PermissionChecker interface {
	HasPermission(ctx context.Context, sender any, permission string) bool
}

// PermissionFunc adapts a function to PermissionChecker
type PermissionFunc func(ctx context.Context, sender any, permission string) bool

// HasPermission calls f
func (f PermissionFunc) HasPermission(ctx context.Context, sender any, permission string) bool {
	return f(ctx, sender, permission)
}

// Auditor persists outcomes
type Auditor interface {
	Record(ctx context.Context, outcome *Outcome) error
}

// Options configures a Pipeline
type Options struct {
	Tree        *tree.Tree
	Permissions PermissionChecker
	Auditor     Auditor
	Logger      *log.Logger
	// StripSlash removes a leading "/" from the command token
	StripSlash bool
	// Timeout bounds each invocation; zero means no limit
	Timeout time.Duration
	// Workers bounds the concurrency of ExecuteAll
	Workers int
	// EnableAuditLog writes every outcome at audit level
	EnableAuditLog bool
}

// Pipeline executes command lines against a tree
type Pipeline struct {
	tree        *tree.Tree
	permissions PermissionChecker
	auditor     Auditor
	logger      *log.Logger
	options     Options
	listeners   []func(*Outcome)
	mutex       sync.RWMutex
}

// New creates a pipeline. A nil tree is replaced by an empty one.
func New(opts Options) *Pipeline {
	if opts.Logger == nil {
		opts.Logger = log.GetDefault()
	}
	if opts.Tree == nil {
		opts.Tree = tree.New()
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}

	return &Pipeline{
		tree:        opts.Tree,
		permissions: opts.Permissions,
		auditor:     opts.Auditor,
		logger:      opts.Logger.WithField("component", "cmdtree-executor"),
		options:     opts,
	}
}

// SetTree swaps the tree. Running invocations keep the tree they started with.
func (p *Pipeline) SetTree(t *tree.Tree) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.tree = t
}

// Tree returns the current tree
func (p *Pipeline) Tree() *tree.Tree {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.tree
}

// OnComplete registers a listener called once per outcome, before the
// outcome becomes visible through its Handle.
func (p *Pipeline) OnComplete(fn func(*Outcome)) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.listeners = append(p.listeners, fn)
}

// Execute starts an invocation and returns immediately
func (p *Pipeline) Execute(ctx context.Context, sender any, input string) *Handle {
	tr := p.Tree()

	var (
		ictx   context.Context
		cancel context.CancelFunc
	)
	if p.options.Timeout > 0 {
		ictx, cancel = context.WithTimeout(ctx, p.options.Timeout)
	} else {
		ictx, cancel = context.WithCancel(ctx)
	}

	h := newHandle(uuid.NewString(), cancel)
	outcome := &Outcome{ID: h.id, Sender: sender, Input: input, Started: time.Now()}

	p.logger.Debug("Executing command", log.Fields{"id": h.id, "input": input})

	go p.run(ictx, h, tr, outcome)
	return h
}

// ExecuteSync runs an invocation and waits for its outcome
func (p *Pipeline) ExecuteSync(ctx context.Context, sender any, input string) (*Outcome, error) {
	return p.Execute(ctx, sender, input).Wait(ctx)
}

// ExecuteAll runs the inputs concurrently, at most Workers at a time, and
// returns the outcomes in input order. The error is non-nil only if ctx
// ends before all outcomes are available.
func (p *Pipeline) ExecuteAll(ctx context.Context, sender any, inputs []string) ([]*Outcome, error) {
	outcomes := make([]*Outcome, len(inputs))

	var g errgroup.Group
	g.SetLimit(p.options.Workers)
	for i, input := range inputs {
		g.Go(func() error {
			o, err := p.ExecuteSync(ctx, sender, input)
			if err != nil {
				return err
			}
			outcomes[i] = o
			return nil
		})
	}

	err := g.Wait()
	return outcomes, err
}

// Suggest returns completions for input, hiding commands the sender lacks
// permission for.
func (p *Pipeline) Suggest(ctx context.Context, sender any, input string) []string {
	if p.options.StripSlash {
		input = strings.TrimPrefix(strings.TrimLeft(input, " "), "/")
	}

	visible := make(map[*tree.Node]bool)
	var isVisible func(n *tree.Node) bool
	isVisible = func(n *tree.Node) bool {
		if v, ok := visible[n]; ok {
			return v
		}
		v := p.permitted(ctx, sender, n.Permission())
		if v && !n.IsExecutable() {
			v = false
			for _, c := range n.Children() {
				if isVisible(c) {
					v = true
					break
				}
			}
		}
		visible[n] = v
		return v
	}

	return p.Tree().SuggestFiltered(sender, input,
		func(_ any, n *tree.Node) bool {
			return isVisible(n)
		},
		func(_ any, f argument.Flag) bool {
			return p.permitted(ctx, sender, f.Permission)
		})
}

func (p *Pipeline) permitted(ctx context.Context, sender any, permission string) bool {
	if permission == "" || p.permissions == nil {
		return true
	}
	return p.permissions.HasPermission(ctx, sender, permission)
}

func (p *Pipeline) tokenize(input string) []string {
	tokens := tree.Tokenize(input)
	if p.options.StripSlash && len(tokens) > 0 {
		tokens[0] = strings.TrimPrefix(tokens[0], "/")
		if tokens[0] == "" {
			tokens = tokens[1:]
		}
	}
	return tokens
}

func (p *Pipeline) run(ctx context.Context, h *Handle, tr *tree.Tree, outcome *Outcome) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
		outcome.Failure = classify(err, outcome.Path)
		outcome.Finished = time.Now()
		p.deliver(ctx, h, outcome)
	}()

	if err = ctx.Err(); err != nil {
		return
	}

	match, perr := tr.Parse(outcome.Sender, p.tokenize(outcome.Input))
	if perr != nil {
		err = perr
		return
	}
	outcome.Context = match.Context
	outcome.Path = match.Context.Path()

	for _, n := range match.Context.Nodes() {
		if !p.permitted(ctx, outcome.Sender, n.Permission()) {
			err = &permissionError{permission: n.Permission()}
			return
		}
		if fp := n.FlagParser(); fp != nil {
			for _, name := range match.Context.Flags().Names() {
				if f, ok := fp.Lookup("--" + name); ok && !p.permitted(ctx, outcome.Sender, f.Permission) {
					err = &permissionError{permission: f.Permission}
					return
				}
			}
		}
	}
	for _, n := range match.Context.Nodes() {
		if req := n.Sender(); req != nil && !req.Accepts(outcome.Sender) {
			err = &senderError{want: req.Name}
			return
		}
	}

	if err = ctx.Err(); err != nil {
		return
	}

	if herr := callHandler(ctx, match.Node.Handler(), match.Context); herr != nil {
		err = &handlerError{err: herr}
	}
}

func callHandler(ctx context.Context, h tree.Handler, cc *tree.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return h(ctx, cc)
}

func (p *Pipeline) deliver(ctx context.Context, h *Handle, o *Outcome) {
	fields := log.Fields{
		"id":          o.ID,
		"input":       o.Input,
		"kind":        o.Kind(),
		"duration_ms": float64(o.Duration().Microseconds()) / 1000,
	}
	if o.Failure != nil {
		fields["error"] = o.Failure.Message
	}

	p.logger.Debug("Command completed", fields)
	if p.options.EnableAuditLog {
		p.logger.Audit("Command executed", fields)
	}

	if p.auditor != nil {
		if err := p.auditor.Record(context.WithoutCancel(ctx), o); err != nil {
			p.logger.WarnWithErr("Failed to record outcome", err, log.Fields{"id": o.ID})
		}
	}

	p.mutex.RLock()
	listeners := slices.Clone(p.listeners)
	p.mutex.RUnlock()
	for _, fn := range listeners {
		fn(o)
	}

	h.complete(o)
	h.cancel()
}
