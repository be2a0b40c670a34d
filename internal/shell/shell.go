// Package shell implements the interactive prompt: line editing and history
// through liner, completion backed by the command tree and live reloading of
// the definitions file.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/msto63/argtree/foundation/cmdtree"
	"github.com/msto63/argtree/foundation/cmdtree/executor"
	"github.com/msto63/argtree/foundation/cmdtree/tree"
	mdwerror "github.com/msto63/argtree/foundation/core/error"
	mdwlog "github.com/msto63/argtree/foundation/core/log"
	"github.com/msto63/argtree/internal/render"
	"github.com/msto63/argtree/pkg/core/cache"
)

// LineReader reads one line of input. *liner.State implements it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// Options configures a Shell
type Options struct {
	Manager  *cmdtree.Manager
	Sender   any
	Prompt   string
	Out      io.Writer
	Renderer *render.Renderer
	Logger   *mdwlog.Logger

	// Reload rebuilds the tree, used by the "reload" builtin and the
	// file watcher. Nil disables reloading.
	Reload func() (*tree.Tree, error)

	// CompletionTTL bounds how long completions are memoized
	CompletionTTL time.Duration
}

// Shell is an interactive command prompt
type Shell struct {
	opts        Options
	completions *cache.Cache[[]string]
	logger      *mdwlog.Logger
}

// New creates a shell
func New(opts Options) *Shell {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Prompt == "" {
		opts.Prompt = "> "
	}
	if opts.Renderer == nil {
		opts.Renderer = render.New(opts.Out)
	}
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.CompletionTTL <= 0 {
		opts.CompletionTTL = 5 * time.Second
	}

	return &Shell{
		opts:        opts,
		completions: cache.New[[]string](cache.Config{MaxItems: 256, TTL: opts.CompletionTTL}),
		logger:      opts.Logger.WithField("component", "shell"),
	}
}

// Complete returns full candidate lines for line, as liner expects
func (s *Shell) Complete(line string) []string {
	suggestions, _ := s.completions.GetOrSet(line, func() ([]string, error) {
		return s.opts.Manager.Suggest(context.Background(), s.opts.Sender, line), nil
	})
	if len(suggestions) == 0 {
		return nil
	}

	head := ""
	if i := strings.LastIndexByte(line, ' '); i >= 0 {
		head = line[:i+1]
	}
	lines := make([]string, len(suggestions))
	for i, suggestion := range suggestions {
		lines[i] = head + suggestion
	}
	return lines
}

// Reload rebuilds the tree and swaps it into the manager. The old tree stays
// active if rebuilding fails.
func (s *Shell) Reload() error {
	if s.opts.Reload == nil {
		return mdwerror.New("reloading is not configured").WithCode(mdwerror.CodeConfigError)
	}
	t, err := s.opts.Reload()
	if err != nil {
		s.logger.WarnWithErr("Reload failed, keeping current commands", err)
		return err
	}
	s.opts.Manager.ReplaceTree(t)
	s.completions.Clear()
	s.logger.Info("Commands reloaded", mdwlog.Fields{"commands": len(t.Commands())})
	return nil
}

// Handle processes one input line. It reports whether the shell should stop.
func (s *Shell) Handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return false
	case line == "exit" || line == "quit":
		return true
	case line == "help":
		s.printHelp(ctx)
		return false
	case line == "reload":
		if err := s.Reload(); err != nil {
			fmt.Fprintln(s.opts.Out, err)
		} else {
			fmt.Fprintln(s.opts.Out, "reloaded")
		}
		return false
	case strings.HasPrefix(line, "?"):
		partial := strings.TrimLeft(line[1:], " ")
		fmt.Fprintln(s.opts.Out, s.opts.Renderer.Suggestions(s.opts.Manager.Suggest(ctx, s.opts.Sender, partial)))
		return false
	}

	outcome, err := s.opts.Manager.ExecuteSync(ctx, s.opts.Sender, line)
	if err != nil {
		fmt.Fprintln(s.opts.Out, s.opts.Renderer.Failure(&executor.Failure{Kind: executor.KindCancelled, Message: err.Error()}))
		return false
	}
	if msg := s.opts.Renderer.Outcome(outcome); msg != "" {
		fmt.Fprintln(s.opts.Out, msg)
	}
	return false
}

// Run reads lines from r until EOF, an aborted prompt, "exit" or the end
// of ctx.
func (s *Shell) Run(ctx context.Context, r LineReader) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := r.Prompt(s.opts.Prompt)
		if err != nil {
			if err == io.EOF || err == liner.ErrPromptAborted {
				fmt.Fprintln(s.opts.Out)
				return nil
			}
			return mdwerror.Wrap(err, "read input").WithCode(mdwerror.CodeInternal)
		}
		if strings.TrimSpace(line) != "" {
			r.AppendHistory(line)
		}
		if s.Handle(ctx, line) {
			return nil
		}
	}
}

// Close releases the completion cache
func (s *Shell) Close() {
	s.completions.Close()
}

func (s *Shell) printHelp(ctx context.Context) {
	visible := make(map[string]bool)
	for _, name := range s.opts.Manager.Suggest(ctx, s.opts.Sender, "") {
		visible[name] = true
	}

	for _, n := range s.opts.Manager.Tree().Executables() {
		if path := n.Path(); len(path) == 0 || !visible[path[0]] {
			continue
		}
		line := "  /" + n.Syntax()
		if d := n.Description(); d != "" {
			line += "  " + d
		}
		fmt.Fprintln(s.opts.Out, line)
	}
	fmt.Fprintln(s.opts.Out, "  help | reload | ? <partial> | exit")
}

// Terminal is a liner-backed LineReader with persistent history
type Terminal struct {
	*liner.State
	historyFile string
}

// OpenTerminal puts the terminal into line editing mode and loads history
// from historyFile if it exists.
func OpenTerminal(historyFile string, complete func(string) []string) *Terminal {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(complete)

	if f, err := os.Open(historyFile); err == nil {
		state.ReadHistory(f)
		f.Close()
	}
	return &Terminal{State: state, historyFile: historyFile}
}

// Close writes history and restores the terminal
func (t *Terminal) Close() error {
	if t.historyFile != "" {
		if err := os.MkdirAll(filepath.Dir(t.historyFile), 0o755); err == nil {
			if f, err := os.OpenFile(t.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600); err == nil {
				t.State.WriteHistory(f)
				f.Close()
			}
		}
	}
	return t.State.Close()
}
