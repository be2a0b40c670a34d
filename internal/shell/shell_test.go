package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/msto63/argtree/foundation/cmdtree"
	"github.com/msto63/argtree/foundation/cmdtree/argument"
	"github.com/msto63/argtree/foundation/cmdtree/tree"
	mdwlog "github.com/msto63/argtree/foundation/core/log"
	"github.com/msto63/argtree/internal/render"
)

// MockLineReader replays scripted lines and then returns io.EOF
type MockLineReader struct {
	Lines   []string
	History []string
	Prompts int
}

func (m *MockLineReader) Prompt(string) (string, error) {
	m.Prompts++
	if len(m.Lines) == 0 {
		return "", io.EOF
	}
	line := m.Lines[0]
	m.Lines = m.Lines[1:]
	return line, nil
}

func (m *MockLineReader) AppendHistory(item string) {
	m.History = append(m.History, item)
}

func newTestShell(t *testing.T) (*Shell, *bytes.Buffer, *[]string) {
	t.Helper()
	m := cmdtree.NewManager(cmdtree.Options{Logger: mdwlog.Discard(), StripSlash: true})

	level, err := m.Parser(argument.TypeOf[int]())
	if err != nil {
		t.Fatalf("Parser() error = %v", err)
	}

	var ran []string
	record := func(name string) tree.Handler {
		return func(context.Context, *tree.Context) error {
			ran = append(ran, name)
			return nil
		}
	}
	for _, b := range []*tree.Builder{
		tree.Command("volume").Argument("level", level).Description("Set the volume").Handler(record("volume")),
		tree.Command("version").Handler(record("version")),
		tree.Command("admin").Literal("reload").Handler(record("admin reload")),
	} {
		if err := m.Register(b); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
	}

	out := &bytes.Buffer{}
	s := New(Options{
		Manager:  m,
		Out:      out,
		Renderer: render.New(out, render.Options{Plain: true, Prefix: "/"}),
		Logger:   mdwlog.Discard(),
	})
	t.Cleanup(s.Close)
	return s, out, &ran
}

func TestComplete(t *testing.T) {
	s, _, _ := newTestShell(t)

	tests := []struct {
		line string
		want []string
	}{
		{"v", []string{"volume", "version"}},
		{"vol", []string{"volume"}},
		{"admin re", []string{"admin reload"}},
		{"xyz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, s.Complete(tt.line)); diff != "" {
				t.Errorf("Complete(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestRun(t *testing.T) {
	s, out, ran := newTestShell(t)
	reader := &MockLineReader{Lines: []string{
		"volume 10",
		"   ",
		"volume",
		"mute",
		"volume abc",
		"exit",
		"version",
	}}

	if err := s.Run(context.Background(), reader); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if diff := cmp.Diff([]string{"volume"}, *ran); diff != "" {
		t.Errorf("handlers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"volume 10", "volume", "mute", "volume abc", "exit"}, reader.History); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}

	text := out.String()
	for _, want := range []string{
		"Invalid Command Syntax. Correct command syntax is: /volume <level>",
		render.MessageUnknownCommand,
		"Invalid Command Argument: ",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRunStopsAtEOF(t *testing.T) {
	s, _, _ := newTestShell(t)
	reader := &MockLineReader{}
	if err := s.Run(context.Background(), reader); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if reader.Prompts != 1 {
		t.Errorf("Prompts = %d, want 1", reader.Prompts)
	}
}

func TestHandleBuiltins(t *testing.T) {
	s, out, _ := newTestShell(t)
	ctx := context.Background()

	if s.Handle(ctx, "help") {
		t.Fatal("help should not stop the shell")
	}
	if !strings.Contains(out.String(), "/volume <level>  Set the volume") {
		t.Errorf("help output = %q", out.String())
	}

	out.Reset()
	s.Handle(ctx, "? adm")
	if got := out.String(); got != "  admin\n" {
		t.Errorf("? output = %q", got)
	}

	out.Reset()
	s.Handle(ctx, "reload")
	if !strings.Contains(out.String(), "reloading is not configured") {
		t.Errorf("reload output = %q", out.String())
	}

	if !s.Handle(ctx, "quit") {
		t.Error("quit should stop the shell")
	}
}

func TestReload(t *testing.T) {
	s, _, _ := newTestShell(t)

	if diff := cmp.Diff([]string{"volume", "version"}, s.Complete("v")); diff != "" {
		t.Fatalf("Complete() mismatch (-want +got):\n%s", diff)
	}

	next := tree.New()
	if err := next.Register(tree.Command("vanish").Handler(func(context.Context, *tree.Context) error { return nil })); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	s.opts.Reload = func() (*tree.Tree, error) { return next, nil }

	if err := s.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if diff := cmp.Diff([]string{"vanish"}, s.Complete("v")); diff != "" {
		t.Errorf("Complete() after reload mismatch (-want +got):\n%s", diff)
	}

	s.opts.Reload = func() (*tree.Tree, error) { return nil, errors.New("broken file") }
	if err := s.Reload(); err == nil {
		t.Fatal("Reload() expected error")
	}
	if s.opts.Manager.Tree() != next {
		t.Error("failed reload must keep the current tree")
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "commands.yaml")
	if err := os.WriteFile(path, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var changes atomic.Int32
	fired := make(chan struct{}, 4)
	w, err := NewWatcher(path, 50*time.Millisecond, func() {
		changes.Add(1)
		fired <- struct{}{}
	}, mdwlog.Discard())
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("version: 1\ncommands: []\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("onChange was not called")
	}
	time.Sleep(100 * time.Millisecond)
	if n := changes.Load(); n != 1 {
		t.Errorf("onChange called %d times, want 1", n)
	}
}
