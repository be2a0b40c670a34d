package tree

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/msto63/argtree/foundation/cmdtree/argument"
	"github.com/msto63/argtree/foundation/cmdtree/params"
)

func noop(context.Context, *Context) error { return nil }

func floatParser() argument.Parser {
	return argument.NewFloatParser[float64](params.Empty())
}

func stringParser(completions ...string) argument.Parser {
	return argument.NewStringParser(params.Single(params.Completions, completions))
}

func mustRegister(t *testing.T, tr *Tree, b *Builder) {
	t.Helper()
	if err := tr.Register(b); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
}

// newTestTree builds:
//
//	tp <x> <y> <z>
//	tp here
//	give <item> [--amount <amount>] [--silent]
//	msg <count:int> | msg <text:string>
func newTestTree(t *testing.T) *Tree {
	t.Helper()
	tr := New()
	mustRegister(t, tr, Command("tp", "teleport").
		Argument("x", floatParser()).
		Argument("y", floatParser()).
		Argument("z", floatParser()).
		Permission("cmd.tp").
		Handler(noop))
	mustRegister(t, tr, Command("tp").Literal("here").Handler(noop))
	mustRegister(t, tr, Command("give").
		Argument("item", stringParser("apple", "apricot", "bread")).
		Flags(
			argument.Flag{Name: "amount", Aliases: []string{"a"}, Parser: argument.NewIntegerParser[int](params.Empty())},
			argument.Flag{Name: "silent"},
		).
		Handler(noop))
	mustRegister(t, tr, Command("msg").Argument("count", argument.NewIntegerParser[int](params.Empty())).Handler(noop))
	mustRegister(t, tr, Command("msg").Argument("text", argument.NewStringParser(params.Empty())).Handler(noop))
	return tr
}

func TestAddChildRejectsDuplicates(t *testing.T) {
	root := NewLiteral("root")
	if err := root.AddChild(NewLiteral("a", "alpha")); err != nil {
		t.Fatalf("AddChild() error = %v", err)
	}

	tests := []struct {
		name  string
		child *Node
	}{
		{"same name", NewLiteral("a")},
		{"alias collides with name", NewLiteral("b", "a")},
		{"name collides with alias", NewLiteral("alpha")},
		{"argument with literal name", NewArgument("a", floatParser())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := root.AddChild(tt.child); !errors.Is(err, ErrDuplicateNode) {
				t.Errorf("AddChild() error = %v, want ErrDuplicateNode", err)
			}
		})
	}

	if err := root.AddChild(NewArgument("n", nil)); !errors.Is(err, ErrInvalidTree) {
		t.Errorf("AddChild(argument without parser) error = %v, want ErrInvalidTree", err)
	}
	flags := NewFlags(argument.NewFlagParser())
	if err := flags.AddChild(NewLiteral("x")); !errors.Is(err, ErrInvalidTree) {
		t.Errorf("flags.AddChild() error = %v, want ErrInvalidTree", err)
	}
}

func TestInsertMergesSharedPrefixes(t *testing.T) {
	tr := newTestTree(t)

	if got := len(tr.Commands()); got != 3 {
		t.Fatalf("len(Commands()) = %d, want 3", got)
	}
	tp := tr.Find("tp")
	var names []string
	for _, c := range tp.Children() {
		names = append(names, c.Name())
	}
	if diff := cmp.Diff([]string{"x", "here"}, names); diff != "" {
		t.Errorf("tp children mismatch (-want +got):\n%s", diff)
	}

	err := tr.Register(Command("tp").Literal("here").Handler(noop))
	if !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("second handler for tp here: error = %v, want ErrDuplicateNode", err)
	}
	err = tr.Register(Command("tp").Argument("x", stringParser()).Handler(noop))
	if !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("conflicting argument type: error = %v, want ErrDuplicateNode", err)
	}
	if _, err := Command("x").Build(); !errors.Is(err, ErrInvalidTree) {
		t.Errorf("Build() without handler error = %v, want ErrInvalidTree", err)
	}
}

func TestParseSuccess(t *testing.T) {
	tr := newTestTree(t)

	m, err := tr.Parse(nil, Tokenize("teleport 1.5 2 -3"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if m.Node != tr.Find("tp", "x", "y", "z") {
		t.Errorf("matched %v, want tp x y z", m.Node.Path())
	}
	if diff := cmp.Diff([]string{"tp", "x", "y", "z"}, m.Context.Path()); diff != "" {
		t.Errorf("Path() mismatch (-want +got):\n%s", diff)
	}
	if got := GetOr(m.Context, "z", 0.0); got != -3 {
		t.Errorf("z = %v, want -3", got)
	}
}

func TestParseLiteralBeatsArgument(t *testing.T) {
	tr := New()
	mustRegister(t, tr, Command("warp").Argument("name", stringParser()).Handler(noop))
	mustRegister(t, tr, Command("warp").Literal("list").Handler(noop))

	m, err := tr.Parse(nil, []string{"warp", "list"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if m.Node.Kind() != KindLiteral {
		t.Errorf("matched %s node, want literal", m.Node.Kind())
	}
	if m.Context.Has("name") {
		t.Error("argument value stored although literal matched")
	}
}

func TestParseArgumentsInDeclarationOrder(t *testing.T) {
	tr := newTestTree(t)

	m, err := tr.Parse(nil, []string{"msg", "42"})
	if err != nil {
		t.Fatalf("Parse(msg 42) error = %v", err)
	}
	if m.Node.Name() != "count" {
		t.Errorf("msg 42 matched %q, want count", m.Node.Name())
	}

	m, err = tr.Parse(nil, []string{"msg", "hello"})
	if err != nil {
		t.Fatalf("Parse(msg hello) error = %v", err)
	}
	if v, _ := Get[string](m.Context, "text"); v != "hello" {
		t.Errorf("text = %q, want hello", v)
	}
}

func TestParseFailures(t *testing.T) {
	tr := newTestTree(t)

	t.Run("empty input", func(t *testing.T) {
		_, err := tr.Parse(nil, nil)
		var nsc *NoSuchCommandError
		if !errors.As(err, &nsc) || nsc.Token != "" {
			t.Errorf("error = %v, want NoSuchCommandError for empty input", err)
		}
	})

	t.Run("literal match is exact", func(t *testing.T) {
		for _, input := range []string{"TP 1 2 3", "t 1 2 3", "tpx"} {
			_, err := tr.Parse(nil, Tokenize(input))
			var nsc *NoSuchCommandError
			if !errors.As(err, &nsc) {
				t.Errorf("Parse(%q) error = %v, want NoSuchCommandError", input, err)
			}
		}
	})

	t.Run("third argument fails", func(t *testing.T) {
		_, err := tr.Parse(nil, Tokenize("tp 1.5 2 notanumber"))
		var argErr *ArgumentError
		if !errors.As(err, &argErr) {
			t.Fatalf("error = %v, want ArgumentError", err)
		}
		if argErr.Node.Name() != "z" || argErr.Position != 3 || argErr.Token != "notanumber" {
			t.Errorf("ArgumentError = %+v", argErr)
		}
		var perr *argument.ParseError
		if !errors.As(err, &perr) || perr.Reason != argument.ReasonInvalidNumber {
			t.Errorf("cause = %v, want invalid number", err)
		}
	})

	t.Run("first declared argument reported", func(t *testing.T) {
		tr := New()
		mustRegister(t, tr, Command("set").Argument("level", argument.NewIntegerParser[int](params.Empty())).Handler(noop))
		mustRegister(t, tr, Command("set").Argument("flag", argument.NewBoolParser(params.Empty())).Handler(noop))

		_, err := tr.Parse(nil, []string{"set", "maybe"})
		var argErr *ArgumentError
		if !errors.As(err, &argErr) || argErr.Node.Name() != "level" {
			t.Errorf("error = %v, want ArgumentError for level", err)
		}
	})

	t.Run("incomplete", func(t *testing.T) {
		_, err := tr.Parse(nil, Tokenize("tp 1.5"))
		var syn *SyntaxError
		if !errors.As(err, &syn) || syn.Reason != SyntaxIncomplete {
			t.Fatalf("error = %v, want incomplete SyntaxError", err)
		}
		if got, want := syn.CorrectSyntax(), "tp <x> <y> <z>"; got != want {
			t.Errorf("CorrectSyntax() = %q, want %q", got, want)
		}
		if syn.Position != 2 {
			t.Errorf("Position = %d, want 2", syn.Position)
		}
	})

	t.Run("too many tokens", func(t *testing.T) {
		_, err := tr.Parse(nil, Tokenize("tp here now"))
		var syn *SyntaxError
		if !errors.As(err, &syn) || syn.Reason != SyntaxNoMatch || syn.Token != "now" {
			t.Errorf("error = %v, want no-match SyntaxError at now", err)
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, err := tr.Parse(nil, Tokenize("give apple --loud"))
		var perr *argument.ParseError
		if !errors.As(err, &perr) || perr.Reason != argument.ReasonUnknownFlag {
			t.Errorf("error = %v, want unknown flag", err)
		}
	})
}

func TestParseFlags(t *testing.T) {
	tr := newTestTree(t)

	m, err := tr.Parse(nil, Tokenize("give bread -a 3 --silent"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	flags := m.Context.Flags()
	if argument.FlagValue(flags, "amount", 0) != 3 || !flags.IsPresent("silent") {
		t.Errorf("flags = %v", flags.Names())
	}

	m, err = tr.Parse(nil, Tokenize("give bread"))
	if err != nil {
		t.Fatalf("Parse() without flags error = %v", err)
	}
	if m.Node.Kind() != KindFlags || m.Context.Flags().Len() != 0 {
		t.Errorf("matched %s with %d flags", m.Node.Kind(), m.Context.Flags().Len())
	}
}

func TestSyntax(t *testing.T) {
	tr := newTestTree(t)

	tests := []struct {
		path []string
		want string
	}{
		{[]string{"tp"}, "tp (<x>|here)"},
		{[]string{"tp", "x"}, "tp <x> <y> <z>"},
		{[]string{"give"}, "give <item> [--amount <amount>] [--silent]"},
		{[]string{"msg"}, "msg (<count>|<text>)"},
	}
	for _, tt := range tests {
		if got := tr.Find(tt.path...).Syntax(); got != tt.want {
			t.Errorf("Syntax(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}

	tr2 := New()
	mustRegister(t, tr2, Command("list").Handler(noop))
	mustRegister(t, tr2, Command("list").Argument("page", argument.NewIntegerParser[int](params.Empty())).Handler(noop))
	if got, want := tr2.Find("list").Syntax(), "list [<page>]"; got != want {
		t.Errorf("Syntax() = %q, want %q", got, want)
	}
}

func TestSuggest(t *testing.T) {
	tr := newTestTree(t)

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"all commands", "", []string{"tp", "teleport", "give", "msg"}},
		{"prefix", "t", []string{"tp", "teleport"}},
		{"children in order", "tp ", []string{"here"}},
		{"argument completions", "give ap", []string{"apple", "apricot"}},
		{"flags after argument", "give apple ", []string{"--amount", "--silent"}},
		{"unused flags", "give apple --silent --", []string{"--amount"}},
		{"flag value", "give apple --amount ", []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}},
		{"dead end", "nothing ", nil},
		{"failed argument", "tp x ", nil},
		{"integer argument digits", "msg 4", []string{"4", "40", "41", "42", "43", "44", "45", "46", "47", "48", "49"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tr.Suggest(nil, tt.input, nil)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Suggest(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestSuggestKeepsDuplicates(t *testing.T) {
	tr := New()
	mustRegister(t, tr, Command("color").Argument("fg", stringParser("red", "blue")).Handler(noop))
	mustRegister(t, tr, Command("color").Argument("bg", stringParser("red")).Handler(noop))

	got := tr.Suggest(nil, "color r", nil)
	if diff := cmp.Diff([]string{"red", "red"}, got); diff != "" {
		t.Errorf("Suggest() mismatch (-want +got):\n%s", diff)
	}
}

func TestSuggestFilter(t *testing.T) {
	tr := newTestTree(t)
	hideTeleport := func(_ any, n *Node) bool { return n.Permission() != "cmd.tp" && n.Name() != "tp" }

	got := tr.Suggest(nil, "", hideTeleport)
	if diff := cmp.Diff([]string{"give", "msg"}, got); diff != "" {
		t.Errorf("Suggest() mismatch (-want +got):\n%s", diff)
	}
	if got := tr.Suggest(nil, "tp ", hideTeleport); got != nil {
		t.Errorf("Suggest(tp ) = %v, want nil", got)
	}
}

func TestSuggestFlagFilter(t *testing.T) {
	tr := newTestTree(t)
	hideSilent := func(_ any, f argument.Flag) bool { return f.Name != "silent" }

	tests := []struct {
		input string
		want  []string
	}{
		{"give apple ", []string{"--amount"}},
		{"give apple --", []string{"--amount"}},
		{"give apple --amount 2 ", nil},
		{"give apple --silent ", nil},
	}
	for _, tt := range tests {
		got := tr.SuggestFiltered(nil, tt.input, nil, hideSilent)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("SuggestFiltered(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestRepeatedArgumentNameRejected(t *testing.T) {
	tr := New()
	_, err := Command("copy").
		Argument("file", stringParser()).
		Literal("to").
		Argument("file", stringParser()).
		Handler(noop).
		Build()
	if !errors.Is(err, ErrInvalidTree) {
		t.Errorf("Build() error = %v, want ErrInvalidTree", err)
	}

	mustRegister(t, tr, Command("move").Argument("file", stringParser()).Handler(noop))
	err = tr.Register(Command("move").Argument("file", stringParser()).Literal("as").Argument("file", stringParser()).Handler(noop))
	if !errors.Is(err, ErrInvalidTree) {
		t.Errorf("Register() merging a repeated argument error = %v, want ErrInvalidTree", err)
	}

	sub := NewLiteral("into")
	if err := sub.AddChild(NewArgument("file", stringParser())); err != nil {
		t.Fatalf("AddChild() error = %v", err)
	}
	if err := tr.Find("move", "file").AddChild(sub); !errors.Is(err, ErrInvalidTree) {
		t.Errorf("AddChild(subtree) error = %v, want ErrInvalidTree", err)
	}

	mustRegister(t, tr, Command("swap").Argument("a", stringParser()).Argument("b", stringParser()).Handler(noop))
}

func TestSenderOf(t *testing.T) {
	type player struct{ name string }
	req := SenderOf[*player]()

	if !req.Accepts(&player{name: "alex"}) || req.Accepts("console") {
		t.Error("SenderOf() misclassified senders")
	}
}

func TestWalkAndExecutables(t *testing.T) {
	tr := newTestTree(t)

	var visited []string
	tr.Walk(func(n *Node, depth int) bool {
		visited = append(visited, n.Name())
		return n.Name() != "give"
	})
	want := []string{"tp", "x", "y", "z", "here", "give", "msg", "count", "text"}
	if diff := cmp.Diff(want, visited); diff != "" {
		t.Errorf("Walk() mismatch (-want +got):\n%s", diff)
	}

	if got := len(tr.Executables()); got != 5 {
		t.Errorf("len(Executables()) = %d, want 5", got)
	}
}

func TestSuggestionTokens(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{""}},
		{"tp", []string{"tp"}},
		{"tp ", []string{"tp", ""}},
		{"tp  1", []string{"tp", "1"}},
		{"say voilà", []string{"say", "voilà"}},
		{"say Å", []string{"say", "Å"}},
		{"say voilà\u00a0", []string{"say", "voilà", ""}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, SuggestionTokens(tt.input)); diff != "" {
			t.Errorf("SuggestionTokens(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestClone(t *testing.T) {
	tr := newTestTree(t)
	cp := tr.Clone()

	mustRegister(t, cp, Command("ping").Handler(noop))

	if tr.Find("ping") != nil {
		t.Error("registering on the clone changed the original")
	}
	if cp.Find("tp", "x", "y", "z") == tr.Find("tp", "x", "y", "z") {
		t.Error("clone shares nodes with the original")
	}
	if got := cp.Find("tp", "x").Parent(); got != cp.Find("tp") {
		t.Error("cloned parent links point outside the clone")
	}
	if _, err := cp.Parse(nil, []string{"tp", "1", "2", "3"}); err != nil {
		t.Errorf("Parse() on clone error = %v", err)
	}
}
