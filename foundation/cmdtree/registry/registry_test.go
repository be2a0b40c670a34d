package registry

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/msto63/argtree/foundation/cmdtree/argument"
	"github.com/msto63/argtree/foundation/cmdtree/params"
	mdwerror "github.com/msto63/argtree/foundation/core/error"
	"github.com/msto63/argtree/foundation/core/log"
)

type direction int

const (
	north direction = iota
	south
)

func (d direction) String() string {
	if d == north {
		return "NORTH"
	}
	return "SOUTH"
}

func (direction) EnumConstants() []fmt.Stringer {
	return []fmt.Stringer{north, south}
}

// MockParser records the parameters it was built with
type MockParser struct {
	Params params.Parameters
}

func (m *MockParser) Parse(_ any, input []string) (any, int, error) {
	return "mock", len(input), nil
}

func (m *MockParser) Suggestions(any, string) []string { return nil }

func (m *MockParser) ValueType() argument.ValueType { return argument.TypeOf[string]() }

type customModifier struct{}

func (customModifier) Kind() ModifierKind { return "custom" }

func newTestRegistry() *Registry {
	return NewWithOptions(Options{Logger: log.Discard()})
}

func reason(t *testing.T, err error) argument.Reason {
	t.Helper()
	var perr *argument.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error %v is not a *argument.ParseError", err)
	}
	return perr.Reason
}

func TestCreateParserWithRange(t *testing.T) {
	r := newTestRegistry()
	vt := argument.TypeOf[int32]()

	p, err := r.Parser(vt, Range{Min: "0", Max: "100"})
	if err != nil {
		t.Fatalf("Parser() error = %v", err)
	}

	if v, n, err := p.Parse(nil, []string{"50"}); err != nil || v != int32(50) || n != 1 {
		t.Errorf("Parse(50) = %v, %d, %v", v, n, err)
	}
	if _, _, err := p.Parse(nil, []string{"5000"}); reason(t, err) != argument.ReasonOutOfRange {
		t.Error("5000 should be out of range")
	}
	if _, _, err := p.Parse(nil, []string{"abc"}); reason(t, err) != argument.ReasonInvalidNumber {
		t.Error("abc should be a lexical failure")
	}
}

func TestCreateParserNormalizesPointers(t *testing.T) {
	r := newTestRegistry()

	p, err := r.CreateParser(argument.TypeOf[*int32](), params.Empty())
	if err != nil {
		t.Fatalf("CreateParser(*int32) error = %v", err)
	}
	if p.ValueType() != argument.TypeOf[int32]() {
		t.Errorf("ValueType() = %v, want int32", p.ValueType())
	}

	Register[int32](r, func(params.Parameters) argument.Parser { return &MockParser{} })
	p, _ = r.CreateParser(argument.TypeOf[*int32](), params.Empty())
	if _, ok := p.(*MockParser); !ok {
		t.Errorf("pointer lookup did not see replaced int32 factory, got %T", p)
	}
}

func TestCreateParserEnumFallback(t *testing.T) {
	r := newTestRegistry()

	p, err := r.CreateParser(argument.TypeOf[direction](), params.Empty())
	if err != nil {
		t.Fatalf("CreateParser(enum) error = %v", err)
	}
	if v, _, err := p.Parse(nil, []string{"NORTH"}); err != nil || v != north {
		t.Errorf("Parse(NORTH) = %v, %v", v, err)
	}
	if _, _, err := p.Parse(nil, []string{"north"}); reason(t, err) != argument.ReasonUnknownConstant {
		t.Error("enum lookup must be case-sensitive")
	}
	if !r.HasParser(argument.TypeOf[*direction]()) {
		t.Error("HasParser() should report enum types")
	}
}

func TestCreateParserNoParser(t *testing.T) {
	r := newTestRegistry()

	_, err := r.CreateParser(argument.TypeOf[time.Time](), params.Empty())
	if err == nil {
		t.Fatal("CreateParser(time.Time) should fail")
	}
	if !errors.Is(err, ErrNoParser) {
		t.Errorf("error %v does not match ErrNoParser", err)
	}
	if !mdwerror.HasCode(err, mdwerror.CodeNoParser) {
		t.Errorf("error %v lacks CodeNoParser", err)
	}

	bare := NewWithOptions(Options{Logger: log.Discard(), Bare: true})
	if _, err := bare.CreateParser(argument.TypeOf[int](), params.Empty()); !errors.Is(err, ErrNoParser) {
		t.Errorf("bare registry CreateParser(int) error = %v", err)
	}
}

func TestRegisterParserFactoryLastWriterWins(t *testing.T) {
	r := newTestRegistry()
	first := &MockParser{}
	second := &MockParser{}

	Register[string](r, func(params.Parameters) argument.Parser { return first })
	Register[string](r, func(params.Parameters) argument.Parser { return second })

	p, err := r.CreateParser(argument.TypeOf[string](), params.Empty())
	if err != nil {
		t.Fatalf("CreateParser() error = %v", err)
	}
	if p != second {
		t.Error("second registration should replace the first")
	}
}

func TestResolveParametersMergeOrder(t *testing.T) {
	r := newTestRegistry()
	r.RegisterModifierMapper("custom", func(Modifier, argument.ValueType) params.Parameters {
		return params.Single(params.RangeMax, int64(7))
	})
	vt := argument.TypeOf[int64]()

	got := r.ResolveParameters(vt, Range{Min: "1", Max: "10"}, customModifier{})
	if hi := params.Lookup(got, params.RangeMax, int64(0)); hi != 7 {
		t.Errorf("RangeMax = %d, want later modifier's 7", hi)
	}
	if lo := params.Lookup(got, params.RangeMin, int64(0)); lo != 1 {
		t.Errorf("RangeMin = %d, want 1", lo)
	}

	got = r.ResolveParameters(vt, customModifier{}, Range{Max: "10"})
	if hi := params.Lookup(got, params.RangeMax, int64(0)); hi != 10 {
		t.Errorf("RangeMax = %d, want later modifier's 10", hi)
	}
}

func TestResolveParametersTypeMismatchIsEmpty(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		name string
		vt   argument.ValueType
		mod  Modifier
	}{
		{"range on string", argument.TypeOf[string](), Range{Min: "1"}},
		{"completions on int", argument.TypeOf[int](), Completions{Values: "a,b"}},
		{"string mode on bool", argument.TypeOf[bool](), StringMode{Mode: argument.ModeGreedy}},
		{"liberal on string", argument.TypeOf[string](), Liberal{}},
		{"unregistered kind", argument.TypeOf[int](), customModifier{}},
		{"unparsable bound", argument.TypeOf[int](), Range{Min: "low"}},
		{"bound overflows type", argument.TypeOf[int8](), Range{Max: "300"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.ResolveParameters(tt.vt, tt.mod); !got.IsEmpty() {
				t.Errorf("ResolveParameters() = %v, want empty", got)
			}
		})
	}
}

func TestRangeBoundsUseTargetType(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		vt   argument.ValueType
		want any
	}{
		{argument.TypeOf[int8](), int8(-5)},
		{argument.TypeOf[uint16](), uint16(5)},
		{argument.TypeOf[float32](), float32(1.5)},
		{argument.TypeOf[*float64](), float64(-2.25)},
	}

	bounds := map[string]string{"int8": "-5", "uint16": "5", "float32": "1.5", "float64": "-2.25"}
	for _, tt := range tests {
		t.Run(tt.vt.String(), func(t *testing.T) {
			got := r.ResolveParameters(tt.vt, Range{Min: bounds[tt.vt.Canonical().String()]})
			raw, ok := got.Get(params.RangeMin)
			if !ok {
				t.Fatal("RangeMin missing")
			}
			if raw != tt.want {
				t.Errorf("RangeMin = %#v, want %#v", raw, tt.want)
			}
		})
	}
}

func TestCompletionsSplitting(t *testing.T) {
	r := newTestRegistry()

	p, err := r.Parser(argument.TypeOf[string](), Completions{Values: " red, green ,, blue "})
	if err != nil {
		t.Fatalf("Parser() error = %v", err)
	}
	if diff := cmp.Diff([]string{"red", "green", "blue"}, p.Suggestions(nil, "")); diff != "" {
		t.Errorf("Suggestions() mismatch (-want +got):\n%s", diff)
	}
}

func TestStringModeModifier(t *testing.T) {
	r := newTestRegistry()

	p, err := r.Parser(argument.TypeOf[string](), StringMode{Mode: argument.ModeGreedy})
	if err != nil {
		t.Fatalf("Parser() error = %v", err)
	}
	if v, n, _ := p.Parse(nil, []string{"a", "b"}); v != "a b" || n != 2 {
		t.Errorf("Parse() = %v, %d, want greedy", v, n)
	}
}

func TestTypesSorted(t *testing.T) {
	r := newTestRegistry()
	types := r.Types()
	if len(types) != 16 {
		t.Fatalf("len(Types()) = %d, want 16", len(types))
	}
	for i := 1; i < len(types); i++ {
		if types[i-1].String() > types[i].String() {
			t.Errorf("Types() not sorted at %d: %s > %s", i, types[i-1], types[i])
		}
	}
}

func TestConcurrentAccess(t *testing.T) {
	r := newTestRegistry()
	vt := argument.TypeOf[int]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := r.Parser(vt, Range{Max: "10"}); err != nil {
				t.Errorf("Parser() error = %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			Register[int](r, func(p params.Parameters) argument.Parser { return argument.NewIntegerParser[int](p) })
		}()
	}
	wg.Wait()
}
