package params

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeLaterWins(t *testing.T) {
	a := Of(map[Key]interface{}{RangeMin: int32(0), RangeMax: int32(10)})
	b := Single(RangeMax, int32(5))

	merged := a.Merge(b)

	if got := Lookup(merged, RangeMax, int32(-1)); got != 5 {
		t.Errorf("RangeMax = %d, want 5", got)
	}
	if got := Lookup(merged, RangeMin, int32(-1)); got != 0 {
		t.Errorf("RangeMin = %d, want 0", got)
	}
	if got := Lookup(a, RangeMax, int32(-1)); got != 10 {
		t.Errorf("original mutated: RangeMax = %d, want 10", got)
	}
}

func TestMergeWithEmpty(t *testing.T) {
	p := Single(Completions, []string{"a"})

	if got := p.Merge(Empty()); got.Len() != 1 {
		t.Errorf("p.Merge(Empty()).Len() = %d, want 1", got.Len())
	}
	if got := Empty().Merge(p); got.Len() != 1 {
		t.Errorf("Empty().Merge(p).Len() = %d, want 1", got.Len())
	}
	var zero Parameters
	if !zero.IsEmpty() || zero.Has(RangeMin) {
		t.Error("zero Parameters should be empty")
	}
}

func TestOfCopiesInput(t *testing.T) {
	src := map[Key]interface{}{Liberal: true}
	p := Of(src)
	src[Liberal] = false

	if !Lookup(p, Liberal, false) {
		t.Error("Of() did not copy its input")
	}
}

func TestLookupTypeMismatchReturnsDefault(t *testing.T) {
	p := Single(RangeMin, "not a number")

	if got := Lookup(p, RangeMin, int64(7)); got != 7 {
		t.Errorf("Lookup() = %d, want default 7", got)
	}
	if got := Lookup(p, RangeMax, int64(9)); got != 9 {
		t.Errorf("Lookup() absent = %d, want default 9", got)
	}
}

func TestKeysAndString(t *testing.T) {
	p := Empty().
		With(RangeMax, 10).
		With(Completions, []string{"red", "green"}).
		With(RangeMin, 1)

	want := []Key{Completions, RangeMax, RangeMin}
	if diff := cmp.Diff(want, p.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if got, want := p.String(), "{completions=[red,green], range_max=10, range_min=1}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
