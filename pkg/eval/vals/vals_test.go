package vals

import (
	"math"
	"testing"

	"github.com/RubixDev/Roost/pkg/eval/errs"
	"github.com/RubixDev/Roost/pkg/tt"
)

type kinder struct{}

func (kinder) Kind() string { return "custom" }

func TestKind(t *testing.T) {
	tt.Test(t, tt.Fn("Kind", Kind), tt.Table{
		tt.Args(nil).Rets("null"),
		tt.Args(true).Rets("bool"),
		tt.Args(1).Rets("number"),
		tt.Args(1.5).Rets("number"),
		tt.Args("").Rets("string"),
		tt.Args(MakeList()).Rets("list"),
		tt.Args(MakeRange(1, 2, false)).Rets("range"),
		tt.Args(kinder{}).Rets("custom"),
		tt.Args(int8(1)).Rets("!!int8"),
	})
}

func TestEqual(t *testing.T) {
	l := MakeList(1, "a")
	tt.Test(t, tt.Fn("Equal", Equal), tt.Table{
		tt.Args(nil, nil).Rets(true),
		tt.Args(nil, false).Rets(false),
		tt.Args(2, 2.0).Rets(true),
		tt.Args(2.5, 2).Rets(false),
		tt.Args("1", 1).Rets(false),
		tt.Args(l, l).Rets(true),
		tt.Args(MakeList(1, MakeList("x")), MakeList(1.0, MakeList("x"))).Rets(true),
		tt.Args(MakeList(1), MakeList(1, 2)).Rets(false),
		tt.Args(MakeRange(1, 5, false), MakeRange(1, 5, false)).Rets(true),
		tt.Args(MakeRange(1, 5, false), MakeRange(1, 5, true)).Rets(false),
	})
}

func TestEqual_CyclicLists(t *testing.T) {
	selfContaining := func(elems ...any) *List {
		l := MakeList(elems...)
		l.Elems = append(l.Elems, l)
		return l
	}
	a, b := selfContaining(1), selfContaining(1)
	if !Equal(a, b) {
		t.Errorf("Equal(a, b) -> false, want true")
	}
	if Equal(a, selfContaining(2)) {
		t.Errorf("Equal(a, c) -> true, want false")
	}
	// A list containing b compares equal to b when unrolled once.
	if !Equal(MakeList(1, b), b) {
		t.Errorf("Equal([1, b], b) -> false, want true")
	}
}

func TestToString(t *testing.T) {
	tt.Test(t, tt.Fn("ToString", ToString), tt.Table{
		tt.Args(nil).Rets("null"),
		tt.Args(false).Rets("false"),
		tt.Args(42).Rets("42"),
		tt.Args(2.0).Rets("2"),
		tt.Args(-0.5).Rets("-0.5"),
		tt.Args(10.0 / 3).Rets("3.3333333333333335"),
		tt.Args(1e20).Rets("1e+20"),
		tt.Args(0.000001).Rets("1e-06"),
		tt.Args(math.Inf(-1)).Rets("-inf"),
		tt.Args("raw").Rets("raw"),
		tt.Args(MakeList(1, "a", nil)).Rets(`[1, "a", null]`),
		tt.Args(MakeRange(1, 5, true)).Rets("1..=5"),
		tt.Args(Range{End: 3, HasEnd: true}).Rets("..3"),
		tt.Args(Range{}).Rets(".."),
	})
}

func TestRepr_CyclicList(t *testing.T) {
	l := MakeList(1)
	l.Elems = append(l.Elems, l)
	if got := Repr(l); got != "[1, [...]]" {
		t.Errorf("Repr -> %q", got)
	}
}

func TestTruthy(t *testing.T) {
	tt.Test(t, tt.Fn("Truthy", Truthy), tt.Table{
		tt.Args(nil).Rets(false),
		tt.Args(0).Rets(false),
		tt.Args(0.0).Rets(false),
		tt.Args(-1).Rets(true),
		tt.Args("").Rets(false),
		tt.Args("0").Rets(true),
		tt.Args(MakeList()).Rets(false),
		tt.Args(MakeList(nil)).Rets(true),
		tt.Args(MakeRange(3, 3, false)).Rets(false),
		tt.Args(MakeRange(3, 3, true)).Rets(true),
		tt.Args(kinder{}).Rets(true),
	})
}

func TestToInt(t *testing.T) {
	tt.Test(t, tt.Fn("ToInt", ToInt), tt.Table{
		tt.Args(3).Rets(3, true),
		tt.Args(3.0).Rets(3, true),
		tt.Args(3.5).Rets(0, false),
		tt.Args(1e300).Rets(0, false),
		tt.Args("3").Rets(0, false),
	})
	tt.Test(t, tt.Fn("NormalizeFloat", NormalizeFloat), tt.Table{
		tt.Args(4.0).Rets(4),
		tt.Args(4.5).Rets(4.5),
	})
}

func kindOf(err error) errs.Kind {
	if err, ok := err.(*errs.Error); ok {
		return err.Kind
	}
	return ""
}

func TestIndex(t *testing.T) {
	l := MakeList("a", "b", "c", "d")
	indexTests := []struct {
		v, idx   any
		want     any
		wantKind errs.Kind
	}{
		{l, 0, "a", ""},
		{l, -1, "d", ""},
		{l, 3.0, "d", ""},
		{l, 4, nil, errs.IndexOutOfBounds},
		{l, -5, nil, errs.IndexOutOfBounds},
		{l, 1.5, nil, errs.ValueError},
		{l, "0", nil, errs.TypeMismatch},
		{l, MakeRange(1, 3, false), MakeList("b", "c"), ""},
		{l, MakeRange(1, 3, true), MakeList("b", "c", "d"), ""},
		{l, Range{Start: -2, HasStart: true}, MakeList("c", "d"), ""},
		{l, Range{End: 1, HasEnd: true, Inclusive: true}, MakeList("a", "b"), ""},
		{l, Range{}, MakeList("a", "b", "c", "d"), ""},
		{l, MakeRange(3, 1, false), nil, errs.IndexOutOfBounds},
		{"héllo", 1, "é", ""},
		{"héllo", -1, "o", ""},
		{"héllo", MakeRange(1, 3, false), "él", ""},
		{"", 0, nil, errs.IndexOutOfBounds},
		{5, 0, nil, errs.TypeMismatch},
	}
	for _, test := range indexTests {
		got, err := Index(test.v, test.idx)
		if kind := kindOf(err); kind != test.wantKind {
			t.Errorf("Index(%v, %v) -> error %v, want kind %q", Repr(test.v), test.idx, err, test.wantKind)
			continue
		}
		if err == nil && !Equal(got, test.want) {
			t.Errorf("Index(%v, %v) -> %v, want %v", Repr(test.v), test.idx, Repr(got), Repr(test.want))
		}
	}
}

func TestIndex_SliceIsCopy(t *testing.T) {
	l := MakeList(1, 2, 3)
	s, _ := Index(l, Range{})
	s.(*List).Elems[0] = 100
	if l.Elems[0] != 1 {
		t.Errorf("modifying a slice modified the original list")
	}
}

func TestSetIndex(t *testing.T) {
	l := MakeList(1, 2, 3)
	if err := SetIndex(l, -1, "x"); err != nil {
		t.Fatal(err)
	}
	if !Equal(l, MakeList(1, 2, "x")) {
		t.Errorf("got %v", Repr(l))
	}
	if err := SetIndex("abc", 0, "x"); kindOf(err) != errs.TypeMismatch {
		t.Errorf("SetIndex on string -> %v", err)
	}
	if err := SetIndex(l, 3, "x"); kindOf(err) != errs.IndexOutOfBounds {
		t.Errorf("SetIndex out of range -> %v", err)
	}
}

func TestIterate(t *testing.T) {
	collectTests := []struct {
		v    any
		want []any
	}{
		{MakeRange(1, 4, false), []any{1, 2, 3}},
		{MakeRange(1, 4, true), []any{1, 2, 3, 4}},
		{MakeRange(4, 1, false), []any{4, 3, 2}},
		{MakeRange(4, 1, true), []any{4, 3, 2, 1}},
		{MakeRange(2, 2, false), nil},
		{MakeRange(2, 2, true), []any{2}},
		{"añb", []any{"a", "ñ", "b"}},
		{MakeList(nil, true), []any{nil, true}},
	}
	for _, test := range collectTests {
		got, err := Collect(test.v)
		if err != nil || !Equal(MakeList(got...), MakeList(test.want...)) {
			t.Errorf("Collect(%v) -> %v, %v, want %v", Repr(test.v), got, err, test.want)
		}
	}

	if _, err := Collect(Range{End: 3, HasEnd: true}); kindOf(err) != errs.TypeMismatch {
		t.Errorf("iterating a range without start -> %v", err)
	}
	if _, err := Collect(3); kindOf(err) != errs.TypeMismatch {
		t.Errorf("iterating a number -> %v", err)
	}
}

func TestIterate_InfiniteRangeAndLiveList(t *testing.T) {
	n := 0
	Iterate(Range{Start: 10, HasStart: true}, func(v any) bool {
		n++
		return v.(int) < 20
	})
	if n != 11 {
		t.Errorf("visited %d elements of 10.., want 11", n)
	}

	l := MakeList(1)
	Iterate(l, func(v any) bool {
		if v.(int) < 3 {
			l.Elems = append(l.Elems, v.(int)+1)
		}
		return true
	})
	if len(l.Elems) != 3 {
		t.Errorf("live iteration produced %v", Repr(l))
	}
}

func TestLen(t *testing.T) {
	tt.Test(t, tt.Fn("Len", Len), tt.Table{
		tt.Args(MakeList(1, 2)).Rets(2, true),
		tt.Args("héllo").Rets(5, true),
		tt.Args(3).Rets(0, false),
	})
	if n := MakeRange(2, 5, true).Len(); n != 4 {
		t.Errorf("Len of 2..=5 = %d", n)
	}
	if n := MakeRange(5, 2, false).Len(); n != 3 {
		t.Errorf("Len of 5..2 = %d", n)
	}
}
