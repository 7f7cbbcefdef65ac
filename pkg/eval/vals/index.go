package vals

import "github.com/RubixDev/Roost/pkg/eval/errs"

// Len returns the number of elements of a list, or the number of characters
// of a string.
func Len(v any) (int, bool) {
	switch v := v.(type) {
	case *List:
		return len(v.Elems), true
	case string:
		return len([]rune(v)), true
	}
	return 0, false
}

// Index indexes a list or a string. The index may be an integer, with
// negative values counting from the end, or a range, which yields a slice. A
// slice of a list is a new list.
func Index(v, idx any) (any, error) {
	switch v := v.(type) {
	case *List:
		if r, ok := idx.(Range); ok {
			lo, hi, err := sliceBounds(r, len(v.Elems))
			if err != nil {
				return nil, err
			}
			return MakeList(append([]any{}, v.Elems[lo:hi]...)...), nil
		}
		i, err := normalizeIndex(idx, len(v.Elems))
		if err != nil {
			return nil, err
		}
		return v.Elems[i], nil
	case string:
		runes := []rune(v)
		if r, ok := idx.(Range); ok {
			lo, hi, err := sliceBounds(r, len(runes))
			if err != nil {
				return nil, err
			}
			return string(runes[lo:hi]), nil
		}
		i, err := normalizeIndex(idx, len(runes))
		if err != nil {
			return nil, err
		}
		return string(runes[i]), nil
	}
	return nil, errs.New(errs.TypeMismatch, "cannot index %s", Kind(v))
}

// SetIndex replaces an element of a list.
func SetIndex(v, idx, elem any) error {
	l, ok := v.(*List)
	if !ok {
		return errs.New(errs.TypeMismatch, "cannot assign to an index of %s", Kind(v))
	}
	i, err := normalizeIndex(idx, len(l.Elems))
	if err != nil {
		return err
	}
	l.Elems[i] = elem
	return nil
}

func normalizeIndex(idx any, n int) (int, error) {
	if !IsNumber(idx) {
		return 0, errs.BadType("index", "number or range", Kind(idx))
	}
	i, ok := ToInt(idx)
	if !ok {
		return 0, errs.New(errs.ValueError, "index must be an integer, but is %s", ToString(idx))
	}
	actual := i
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, errs.OutOfRange("index", -n, n-1, actual)
	}
	return i, nil
}

// Returns the half-open bounds of a slice described by a range.
func sliceBounds(r Range, n int) (int, int, error) {
	lo, hi := 0, n
	if r.HasStart {
		lo = r.Start
		if lo < 0 {
			lo += n
		}
	}
	if r.HasEnd {
		hi = r.End
		if hi < 0 {
			hi += n
		}
		if r.Inclusive {
			hi++
		}
	}
	if lo < 0 || hi > n || lo > hi {
		return 0, 0, errs.New(errs.IndexOutOfBounds,
			"slice %s out of bounds for length %d", r, n)
	}
	return lo, hi, nil
}
