package vals

import "github.com/RubixDev/Roost/pkg/eval/errs"

// Iterate calls f with each element of a list, each character of a string or
// each integer of a range, until f returns false. A list is iterated live: if
// f appends to the list, the new elements are visited too. A range counts
// downwards when its start is greater than its end, and forever upwards when
// it has no end.
func Iterate(v any, f func(any) bool) error {
	switch v := v.(type) {
	case *List:
		for i := 0; i < len(v.Elems); i++ {
			if !f(v.Elems[i]) {
				break
			}
		}
	case string:
		for _, r := range v {
			if !f(string(r)) {
				break
			}
		}
	case Range:
		if !v.HasStart {
			return errs.New(errs.TypeMismatch, "cannot iterate over range %s without a start", v)
		}
		if !v.HasEnd {
			for i := v.Start; ; i++ {
				if !f(i) {
					break
				}
			}
			return nil
		}
		step := 1
		if v.Start > v.End {
			step = -1
		}
		for i := v.Start; i != v.End || v.Inclusive; i += step {
			if !f(i) || i == v.End {
				break
			}
		}
	default:
		return errs.New(errs.TypeMismatch, "cannot iterate over %s", Kind(v))
	}
	return nil
}

// Collect returns all elements Iterate visits, as a slice. It must not be
// called on ranges without an end.
func Collect(v any) ([]any, error) {
	var elems []any
	err := Iterate(v, func(elem any) bool {
		elems = append(elems, elem)
		return true
	})
	return elems, err
}
