package vals

import "strconv"

// Range is a range of integers, ascending when Start <= End and descending
// otherwise. Either bound may be absent; an absent start is only meaningful
// for slicing, and an absent end makes the range infinite.
type Range struct {
	Start, End       int
	HasStart, HasEnd bool
	Inclusive        bool
}

// MakeRange returns a range with both bounds present.
func MakeRange(start, end int, inclusive bool) Range {
	return Range{start, end, true, true, inclusive}
}

// Len returns the number of elements in a range with both bounds present.
func (r Range) Len() int {
	n := r.End - r.Start
	if n < 0 {
		n = -n
	}
	if r.Inclusive {
		n++
	}
	return n
}

func (r Range) String() string {
	s := ""
	if r.HasStart {
		s += strconv.Itoa(r.Start)
	}
	s += ".."
	if r.Inclusive {
		s += "="
	}
	if r.HasEnd {
		s += strconv.Itoa(r.End)
	}
	return s
}
