package vals

// Equaler wraps the Equal method.
type Equaler interface {
	// Equal compares the receiver to another value.
	Equal(other any) bool
}

// Equal returns whether two values are equal. Numbers compare by value
// regardless of representation, lists compare element-wise, and values of
// different kinds are never equal. Other values are compared with their Equal
// method if they implement Equaler, and by identity otherwise. Lists that
// contain themselves are equal when no difference is found before a pair of
// lists repeats.
func Equal(x, y any) bool {
	return equal(x, y, nil)
}

type listPair struct{ x, y *List }

func equal(x, y any, seen map[listPair]bool) bool {
	switch x := x.(type) {
	case nil:
		return y == nil
	case bool:
		return x == y
	case int:
		switch y := y.(type) {
		case int:
			return x == y
		case float64:
			return float64(x) == y
		}
		return false
	case float64:
		switch y := y.(type) {
		case int:
			return x == float64(y)
		case float64:
			return x == y
		}
		return false
	case string:
		return x == y
	case Range:
		return x == y
	case *List:
		if y, ok := y.(*List); ok {
			return equalList(x, y, seen)
		}
		return false
	case Equaler:
		return x.Equal(y)
	default:
		return x == y
	}
}

func equalList(x, y *List, seen map[listPair]bool) bool {
	if x == y {
		return true
	}
	if len(x.Elems) != len(y.Elems) {
		return false
	}
	pair := listPair{x, y}
	if seen[pair] {
		return true
	}
	if seen == nil {
		seen = map[listPair]bool{}
	}
	seen[pair] = true
	for i := range x.Elems {
		if !equal(x.Elems[i], y.Elems[i], seen) {
			return false
		}
	}
	return true
}
