package vals

// Truthy reports the truthiness of a value, used by !, && and ||. Null,
// false, zero, the empty string and the empty list are falsy; so is a range
// whose bounds are equal. Everything else is truthy.
func Truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case int:
		return v != 0
	case float64:
		return v != 0
	case string:
		return v != ""
	case *List:
		return len(v.Elems) > 0
	case Range:
		return !(v.HasStart && v.HasEnd && v.Start == v.End && !v.Inclusive)
	default:
		return true
	}
}
