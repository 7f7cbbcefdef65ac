package vals

import "math"

// IsNumber reports whether v is a number.
func IsNumber(v any) bool {
	switch v.(type) {
	case int, float64:
		return true
	}
	return false
}

// ToFloat converts a number to float64.
func ToFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case int:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

// ToInt converts a number with no fractional part to int. It returns false
// for other values, including numbers too large to be represented.
func ToInt(v any) (int, bool) {
	switch v := v.(type) {
	case int:
		return v, true
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}

// NormalizeFloat converts a float64 with no fractional part to an int when it
// can be represented exactly, and returns other values unchanged.
func NormalizeFloat(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int(f)
	}
	return f
}
