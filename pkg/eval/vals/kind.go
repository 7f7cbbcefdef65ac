// Package vals contains basic facilities for manipulating values used in the
// Roost runtime.
//
// Values are carried as any. The builtin Go types nil, bool, int, float64 and
// string represent null, booleans, numbers and strings; *List and Range are
// defined in this package, and other kinds (functions, classes, instances,
// errors) implement the interfaces declared here.
package vals

import "fmt"

// Kinder wraps the Kind method.
type Kinder interface {
	Kind() string
}

// Kind returns the kind of the value, which is what the typeOf builtin
// reports. For Go types that are not Roost values it returns the Go type name
// preceded by "!!".
func Kind(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case int, float64:
		return "number"
	case string:
		return "string"
	case *List:
		return "list"
	case Range:
		return "range"
	case Kinder:
		return v.Kind()
	default:
		return fmt.Sprintf("!!%T", v)
	}
}
