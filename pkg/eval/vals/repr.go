package vals

import (
	"fmt"
	"strings"

	"github.com/RubixDev/Roost/pkg/parse"
)

// Reprer wraps the Repr method.
type Reprer interface {
	// Repr returns a string that represents the value, preferably a literal
	// that evaluates to an equal value, or a description enclosed in "<>".
	Repr() string
}

// Repr returns the representation of a value, used by the REPL to show
// results and by debug. Strings are quoted; lists show the representation of
// their elements.
func Repr(v any) string {
	return repr(v, nil)
}

func repr(v any, seen map[*List]bool) string {
	switch v := v.(type) {
	case string:
		return parse.Quote(v)
	case *List:
		if seen[v] {
			return "[...]"
		}
		if seen == nil {
			seen = map[*List]bool{}
		}
		seen[v] = true
		defer delete(seen, v)
		var sb strings.Builder
		sb.WriteByte('[')
		for i, elem := range v.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(repr(elem, seen))
		}
		sb.WriteByte(']')
		return sb.String()
	case Reprer:
		return v.Repr()
	case nil, bool, int, float64, Range:
		return ToString(v)
	default:
		return fmt.Sprintf("<unknown %v>", v)
	}
}
