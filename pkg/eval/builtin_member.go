package eval

import (
	"math"
	"strconv"
	"strings"

	"github.com/RubixDev/Roost/pkg/eval/errs"
	"github.com/RubixDev/Roost/pkg/eval/vals"
)

// getMember resolves a member of a value. Members of instances and classes are
// looked up first; other values, and instances and classes that lack the
// member, get the builtin members of their kind.
func getMember(v any, name string) (any, error) {
	if m, ok := classMember(v, name); ok {
		return m, nil
	}
	if m, ok := builtinMember(v, name); ok {
		return m, nil
	}
	return nil, errs.New(errs.UndefinedMember, "%s has no member '%s'", vals.Kind(v), name)
}

// method returns a builtin function bound to a receiver.
func method(name string, minArgs, maxArgs int, f func(args []any) (any, error)) *BuiltinFn {
	return &BuiltinFn{name, minArgs, maxArgs, func(_ *frame, args []any) (any, error) {
		return f(args)
	}}
}

func noArgs(name string, f func() (any, error)) *BuiltinFn {
	return method(name, 0, 0, func([]any) (any, error) { return f() })
}

func builtinMember(v any, name string) (any, bool) {
	var m any
	switch v := v.(type) {
	case string:
		m = stringMember(v, name)
	case int, float64:
		m = numberMember(v, name)
	case *vals.List:
		m = listMember(v, name)
	case *RuntimeError:
		switch name {
		case "kind":
			return string(v.Type), true
		case "message":
			return v.Message, true
		}
	}
	if m != nil {
		return m, true
	}
	return sharedMember(v, name)
}

func sharedMember(v any, name string) (any, bool) {
	switch name {
	case "toString":
		return noArgs(name, func() (any, error) { return vals.ToString(v), nil }), true
	case "toBool":
		return noArgs(name, func() (any, error) { return vals.Truthy(v), nil }), true
	case "clone":
		return noArgs(name, func() (any, error) {
			if l, ok := v.(*vals.List); ok {
				return l.Clone(), nil
			}
			return v, nil
		}), true
	}
	return nil, false
}

func parseError(s, what string) error {
	return errs.New(errs.ValueError, "could not parse string %s to %s", vals.Repr(s), what)
}

func stringMember(s, name string) any {
	switch name {
	case "length":
		n, _ := vals.Len(s)
		return n
	case "toUppercase":
		return noArgs(name, func() (any, error) { return strings.ToUpper(s), nil })
	case "toLowercase":
		return noArgs(name, func() (any, error) { return strings.ToLower(s), nil })
	case "toBool":
		return noArgs(name, func() (any, error) { return strings.ToLower(s) == "true", nil })
	case "toBoolStrict":
		return noArgs(name, func() (any, error) {
			switch s {
			case "true":
				return true, nil
			case "false":
				return false, nil
			}
			return nil, parseError(s, "bool")
		})
	case "toInt":
		return method(name, 0, 1, func(args []any) (any, error) {
			radix := 10
			if len(args) == 1 {
				r, ok := vals.ToInt(args[0])
				if !ok {
					return nil, errs.BadType("radix", "integer", vals.Repr(args[0]))
				}
				if r < 2 || r > 36 {
					return nil, errs.New(errs.ValueError, "radix must be from 2 to 36, but is %d", r)
				}
				radix = r
			}
			i, err := strconv.ParseInt(s, radix, 0)
			if err != nil {
				return nil, parseError(s, "integer")
			}
			return int(i), nil
		})
	case "toNumber":
		return noArgs(name, func() (any, error) {
			if i, err := strconv.Atoi(s); err == nil {
				return i, nil
			}
			f, err := strconv.ParseFloat(s, 64)
			if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
				return nil, parseError(s, "number")
			}
			return f, nil
		})
	case "toRange":
		return noArgs(name, func() (any, error) {
			left, right, ok := strings.Cut(s, "..")
			if !ok {
				return nil, parseError(s, "range")
			}
			right, inclusive := strings.CutPrefix(right, "=")
			start, err1 := strconv.Atoi(left)
			end, err2 := strconv.Atoi(right)
			if err1 != nil || err2 != nil {
				return nil, parseError(s, "range")
			}
			return vals.MakeRange(start, end, inclusive), nil
		})
	}
	return nil
}

func numberMember(n any, name string) any {
	round := func(f func(float64) float64) func() (any, error) {
		return func() (any, error) {
			if i, ok := n.(int); ok {
				return i, nil
			}
			return vals.NormalizeFloat(f(n.(float64))), nil
		}
	}
	switch name {
	case "toInt":
		return noArgs(name, round(math.Trunc))
	case "floor":
		return noArgs(name, round(math.Floor))
	case "ceil":
		return noArgs(name, round(math.Ceil))
	case "round":
		return noArgs(name, round(math.Round))
	}
	return nil
}

func listMember(l *vals.List, name string) any {
	switch name {
	case "length":
		return len(l.Elems)
	case "push":
		return method(name, 1, -1, func(args []any) (any, error) {
			l.Elems = append(l.Elems, args...)
			return nil, nil
		})
	case "pop":
		return noArgs(name, func() (any, error) {
			if len(l.Elems) == 0 {
				return nil, errs.New(errs.IndexOutOfBounds, "cannot pop from an empty list")
			}
			v := l.Elems[len(l.Elems)-1]
			l.Elems = l.Elems[:len(l.Elems)-1]
			return v, nil
		})
	case "contains":
		return method(name, 1, 1, func(args []any) (any, error) {
			for _, elem := range l.Elems {
				if vals.Equal(elem, args[0]) {
					return true, nil
				}
			}
			return false, nil
		})
	}
	return nil
}
