package eval

import (
	"math"
	"strings"

	"github.com/RubixDev/Roost/pkg/eval/errs"
	"github.com/RubixDev/Roost/pkg/eval/vals"
	"github.com/RubixDev/Roost/pkg/parse"
)

// binaryOp applies a binary operator other than && and ||, which
// short-circuit and are handled by the evaluator directly.
func binaryOp(op parse.TokenKind, l, r any) (any, error) {
	switch op {
	case parse.Equal:
		return vals.Equal(l, r), nil
	case parse.NotEqual:
		return !vals.Equal(l, r), nil
	case parse.LessThan, parse.GreaterThan, parse.LessThanOrEqual, parse.GreaterThanOrEqual:
		return compare(op, l, r)
	case parse.BitOr, parse.BitXor, parse.BitAnd, parse.ShiftLeft, parse.ShiftRight:
		return bitwise(op, l, r)
	case parse.Plus:
		if _, ok := l.(string); ok {
			return l.(string) + vals.ToString(r), nil
		}
		if s, ok := r.(string); ok {
			return vals.ToString(l) + s, nil
		}
		if ll, ok := l.(*vals.List); ok {
			if rl, ok := r.(*vals.List); ok {
				elems := make([]any, 0, len(ll.Elems)+len(rl.Elems))
				return vals.MakeList(append(append(elems, ll.Elems...), rl.Elems...)...), nil
			}
		}
	case parse.Star:
		if s, ok := l.(string); ok {
			return repeat(s, r)
		}
		if s, ok := r.(string); ok {
			return repeat(s, l)
		}
	}
	if !vals.IsNumber(l) || !vals.IsNumber(r) {
		return nil, errs.New(errs.TypeMismatch, "cannot apply %s to %s and %s", op.Symbol(), vals.Kind(l), vals.Kind(r))
	}
	if a, ok := l.(int); ok {
		if b, ok := r.(int); ok {
			return intOp(op, a, b)
		}
	}
	a, _ := vals.ToFloat(l)
	b, _ := vals.ToFloat(r)
	return floatOp(op, a, b)
}

func repeat(s string, n any) (any, error) {
	i, ok := vals.ToInt(n)
	if !ok {
		if vals.IsNumber(n) {
			return nil, errs.New(errs.ValueError, "cannot repeat a string a fractional number of times")
		}
		return nil, errs.New(errs.TypeMismatch, "cannot apply * to string and %s", vals.Kind(n))
	}
	if i < 0 {
		i = 0
	}
	if i > 0 && len(s) > maxRepeatLen/i {
		return nil, errs.New(errs.ValueError, "repeated string would be longer than %d bytes", maxRepeatLen)
	}
	return strings.Repeat(s, i), nil
}

// Upper bound of the length of a string produced by repetition.
const maxRepeatLen = 1 << 30

// Arithmetic on ints. Results that overflow are computed in floating point.
func intOp(op parse.TokenKind, a, b int) (any, error) {
	switch op {
	case parse.Plus:
		s := a + b
		if (a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s >= 0) {
			return float64(a) + float64(b), nil
		}
		return s, nil
	case parse.Minus:
		s := a - b
		if (a >= 0 && b < 0 && s < 0) || (a < 0 && b > 0 && s >= 0) {
			return float64(a) - float64(b), nil
		}
		return s, nil
	case parse.Star:
		if a == 0 || b == 0 {
			return 0, nil
		}
		p := a * b
		if p/b != a || (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
			return float64(a) * float64(b), nil
		}
		return p, nil
	case parse.Slash:
		if b == 0 {
			return nil, divisionByZero()
		}
		if a%b == 0 && !(a == math.MinInt && b == -1) {
			return a / b, nil
		}
		return float64(a) / float64(b), nil
	case parse.Backslash:
		if b == 0 {
			return nil, divisionByZero()
		}
		if a == math.MinInt && b == -1 {
			return -float64(a), nil
		}
		q := a / b
		if a%b != 0 && (a < 0) != (b < 0) {
			q--
		}
		return q, nil
	case parse.Rem:
		if b == 0 {
			return nil, divisionByZero()
		}
		if b == -1 {
			return 0, nil
		}
		return a % b, nil
	case parse.Pow:
		if b < 0 {
			return math.Pow(float64(a), float64(b)), nil
		}
		if p, ok := intPow(a, b); ok {
			return p, nil
		}
		return math.Pow(float64(a), float64(b)), nil
	}
	return nil, errs.New(errs.TypeMismatch, "cannot apply %s to numbers", op.Symbol())
}

// Computes a**b for b >= 0 by repeated squaring. It returns false on
// overflow.
func intPow(a, b int) (int, bool) {
	result := 1
	for b > 0 {
		if b&1 == 1 {
			r := result * a
			if a != 0 && r/a != result {
				return 0, false
			}
			result = r
		}
		b >>= 1
		if b > 0 {
			sq := a * a
			if a != 0 && sq/a != a {
				return 0, false
			}
			a = sq
		}
	}
	return result, true
}

func floatOp(op parse.TokenKind, a, b float64) (any, error) {
	switch op {
	case parse.Plus:
		return a + b, nil
	case parse.Minus:
		return a - b, nil
	case parse.Star:
		return a * b, nil
	case parse.Slash:
		if b == 0 {
			return nil, divisionByZero()
		}
		return a / b, nil
	case parse.Backslash:
		if b == 0 {
			return nil, divisionByZero()
		}
		return vals.NormalizeFloat(math.Floor(a / b)), nil
	case parse.Rem:
		if b == 0 {
			return nil, divisionByZero()
		}
		return math.Mod(a, b), nil
	case parse.Pow:
		return math.Pow(a, b), nil
	}
	return nil, errs.New(errs.TypeMismatch, "cannot apply %s to numbers", op.Symbol())
}

func divisionByZero() error {
	return errs.New(errs.DivisionByZero, "cannot divide by zero")
}

func compare(op parse.TokenKind, l, r any) (any, error) {
	var c int
	switch {
	case vals.IsNumber(l) && vals.IsNumber(r):
		ai, aok := l.(int)
		bi, bok := r.(int)
		if aok && bok {
			c = cmpInt(ai, bi)
			break
		}
		a, _ := vals.ToFloat(l)
		b, _ := vals.ToFloat(r)
		if math.IsNaN(a) || math.IsNaN(b) {
			return false, nil
		}
		switch {
		case a < b:
			c = -1
		case a > b:
			c = 1
		}
	default:
		ls, lok := l.(string)
		rs, rok := r.(string)
		if !lok || !rok {
			return nil, errs.New(errs.TypeMismatch, "cannot compare %s and %s", vals.Kind(l), vals.Kind(r))
		}
		c = strings.Compare(ls, rs)
	}
	switch op {
	case parse.LessThan:
		return c < 0, nil
	case parse.GreaterThan:
		return c > 0, nil
	case parse.LessThanOrEqual:
		return c <= 0, nil
	default:
		return c >= 0, nil
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Bitwise and shift operators. Two booleans combine to a boolean with &, |
// and ^; otherwise booleans count as 0 and 1.
func bitwise(op parse.TokenKind, l, r any) (any, error) {
	if a, ok := l.(bool); ok {
		if b, ok := r.(bool); ok {
			switch op {
			case parse.BitAnd:
				return a && b, nil
			case parse.BitOr:
				return a || b, nil
			case parse.BitXor:
				return a != b, nil
			}
		}
	}
	a, aok := bitwiseOperand(l)
	b, bok := bitwiseOperand(r)
	if !aok || !bok {
		return nil, errs.New(errs.TypeMismatch, "%s requires integers or booleans on both sides, but got %s and %s", op.Symbol(), vals.Kind(l), vals.Kind(r))
	}
	switch op {
	case parse.BitAnd:
		return a & b, nil
	case parse.BitOr:
		return a | b, nil
	case parse.BitXor:
		return a ^ b, nil
	}
	if b < 0 {
		return nil, errs.New(errs.ValueError, "shift count must not be negative, but is %d", b)
	}
	if op == parse.ShiftLeft {
		return a << b, nil
	}
	return a >> b, nil
}

func bitwiseOperand(v any) (int, bool) {
	if b, ok := v.(bool); ok {
		if b {
			return 1, true
		}
		return 0, true
	}
	return vals.ToInt(v)
}

func unaryOp(op parse.TokenKind, v any) (any, error) {
	switch op {
	case parse.Not:
		return !vals.Truthy(v), nil
	case parse.Plus:
		if vals.IsNumber(v) {
			return v, nil
		}
	case parse.Minus:
		switch v := v.(type) {
		case int:
			if v == math.MinInt {
				return -float64(v), nil
			}
			return -v, nil
		case float64:
			return -v, nil
		}
	}
	return nil, errs.New(errs.TypeMismatch, "cannot apply unary %s to %s", op.Symbol(), vals.Kind(v))
}
