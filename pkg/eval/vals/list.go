package vals

// List is a mutable list. Lists are shared by reference: assigning a list to
// another variable or passing it to a function does not copy it.
type List struct {
	Elems []any
}

// MakeList creates a List from the given elements.
func MakeList(elems ...any) *List {
	if elems == nil {
		elems = []any{}
	}
	return &List{elems}
}

// Clone returns a shallow copy of the list.
func (l *List) Clone() *List {
	return &List{append([]any{}, l.Elems...)}
}
