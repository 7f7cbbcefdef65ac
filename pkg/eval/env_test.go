package eval

import (
	"reflect"
	"testing"
)

func TestEnv(t *testing.T) {
	root := NewEnv(nil)
	root.Declare("a", 1)
	root.Declare("b", 2)
	child := NewEnv(root)
	child.Declare("a", "shadow")

	if v, _ := child.Lookup("a"); v != "shadow" {
		t.Errorf("child a = %v, want shadow", v)
	}
	if v, _ := root.Lookup("a"); v != 1 {
		t.Errorf("root a = %v, want 1", v)
	}
	if _, ok := child.LookupLocal("b"); ok {
		t.Errorf("LookupLocal found b in child")
	}
	if v, ok := child.Lookup("b"); !ok || v != 2 {
		t.Errorf("child b = %v, %v, want 2, true", v, ok)
	}

	if !child.Assign("b", 3) {
		t.Errorf("Assign b returned false")
	}
	if v, _ := root.LookupLocal("b"); v != 3 {
		t.Errorf("after assigning through child, root b = %v, want 3", v)
	}
	if child.Assign("c", 1) {
		t.Errorf("Assign to undeclared c returned true")
	}

	root.Declare("a", 10)
	if got, want := root.Names(), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if child.Parent() != root {
		t.Errorf("Parent() is not root")
	}
}
