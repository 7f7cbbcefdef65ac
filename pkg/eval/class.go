package eval

import (
	"github.com/RubixDev/Roost/pkg/eval/errs"
	"github.com/RubixDev/Roost/pkg/parse"
)

// Class is a class value. Static members live in the class's own scope, which
// is shared by all instances; instance members are kept as templates and
// evaluated anew for each instance.
type Class struct {
	Name    string
	statics *Env
	members []*parse.MemberDecl
	src     parse.Source
}

// Kind returns "class".
func (*Class) Kind() string { return "class" }

// Repr returns "<class Name>", or "<class>" for anonymous classes.
func (c *Class) Repr() string {
	if c.Name == "" {
		return "<class>"
	}
	return "<class " + c.Name + ">"
}

// Statics returns the scope holding the static members of the class.
func (c *Class) Statics() *Env { return c.statics }

// Instance is an instance of a class. Its scope holds the instance members
// and falls back to the static scope of its class.
type Instance struct {
	Class *Class
	env   *Env
}

// Kind returns "instance".
func (*Instance) Kind() string { return "instance" }

// Repr returns "<instance of Name>".
func (inst *Instance) Repr() string {
	if inst.Class.Name == "" {
		return "<instance>"
	}
	return "<instance of " + inst.Class.Name + ">"
}

// Fields returns the scope holding the instance members.
func (inst *Instance) Fields() *Env { return inst.env }

// evalClass creates a class from its members and materializes its static
// members. A named class is declared in env before the static members are
// evaluated, so that they can refer to it.
func (fm *frame) evalClass(name string, members []*parse.MemberDecl, env *Env) (*Class, error) {
	class := &Class{Name: name, statics: NewEnv(env), src: fm.src}
	if name != "" {
		env.Declare(name, class)
	}
	class.statics.Declare("this", class)
	for _, m := range members {
		if !m.Static {
			class.members = append(class.members, m)
			continue
		}
		if err := fm.evalMember(m, class.statics); err != nil {
			return nil, err
		}
	}
	return class, nil
}

func (fm *frame) evalMember(m *parse.MemberDecl, env *Env) error {
	if m.Fun != nil {
		env.Declare(m.Fun.Name, fm.closure(m.Fun.Name, m.Fun.Params, m.Fun.Body, env))
		return nil
	}
	return fm.evalVarDecl(m.Var, env)
}

// Calling a class creates an instance.
func (c *Class) call(fm *frame, args []any) (any, error) {
	if len(args) != 0 {
		return nil, errs.ArityMismatch("arguments of a class constructor", 0, 0, len(args))
	}
	inst := &Instance{c, NewEnv(c.statics)}
	inst.env.Declare("this", inst)
	fm = fm.fork(c.src)
	for _, m := range c.members {
		if err := fm.evalMember(m, inst.env); err != nil {
			return nil, illegalContext(err)
		}
	}
	return inst, nil
}

// Looks up a member of an instance or class. The second return value is false
// if there is no such member.
func classMember(v any, name string) (any, bool) {
	switch v := v.(type) {
	case *Instance:
		if name == "this" {
			return nil, false
		}
		if m, ok := v.env.LookupLocal(name); ok {
			return m, true
		}
		return v.Class.statics.LookupLocal(name)
	case *Class:
		if name == "this" {
			return nil, false
		}
		return v.statics.LookupLocal(name)
	}
	return nil, false
}

// Sets an existing member of an instance or class. It returns false if there
// is no such member.
func setClassMember(v any, name string, m any) bool {
	if name == "this" {
		return false
	}
	switch v := v.(type) {
	case *Instance:
		if _, ok := v.env.LookupLocal(name); ok {
			v.env.Declare(name, m)
			return true
		}
		return setClassMember(v.Class, name, m)
	case *Class:
		if _, ok := v.statics.LookupLocal(name); ok {
			v.statics.Declare(name, m)
			return true
		}
	}
	return false
}
