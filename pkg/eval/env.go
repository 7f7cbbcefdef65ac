package eval

// Env is a scope: an ordered mapping from names to values, with an optional
// parent scope that lookups fall back to.
//
// Environments are shared by closures that capture them and are reclaimed by
// the garbage collector once unreachable, including when a closure is stored
// in the very scope it captures.
type Env struct {
	parent *Env
	names  []string
	slots  map[string]int
	values []any
}

// NewEnv creates an empty Env with the given parent, which may be nil.
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, slots: map[string]int{}}
}

// Parent returns the parent of the Env.
func (env *Env) Parent() *Env { return env.parent }

// Declare binds a name in this Env, replacing any existing binding of the
// same name in this Env. Bindings in parent Envs are shadowed, not touched.
func (env *Env) Declare(name string, v any) {
	if i, ok := env.slots[name]; ok {
		env.values[i] = v
		return
	}
	env.slots[name] = len(env.values)
	env.names = append(env.names, name)
	env.values = append(env.values, v)
}

// LookupLocal looks up a name in this Env only.
func (env *Env) LookupLocal(name string) (any, bool) {
	if i, ok := env.slots[name]; ok {
		return env.values[i], true
	}
	return nil, false
}

// Lookup looks up a name in this Env and its ancestors, innermost first.
func (env *Env) Lookup(name string) (any, bool) {
	for e := env; e != nil; e = e.parent {
		if v, ok := e.LookupLocal(name); ok {
			return v, true
		}
	}
	return nil, false
}

// Assign rewrites the innermost existing binding of a name. It returns false
// if the name is not bound anywhere in the chain.
func (env *Env) Assign(name string, v any) bool {
	for e := env; e != nil; e = e.parent {
		if i, ok := e.slots[name]; ok {
			e.values[i] = v
			return true
		}
	}
	return false
}

// Names returns the names bound in this Env, in the order they were first
// declared.
func (env *Env) Names() []string {
	return append([]string(nil), env.names...)
}
