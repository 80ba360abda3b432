package arith

// Env is a set of variable bindings for evaluating expressions. Parsing never
// consults an Env; variables are looked up only when an expression is
// evaluated. An Env is not safe to use concurrently.
//
// A nil *Env has no variables. It may be passed to Eval and read from, but
// not modified.
type Env[V Value[V]] struct {
	names map[string]V
}

// EnvOption is an option used when creating an environment.
type EnvOption[V Value[V]] interface {
	envOption(*Env[V])
}

type (
	varopt[V Value[V]] struct {
		name string
		val  V
	}
	varsopt[V Value[V]] map[string]V
)

func (o varopt[V]) envOption(env *Env[V]) {
	env.names[o.name] = o.val
}

func (o varsopt[V]) envOption(env *Env[V]) {
	for k, v := range o {
		env.names[k] = v
	}
}

// SetVar sets the value of a variable in the environment.
func SetVar[V Value[V]](name string, val V) EnvOption[V] {
	return varopt[V]{name, val}
}

// SetVars sets the values of any number of variables in the environment.
func SetVars[V Value[V]](vars map[string]V) EnvOption[V] {
	return varsopt[V](vars)
}

// NewEnv creates a new environment with options applied in order.
func NewEnv[V Value[V]](opts ...EnvOption[V]) *Env[V] {
	var env Env[V]
	return env.Clone(opts...)
}

// Pairs creates an environment from alternating names and values, e.g.
// Pairs("x", Double(1), "y", Double(2)). Panics if there is an odd number of
// arguments or if an argument has the wrong type.
func Pairs[V Value[V]](kv ...any) *Env[V] {
	if len(kv)%2 != 0 {
		panic("arith: odd number of arguments to Pairs")
	}
	env := NewEnv[V]()
	for i := 0; i < len(kv); i += 2 {
		env.Set(kv[i].(string), kv[i+1].(V))
	}
	return env
}

// Lookup returns the value of a variable and whether it is set.
func (env *Env[V]) Lookup(name string) (V, bool) {
	if env == nil {
		var zero V
		return zero, false
	}
	v, ok := env.names[name]
	return v, ok
}

// Has returns whether a variable is set.
func (env *Env[V]) Has(name string) bool {
	_, ok := env.Lookup(name)
	return ok
}

// Set sets the value of a variable. Returns env for chaining.
func (env *Env[V]) Set(name string, val V) *Env[V] {
	if env.names == nil {
		env.names = make(map[string]V)
	}
	env.names[name] = val
	return env
}

// Replace sets the value of a variable only if it is already set. It returns
// the old value and whether there was one.
func (env *Env[V]) Replace(name string, val V) (V, bool) {
	old, ok := env.Lookup(name)
	if ok {
		env.names[name] = val
	}
	return old, ok
}

// LookupOr returns the value of a variable, or def if it is not set.
func (env *Env[V]) LookupOr(name string, def V) V {
	if v, ok := env.Lookup(name); ok {
		return v
	}
	return def
}

// Delete removes a variable. It is not an error if the variable is not set.
func (env *Env[V]) Delete(name string) {
	if env == nil {
		return
	}
	delete(env.names, name)
}

// Clear removes all variables.
func (env *Env[V]) Clear() {
	if env == nil {
		return
	}
	clear(env.names)
}

// Len returns the number of variables that are set.
func (env *Env[V]) Len() int {
	if env == nil {
		return 0
	}
	return len(env.names)
}

// Names returns the names of all set variables in sorted order.
func (env *Env[V]) Names() []string {
	if env == nil {
		return nil
	}
	return sortedKeys(env.names)
}

// Clone creates a copy of an environment and applies options to it. Changes
// to either environment do not affect the other. Cloning a nil *Env gives an
// empty environment.
func (env *Env[V]) Clone(opts ...EnvOption[V]) *Env[V] {
	n := Env[V]{names: make(map[string]V, env.Len())}
	if env != nil {
		// Values are immutable, so sharing them is fine.
		for k, v := range env.names {
			n.names[k] = v
		}
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.envOption(&n)
	}
	return &n
}

// sortedKeys returns the keys of m in sorted order.
func sortedKeys[T any](m map[string]T) []string {
	if len(m) == 0 {
		return nil
	}
	r := make([]string, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	sortstrs(r)
	return r
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}
