package arith

// WithFuncs creates a Type that resolves functions from fns before asking
// typ. Literals are parsed by typ. To disable one of typ's functions, map its
// name to nil; calls to it then fail to parse.
//
// fns is copied, so later changes to it do not affect the result.
func WithFuncs[V Value[V]](typ Type[V], fns map[string]Func[V]) Type[V] {
	t := funcsType[V]{Type: typ, fns: make(map[string]Func[V], len(fns))}
	if w, ok := typ.(funcsType[V]); ok {
		// Flatten so that stacked options don't nest lookups.
		t.Type = w.Type
		for k, v := range w.fns {
			t.fns[k] = v
		}
	}
	for k, v := range fns {
		t.fns[k] = v
	}
	return t
}

// DisableFuncs creates a Type that resolves none of the given function names.
func DisableFuncs[V Value[V]](typ Type[V], names ...string) Type[V] {
	m := make(map[string]Func[V], len(names))
	for _, name := range names {
		m[name] = nil
	}
	return WithFuncs(typ, m)
}

type funcsType[V Value[V]] struct {
	Type[V]
	fns map[string]Func[V]
}

func (t funcsType[V]) Func(name string) (Func[V], error) {
	f, ok := t.fns[name]
	switch {
	case !ok:
		return t.Type.Func(name)
	case f == nil:
		return nil, &UnknownFunctionError{Name: name}
	default:
		return f, nil
	}
}

// FuncNames returns the names the type resolves, if the underlying type can
// list its own.
func (t funcsType[V]) FuncNames() []string {
	m := make(map[string]bool, len(t.fns))
	if n, ok := t.Type.(FuncNamer); ok {
		for _, name := range n.FuncNames() {
			m[name] = true
		}
	}
	for k, v := range t.fns {
		m[k] = v != nil
	}
	for k, v := range m {
		if !v {
			delete(m, k)
		}
	}
	return sortedKeys(m)
}

// Constants forwards to the underlying type, if it has constants.
func (t funcsType[V]) Constants() map[string]V {
	if c, ok := t.Type.(Constants[V]); ok {
		return c.Constants()
	}
	return nil
}
