package arith

import "strconv"

// Eval evaluates the expression with the variables in env and returns the
// result. If a variable is missing from env, the error is an
// *UnknownVariableError. If an operation is outside the representation's
// domain, e.g. 0/0 with BigFloat, the error is a *DomainError. Otherwise, the
// result follows the representation's own arithmetic; Double gives infinities
// and NaNs for division by zero.
//
// env may be nil if the expression uses no variables.
func (e *Expr[V]) Eval(env *Env[V]) (r V, err error) {
	defer func() {
		x := recover()
		if x == nil {
			return
		}
		de, ok := x.(*DomainError)
		if !ok {
			panic(x)
		}
		var zero V
		r, err = zero, de
	}()
	return e.n.eval(env)
}

// EvalFloat64 evaluates the expression and converts the result to float64.
func (e *Expr[V]) EvalFloat64(env *Env[V]) (float64, error) {
	r, err := e.Eval(env)
	if err != nil {
		return 0, err
	}
	return r.Float64(), nil
}

// eval computes the node's value. The left operand is always evaluated fully
// before the right.
func (n *node[V]) eval(env *Env[V]) (V, error) {
	var zero V
	switch n.kind {
	case nodeNum:
		return n.val, nil
	case nodeName:
		v, ok := env.Lookup(n.name)
		if !ok {
			return zero, &UnknownVariableError{Name: n.name}
		}
		return v, nil
	case nodeCall:
		x, err := n.left.eval(env)
		if err != nil {
			return zero, err
		}
		return n.fn(x), nil
	case nodePlus:
		x, err := n.left.eval(env)
		if err != nil {
			return zero, err
		}
		return x.Identity(), nil
	case nodeNeg:
		x, err := n.left.eval(env)
		if err != nil {
			return zero, err
		}
		return x.Neg(), nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeRem:
		l, err := n.left.eval(env)
		if err != nil {
			return zero, err
		}
		r, err := n.right.eval(env)
		if err != nil {
			return zero, err
		}
		switch n.kind {
		case nodeAdd:
			return l.Add(r), nil
		case nodeSub:
			return l.Sub(r), nil
		case nodeMul:
			return l.Mul(r), nil
		case nodeDiv:
			return l.Quo(r), nil
		default:
			return l.Rem(r), nil
		}
	default:
		panic("arith: invalid AST node " + n.kind.String())
	}
}

// Eval is a shortcut to parse an expression and evaluate it with env.
func Eval[V Value[V]](typ Type[V], src string, env *Env[V]) (V, error) {
	a, err := Parse(typ, src)
	if err != nil {
		var zero V
		return zero, err
	}
	return a.Eval(env)
}

// EvalString is a shortcut to parse and evaluate an expression over Double
// values with variables set by opts.
func EvalString(src string, opts ...EnvOption[Double]) (Double, error) {
	return Eval[Double](DoubleType{}, src, NewEnv(opts...))
}

// UnknownVariableError is an error from a lookup for a variable that is
// missing from the evaluation environment.
type UnknownVariableError struct {
	// Name is the name that was missing.
	Name string
}

func (err *UnknownVariableError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}
