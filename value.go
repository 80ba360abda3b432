package arith

import "strconv"

// Value is the set of operations a numeric representation provides to
// expressions. V is the representation itself, so a Double only combines with
// a Double and a BigFloat only with a BigFloat.
//
// Values are immutable: every operation returns a new value and leaves its
// operands alone. Operations are total within the representation's own
// semantics. A representation which cannot produce a result for some operands,
// e.g. 0/0 without NaN, may panic with a *DomainError; evaluation recovers
// those panics and returns them as errors.
type Value[V any] interface {
	// Add returns the receiver plus x.
	Add(x V) V
	// Sub returns the receiver minus x.
	Sub(x V) V
	// Mul returns the receiver times x.
	Mul(x V) V
	// Quo returns the receiver divided by x.
	Quo(x V) V
	// Rem returns the remainder of the receiver divided by x, truncating the
	// quotient toward zero. The result has the sign of the receiver.
	Rem(x V) V
	// Neg returns the receiver with its sign flipped.
	Neg() V
	// Identity returns the receiver. It exists so that unary plus and minus
	// are applied the same way.
	Identity() V
	// Float64 returns the nearest float64 to the value.
	Float64() float64
	// Equal reports whether the receiver and x are the same number.
	Equal(x V) bool
	// String formats the value. Non-negative finite values are formatted so
	// that the literal grammar reads them back as the same value.
	String() string
}

// Func is a function of one value, such as sqrt. Funcs are resolved once when
// an expression is parsed and called on every evaluation.
type Func[V any] func(x V) V

// Type describes how a representation is written in expressions. It converts
// literals to values and resolves function names.
type Type[V Value[V]] interface {
	// ParseLiteral converts the text of a numeric literal. The text consists
	// of digits and decimal points only, but it may still be invalid, e.g.
	// "1.2.3".
	ParseLiteral(text string) (V, error)
	// Func resolves a function name. If the type does not know the name, the
	// error is an *UnknownFunctionError.
	Func(name string) (Func[V], error)
}

// Constants is implemented by types that provide named constants such as pi.
// Constants are not part of the grammar; callers bind them in an Env.
type Constants[V Value[V]] interface {
	Constants() map[string]V
}

// FuncNamer is implemented by types that can list the function names they
// resolve.
type FuncNamer interface {
	FuncNames() []string
}

// UnknownFunctionError is an error from resolving a function name that a Type
// does not know.
type UnknownFunctionError struct {
	// Name is the function name.
	Name string
}

func (err *UnknownFunctionError) Error() string {
	return "unknown function " + strconv.Quote(err.Name)
}
