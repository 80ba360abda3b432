package arith

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// BigFloat is an arbitrary-precision floating-point value. The zero value is
// zero with the default precision.
//
// Results of arithmetic have the larger precision of the two operands.
// Because big.Float has no NaN, operations which would produce NaN, e.g. 0/0,
// inf-inf, or the square root of a negative number, panic with a *DomainError,
// which evaluation returns as an error. Division of a nonzero number by zero
// gives an infinity.
type BigFloat struct {
	f *big.Float
}

// DefaultPrec is the precision of BigFloat values when none is given.
const DefaultPrec = 64

// NewBigFloat creates a BigFloat with the value and precision of x. x is
// copied, so later changes to it do not affect the result.
func NewBigFloat(x *big.Float) BigFloat {
	return BigFloat{new(big.Float).Copy(x)}
}

// Big returns a copy of the value as a *big.Float.
func (b BigFloat) Big() *big.Float {
	return new(big.Float).Copy(b.val())
}

func (b BigFloat) val() *big.Float {
	if b.f == nil {
		return new(big.Float).SetPrec(DefaultPrec)
	}
	return b.f
}

// prec gets the precision for a result with operands b and x.
func (b BigFloat) prec(x BigFloat) uint {
	p := b.val().Prec()
	if q := x.val().Prec(); q > p {
		p = q
	}
	if p == 0 {
		p = DefaultPrec
	}
	return p
}

// domain turns a big.ErrNaN panic into a *DomainError panic. It must be
// deferred directly.
func domain(op string, x *big.Float) {
	r := recover()
	if r == nil {
		return
	}
	if nan, ok := r.(big.ErrNaN); ok {
		panic(&DomainError{X: new(big.Float).Copy(x), Op: op, Err: nan})
	}
	panic(r)
}

func (b BigFloat) binary(op string, x BigFloat, f func(z, x, y *big.Float) *big.Float) BigFloat {
	defer domain(op, x.val())
	z := new(big.Float).SetPrec(b.prec(x))
	return BigFloat{f(z, b.val(), x.val())}
}

func (b BigFloat) Add(x BigFloat) BigFloat { return b.binary("+", x, (*big.Float).Add) }
func (b BigFloat) Sub(x BigFloat) BigFloat { return b.binary("-", x, (*big.Float).Sub) }
func (b BigFloat) Mul(x BigFloat) BigFloat { return b.binary("*", x, (*big.Float).Mul) }
func (b BigFloat) Quo(x BigFloat) BigFloat { return b.binary("/", x, (*big.Float).Quo) }

// Rem returns b - x*trunc(b/x), computed exactly and then rounded. x = 0 or
// infinite b is a domain error. If x is infinite and b is finite, the result
// is b.
func (b BigFloat) Rem(x BigFloat) BigFloat {
	n, d := b.val(), x.val()
	p := b.prec(x)
	if d.Sign() == 0 || n.IsInf() {
		panic(&DomainError{X: new(big.Float).Copy(d), Op: "%"})
	}
	if d.IsInf() {
		return BigFloat{new(big.Float).SetPrec(p).Set(n)}
	}
	nr, _ := n.Rat(nil)
	dr, _ := d.Rat(nil)
	q := new(big.Rat).Quo(nr, dr)
	t := new(big.Int).Quo(q.Num(), q.Denom())
	r := new(big.Rat).Mul(dr, new(big.Rat).SetInt(t))
	r.Sub(nr, r)
	z := new(big.Float).SetPrec(p).SetRat(r)
	if z.Sign() == 0 && n.Signbit() {
		z.Neg(z)
	}
	return BigFloat{z}
}

func (b BigFloat) Neg() BigFloat {
	v := b.val()
	return BigFloat{new(big.Float).SetPrec(b.prec(b)).Neg(v)}
}

func (b BigFloat) Identity() BigFloat { return b }

func (b BigFloat) Float64() float64 {
	f, _ := b.val().Float64()
	return f
}

func (b BigFloat) Equal(x BigFloat) bool {
	return b.val().Cmp(x.val()) == 0
}

// String formats b in decimal without an exponent, using the fewest digits
// that identify b at its precision.
func (b BigFloat) String() string {
	return b.val().Text('f', -1)
}

// BigFloatType is the Type for BigFloat. It knows the functions sqrt, exp, ln,
// and log (base 10). It does not know sin or cos.
type BigFloatType struct {
	// Prec is the precision of literals and function results in bits. If it
	// is 0, DefaultPrec is used.
	Prec uint
}

func (t BigFloatType) prec() uint {
	if t.Prec == 0 {
		return DefaultPrec
	}
	return t.Prec
}

// ParseLiteral parses a decimal literal at the type's precision.
func (t BigFloatType) ParseLiteral(text string) (BigFloat, error) {
	f, _, err := new(big.Float).SetPrec(t.prec()).Parse(text, 10)
	if err != nil {
		return BigFloat{}, err
	}
	return BigFloat{f}, nil
}

var bigfuncs = map[string]func(out, in *big.Float) *big.Float{
	"sqrt": (*big.Float).Sqrt,
	"exp":  exp,
	"ln":   ln,
	"log": func(out, in *big.Float) *big.Float {
		ln(out, in)
		ten := new(big.Float).SetPrec(out.Prec()).SetInt64(10)
		bigfloat.Log(ten, ten)
		return out.Quo(out, ten)
	},
}

func exp(out, in *big.Float) *big.Float {
	if in.IsInf() {
		if in.Signbit() {
			return out.SetInt64(0)
		}
		return out.SetInf(false)
	}
	return bigfloat.Exp(out, in)
}

// ln is bigfloat.Log with the edges of its domain handled here, since
// bigfloat.Log does not panic with big.ErrNaN.
func ln(out, in *big.Float) *big.Float {
	switch {
	case in.Sign() < 0:
		panic(big.ErrNaN{})
	case in.Sign() == 0:
		return out.SetInf(true)
	case in.IsInf():
		return out.SetInf(false)
	}
	return bigfloat.Log(out, in)
}

// Func returns sqrt, exp, ln, or log. The function computes its result at the
// larger of the type's precision and its argument's.
func (t BigFloatType) Func(name string) (Func[BigFloat], error) {
	f := bigfuncs[name]
	if f == nil {
		return nil, &UnknownFunctionError{Name: name}
	}
	p := t.prec()
	return func(x BigFloat) BigFloat {
		in := x.val()
		defer domain(name, in)
		q := p
		if in.Prec() > q {
			q = in.Prec()
		}
		// Copy the argument so that no function can modify it.
		arg := new(big.Float).SetPrec(q).Set(in)
		return BigFloat{f(new(big.Float).SetPrec(q), arg)}
	}, nil
}

// FuncNames returns the names of the functions BigFloatType resolves.
func (BigFloatType) FuncNames() []string {
	return sortedKeys(bigfuncs)
}

// Constants returns pi and e at the type's precision.
func (t BigFloatType) Constants() map[string]BigFloat {
	p := t.prec()
	one := new(big.Float).SetPrec(p).SetInt64(1)
	return map[string]BigFloat{
		"pi": {bigfloat.Pi(new(big.Float).SetPrec(p))},
		"e":  {bigfloat.Exp(new(big.Float).SetPrec(p), one)},
	}
}

// DomainError is an error from an operation on a BigFloat whose result is not
// a number. It unwraps to big.ErrNaN when the operation panicked with one.
type DomainError struct {
	// X is the operand that was out of the domain, where the operation has
	// one. For binary operators, it is the right operand.
	X *big.Float
	// Op identifies the operation or function.
	Op string
	// Err is the underlying error, if any.
	Err error
}

func (err *DomainError) Error() string {
	r := "outside domain"
	if err.X != nil {
		r = err.X.String() + " " + r
	}
	if err.Op != "" {
		r += " of " + err.Op
	}
	return r
}

func (err *DomainError) Unwrap() error {
	return err.Err
}

var (
	_ Type[BigFloat]      = BigFloatType{}
	_ Constants[BigFloat] = BigFloatType{}
	_ FuncNamer           = BigFloatType{}
)
