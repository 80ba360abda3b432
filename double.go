package arith

import (
	"errors"
	"math"
	"strconv"
)

// Double is a float64 value. Arithmetic follows IEEE-754, so division by zero
// gives an infinity or NaN rather than an error.
type Double float64

func (d Double) Add(x Double) Double { return d + x }
func (d Double) Sub(x Double) Double { return d - x }
func (d Double) Mul(x Double) Double { return d * x }
func (d Double) Quo(x Double) Double { return d / x }

// Rem returns the remainder of d/x as math.Mod does.
func (d Double) Rem(x Double) Double { return Double(math.Mod(float64(d), float64(x))) }

func (d Double) Neg() Double      { return -d }
func (d Double) Identity() Double { return d }
func (d Double) Float64() float64 { return float64(d) }

// Equal reports whether d == x. As with ==, NaN is not equal to itself.
func (d Double) Equal(x Double) bool { return d == x }

// String formats d in decimal without an exponent, using the fewest digits
// that parse back to d.
func (d Double) String() string {
	return strconv.FormatFloat(float64(d), 'f', -1, 64)
}

// DoubleType is the Type for Double. It knows the functions sqrt, sin, and
// cos.
type DoubleType struct{}

var doublefuncs = map[string]Func[Double]{
	"sqrt": unaryDouble(math.Sqrt),
	"sin":  unaryDouble(math.Sin),
	"cos":  unaryDouble(math.Cos),
}

func unaryDouble(f func(float64) float64) Func[Double] {
	return func(x Double) Double { return Double(f(float64(x))) }
}

// ParseLiteral parses a decimal literal. Literals too large to represent
// become +Inf, and literals too small become 0.
func (DoubleType) ParseLiteral(text string) (Double, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return Double(f), nil
}

// Func returns sqrt, sin, or cos.
func (DoubleType) Func(name string) (Func[Double], error) {
	f := doublefuncs[name]
	if f == nil {
		return nil, &UnknownFunctionError{Name: name}
	}
	return f, nil
}

// FuncNames returns the names of the functions DoubleType resolves.
func (DoubleType) FuncNames() []string {
	return sortedKeys(doublefuncs)
}

// Constants returns pi and e.
func (DoubleType) Constants() map[string]Double {
	return map[string]Double{
		"pi": math.Pi,
		"e":  math.E,
	}
}

var (
	_ Type[Double]      = DoubleType{}
	_ Constants[Double] = DoubleType{}
	_ FuncNamer         = DoubleType{}
)
