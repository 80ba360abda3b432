package arith

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"
)

// diff finds the first in-order node of n that differs from m, or nil, nil if
// the two ASTs are equal. If any node is nodeNone, it is returned.
func (n *node[V]) diff(m *node[V]) (*node[V], *node[V]) {
	if n == nil {
		if m != nil {
			return n, m
		}
		return nil, nil
	}
	if m == nil {
		return n, m
	}
	if n.kind == nodeNone || m.kind == nodeNone {
		return n, m
	}
	if n.kind != m.kind {
		return n, m
	}
	switch n.kind {
	case nodeNum:
		if !n.val.Equal(m.val) {
			return n, m
		}
	case nodeName:
		if n.name != m.name {
			return n, m
		}
	case nodeCall:
		if n.name != m.name || (n.fn == nil) != (m.fn == nil) {
			return n, m
		}
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
	case nodePlus, nodeNeg:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeRem:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
		if d, e := n.right.diff(m.right); d != nil || e != nil {
			return d, e
		}
	default:
		panic(fmt.Errorf("invalid node kind: n=%+v m=%+v", n, m))
	}
	return nil, nil
}

// haskind checks whether a parse tree contains a node of the given type.
func (n *node[V]) haskind(k nodeKind) bool {
	if n == nil {
		return false
	}
	if n.kind == k {
		return true
	}
	if n.left.haskind(k) {
		return true
	}
	return n.right.haskind(k)
}

// testtype is DoubleType with an extra function.
var testtype = WithFuncs[Double](DoubleType{}, map[string]Func[Double]{
	"one": func(Double) Double { return 1 },
})

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"paren", "(x)", "x"},
		{"multi", "((((x))))", "x"},
		{"spaces", "  x  +  y  ", "x+y"},
		{"spaceparen", "( x )", "x"},

		{"plus", "+x", "(+(x))"},
		{"neg", "-x", "(-(x))"},
		{"negnum", "-1", "(-(1))"},
		{"add", "x+y", "((x)+(y))"},
		{"sub", "x-y", "((x)-(y))"},
		{"mul", "x*y", "((x)*(y))"},
		{"div", "x/y", "((x)/(y))"},
		{"rem", "x%y", "((x)%(y))"},

		{"add4", "w+x+y+z", "((w+x)+y)+z"},
		{"sub4", "w-x-y-z", "((w-x)-y)-z"},
		{"mul4", "w*x*y*z", "((w*x)*y)*z"},
		{"div4", "w/x/y/z", "((w/x)/y)/z"},
		{"rem4", "w%x%y%z", "((w%x)%y)%z"},
		{"mixmul", "w*x/y%z", "((w*x)/y)%z"},
		{"mixadd", "w+x-y+z", "((w+x)-y)+z"},

		{"desc", "w*x+y", "(w*x)+y"},
		{"asc", "w+x*y", "w+(x*y)"},
		{"ascdesc", "w+x*y-z", "(w+(x*y))-z"},
		{"remprec", "w-x%y", "w-(x%y)"},

		{"negneg", "--x", "-(-x)"},
		{"plusplus", "++x", "+(+x)"},
		{"plusneg", "+-x", "+(-x)"},
		{"negplus", "-+x", "-(+x)"},
		{"negspace", "- - x", "-(-x)"},
		{"negsub", "-x-x", "(-x)-x"},
		{"negmul", "-x*y", "(-x)*y"},
		{"mulneg", "x*-y", "x*(-y)"},
		{"subneg", "x - -y", "x-(-y)"},
		{"negparen", "-(x+y)", "-((x)+(y))"},

		{"call", "sqrt(x)", "sqrt((x))"},
		{"callspace", "sqrt (x)", "sqrt(x)"},
		{"callspaces", "sqrt( x )", "sqrt(x)"},
		{"callexpr", "sqrt(x+y)", "sqrt((x+y))"},
		{"calladd", "sqrt(x)+y", "(sqrt(x))+y"},
		{"callneg", "-sqrt(x)", "-(sqrt(x))"},
		{"callcall", "sin(cos(x))", "sin((cos((x))))"},
		{"custom", "one(x)*2", "(one(x))*2"},

		{"names", "a1 + B2c", "(a1)+(B2c)"},
		{"literals", ".5 + 1.", "0.5 + 1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(testtype, c.a)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.a, err)
			}
			b, err := Parse(testtype, c.b)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.b, err)
			}
			d, e := a.n.diff(b.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", c.a, a.n, d, c.b, b.n, e)
			}
		})
	}
}

func TestParseExact(t *testing.T) {
	cases := []struct {
		name string
		src  string
		n    *node[Double]
	}{
		{
			name: "num",
			src:  "123",
			n:    &node[Double]{kind: nodeNum, val: 123},
		},
		{
			name: "frac",
			src:  ".4",
			n:    &node[Double]{kind: nodeNum, val: 0.4},
		},
		{
			name: "name",
			src:  "x",
			n:    &node[Double]{kind: nodeName, name: "x"},
		},
		{
			name: "call",
			src:  "sqrt(9.0)",
			n: &node[Double]{
				kind: nodeCall,
				name: "sqrt",
				fn:   func(x Double) Double { return x },
				left: &node[Double]{kind: nodeNum, val: 9},
			},
		},
		{
			name: "unary",
			src:  "+-3",
			n: &node[Double]{
				kind: nodePlus,
				left: &node[Double]{
					kind: nodeNeg,
					left: &node[Double]{kind: nodeNum, val: 3},
				},
			},
		},
		{
			name: "binary",
			src:  "1 - x * 2",
			n: &node[Double]{
				kind: nodeSub,
				left: &node[Double]{kind: nodeNum, val: 1},
				right: &node[Double]{
					kind:  nodeMul,
					left:  &node[Double]{kind: nodeName, name: "x"},
					right: &node[Double]{kind: nodeNum, val: 2},
				},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseDouble(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			d, e := a.n.diff(c.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\twant %v which has %v\n\tgot  %v which has %v from %q", c.n, e, a.n, d, c.src)
			}
		})
	}
}

func TestParseResolvesOnce(t *testing.T) {
	calls := 0
	typ := WithFuncs[Double](DoubleType{}, map[string]Func[Double]{
		"twice": func(x Double) Double { return 2 * x },
	})
	counter := countingType{Type: typ, n: &calls}
	a, err := Parse[Double](counter, "twice(x) + twice(1)")
	if err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("resolved %d functions during parse, want 2", calls)
	}
	for i := 0; i < 5; i++ {
		r, err := a.Eval(NewEnv(SetVar("x", Double(i))))
		if err != nil {
			t.Fatal(err)
		}
		if want := Double(2*i + 2); r != want {
			t.Errorf("wrong result for x=%d: want %v, got %v", i, want, r)
		}
	}
	if calls != 2 {
		t.Errorf("evaluation resolved functions: %d resolutions, want 2", calls)
	}
}

type countingType struct {
	Type[Double]
	n *int
}

func (t countingType) Func(name string) (Func[Double], error) {
	*t.n++
	return t.Type.Func(name)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		pos  int
		// err is a pointer to the expected error type for errors.As.
		err any
	}{
		{"empty", "", 0, new(*CharError)},
		{"spaces", "   ", 3, new(*CharError)},
		{"literal", "1.2.3", 0, new(*LiteralError)},
		{"literal-rhs", "4 + 1..2", 4, new(*LiteralError)},
		{"dot", ".", 0, new(*LiteralError)},
		{"function", "nonexistent(1)", 0, new(*CallError)},
		{"function-rhs", "1 + nonexistent (1)", 4, new(*CallError)},
		{"function-case", "SQRT(4)", 0, new(*CallError)},
		{"terms", "2 3", 2, new(*CharError)},
		{"close", "2)", 1, new(*CharError)},
		{"open", "(2", 2, new(*BracketError)},
		{"open-add", "(2 + 3", 6, new(*BracketError)},
		{"open-nested", "((2) + 3", 8, new(*BracketError)},
		{"call-open", "sqrt(2", 6, new(*BracketError)},
		{"call-terms", "sqrt(2 3)", 7, new(*BracketError)},
		{"trailing-op", "2 +", 3, new(*CharError)},
		{"double-op", "2 * * 3", 4, new(*CharError)},
		{"symbol", "x $ y", 2, new(*CharError)},
		{"tab", "x\t+ y", 1, new(*CharError)},
		{"unicode", "π", 0, new(*CharError)},
		{"unicode-rhs", "1 + π", 4, new(*CharError)},
		{"dotname", "x.1", 1, new(*CharError)},
		{"emptyparens", "()", 1, new(*CharError)},
		{"signs", "++", 2, new(*CharError)},
		{"implicit", "2(3)", 1, new(*CharError)},
		{"pow", "2^3", 1, new(*CharError)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseDouble(c.src)
			if err == nil {
				t.Fatalf("%q parsed to %v", c.src, a)
			}
			var se SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("%#v is not a SyntaxError", err)
			}
			if p := se.Pos(); p != c.pos {
				t.Errorf("%q: wrong error position: want %d, got %d (%v)", c.src, c.pos, p, err)
			}
			if !errors.As(err, c.err) {
				t.Errorf("%q: wrong error type %T", c.src, err)
			}
			if !strings.HasPrefix(err.Error(), strconv.Itoa(c.pos)+": ") {
				t.Errorf("%q: error message %q doesn't start with position", c.src, err.Error())
			}
		})
	}
}

func TestParseErrorCauses(t *testing.T) {
	_, err := ParseDouble("1.2.3")
	var ne *strconv.NumError
	if !errors.As(err, &ne) {
		t.Errorf("literal error %#v does not unwrap to *strconv.NumError", err)
	}

	_, err = ParseDouble("nonexistent(1)")
	var ue *UnknownFunctionError
	if !errors.As(err, &ue) {
		t.Fatalf("call error %#v does not unwrap to *UnknownFunctionError", err)
	}
	if ue.Name != "nonexistent" {
		t.Errorf("wrong function name: want %q, got %q", "nonexistent", ue.Name)
	}
	if !strings.Contains(err.Error(), "nonexistent") {
		t.Errorf("%q doesn't mention the function", err.Error())
	}
}

func TestExprString(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"num", "1"},
		{"frac", ".25"},
		{"paren", "(x)"},
		{"plus", "+x"},
		{"neg", "-x"},
		{"negnum", "-1"},
		{"add", "x+y"},
		{"sub", "x-y"},
		{"mul", "x*y"},
		{"div", "x/y"},
		{"rem", "x%y"},
		{"add4", "w+x+y+z"},
		{"sub4", "w-x-y-z"},
		{"div4", "w/x/y/z"},
		{"desc", "w*x+y"},
		{"asc", "w+x*y"},
		{"negneg", "--x"},
		{"negsub", "-x-x"},
		{"mulneg", "x*-y"},
		{"call", "sqrt(x)"},
		{"callexpr", "cos(x*2) - sin(x/2)"},
		{"custom", "one(x) % 3"},
		{"long", "1.5 * (x + 2) / -(y % 0.125) - sqrt(x * x + y * y)"},
		{"bignum", "123456789012345678901234567890"},
		{"smallnum", "0.000000000000000000001"},
		{"hugenum", "1" + strings.Repeat("0", 400)},
		{"hugenum-expr", "x - 1" + strings.Repeat("0", 400)},
		{"tinynum", "0." + strings.Repeat("0", 400) + "1"},
		{"trailing-point", "4. + x"},
	}
	env := NewEnv(SetVars(map[string]Double{"w": 1.5, "x": 3, "y": -4.25, "z": 7}))
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(testtype, c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			s := a.String()
			b, err := Parse(testtype, s)
			if err != nil {
				t.Fatalf("%q -> %q failed to parse: %v", c.src, s, err)
			}
			d, e := a.n.diff(b.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", c.src, a.n, d, s, b.n, e)
			}
			if s2 := b.String(); s != s2 {
				t.Errorf("printing is not stable: %q then %q", s, s2)
			}
			r1, err1 := a.Eval(env)
			r2, err2 := b.Eval(env)
			if (err1 == nil) != (err2 == nil) {
				t.Fatalf("different errors: %v and %v", err1, err2)
			}
			if !r1.Equal(r2) && !(math.IsNaN(r1.Float64()) && math.IsNaN(r2.Float64())) {
				t.Errorf("different results: %v and %v", r1, r2)
			}
		})
	}
}

func TestParseTrailingPoint(t *testing.T) {
	// The literal scan takes any run of digits and points; the type decides
	// that "1." is 1.
	for _, src := range []string{"1.", "1. + 0", "(1.)"} {
		a, err := ParseDouble(src)
		if err != nil {
			t.Errorf("%q failed to parse: %v", src, err)
			continue
		}
		if r, err := a.Eval(nil); err != nil || r != 1 {
			t.Errorf("%q gave %v, %v", src, r, err)
		}
	}
	if _, err := Parse[BigFloat](BigFloatType{}, "1."); err != nil {
		t.Errorf("BigFloat rejected 1.: %v", err)
	}
}

func TestExprStringExact(t *testing.T) {
	cases := []struct {
		src, want string
	}{
		{"1", "(1)"},
		{".5", "(.5)"},
		{"007.50", "(007.50)"},
		{"x + 1", "((x) + (1))"},
		{"2 * (x + 1)", "((2) * ((x) + (1)))"},
		{"-sqrt(4)", "(-(sqrt(4)))"},
		{"28%10%3", "(((28) % (10)) % (3))"},
	}
	for _, c := range cases {
		a, err := ParseDouble(c.src)
		if err != nil {
			t.Errorf("%q failed to parse: %v", c.src, err)
			continue
		}
		if s := a.String(); s != c.want {
			t.Errorf("%q printed wrong: want %q, got %q", c.src, c.want, s)
		}
	}
}

func TestParseIdempotent(t *testing.T) {
	srcs := []string{"2 * 3 + 5", "x % y - -z", "sqrt(x) / cos(y)", "--+-1"}
	env := NewEnv(SetVars(map[string]Double{"x": 9, "y": 0.5, "z": 2}))
	for _, src := range srcs {
		a, err := ParseDouble(src)
		if err != nil {
			t.Fatalf("%q failed to parse: %v", src, err)
		}
		b, err := ParseDouble(src)
		if err != nil {
			t.Fatalf("%q failed to parse the second time: %v", src, err)
		}
		if d, e := a.n.diff(b.n); d != nil || e != nil {
			t.Errorf("%q parsed differently: %v has %v, %v has %v", src, a.n, d, b.n, e)
		}
		r1, _ := a.Eval(env)
		r2, _ := b.Eval(env)
		if r1 != r2 {
			t.Errorf("%q evaluated differently: %v and %v", src, r1, r2)
		}
	}
}

func TestParseKinds(t *testing.T) {
	cases := []struct {
		src  string
		kind nodeKind
		has  bool
	}{
		{"x+y", nodeAdd, true},
		{"x+y", nodeMul, false},
		{"2 % 3", nodeRem, true},
		{"(((+1)))", nodePlus, true},
		{"sqrt(-1)", nodeNeg, true},
		{"sqrt(-1)", nodeCall, true},
		{"x", nodeNum, false},
	}
	for _, c := range cases {
		a, err := ParseDouble(c.src)
		if err != nil {
			t.Errorf("%q failed to parse: %v", c.src, err)
			continue
		}
		if h := a.n.haskind(c.kind); h != c.has {
			t.Errorf("%q: haskind(%v) = %t, want %t", c.src, c.kind, h, c.has)
		}
	}
}

func TestVars(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars []string
	}{
		{"none", "1+2+3", nil},
		{"one", "1+2+x", []string{"x"}},
		{"sort", "z+y+x+w+v+u+t+s+r+q+p+o+n+m+l+k+j+i+h+g+f+e+d+c+b+a", strings.Fields("a b c d e f g h i j k l m n o p q r s t u v w x y z")},
		{"reuse", "a+b+c+b+a", []string{"a", "b", "c"}},
		{"funcs", "sqrt(x) + cos(sin)", []string{"sin", "x"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseDouble(c.src)
			if err != nil {
				t.Fatalf("%q didn't parse: %v", c.src, err)
			}
			vars := a.Vars()
			if len(vars) != len(c.vars) {
				t.Fatalf("%q gave wrong variable names:\n\twant %q\n\tgot  %q", c.src, c.vars, vars)
			}
			for i := range vars {
				if vars[i] != c.vars[i] {
					t.Errorf("%q gave wrong variable names:\n\twant %q\n\tgot  %q", c.src, c.vars, vars)
					break
				}
			}
		})
	}
}
