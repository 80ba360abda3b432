package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/zephyrtronium/arith"
)

var (
	errColor   = color.New(color.FgRed, color.Bold)
	caretColor = color.New(color.FgYellow)
)

// calc evaluates expressions in one number representation and prints the
// results.
type calc[V arith.Value[V]] struct {
	typ  arith.Type[V]
	env  *arith.Env[V]
	out  io.Writer
	errw io.Writer

	verb    string
	printer *message.Printer
	echo    bool
}

// newCalc creates a calculator from cfg and applies its variable definitions.
// Each definition sees the ones before it.
func newCalc[V arith.Value[V]](typ arith.Type[V], cfg *config, out, errw io.Writer) (*calc[V], error) {
	c := &calc[V]{
		typ:  typ,
		env:  arith.NewEnv[V](),
		out:  out,
		errw: errw,
		verb: cfg.Format,
		echo: cfg.echo,
	}
	if c.verb == "" {
		c.verb = "%g"
	}
	if cfg.Locale != "" {
		tag, err := language.Parse(cfg.Locale)
		if err != nil {
			return nil, fmt.Errorf("locale %q: %w", cfg.Locale, err)
		}
		c.printer = message.NewPrinter(tag)
	}
	if cfg.Constants {
		if k, ok := typ.(arith.Constants[V]); ok {
			c.env = arith.NewEnv(arith.SetVars(k.Constants()))
		}
	}
	defs, err := cfg.definitions()
	if err != nil {
		return nil, err
	}
	for _, d := range defs {
		if err := c.define(d[0], d[1]); err != nil {
			return nil, fmt.Errorf("setting %s: %w", d[0], err)
		}
	}
	return c, nil
}

// define evaluates src and binds the result to name.
func (c *calc[V]) define(name, src string) error {
	if !isName(name) {
		return fmt.Errorf("%q is not a variable name", name)
	}
	r, err := arith.Eval(c.typ, src, c.env)
	if err != nil {
		return err
	}
	c.env.Set(name, r)
	return nil
}

// line handles one line of input, either an expression or an assignment
// "name = expr". It reports whether the line succeeded. Errors are printed.
func (c *calc[V]) line(src string) bool {
	if name, rhs, ok := assignment(src); ok {
		if err := c.define(name, rhs); err != nil {
			c.diagnose(rhs, err)
			return false
		}
		return true
	}
	a, err := arith.Parse(c.typ, src)
	if err != nil {
		c.diagnose(src, err)
		return false
	}
	if c.echo {
		fmt.Fprintf(c.out, "%v : ", a)
	}
	r, err := a.Eval(c.env)
	if err != nil {
		c.diagnose(src, err)
		return false
	}
	fmt.Fprintln(c.out, c.format(r))
	return true
}

// exprs evaluates each argument as an expression and returns the number of
// failures.
func (c *calc[V]) exprs(srcs []string) int {
	var bad int
	for _, src := range srcs {
		if !c.line(src) {
			bad++
		}
	}
	return bad
}

// lines evaluates each non-blank line of r and returns the number of failures.
func (c *calc[V]) lines(r io.Reader) (int, error) {
	var bad int
	s := bufio.NewScanner(r)
	for s.Scan() {
		if strings.TrimSpace(s.Text()) == "" {
			continue
		}
		if !c.line(s.Text()) {
			bad++
		}
	}
	return bad, s.Err()
}

// format renders a result with the locale printer if there is one, or else
// with the format verb applied to the representation's natural Go value.
// Locale output goes through float64, since x/text/number formats *big.Float
// as NaN.
func (c *calc[V]) format(r V) string {
	if c.printer != nil {
		return c.printer.Sprintf("%v", number.Decimal(r.Float64()))
	}
	var x any = r
	switch v := x.(type) {
	case arith.BigFloat:
		x = v.Big()
	case arith.Double:
		x = float64(v)
	}
	return fmt.Sprintf(c.verb, x)
}

// diagnose prints err. Syntax errors show the source with a caret under the
// offending column.
func (c *calc[V]) diagnose(src string, err error) {
	var se arith.SyntaxError
	if errors.As(err, &se) {
		fmt.Fprintln(c.errw, src)
		fmt.Fprintln(c.errw, strings.Repeat(" ", se.Pos())+caretColor.Sprint("^"))
	}
	errColor.Fprintln(c.errw, err)
}

// assignment splits "name = expr". The name must be a valid variable name.
func assignment(line string) (name, rhs string, ok bool) {
	name, rhs, ok = strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	name = strings.TrimSpace(name)
	if !isName(name) {
		return "", "", false
	}
	return name, rhs, true
}

// isName reports whether s is a letter followed by letters and digits.
func isName(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
