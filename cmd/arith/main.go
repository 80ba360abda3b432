package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"

	"github.com/zephyrtronium/arith"
)

const usage = `usage: arith [-eci] [-t double|big] [-p bits] [-f file.yaml] [-d name=expr]... [-o verb] [-l locale] [expr...]

Evaluate arithmetic expressions. With no expressions given, each line of
standard input is an expression.

  -t type     number representation, double or big (default double)
  -p bits     precision for big (default 64)
  -f file     YAML configuration file; other options override it
  -d name=e   define a variable from an expression (any number of times)
  -o verb     result format verb (default %g)
  -l locale   format results for a language, e.g. en or de, with float64
              precision
  -e          print parse trees
  -c          define the constants pi and e
  -i          interactive mode
  -h          show this help
`

func main() {
	log.SetFlags(0)
	cfg, args, err := configure(os.Args)
	if err != nil {
		log.Fatal(err)
	}
	var bad int
	switch cfg.Type {
	case "double":
		bad, err = run[arith.Double](arith.DoubleType{}, cfg, args, os.Stdin, os.Stdout, os.Stderr)
	case "big":
		bad, err = run[arith.BigFloat](arith.BigFloatType{Prec: cfg.Prec}, cfg, args, os.Stdin, os.Stdout, os.Stderr)
	default:
		log.Fatalf("unknown number type %q", cfg.Type)
	}
	if err != nil {
		log.Fatal(err)
	}
	if bad > 0 {
		os.Exit(1)
	}
}

// configure parses the command line. A -f file is loaded first wherever it
// appears so that the other options override it.
func configure(argv []string) (*config, []string, error) {
	opts, optind, err := getopt.Getopts(argv, "t:p:f:d:o:l:ecih")
	if err != nil {
		return nil, nil, err
	}
	cfg := defaultConfig()
	for _, o := range opts {
		if o.Option == 'f' {
			cfg, err = readConfig(o.Value)
			if err != nil {
				return nil, nil, err
			}
		}
	}
	for _, o := range opts {
		switch o.Option {
		case 't':
			cfg.Type = o.Value
		case 'p':
			p, err := strconv.ParseUint(o.Value, 10, 32)
			if err != nil || p == 0 {
				return nil, nil, fmt.Errorf("precision %q must be a positive integer", o.Value)
			}
			cfg.Prec = uint(p)
		case 'd':
			d := strings.SplitN(o.Value, "=", 2)
			if len(d) != 2 {
				return nil, nil, fmt.Errorf(`variable definitions must be "name=expr", not %q`, o.Value)
			}
			cfg.defs = append(cfg.defs, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		case 'o':
			cfg.Format = o.Value
		case 'l':
			cfg.Locale = o.Value
		case 'e':
			cfg.echo = true
		case 'c':
			cfg.Constants = true
		case 'i':
			cfg.repl = true
		case 'h':
			fmt.Fprintf(os.Stderr, "%s", usage)
			os.Exit(0)
		}
	}
	return cfg, argv[optind:], nil
}

func readConfig(name string) (*config, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return loadConfig(f)
}

// run evaluates the expressions in args, the interactive session, or stdin,
// in that order of preference. It returns the number of expressions that
// failed. Errors in setting up the calculator are returned instead.
func run[V arith.Value[V]](typ arith.Type[V], cfg *config, args []string, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	c, err := newCalc(typ, cfg, stdout, stderr)
	if err != nil {
		return 0, err
	}
	switch {
	case len(args) > 0:
		return c.exprs(args), nil
	case cfg.repl:
		return c.repl(), nil
	default:
		return c.lines(stdin)
	}
}
