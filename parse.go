package arith

import (
	"strings"
	"unicode/utf8"
)

// Expr = Add
// Add = Mul { ('+' | '-') Mul }
// Mul = Unary { ('*' | '/' | '%') Unary }
// Unary = ('+' | '-') Unary | Primary
// Primary = num | funcname '(' Expr ')' | name | '(' Expr ')'
// num = digit { digit } [ '.' digit { digit } ] | '.' digit { digit }
// name = letter { letter | digit }

// Expr is a parsed expression that can be evaluated with an environment. An
// Expr is immutable and may be evaluated concurrently with different
// environments.
type Expr[V Value[V]] struct {
	// n is the root node of the expression.
	n *node[V]
	// names is the sorted list of variable names used in the expression.
	names []string
}

// eof is the current character at the end of the input.
const eof = -1

// parser is the state of one parse. It scans the source one character at a
// time with the current character as the only lookahead.
type parser[V Value[V]] struct {
	typ Type[V]
	src string
	// pos is the byte offset of ch in src.
	pos int
	// ch is the current character, or eof.
	ch rune
	// w is the width of ch in bytes.
	w int
	// names is the set of variable names that have been seen this parse.
	names map[string]bool
}

// Parse parses an expression. Literals and function names are resolved with
// typ. Variables are not resolved until the expression is evaluated.
//
// If the expression is invalid, the error is a SyntaxError giving the offset
// of the problem in src. Offsets are zero-based and count bytes, which is the
// same as counting characters because an error always occurs at or before the
// first character outside ASCII.
func Parse[V Value[V]](typ Type[V], src string) (*Expr[V], error) {
	p := parser[V]{
		typ:   typ,
		src:   src,
		names: make(map[string]bool),
	}
	p.next()
	p.skipSpace()
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.ch != eof {
		return nil, p.unexpected()
	}
	ex := Expr[V]{
		n:     n,
		names: sortedKeys(p.names),
	}
	return &ex, nil
}

// ParseDouble parses an expression over Double values.
func ParseDouble(src string) (*Expr[Double], error) {
	return Parse[Double](DoubleType{}, src)
}

// next advances to the next character.
func (p *parser[V]) next() {
	p.pos += p.w
	if p.pos >= len(p.src) {
		p.ch, p.w = eof, 0
		return
	}
	p.ch, p.w = utf8.DecodeRuneInString(p.src[p.pos:])
}

func (p *parser[V]) skipSpace() {
	for p.ch == ' ' {
		p.next()
	}
}

// is consumes the current character if it is c.
func (p *parser[V]) is(c rune) bool {
	if p.ch != c {
		return false
	}
	p.next()
	return true
}

func (p *parser[V]) isDigit() bool {
	return '0' <= p.ch && p.ch <= '9'
}

func (p *parser[V]) isLetter() bool {
	return 'a' <= p.ch && p.ch <= 'z' || 'A' <= p.ch && p.ch <= 'Z'
}

// unexpected creates an error for the current character.
func (p *parser[V]) unexpected() error {
	if p.ch == eof {
		return &CharError{Col: p.pos, EOF: true}
	}
	return &CharError{Col: p.pos, Char: p.ch}
}

func (p *parser[V]) parseExpr() (*node[V], error) {
	return p.parseAdd()
}

// parseAdd parses a left-associative chain of additions and subtractions.
func (p *parser[V]) parseAdd() (*node[V], error) {
	p.skipSpace()
	n, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		var k nodeKind
		switch {
		case p.is('+'):
			k = nodeAdd
		case p.is('-'):
			k = nodeSub
		default:
			return n, nil
		}
		rhs, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		n = &node[V]{kind: k, left: n, right: rhs}
	}
}

// parseMul parses a left-associative chain of multiplications, divisions,
// and remainders.
func (p *parser[V]) parseMul() (*node[V], error) {
	p.skipSpace()
	n, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		var k nodeKind
		switch {
		case p.is('*'):
			k = nodeMul
		case p.is('/'):
			k = nodeDiv
		case p.is('%'):
			k = nodeRem
		default:
			return n, nil
		}
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		n = &node[V]{kind: k, left: n, right: rhs}
	}
}

// parseUnary parses any number of signs followed by a primary. Each sign
// applies to everything after it, so --2 is -(-(2)).
func (p *parser[V]) parseUnary() (*node[V], error) {
	p.skipSpace()
	var k nodeKind
	switch {
	case p.is('+'):
		k = nodePlus
	case p.is('-'):
		k = nodeNeg
	default:
		return p.parsePrimary()
	}
	n, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &node[V]{kind: k, left: n}, nil
}

// parsePrimary parses a literal, a parenthesized expression, a function call,
// or a variable.
func (p *parser[V]) parsePrimary() (*node[V], error) {
	p.skipSpace()
	switch {
	case p.isDigit() || p.ch == '.':
		// Scan greedily and let the type reject malformed literals.
		start := p.pos
		for p.isDigit() || p.ch == '.' {
			p.next()
		}
		text := p.src[start:p.pos]
		v, err := p.typ.ParseLiteral(text)
		if err != nil {
			return nil, &LiteralError{Col: start, Literal: text, Err: err}
		}
		return &node[V]{kind: nodeNum, name: text, val: v}, nil
	case p.ch == '(':
		open := p.pos
		p.next()
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if !p.is(')') {
			return nil, p.unclosed(open)
		}
		return n, nil
	case p.isLetter():
		start := p.pos
		for p.isLetter() || p.isDigit() {
			p.next()
		}
		name := p.src[start:p.pos]
		p.skipSpace()
		if p.ch != '(' {
			p.names[name] = true
			return &node[V]{kind: nodeName, name: name}, nil
		}
		fn, err := p.typ.Func(name)
		if err != nil {
			return nil, &CallError{Col: start, Func: name, Err: err}
		}
		open := p.pos
		p.next()
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.is(')') {
			return nil, p.unclosed(open)
		}
		return &node[V]{kind: nodeCall, name: name, fn: fn, left: arg}, nil
	default:
		return nil, p.unexpected()
	}
}

// unclosed creates an error for a missing close parenthesis at the current
// position, matching the open parenthesis at open.
func (p *parser[V]) unclosed(open int) error {
	err := BracketError{Col: p.pos, Open: open}
	if p.ch != eof {
		err.Char = p.ch
	}
	return &err
}

// Vars returns the variable names used when evaluating the expression, in
// sorted order.
func (e *Expr[V]) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String creates a string representation of the parsed expression with each
// term in parentheses. Parsing the result gives an equivalent expression.
func (e *Expr[V]) String() string {
	var b strings.Builder
	e.n.fmt(&b)
	return b.String()
}
