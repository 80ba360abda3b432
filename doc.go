// Package arith parses and evaluates arithmetic expressions over a choice of
// number representations.
//
// The grammar is small: numbers, variables, parentheses, the binary operators
// + - * / % with the usual precedence and left associativity, unary + and -,
// and calls of one-argument functions like sqrt(x). Signs stack, so "--2" is
// 2. Spaces may appear between any two tokens.
//
// The same parser works for any type implementing Value. Double evaluates
// with float64 and knows sqrt, sin, and cos. BigFloat evaluates with
// math/big at any precision and knows sqrt, exp, ln, and log. Function names
// are resolved once when parsing; variables are looked up in an Env each time
// the expression is evaluated, so an expression can be parsed once and
// evaluated for many inputs.
package arith
