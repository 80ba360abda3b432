package arith

import "strconv"

// CharError is an error indicating a character, or the end of the input, that
// the grammar does not allow where it occurs. It implements SyntaxError.
type CharError struct {
	// Col is the offset of the character.
	Col int
	// Char is the unexpected character. It is meaningless if EOF is true.
	Char rune
	// EOF indicates that the input ended unexpectedly.
	EOF bool
}

func (err *CharError) Error() string {
	if err.EOF {
		return errpos(err.Col, "unexpected end of input")
	}
	return errpos(err.Col, "unexpected character "+strconv.QuoteRune(err.Char))
}

func (err *CharError) Pos() int {
	return err.Col
}

// BracketError is an error indicating a parenthesis that is not closed. It
// implements SyntaxError.
type BracketError struct {
	// Col is the position where the close parenthesis was expected.
	Col int
	// Open is the position of the open parenthesis.
	Open int
	// Char is the character found instead of the close parenthesis, or 0 at
	// the end of the input.
	Char rune
}

func (err *BracketError) Error() string {
	msg := "missing ) for ( at " + strconv.Itoa(err.Open)
	if err.Char != 0 {
		msg += ", found " + strconv.QuoteRune(err.Char)
	}
	return errpos(err.Col, msg)
}

func (err *BracketError) Pos() int {
	return err.Col
}

// LiteralError is an error indicating a numeric literal that the Type could
// not convert. It implements SyntaxError and unwraps to the conversion error.
type LiteralError struct {
	// Col is the position of the start of the literal.
	Col int
	// Literal is the text of the literal.
	Literal string
	// Err is the error from the Type.
	Err error
}

func (err *LiteralError) Error() string {
	return errpos(err.Col, "invalid literal "+strconv.Quote(err.Literal)+": "+err.Err.Error())
}

func (err *LiteralError) Pos() int {
	return err.Col
}

func (err *LiteralError) Unwrap() error {
	return err.Err
}

// CallError is an error indicating a call to a function that the Type could
// not resolve. It implements SyntaxError and unwraps to the error from the
// Type, usually an *UnknownFunctionError.
type CallError struct {
	// Col is the position of the start of the function name.
	Col int
	// Func is the function name.
	Func string
	// Err is the error from the Type.
	Err error
}

func (err *CallError) Error() string {
	return errpos(err.Col, "cannot call "+err.Func+": "+err.Err.Error())
}

func (err *CallError) Pos() int {
	return err.Col
}

func (err *CallError) Unwrap() error {
	return err.Err
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// SyntaxError is an error with position information. Every error resulting
// from invalid input to Parse implements SyntaxError.
type SyntaxError interface {
	error
	// Pos returns the zero-based offset in the source of the character where
	// the error was detected.
	Pos() int
}

var (
	_ SyntaxError = (*CharError)(nil)
	_ SyntaxError = (*BracketError)(nil)
	_ SyntaxError = (*LiteralError)(nil)
	_ SyntaxError = (*CallError)(nil)
)
