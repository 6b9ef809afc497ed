package deskcalc

import (
	"errors"
	"strconv"
)

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number",
	// "operator", or the empty string (if a token kind hadn't been decided).
	Kind string
	// Col is the total number of runes scanned by the lexer up to and
	// including this error.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "bad token "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "bad "+err.Kind+" token "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

// SyntaxError is an error indicating a token in a position where the grammar
// does not allow it. It implements InputError.
type SyntaxError struct {
	// Col is the position of the unexpected token.
	Col int
	// Got is the unexpected token.
	Got string
	// Want describes what the parser expected instead, if anything in
	// particular.
	Want string
}

func (err *SyntaxError) Error() string {
	if err.Want == "" {
		return errpos(err.Col, "unexpected token "+strconv.Quote(err.Got))
	}
	return errpos(err.Col, "expected "+err.Want+", got "+strconv.Quote(err.Got))
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// BracketError is an error indicating unbalanced parentheses in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the token where the imbalance was detected.
	Col int
	// Close is true if there was a closing parenthesis with no opening one and
	// false if an opening parenthesis was never closed.
	Close bool
}

func (err *BracketError) Error() string {
	if err.Close {
		return errpos(err.Col, "unexpected )")
	}
	return errpos(err.Col, "expected )")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// NameError is an error from a lookup for a name that is not defined.
type NameError struct {
	// Name is the name that was missing.
	Name string
	// Kind is what the name was expected to be: "variable", "function", or
	// "list". It may be empty if any kind of symbol would do.
	Kind string
}

func (err *NameError) Error() string {
	if err.Kind == "" {
		return strconv.Quote(err.Name) + " is undefined"
	}
	return "undefined " + err.Kind + ": " + strconv.Quote(err.Name)
}

// ListError is an error from using a list where a number is required.
type ListError struct {
	Name string
}

func (err *ListError) Error() string {
	return strconv.Quote(err.Name) + " is a list, not a number"
}

// RedefinitionError is an error from an attempt to bind or remove a name in a
// way its current binding forbids, e.g. assigning to a constant or deleting a
// built-in function.
type RedefinitionError struct {
	// Name is the name that could not be bound.
	Name string
	// Reason describes the existing binding.
	Reason string
}

func (err *RedefinitionError) Error() string {
	return strconv.Quote(err.Name) + " " + err.Reason
}

// CallError is an error indicating a function call with the wrong number of
// arguments.
type CallError struct {
	// Func is the function name that was called.
	Func string
	// Want is the number of arguments the function takes, or -1 if the
	// function takes at least one argument.
	Want int
	// Len is the number of arguments the function call supplied.
	Len int
}

func (err *CallError) Error() string {
	want := strconv.Itoa(err.Want)
	if err.Want < 0 {
		want = "at least 1"
	}
	s := "s"
	if err.Want == 1 || err.Want < 0 {
		s = ""
	}
	return err.Func + " expects " + want + " argument" + s + " (received " + strconv.Itoa(err.Len) + ")"
}

// ErrDivideByZero is the error underlying any division, floor division, or
// modulo by zero.
var ErrDivideByZero = errors.New("divide by zero")

// ErrDepth is returned when user function calls nest deeper than
// MaxCallDepth.
var ErrDepth = errors.New("function calls nested too deeply")

// DomainError is an error returned when an operator or function is applied to
// arguments outside its domain.
type DomainError struct {
	// Func is the name of the function or operator.
	Func string
	// X is the out-of-domain argument.
	X complex128
	// Reason describes the problem. If empty, Err's message is used.
	Reason string
	// Err is an underlying error, e.g. ErrDivideByZero.
	Err error
}

func (err *DomainError) Error() string {
	r := err.Reason
	if r == "" && err.Err != nil {
		r = err.Err.Error()
	}
	if err.Func == "" {
		return r
	}
	return err.Func + ": " + r
}

func (err *DomainError) Unwrap() error {
	return err.Err
}

// ShadowError is an error from a Guard asked to shadow the same name twice.
type ShadowError struct {
	Name string
}

func (err *ShadowError) Error() string {
	return "cannot shadow " + strconv.Quote(err.Name) + " twice"
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// malformed input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*BracketError)(nil)
)
