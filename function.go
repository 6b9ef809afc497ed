package deskcalc

import (
	"errors"
	"strings"

	"fortio.org/log"
)

// MaxCallDepth is the deepest that calls to user-defined functions may nest.
const MaxCallDepth = 512

// Function is a user-defined function. Its body is evaluated against the live
// symbol table, so free names in the body resolve to whatever they are bound
// to at the time of each call. Parameters are bound only for the duration of
// the call.
type Function struct {
	name   string
	params []string
	body   *node
	table  *SymbolTable
}

// NewFunction creates a function with no parameters and no body. The function
// is not added to the table until SetFunc.
func NewFunction(name string, table *SymbolTable) *Function {
	return &Function{name: name, table: table}
}

// Name returns the function's name.
func (f *Function) Name() string {
	return f.name
}

// Params returns a copy of the function's parameter names.
func (f *Function) Params() []string {
	return append([]string(nil), f.params...)
}

// AddParam appends a parameter. Parameter names must be unique and cannot be
// predefined constants.
func (f *Function) AddParam(name string) error {
	for _, p := range f.params {
		if p == name {
			return &RedefinitionError{Name: name, Reason: "is already a parameter of " + f.name}
		}
	}
	if f.table.IsProtected(name) {
		return &RedefinitionError{Name: name, Reason: "is a protected constant"}
	}
	f.params = append(f.params, name)
	return nil
}

// SetBody parses text as the body of the function. The text must be a single
// expression.
func (f *Function) SetBody(text string) error {
	p := NewParser(f.table)
	p.lex = lexString(text)
	if err := p.advance(); err != nil {
		return err
	}
	n, err := p.expr()
	if err != nil {
		return err
	}
	if err := p.end(); err != nil {
		return err
	}
	if p.tok.kind != tokenEnd {
		return &SyntaxError{Col: p.tok.pos, Got: p.tok.String(), Want: "end of input"}
	}
	f.body = n
	return nil
}

// Body returns the function's body formatted as an expression.
func (f *Function) Body() string {
	if f.body == nil {
		return ""
	}
	return f.body.String()
}

// String formats the function as a definition, e.g. "f(a, b) = a + b".
func (f *Function) String() string {
	var b strings.Builder
	b.WriteString(f.name)
	b.WriteByte('(')
	b.WriteString(strings.Join(f.params, ", "))
	b.WriteString(") = ")
	b.WriteString(f.Body())
	return b.String()
}

// CanCall returns whether n is the number of parameters.
func (f *Function) CanCall(n int) bool {
	return n == len(f.params)
}

// Arity returns the number of parameters.
func (f *Function) Arity() int {
	return len(f.params)
}

// Call evaluates the function body with each parameter bound to the
// corresponding argument. Whatever the parameter names were bound to before
// the call is restored afterward, even if evaluation fails.
func (f *Function) Call(args List) (complex128, error) {
	if len(args) != len(f.params) {
		return 0, &CallError{Func: f.name, Want: len(f.params), Len: len(args)}
	}
	if f.body == nil {
		return 0, &NameError{Name: f.name, Kind: "function"}
	}
	t := f.table
	if t.depth >= MaxCallDepth {
		return 0, ErrDepth
	}
	t.depth++
	defer func() { t.depth-- }()
	g := NewGuard(t)
	defer g.Release()
	for i, name := range f.params {
		if err := g.Shadow(name, args[i]); err != nil {
			return 0, err
		}
	}
	return f.body.eval(t)
}

// validate calls the function once with every argument set to 1. Domain
// errors are fine, since they depend on the argument values; anything else
// means the body can never be evaluated as written.
func (f *Function) validate() error {
	args := make(List, len(f.params))
	for i := range args {
		args[i] = 1
	}
	_, err := f.Call(args)
	var de *DomainError
	if err != nil && !errors.As(err, &de) {
		log.LogVf("rejecting %v: %v", f, err)
		return err
	}
	return nil
}

var _ Func = (*Function)(nil)
