package deskcalc

import (
	"github.com/ahrtr/gocontainer/set"
)

// SymbolTable holds the variables, constants, lists, built-in functions, and
// user-defined functions of a calculator session. Each name is bound in at
// most one namespace, except for predefined names, which are fixed when the
// table is created. A SymbolTable is not safe for concurrent use.
type SymbolTable struct {
	vars     map[string]variable
	lists    map[string]List
	builtins map[string]Func
	funcs    map[string]*Function
	// protected is the set of predefined constant names, which cannot be
	// deleted.
	protected set.Interface
	physical  bool
	// depth is the number of user function calls currently being evaluated.
	depth int
}

type variable struct {
	value    complex128
	constant bool
}

// TableOption is an option used when creating a symbol table.
type TableOption interface {
	tableOption()
}

type physopt struct{}

func (physopt) tableOption() {}

// WithPhysicalConstants adds the constants qe (elementary charge), c0 (speed
// of light), and me (electron mass) to the predefined constants.
func WithPhysicalConstants() TableOption {
	return physopt{}
}

// NewSymbolTable creates a symbol table containing the built-in functions and
// predefined constants.
func NewSymbolTable(opts ...TableOption) *SymbolTable {
	t := SymbolTable{
		builtins: builtins(),
	}
	for _, opt := range opts {
		switch opt.(type) {
		case nil: // do nothing
		case physopt:
			t.physical = true
		default:
			panic("deskcalc: unknown option type")
		}
	}
	t.Reset()
	return &t
}

// Reset removes all variables, lists, and user-defined functions and restores
// the predefined constants.
func (t *SymbolTable) Reset() {
	t.vars = make(map[string]variable)
	t.lists = make(map[string]List)
	t.funcs = make(map[string]*Function)
	t.protected = set.New()
	for k, v := range mathConstants() {
		t.vars[k] = variable{value: v, constant: true}
		t.protected.Add(k)
	}
	if t.physical {
		for k, v := range physicalConstants {
			t.vars[k] = variable{value: v, constant: true}
			t.protected.Add(k)
		}
	}
}

// binding describes the namespace holding name for error messages. The
// result is empty if name is unbound.
func (t *SymbolTable) binding(name string) string {
	if v, ok := t.vars[name]; ok {
		if v.constant {
			return "is a constant"
		}
		return "is a variable"
	}
	if _, ok := t.lists[name]; ok {
		return "is a list"
	}
	if _, ok := t.builtins[name]; ok {
		return "is a built-in function"
	}
	if _, ok := t.funcs[name]; ok {
		return "is a function"
	}
	return ""
}

// SetVar binds name to a mutable variable with value v. It is an error if name
// is a constant or bound as a list or function.
func (t *SymbolTable) SetVar(name string, v complex128) error {
	if err := t.checkVar(name); err != nil {
		return err
	}
	t.vars[name] = variable{value: v}
	return nil
}

// checkVar returns the error SetVar would return for name.
func (t *SymbolTable) checkVar(name string) error {
	if b := t.binding(name); b != "" && b != "is a variable" {
		return &RedefinitionError{Name: name, Reason: b}
	}
	return nil
}

// SetConst binds name permanently to a constant with value v. It is an error
// if name is already a constant or bound as a list or function.
func (t *SymbolTable) SetConst(name string, v complex128) error {
	if b := t.binding(name); b != "" && b != "is a variable" {
		if b == "is a constant" {
			b = "is already a constant"
		}
		return &RedefinitionError{Name: name, Reason: b}
	}
	t.vars[name] = variable{value: v, constant: true}
	return nil
}

// Value returns the value of a variable or constant.
func (t *SymbolTable) Value(name string) (complex128, error) {
	v, ok := t.vars[name]
	if !ok {
		if _, ok := t.lists[name]; ok {
			return 0, &ListError{Name: name}
		}
		return 0, &NameError{Name: name, Kind: "variable"}
	}
	return v.value, nil
}

// HasVar returns whether name is a variable or constant.
func (t *SymbolTable) HasVar(name string) bool {
	_, ok := t.vars[name]
	return ok
}

// IsConst returns whether name is a constant.
func (t *SymbolTable) IsConst(name string) bool {
	return t.vars[name].constant
}

// IsProtected returns whether name is a predefined constant.
func (t *SymbolTable) IsProtected(name string) bool {
	return t.protected.Contains(name)
}

// HasList returns whether name is a list.
func (t *SymbolTable) HasList(name string) bool {
	_, ok := t.lists[name]
	return ok
}

// HasFunc returns whether name is a built-in or user-defined function.
func (t *SymbolTable) HasFunc(name string) bool {
	return t.HasBuiltin(name) || t.HasUserFunc(name)
}

// HasBuiltin returns whether name is a built-in function.
func (t *SymbolTable) HasBuiltin(name string) bool {
	_, ok := t.builtins[name]
	return ok
}

// HasUserFunc returns whether name is a user-defined function.
func (t *SymbolTable) HasUserFunc(name string) bool {
	_, ok := t.funcs[name]
	return ok
}

// IsSet returns whether name is bound in any namespace.
func (t *SymbolTable) IsSet(name string) bool {
	return t.binding(name) != ""
}

// RemoveVar removes a variable or constant.
func (t *SymbolTable) RemoveVar(name string) error {
	if !t.HasVar(name) {
		return &NameError{Name: name, Kind: "variable"}
	}
	delete(t.vars, name)
	return nil
}

// RemoveList removes a list.
func (t *SymbolTable) RemoveList(name string) error {
	if !t.HasList(name) {
		return &NameError{Name: name, Kind: "list"}
	}
	delete(t.lists, name)
	return nil
}

// RemoveFunc removes a user-defined function.
func (t *SymbolTable) RemoveFunc(name string) error {
	if !t.HasUserFunc(name) {
		if t.HasBuiltin(name) {
			return &RedefinitionError{Name: name, Reason: "is a built-in function"}
		}
		return &NameError{Name: name, Kind: "function"}
	}
	delete(t.funcs, name)
	return nil
}

// Remove removes name from whichever namespace holds it. Built-in functions
// and predefined constants cannot be removed.
func (t *SymbolTable) Remove(name string) error {
	if err := t.checkRemove(name); err != nil {
		return err
	}
	delete(t.vars, name)
	delete(t.lists, name)
	delete(t.funcs, name)
	return nil
}

// RemoveAll removes each name as Remove does. If any name cannot be removed,
// none are.
func (t *SymbolTable) RemoveAll(names ...string) error {
	for _, name := range names {
		if err := t.checkRemove(name); err != nil {
			return err
		}
	}
	for _, name := range names {
		delete(t.vars, name)
		delete(t.lists, name)
		delete(t.funcs, name)
	}
	return nil
}

// checkRemove returns the error Remove would return for name.
func (t *SymbolTable) checkRemove(name string) error {
	switch {
	case t.IsProtected(name):
		return &RedefinitionError{Name: name, Reason: "is a protected constant"}
	case t.HasBuiltin(name):
		return &RedefinitionError{Name: name, Reason: "is a built-in function"}
	case !t.IsSet(name):
		return &NameError{Name: name}
	}
	return nil
}

// SetList binds name to a copy of l. It is an error if name is bound as a
// variable or function.
func (t *SymbolTable) SetList(name string, l List) error {
	if err := t.checkList(name); err != nil {
		return err
	}
	t.lists[name] = l.Clone()
	return nil
}

// checkList returns the error SetList would return for name.
func (t *SymbolTable) checkList(name string) error {
	if b := t.binding(name); b != "" && b != "is a list" {
		return &RedefinitionError{Name: name, Reason: b}
	}
	return nil
}

// List returns a copy of a list.
func (t *SymbolTable) List(name string) (List, bool) {
	l, ok := t.lists[name]
	if !ok {
		return nil, false
	}
	return l.Clone(), true
}

// SetFunc binds a user-defined function under its name, replacing any
// existing user-defined function. It is an error if the name is a built-in
// function or bound as a variable or list.
func (t *SymbolTable) SetFunc(f *Function) error {
	if err := t.checkFunc(f.name); err != nil {
		return err
	}
	t.funcs[f.name] = f
	return nil
}

// checkFunc returns the error SetFunc would return for name.
func (t *SymbolTable) checkFunc(name string) error {
	if b := t.binding(name); b != "" && b != "is a function" {
		return &RedefinitionError{Name: name, Reason: b}
	}
	return nil
}

// Func returns a user-defined function.
func (t *SymbolTable) Func(name string) (*Function, bool) {
	f, ok := t.funcs[name]
	return f, ok
}

// Call calls the built-in or user-defined function name with args.
func (t *SymbolTable) Call(name string, args List) (complex128, error) {
	var f Func
	if b, ok := t.builtins[name]; ok {
		f = b
	} else if u, ok := t.funcs[name]; ok {
		f = u
	} else {
		return 0, &NameError{Name: name, Kind: "function"}
	}
	if !f.CanCall(len(args)) {
		want := -1
		if a, ok := f.(arity); ok {
			want = a.Arity()
		}
		return 0, &CallError{Func: name, Want: want, Len: len(args)}
	}
	return f.Call(args)
}

// Vars returns the sorted names of all variables and constants.
func (t *SymbolTable) Vars() []string {
	r := make([]string, 0, len(t.vars))
	for k := range t.vars {
		r = append(r, k)
	}
	sortstrs(r)
	return r
}

// Lists returns the sorted names of all lists.
func (t *SymbolTable) Lists() []string {
	r := make([]string, 0, len(t.lists))
	for k := range t.lists {
		r = append(r, k)
	}
	sortstrs(r)
	return r
}

// Funcs returns the sorted names of all user-defined functions.
func (t *SymbolTable) Funcs() []string {
	r := make([]string, 0, len(t.funcs))
	for k := range t.funcs {
		r = append(r, k)
	}
	sortstrs(r)
	return r
}

// Builtins returns the sorted names of all built-in functions.
func (t *SymbolTable) Builtins() []string {
	r := make([]string, 0, len(t.builtins))
	for k := range t.builtins {
		r = append(r, k)
	}
	sortstrs(r)
	return r
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}
