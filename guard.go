package deskcalc

import (
	"github.com/ahrtr/gocontainer/set"
	"github.com/edwingeng/deque"
)

// Guard temporarily binds variables in a symbol table. Release removes every
// temporary binding and restores whatever the names were bound to before, so
// callers should defer it immediately after creating the guard:
//
//	g := NewGuard(table)
//	defer g.Release()
//	if err := g.Shadow("x", 2); err != nil {
//		return err
//	}
//
// A Guard cannot shadow the same name twice.
type Guard struct {
	table *SymbolTable
	names set.Interface
	// saved is a stack of shadowed bindings, most recent at the back.
	saved deque.Deque
}

// shadowed is a name bound by a Guard along with its previous binding.
type shadowed struct {
	name  string
	prior variable
	had   bool
}

// NewGuard creates a guard over a symbol table.
func NewGuard(table *SymbolTable) *Guard {
	return &Guard{
		table: table,
		names: set.New(),
		saved: deque.NewDeque(),
	}
}

// Shadow binds name to the mutable variable v until the guard is released.
// Existing variables and constants with the same name are hidden, not
// modified. It is an error to shadow a list or function.
func (g *Guard) Shadow(name string, v complex128) error {
	if g.names.Contains(name) {
		return &ShadowError{Name: name}
	}
	s := shadowed{name: name}
	s.prior, s.had = g.table.vars[name]
	if !s.had {
		if b := g.table.binding(name); b != "" {
			return &RedefinitionError{Name: name, Reason: b}
		}
	}
	g.table.vars[name] = variable{value: v}
	g.names.Add(name)
	g.saved.PushBack(s)
	return nil
}

// rebind changes the value of a name the guard has shadowed.
func (g *Guard) rebind(name string, v complex128) {
	if !g.names.Contains(name) {
		panic("deskcalc: rebind of unshadowed name " + name)
	}
	g.table.vars[name] = variable{value: v}
}

// Release removes all bindings made by the guard in reverse order and
// restores the previous bindings, including their constancy. Releasing a
// guard more than once has no further effect.
func (g *Guard) Release() {
	for !g.saved.Empty() {
		s := g.saved.PopBack().(shadowed)
		delete(g.table.vars, s.name)
		if s.had {
			g.table.vars[s.name] = s.prior
		}
	}
	g.names = set.New()
}
