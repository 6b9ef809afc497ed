package deskcalc_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/deskcalc"
)

func TestGuardNew(t *testing.T) {
	table := deskcalc.NewSymbolTable()
	g := deskcalc.NewGuard(table)
	if err := g.Shadow("x", 2); err != nil {
		t.Fatal(err)
	}
	if v, err := table.Value("x"); err != nil || v != 2 {
		t.Errorf("wrong shadowed value: %v, %v", v, err)
	}
	g.Release()
	if table.IsSet("x") {
		t.Error("x still set after release")
	}
}

func TestGuardRestore(t *testing.T) {
	table := deskcalc.NewSymbolTable()
	table.SetVar("x", 1)
	table.SetConst("k", 7)
	g := deskcalc.NewGuard(table)
	if err := g.Shadow("x", 2); err != nil {
		t.Fatal(err)
	}
	if err := g.Shadow("k", 3); err != nil {
		t.Fatal(err)
	}
	if err := g.Shadow("pi", 4); err != nil {
		t.Fatal(err)
	}
	if table.IsConst("k") {
		t.Error("shadowed constant is still constant")
	}
	if err := table.SetVar("k", 5); err != nil {
		t.Errorf("shadowed constant is not assignable: %v", err)
	}
	g.Release()
	cases := []struct {
		name  string
		want  complex128
		konst bool
	}{
		{"x", 1, false},
		{"k", 7, true},
	}
	for _, c := range cases {
		v, err := table.Value(c.name)
		if err != nil || v != c.want {
			t.Errorf("%s not restored: %v, %v", c.name, v, err)
		}
		if table.IsConst(c.name) != c.konst {
			t.Errorf("%s constancy not restored", c.name)
		}
	}
	if v, _ := table.Value("pi"); !near(v, 3.141592653589793) || !table.IsProtected("pi") {
		t.Errorf("pi not restored: %v", v)
	}
	// Releasing again changes nothing.
	g.Release()
	if v, _ := table.Value("x"); v != 1 {
		t.Errorf("second release changed x to %v", v)
	}
}

func TestGuardErrors(t *testing.T) {
	table := deskcalc.NewSymbolTable()
	table.SetList("xs", deskcalc.List{1})
	g := deskcalc.NewGuard(table)
	defer g.Release()
	if err := g.Shadow("x", 1); err != nil {
		t.Fatal(err)
	}
	var se *deskcalc.ShadowError
	if err := g.Shadow("x", 2); !errors.As(err, &se) {
		t.Errorf("shadowed x twice: %v", err)
	}
	var re *deskcalc.RedefinitionError
	if err := g.Shadow("xs", 2); !errors.As(err, &re) {
		t.Errorf("shadowed a list: %v", err)
	}
	if err := g.Shadow("sqrt", 2); !errors.As(err, &re) {
		t.Errorf("shadowed a built-in: %v", err)
	}
	if v, _ := table.Value("x"); v != 1 {
		t.Errorf("failed shadow changed x to %v", v)
	}
}

func TestGuardNested(t *testing.T) {
	table := deskcalc.NewSymbolTable()
	table.SetVar("x", 1)
	outer := deskcalc.NewGuard(table)
	outer.Shadow("x", 2)
	inner := deskcalc.NewGuard(table)
	inner.Shadow("x", 3)
	if v, _ := table.Value("x"); v != 3 {
		t.Errorf("wrong innermost value: %v", v)
	}
	inner.Release()
	if v, _ := table.Value("x"); v != 2 {
		t.Errorf("wrong value after inner release: %v", v)
	}
	outer.Release()
	if v, _ := table.Value("x"); v != 1 {
		t.Errorf("wrong value after outer release: %v", v)
	}
}
