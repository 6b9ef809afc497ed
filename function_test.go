package deskcalc_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/zephyrtronium/deskcalc"
)

func TestFunctionBuild(t *testing.T) {
	table := deskcalc.NewSymbolTable()
	table.SetVar("b", 100)
	f := deskcalc.NewFunction("f", table)
	for _, p := range []string{"a", "b"} {
		if err := f.AddParam(p); err != nil {
			t.Fatal(err)
		}
	}
	var re *deskcalc.RedefinitionError
	if err := f.AddParam("a"); !errors.As(err, &re) {
		t.Errorf("duplicate parameter accepted: %v", err)
	}
	if err := f.AddParam("e"); !errors.As(err, &re) {
		t.Errorf("protected parameter accepted: %v", err)
	}
	if err := f.SetBody("a^2 + b"); err != nil {
		t.Fatal(err)
	}
	if got, want := f.Params(), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("wrong params: want %q, got %q", want, got)
	}
	if got, want := f.Body(), "a ^ 2 + b"; got != want {
		t.Errorf("wrong body: want %q, got %q", want, got)
	}
	if f.Arity() != 2 || !f.CanCall(2) || f.CanCall(1) {
		t.Errorf("wrong arity %d", f.Arity())
	}
	r, err := f.Call(deskcalc.List{3, 1})
	if err != nil || r != 10 {
		t.Errorf("wrong result: want 10, got %v, %v", r, err)
	}
	if v, _ := table.Value("b"); v != 100 {
		t.Errorf("call changed b to %v", v)
	}
	if table.IsSet("a") {
		t.Error("call left a bound")
	}
	var ce *deskcalc.CallError
	if _, err := f.Call(deskcalc.List{1}); !errors.As(err, &ce) {
		t.Errorf("wrong error for one argument: %v", err)
	}
	if table.IsSet("f") {
		t.Error("function added to the table before SetFunc")
	}
	if err := table.SetFunc(f); err != nil {
		t.Fatal(err)
	}
	p := deskcalc.NewParser(table)
	if got := run(t, p, "f(2, 2)"); got != 6 {
		t.Errorf("wrong result through parser: want 6, got %v", got)
	}
}

func TestFunctionSetBody(t *testing.T) {
	cases := []struct {
		name string
		body string
		ok   bool
	}{
		{"expr", "x + 1", true},
		{"call", "sin(x)", true},
		{"empty", "", false},
		{"trailing", "x + 1)", false},
		{"statement", "x = 1", false},
		{"two", "x; x", false},
		{"lex", "x $ 1", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := deskcalc.NewFunction("f", deskcalc.NewSymbolTable())
			f.AddParam("x")
			err := f.SetBody(c.body)
			if (err == nil) != c.ok {
				t.Errorf("SetBody(%q): want ok=%t, got %v", c.body, c.ok, err)
			}
		})
	}
}

func TestFunctionNoBody(t *testing.T) {
	f := deskcalc.NewFunction("f", deskcalc.NewSymbolTable())
	if _, err := f.Call(nil); err == nil {
		t.Error("called a function without a body")
	}
	if got, want := f.String(), "f() = "; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}
