package deskcalc_test

import (
	"math"
	"testing"

	"github.com/zephyrtronium/deskcalc"
)

func TestFormatComplex(t *testing.T) {
	cases := []struct {
		name string
		f    deskcalc.Formatter
		z    complex128
		want string
	}{
		{"int", deskcalc.Formatter{}, 3, "3"},
		{"zero", deskcalc.Formatter{}, 0, "0"},
		{"neg", deskcalc.Formatter{}, -2.5, "-2.5"},
		{"imag", deskcalc.Formatter{}, 2i, "2i"},
		{"unit", deskcalc.Formatter{}, 1i, "i"},
		{"neg-unit", deskcalc.Formatter{}, -1i, "-i"},
		{"sum-unit", deskcalc.Formatter{}, 1 + 1i, "1+i"},
		{"diff-unit", deskcalc.Formatter{}, 1 - 1i, "1-i"},
		{"complex", deskcalc.Formatter{}, 1.5 - 2i, "1.5-2i"},
		{"complex-neg", deskcalc.Formatter{}, -3 + 0.5i, "-3+0.5i"},
		{"million", deskcalc.Formatter{}, 1e6, "1000000"},
		{"small", deskcalc.Formatter{}, 1e-5, "1e-05"},
		{"huge", deskcalc.Formatter{}, 1e30, "1e+30"},
		{"inf", deskcalc.Formatter{}, complex(math.Inf(1), 0), "+Inf"},
		{"prec", deskcalc.Formatter{Prec: 3}, math.Pi, "3.14"},
		{"prec-rounding", deskcalc.Formatter{Prec: 12}, 0.1 + 0.2, "0.3"},
		{"prec-large", deskcalc.Formatter{Prec: 12}, 1e6, "1000000"},
		{"group", deskcalc.Formatter{Group: true}, 1234567.5, "1,234,567.5"},
		{"group-neg", deskcalc.Formatter{Group: true}, -1234.5, "-1,234.5"},
		{"group-small", deskcalc.Formatter{Group: true}, 999, "999"},
		{"group-exp", deskcalc.Formatter{Group: true}, 1e30, "1e+30"},
		{"group-imag", deskcalc.Formatter{Group: true}, 1000 + 2000i, "1,000+2,000i"},
		{"group-prec", deskcalc.Formatter{Prec: 12, Group: true}, 1234567, "1,234,567"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.f.Complex(c.z); got != c.want {
				t.Errorf("wrong format of %v: want %q, got %q", c.z, c.want, got)
			}
		})
	}
}

func TestFormatList(t *testing.T) {
	var f deskcalc.Formatter
	if got, want := f.List(deskcalc.List{1, 2i, 3}), "[1, 2i, 3]"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
	if got, want := f.List(nil), "[]"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}
