package deskcalc_test

import (
	"errors"
	"math"
	"testing"

	"github.com/zephyrtronium/deskcalc"
)

func TestFuncAdapters(t *testing.T) {
	double := deskcalc.Monadic(func(z complex128) complex128 { return 2 * z })
	half := deskcalc.Real("half", func(x float64) float64 { return x / 2 })
	count := deskcalc.Aggregate(func(l deskcalc.List) (complex128, error) {
		return complex(float64(len(l)), 0), nil
	})
	cases := []struct {
		name string
		f    deskcalc.Func
		ok   []int
		bad  []int
	}{
		{"monadic", double, []int{1}, []int{0, 2}},
		{"real", half, []int{1}, []int{0, 2}},
		{"aggregate", count, []int{1, 2, 100}, []int{0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for _, n := range c.ok {
				if !c.f.CanCall(n) {
					t.Errorf("cannot call with %d args", n)
				}
			}
			for _, n := range c.bad {
				if c.f.CanCall(n) {
					t.Errorf("can call with %d args", n)
				}
			}
		})
	}
	if r, err := double.Call(deskcalc.List{1i}); err != nil || r != 2i {
		t.Errorf("wrong monadic result: %v, %v", r, err)
	}
	if r, err := half.Call(deskcalc.List{3}); err != nil || r != 1.5 {
		t.Errorf("wrong real result: %v, %v", r, err)
	}
	var de *deskcalc.DomainError
	if _, err := half.Call(deskcalc.List{1i}); !errors.As(err, &de) || de.Func != "half" {
		t.Errorf("wrong error for complex argument: %#v", err)
	}
	if r, err := count.Call(deskcalc.List{1, 2, 3}); err != nil || r != 3 {
		t.Errorf("wrong aggregate result: %v, %v", r, err)
	}
}

func TestListStats(t *testing.T) {
	l := deskcalc.List{2, 4, 4, 4, 5, 5, 7, 9}
	if got := l.Sum(); got != 40 {
		t.Errorf("wrong sum: %v", got)
	}
	if got := l.SquareSum(); got != 232 {
		t.Errorf("wrong square sum: %v", got)
	}
	if got := l.Avg(); got != 5 {
		t.Errorf("wrong mean: %v", got)
	}
	sx, err := l.StdDev()
	if err != nil || !near(sx, complex(math.Sqrt(32.0/7), 0)) {
		t.Errorf("wrong standard deviation: %v, %v", sx, err)
	}
	ux, err := l.StdUncertainty()
	if err != nil || !near(ux, sx/complex(math.Sqrt(8), 0)) {
		t.Errorf("wrong standard uncertainty: %v, %v", ux, err)
	}
	if r := (deskcalc.List{}).Avg(); !math.IsNaN(real(r)) {
		t.Errorf("mean of empty list is %v", r)
	}
	if _, err := (deskcalc.List{1}).StdDev(); err == nil {
		t.Error("standard deviation of one value")
	}
	c := l.Clone()
	c[0] = 100
	if l[0] != 2 {
		t.Error("clone aliases the original")
	}
}
