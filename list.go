package deskcalc

import (
	"math"
	"math/cmplx"
)

// List is an ordered sequence of complex numbers.
type List []complex128

// Sum returns the sum of the elements of l.
func (l List) Sum() complex128 {
	var s complex128
	for _, v := range l {
		s += v
	}
	return s
}

// SquareSum returns the sum of the squares of the elements of l.
func (l List) SquareSum() complex128 {
	var s complex128
	for _, v := range l {
		s += v * v
	}
	return s
}

// Avg returns the arithmetic mean of l. The mean of an empty list is NaN.
func (l List) Avg() complex128 {
	if len(l) == 0 {
		return cmplx.NaN()
	}
	return l.Sum() / complex(float64(len(l)), 0)
}

// StdDev returns the sample standard deviation of l, which needs at least two
// elements.
func (l List) StdDev() (complex128, error) {
	if len(l) < 2 {
		return 0, &DomainError{Func: "sx", X: complex(float64(len(l)), 0), Reason: "needs at least two values"}
	}
	a := l.Avg()
	var s complex128
	for _, v := range l {
		d := v - a
		s += d * d
	}
	return cmplx.Sqrt(s / complex(float64(len(l)-1), 0)), nil
}

// StdUncertainty returns the standard uncertainty of the mean of l, i.e. the
// standard deviation divided by the square root of the length.
func (l List) StdUncertainty() (complex128, error) {
	s, err := l.StdDev()
	if err != nil {
		err.(*DomainError).Func = "ux"
		return 0, err
	}
	return s / complex(math.Sqrt(float64(len(l))), 0), nil
}

// Clone returns a copy of l.
func (l List) Clone() List {
	return append(List(nil), l...)
}
