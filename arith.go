package deskcalc

import (
	"math"
	"math/cmplx"
)

func isZero(z complex128) bool {
	return real(z) == 0 && imag(z) == 0
}

// isInt reports whether x is an integer. Infinities are not integers.
func isInt(x float64) bool {
	return x == math.Trunc(x) && !math.IsInf(x, 0)
}

func divide(l, r complex128) (complex128, error) {
	if isZero(r) {
		return 0, &DomainError{Func: "/", X: l, Err: ErrDivideByZero}
	}
	return l / r, nil
}

// floorDivide divides and floors the real and imaginary parts of the quotient
// independently.
func floorDivide(l, r complex128) (complex128, error) {
	if isZero(r) {
		return 0, &DomainError{Func: "//", X: l, Err: ErrDivideByZero}
	}
	q := l / r
	return complex(math.Floor(real(q)), math.Floor(imag(q))), nil
}

// modulo computes the remainder of integer division, truncated toward zero.
func modulo(l, r complex128) (complex128, error) {
	if imag(l) != 0 || imag(r) != 0 {
		x := l
		if imag(l) == 0 {
			x = r
		}
		return 0, &DomainError{Func: "mod", X: x, Reason: "modulo not defined for complex numbers"}
	}
	a, b := real(l), real(r)
	if !isInt(a) || !isInt(b) {
		x := l
		if isInt(a) {
			x = r
		}
		return 0, &DomainError{Func: "mod", X: x, Reason: "modulo not defined for floating point numbers"}
	}
	if b == 0 {
		return 0, &DomainError{Func: "mod", X: l, Err: ErrDivideByZero}
	}
	return complex(math.Mod(a, b), 0), nil
}

// factorial computes n! for a non-negative integer n.
func factorial(z complex128) (complex128, error) {
	n := real(z)
	if imag(z) != 0 || n < 0 || !isInt(n) {
		return 0, &DomainError{Func: "!", X: z, Reason: "factorial only defined for natural numbers and zero"}
	}
	if n > 170 {
		// Anything larger overflows float64.
		return complex(math.Inf(1), 0), nil
	}
	r := 1.0
	for i := 2.0; i <= n; i++ {
		r *= i
	}
	return complex(r, 0), nil
}

// parallel computes the combined value of two impedances in parallel,
// r1*r2/(r1+r2). Both must have positive real parts or both must be complex.
func parallel(r1, r2 complex128) (complex128, error) {
	ok := real(r1) > 0 && real(r2) > 0 || imag(r1) != 0 && imag(r2) != 0
	if !ok {
		x := r1
		if real(r1) > 0 || imag(r1) != 0 {
			x = r2
		}
		return 0, &DomainError{Func: "||", X: x, Reason: "resistors must be greater than 0"}
	}
	s := r1 + r2
	if isZero(s) {
		return 0, &DomainError{Func: "||", X: r1, Err: ErrDivideByZero}
	}
	return r1 * r2 / s, nil
}

// power raises l to r. Real operands with a real result use math.Pow so that
// e.g. (-2)^2 is exactly 4; everything else is the principal value from
// cmplx.Pow.
func power(l, r complex128) complex128 {
	if imag(l) == 0 && imag(r) == 0 {
		a, b := real(l), real(r)
		if a >= 0 || isInt(b) {
			return complex(math.Pow(a, b), 0)
		}
	}
	return cmplx.Pow(l, r)
}
