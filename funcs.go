package deskcalc

import (
	"math"
	"math/cmplx"
)

// Func is a function of complex numbers. Built-in functions and user-defined
// functions both implement Func.
type Func interface {
	// Call evaluates the function. args has a length for which CanCall
	// returned true. Call must not modify args.
	Call(args List) (complex128, error)

	// CanCall returns whether the function can be called with n arguments.
	CanCall(n int) bool
}

// arity is implemented by functions which can report the number of arguments
// they take, or -1 for any positive number. It is used for error messages.
type arity interface {
	Arity() int
}

type monadic struct {
	f func(complex128) complex128
}

func (m monadic) Call(args List) (complex128, error) {
	return m.f(args[0]), nil
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

func (monadic) Arity() int { return 1 }

// Monadic wraps a function of one complex variable into a Func.
func Monadic(f func(complex128) complex128) Func {
	return monadic{f}
}

type realfn struct {
	name string
	f    func(float64) float64
}

func (m realfn) Call(args List) (complex128, error) {
	x := args[0]
	if imag(x) != 0 {
		return 0, &DomainError{Func: m.name, X: x, Reason: "not defined for complex numbers"}
	}
	return complex(m.f(real(x)), 0), nil
}

func (m realfn) CanCall(n int) bool {
	return n == 1
}

func (realfn) Arity() int { return 1 }

// Real wraps a function of one real variable into a Func. Calling it on a
// number with a nonzero imaginary part is a DomainError.
func Real(name string, f func(float64) float64) Func {
	return realfn{name, f}
}

type aggregate struct {
	f func(List) (complex128, error)
}

func (a aggregate) Call(args List) (complex128, error) {
	return a.f(args)
}

func (a aggregate) CanCall(n int) bool {
	return n >= 1
}

func (aggregate) Arity() int { return -1 }

// Aggregate wraps a function of a non-empty list into a Func.
func Aggregate(f func(List) (complex128, error)) Func {
	return aggregate{f}
}

// absoluteZero is 0 K in degrees Celsius.
const absoluteZero = -273.15

func ctok(c float64) float64 { return c - absoluteZero }
func ktoc(k float64) float64 { return k + absoluteZero }
func ctof(c float64) float64 { return 1.8*c + 32 }
func ftoc(f float64) float64 { return (f - 32) / 1.8 }

// builtins creates the fixed set of built-in functions.
func builtins() map[string]Func {
	return map[string]Func{
		"sin":   Monadic(cmplx.Sin),
		"cos":   Monadic(cmplx.Cos),
		"tan":   Monadic(cmplx.Tan),
		"asin":  Monadic(cmplx.Asin),
		"acos":  Monadic(cmplx.Acos),
		"atan":  Monadic(cmplx.Atan),
		"sinh":  Monadic(cmplx.Sinh),
		"cosh":  Monadic(cmplx.Cosh),
		"tanh":  Monadic(cmplx.Tanh),
		"asinh": Monadic(cmplx.Asinh),
		"acosh": Monadic(cmplx.Acosh),
		"atanh": Monadic(cmplx.Atanh),

		"abs":  Monadic(func(z complex128) complex128 { return complex(cmplx.Abs(z), 0) }),
		"norm": Monadic(func(z complex128) complex128 { return complex(real(z)*real(z)+imag(z)*imag(z), 0) }),
		"arg":  Monadic(func(z complex128) complex128 { return complex(cmplx.Phase(z), 0) }),
		"exp":  Monadic(cmplx.Exp),
		"sqrt": Monadic(cmplx.Sqrt),
		"ln":   Monadic(cmplx.Log),
		"log":  Monadic(cmplx.Log10),
		"Re":   Monadic(func(z complex128) complex128 { return complex(real(z), 0) }),
		"Im":   Monadic(func(z complex128) complex128 { return complex(imag(z), 0) }),

		"cbrt":  Real("cbrt", math.Cbrt),
		"floor": Real("floor", math.Floor),
		"ceil":  Real("ceil", math.Ceil),
		"round": Real("round", math.Round),
		"trunc": Real("trunc", math.Trunc),

		"deg":  Real("deg", func(rad float64) float64 { return rad * 180 / math.Pi }),
		"rad":  Real("rad", func(deg float64) float64 { return deg * math.Pi / 180 }),
		"CtoK": Real("CtoK", ctok),
		"KtoC": Real("KtoC", ktoc),
		"CtoF": Real("CtoF", ctof),
		"FtoC": Real("FtoC", ftoc),
		"FtoK": Real("FtoK", func(f float64) float64 { return ctok(ftoc(f)) }),
		"KtoF": Real("KtoF", func(k float64) float64 { return ctof(ktoc(k)) }),

		"sum":    Aggregate(func(l List) (complex128, error) { return l.Sum(), nil }),
		"sqrsum": Aggregate(func(l List) (complex128, error) { return l.SquareSum(), nil }),
		"avg":    Aggregate(func(l List) (complex128, error) { return l.Avg(), nil }),
		"len":    Aggregate(func(l List) (complex128, error) { return complex(float64(len(l)), 0), nil }),
		"sx":     Aggregate(List.StdDev),
		"ux":     Aggregate(List.StdUncertainty),
	}
}
