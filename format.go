package deskcalc

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Formatter formats complex numbers and lists for display.
type Formatter struct {
	// Prec is the number of significant digits. If Prec is zero or negative,
	// numbers use the fewest digits that represent them exactly, without an
	// exponent unless they are very large or small.
	Prec int
	// Group separates thousands with commas in numbers with large magnitudes.
	Group bool
}

// Complex formats a complex number, e.g. 3, 2i, -i, or 1.5-2i.
func (f Formatter) Complex(z complex128) string {
	re, im := real(z), imag(z)
	if im == 0 {
		return f.real(re)
	}
	var b strings.Builder
	if re != 0 {
		b.WriteString(f.real(re))
		if im > 0 || math.IsNaN(im) {
			b.WriteByte('+')
		}
	}
	switch im {
	case 1:
	case -1:
		b.WriteByte('-')
	default:
		b.WriteString(f.real(im))
	}
	b.WriteByte('i')
	return b.String()
}

// List formats a list as a bracketed, comma-separated sequence.
func (f Formatter) List(l List) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, z := range l {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Complex(z))
	}
	b.WriteByte(']')
	return b.String()
}

func (f Formatter) real(x float64) string {
	a := math.Abs(x)
	var s string
	switch {
	case f.Prec > 0:
		s = strconv.FormatFloat(x, 'g', f.Prec, 64)
	case a == 0, 1e-4 <= a && a < 1e21:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	default:
		s = strconv.FormatFloat(x, 'g', -1, 64)
	}
	// Grouping only helps numbers that print without an exponent.
	if !f.Group || a < 1000 || a >= 1e15 || math.IsNaN(x) || strings.ContainsAny(s, "eE") {
		return s
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return humanize.Commaf(v)
}
