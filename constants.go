package deskcalc

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// constprec is the precision in bits used to compute predefined constants
// before rounding them to float64.
const constprec = 128

// mathConstants computes the predefined constants i, pi, e, and deg.
func mathConstants() map[string]complex128 {
	pi := bigfloat.Pi(new(big.Float).SetPrec(constprec))
	one := new(big.Float).SetPrec(constprec).SetInt64(1)
	e := bigfloat.Exp(new(big.Float).SetPrec(constprec), one)
	deg := new(big.Float).SetPrec(constprec).Quo(pi, big.NewFloat(180))
	return map[string]complex128{
		"i":   complex(0, 1),
		"pi":  complex(f64(pi), 0),
		"e":   complex(f64(e), 0),
		"deg": complex(f64(deg), 0),
	}
}

// physicalConstants are the extended constants enabled with
// WithPhysicalConstants, in SI units.
var physicalConstants = map[string]complex128{
	// elementary charge, C
	"qe": 1.602176634e-19,
	// speed of light in vacuum, m/s
	"c0": 299792458,
	// electron mass, kg
	"me": 9.1093837015e-31,
}

func f64(x *big.Float) float64 {
	r, _ := x.Float64()
	return r
}
