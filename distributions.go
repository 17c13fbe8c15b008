package sbm

// Piecewise-linear distribution primitives. Each parameter is a function of
// logLc = log10(characteristic length) and, where the table says so, the
// effective satellite class (RocketBody or Spacecraft — SOC and Debris are
// reduced to Spacecraft before reaching here). Coefficients are reproduced
// verbatim against the published breakup-model tables; do not "simplify"
// the slopes by recomputing them from the endpoints — the published values
// are already rounded and the rounding is load-bearing.

// clampedLinear evaluates to atLower below lower, atUpper above upper, and
// mid(logLc) in between.
type clampedLinear struct {
	lower, upper     float64
	atLower, atUpper float64
	mid              func(logLc float64) float64
}

func (c clampedLinear) eval(logLc float64) float64 {
	switch {
	case logLc <= c.lower:
		return c.atLower
	case logLc >= c.upper:
		return c.atUpper
	default:
		return c.mid(logLc)
	}
}

var alphaTable = map[SatClass]clampedLinear{
	RocketBody: {
		lower: -1.4, upper: 0.0,
		atLower: 1.0, atUpper: 0.5,
		mid: func(l float64) float64 { return 1.0 - 0.3571*(l+1.4) },
	},
	Spacecraft: {
		lower: -1.95, upper: 0.55,
		atLower: 0.0, atUpper: 1.0,
		mid: func(l float64) float64 { return 0.3 + 0.4*(l+1.2) },
	},
}

var mu1Table = map[SatClass]clampedLinear{
	RocketBody: {
		lower: -0.5, upper: 0.0,
		atLower: -0.45, atUpper: -0.9,
		mid: func(l float64) float64 { return -0.45 - 0.9*(l+0.5) },
	},
	Spacecraft: {
		lower: -1.1, upper: 0.0,
		atLower: -0.6, atUpper: -0.95,
		mid: func(l float64) float64 { return -0.6 - 0.318*(l+1.1) },
	},
}

var sigma1Table = map[SatClass]clampedLinear{
	// Constant for rocket bodies: encode as a degenerate clamp so
	// sigma1 shares the same evaluation path as every other parameter.
	RocketBody: {lower: 0, upper: 0, atLower: 0.55, atUpper: 0.55, mid: func(float64) float64 { return 0.55 }},
	Spacecraft: {
		lower: -1.3, upper: -0.3,
		atLower: 0.1, atUpper: 0.3,
		mid: func(l float64) float64 { return 0.1 + 0.2*(l+1.3) },
	},
}

var mu2Table = map[SatClass]clampedLinear{
	RocketBody: {lower: 0, upper: 0, atLower: -0.9, atUpper: -0.9, mid: func(float64) float64 { return -0.9 }},
	Spacecraft: {
		lower: -0.7, upper: -0.1,
		atLower: -1.2, atUpper: -2.0,
		mid: func(l float64) float64 { return -1.2 - 1.333*(l+0.7) },
	},
}

var sigma2Table = map[SatClass]clampedLinear{
	RocketBody: {
		lower: -1.0, upper: 0.1,
		atLower: 0.28, atUpper: 0.1,
		mid: func(l float64) float64 { return -0.28 - 0.1636*(l+1.0) },
	},
	Spacecraft: {
		lower: -0.5, upper: -0.3,
		atLower: 0.5, atUpper: 0.3,
		mid: func(l float64) float64 { return 0.5 - (l + 0.5) },
	},
}

var muSOCCurve = clampedLinear{
	lower: -1.75, upper: -1.25,
	atLower: -0.3, atUpper: -1.0,
	mid: func(l float64) float64 { return -0.3 - 1.4*(l+1.75) },
}

func alpha(class SatClass, logLc float64) float64  { return alphaTable[class.effectiveClass()].eval(logLc) }
func mu1(class SatClass, logLc float64) float64    { return mu1Table[class.effectiveClass()].eval(logLc) }
func sigma1(class SatClass, logLc float64) float64 { return sigma1Table[class.effectiveClass()].eval(logLc) }
func mu2(class SatClass, logLc float64) float64    { return mu2Table[class.effectiveClass()].eval(logLc) }
func sigma2(class SatClass, logLc float64) float64 { return sigma2Table[class.effectiveClass()].eval(logLc) }
func muSOC(logLc float64) float64                  { return muSOCCurve.eval(logLc) }

// sigmaSOC is the one primitive whose branches aren't symmetric clamps:
// below -3.5 it's the constant 0.2, above it grows linearly with no upper
// clamp at all.
func sigmaSOC(logLc float64) float64 {
	if logLc <= -3.5 {
		return 0.2
	}
	return 0.2 + 0.1333*(logLc+3.5)
}
