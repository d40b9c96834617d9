// decimal.go
package nano

import (
	"math/big"
	"strconv"
	"strings"
)

// divisionScale is the number of fractional decimal digits division rounds
// to.
const divisionScale = 10

// Decimal is a fixed-scale signed decimal: an arbitrary-precision unscaled
// integer paired with a scale (the count of digits after the decimal
// point). Addition and subtraction keep the larger operand's scale,
// multiplication sums the two scales, and division rounds to a fixed output
// scale. This preserves a literal's written precision exactly — "3.140"
// stays distinct from "3.14" — rather than re-deriving a "minimal" display
// scale from a reduced value.
type Decimal struct {
	unscaled *big.Int
	scale    int
}

func newDecimal(unscaled *big.Int, scale int) Decimal {
	return Decimal{unscaled: unscaled, scale: scale}
}

// DecimalFromInt64 builds an exact integer decimal at scale 0.
func DecimalFromInt64(n int64) Decimal { return newDecimal(big.NewInt(n), 0) }

// decimalZero and decimalOne are shared constants used throughout range and
// step arithmetic.
var (
	decimalZero = DecimalFromInt64(0)
	decimalOne  = DecimalFromInt64(1)
)

// ParseDecimal parses a lexer-validated numeral of the form `digits(.digits)?`
// into a Decimal, preserving the literal's written scale exactly: "3.140"
// keeps scale 3, not the mathematically reduced scale 2. A malformed literal
// here indicates a lexer bug, not user input, so this never fails in
// practice but reports failure through its boolean result.
func ParseDecimal(s string) (Decimal, bool) {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	intDigits := s
	scale := 0
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intDigits = s[:dot] + s[dot+1:]
		scale = len(s) - dot - 1
	}
	if intDigits == "" {
		return Decimal{}, false
	}
	unscaled, ok := new(big.Int).SetString(intDigits, 10)
	if !ok {
		return Decimal{}, false
	}
	if neg {
		unscaled.Neg(unscaled)
	}
	return newDecimal(unscaled, scale), true
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// align scales both operands' unscaled values up to the larger of the two
// scales, returning the aligned pair and that common scale.
func align(a, b Decimal) (*big.Int, *big.Int, int) {
	switch {
	case a.scale == b.scale:
		return a.unscaled, b.unscaled, a.scale
	case a.scale > b.scale:
		return a.unscaled, new(big.Int).Mul(b.unscaled, pow10(a.scale-b.scale)), a.scale
	default:
		return new(big.Int).Mul(a.unscaled, pow10(b.scale-a.scale)), b.unscaled, b.scale
	}
}

func (d Decimal) Add(o Decimal) Decimal {
	x, y, scale := align(d, o)
	return newDecimal(new(big.Int).Add(x, y), scale)
}

func (d Decimal) Sub(o Decimal) Decimal {
	x, y, scale := align(d, o)
	return newDecimal(new(big.Int).Sub(x, y), scale)
}

func (d Decimal) Mul(o Decimal) Decimal {
	return newDecimal(new(big.Int).Mul(d.unscaled, o.unscaled), d.scale+o.scale)
}

func (d Decimal) Neg() Decimal { return newDecimal(new(big.Int).Neg(d.unscaled), d.scale) }

// IsZero reports whether the value is exactly zero.
func (d Decimal) IsZero() bool { return d.unscaled.Sign() == 0 }

// Cmp returns -1, 0, or 1 comparing d to o by mathematical value, regardless
// of either operand's scale.
func (d Decimal) Cmp(o Decimal) int {
	x, y, _ := align(d, o)
	return x.Cmp(y)
}

// Div divides d by o, always producing a result at a fixed scale of
// divisionScale fractional digits, rounded half-to-even. The caller must
// check o.IsZero() first; Div panics on a zero divisor since the evaluator
// is responsible for turning that into a diagnosed runtime error beforehand.
func (d Decimal) Div(o Decimal) Decimal {
	if o.IsZero() {
		panic("decimal: division by zero")
	}
	num := new(big.Int).Mul(d.unscaled, pow10(o.scale))
	den := new(big.Int).Mul(o.unscaled, pow10(d.scale))
	scaledNum := new(big.Int).Mul(num, pow10(divisionScale))
	return newDecimal(divRoundHalfEven(scaledNum, den), divisionScale)
}

// divRoundHalfEven computes round(num/den) using round-half-to-even
// (banker's rounding), the rounding mode NANO's division uses.
func divRoundHalfEven(num, den *big.Int) *big.Int {
	neg := (num.Sign() < 0) != (den.Sign() < 0)
	n := new(big.Int).Abs(num)
	dd := new(big.Int).Abs(den)

	quo, rem := new(big.Int).QuoRem(n, dd, new(big.Int))
	if rem.Sign() != 0 {
		twiceRem := new(big.Int).Mul(rem, big.NewInt(2))
		cmp := twiceRem.Cmp(dd)
		roundUp := cmp > 0 || (cmp == 0 && new(big.Int).Mod(quo, big.NewInt(2)).Sign() != 0)
		if roundUp {
			quo.Add(quo, big.NewInt(1))
		}
	}
	if neg {
		quo.Neg(quo)
	}
	return quo
}

// String renders the exact plain-decimal form at the value's own scale. Only
// a literal trailing ".0" is ever stripped; any other trailing zeros are
// significant digits of the scale and are kept as written.
func (d Decimal) String() string {
	neg := d.unscaled.Sign() < 0
	digits := new(big.Int).Abs(d.unscaled).String()

	var s string
	if d.scale <= 0 {
		s = digits
	} else {
		for len(digits) <= d.scale {
			digits = "0" + digits
		}
		intPart := digits[:len(digits)-d.scale]
		fracPart := digits[len(digits)-d.scale:]
		s = intPart + "." + fracPart
	}
	if neg {
		s = "-" + s
	}
	if strings.HasSuffix(s, ".0") {
		s = s[:len(s)-2]
	}
	return s
}

// canonicalKey reduces away redundant trailing zero digits from the scale so
// that numerically equal values spelled with different scales (1 and 1.0)
// collapse to the same key.
func (d Decimal) canonicalKey() string {
	unscaled := new(big.Int).Set(d.unscaled)
	scale := d.scale
	ten := big.NewInt(10)
	for scale > 0 {
		q, r := new(big.Int).QuoRem(unscaled, ten, new(big.Int))
		if r.Sign() != 0 {
			break
		}
		unscaled = q
		scale--
	}
	return unscaled.String() + "@" + strconv.Itoa(scale)
}
