package toon

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Number is a numeric value. It keeps the literal text it was built from so
// that 3 and 3.0 stay distinct through an encode/decode round trip; the
// numeric accessors interpret that text on demand.
type Number struct {
	lit string
}

// Type implements Value.
func (Number) Type() Type { return NumberType }

func (Number) isValue() {}

// Int returns a Number for the given integer.
func Int(i int64) Number {
	return Number{lit: strconv.FormatInt(i, 10)}
}

// Uint returns a Number for the given unsigned integer.
func Uint(u uint64) Number {
	return Number{lit: strconv.FormatUint(u, 10)}
}

// Float returns a Number for the given float. NaN and the infinities have
// no literal form and map to Null.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null{}
	}
	return Number{lit: formatFloat(f, 64)}
}

// FromDecimal returns a Number for the given arbitrary-precision decimal.
func FromDecimal(d decimal.Decimal) Number {
	return Number{lit: d.String()}
}

// ParseNumber returns a Number for the given literal, which must match the
// numeric literal grammar (optional sign, digits, optional fraction,
// optional exponent).
func ParseNumber(lit string) (Number, error) {
	if !isNumericLiteral(lit) {
		return Number{}, errors.Errorf("toon: invalid numeric literal %q", lit)
	}
	return Number{lit: lit}, nil
}

// MustNumber is like ParseNumber but panics on an invalid literal.
func MustNumber(lit string) Number {
	n, err := ParseNumber(lit)
	if err != nil {
		panic(err)
	}
	return n
}

// Literal returns the text form of the number.
func (n Number) Literal() string {
	if n.lit == "" {
		return "0"
	}
	return n.lit
}

// String implements fmt.Stringer.
func (n Number) String() string {
	return n.Literal()
}

// IsInteger reports whether the literal has neither a fractional part nor
// an exponent.
func (n Number) IsInteger() bool {
	for i := 0; i < len(n.lit); i++ {
		switch n.lit[i] {
		case '.', 'e', 'E':
			return false
		}
	}
	return true
}

// Int64 returns the value as an int64. It fails if the literal is not an
// integer or does not fit.
func (n Number) Int64() (int64, error) {
	i, err := strconv.ParseInt(n.Literal(), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "toon: number %v is not an int64", n.Literal())
	}
	return i, nil
}

// Float64 returns the nearest float64 to the value.
func (n Number) Float64() (float64, error) {
	f, err := strconv.ParseFloat(n.Literal(), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "toon: number %v is not a float64", n.Literal())
	}
	return f, nil
}

// Decimal returns the exact value as an arbitrary-precision decimal.
func (n Number) Decimal() decimal.Decimal {
	d, err := decimal.NewFromString(n.Literal())
	if err != nil {
		// The literal grammar is a subset of what decimal accepts.
		panic(errors.WithMessage(err, "toon: unparseable numeric literal"))
	}
	return d
}

// Equal reports whether both numbers have the same literal text.
func (n Number) Equal(o Number) bool {
	return n.Literal() == o.Literal()
}

// Formats a finite float as a plain decimal where that is short, falling
// back to exponent notation for very large or very small magnitudes.
// bitSize is 32 or 64 and selects the shortest representation that round
// trips at that precision.
func formatFloat(f float64, bitSize int) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(f, 'e', -1, bitSize)
	}
	if f == 0 {
		// Drop the sign of negative zero.
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}
