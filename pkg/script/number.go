package script

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// decimalRe matches the decimal literals the target runtime accepts when it
// converts a string to a number. Anything else converts to NaN.
var decimalRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Parse converts v to a number using the target runtime's conversion rules.
// The result may be NaN or infinite; use [Number] or [Finite] when the value
// is going to be printed.
//
// Conversion table:
//   - nil (absent or null): NaN
//   - bool: 1 or 0
//   - numeric Go types: the value itself
//   - string: surrounding whitespace is ignored; "" is 0; decimal, exponent,
//     0x/0o/0b prefixed and Infinity literals are recognised; anything else
//     is NaN
func Parse(v any) float64 {
	switch x := v.(type) {
	case nil:
		return math.NaN()
	case bool:
		if x {
			return 1
		}
		return 0
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case json.Number:
		return parseString(string(x))
	case string:
		return parseString(x)
	default:
		return math.NaN()
	}
}

func parseString(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}

	if !decimalRe.MatchString(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Out-of-range literals overflow to ±Inf like the runtime does.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f
		}
		return math.NaN()
	}
	return f
}

// Finite returns the numeric value of v and whether it is a finite number.
// Absent values (nil) are never finite.
func Finite(v any) (float64, bool) {
	f := Parse(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Number returns the numeric interpretation of v, or 0 when v is absent,
// empty, non-numeric or not finite. Generated text built from Number never
// contains NaN, undefined or infinite tokens.
func Number(v any) float64 {
	f, _ := Finite(v)
	return f
}

// FormatNumber renders f the way the target runtime prints numbers inside
// template strings: shortest round-trip digits, no trailing ".0", exponent
// notation outside [1e-6, 1e21).
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Num is shorthand for FormatNumber(Number(v)).
func Num(v any) string {
	return FormatNumber(Number(v))
}

// Truthy reports whether v counts as true in a boolean test of the target
// runtime: nil, false, 0, NaN and "" are false; everything else is true.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f := Parse(x)
		return f != 0 && !math.IsNaN(f)
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		f := Parse(x)
		return f != 0 && !math.IsNaN(f)
	default:
		return true
	}
}
