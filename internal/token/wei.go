// Package token converts between base-unit token amounts and display forms.
//
// Amounts cross the API boundary as decimal-digit strings in base units (the
// smallest on-chain unit). Conversion to a display value slices the digit
// string at the decimal offset instead of going through a float, so values
// beyond float64 integer precision keep their integer part exact.
package token

import (
	"math"
	"strconv"
	"strings"
)

// Decimals is the default base-unit precision for the game tokens.
const Decimals = 18

// FromWei converts a base-unit digit string to a display number.
// Empty, "0" and malformed input yield 0.
func FromWei(wei string) float64 {
	return FromWeiDecimals(wei, Decimals)
}

// FromWeiDecimals is FromWei with an explicit decimal precision.
func FromWeiDecimals(wei string, decimals int) float64 {
	if wei == "" || wei == "0" {
		return 0
	}
	s := strings.TrimLeft(wei, "0")
	if s == "" {
		return 0
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
	}

	var display string
	if len(s) <= decimals {
		display = "0." + strings.Repeat("0", decimals-len(s)) + s
	} else {
		display = s[:len(s)-decimals] + "." + s[len(s)-decimals:]
	}

	f, err := strconv.ParseFloat(display, 64)
	if err != nil {
		return 0
	}
	return f
}

// ToWei converts a display amount string (e.g. "1000" or "1.5") to a
// base-unit digit string. The fractional part is right-padded or truncated
// to the precision; leading zeros are stripped. Empty or zero input yields "0".
func ToWei(amount string) string {
	return ToWeiDecimals(amount, Decimals)
}

// ToWeiDecimals is ToWei with an explicit decimal precision.
func ToWeiDecimals(amount string, decimals int) string {
	if amount == "" || amount == "0" {
		return "0"
	}

	intPart, fracPart, _ := strings.Cut(amount, ".")
	if len(fracPart) < decimals {
		fracPart += strings.Repeat("0", decimals-len(fracPart))
	} else {
		fracPart = fracPart[:decimals]
	}

	out := strings.TrimLeft(intPart+fracPart, "0")
	if out == "" {
		return "0"
	}
	return out
}

// FmtWei renders a base-unit digit string as a compact display value.
func FmtWei(wei string) string {
	return Compact(FromWei(wei))
}

// Compact renders a number in short form: 1234567 -> "1.2M", 45000 -> "45K",
// 1234 -> "1.234", 123.456 -> "123.46". Zero and NaN render as "0".
func Compact(n float64) string {
	if n == 0 || math.IsNaN(n) {
		return "0"
	}
	switch {
	case n >= 1_000_000:
		return trimTrailingZero(strconv.FormatFloat(n/1_000_000, 'f', 1, 64)) + "M"
	case n >= 10_000:
		return trimTrailingZero(strconv.FormatFloat(n/1_000, 'f', 1, 64)) + "K"
	case n >= 1_000:
		return dotSeparated(int64(math.Round(n)))
	}
	if n == math.Trunc(n) {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', 2, 64)
}

func trimTrailingZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}

// dotSeparated groups an integer's digits in threes with "." as separator.
func dotSeparated(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var sb strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		sb.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}
