package literal

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ParseInt decodes a TOML integer: decimal with optional sign, or
// unsigned hexadecimal, octal and binary with 0x, 0o and 0b prefixes.
// Underscores are allowed between digits.
func ParseInt(raw string) (int64, error) {
	if len(raw) > 2 && raw[0] == '0' {
		base := 0
		switch raw[1] {
		case 'x':
			base = 16
		case 'o':
			base = 8
		case 'b':
			base = 2
		}
		if base != 0 {
			digits := raw[2:]
			if err := checkDigits(digits, base, 2); err != nil {
				return 0, err
			}
			v, err := strconv.ParseInt(strings.ReplaceAll(digits, "_", ""), base, 64)
			if err != nil {
				return 0, numError(raw, err)
			}
			return v, nil
		}
	}

	digits, off := trimSign(raw)
	if err := checkDigits(digits, 10, off); err != nil {
		return 0, err
	}
	if len(digits) > 1 && digits[0] == '0' {
		return 0, errorf(off, "leading zeros are not allowed in %q", raw)
	}
	v, err := strconv.ParseInt(strings.ReplaceAll(raw, "_", ""), 10, 64)
	if err != nil {
		return 0, numError(raw, err)
	}
	return v, nil
}

// ParseFloat decodes a TOML float, including inf and nan.
func ParseFloat(raw string) (float64, error) {
	switch raw {
	case "inf", "+inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	case "nan", "+nan", "-nan":
		return math.NaN(), nil
	}

	body, off := trimSign(raw)
	mant := body
	if i := strings.IndexAny(body, "eE"); i >= 0 {
		mant = body[:i]
		exp, expOff := trimSign(body[i+1:])
		if err := checkDigits(exp, 10, off+i+1+expOff); err != nil {
			return 0, err
		}
	} else if !strings.Contains(body, ".") {
		return 0, errorf(0, "invalid float %q", raw)
	}

	intPart := mant
	if dot := strings.IndexByte(mant, '.'); dot >= 0 {
		intPart = mant[:dot]
		if err := checkDigits(mant[dot+1:], 10, off+dot+1); err != nil {
			return 0, err
		}
	}
	if err := checkDigits(intPart, 10, off); err != nil {
		return 0, err
	}
	if len(intPart) > 1 && intPart[0] == '0' {
		return 0, errorf(off, "leading zeros are not allowed in %q", raw)
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, "_", ""), 64)
	if err != nil {
		return 0, numError(raw, err)
	}
	return v, nil
}

// FormatInt returns the decimal spelling of v.
func FormatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// FormatFloat returns the shortest spelling of v that reads back as a
// TOML float.
func FormatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "nan"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func trimSign(s string) (string, int) {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		return s[1:], 1
	}
	return s, 0
}

// checkDigits validates a run of digits in the given base where
// underscores may only appear between two digits. off is the position of
// digits within the literal.
func checkDigits(digits string, base, off int) error {
	if digits == "" {
		return errorf(off, "expected digits")
	}
	prevDigit := false
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c == '_' {
			if !prevDigit || i == len(digits)-1 {
				return errorf(off+i, "underscores must be surrounded by digits")
			}
			prevDigit = false
			continue
		}
		if !isDigitOf(c, base) {
			return errorf(off+i, "invalid digit %q", c)
		}
		prevDigit = true
	}
	return nil
}

func isDigitOf(c byte, base int) bool {
	switch base {
	case 2:
		return c == '0' || c == '1'
	case 8:
		return '0' <= c && c <= '7'
	case 16:
		return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
	}
	return '0' <= c && c <= '9'
}

func numError(raw string, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return errorf(0, "number %q is out of range", raw)
	}
	return errorf(0, "invalid number %q", raw)
}
