package domain

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// filenameRe matches archive names produced by Filename.
var filenameRe = regexp.MustCompile(`^accident_(-?\d+)\.csv\.bz2$`)

// MaxYearSpan is the largest number of years one range token may expand to.
// Longer ranges are left unexpanded and fail coercion as a single bad year.
const MaxYearSpan = 200

// yearRangeRe matches "2013:2015" style range tokens.
var yearRangeRe = regexp.MustCompile(`^\s*(\d+)\s*:\s*(\d+)\s*$`)

// Filename returns the archive name for a year, e.g. 2013 -> "accident_2013.csv.bz2".
func Filename(year int) string {
	return fmt.Sprintf("accident_%d.csv.bz2", year)
}

// MakeFilename coerces year to an integer and returns its archive name.
func MakeFilename(year any) (string, error) {
	y, err := CoerceInt(year)
	if err != nil {
		return "", err
	}
	return Filename(y), nil
}

// YearFromFilename extracts the year from an archive name built by Filename.
func YearFromFilename(name string) (int, error) {
	m := filenameRe.FindStringSubmatch(name)
	if len(m) != 2 {
		return 0, fmt.Errorf("not an accident archive name: %q", name)
	}
	return strconv.Atoi(m[1])
}

// CoerceInt converts numeric-like input to an int. Floats and numeric strings
// are accepted only when they hold a whole number ("2013.0" is 2013). Every
// input kind is limited to the int32 range, which covers any year or state
// code.
func CoerceInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return signedToInt(v, int64(n))
	case int8:
		return signedToInt(v, int64(n))
	case int16:
		return signedToInt(v, int64(n))
	case int32:
		return signedToInt(v, int64(n))
	case int64:
		return signedToInt(v, n)
	case uint:
		return unsignedToInt(v, uint64(n))
	case uint8:
		return unsignedToInt(v, uint64(n))
	case uint16:
		return unsignedToInt(v, uint64(n))
	case uint32:
		return unsignedToInt(v, uint64(n))
	case uint64:
		return unsignedToInt(v, n)
	case float32:
		return floatToInt(v, float64(n))
	case float64:
		return floatToInt(v, n)
	case string:
		return stringToInt(n)
	case fmt.Stringer:
		return stringToInt(n.String())
	default:
		return 0, &TypeConversionError{Value: v}
	}
}

var errOutOfRange = errors.New("out of range")

func signedToInt(orig any, n int64) (int, error) {
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, &TypeConversionError{Value: orig, Cause: errOutOfRange}
	}
	return int(n), nil
}

func unsignedToInt(orig any, n uint64) (int, error) {
	if n > math.MaxInt32 {
		return 0, &TypeConversionError{Value: orig, Cause: errOutOfRange}
	}
	return int(n), nil
}

func floatToInt(orig any, f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, &TypeConversionError{Value: orig}
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, &TypeConversionError{Value: orig, Cause: errOutOfRange}
	}
	return int(f), nil
}

func stringToInt(s string) (int, error) {
	t := strings.TrimSpace(s)
	if n, err := strconv.ParseInt(t, 10, 64); err == nil {
		return signedToInt(s, n)
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, &TypeConversionError{Value: s}
	}
	return floatToInt(s, f)
}

// ExpandYears expands "2013:2015" range tokens into individual years.
// Descending ranges count down. Other tokens, and ranges covering more than
// MaxYearSpan years, are returned unchanged so per-year coercion can report
// them.
func ExpandYears(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		m := yearRangeRe.FindStringSubmatch(tok)
		if len(m) != 3 {
			out = append(out, tok)
			continue
		}
		from, errF := strconv.Atoi(m[1])
		to, errT := strconv.Atoi(m[2])
		if errF != nil || errT != nil {
			out = append(out, tok)
			continue
		}
		if span := to - from; span >= MaxYearSpan || -span >= MaxYearSpan {
			out = append(out, tok)
			continue
		}
		step := 1
		if to < from {
			step = -1
		}
		for y := from; ; y += step {
			out = append(out, strconv.Itoa(y))
			if y == to {
				break
			}
		}
	}
	return out
}
