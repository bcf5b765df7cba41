package spicesboard

import (
	"math"
	"strconv"
	"strings"
)

// NormalizeDate converts an auction date cell into YYYY-MM-DD form. The source
// prints dates in day/month/year order with ".", "-" or "/" as separator, and
// occasionally with a two-digit year. Returns ok=false when the input does not
// split into exactly three non-empty components after trimming.
func NormalizeDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	s = strings.ReplaceAll(s, ".", "/")
	s = strings.ReplaceAll(s, "-", "/")
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return "", false
	}

	d := strings.TrimSpace(parts[0])
	m := strings.TrimSpace(parts[1])
	y := strings.TrimSpace(parts[2])
	if d == "" || m == "" || y == "" {
		return "", false
	}
	if len(y) == 2 {
		y = "20" + y
	}
	return y + "-" + pad2(m) + "-" + pad2(d), true
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// NormalizeNumber parses a numeric cell, stripping thousands separators.
// Returns nil for blanks, dashes and anything else that does not parse to a
// finite number. Missing is deliberately nil, never zero: the upstream table
// uses blank cells for "no data" and coercing them to 0 would corrupt
// aggregate figures.
func NormalizeNumber(raw string) *float64 {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// NormalizeInt is NormalizeNumber for integer-valued cells such as the serial
// number column.
func NormalizeInt(raw string) *int64 {
	v := NormalizeNumber(raw)
	if v == nil {
		return nil
	}
	n := int64(*v)
	return &n
}
