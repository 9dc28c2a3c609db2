package listing

import (
	"math"
	"strconv"
	"strings"
)

// parseAmount reads a single numeric cell such as "60000", "60,000.50",
// "€ 60.000" or "$60k". Anything it cannot read is reported as absent.
func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	switch strings.ToLower(s) {
	case "nan", "none", "null", "n/a", "-":
		return 0, false
	}

	mult := 1.0
	if last := s[len(s)-1]; last == 'k' || last == 'K' {
		mult = 1000
		s = s[:len(s)-1]
	}

	s = strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			return r
		case r == ' ', r == '\u00a0', r == '\'':
			return -1
		case strings.ContainsRune("€$£¥", r):
			return -1
		}
		return 'x'
	}, s)
	if s == "" || strings.ContainsRune(s, 'x') {
		return 0, false
	}
	s = normalizeSeparators(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v * mult, true
}

// normalizeSeparators resolves thousands vs decimal separators so the
// string can go through strconv. "60,000" and "60.000" are both sixty
// thousand; "60000.5" and "60000,5" keep their fraction.
func normalizeSeparators(s string) string {
	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		if isGrouped(s, ',') {
			return strings.ReplaceAll(s, ",", "")
		}
		return strings.Replace(s, ",", ".", 1)
	case lastDot >= 0:
		if strings.Count(s, ".") > 1 || isGrouped(s, '.') {
			return strings.ReplaceAll(s, ".", "")
		}
	}
	return s
}

// isGrouped reports whether sep is used as a thousands separator: the first
// group has one to three digits without a leading zero and every later
// group has exactly three.
func isGrouped(s string, sep byte) bool {
	parts := strings.Split(s, string(sep))
	if len(parts) < 2 {
		return false
	}
	first := strings.TrimPrefix(parts[0], "-")
	if len(first) < 1 || len(first) > 3 || first[0] == '0' {
		return false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 {
			return false
		}
	}
	return true
}

// deriveAverage returns the mean of the present bounds.
func deriveAverage(lo, hi *float64) float64 {
	switch {
	case lo != nil && hi != nil:
		return (*lo + *hi) / 2
	case lo != nil:
		return *lo
	case hi != nil:
		return *hi
	}
	return 0
}
