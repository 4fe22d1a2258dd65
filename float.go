package qcmp

import (
	"strconv"
	"strings"
)

// ParseFloat parses a numeric token from an output file. Besides the
// usual notations it accepts Fortran's 'D' exponent marker, e.g.
// "-1.5D-3". The second result reports whether the token is numeric at
// all.
func ParseFloat(word string) (float64, bool) {
	if strings.ContainsRune(word, 'D') {
		word = strings.ReplaceAll(word, "D", "E")
	}
	f, err := strconv.ParseFloat(word, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isFloat(word string) bool {
	_, ok := ParseFloat(word)
	return ok
}

// splitWords normalizes an output line into comparable words. A space
// is inserted before minus signs so that digit-glued negative numbers
// split apart, scientific-notation exponents ("E-", "D-") are rejoined,
// and '=' and ',' are padded so they become words of their own. The
// replacements run in this exact order on the whole line.
func splitWords(line string) []string {
	s := strings.ReplaceAll(line, "-", " -")
	s = strings.ReplaceAll(s, "E -", "E-")
	s = strings.ReplaceAll(s, "D -", "D-")
	s = strings.ReplaceAll(s, "=", " = ")
	s = strings.ReplaceAll(s, ",", " , ")
	return strings.Fields(s)
}
