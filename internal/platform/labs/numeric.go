package labs

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var numericToken = regexp.MustCompile(`-?\d+(\.\d+)?`)

// ParseNumericValue extracts the first numeric token from a free-text lab
// value. Lab data is frequently dirty ("5,6", "120 mg/dL", "ver observação"),
// so parsing is permissive: locale decimal commas become dots and anything
// around the first number is ignored. Returns nil when no finite number can
// be extracted; it never fails loudly, unparseable values are simply excluded
// from downstream computation.
func ParseNumericValue(s string) *float64 {
	cleaned := strings.ReplaceAll(s, ",", ".")
	token := numericToken.FindString(cleaned)
	if token == "" {
		return nil
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
