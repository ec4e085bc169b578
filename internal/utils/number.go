package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParsePositiveAmount parses user input that must represent a positive amount.
// Integer and decimal text are both accepted; decimals round to the nearest
// whole number. The second result is false when the text is not numeric, the
// error-free zero result means the value was not positive.
func ParsePositiveAmount(text string) (value int, numeric bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, false
	}
	if f <= 0 {
		return 0, true
	}
	n := int(math.Round(f))
	if n < 1 {
		return 0, true
	}
	return n, true
}
