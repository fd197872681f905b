package domain

import (
	"regexp"
	"strconv"
	"strings"
)

var priceNumberPattern = regexp.MustCompile(`\d+\.?\d*`)

// ParsePrice extracts the first decimal number from a display price string.
// "$1,299.99" yields 1299.99. Returns 0 when nothing parses.
func ParsePrice(display string) float64 {
	if display == "" {
		return 0
	}
	match := priceNumberPattern.FindString(strings.ReplaceAll(display, ",", ""))
	if match == "" {
		return 0
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return value
}
