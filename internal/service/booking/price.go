package booking

import (
	"regexp"
	"strconv"
	"strings"
)

var priceRun = regexp.MustCompile(`[\d,]+`)

// ParseLeadPrice derives a booking amount from a human-readable price
// range such as "₹20,000 - ₹30,000": the first run of digits (with
// thousands separators) wins, so a range yields its low end. Anything
// without a numeric run ("Contact us") yields 0. Deliberately
// approximate; kept for compatibility with existing bookings.
func ParseLeadPrice(priceRange string) float64 {
	match := priceRun.FindString(priceRange)
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}
