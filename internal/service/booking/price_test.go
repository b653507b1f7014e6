package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLeadPrice(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "Range with currency and commas", input: "₹20,000 - ₹30,000", expected: 20000},
		{name: "Plain number", input: "15000", expected: 15000},
		{name: "Number with commas", input: "1,25,000", expected: 125000},
		{name: "Non-numeric text", input: "Contact us", expected: 0},
		{name: "Empty string", input: "", expected: 0},
		{name: "Range without currency", input: "500 - 900", expected: 500},
		{name: "Currency prefix only", input: "$4,999", expected: 4999},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseLeadPrice(tc.input))
		})
	}
}
