package domain

import "strconv"

// CoerceAmount converts a raw storage amount into a number. Relational
// backends hand back NUMERIC columns as text; anything unparseable
// counts as zero rather than failing the read path.
func CoerceAmount(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
