package service

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

const (
	crore    = 10_000_000
	lakh     = 100_000
	thousand = 1_000

	stateLabelMax  = 15
	stateLabelKeep = 12
)

// CompactCount renders a count in Indian notation (Cr, L, K) with one
// decimal place.
func CompactCount(n int64) string {
	switch {
	case n >= crore:
		return fmt.Sprintf("%.1fCr", float64(n)/crore)
	case n >= lakh:
		return fmt.Sprintf("%.1fL", float64(n)/lakh)
	case n >= thousand:
		return fmt.Sprintf("%.1fK", float64(n)/thousand)
	}
	return strconv.FormatInt(n, 10)
}

// ShortStateName trims long state names for chart axes.
func ShortStateName(name string) string {
	if utf8.RuneCountInString(name) <= stateLabelMax {
		return name
	}
	runes := []rune(name)
	return string(runes[:stateLabelKeep]) + "..."
}
