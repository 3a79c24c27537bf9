package common

import (
	"math"
	"strings"
)

// HasAny returns true if s contains any of the substrings.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Round2 rounds to two decimal places, the precision used for reported
// model outputs.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
