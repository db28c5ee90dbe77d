// Package normalizer implements min-max normalization of raw parameter
// values within a scope (spec.md §4.3). It is pure: given the same raw
// values it always produces the same normalized values, with no I/O and
// no dependency on the Data Store beyond the values handed to it.
package normalizer

import "github.com/google/uuid"

// degenerateRangeValue is assigned to every team when every observed raw
// value in the scope is identical (min == max), so a flat distribution
// does not manufacture an arbitrary spread (spec.md §4.3).
const degenerateRangeValue = 0.5

// Normalize rescales raw into [0,1] by linear min-max scaling over the
// non-nil values present. A missing or nil value stays nil — absence of
// data is never silently treated as a zero. When lowerIsBetter is true,
// the scale is inverted so the smallest raw value maps to 1.0.
func Normalize(raw map[uuid.UUID]*float64, lowerIsBetter bool) map[uuid.UUID]*float64 {
	min, max, any := minMax(raw)
	out := make(map[uuid.UUID]*float64, len(raw))
	for teamID, v := range raw {
		if v == nil || !any {
			out[teamID] = nil
			continue
		}
		n := scale(*v, min, max, lowerIsBetter)
		out[teamID] = &n
	}
	return out
}

func scale(v, min, max float64, lowerIsBetter bool) float64 {
	if min == max {
		return degenerateRangeValue
	}
	n := (v - min) / (max - min)
	if lowerIsBetter {
		return 1 - n
	}
	return n
}

func minMax(values map[uuid.UUID]*float64) (min, max float64, any bool) {
	for _, v := range values {
		if v == nil {
			continue
		}
		if !any {
			min, max, any = *v, *v, true
			continue
		}
		if *v < min {
			min = *v
		}
		if *v > max {
			max = *v
		}
	}
	return
}
