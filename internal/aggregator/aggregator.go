// Package aggregator implements the weighted aggregation of normalized
// parameter values into a single overall strength figure (spec.md §4.4).
// Like the normalizer, it is pure: no I/O, deterministic given the same
// inputs, weights, and policy.
package aggregator

import (
	"github.com/albapepper/strength-engine/internal/config"
	"github.com/albapepper/strength-engine/internal/model"
)

// Outcome is the aggregator's output for one team: the weighted overall
// strength (nil if undefined under the active policy) and the confidence
// — the fraction of positive-weight parameters that had a value, except
// under StrictNull with partial coverage, where OverallStrength is nil and
// Confidence is reported as 1.0.
type Outcome struct {
	OverallStrength *float64
	Confidence      float64
}

// Aggregate combines normalized values into an Outcome using weights and
// policy. normalized holds one entry per Parameter the team has ever had
// collected; a missing key is treated the same as an explicit nil.
func Aggregate(normalized map[model.Parameter]*float64, weights map[model.Parameter]float64, policy config.PartialCoveragePolicy) Outcome {
	var weightedSum, presentWeight, totalWeight float64
	presentCount, weightedParamCount := 0, 0

	for _, p := range model.Parameters {
		w := weights[p]
		if w <= 0 {
			continue
		}
		weightedParamCount++
		totalWeight += w

		v, ok := normalized[p]
		if !ok || v == nil {
			continue
		}
		presentCount++
		presentWeight += w
		weightedSum += w * *v
	}

	confidence := 0.0
	if weightedParamCount > 0 {
		confidence = float64(presentCount) / float64(weightedParamCount)
	}

	if presentCount == weightedParamCount {
		strength := weightedSum
		return Outcome{OverallStrength: &strength, Confidence: 1.0}
	}

	switch policy {
	case config.StrictNull:
		return Outcome{OverallStrength: nil, Confidence: 1.0}
	default: // SkipAndRenormalize
		if presentWeight == 0 {
			return Outcome{OverallStrength: nil, Confidence: confidence}
		}
		strength := weightedSum / presentWeight
		return Outcome{OverallStrength: &strength, Confidence: confidence}
	}
}
