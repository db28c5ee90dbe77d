package model

// Parameter is one of the fixed set of strength signals collected per
// (team, competition, season). The set is enumerated and frozen so that
// weight vectors, normalized maps, and aggregation all agree on keys —
// no opaque string-keyed dictionaries (spec.md §9, Design Notes).
type Parameter string

const (
	Elo                   Parameter = "elo"
	SquadValue            Parameter = "squad_value"
	Form                  Parameter = "form"
	SquadDepth            Parameter = "squad_depth"
	KeyPlayerAvailability Parameter = "key_player_availability"
	Motivation            Parameter = "motivation"
	TacticalMatchup       Parameter = "tactical_matchup"
	OffensiveRating       Parameter = "offensive_rating"
	DefensiveRating       Parameter = "defensive_rating"
	H2HPerformance        Parameter = "h2h_performance"
)

// Parameters is the frozen, ordered parameter set (spec.md §4.2).
var Parameters = []Parameter{
	Elo,
	SquadValue,
	Form,
	SquadDepth,
	KeyPlayerAvailability,
	Motivation,
	TacticalMatchup,
	OffensiveRating,
	DefensiveRating,
	H2HPerformance,
}

// DefaultWeights returns the declared default weight vector. It always
// sums to 1.0; config.Validate re-checks this at startup since operators
// may override individual weights.
func DefaultWeights() map[Parameter]float64 {
	return map[Parameter]float64{
		Elo:                   0.18,
		SquadValue:            0.15,
		Form:                  0.05,
		SquadDepth:            0.02,
		KeyPlayerAvailability: 0.10,
		Motivation:            0.10,
		TacticalMatchup:       0.10,
		OffensiveRating:       0.10,
		DefensiveRating:       0.10,
		H2HPerformance:        0.10,
	}
}

// Valid reports whether p is a member of the frozen parameter set.
func (p Parameter) Valid() bool {
	for _, known := range Parameters {
		if p == known {
			return true
		}
	}
	return false
}

// LowerIsBetter reports whether smaller raw values are stronger for this
// parameter. None of the parameters in the fixed set are lower-is-better
// today, but the Normalizer contract supports them (spec.md §4.3 step 5).
func (p Parameter) LowerIsBetter() bool {
	return false
}
