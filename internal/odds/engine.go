package odds

import (
	"github.com/shopspring/decimal"

	"github.com/albapepper/strength-engine/internal/apperr"
	"github.com/albapepper/strength-engine/internal/config"
	"github.com/albapepper/strength-engine/internal/model"
)

// MarketOdds pairs a probability with its decimal price. Odds is the zero
// value when the probability could not be priced.
type MarketOdds struct {
	Probability float64
	Odds        decimal.Decimal
	Priced      bool
}

// StrengthVariant names which strength figure a MatchOdds was priced
// from, exposed because the Query API must surface the selection
// rationale alongside the payload (spec.md §6).
type StrengthVariant string

const (
	SameCompetition  StrengthVariant = "same-competition"
	CrossCompetition StrengthVariant = "cross-competition"
)

// MatchOdds is the full response the Odds Engine produces for one
// fixture across every market.
type MatchOdds struct {
	Home, Draw, Away MarketOdds
	Over25, Under25  MarketOdds
	BTTSYes, BTTSNo  MarketOdds
	Predicted        Scoreline
	ExpectedGoals    float64
	StrengthVariant  StrengthVariant
}

// Engine computes priced odds from a pair of TeamInCompetition records.
type Engine struct {
	Config config.OddsConfig
}

func NewEngine(cfg config.OddsConfig) *Engine {
	return &Engine{Config: cfg}
}

// StrengthFor selects the correct strength variant for a fixture: the
// same-scope strength when both teams share a competition, or the
// cross-competition-comparable strength otherwise (spec.md §4.3/§4.5).
// The returned StrengthVariant is the selection rationale the Query API
// must expose alongside the priced odds.
func StrengthFor(home, away *model.TeamInCompetition) (homeStrength, awayStrength float64, variant StrengthVariant, err error) {
	sameCompetition := home.CompetitionID == away.CompetitionID && home.Season == away.Season
	variant = CrossCompetition
	if sameCompetition {
		variant = SameCompetition
	}

	pick := func(t *model.TeamInCompetition) (*float64, error) {
		if sameCompetition {
			if t.LocalLeagueStrength != nil {
				return t.LocalLeagueStrength, nil
			}
			return t.OverallStrength, nil
		}
		if t.EuropeanStrength != nil {
			return t.EuropeanStrength, nil
		}
		return nil, apperr.Newf(apperr.Invalid, "odds.StrengthFor", "no cross-competition strength available for team %s", t.TeamID)
	}

	hv, err := pick(home)
	if err != nil {
		return 0, 0, variant, err
	}
	av, err := pick(away)
	if err != nil {
		return 0, 0, variant, err
	}
	if hv == nil || av == nil {
		return 0, 0, variant, apperr.Newf(apperr.Invalid, "odds.StrengthFor", "strength undefined for home=%s or away=%s", home.TeamID, away.TeamID)
	}
	return *hv, *av, variant, nil
}

// Price computes the full MatchOdds for a fixture between two strengths.
func (e *Engine) Price(homeStrength, awayStrength float64, venueHome bool, variant StrengthVariant) MatchOdds {
	p := Compute(e.Config, homeStrength, awayStrength, venueHome)

	price := func(prob float64) MarketOdds {
		odds, ok := ToDecimalOdds(e.Config, prob)
		return MarketOdds{Probability: prob, Odds: odds, Priced: ok}
	}

	return MatchOdds{
		Home:            price(p.Home),
		Draw:            price(p.Draw),
		Away:            price(p.Away),
		Over25:          price(p.Over25),
		Under25:         price(p.Under25),
		BTTSYes:         price(p.BTTSYes),
		BTTSNo:          price(p.BTTSNo),
		Predicted:       PredictScoreline(p),
		ExpectedGoals:   p.ExpectedGoals,
		StrengthVariant: variant,
	}
}
