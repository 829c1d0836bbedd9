package strategy

import "StockSentinel/internal/model"

const (
	strongBuyMaxPE       = 30.0
	sectorPEDiscount     = 0.9
	sectorPEHeadroom     = 1.2
	deepDiscountToSMA200 = 0.8
)

// SixMonth maps the five-vote tally to the 6-month action.
func SixMonth(v model.Votes) model.Action {
	switch {
	case v.Bullish >= 4:
		return model.ActionBuy
	case v.Bullish >= 3:
		return model.ActionAccumulate
	case v.Bearish >= 4:
		return model.ActionSell
	default:
		return model.ActionHold
	}
}

// OneYear maps the five-vote tally and the long average to the 1-year action.
// An unavailable SMA200 satisfies neither side.
func OneYear(v model.Votes, price, sma200 float64, ok bool) model.Action {
	switch {
	case v.Bullish >= 3 && ok && price > sma200:
		return model.ActionBuy
	case v.Bearish >= 3 && ok && price < sma200:
		return model.ActionSell
	default:
		return model.ActionHold
	}
}

// ThreeYear is the fundamentals-aware long horizon. A missing PE never
// reaches Strong Buy.
func ThreeYear(price, sma200 float64, ok bool, pe float64) model.Action {
	if !ok {
		return model.ActionHold
	}
	switch {
	case price > sma200 && pe > 0 && pe < strongBuyMaxPE:
		return model.ActionStrongBuy
	case price > sma200:
		return model.ActionBuy
	case price < deepDiscountToSMA200*sma200:
		return model.ActionSell
	default:
		return model.ActionHold
	}
}

// ShortSuggestion maps the four indicator votes to the trade suggestion.
func ShortSuggestion(v model.Votes) model.Action {
	switch {
	case v.Bullish >= 3:
		return model.ActionBuy
	case v.Bullish == 2:
		return model.ActionBuyOnDips
	case v.Bearish >= 3:
		return model.ActionSell
	default:
		return model.ActionHold
	}
}

// LongSuggestion compares PE with an estimated sector PE. A zero PE makes
// the sector estimate zero and short-circuits the comparison.
func LongSuggestion(price, sma200 float64, ok bool, pe float64) model.Action {
	if !ok {
		return model.ActionHold
	}
	sectorPE := pe * sectorPEDiscount
	switch {
	case price > sma200 && pe > 0 && sectorPE > 0 && pe < sectorPE*sectorPEHeadroom:
		return model.ActionStrongBuy
	case price > sma200:
		return model.ActionBuy
	case price < deepDiscountToSMA200*sma200:
		return model.ActionSell
	default:
		return model.ActionHold
	}
}

// SectorPE estimates the sector PE from the instrument's own PE.
func SectorPE(pe float64) float64 { return pe * sectorPEDiscount }

// Evaluate computes votes, horizon recommendations, suggestions and targets
// for the latest bar of series. It returns nil for an empty series.
func Evaluate(series model.PriceSeries, ind model.IndicatorSet, fund model.FundamentalSnapshot) *model.TradeSignal {
	if series.Len() == 0 {
		return nil
	}
	price := series.Last().Close

	votes := IndicatorVotes(price, ind)
	var core model.Votes
	for _, v := range votes {
		core = core.Add(v)
	}
	trend := TrendVote(series.Closes())
	withTrend := core.Add(trend)

	sma200, ok := ind.SMA200.Last()
	pe := 0.0
	if fund.HasPE() {
		pe = fund.TrailingPE
	}

	return &model.TradeSignal{
		Votes:     append(votes, trend),
		Core:      core,
		WithTrend: withTrend,
		Recommendations: model.RecommendationSet{
			ShortTerm6M: SixMonth(withTrend),
			ShortTerm1Y: OneYear(withTrend, price, sma200, ok),
			LongTerm3Y:  ThreeYear(price, sma200, ok, pe),
		},
		ShortAction:       ShortSuggestion(core),
		LongAction:        LongSuggestion(price, sma200, ok, pe),
		Targets:           Targets(price),
		DividendStability: DividendStability(fund.DividendYield),
	}
}
