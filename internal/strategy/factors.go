package strategy

import (
	"fmt"

	"StockSentinel/internal/calculator"
	"StockSentinel/internal/model"
)

const trendWindow = 30

// voteAboveSMA50 votes bullish when the close is above the 50-day average.
// An unavailable average votes bearish.
func voteAboveSMA50(price float64, ind model.IndicatorSet) model.Vote {
	sma, ok := ind.SMA50.Last()
	if !ok {
		return model.Vote{Name: "SMA50", Side: model.SideBearish, Commentary: "SMA50 unavailable"}
	}
	if price > sma {
		return model.Vote{Name: "SMA50", Side: model.SideBullish, Commentary: fmt.Sprintf("close above %.2f", sma)}
	}
	return model.Vote{Name: "SMA50", Side: model.SideBearish, Commentary: fmt.Sprintf("close at or below %.2f", sma)}
}

// voteAboveSMA200 votes bullish when the close is above the 200-day average.
// An unavailable average votes bearish.
func voteAboveSMA200(price float64, ind model.IndicatorSet) model.Vote {
	sma, ok := ind.SMA200.Last()
	if !ok {
		return model.Vote{Name: "SMA200", Side: model.SideBearish, Commentary: "SMA200 unavailable"}
	}
	if price > sma {
		return model.Vote{Name: "SMA200", Side: model.SideBullish, Commentary: fmt.Sprintf("close above %.2f", sma)}
	}
	return model.Vote{Name: "SMA200", Side: model.SideBearish, Commentary: fmt.Sprintf("close at or below %.2f", sma)}
}

// voteRSI only votes at the extremes: oversold is bullish, overbought bearish.
func voteRSI(ind model.IndicatorSet) model.Vote {
	rsi, ok := ind.RSI14.Last()
	switch calculator.ClassifyRSI(rsi, ok) {
	case model.RSIOversold:
		return model.Vote{Name: "RSI", Side: model.SideBullish, Commentary: fmt.Sprintf("RSI=%.0f", rsi)}
	case model.RSIOverbought:
		return model.Vote{Name: "RSI", Side: model.SideBearish, Commentary: fmt.Sprintf("RSI=%.0f", rsi)}
	}
	if !ok {
		return model.Vote{Name: "RSI", Side: model.SideNone, Commentary: "RSI unavailable"}
	}
	return model.Vote{Name: "RSI", Side: model.SideNone, Commentary: fmt.Sprintf("RSI=%.0f", rsi)}
}

func voteMACD(ind model.IndicatorSet) model.Vote {
	if calculator.Bias(ind.MACD, ind.SignalLine) == model.MACDBullish {
		return model.Vote{Name: "MACD", Side: model.SideBullish, Commentary: "MACD above signal"}
	}
	return model.Vote{Name: "MACD", Side: model.SideBearish, Commentary: "MACD not above signal"}
}

// TrendVote compares the mean of the last 30 closes with the mean of the
// 30 before them. With no earlier closes the vote is bearish.
func TrendVote(closes []float64) model.Vote {
	n := len(closes)
	recentStart := n - trendWindow
	if recentStart < 0 {
		recentStart = 0
	}
	priorStart := n - 2*trendWindow
	if priorStart < 0 {
		priorStart = 0
	}
	prior := closes[priorStart:recentStart]
	if len(prior) == 0 {
		return model.Vote{Name: "Trend", Side: model.SideBearish, Commentary: "no prior window"}
	}

	recentMean := calculator.Mean(closes[recentStart:])
	priorMean := calculator.Mean(prior)
	if recentMean > priorMean {
		return model.Vote{Name: "Trend", Side: model.SideBullish, Commentary: fmt.Sprintf("30-bar mean %.2f > %.2f", recentMean, priorMean)}
	}
	return model.Vote{Name: "Trend", Side: model.SideBearish, Commentary: fmt.Sprintf("30-bar mean %.2f <= %.2f", recentMean, priorMean)}
}

// IndicatorVotes runs the four indicator checks in a fixed order.
func IndicatorVotes(price float64, ind model.IndicatorSet) []model.Vote {
	return []model.Vote{
		voteAboveSMA50(price, ind),
		voteAboveSMA200(price, ind),
		voteRSI(ind),
		voteMACD(ind),
	}
}

// CountVotes tallies the four indicator checks. The two average checks and
// the MACD check always cast one vote each; RSI casts at most one.
func CountVotes(price float64, ind model.IndicatorSet) model.Votes {
	var v model.Votes
	for _, vote := range IndicatorVotes(price, ind) {
		v = v.Add(vote)
	}
	return v
}
