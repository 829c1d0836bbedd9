package analyzer

import (
	"time"

	"StockSentinel/internal/calculator"
	"StockSentinel/internal/model"
	"StockSentinel/internal/observer"
	"StockSentinel/internal/strategy"
)

const (
	shortTermDuration = "6M - 1Y"
	longTermDuration  = "3Y"
	croreDivisor      = 1e7
)

// Inputs carries every stage output for one symbol into Assemble.
type Inputs struct {
	Symbol       string // display symbol
	Series       model.PriceSeries
	Fundamentals model.FundamentalSnapshot
	Indicators   model.IndicatorSet
	Observations []model.Observation
	Enhanced     model.EnhancedObservations
	Signal       *model.TradeSignal
	Peers        []model.PeerPerformance
	PeerErrors   []error
	USDINRRate   float64
	GeneratedAt  time.Time
}

// Derive runs the deterministic stages over an immutable series and
// fundamentals pair. Peer results are merged by the caller.
func Derive(symbol string, series model.PriceSeries, fund model.FundamentalSnapshot) Inputs {
	ind := calculator.Compute(series)
	return Inputs{
		Symbol:       symbol,
		Series:       series,
		Fundamentals: fund,
		Indicators:   ind,
		Observations: observer.Generate(series, ind),
		Enhanced:     observer.Enhance(series, ind),
		Signal:       strategy.Evaluate(series, ind, fund),
	}
}

// Assemble combines the stage outputs into a Report. It computes nothing new;
// it only formats and rounds. An empty series is a NoData error.
func Assemble(in Inputs) (model.Report, error) {
	if in.Series.Len() == 0 || in.Signal == nil {
		return model.Report{}, model.NoDataError(in.Symbol, nil)
	}
	last := in.Series.Len() - 1
	price := in.Series.Last().Close
	fund := in.Fundamentals
	sig := in.Signal

	name := fund.Name
	if name == "" {
		name = in.Symbol
	}

	rsi, rsiOK := in.Indicators.RSI14.At(last)

	peers := in.Peers
	if peers == nil {
		peers = []model.PeerPerformance{}
	}

	return model.Report{
		Symbol:                in.Symbol,
		Name:                  name,
		LastPrice:             calculator.Round2(price),
		HistoricalPerformance: historicalPerformance(in.Series.Closes()),
		Fundamentals:          fundamentalsSummary(fund, in.USDINRRate),
		TechnicalAnalysis: model.TechnicalAnalysis{
			MovingAverages: model.MovingAverages{
				SMA50:  roundedAt(in.Indicators.SMA50, last),
				SMA200: roundedAt(in.Indicators.SMA200, last),
				EMA20:  roundedAt(in.Indicators.EMA20, last),
			},
			Indicators: model.IndicatorSummary{
				RSI:            roundedPtr(rsi, rsiOK),
				MACD:           calculator.Bias(in.Indicators.MACD, in.Indicators.SignalLine),
				BollingerBands: calculator.BollingerPositionAt(price, in.Indicators, last),
			},
		},
		KeyObservations:         observer.Texts(in.Observations),
		EnhancedKeyObservations: in.Enhanced,
		BuySellSuggestions: model.BuySellSuggestions{
			ShortTerm: model.ShortTermSuggestion{
				Duration: shortTermDuration,
				Action:   sig.ShortAction,
				BuyZone:  calculator.Round2(sig.Targets.BuyZone),
				Target:   roundAll(sig.Targets.Targets),
				StopLoss: calculator.Round2(sig.Targets.StopLoss),
			},
			LongTerm: model.LongTermSuggestion{
				Duration:          longTermDuration,
				Action:            sig.LongAction,
				Target:            calculator.Round2(sig.Targets.LongTarget),
				DividendStability: sig.DividendStability,
			},
		},
		Recommendations:  sig.Recommendations,
		SimilarCompanies: peers,

		Observations:        in.Observations,
		Targets:             sig.Targets,
		Votes:               sig.Core,
		TrendVotes:          sig.WithTrend,
		PeerErrors:          in.PeerErrors,
		FundamentalsMissing: fund.Missing,
		GeneratedAt:         in.GeneratedAt,
	}, nil
}

func historicalPerformance(closes []float64) model.HistoricalPerformance {
	values := make(map[string]string, len(calculator.PerformancePeriods))
	for _, p := range calculator.PerformancePeriods {
		ret, err := calculator.PeriodReturn(closes, p.Bars)
		if err != nil {
			values[p.Name] = "N/A"
			continue
		}
		values[p.Name] = calculator.FormatPercent(ret)
	}
	return model.HistoricalPerformance{
		OneDay:     values["1d"],
		OneWeek:    values["1w"],
		OneMonth:   values["1m"],
		ThreeMonth: values["3m"],
		OneYear:    values["1y"],
		ThreeYear:  values["3y"],
	}
}

// fundamentalsSummary converts market cap to crore at usdinr and derives the
// sector PE estimate. Absent fields stay zero.
func fundamentalsSummary(f model.FundamentalSnapshot, usdinr float64) model.FundamentalsSummary {
	return model.FundamentalsSummary{
		MarketCapCr:   calculator.Round2(f.MarketCap * usdinr / croreDivisor),
		PERatio:       calculator.Round2(f.TrailingPE),
		EPS:           calculator.Round2(f.TrailingEPS),
		DividendYield: calculator.FormatPercent(f.DividendYield * 100),
		SectorPE:      calculator.Round2(strategy.SectorPE(f.TrailingPE)),
		PriceToBook:   calculator.Round2(f.PriceToBook),
		High52W:       calculator.Round2(f.FiftyTwoWeekHigh),
		Low52W:        calculator.Round2(f.FiftyTwoWeekLow),
	}
}

func roundedAt(c model.Column, i int) *float64 {
	v, ok := c.At(i)
	return roundedPtr(v, ok)
}

func roundedPtr(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	r := calculator.Round2(v)
	return &r
}

func roundAll(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = calculator.Round2(v)
	}
	return out
}
