package strategy

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"StockSentinel/internal/calculator"
	"StockSentinel/internal/model"
)

func makeSeries(t *testing.T, closes []float64) model.PriceSeries {
	t.Helper()
	start := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	s, err := model.NewPriceSeries("TEST", bars)
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	return s
}

func lastOnly(v float64) model.Column { return model.Column{v} }

func TestEvaluate_ConstantPrice(t *testing.T) {
	closes := make([]float64, 400)
	for i := range closes {
		closes[i] = 100
	}
	s := makeSeries(t, closes)
	sig := Evaluate(s, calculator.Compute(s), model.FundamentalSnapshot{TrailingPE: 20})
	if sig == nil {
		t.Fatal("expected non-nil signal")
	}
	if len(sig.Votes) != 5 {
		t.Fatalf("expected 5 votes, got %d", len(sig.Votes))
	}
	// both averages equal the close, MACD ties, RSI neutral, trend flat
	if sig.Core.Bullish != 0 || sig.Core.Bearish != 3 {
		t.Errorf("core votes = %+v, want 0 bullish / 3 bearish", sig.Core)
	}
	if sig.WithTrend.Bearish != 4 {
		t.Errorf("expected 4 bearish with trend, got %d", sig.WithTrend.Bearish)
	}
	if sig.Recommendations.ShortTerm6M != model.ActionSell {
		t.Errorf("6m = %s, want Sell", sig.Recommendations.ShortTerm6M)
	}
	if sig.Recommendations.ShortTerm1Y != model.ActionHold {
		t.Errorf("1y = %s, want Hold", sig.Recommendations.ShortTerm1Y)
	}
	if sig.Recommendations.LongTerm3Y != model.ActionHold {
		t.Errorf("3y = %s, want Hold", sig.Recommendations.LongTerm3Y)
	}
}

func TestEvaluate_FlatAtFractionalPrices(t *testing.T) {
	for _, price := range []float64{2950.55, 17.3} {
		closes := make([]float64, 400)
		for i := range closes {
			closes[i] = price
		}
		s := makeSeries(t, closes)
		sig := Evaluate(s, calculator.Compute(s), model.FundamentalSnapshot{TrailingPE: 20})
		if sig.Core.Bullish != 0 || sig.Core.Bearish != 3 {
			t.Errorf("%v: core votes = %+v, want 0 bullish / 3 bearish", price, sig.Core)
		}
		if sig.WithTrend.Bullish != 0 {
			t.Errorf("%v: expected 0 bullish with trend, got %d", price, sig.WithTrend.Bullish)
		}
		if sig.Recommendations.ShortTerm6M != model.ActionSell {
			t.Errorf("%v: 6m = %s, want Sell", price, sig.Recommendations.ShortTerm6M)
		}
		if sig.Recommendations.ShortTerm1Y != model.ActionHold {
			t.Errorf("%v: 1y = %s, want Hold", price, sig.Recommendations.ShortTerm1Y)
		}
		if sig.Recommendations.LongTerm3Y != model.ActionHold {
			t.Errorf("%v: 3y = %s, want Hold", price, sig.Recommendations.LongTerm3Y)
		}
	}
}

func TestEvaluate_RisingPrice(t *testing.T) {
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 100 + 100*float64(i)/249
	}
	s := makeSeries(t, closes)
	sig := Evaluate(s, calculator.Compute(s), model.FundamentalSnapshot{TrailingPE: 25})

	if sig.WithTrend.Bullish < 3 {
		t.Errorf("expected at least 3 bullish votes, got %+v", sig.WithTrend)
	}
	if sig.Recommendations.ShortTerm1Y != model.ActionBuy {
		t.Errorf("1y = %s, want Buy", sig.Recommendations.ShortTerm1Y)
	}
	if sig.Recommendations.LongTerm3Y != model.ActionStrongBuy {
		t.Errorf("3y = %s, want Strong Buy", sig.Recommendations.LongTerm3Y)
	}
	if sig.LongAction != model.ActionStrongBuy {
		t.Errorf("long suggestion = %s, want Strong Buy", sig.LongAction)
	}
}

func TestEvaluate_MissingPE(t *testing.T) {
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 100 + 100*float64(i)/249
	}
	s := makeSeries(t, closes)
	sig := Evaluate(s, calculator.Compute(s), model.FundamentalSnapshot{Missing: true})

	if sig.Recommendations.LongTerm3Y != model.ActionBuy {
		t.Errorf("3y = %s, want Buy without PE", sig.Recommendations.LongTerm3Y)
	}
	if sig.LongAction != model.ActionBuy {
		t.Errorf("long suggestion = %s, want Buy without PE", sig.LongAction)
	}
	if sig.DividendStability != "Low dividend payout" {
		t.Errorf("dividend = %q", sig.DividendStability)
	}
}

func TestEvaluate_EmptySeries(t *testing.T) {
	s := makeSeries(t, nil)
	if sig := Evaluate(s, calculator.Compute(s), model.FundamentalSnapshot{}); sig != nil {
		t.Error("expected nil signal for empty series")
	}
}

func TestCountVotes_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pick := func() model.Column {
		if rng.Intn(5) == 0 {
			return model.Column{math.NaN()}
		}
		return lastOnly(50 + rng.Float64()*100)
	}
	for i := 0; i < 2000; i++ {
		ind := model.IndicatorSet{
			SMA50:      pick(),
			SMA200:     pick(),
			RSI14:      lastOnly(rng.Float64() * 100),
			MACD:       pick(),
			SignalLine: pick(),
		}
		price := 50 + rng.Float64()*100
		v := CountVotes(price, ind)

		if v.Bullish > 4 || v.Bearish > 4 {
			t.Fatalf("tally out of range: %+v", v)
		}
		if total := v.Bullish + v.Bearish; total < 3 || total > 4 {
			t.Fatalf("expected 3 or 4 votes cast, got %d", total)
		}

		oscBearish := 0
		for _, vote := range []model.Vote{voteRSI(ind), voteMACD(ind)} {
			if vote.Side == model.SideBearish {
				oscBearish++
			}
		}
		if oscBearish > 2 {
			t.Fatalf("RSI and MACD cast %d bearish votes", oscBearish)
		}
	}
}

func TestCountVotes_UnavailableAverages(t *testing.T) {
	ind := model.IndicatorSet{
		SMA50:  model.Column{math.NaN()},
		SMA200: model.Column{math.NaN()},
		RSI14:  lastOnly(20),
	}
	v := CountVotes(100, ind)
	if v.Bullish != 1 || v.Bearish != 3 {
		t.Errorf("votes = %+v, want 1 bullish (RSI) / 3 bearish", v)
	}
}

func TestTrendVote(t *testing.T) {
	up := make([]float64, 60)
	for i := range up {
		up[i] = float64(100 + i)
	}
	if v := TrendVote(up); v.Side != model.SideBullish {
		t.Errorf("rising closes: got %s", v.Side)
	}

	down := make([]float64, 45)
	for i := range down {
		down[i] = float64(200 - i)
	}
	if v := TrendVote(down); v.Side != model.SideBearish {
		t.Errorf("falling closes: got %s", v.Side)
	}

	if v := TrendVote(up[:30]); v.Side != model.SideBearish {
		t.Errorf("no prior window: got %s", v.Side)
	}
}

func TestLadders(t *testing.T) {
	sixMonth := []struct {
		votes model.Votes
		want  model.Action
	}{
		{model.Votes{Bullish: 5}, model.ActionBuy},
		{model.Votes{Bullish: 4, Bearish: 1}, model.ActionBuy},
		{model.Votes{Bullish: 3, Bearish: 2}, model.ActionAccumulate},
		{model.Votes{Bullish: 1, Bearish: 4}, model.ActionSell},
		{model.Votes{Bullish: 2, Bearish: 3}, model.ActionHold},
	}
	for _, tt := range sixMonth {
		if got := SixMonth(tt.votes); got != tt.want {
			t.Errorf("SixMonth(%+v) = %s, want %s", tt.votes, got, tt.want)
		}
	}

	if got := OneYear(model.Votes{Bullish: 3}, 90, 100, true); got != model.ActionHold {
		t.Errorf("bullish votes below SMA200 should hold, got %s", got)
	}
	if got := OneYear(model.Votes{Bearish: 3}, 90, 100, true); got != model.ActionSell {
		t.Errorf("expected Sell, got %s", got)
	}
	if got := OneYear(model.Votes{Bullish: 4}, 110, 0, false); got != model.ActionHold {
		t.Errorf("unavailable SMA200 should hold, got %s", got)
	}

	threeYear := []struct {
		price, sma, pe float64
		want           model.Action
	}{
		{110, 100, 25, model.ActionStrongBuy},
		{110, 100, 30, model.ActionBuy},
		{110, 100, 0, model.ActionBuy},
		{79, 100, 10, model.ActionSell},
		{90, 100, 10, model.ActionHold},
	}
	for _, tt := range threeYear {
		if got := ThreeYear(tt.price, tt.sma, true, tt.pe); got != tt.want {
			t.Errorf("ThreeYear(%v, %v, pe=%v) = %s, want %s", tt.price, tt.sma, tt.pe, got, tt.want)
		}
	}

	short := []struct {
		votes model.Votes
		want  model.Action
	}{
		{model.Votes{Bullish: 3, Bearish: 1}, model.ActionBuy},
		{model.Votes{Bullish: 2, Bearish: 1}, model.ActionBuyOnDips},
		{model.Votes{Bullish: 1, Bearish: 3}, model.ActionSell},
		{model.Votes{Bullish: 1, Bearish: 2}, model.ActionHold},
	}
	for _, tt := range short {
		if got := ShortSuggestion(tt.votes); got != tt.want {
			t.Errorf("ShortSuggestion(%+v) = %s, want %s", tt.votes, got, tt.want)
		}
	}

	if got := LongSuggestion(110, 100, true, 0); got != model.ActionBuy {
		t.Errorf("zero PE must not reach Strong Buy, got %s", got)
	}
	if got := LongSuggestion(110, 100, true, 45); got != model.ActionStrongBuy {
		t.Errorf("expected Strong Buy, got %s", got)
	}
}
