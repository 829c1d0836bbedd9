package model

import "time"

// HistoricalPerformance holds formatted returns per look-back period.
type HistoricalPerformance struct {
	OneDay     string `json:"1d"`
	OneWeek    string `json:"1w"`
	OneMonth   string `json:"1m"`
	ThreeMonth string `json:"3m"`
	OneYear    string `json:"1y"`
	ThreeYear  string `json:"3y"`
}

// FundamentalsSummary is the report view of a FundamentalSnapshot.
type FundamentalsSummary struct {
	MarketCapCr   float64 `json:"market_cap_cr"`
	PERatio       float64 `json:"pe_ratio"`
	EPS           float64 `json:"eps"`
	DividendYield string  `json:"dividend_yield"`
	SectorPE      float64 `json:"sector_pe"`
	PriceToBook   float64 `json:"price_to_book"`
	High52W       float64 `json:"52_week_high"`
	Low52W        float64 `json:"52_week_low"`
}

type MovingAverages struct {
	SMA50  *float64 `json:"sma_50"`
	SMA200 *float64 `json:"sma_200"`
	EMA20  *float64 `json:"ema_20"`
}

type IndicatorSummary struct {
	RSI            *float64          `json:"rsi"`
	MACD           MACDBias          `json:"macd"`
	BollingerBands BollingerPosition `json:"bollinger_bands"`
}

type TechnicalAnalysis struct {
	MovingAverages MovingAverages   `json:"moving_averages"`
	Indicators     IndicatorSummary `json:"indicators"`
}

type ShortTermSuggestion struct {
	Duration string    `json:"duration"`
	Action   Action    `json:"action"`
	BuyZone  float64   `json:"buy_zone"`
	Target   []float64 `json:"target"`
	StopLoss float64   `json:"stop_loss"`
}

type LongTermSuggestion struct {
	Duration          string  `json:"duration"`
	Action            Action  `json:"action"`
	Target            float64 `json:"target"`
	DividendStability string  `json:"dividend_stability"`
}

type BuySellSuggestions struct {
	ShortTerm ShortTermSuggestion `json:"short_term"`
	LongTerm  LongTermSuggestion  `json:"long_term"`
}

// RecommendationSet holds one action per horizon.
type RecommendationSet struct {
	ShortTerm6M Action `json:"short_term_6m"`
	ShortTerm1Y Action `json:"short_term_1y"`
	LongTerm3Y  Action `json:"long_term_3y"`
}

// All returns the set as horizon-tagged recommendations.
func (r RecommendationSet) All() []Recommendation {
	return []Recommendation{
		{Horizon: HorizonShort6M, Action: r.ShortTerm6M},
		{Horizon: HorizonShort1Y, Action: r.ShortTerm1Y},
		{Horizon: HorizonLong3Y, Action: r.LongTerm3Y},
	}
}

// PeerPerformance is one similar company's one-year return.
type PeerPerformance struct {
	Symbol        string  `json:"symbol"`
	Performance1Y string  `json:"performance_1y"`
	Return        float64 `json:"-"`
}

// Report is the terminal aggregate of one analysis run.
type Report struct {
	Symbol                  string                `json:"symbol"`
	Name                    string                `json:"name"`
	LastPrice               float64               `json:"last_price"`
	HistoricalPerformance   HistoricalPerformance `json:"historical_performance"`
	Fundamentals            FundamentalsSummary   `json:"fundamentals"`
	TechnicalAnalysis       TechnicalAnalysis     `json:"technical_analysis"`
	KeyObservations         []string              `json:"key_observations"`
	EnhancedKeyObservations EnhancedObservations  `json:"enhanced_key_observations"`
	BuySellSuggestions      BuySellSuggestions    `json:"buy_sell_suggestions"`
	Recommendations         RecommendationSet     `json:"recommendations"`
	SimilarCompanies        []PeerPerformance     `json:"similar_companies"`

	Observations        []Observation `json:"-"`
	Targets             TargetSet     `json:"-"`
	Votes               Votes         `json:"-"`
	TrendVotes          Votes         `json:"-"`
	PeerErrors          []error       `json:"-"`
	FundamentalsMissing bool          `json:"-"`
	GeneratedAt         time.Time     `json:"-"`
}
