package model

// ObservationKind tags a qualitative statement.
type ObservationKind string

const (
	ObsMAPosition ObservationKind = "ma_position"
	ObsMACross    ObservationKind = "ma_cross"
	ObsRSIZone    ObservationKind = "rsi_zone"
	ObsMACDBias   ObservationKind = "macd_bias"
	ObsVolatility ObservationKind = "volatility"
	ObsVolume     ObservationKind = "volume"
)

// Observation is one display line derived from the indicators.
type Observation struct {
	Kind  ObservationKind
	Text  string
	Value *float64
}

// EnhancedObservations carries the narrative fields and the numbers behind them.
type EnhancedObservations struct {
	Trend               string `json:"trend"`
	VolumeSurge         string `json:"volume_surge"`
	BreakoutPossibility string `json:"breakout_possibility"`
	ProfitBookingZone   string `json:"profit_booking_zone"`

	TrendChangePct     float64 `json:"-"`
	VolumeSurgePct     float64 `json:"-"`
	Resistance         float64 `json:"-"`
	Support            float64 `json:"-"`
	UpsideTarget       float64 `json:"-"`
	StrongUpsideTarget float64 `json:"-"`
	ProfitBooking      float64 `json:"-"`
}

// Side is the direction a single check votes for.
type Side int

const (
	SideNone Side = iota
	SideBullish
	SideBearish
)

func (s Side) String() string {
	switch s {
	case SideBullish:
		return "bullish"
	case SideBearish:
		return "bearish"
	default:
		return "none"
	}
}

// Vote is the outcome of one binary check.
type Vote struct {
	Name       string
	Side       Side
	Commentary string
}

// Votes tallies bullish and bearish signals.
type Votes struct {
	Bullish int
	Bearish int
}

// Add counts v on its side. SideNone counts nothing.
func (v Votes) Add(vote Vote) Votes {
	switch vote.Side {
	case SideBullish:
		v.Bullish++
	case SideBearish:
		v.Bearish++
	}
	return v
}

// Horizon is an analysis time frame.
type Horizon string

const (
	HorizonShort6M Horizon = "short_6m"
	HorizonShort1Y Horizon = "short_1y"
	HorizonLong3Y  Horizon = "long_3y"
)

// Action is a recommended stance.
type Action string

const (
	ActionStrongBuy  Action = "Strong Buy"
	ActionBuy        Action = "Buy"
	ActionBuyOnDips  Action = "Buy on dips"
	ActionAccumulate Action = "Hold with potential to accumulate on dips"
	ActionHold       Action = "Hold"
	ActionSell       Action = "Sell"
)

// Recommendation pairs a horizon with an action.
type Recommendation struct {
	Horizon Horizon
	Action  Action
}

// TargetSet holds price levels derived from the latest close.
type TargetSet struct {
	BuyZone         float64
	Targets         []float64
	LongTarget      float64
	StopLoss        float64
	SupportLevel    float64
	ResistanceLevel float64
}

// TradeSignal is the full output of the recommender for one series.
type TradeSignal struct {
	Votes             []Vote // indicator checks, then the trend check
	Core              Votes  // indicator checks only
	WithTrend         Votes
	Recommendations   RecommendationSet
	ShortAction       Action
	LongAction        Action
	Targets           TargetSet
	DividendStability string
}
