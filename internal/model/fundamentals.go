package model

// FundamentalSnapshot is a point-in-time view of company metrics.
// Absent fields are zero; Missing is set when the feed returned nothing at all.
type FundamentalSnapshot struct {
	Name             string
	MarketCap        float64
	TrailingPE       float64
	TrailingEPS      float64
	DividendYield    float64 // fraction, 0.015 = 1.5%
	PriceToBook      float64
	FiftyTwoWeekHigh float64
	FiftyTwoWeekLow  float64
	Sector           string
	Missing          bool
}

// HasPE reports whether a usable trailing PE is present.
func (f FundamentalSnapshot) HasPE() bool { return f.TrailingPE > 0 }
