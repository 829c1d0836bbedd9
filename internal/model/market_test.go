package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bar(day int, price float64) PriceBar {
	return PriceBar{
		Date:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day),
		Open:   price,
		High:   price + 1,
		Low:    price - 1,
		Close:  price,
		Volume: 500,
	}
}

func TestNewPriceSeries_Validation(t *testing.T) {
	zeroClose := bar(1, 10)
	zeroClose.Close = 0
	negativeLow := bar(1, 10)
	negativeLow.Low = -2

	tests := []struct {
		name    string
		bars    []PriceBar
		wantErr bool
	}{
		{name: "valid", bars: []PriceBar{bar(0, 10), bar(1, 11), bar(3, 12)}},
		{name: "empty", bars: nil},
		{name: "out of order", bars: []PriceBar{bar(2, 10), bar(1, 11)}, wantErr: true},
		{name: "duplicate date", bars: []PriceBar{bar(0, 10), bar(1, 11), bar(1, 12)}, wantErr: true},
		{name: "zero close", bars: []PriceBar{bar(0, 10), zeroClose}, wantErr: true},
		{name: "negative low", bars: []PriceBar{bar(0, 10), negativeLow}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewPriceSeries("ABC", tt.bars)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSeries)
				assert.Zero(t, s.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.bars), s.Len())
			assert.Equal(t, "ABC", s.Symbol)
		})
	}
}

func TestPriceSeries_DoesNotAliasInput(t *testing.T) {
	bars := []PriceBar{bar(0, 10), bar(1, 11)}
	s, err := NewPriceSeries("ABC", bars)
	require.NoError(t, err)

	bars[1].Close = 999
	assert.Equal(t, 11.0, s.Last().Close)
}

func TestPriceSeries_AccessorsReturnCopies(t *testing.T) {
	s, err := NewPriceSeries("ABC", []PriceBar{bar(0, 10), bar(1, 11)})
	require.NoError(t, err)

	closes := s.Closes()
	closes[0] = 999
	assert.Equal(t, []float64{10, 11}, s.Closes())

	all := s.Bars()
	all[0].High = 999
	assert.Equal(t, 11.0, s.Bar(0).High)

	assert.Equal(t, []float64{11, 12}, s.Highs())
	assert.Equal(t, []float64{9, 10}, s.Lows())
	assert.Equal(t, []float64{500, 500}, s.Volumes())
}
