package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func obs(code string, year int, v float64) Observation {
	return Observation{CountryCode: code, CountryName: code + " name", Year: year, Value: v}
}

func TestNewSeries_SortsByYearThenCountry(t *testing.T) {
	s := NewSeries(Indicator{ID: "X"}, []Observation{
		obs("USA", 2014, 1),
		obs("CHN", 2014, 2),
		obs("USA", 2012, 3),
	})

	require.Equal(t, 3, s.Len())
	assert.Equal(t, Key{"USA", 2012}, s.Observations[0].Key())
	assert.Equal(t, Key{"CHN", 2014}, s.Observations[1].Key())
	assert.Equal(t, Key{"USA", 2014}, s.Observations[2].Key())
}

func TestNewSeries_DuplicateLastWins(t *testing.T) {
	s := NewSeries(Indicator{ID: "X"}, []Observation{
		obs("USA", 2014, 1),
		obs("USA", 2014, 7),
	})

	require.Equal(t, 1, s.Len())
	assert.Equal(t, 7.0, s.Observations[0].Value)
}

func TestSeries_ForCountries(t *testing.T) {
	s := NewSeries(Indicator{ID: "X"}, []Observation{
		obs("USA", 2014, 1),
		obs("FRA", 2014, 2),
		obs("CHN", 2014, 3),
	})

	f := s.ForCountries([]string{"USA", "CHN"})
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, 3, s.Len())
}

func TestSeries_CommonSpan(t *testing.T) {
	s := NewSeries(Indicator{ID: "X"}, []Observation{
		obs("USA", 2010, 1),
		obs("USA", 2015, 1),
		obs("CHN", 2012, 1),
		obs("CHN", 2018, 1),
	})

	span, ok := s.CommonSpan()
	require.True(t, ok)
	assert.Equal(t, YearSpan{Start: 2012, End: 2015}, span)
	assert.True(t, span.Valid())
}

func TestSeries_CommonSpanDisjoint(t *testing.T) {
	s := NewSeries(Indicator{ID: "X"}, []Observation{
		obs("USA", 2001, 1),
		obs("CHN", 2005, 1),
	})

	span, ok := s.CommonSpan()
	require.True(t, ok)
	assert.False(t, span.Valid())
}

func TestSeries_CommonSpanEmpty(t *testing.T) {
	_, ok := Series{}.CommonSpan()
	assert.False(t, ok)
}

func TestSeries_ByCountryOrdersYears(t *testing.T) {
	s := NewSeries(Indicator{ID: "X"}, []Observation{
		obs("USA", 2014, 3),
		obs("USA", 2012, 1),
		obs("USA", 2013, 2),
	})

	g := s.ByCountry()["USA"]
	require.Len(t, g, 3)
	assert.Equal(t, []int{2012, 2013, 2014}, []int{g[0].Year, g[1].Year, g[2].Year})
}
