package models

import "sort"

// Indicator identifies a World Bank indicator series.
type Indicator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Observation is a single non-null value of an indicator for a country and year.
type Observation struct {
	CountryCode string  `json:"country_code"`
	CountryName string  `json:"country_name"`
	Year        int     `json:"year"`
	Value       float64 `json:"value"`
}

// Key is the join key of an observation.
type Key struct {
	CountryCode string
	Year        int
}

func (o Observation) Key() Key {
	return Key{CountryCode: o.CountryCode, Year: o.Year}
}

type Series struct {
	Indicator    Indicator     `json:"indicator"`
	Observations []Observation `json:"observations"`
}

// NewSeries builds a series sorted by year, then country code.
// Duplicate (country, year) pairs keep the last observation.
func NewSeries(ind Indicator, obs []Observation) Series {
	index := make(map[Key]int, len(obs))
	out := make([]Observation, 0, len(obs))
	for _, o := range obs {
		if i, ok := index[o.Key()]; ok {
			out[i] = o
			continue
		}
		index[o.Key()] = len(out)
		out = append(out, o)
	}
	sortObservations(out)
	return Series{Indicator: ind, Observations: out}
}

func sortObservations(obs []Observation) {
	sort.SliceStable(obs, func(i, j int) bool {
		if obs[i].Year != obs[j].Year {
			return obs[i].Year < obs[j].Year
		}
		return obs[i].CountryCode < obs[j].CountryCode
	})
}

func (s Series) Len() int {
	return len(s.Observations)
}

// Filter returns a copy of the series holding the observations accepted by keep.
func (s Series) Filter(keep func(Observation) bool) Series {
	out := make([]Observation, 0, len(s.Observations))
	for _, o := range s.Observations {
		if keep(o) {
			out = append(out, o)
		}
	}
	return Series{Indicator: s.Indicator, Observations: out}
}

// ForCountries keeps the observations of the given ISO3 codes.
func (s Series) ForCountries(codes []string) Series {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return s.Filter(func(o Observation) bool {
		_, ok := set[o.CountryCode]
		return ok
	})
}

func (s Series) ForYear(year int) Series {
	return s.Filter(func(o Observation) bool { return o.Year == year })
}

func (s Series) Between(from, to int) Series {
	return s.Filter(func(o Observation) bool { return o.Year >= from && o.Year <= to })
}

// ByCountry groups observations per country code, each group in year order.
func (s Series) ByCountry() map[string][]Observation {
	out := make(map[string][]Observation)
	for _, o := range s.Observations {
		out[o.CountryCode] = append(out[o.CountryCode], o)
	}
	for _, obs := range out {
		sort.SliceStable(obs, func(i, j int) bool { return obs[i].Year < obs[j].Year })
	}
	return out
}

// YearSpan is an inclusive year range.
type YearSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (y YearSpan) Valid() bool {
	return y.Start <= y.End
}

// CommonSpan returns the latest first year and the earliest last year across
// the countries of the series. ok is false for an empty series.
func (s Series) CommonSpan() (span YearSpan, ok bool) {
	groups := s.ByCountry()
	if len(groups) == 0 {
		return YearSpan{}, false
	}
	first := true
	for _, obs := range groups {
		start, end := obs[0].Year, obs[len(obs)-1].Year
		if first {
			span = YearSpan{Start: start, End: end}
			first = false
			continue
		}
		span.Start = max(span.Start, start)
		span.End = min(span.End, end)
	}
	return span, true
}

// CountryNames maps country codes to the names seen in the series.
func (s Series) CountryNames() map[string]string {
	out := make(map[string]string, len(s.Observations))
	for _, o := range s.Observations {
		if o.CountryName != "" {
			out[o.CountryCode] = o.CountryName
		}
	}
	return out
}
