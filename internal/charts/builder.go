package charts

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/evanchen13/wb-sustainability/internal/models"
	"github.com/evanchen13/wb-sustainability/internal/structures"
)

const (
	RenewableTrendID = "renewable-trend"
	CO2TrendID       = "co2-trend"
	RenewableTopID   = "renewable-top"
	CO2TopID         = "co2-top"
	ScatterID        = "renewable-vs-co2"
)

// FigureIDs lists the dashboard figures in page order.
var FigureIDs = []string{RenewableTrendID, CO2TrendID, RenewableTopID, CO2TopID, ScatterID}

var (
	ErrNoData        = errors.New("no observations for the selected economies")
	ErrNoOverlap     = errors.New("indicator series share no common year")
	ErrUnknownFigure = errors.New("unknown figure")
)

const (
	axisYear      = "Year"
	axisCountry   = "Country"
	axisRenewable = "Renewable % of Total Energy Consumption"
	axisCO2       = "Metric Tons of CO2 Per Capita"
)

type Builder struct {
	topEconomies []string
	topN         int
}

func NewBuilder(conf *structures.Config) *Builder {
	return &Builder{
		topEconomies: conf.Dashboard.TopEconomies,
		topN:         conf.Dashboard.TopN,
	}
}

// CommonSpan returns the year range covered by every top economy in both series.
func (b *Builder) CommonSpan(d *models.Dataset) (models.YearSpan, error) {
	renewable, okR := d.Renewable.ForCountries(b.topEconomies).CommonSpan()
	co2, okC := d.CO2.ForCountries(b.topEconomies).CommonSpan()
	if !okR || !okC {
		return models.YearSpan{}, ErrNoData
	}

	span := models.YearSpan{
		Start: max(renewable.Start, co2.Start),
		End:   min(renewable.End, co2.End),
	}
	if !span.Valid() {
		return span, fmt.Errorf("%w: %d-%d", ErrNoOverlap, span.Start, span.End)
	}
	return span, nil
}

// Build derives all dashboard figures from a dataset.
func (b *Builder) Build(d *models.Dataset) ([]models.Figure, models.YearSpan, error) {
	if d == nil {
		return nil, models.YearSpan{}, ErrNoData
	}
	span, err := b.CommonSpan(d)
	if err != nil {
		return nil, span, err
	}

	trendTitle := "Top " + numberWord(len(b.topEconomies)) + " Economies " + strconv.Itoa(span.Start) + "-" + strconv.Itoa(span.End)
	topTitle := "Top " + numberWord(b.topN) + " Countries in " + strconv.Itoa(span.End)

	figures := []models.Figure{
		{
			ID:   RenewableTrendID,
			Data: b.trendTraces(d.Renewable, span),
			Layout: models.Layout{
				Title:      trendTitle,
				Subtitle:   "Renewable Energy Consumption",
				XAxisTitle: axisYear,
				YAxisTitle: axisRenewable,
			},
		},
		{
			ID:   CO2TrendID,
			Data: b.trendTraces(d.CO2, span),
			Layout: models.Layout{
				Title:      trendTitle,
				Subtitle:   "CO2 Emissions",
				XAxisTitle: axisYear,
				YAxisTitle: axisCO2,
			},
		},
		{
			ID:   RenewableTopID,
			Data: []models.Trace{b.topTrace(d.Renewable, span.End, true)},
			Layout: models.Layout{
				Title:      topTitle,
				Subtitle:   "Renewable Energy Consumption",
				XAxisTitle: axisCountry,
				YAxisTitle: axisRenewable,
			},
		},
		{
			ID:   CO2TopID,
			Data: []models.Trace{b.topTrace(d.CO2, span.End, false)},
			Layout: models.Layout{
				Title:      topTitle,
				Subtitle:   "CO2 Emissions",
				XAxisTitle: axisCountry,
				YAxisTitle: axisCO2,
			},
		},
		{
			ID:   ScatterID,
			Data: []models.Trace{scatterTrace(d, span.End)},
			Layout: models.Layout{
				Title:      "Renewable Energy Consumption vs. CO2 Emissions",
				Subtitle:   "by Country in " + strconv.Itoa(span.End),
				XAxisTitle: axisRenewable,
				YAxisTitle: axisCO2,
			},
		},
	}
	return figures, span, nil
}

// Figure builds a single figure by id.
func (b *Builder) Figure(d *models.Dataset, id string) (models.Figure, error) {
	figures, _, err := b.Build(d)
	if err != nil {
		return models.Figure{}, err
	}
	for _, f := range figures {
		if f.ID == id {
			return f, nil
		}
	}
	return models.Figure{}, fmt.Errorf("%w: %s", ErrUnknownFigure, id)
}

func (b *Builder) trendTraces(s models.Series, span models.YearSpan) []models.Trace {
	groups := s.Between(span.Start, span.End).ByCountry()
	names := s.CountryNames()

	traces := make([]models.Trace, 0, len(b.topEconomies))
	for _, code := range b.topEconomies {
		obs := groups[code]
		if len(obs) == 0 {
			continue
		}
		t := models.Trace{
			Type: models.TraceLines,
			Mode: models.TraceLines,
			Name: displayName(names, code),
			X:    make([]float64, 0, len(obs)),
			Y:    make([]float64, 0, len(obs)),
		}
		for _, o := range obs {
			t.X = append(t.X, float64(o.Year))
			t.Y = append(t.Y, o.Value)
		}
		traces = append(traces, t)
	}
	return traces
}

// topTrace ranks every country at the given year and keeps the first topN.
func (b *Builder) topTrace(s models.Series, year int, descending bool) models.Trace {
	obs := append([]models.Observation(nil), s.ForYear(year).Observations...)
	sort.SliceStable(obs, func(i, j int) bool {
		if obs[i].Value != obs[j].Value {
			if descending {
				return obs[i].Value > obs[j].Value
			}
			return obs[i].Value < obs[j].Value
		}
		return obs[i].CountryName < obs[j].CountryName
	})
	if len(obs) > b.topN {
		obs = obs[:b.topN]
	}

	t := models.Trace{
		Type:   models.TraceBar,
		Name:   s.Indicator.ID,
		Labels: make([]string, 0, len(obs)),
		Y:      make([]float64, 0, len(obs)),
	}
	for _, o := range obs {
		t.Labels = append(t.Labels, nameOrCode(o))
		t.Y = append(t.Y, o.Value)
	}
	return t
}

func scatterTrace(d *models.Dataset, year int) models.Trace {
	table := models.Join(d.Renewable.ForYear(year), d.CO2.ForYear(year)).Complete()

	t := models.Trace{
		Type: "scatter",
		Mode: models.TraceMarkers,
		Name: strconv.Itoa(year),
		X:    make([]float64, 0, table.Len()),
		Y:    make([]float64, 0, table.Len()),
		Text: make([]string, 0, table.Len()),
	}
	for _, r := range table.Records {
		t.X = append(t.X, *r.A)
		t.Y = append(t.Y, *r.B)
		if r.CountryName != "" {
			t.Text = append(t.Text, r.CountryName)
		} else {
			t.Text = append(t.Text, r.CountryCode)
		}
	}
	return t
}

func displayName(names map[string]string, code string) string {
	if n, ok := names[code]; ok {
		return n
	}
	return code
}

func nameOrCode(o models.Observation) string {
	if o.CountryName != "" {
		return o.CountryName
	}
	return o.CountryCode
}

var numberWords = []string{"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten"}

func numberWord(n int) string {
	if n >= 0 && n < len(numberWords) {
		return numberWords[n]
	}
	return strconv.Itoa(n)
}
