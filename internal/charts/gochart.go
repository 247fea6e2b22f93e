package charts

import (
	"fmt"
	"html"
	"io"
	"strconv"

	"github.com/evanchen13/wb-sustainability/internal/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// GoChartRenderer draws figures with go-chart.
type GoChartRenderer struct {
	width  int
	height int
}

func NewGoChartRenderer(width, height int) *GoChartRenderer {
	return &GoChartRenderer{width: width, height: height}
}

func provider(format Format) chart.RendererProvider {
	if format == FormatSVG {
		return chart.SVG
	}
	return chart.PNG
}

// textFor escapes labels for the SVG writer, which emits text verbatim.
// Country names such as "Trinidad & Tobago" come straight from the API.
func textFor(format Format) func(string) string {
	if format == FormatSVG {
		return html.EscapeString
	}
	return func(s string) string { return s }
}

func color(i int) drawing.Color {
	return drawing.ColorFromHex(palette[i%len(palette)])
}

func yearFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.Itoa(int(f))
	}
	return ""
}

func (r *GoChartRenderer) Render(w io.Writer, fig models.Figure, format Format) error {
	if fig.Empty() {
		return fmt.Errorf("%w: %s", ErrNoData, fig.ID)
	}
	if fig.Data[0].Type == models.TraceBar {
		return r.renderBars(w, fig, format)
	}
	return r.renderXY(w, fig, format)
}

func (r *GoChartRenderer) renderXY(w io.Writer, fig models.Figure, format Format) error {
	text := textFor(format)
	var xs, ys [][]float64
	series := make([]chart.Series, 0, len(fig.Data)*2)

	for i, t := range fig.Data {
		if len(t.Y) == 0 {
			continue
		}
		xs = append(xs, t.X)
		ys = append(ys, t.Y)

		style := chart.Style{
			StrokeColor: color(i),
			StrokeWidth: 2,
			DotColor:    color(i),
			DotWidth:    3,
		}
		if t.Mode == models.TraceMarkers {
			style.StrokeWidth = chart.Disabled
			style.DotWidth = 5
		}
		series = append(series, chart.ContinuousSeries{
			Name:    text(t.Name),
			Style:   style,
			XValues: t.X,
			YValues: t.Y,
		})

		if len(t.Text) == len(t.X) {
			ann := chart.AnnotationSeries{Annotations: make([]chart.Value2, 0, len(t.Text))}
			for j, label := range t.Text {
				ann.Annotations = append(ann.Annotations, chart.Value2{XValue: t.X[j], YValue: t.Y[j], Label: text(label)})
			}
			series = append(series, ann)
		}
	}

	xMin, xMax, _ := valueRange(xs...)
	yMin, yMax, _ := valueRange(ys...)

	xAxis := chart.XAxis{
		Name:  text(fig.Layout.XAxisTitle),
		Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
	}
	if fig.Layout.XAxisTitle == axisYear {
		xAxis.ValueFormatter = yearFormatter
	}

	ch := chart.Chart{
		Title:      text(fullTitle(fig.Layout)),
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      xAxis,
		YAxis: chart.YAxis{
			Name:  text(fig.Layout.YAxisTitle),
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
		},
		Series: series,
	}
	if len(fig.Data) > 1 {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}

	if err := ch.Render(provider(format), w); err != nil {
		return fmt.Errorf("render %s: %w", fig.ID, err)
	}
	return nil
}

func (r *GoChartRenderer) renderBars(w io.Writer, fig models.Figure, format Format) error {
	text := textFor(format)
	t := fig.Data[0]
	bars := make([]chart.Value, 0, len(t.Y))
	hi := 0.0
	for i, v := range t.Y {
		label := ""
		if i < len(t.Labels) {
			label = t.Labels[i]
		}
		bars = append(bars, chart.Value{
			Label: text(label),
			Value: v,
			Style: chart.Style{FillColor: color(0), StrokeColor: color(0)},
		})
		hi = max(hi, v)
	}
	if hi == 0 {
		hi = 1
	}

	bc := chart.BarChart{
		Title:      text(fullTitle(fig.Layout)),
		Width:      r.width,
		Height:     r.height,
		BarWidth:   max(r.width/(2*len(bars)+2), 8),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Name:  text(fig.Layout.YAxisTitle),
			Range: &chart.ContinuousRange{Min: 0, Max: hi * 1.1},
		},
		Bars: bars,
	}

	if err := bc.Render(provider(format), w); err != nil {
		return fmt.Errorf("render %s: %w", fig.ID, err)
	}
	return nil
}
