package charts

import (
	"fmt"
	"io"

	"github.com/evanchen13/wb-sustainability/internal/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// GonumRenderer draws figures with gonum/plot.
type GonumRenderer struct {
	width  vg.Length
	height vg.Length
}

// NewGonumRenderer takes the image size in pixels.
func NewGonumRenderer(width, height int) *GonumRenderer {
	return &GonumRenderer{
		width:  vg.Length(width) * vg.Inch / 96,
		height: vg.Length(height) * vg.Inch / 96,
	}
}

func (r *GonumRenderer) Render(w io.Writer, fig models.Figure, format Format) error {
	if fig.Empty() {
		return fmt.Errorf("%w: %s", ErrNoData, fig.ID)
	}

	p := plot.New()
	p.Title.Text = fullTitle(fig.Layout)
	p.X.Label.Text = fig.Layout.XAxisTitle
	p.Y.Label.Text = fig.Layout.YAxisTitle
	p.Legend.Top = true

	var err error
	if fig.Data[0].Type == models.TraceBar {
		err = addBars(p, fig.Data[0])
	} else {
		err = addXY(p, fig.Data)
	}
	if err != nil {
		return fmt.Errorf("plot %s: %w", fig.ID, err)
	}

	wt, err := p.WriterTo(r.width, r.height, string(format))
	if err != nil {
		return fmt.Errorf("plot %s: %w", fig.ID, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", fig.ID, err)
	}
	return nil
}

func addXY(p *plot.Plot, traces []models.Trace) error {
	p.Add(plotter.NewGrid())
	for i, t := range traces {
		if len(t.Y) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(t.Y))
		for j := range t.Y {
			pts[j].X = t.X[j]
			pts[j].Y = t.Y[j]
		}

		if t.Mode == models.TraceMarkers {
			sc, err := plotter.NewScatter(pts)
			if err != nil {
				return err
			}
			sc.GlyphStyle.Color = plotutil.Color(i)
			sc.GlyphStyle.Radius = vg.Points(3)
			p.Add(sc)

			if len(t.Text) == len(t.Y) {
				labels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: t.Text})
				if err != nil {
					return err
				}
				p.Add(labels)
			}
			continue
		}

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(0)
		p.Add(line, points)
		p.Legend.Add(t.Name, line, points)
	}
	return nil
}

func addBars(p *plot.Plot, t models.Trace) error {
	bars, err := plotter.NewBarChart(plotter.Values(t.Y), vg.Points(20))
	if err != nil {
		return err
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(t.Labels...)
	p.Y.Min = 0
	return nil
}
