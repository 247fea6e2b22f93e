package charts

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/evanchen13/wb-sustainability/internal/models"
	"github.com/evanchen13/wb-sustainability/internal/structures"
)

type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat maps a query value to a format; empty means PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("unsupported image format %q", s)
	}
}

func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

type Renderer interface {
	Render(w io.Writer, fig models.Figure, format Format) error
}

// NewRenderer selects the renderer named by dashboard.renderer.
func NewRenderer(conf *structures.Config) Renderer {
	width, height := conf.Dashboard.ChartWidth, conf.Dashboard.ChartHeight
	if conf.Dashboard.Renderer == "gonum" {
		return NewGonumRenderer(width, height)
	}
	return NewGoChartRenderer(width, height)
}

var palette = []string{
	"1f77b4", "ff7f0e", "2ca02c", "d62728", "9467bd",
	"8c564b", "e377c2", "7f7f7f", "bcbd22", "17becf",
}

func fullTitle(l models.Layout) string {
	if l.Subtitle == "" {
		return l.Title
	}
	return l.Title + " - " + l.Subtitle
}

// valueRange spans every value with padding so single points still render.
func valueRange(values ...[]float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, vs := range values {
		for _, v := range vs {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 0, false
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = math.Max(math.Abs(lo)*0.1, 1)
	}
	return lo - pad, hi + pad, true
}
