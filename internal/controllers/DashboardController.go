package controllers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/evanchen13/wb-sustainability/internal/charts"
	"github.com/evanchen13/wb-sustainability/internal/models"
	"github.com/evanchen13/wb-sustainability/internal/providers"
	"github.com/evanchen13/wb-sustainability/internal/services"
	"github.com/evanchen13/wb-sustainability/internal/structures"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templatesFS, "templates/dashboard.html"))

type chartView struct {
	ID       string
	Title    string
	Subtitle string
	SVG      template.HTML
}

type pageView struct {
	Title     string
	Span      models.YearSpan
	FetchedAt string
	Charts    []chartView
	Error     string
}

type DashboardController struct {
	logger   providers.Logger
	service  services.DashboardServiceInterface
	renderer charts.Renderer
	title    string
}

func NewDashboardController(conf *structures.Config, logger providers.Logger, service services.DashboardServiceInterface, renderer charts.Renderer) *DashboardController {
	return &DashboardController{
		logger:   logger,
		service:  service,
		renderer: renderer,
		title:    conf.Dashboard.Title,
	}
}

// Index runs the pipeline, or takes its cached result, and answers with the
// page embedding every figure as inline SVG.
func (dc *DashboardController) Index(w http.ResponseWriter, r *http.Request) {
	figures, span, err := dc.service.Figures(r.Context())
	if err != nil {
		dc.logger.Errorf(providers.TypeGet, "dashboard: %s", err)
		dc.render(w, http.StatusBadGateway, pageView{
			Title: dc.title,
			Error: "The World Bank indicator API could not be reached or returned unusable data. Please try again later.",
		})
		return
	}

	view := pageView{
		Title:  dc.title,
		Span:   span,
		Charts: make([]chartView, 0, len(figures)),
	}
	if d := dc.service.Current(); d != nil {
		view.FetchedAt = d.FetchedAt.UTC().Format(time.RFC1123)
	}
	for _, fig := range figures {
		view.Charts = append(view.Charts, dc.chart(fig))
	}
	dc.render(w, http.StatusOK, view)
}

// chart renders one figure; a failure leaves SVG empty so the page shows a placeholder.
func (dc *DashboardController) chart(fig models.Figure) chartView {
	cv := chartView{ID: fig.ID, Title: fig.Layout.Title, Subtitle: fig.Layout.Subtitle}
	var buf bytes.Buffer
	if err := dc.renderer.Render(&buf, fig, charts.FormatSVG); err != nil {
		dc.logger.Warnf(providers.TypeGet, "render %s: %s", fig.ID, err)
		return cv
	}
	cv.SVG = template.HTML(stripXMLProlog(buf.String()))
	return cv
}

func stripXMLProlog(svg string) string {
	if i := strings.Index(svg, "<svg"); i > 0 {
		return svg[i:]
	}
	return svg
}

func (dc *DashboardController) render(w http.ResponseWriter, status int, view pageView) {
	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, view); err != nil {
		dc.logger.Errorf(providers.TypeGet, "template: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
