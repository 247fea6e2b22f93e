package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/evanchen13/wb-sustainability/internal/charts"
	"github.com/evanchen13/wb-sustainability/internal/models"
	"github.com/evanchen13/wb-sustainability/internal/providers"
	"github.com/evanchen13/wb-sustainability/internal/services"
	json "github.com/goccy/go-json"
)

const (
	contentTypeJSON = "application/json"
	unavailableMsg  = "Data temporarily unavailable"
)

type ApiController struct {
	logger   providers.Logger
	service  services.DashboardServiceInterface
	renderer charts.Renderer
	cache    providers.CacheProviderInterface
}

type figuresResponse struct {
	Span    models.YearSpan `json:"span"`
	Figures []models.Figure `json:"figures"`
}

func NewApiController(logger providers.Logger, service services.DashboardServiceInterface, renderer charts.Renderer, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:   logger,
		service:  service,
		renderer: renderer,
		cache:    cache,
	}
}

func writeBody(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// serveFromCacheOrCompute answers from the response cache when the key is
// present and stores freshly computed bodies otherwise.
func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey, contentType string, compute func() ([]byte, error)) error {
	if data, ok := ac.cache.Get(cacheKey); ok {
		writeBody(w, contentType, data)
		return nil
	}

	body, err := compute()
	if err != nil {
		return err
	}
	ac.cache.Set(cacheKey, body)
	writeBody(w, contentType, body)
	return nil
}

func (ac *ApiController) GetFigures(w http.ResponseWriter, r *http.Request) {
	figures, span, err := ac.service.Figures(r.Context())
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "figures: %s", err)
		http.Error(w, unavailableMsg, http.StatusBadGateway)
		return
	}

	gson, err := json.Marshal(figuresResponse{Span: span, Figures: figures})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeBody(w, contentTypeJSON, gson)
}

func (ac *ApiController) GetTable(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year := 0
	if ys := q.Get("year"); ys != "" {
		y, err := strconv.Atoi(ys)
		if err != nil || y <= 0 {
			http.Error(w, "Bad Request: invalid year", http.StatusBadRequest)
			return
		}
		year = y
	}
	complete := q.Get("complete") == "true" || q.Get("complete") == "1"

	table, err := ac.service.Table(r.Context())
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "table: %s", err)
		http.Error(w, unavailableMsg, http.StatusBadGateway)
		return
	}
	if year > 0 {
		table = table.ForYear(year)
	}
	if complete {
		table = table.Complete()
	}

	gson, err := json.Marshal(table)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeBody(w, contentTypeJSON, gson)
}

// GetChart renders one figure as an image. Rendered bytes are cached per
// dataset version, figure and format.
func (ac *ApiController) GetChart(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	format, err := charts.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, "Bad Request: "+err.Error(), http.StatusBadRequest)
		return
	}

	fig, version, err := ac.service.Figure(r.Context(), id)
	switch {
	case errors.Is(err, charts.ErrUnknownFigure):
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	case err != nil:
		ac.logger.Errorf(providers.TypeGet, "chart %s: %s", id, err)
		http.Error(w, unavailableMsg, http.StatusBadGateway)
		return
	}

	key := fmt.Sprintf("%s:%d:%s:%s", providers.CacheKindChart, version, id, format)

	err = ac.serveFromCacheOrCompute(w, key, format.ContentType(), func() ([]byte, error) {
		var buf bytes.Buffer
		if err := ac.renderer.Render(&buf, fig, format); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "render %s: %s", id, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
