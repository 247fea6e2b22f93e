package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/evanchen13/wb-sustainability/internal/providers"
	"github.com/evanchen13/wb-sustainability/internal/services"
	"github.com/evanchen13/wb-sustainability/internal/store"
	json "github.com/goccy/go-json"
)

type HealthController struct {
	service   services.DashboardServiceInterface
	cache     providers.CacheProviderInterface
	archive   store.ArchiveInterface
	startTime time.Time
	now       func() time.Time
}

type healthResponse struct {
	Status         string  `json:"status"`
	Uptime         string  `json:"uptime"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
	LastRefresh    string  `json:"last_refresh,omitempty"`
	DataAgeSeconds float64 `json:"data_age_seconds,omitempty"`
	Observations   int     `json:"observations"`
	Archived       int     `json:"archived_observations,omitempty"`

	Cache providers.CacheStats `json:"cache"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	now := hc.now()
	uptime := now.Sub(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Cache:         hc.cache.Stats(),
	}
	// an unreachable archive is left out, the dashboard itself still works
	ctx, cancel := context.WithTimeout(r.Context(), archiveCountTimeout)
	defer cancel()
	if n, err := hc.archive.Count(ctx); err == nil {
		resp.Archived = n
	}
	if d := hc.service.Current(); !d.Empty() {
		resp.LastRefresh = d.FetchedAt.UTC().Format(time.RFC3339)
		resp.DataAgeSeconds = now.Sub(d.FetchedAt).Seconds()
		resp.Observations = d.Renewable.Len() + d.CO2.Len()
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

const archiveCountTimeout = 2 * time.Second

func NewHealthController(service services.DashboardServiceInterface, cache providers.CacheProviderInterface, archive store.ArchiveInterface) *HealthController {
	return &HealthController{
		service:   service,
		cache:     cache,
		archive:   archive,
		startTime: time.Now(),
		now:       time.Now,
	}
}
