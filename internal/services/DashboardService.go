package services

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/evanchen13/wb-sustainability/internal/charts"
	"github.com/evanchen13/wb-sustainability/internal/models"
	"github.com/evanchen13/wb-sustainability/internal/providers"
	"github.com/evanchen13/wb-sustainability/internal/structures"
	"github.com/evanchen13/wb-sustainability/internal/worldbank"
	"github.com/goccy/go-json"
)

const (
	datasetKey       = providers.CacheKindDataset
	figuresKeyPrefix = providers.CacheKindFigures + ":"
)

type DashboardServiceInterface interface {
	Dataset(ctx context.Context) (*models.Dataset, error)
	Figures(ctx context.Context) ([]models.Figure, models.YearSpan, error)
	// Figure also returns the version of the dataset the figure was built from.
	Figure(ctx context.Context, id string) (models.Figure, int64, error)
	Table(ctx context.Context) (*models.Table, error)
	Refresh(ctx context.Context) (*models.Dataset, error)
	Restore(d *models.Dataset)
	Current() *models.Dataset
}

// ArchiverInterface receives every freshly fetched dataset.
type ArchiverInterface interface {
	SaveDataset(ctx context.Context, d *models.Dataset) error
}

type cachedFigures struct {
	Figures []models.Figure `json:"figures"`
	Span    models.YearSpan `json:"span"`
}

type DashboardService struct {
	fetcher    worldbank.FetcherInterface
	builder    *charts.Builder
	cache      providers.CacheProviderInterface
	archive    ArchiverInterface
	logger     providers.Logger
	indicators structures.IndicatorCodes

	refreshMu sync.Mutex
	mu        sync.RWMutex
	current   *models.Dataset
}

func NewDashboardService(
	conf *structures.Config,
	fetcher worldbank.FetcherInterface,
	builder *charts.Builder,
	cache providers.CacheProviderInterface,
	archive ArchiverInterface,
	logger providers.Logger,
) DashboardServiceInterface {
	return &DashboardService{
		fetcher:    fetcher,
		builder:    builder,
		cache:      cache,
		archive:    archive,
		logger:     logger,
		indicators: conf.WorldBank.Indicators,
	}
}

// Dataset returns the cached dataset or fetches a new one. Concurrent
// misses wait for a single fetch.
func (ds *DashboardService) Dataset(ctx context.Context) (*models.Dataset, error) {
	if d, ok := ds.cachedDataset(); ok {
		return d, nil
	}

	ds.refreshMu.Lock()
	defer ds.refreshMu.Unlock()

	if d, ok := ds.cachedDataset(); ok {
		return d, nil
	}
	return ds.refreshLocked(ctx)
}

// Refresh fetches both indicators regardless of the cache.
func (ds *DashboardService) Refresh(ctx context.Context) (*models.Dataset, error) {
	ds.refreshMu.Lock()
	defer ds.refreshMu.Unlock()
	return ds.refreshLocked(ctx)
}

func (ds *DashboardService) refreshLocked(ctx context.Context) (*models.Dataset, error) {
	start := time.Now()

	renewable, err := ds.fetcher.FetchIndicator(ctx, ds.indicators.Renewable)
	if err != nil {
		return nil, err
	}
	co2, err := ds.fetcher.FetchIndicator(ctx, ds.indicators.CO2)
	if err != nil {
		return nil, err
	}

	d := &models.Dataset{
		FetchedAt: time.Now().UTC(),
		Renewable: renewable,
		CO2:       co2,
	}
	ds.Restore(d)
	ds.logger.Infof(providers.TypeFetch, "Dataset refreshed: %d renewable, %d co2 observations in %s",
		renewable.Len(), co2.Len(), time.Since(start))

	if err := ds.archive.SaveDataset(ctx, d); err != nil {
		ds.logger.Errorf(providers.TypeApp, "Archive dataset: %v", err)
	}
	return d, nil
}

// Restore installs a dataset as the current one, e.g. from a snapshot.
func (ds *DashboardService) Restore(d *models.Dataset) {
	if d == nil {
		return
	}
	ds.mu.Lock()
	ds.current = d
	ds.mu.Unlock()

	// The cache holds only the version of the current dataset; its TTL
	// decides when the next read fetches again.
	ds.cache.Set(datasetKey, []byte(strconv.FormatInt(d.Version(), 10)))
}

func (ds *DashboardService) Current() *models.Dataset {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.current
}

func (ds *DashboardService) cachedDataset() (*models.Dataset, bool) {
	b, ok := ds.cache.Get(datasetKey)
	if !ok {
		return nil, false
	}
	d := ds.Current()
	if d == nil || string(b) != strconv.FormatInt(d.Version(), 10) {
		return nil, false
	}
	return d, true
}

func (ds *DashboardService) Figures(ctx context.Context) ([]models.Figure, models.YearSpan, error) {
	d, err := ds.Dataset(ctx)
	if err != nil {
		return nil, models.YearSpan{}, err
	}
	return ds.figuresOf(d)
}

func (ds *DashboardService) figuresOf(d *models.Dataset) ([]models.Figure, models.YearSpan, error) {

	key := figuresKeyPrefix + strconv.FormatInt(d.Version(), 10)
	if b, ok := ds.cache.Get(key); ok {
		var cf cachedFigures
		if err := json.Unmarshal(b, &cf); err == nil {
			return cf.Figures, cf.Span, nil
		}
	}

	figures, span, err := ds.builder.Build(d)
	if err != nil {
		return nil, span, fmt.Errorf("build figures: %w", err)
	}
	if b, err := json.Marshal(cachedFigures{Figures: figures, Span: span}); err == nil {
		ds.cache.Set(key, b)
	}
	return figures, span, nil
}

func (ds *DashboardService) Figure(ctx context.Context, id string) (models.Figure, int64, error) {
	if !slices.Contains(charts.FigureIDs, id) {
		return models.Figure{}, 0, fmt.Errorf("%w: %s", charts.ErrUnknownFigure, id)
	}
	d, err := ds.Dataset(ctx)
	if err != nil {
		return models.Figure{}, 0, err
	}
	figures, _, err := ds.figuresOf(d)
	if err != nil {
		return models.Figure{}, 0, err
	}
	for _, f := range figures {
		if f.ID == id {
			return f, d.Version(), nil
		}
	}
	return models.Figure{}, 0, fmt.Errorf("%w: %s", charts.ErrUnknownFigure, id)
}

func (ds *DashboardService) Table(ctx context.Context) (*models.Table, error) {
	d, err := ds.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return d.Table(), nil
}
