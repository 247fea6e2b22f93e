package worldbank

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/evanchen13/wb-sustainability/internal/models"
	"github.com/evanchen13/wb-sustainability/internal/providers"
	"github.com/evanchen13/wb-sustainability/internal/structures"
)

var (
	// ErrAPI is returned when the API answers with an error message or status.
	ErrAPI       = errors.New("world bank api error")
	errMalformed = errors.New("malformed response envelope")
)

func messageError(msgs []apiMessage) error {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, strings.TrimSpace(m.Key+": "+m.Value))
	}
	return fmt.Errorf("%w: %s", ErrAPI, strings.Join(parts, "; "))
}

type FetcherInterface interface {
	FetchIndicator(ctx context.Context, indicatorID string) (models.Series, error)
}

type Client struct {
	http     *http.Client
	conf     *structures.WorldBankConfig
	excluded map[string]struct{}
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

func NewClient(httpClient *http.Client, conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) *Client {
	excluded := make(map[string]struct{}, len(conf.WorldBank.ExcludedCountries))
	for _, name := range conf.WorldBank.ExcludedCountries {
		excluded[name] = struct{}{}
	}
	return &Client{
		http:     httpClient,
		conf:     &conf.WorldBank,
		excluded: excluded,
		logger:   logger,
		metrics:  metrics,
	}
}

// FetchIndicator downloads every page of an indicator and returns its
// non-null country observations.
func (c *Client) FetchIndicator(ctx context.Context, indicatorID string) (models.Series, error) {
	start := time.Now()
	series, err := c.fetch(ctx, indicatorID)
	c.metrics.ObserveFetchDuration(indicatorID, time.Since(start))
	if err != nil {
		c.metrics.IncFetchErrors(indicatorID)
		c.logger.Errorf(providers.TypeFetch, "Fetch %s failed: %v", indicatorID, err)
		return models.Series{}, fmt.Errorf("fetch indicator %s: %w", indicatorID, err)
	}
	c.metrics.SetObservations(indicatorID, series.Len())
	c.logger.Debugf(providers.TypeFetch, "Fetched %s: %d observations in %s", indicatorID, series.Len(), time.Since(start))
	return series, nil
}

func (c *Client) fetch(ctx context.Context, indicatorID string) (models.Series, error) {
	ind := models.Indicator{ID: indicatorID}
	var obs []models.Observation

	for n, pages := 1, 1; n <= pages; n++ {
		p, err := c.getPage(ctx, indicatorID, n)
		if err != nil {
			return models.Series{}, err
		}
		if int(p.Meta.Pages) > pages {
			pages = int(p.Meta.Pages)
		}
		for _, r := range p.Records {
			if ind.Name == "" && r.Indicator.Value != "" {
				ind.Name = r.Indicator.Value
			}
			if o, ok := c.observation(r); ok {
				obs = append(obs, o)
			}
		}
	}

	return models.NewSeries(ind, obs), nil
}

// observation keeps zero values; only null marks a missing measurement.
func (c *Client) observation(r record) (models.Observation, bool) {
	if r.Value == nil {
		return models.Observation{}, false
	}
	if _, skip := c.excluded[r.Country.Value]; skip {
		return models.Observation{}, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(r.Date))
	if err != nil {
		return models.Observation{}, false
	}
	code := r.CountryISO3Code
	if code == "" {
		code = r.Country.ID
	}
	if code == "" {
		return models.Observation{}, false
	}
	return models.Observation{
		CountryCode: code,
		CountryName: r.Country.Value,
		Year:        year,
		Value:       *r.Value,
	}, true
}

func (c *Client) pageURL(indicatorID string, n int) string {
	codes := make([]string, 0, len(c.conf.Countries))
	for _, code := range c.conf.Countries {
		codes = append(codes, url.PathEscape(code))
	}
	countries := strings.Join(codes, ";")
	if countries == "" {
		countries = "all"
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("per_page", strconv.Itoa(c.conf.PerPage))
	q.Set("page", strconv.Itoa(n))
	if c.conf.DateFrom > 0 && c.conf.DateTo > 0 {
		q.Set("date", fmt.Sprintf("%d:%d", c.conf.DateFrom, c.conf.DateTo))
	}

	return fmt.Sprintf("%s/country/%s/indicator/%s?%s",
		strings.TrimRight(c.conf.BaseURL, "/"),
		countries,
		url.PathEscape(indicatorID),
		q.Encode())
}

func (c *Client) getPage(ctx context.Context, indicatorID string, n int) (*page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pageURL(indicatorID, n), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page %d: %w", n, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read page %d: %w", n, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrAPI, resp.StatusCode, truncate(string(body), 200))
	}

	p, err := decodePage(body)
	if err != nil {
		return nil, fmt.Errorf("decode page %d: %w", n, err)
	}
	return p, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
