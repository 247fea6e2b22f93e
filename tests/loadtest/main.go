package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"os"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var figureIDs = []string{"renewable-trend", "co2-trend", "renewable-top", "co2-top", "renewable-vs-co2"}

var httpClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConnsPerHost: 256,
		IdleConnTimeout:     time.Minute,
		DialContext: (&net.Dialer{
			Timeout: 3 * time.Second,
		}).DialContext,
	},
}

// sample is one finished request.
type sample struct {
	route   string
	status  int
	latency time.Duration
}

func (s sample) failed() bool {
	return s.status != http.StatusOK
}

// routeStats aggregates samples of one route pattern.
type routeStats struct {
	requests  int
	failures  int
	upstream  int
	latencies []time.Duration
}

type tally map[string]*routeStats

func (t tally) add(s sample) {
	rs := t[s.route]
	if rs == nil {
		rs = &routeStats{}
		t[s.route] = rs
	}
	rs.requests++
	if s.failed() {
		rs.failures++
	}
	if s.status == http.StatusBadGateway {
		rs.upstream++
	}
	rs.latencies = append(rs.latencies, s.latency)
}

func (t tally) merge(other tally) {
	for route, o := range other {
		rs := t[route]
		if rs == nil {
			t[route] = o
			continue
		}
		rs.requests += o.requests
		rs.failures += o.failures
		rs.upstream += o.upstream
		rs.latencies = append(rs.latencies, o.latencies...)
	}
}

type healthSnapshot struct {
	LastRefresh  string `json:"last_refresh"`
	Observations int    `json:"observations"`
	Cache        struct {
		Enabled   bool    `json:"enabled"`
		Entries   int64   `json:"entries"`
		HitRate   float64 `json:"hit_rate"`
		Evictions int64   `json:"evictions"`
	} `json:"cache"`
}

var (
	baseURL    string
	workers    int
	phaseLen   time.Duration
	reqTimeout time.Duration

	headerColor = color.New(color.FgCyan, color.Bold)
	errorColor  = color.New(color.FgRed, color.Bold)
)

func main() {
	flag.StringVar(&baseURL, "url", "http://127.0.0.1:3001", "dashboard base URL")
	flag.IntVar(&workers, "workers", 50, "concurrent workers")
	flag.DurationVar(&phaseLen, "duration", 10*time.Second, "duration of each phase")
	flag.DurationVar(&reqTimeout, "timeout", time.Minute, "per-request timeout")
	flag.Parse()

	_, _ = headerColor.Println("=== wbdash load test ===")
	fmt.Printf("Target: %s | Workers: %d | Phase: %s\n\n", baseURL, workers, phaseLen)

	if err := waitForServer(context.Background(), 6*time.Second); err != nil {
		_, _ = errorColor.Printf("server not ready: %v\n", err)
		os.Exit(1)
	}

	// The first page load on a cold cache fetches both indicators.
	_, _ = headerColor.Println("\n--- Cold page load ---")
	cold := get(context.Background(), "GET /", "/")
	fmt.Printf("  status %d in %s\n", cold.status, fmtDur(cold.latency))
	if cold.failed() {
		_, _ = errorColor.Println("  page load failed, the indicator API may be unreachable")
	}

	_, _ = headerColor.Println("\n--- Page only ---")
	run(func(ctx context.Context, _ *rand.Rand) sample {
		return get(ctx, "GET /", "/")
	})

	_, _ = headerColor.Println("\n--- Mixed reads (20% page, 30% charts, 30% table, 20% figures) ---")
	run(func(ctx context.Context, rng *rand.Rand) sample {
		switch x := rng.Float64(); {
		case x < 0.20:
			return get(ctx, "GET /", "/")
		case x < 0.50:
			return getChart(ctx, rng)
		case x < 0.80:
			return getTable(ctx, rng)
		default:
			return get(ctx, "GET /api/figures", "/api/figures")
		}
	})

	printHealth()
}

func waitForServer(ctx context.Context, within time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, within)
	defer cancel()

	fmt.Print("Waiting for server... ")
	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()
	for {
		if s := get(ctx, "health", "/health"); !s.failed() {
			fmt.Println("OK")
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
	}
}

// run keeps every worker busy until the phase deadline, then merges the
// per-worker tallies.
func run(next func(ctx context.Context, rng *rand.Rand) sample) {
	ctx, cancel := context.WithTimeout(context.Background(), phaseLen)
	defer cancel()

	tallies := make([]tally, workers)
	var wg sync.WaitGroup
	for w := range workers {
		tallies[w] = tally{}
		wg.Add(1)
		go func(own tally, rng *rand.Rand) {
			defer wg.Done()
			for ctx.Err() == nil {
				s := next(ctx, rng)
				// requests cut off by the deadline are not counted
				if ctx.Err() != nil && s.status == 0 {
					return
				}
				own.add(s)
			}
		}(tallies[w], rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(w))))
	}
	wg.Wait()

	total := tally{}
	for _, t := range tallies {
		total.merge(t)
	}
	report(total)
}

func report(total tally) {
	routes := make([]string, 0, len(total))
	for route := range total {
		routes = append(routes, route)
	}
	slices.Sort(routes)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Route", "Reqs", "Failed", "502", "Mean", "P50", "P95", "P99"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var requests, failures int
	rows := make([][]string, 0, len(routes))
	for _, route := range routes {
		rs := total[route]
		requests += rs.requests
		failures += rs.failures
		slices.Sort(rs.latencies)

		failed := strconv.Itoa(rs.failures)
		if rs.failures > 0 {
			failed = errorColor.Sprint(failed)
		}
		rows = append(rows, []string{
			route,
			strconv.Itoa(rs.requests),
			failed,
			strconv.Itoa(rs.upstream),
			fmtDur(mean(rs.latencies)),
			fmtDur(quantile(rs.latencies, 0.50)),
			fmtDur(quantile(rs.latencies, 0.95)),
			fmtDur(quantile(rs.latencies, 0.99)),
		})
	}
	_ = table.Bulk(rows)
	_ = table.Render()

	if requests == 0 {
		return
	}
	fmt.Printf("  %d requests, %d failed (%.1f%%), %.0f req/s\n",
		requests, failures, 100*float64(failures)/float64(requests), float64(requests)/phaseLen.Seconds())
}

func printHealth() {
	ctx, cancel := context.WithTimeout(context.Background(), reqTimeout)
	defer cancel()

	h, err := fetchHealth(ctx)
	if err != nil {
		_, _ = errorColor.Printf("\nhealth: %v\n", err)
		return
	}
	_, _ = headerColor.Println("\n--- Server after load ---")
	fmt.Printf("  last refresh %s, %d observations\n", h.LastRefresh, h.Observations)
	if h.Cache.Enabled {
		fmt.Printf("  cache: %d entries, hit rate %.2f, %d evictions\n", h.Cache.Entries, h.Cache.HitRate, h.Cache.Evictions)
	}
}

func fetchHealth(ctx context.Context) (*healthSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(resp.Status)
	}
	var h healthSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		return nil, fmt.Errorf("decode health: %w", err)
	}
	return &h, nil
}

func get(ctx context.Context, route, path string) sample {
	ctx, cancel := context.WithTimeout(ctx, reqTimeout)
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+path, nil)
	if err != nil {
		return sample{route: route}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return sample{route: route, latency: time.Since(start)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return sample{route: route, status: resp.StatusCode, latency: time.Since(start)}
}

func getChart(ctx context.Context, rng *rand.Rand) sample {
	id := figureIDs[rng.IntN(len(figureIDs))]
	format := "png"
	if rng.IntN(2) == 0 {
		format = "svg"
	}
	return get(ctx, "GET /charts/{id}", "/charts/"+id+"?format="+format)
}

func getTable(ctx context.Context, rng *rand.Rand) sample {
	if rng.IntN(2) == 0 {
		return get(ctx, "GET /api/table", "/api/table")
	}
	return get(ctx, "GET /api/table", fmt.Sprintf("/api/table?year=%d&complete=true", 2000+rng.IntN(15)))
}

func mean(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

// quantile expects d sorted.
func quantile(d []time.Duration, q float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	return d[min(int(float64(len(d))*q), len(d)-1)]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return strconv.FormatInt(d.Microseconds(), 10) + "µs"
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000)
}
