package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
	Compression  string        `yaml:"compression" validate:"in:fastest,default,better,best"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// IndicatorCodes names the two World Bank series the dashboard compares.
type IndicatorCodes struct {
	Renewable string `yaml:"renewable" validate:"required"`
	CO2       string `yaml:"co2" validate:"required"`
}

type WorldBankConfig struct {
	BaseURL           string         `yaml:"baseURL" validate:"required|fullUrl"`
	Timeout           time.Duration  `yaml:"timeout" validate:"required|min:1"`
	PerPage           int            `yaml:"perPage" validate:"required|min:1"`
	Countries         []string       `yaml:"countries" validate:"required"`
	DateFrom          int            `yaml:"dateFrom"`
	DateTo            int            `yaml:"dateTo"`
	Indicators        IndicatorCodes `yaml:"indicators"`
	ExcludedCountries []string       `yaml:"excludedCountries"`
}

type DashboardConfig struct {
	Title        string   `yaml:"title"`
	TopEconomies []string `yaml:"topEconomies" validate:"required"`
	TopN         int      `yaml:"topN" validate:"required|min:1"`
	Renderer     string   `yaml:"renderer" validate:"required|in:gochart,gonum"`
	ChartWidth   int      `yaml:"chartWidth" validate:"required|min:100"`
	ChartHeight  int      `yaml:"chartHeight" validate:"required|min:100"`
}

type RefreshConfig struct {
	Interval time.Duration `yaml:"interval"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type StoreConfig struct {
	Backend string `yaml:"backend" validate:"required|in:none,sqlite,postgresql,mysql"`
	DSN     string `yaml:"dsn"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server          `yaml:"webServer"`
	Persistence Persistence     `yaml:"persistence"`
	Logger      LoggerConfig    `yaml:"logger"`
	WorldBank   WorldBankConfig `yaml:"worldBank"`
	Dashboard   DashboardConfig `yaml:"dashboard"`
	Refresh     RefreshConfig   `yaml:"refresh"`
	Cache       CacheConfig     `yaml:"cache"`
	Store       StoreConfig     `yaml:"store"`
	Metrics     MetricsConfig   `yaml:"metrics"`
}
