package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/evanchen13/wb-sustainability/internal/structures"
	"github.com/spf13/viper"
)

// DefaultExcludedCountries lists World Bank aggregates that are not countries.
var DefaultExcludedCountries = []string{
	"Arab World",
	"Central Europe and the Baltics",
	"Caribbean small states",
	"East Asia & Pacific (excluding high income)",
	"Early-demographic dividend",
	"East Asia & Pacific",
	"Europe & Central Asia (excluding high income)",
	"Europe & Central Asia",
	"Euro area",
	"European Union",
	"Fragile and conflict affected situations",
	"High income",
	"Heavily indebted poor countries (HIPC)",
	"IBRD only",
	"IDA & IBRD total",
	"IDA total",
	"IDA blend",
	"IDA only",
	"Not classified",
	"Latin America & Caribbean (excluding high income)",
	"Latin America & Caribbean",
	"Least developed countries: UN classification",
	"Low income",
	"Lower middle income",
	"Low & middle income",
	"Late-demographic dividend",
	"Middle East & North Africa",
	"Middle income",
	"Middle East & North Africa (excluding high income)",
	"North America",
	"OECD members",
	"Other small states",
	"Pre-demographic dividend",
	"Pacific island small states",
	"Post-demographic dividend",
	"Sub-Saharan Africa (excluding high income)",
	"Sub-Saharan Africa",
	"Small states",
	"East Asia & Pacific (IDA & IBRD countries)",
	"Europe & Central Asia (IDA & IBRD countries)",
	"Latin America & the Caribbean (IDA & IBRD countries)",
	"Middle East & North Africa (IDA & IBRD countries)",
	"South Asia (IDA & IBRD)",
	"Sub-Saharan Africa (IDA & IBRD countries)",
	"Upper middle income",
	"World",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 3001)
	v.SetDefault("persistence.filePath", "/tmp/wbd-snapshot.zst")
	v.SetDefault("persistence.saveInterval", 10*time.Minute)
	v.SetDefault("persistence.compression", "better")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "/tmp")
	v.SetDefault("worldBank.baseURL", "https://api.worldbank.org/v2")
	v.SetDefault("worldBank.timeout", 30*time.Second)
	v.SetDefault("worldBank.perPage", 30000)
	v.SetDefault("worldBank.countries", []string{"all"})
	v.SetDefault("worldBank.indicators.renewable", "EG.FEC.RNEW.ZS")
	v.SetDefault("worldBank.indicators.co2", "EN.ATM.CO2E.PC")
	v.SetDefault("worldBank.excludedCountries", DefaultExcludedCountries)
	v.SetDefault("dashboard.title", "World Bank Sustainability Dashboard")
	v.SetDefault("dashboard.topEconomies", []string{"USA", "CHN", "JPN", "DEU", "GBR"})
	v.SetDefault("dashboard.topN", 5)
	v.SetDefault("dashboard.renderer", "gochart")
	v.SetDefault("dashboard.chartWidth", 640)
	v.SetDefault("dashboard.chartHeight", 400)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 64)
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("store.backend", "none")
	v.SetDefault("metrics.enabled", true)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	_ = v.BindEnv("logger.level", "WBD_LOG_LEVEL")
	_ = v.BindEnv("webServer.port", "WBD_PORT")
	_ = v.BindEnv("worldBank.baseURL", "WBD_API_URL")
	_ = v.BindEnv("cache.enabled", "WBD_CACHE_ENABLED")
	_ = v.BindEnv("cache.ttl", "WBD_CACHE_TTL")
	_ = v.BindEnv("store.backend", "WBD_STORE_BACKEND")
	_ = v.BindEnv("store.dsn", "WBD_STORE_DSN")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "WorldBankSustainabilityDashboard"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
