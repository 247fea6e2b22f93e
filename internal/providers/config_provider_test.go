package providers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/evanchen13/wb-sustainability/internal/structures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYaml = `
webServer:
  port: 8080
logger:
  dir: /tmp
dashboard:
  topEconomies: [USA, DEU]
  renderer: gonum
cache:
  ttl: 15m
`

func writeConfig(t *testing.T, body string) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestNewConfigProvider_AppliesDefaultsAndFile(t *testing.T) {
	path := writeConfig(t, minimalYaml)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, 8080, conf.WebServer.Port)
	assert.Equal(t, "0.0.0.0", conf.WebServer.Host)
	assert.Equal(t, []string{"USA", "DEU"}, conf.Dashboard.TopEconomies)
	assert.Equal(t, "gonum", conf.Dashboard.Renderer)
	assert.Equal(t, 15*time.Minute, conf.Cache.TTL)
	assert.Equal(t, "EG.FEC.RNEW.ZS", conf.WorldBank.Indicators.Renewable)
	assert.Equal(t, "EN.ATM.CO2E.PC", conf.WorldBank.Indicators.CO2)
	assert.Contains(t, conf.WorldBank.ExcludedCountries, "World")
	assert.True(t, conf.Debug)
	assert.Equal(t, path, conf.Path)
}

func TestNewConfigProvider_EnvOverride(t *testing.T) {
	path := writeConfig(t, minimalYaml)
	t.Setenv("WBD_PORT", "9090")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, 9090, conf.WebServer.Port)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: "/nonexistent/config.yaml"})
	assert.Error(t, err)
}

func TestNewConfigProvider_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "dashboard:\n  renderer: ascii\n")
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}
