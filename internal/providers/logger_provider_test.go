package providers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/evanchen13/wb-sustainability/internal/structures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogTypeByRequestType_POST(t *testing.T) {
	assert.Equal(t, TypePost, GetLogTypeByRequestType("POST"))
}

func TestGetLogTypeByRequestType_GET(t *testing.T) {
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("GET"))
}

func TestGetLogTypeByRequestType_Other(t *testing.T) {
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("PUT"))
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("DELETE"))
}

func TestNewLogProvider_CreatesLogFiles(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)

	logger.Infof(TypeApp, "test message %d", 1)
	logger.Warnf(TypeFetch, "fetch warning")
	logger.Debugf(TypeGet, "dropped below info")
	logger.Close()

	for _, name := range []string{"app.log", "get.log", "post.log", "fetch.log"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	appLog, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(appLog), "test message 1")
	assert.Contains(t, string(appLog), `"type":"app"`)

	fetchLog, err := os.ReadFile(filepath.Join(dir, "fetch.log"))
	require.NoError(t, err)
	assert.Contains(t, string(fetchLog), "fetch warning")

	getLog, err := os.ReadFile(filepath.Join(dir, "get.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(getLog), "dropped below info")
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/nonexistent/directory/path",
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{Level: "loud", Mode: 0644, Dir: t.TempDir()},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}
