//go:build database

package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/evanchen13/wb-sustainability/internal/structures"
	"github.com/evanchen13/wb-sustainability/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestSQLArchive_Postgres(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	conf := &structures.Config{Store: structures.StoreConfig{
		Backend: PostgreSQLBackend,
		DSN:     fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port()),
	}}

	a, err := NewArchive(conf, &testutil.MockLogger{})
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	require.NoError(t, a.SaveDataset(ctx, sampleDataset(time.Now(), 9.1)))
	require.NoError(t, a.SaveDataset(ctx, sampleDataset(time.Now(), 9.4)))

	n, err := a.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	obs := archived(t, a, "EG.FEC.RNEW.ZS")
	require.Len(t, obs, 2)
	assert.Equal(t, 9.4, obs[1].Value)
}

func TestSQLArchive_MySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "wbd",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	conf := &structures.Config{Store: structures.StoreConfig{
		Backend: MySQLBackend,
		DSN:     fmt.Sprintf("root:secret123@tcp(%s:%s)/wbd?parseTime=true", host, port.Port()),
	}}

	a, err := NewArchive(conf, &testutil.MockLogger{})
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	require.NoError(t, a.SaveDataset(ctx, sampleDataset(time.Now(), 9.1)))

	n, err := a.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
