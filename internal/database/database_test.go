package database

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"potensidesa/internal/config"
)

func userStoreConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:         "pg.desa.internal",
		Port:         "5432",
		User:         "portal",
		Password:     "p@ss/word",
		Name:         "potensi",
		SSLMode:      "require",
		MaxOpenConns: 10,
	}
}

// stubOpen points sqlOpen at a sqlmock connection for the duration of the test.
func stubOpen(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	orig := sqlOpen
	sqlOpen = func(string, string) (*sql.DB, error) { return db, nil }
	t.Cleanup(func() { sqlOpen = orig })
	return mock
}

func TestBuildPostgresDSN_TagsApplicationName(t *testing.T) {
	dsn, err := BuildPostgresDSN(userStoreConfig())
	require.NoError(t, err)

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, ApplicationName, u.Query().Get("application_name"))
	assert.Equal(t, "require", u.Query().Get("sslmode"))

	pass, ok := u.User.Password()
	assert.True(t, ok)
	assert.Equal(t, "p@ss/word", pass, "password survives escaping")
}

func TestBuildPostgresDSN_OmitsEmptySSLMode(t *testing.T) {
	c := userStoreConfig()
	c.SSLMode = ""
	c.Password = ""

	dsn, err := BuildPostgresDSN(c)
	require.NoError(t, err)
	assert.Equal(t, "postgres://portal@pg.desa.internal:5432/potensi?application_name=potensidesa", dsn)
}

func TestBuildPostgresDSN_RequiresConnectionFields(t *testing.T) {
	for _, unset := range []func(*config.DatabaseConfig){
		func(c *config.DatabaseConfig) { c.Host = "" },
		func(c *config.DatabaseConfig) { c.Port = "" },
		func(c *config.DatabaseConfig) { c.User = "" },
		func(c *config.DatabaseConfig) { c.Name = "" },
	} {
		c := userStoreConfig()
		unset(&c)
		_, err := BuildPostgresDSN(c)
		assert.ErrorIs(t, err, ErrInvalidPostgresConfig)
	}
}

func TestNewPostgres_LogsConnected(t *testing.T) {
	mock := stubOpen(t)
	mock.ExpectPing()
	core, logs := observer.New(zap.InfoLevel)

	db, err := NewPostgres(context.Background(), userStoreConfig(), zap.New(core))
	require.NoError(t, err)
	require.NotNil(t, db)
	assert.NoError(t, mock.ExpectationsWereMet())

	entries := logs.FilterMessage("postgres_connected").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "database", fields["component"])
	assert.Equal(t, "pg.desa.internal", fields["host"])
	assert.Equal(t, "potensi", fields["database"])
	assert.Equal(t, int64(10), fields["max_open_conns"])
}

func TestNewPostgres_PingTimeout(t *testing.T) {
	mock := stubOpen(t)
	mock.ExpectPing().WillDelayFor(time.Second)

	orig := pingTimeout
	pingTimeout = 20 * time.Millisecond
	t.Cleanup(func() { pingTimeout = orig })

	core, logs := observer.New(zap.InfoLevel)
	start := time.Now()
	db, err := NewPostgres(context.Background(), userStoreConfig(), zap.New(core))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db ping")
	assert.Nil(t, db)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Zero(t, logs.FilterMessage("postgres_connected").Len())
}

func TestNewPostgres_OpenFailure(t *testing.T) {
	orig := sqlOpen
	sqlOpen = func(string, string) (*sql.DB, error) { return nil, errors.New("driver missing") }
	t.Cleanup(func() { sqlOpen = orig })

	db, err := NewPostgres(context.Background(), userStoreConfig(), nil)
	assert.ErrorContains(t, err, "sql open: driver missing")
	assert.Nil(t, db)
}

func TestNewPostgres_InvalidConfigSkipsOpen(t *testing.T) {
	orig := sqlOpen
	sqlOpen = func(string, string) (*sql.DB, error) {
		t.Fatal("sqlOpen must not run for an invalid config")
		return nil, nil
	}
	t.Cleanup(func() { sqlOpen = orig })

	db, err := NewPostgres(context.Background(), config.DatabaseConfig{}, nil)
	assert.ErrorIs(t, err, ErrInvalidPostgresConfig)
	assert.Nil(t, db)
}

func TestNewMongo_InvalidConfig(t *testing.T) {
	client, db, err := NewMongo(context.Background(), config.MongoConfig{})
	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Nil(t, db)
}

func TestMongoIndexes(t *testing.T) {
	for _, col := range []string{"investments", "locations", "desa"} {
		assert.NotEmpty(t, mongoIndexes[col], col)
	}
}
