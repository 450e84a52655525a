package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8081", cfg.ServerPort)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL)
	assert.Equal(t, 5*time.Second, cfg.ClickTimeout)
	assert.Equal(t, 4, cfg.ClickWorkers)
	assert.Equal(t, "0 * * * *", cfg.ReconcileSchedule)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("CLICK_WORKERS", "8")
	t.Setenv("CLICK_TIMEOUT_SECONDS", "2")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 8, cfg.ClickWorkers)
	assert.Equal(t, 2*time.Second, cfg.ClickTimeout)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.AllowedOrigins)
}

func TestLoadConfig_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestValidate_ProductionNeedsDBPassword(t *testing.T) {
	cfg := &Config{
		Environment:        "production",
		JWTSecret:          "secret",
		ClickWorkers:       1,
		ClickQueueSize:     1,
		ClickTimeout:       time.Second,
		RateLimitPerMinute: 1,
	}

	assert.ErrorContains(t, cfg.Validate(), "DB_PASSWORD")

	cfg.DBPassword = "pw"
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.IsProduction())
}

func TestValidate_RejectsEmptyWorkerPool(t *testing.T) {
	cfg := &Config{
		JWTSecret:          "secret",
		ClickWorkers:       0,
		ClickQueueSize:     1,
		ClickTimeout:       time.Second,
		RateLimitPerMinute: 1,
	}

	assert.ErrorContains(t, cfg.Validate(), "CLICK_WORKERS")
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5432", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}
