package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
dbname = "salon"
user = "salon"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "UTC", cfg.Booking.Timezone)
	assert.Equal(t, 1, cfg.Booking.SaturationThreshold)
	assert.Equal(t, 10*time.Second, cfg.Booking.HoldTTL())
	assert.Equal(t, "salon.bookings", cfg.Kafka.Topic)
	assert.Contains(t, cfg.Database.DSN(), "dbname=salon")
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
dbname = "salon"
password = "from-file"

[kafka]
enabled = true
brokers = ["file:9092"]
`)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing host", `[database]
dbname = "salon"`},
		{"redis without addr", `[database]
host = "localhost"
dbname = "salon"
[redis]
enabled = true`},
		{"bad timezone", `[database]
host = "localhost"
dbname = "salon"
[booking]
timezone = "Mars/Olympus"`},
		{"bad toml", `[database`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
