package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"DATABASE_URL", "STORE_DRIVER", "REDIS_URL", "CACHE_TTL", "BRAND", "OUTPUT_FILE", "FETCH_TIMEOUT", "AUX_TIMEOUT"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, DriverPgx, cfg.StoreDriver)
	assert.Equal(t, "citroen", cfg.Brand)
	assert.Equal(t, "citroen_data.json", cfg.OutputFile)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 60*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 10*time.Second, cfg.AuxTimeout)
	assert.False(t, cfg.DedupEnabled())
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "file.db")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("AUX_TIMEOUT", "3s")

	cfg := Load()

	assert.True(t, cfg.DedupEnabled())
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, 3*time.Second, cfg.AuxTimeout)
	require.NoError(t, cfg.Validate())
}

func TestLoadMetricsPort(t *testing.T) {
	t.Setenv("METRICS_PORT", "")
	assert.Empty(t, Load().MetricsPort, "set but empty disables the endpoint")

	t.Setenv("METRICS_PORT", "9191")
	assert.Equal(t, "9191", Load().MetricsPort)
}

func TestValidate(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "mongo")
		err := Load().Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownDriver))
	})

	t.Run("bad duration keeps default", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "")
		t.Setenv("CACHE_TTL", "forever")
		cfg := Load()
		assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
		assert.Error(t, cfg.Validate())
	})
}
