package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DB_DRIVER", "DATABASE_URL", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
		"POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB", "POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_SSLMODE",
		"JWT_SECRET", "ACCESS_TOKEN_TTL", "BCRYPT_COST", "MEDIA_URL", "MEDIA_ROOT",
		"GO_ENV", "FE_URL", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 5432, cfg.PostgresPort)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "/media/", cfg.MediaURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Contains(t, cfg.PostgresDSN(), "host=localhost port=5432")
}

func TestLoad_JWTSecretRequiredOutsideDev(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("GO_ENV", "dev")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"bad ttl":    {"ACCESS_TOKEN_TTL", "soon"},
		"bad port":   {"POSTGRES_PORT", "abc"},
		"bad driver": {"DB_DRIVER", "oracle"},
		"bad cost":   {"BCRYPT_COST", "99"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("JWT_SECRET", "s3cret")
			t.Setenv(kv[0], kv[1])

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), kv[0])
		})
	}
}

func TestLoad_SqliteNeedsURLAndListsAreSplit(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "sqlite")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("DATABASE_URL", "file:shop.db")
	t.Setenv("FE_URL", "http://localhost:3000, https://shop.example.com ,")
	t.Setenv("MEDIA_URL", "/static")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:3000", "https://shop.example.com"}, cfg.FEURLs)
	assert.Equal(t, "/static/", cfg.MediaURL)
}
