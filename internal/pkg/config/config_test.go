package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg := InitConfig("")

	assert.Equal(t, "tracking-service", cfg.App.Name)
	assert.Equal(t, 9994, cfg.Server.Port)
	assert.Equal(t, "economy", cfg.Tracking.DefaultVehicleType)
	assert.Equal(t, 50000.0, cfg.Tracking.MaxRadiusMeters)
	assert.Equal(t, 64, cfg.Tracking.ClientSendBuffer)
	assert.Empty(t, cfg.NATS.URL)
	assert.False(t, cfg.App.IsDevelopment())
}

func TestInitConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("NATS_URL", "nats://nats:4222")
	t.Setenv("TRACKING_MAX_RADIUS_M", "1500")
	t.Setenv("NEW_RELIC_ENABLED", "true")

	cfg := InitConfig("")

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "nats://nats:4222", cfg.NATS.URL)
	assert.Equal(t, 1500.0, cfg.Tracking.MaxRadiusMeters)
	assert.True(t, cfg.NewRelic.Enabled)
	assert.True(t, cfg.App.IsDevelopment())
}

func TestInitConfig_LoadsDotEnvLocally(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-file\nUSER_SERVICE_URL=http://users:9990\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("USER_SERVICE_URL")
	})

	cfg := InitConfig(path)

	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, "http://users:9990", cfg.Services.UserServiceURL)
}
