package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, int64(5*1024*1024), cfg.Gallery.MaxUploadBytes)
	assert.Equal(t, "1234", cfg.SelfService.RegistrationCode)
	assert.Equal(t, "author", cfg.SelfService.AccountRole)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30m")
	t.Setenv("DB_LOG_LEVEL", "silent")
	t.Setenv("SELF_SERVICE_INIT_ID", "9876")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, logger.Silent, cfg.DB.LogLevel)
	assert.Equal(t, "9876", cfg.SelfService.RegistrationCode)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestInvalidNumbersFallBackToDefaults(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")
	assert.Equal(t, 587, getEnvAsInt("SMTP_PORT", 587))
}

func TestGetDSN(t *testing.T) {
	c := DBConfig{Host: "h", Port: "5432", User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=n sslmode=disable", c.GetDSN())
}
