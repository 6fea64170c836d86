package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "sql", cfg.Mission.Store)
	assert.Equal(t, 3, cfg.Mission.MaxRetries)
	assert.Equal(t, 8, cfg.Mission.ArchiveWorkers)
	assert.Equal(t, "00:05", cfg.Mission.ArchiveAt)
	assert.Equal(t, 10*time.Minute, cfg.Mission.LockTTL)
	assert.False(t, cfg.MongoEnabled())
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("MISSION_STORE", "Mongo")
	v.Set("DATABASE_DRIVER", "SQLite")
	v.Set("MAX_RETRIES", 5)

	cfg := fromViper(v)

	assert.True(t, cfg.MongoEnabled())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 5, cfg.Mission.MaxRetries)
}
