package discovery

import (
	"testing"

	"github.com/lshigami/dailyquest/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistration(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Port = "8080"
	cfg.Consul.Address = "127.0.0.1:8500"
	cfg.Consul.ServiceName = "dailyquest"
	cfg.Consul.ServiceAddress = "10.0.0.4"

	sr, err := NewServiceRegistry(cfg)
	require.NoError(t, err)

	reg := sr.Registration()
	assert.Equal(t, "dailyquest-8080-http", reg.ID)
	assert.Equal(t, 8080, reg.Port)
	assert.Equal(t, "http://10.0.0.4:8080/health", reg.Check.HTTP)

	cfg.Consul.ServiceID = "dq-1"
	assert.Equal(t, "dq-1-http", sr.Registration().ID)
}
