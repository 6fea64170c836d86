package discovery

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/consul/api"
	"github.com/lshigami/dailyquest/config"
	"github.com/rs/zerolog/log"
)

type ServiceRegistry struct {
	client *api.Client
	config *config.Config
}

func NewServiceRegistry(cfg *config.Config) (*ServiceRegistry, error) {
	consulConfig := api.DefaultConfig()
	consulConfig.Address = cfg.Consul.Address

	client, err := api.NewClient(consulConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Consul client: %w", err)
	}

	return &ServiceRegistry{
		client: client,
		config: cfg,
	}, nil
}

func (sr *ServiceRegistry) serviceID() string {
	if sr.config.Consul.ServiceID != "" {
		return sr.config.Consul.ServiceID + "-http"
	}
	return sr.config.Consul.ServiceName + "-" + sr.config.Server.Port + "-http"
}

// Registration builds the agent registration with an HTTP check against /health.
func (sr *ServiceRegistry) Registration() *api.AgentServiceRegistration {
	httpPort, _ := strconv.Atoi(sr.config.Server.Port)
	return &api.AgentServiceRegistration{
		ID:      sr.serviceID(),
		Name:    sr.config.Consul.ServiceName,
		Port:    httpPort,
		Address: sr.config.Consul.ServiceAddress,
		Check: &api.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://%s:%s/health", sr.config.Consul.ServiceAddress, sr.config.Server.Port),
			Interval: "10s",
			Timeout:  "5s",
		},
		Tags: []string{"missions", "http"},
		Meta: map[string]string{
			"protocol": "http",
		},
	}
}

func (sr *ServiceRegistry) Register() error {
	if err := sr.client.Agent().ServiceRegister(sr.Registration()); err != nil {
		return fmt.Errorf("failed to register HTTP service with Consul: %w", err)
	}
	log.Info().Str("serviceID", sr.serviceID()).Msg("Registered service with Consul")
	return nil
}

func (sr *ServiceRegistry) Deregister() error {
	if err := sr.client.Agent().ServiceDeregister(sr.serviceID()); err != nil {
		log.Error().Err(err).Str("serviceID", sr.serviceID()).Msg("Error deregistering service")
		return err
	}
	return nil
}
