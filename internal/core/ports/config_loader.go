package ports

import "go.trai.ch/bust/internal/core/domain"

// ConfigLoader defines the interface for loading the configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the configuration for the given working directory.
	// Without a config file it returns the defaults for cwd.
	Load(cwd string) (*domain.Config, error)
}
