// Package logaccess exposes host and service log files to whitelisted web pages.
package logaccess

import (
	"fmt"
	"sync"

	"github.com/browserplus/logaccess/internal/config"
	"github.com/browserplus/logaccess/internal/logdir"
	"github.com/browserplus/logaccess/internal/logging"
	"github.com/browserplus/logaccess/internal/origin"
	"github.com/browserplus/logaccess/internal/platform"
	"github.com/browserplus/logaccess/internal/validation"
)

// Service answers log requests. It is safe for concurrent use; Apply swaps
// the whitelist and layout for requests that start afterwards.
type Service struct {
	mu        sync.RWMutex
	whitelist *origin.Whitelist
	cfg       config.ServiceConfig

	provider platform.Provider
	resolver *logdir.Resolver
	logger   *logging.Logger
}

// NewService creates a service over the given platform roots. A nil cfg uses
// the defaults and a nil logger discards output.
func NewService(cfg *config.ServiceConfig, provider platform.Provider, logger *logging.Logger) *Service {
	if cfg == nil {
		cfg = config.NewServiceConfig()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &Service{
		provider: provider,
		resolver: logdir.NewResolver(logger),
		logger:   logger.Component("logaccess"),
	}
	s.Apply(cfg)
	return s
}

// Apply replaces the whitelist and directory layout.
func (s *Service) Apply(cfg *config.ServiceConfig) {
	w := cfg.NewWhitelist()

	s.mu.Lock()
	s.cfg = *cfg
	s.whitelist = w
	s.mu.Unlock()
}

func (s *Service) snapshot() (config.ServiceConfig, *origin.Whitelist) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg, s.whitelist
}

// Get returns the host application's current log files.
func (s *Service) Get(originURI string) ([]string, error) {
	cfg, whitelist := s.snapshot()
	if !whitelist.Allowed(originURI) {
		s.logger.Warn().Str("origin", originURI).Str("method", MethodGet).Msg("Origin not whitelisted")
		return nil, permissionDenied()
	}

	pluginDir, err := s.provider.PluginWritableDir()
	if err != nil {
		return nil, s.fail(MethodGet, err)
	}

	paths, err := s.resolver.ResolveHostLogs(cfg.HostRoot(pluginDir))
	if err != nil {
		return nil, s.fail(MethodGet, err)
	}

	s.logger.Debug().Str("origin", originURI).Int("files", len(paths)).Msg("Returning host logs")
	return paths, nil
}

// GetServiceLogs returns the current log files of every named service,
// concatenated in request order. Services without a data directory contribute
// nothing; any other failure abandons the whole request. Empty names are
// skipped.
func (s *Service) GetServiceLogs(originURI string, services []string) ([]string, error) {
	cfg, whitelist := s.snapshot()
	if !whitelist.Allowed(originURI) {
		s.logger.Warn().Str("origin", originURI).Str("method", MethodGetServiceLogs).Msg("Origin not whitelisted")
		return nil, permissionDenied()
	}
	if len(services) == 0 {
		return nil, couldntGetLogs(ErrServicesMissing)
	}

	appData, err := s.provider.AppDataDir()
	if err != nil {
		return nil, s.fail(MethodGetServiceLogs, err)
	}
	dataRoot := cfg.ServiceDataRoot(appData)

	paths := []string{}
	for _, name := range services {
		if name == "" {
			continue
		}
		if err := checkServiceName(name, dataRoot); err != nil {
			return nil, s.fail(MethodGetServiceLogs, err)
		}

		found, err := s.resolver.ResolveServiceLogs(dataRoot, name)
		if err != nil {
			return nil, s.fail(MethodGetServiceLogs, err)
		}
		paths = append(paths, found...)
	}

	s.logger.Debug().
		Str("origin", originURI).
		Strs("services", services).
		Int("files", len(paths)).
		Msg("Returning service logs")
	return paths, nil
}

// Describe returns the service description.
func (s *Service) Describe() Description {
	return Describe()
}

func checkServiceName(name, dataRoot string) error {
	if err := validation.ValidateServiceName(name); err != nil {
		return fmt.Errorf("service %q: %w", name, err)
	}
	return validation.ValidatePathInDirectory(name, dataRoot)
}

// fail logs the internal error class and collapses err into the caller-facing
// lookup error.
func (s *Service) fail(method string, err error) *ServiceError {
	s.logger.Warn().
		Err(err).
		Str("method", method).
		Str("kind", logdir.Kind(err)).
		Msg("Couldn't get logs")
	return couldntGetLogs(err)
}
