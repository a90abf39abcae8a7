// Package config provides configuration management for the LogAccess service.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/browserplus/logaccess/internal/origin"
)

// ConfigFileName is the base name of the configuration file.
const ConfigFileName = "logaccess.conf"

// Default layout segments beneath the platform data roots.
const (
	DefaultVendor      = "Yahoo!"
	DefaultProduct     = "BrowserPlus"
	DefaultServiceData = "CoreletData"
)

// ServiceConfig represents the LogAccess configuration.
//
// Config file location:
//   - Windows: %APPDATA%\BrowserPlus\LogAccess\logaccess.conf
//   - Unix: ~/.config/logaccess/logaccess.conf
//
// INI format:
//
//	[whitelist]
//	domains = yahoo.com, browserplus.org, browserpl.us, localhost
//
//	[layout]
//	vendor = Yahoo!
//	product = BrowserPlus
//	service_data = CoreletData
//
//	[ipc]
//	socket =
//
//	[logging]
//	level = info
//	file = true
type ServiceConfig struct {
	Whitelist WhitelistConfig
	Layout    LayoutConfig
	IPC       IPCConfig
	Logging   LoggingConfig
}

// WhitelistConfig lists the domains whose pages may read logs.
type WhitelistConfig struct {
	// Domains is a comma-separated list of domain names.
	Domains string `ini:"domains"`
}

// LayoutConfig names the directories beneath the platform data roots.
// The host log root is <plugin writable>/<vendor>/<product> and the service
// data root is <app data>/<vendor>/<product>/<service_data>.
type LayoutConfig struct {
	Vendor      string `ini:"vendor"`
	Product     string `ini:"product"`
	ServiceData string `ini:"service_data"`
}

// IPCConfig configures the local transport.
type IPCConfig struct {
	// Socket overrides the Unix socket path. Ignored on Windows, which always
	// uses the named pipe. Empty means the default location.
	Socket string `ini:"socket"`
}

// LoggingConfig configures the service's own logs.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `ini:"level"`

	// File enables the rotating log file in LogDirectory().
	File bool `ini:"file"`
}

// Configuration validation errors
var (
	ErrNoDomains       = errors.New("whitelist domains cannot be empty")
	ErrInvalidDomain   = errors.New("whitelist contains an invalid domain")
	ErrInvalidLayout   = errors.New("layout segments must be single path elements")
	ErrInvalidLogLevel = errors.New("logging level must be one of debug, info, warn, error")
)

// DefaultConfigPath returns the default path for logaccess.conf.
//   - Windows: %APPDATA%\BrowserPlus\LogAccess\logaccess.conf
//   - Unix: ~/.config/logaccess/logaccess.conf
func DefaultConfigPath() (string, error) {
	dir, err := configDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

func configDirectory() (string, error) {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", errors.New("neither APPDATA nor USERPROFILE environment variable set")
			}
			appData = filepath.Join(userProfile, "AppData", "Roaming")
		}
		return filepath.Join(appData, "BrowserPlus", "LogAccess"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "logaccess"), nil
}

// NewServiceConfig creates a ServiceConfig with default values.
func NewServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		Whitelist: WhitelistConfig{
			Domains: strings.Join(origin.DefaultDomains, ", "),
		},
		Layout: LayoutConfig{
			Vendor:      DefaultVendor,
			Product:     DefaultProduct,
			ServiceData: DefaultServiceData,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  false,
		},
	}
}

// LoadServiceConfig loads configuration from path.
// If path is empty, uses the default path.
// If the file doesn't exist, returns a config with default values and no error.
// If the file exists but is invalid, returns an error.
func LoadServiceConfig(path string) (*ServiceConfig, error) {
	cfg := NewServiceConfig()

	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return cfg, nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	iniFile, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", ConfigFileName, err)
	}

	whitelist := iniFile.Section("whitelist")
	cfg.Whitelist.Domains = keyOr(whitelist, "domains", cfg.Whitelist.Domains)

	layout := iniFile.Section("layout")
	cfg.Layout.Vendor = keyOr(layout, "vendor", DefaultVendor)
	cfg.Layout.Product = keyOr(layout, "product", DefaultProduct)
	cfg.Layout.ServiceData = keyOr(layout, "service_data", DefaultServiceData)

	cfg.IPC.Socket = iniFile.Section("ipc").Key("socket").String()

	logging := iniFile.Section("logging")
	cfg.Logging.Level = logging.Key("level").MustString("info")
	cfg.Logging.File = logging.Key("file").MustBool(false)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// keyOr returns the raw value of name, or def when the key is absent.
// A key present with an empty value stays empty so Validate can reject it.
func keyOr(section *ini.Section, name, def string) string {
	if !section.HasKey(name) {
		return def
	}
	return section.Key(name).String()
}

// SaveServiceConfig saves configuration to path.
// If path is empty, uses the default path.
// Creates parent directories if they don't exist.
func SaveServiceConfig(cfg *ServiceConfig, path string) error {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to determine config path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	iniFile := ini.Empty()
	sections := []struct {
		name   string
		values [][2]string
	}{
		{"whitelist", [][2]string{{"domains", cfg.Whitelist.Domains}}},
		{"layout", [][2]string{
			{"vendor", cfg.Layout.Vendor},
			{"product", cfg.Layout.Product},
			{"service_data", cfg.Layout.ServiceData},
		}},
		{"ipc", [][2]string{{"socket", cfg.IPC.Socket}}},
		{"logging", [][2]string{
			{"level", cfg.Logging.Level},
			{"file", fmt.Sprintf("%t", cfg.Logging.File)},
		}},
	}
	for _, s := range sections {
		section, err := iniFile.NewSection(s.name)
		if err != nil {
			return fmt.Errorf("failed to create %s section: %w", s.name, err)
		}
		for _, kv := range s.values {
			section.Key(kv[0]).SetValue(kv[1])
		}
	}

	// Temporary file + rename so a watcher never sees a partial file
	tmpPath := path + ".tmp"
	if err := iniFile.SaveTo(tmpPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(tmpPath, 0600); err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("failed to set config permissions: %w", err)
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (cfg *ServiceConfig) Validate() error {
	domains := cfg.DomainList()
	if len(domains) == 0 {
		return ErrNoDomains
	}
	if w := origin.NewWhitelist(domains); len(w.Domains) != len(domains) {
		return fmt.Errorf("%w: %s", ErrInvalidDomain, cfg.Whitelist.Domains)
	}

	for _, seg := range []string{cfg.Layout.Vendor, cfg.Layout.Product, cfg.Layout.ServiceData} {
		if seg == "" || seg == "." || seg == ".." || strings.ContainsAny(seg, `/\`) {
			return fmt.Errorf("%w: %q", ErrInvalidLayout, seg)
		}
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Level)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.Logging.Level)
	}

	return nil
}

// DomainList returns the whitelist domains as a slice.
func (cfg *ServiceConfig) DomainList() []string {
	if cfg.Whitelist.Domains == "" {
		return nil
	}
	parts := strings.Split(cfg.Whitelist.Domains, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// SetDomainList sets the whitelist domains from a slice.
func (cfg *ServiceConfig) SetDomainList(domains []string) {
	cfg.Whitelist.Domains = strings.Join(domains, ", ")
}

// NewWhitelist builds the origin whitelist described by the configuration.
func (cfg *ServiceConfig) NewWhitelist() *origin.Whitelist {
	return origin.NewWhitelist(cfg.DomainList())
}

// HostRoot joins the layout onto the plugin writable directory.
func (cfg *ServiceConfig) HostRoot(pluginWritableDir string) string {
	return filepath.Join(pluginWritableDir, cfg.Layout.Vendor, cfg.Layout.Product)
}

// ServiceDataRoot joins the layout onto the app data directory.
func (cfg *ServiceConfig) ServiceDataRoot(appDataDir string) string {
	return filepath.Join(appDataDir, cfg.Layout.Vendor, cfg.Layout.Product, cfg.Layout.ServiceData)
}
