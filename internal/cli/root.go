// Package cli provides the command-line interface for logaccess.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/browserplus/logaccess/internal/config"
	"github.com/browserplus/logaccess/internal/logging"
	"github.com/browserplus/logaccess/internal/pathutil"
	"github.com/browserplus/logaccess/internal/platform"
	"github.com/browserplus/logaccess/internal/version"
)

var (
	// Global flags
	cfgFile    string
	verbose    bool
	debug      bool
	pluginDir  string
	appDataDir string

	// Global logger
	logger *logging.Logger

	// Global context for signal handling
	rootContext context.Context
	cancelFunc  context.CancelFunc
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "logaccess",
		Short: "LogAccess - hand BrowserPlus log files to whitelisted web pages",
		Long: `LogAccess ` + version.Version + ` - Built: ` + version.BuildTime + `
Locates the current BrowserPlus log directory (and the log directories of
installed services) and returns the .log files in it.

The serve command answers requests from the browser host over a local
socket (named pipe on Windows). The get, service-logs and describe commands
run the same lookups directly, and the client commands talk to a running
server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = logging.NewDefaultCLILogger()
			if verbose || debug {
				logging.SetGlobalLevel(zerolog.DebugLevel)
			}
			return expandPathFlags(&cfgFile, &pluginDir, &appDataDir)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default: "+defaultConfigPathHint()+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output (same as --verbose)")
	rootCmd.PersistentFlags().StringVar(&pluginDir, "plugin-dir", "", "Override the plugin writable directory")
	rootCmd.PersistentFlags().StringVar(&appDataDir, "appdata-dir", "", "Override the application data directory")

	rootCmd.Version = version.Version + " (" + version.BuildTime + ")"
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	rootContext, cancelFunc = context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		for sig := range sigChan {
			if sig != nil {
				GetLogger().Info().Str("signal", sig.String()).Msg("Received shutdown signal")
				cancelFunc()
			}
		}
	}()

	rootCmd := NewRootCmd()
	AddCommands(rootCmd)
	err := rootCmd.Execute()

	signal.Stop(sigChan)
	close(sigChan)

	return err
}

// AddCommands adds all subcommands to the root command.
func AddCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newServiceLogsCmd())
	rootCmd.AddCommand(newDescribeCmd())
	rootCmd.AddCommand(newClientCmd())
	rootCmd.AddCommand(newConfigCmd())
}

// GetLogger returns the global CLI logger.
func GetLogger() *logging.Logger {
	if logger == nil {
		logger = logging.NewDefaultCLILogger()
	}
	return logger
}

// GetContext returns the global CLI context with signal handling.
// This context will be cancelled when the user presses Ctrl+C.
func GetContext() context.Context {
	if rootContext == nil {
		return context.Background()
	}
	return rootContext
}

// expandPathFlags makes path flag values absolute, expanding "~".
func expandPathFlags(paths ...*string) error {
	for _, p := range paths {
		expanded, err := pathutil.ExpandPath(*p)
		if err != nil {
			return fmt.Errorf("invalid path %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// loadConfig loads the configuration named by --config, or the default file.
func loadConfig() (*config.ServiceConfig, error) {
	cfg, err := config.LoadServiceConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// configPath returns the effective configuration file path.
func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return config.DefaultConfigPath()
}

func defaultConfigPathHint() string {
	path, err := config.DefaultConfigPath()
	if err != nil {
		return config.ConfigFileName
	}
	return path
}

// newProvider returns the OS data roots, with --plugin-dir and --appdata-dir
// taking precedence when given.
func newProvider() platform.Provider {
	if pluginDir == "" && appDataDir == "" {
		return platform.NewProvider()
	}
	return overrideProvider{base: platform.NewProvider(), pluginDir: pluginDir, appDataDir: appDataDir}
}

type overrideProvider struct {
	base       platform.Provider
	pluginDir  string
	appDataDir string
}

func (p overrideProvider) PluginWritableDir() (string, error) {
	if p.pluginDir != "" {
		return platform.Static{PluginWritable: p.pluginDir}.PluginWritableDir()
	}
	return p.base.PluginWritableDir()
}

func (p overrideProvider) AppDataDir() (string, error) {
	if p.appDataDir != "" {
		return platform.Static{AppData: p.appDataDir}.AppDataDir()
	}
	return p.base.AppDataDir()
}
