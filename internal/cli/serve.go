package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/browserplus/logaccess/internal/config"
	"github.com/browserplus/logaccess/internal/ipc"
	"github.com/browserplus/logaccess/internal/logaccess"
	"github.com/browserplus/logaccess/internal/logging"
)

// newServeCmd creates the 'serve' command.
func newServeCmd() *cobra.Command {
	var (
		address string
		logFile string
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer log requests from the browser host",
		Long: `Start the LogAccess server in the foreground. Requests arrive as
newline-delimited JSON over a Unix domain socket (a named pipe on Windows).

The configuration file is watched and whitelist or layout changes apply to
new requests without a restart.

Press Ctrl+C to stop the server gracefully.

Examples:
  logaccess serve
  logaccess serve --address /tmp/logaccess.sock --log-file /tmp/logaccess.log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := expandPathFlags(&logFile); err != nil {
				return err
			}

			serveLogger := logging.NewLogger("serve")
			if !verbose && !debug {
				logging.SetGlobalLevel(logging.ParseLevel(cfg.Logging.Level))
			}
			if logFile == "" && cfg.Logging.File {
				if err := config.EnsureLogDirectory(); err != nil {
					return fmt.Errorf("failed to create log directory: %w", err)
				}
				logFile = config.LogFilePath()
			}
			serveLogger.EnableFile(logging.FileConfig{Path: logFile})
			defer serveLogger.Close()

			address = serveAddress(address, cfg.IPC.Socket, runtime.GOOS)

			svc := logaccess.NewService(cfg, newProvider(), serveLogger)
			server := ipc.NewServer(svc, serveLogger, address)
			if err := server.Start(); err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(GetContext())
			defer cancel()

			if !noWatch {
				startConfigWatcher(ctx, svc, serveLogger)
			}

			serveLogger.Info().
				Str("address", server.Address()).
				Strs("whitelist", cfg.DomainList()).
				Msg("LogAccess server ready")

			select {
			case <-ctx.Done():
			case <-server.Done():
			}
			server.Stop()
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Socket path or pipe name (default: config [ipc] socket, then "+ipc.DefaultAddress()+")")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Path to a rotating log file (empty = config [logging] file)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the configuration file when it changes")

	return cmd
}

// serveAddress picks the listen address: the --address flag, then the
// configured socket path. On Windows the configured socket is ignored and the
// default named pipe is used unless the flag names one.
func serveAddress(flag, configSocket, goos string) string {
	if flag != "" {
		return flag
	}
	if goos == "windows" {
		return ""
	}
	return configSocket
}

// startConfigWatcher applies configuration changes to svc until ctx ends.
// A missing config directory disables watching.
func startConfigWatcher(ctx context.Context, svc *logaccess.Service, l *logging.Logger) {
	path, err := configPath()
	if err != nil {
		l.Warn().Err(err).Msg("Configuration path unknown; hot reload disabled")
		return
	}

	w, err := config.NewWatcher(path, l, svc.Apply)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.Debug().Str("path", path).Msg("No configuration directory; hot reload disabled")
		} else {
			l.Warn().Err(err).Str("path", path).Msg("Failed to watch configuration")
		}
		return
	}
	go w.Run(ctx)
}
