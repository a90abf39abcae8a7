package cli

import (
	"github.com/spf13/cobra"

	"github.com/browserplus/logaccess/internal/logaccess"
)

// defaultOrigin is whitelisted by the default configuration.
const defaultOrigin = "http://localhost/"

// newLocalService builds a service from the configuration and platform roots.
func newLocalService() (*logaccess.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return logaccess.NewService(cfg, newProvider(), GetLogger()), nil
}

// newGetCmd creates the 'get' command.
func newGetCmd() *cobra.Command {
	var (
		origin string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "List the current BrowserPlus log files",
		Long: `List the .log files in the current BrowserPlus log directory.

The lookup is performed in-process with the same whitelist check the server
applies, using --origin as the calling page.

Examples:
  logaccess get
  logaccess get --json
  logaccess get --plugin-dir /tmp/fixture`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newLocalService()
			if err != nil {
				return err
			}
			files, err := svc.Get(origin)
			if err != nil {
				return err
			}
			return printFiles(cmd.OutOrStdout(), files, asJSON)
		},
	}

	cmd.Flags().StringVar(&origin, "origin", defaultOrigin, "URI of the calling page")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print a JSON document instead of one path per line")
	return cmd
}

// newServiceLogsCmd creates the 'service-logs' command.
func newServiceLogsCmd() *cobra.Command {
	var (
		origin string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "service-logs SERVICE[,SERVICE...] [SERVICE...]",
		Short: "List the current log files of installed services",
		Long: `List the .log files in the current log directory of each named service.

Services without a data directory contribute no files. Any other failure
aborts the whole listing.

Examples:
  logaccess service-logs FileTransfer
  logaccess service-logs FileTransfer,Uploader --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newLocalService()
			if err != nil {
				return err
			}
			files, err := svc.GetServiceLogs(origin, splitServices(args))
			if err != nil {
				return err
			}
			return printFiles(cmd.OutOrStdout(), files, asJSON)
		},
	}

	cmd.Flags().StringVar(&origin, "origin", defaultOrigin, "URI of the calling page")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print a JSON document instead of one path per line")
	return cmd
}

// newDescribeCmd creates the 'describe' command.
func newDescribeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Show the service description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := logaccess.Describe()
			return printDescription(cmd.OutOrStdout(), &d, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}
