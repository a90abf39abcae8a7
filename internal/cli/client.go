package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/browserplus/logaccess/internal/ipc"
)

// newClientCmd creates the 'client' command group.
func newClientCmd() *cobra.Command {
	var (
		address string
		timeout time.Duration
	)

	clientCmd := &cobra.Command{
		Use:   "client",
		Short: "Send requests to a running LogAccess server",
		Long: `Send requests to a running LogAccess server.

Commands:
  get           - List host log files
  service-logs  - List service log files
  describe      - Show the server's service description`,
	}

	clientCmd.PersistentFlags().StringVar(&address, "address", "", "Socket path or pipe name (default: "+ipc.DefaultAddress()+")")
	clientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Second, "Request timeout")

	newClient := func() *ipc.Client {
		if address == "" {
			if cfg, err := loadConfig(); err == nil && cfg.IPC.Socket != "" {
				address = cfg.IPC.Socket
			}
		}
		c := ipc.NewClientWithAddress(address)
		c.SetTimeout(timeout)
		return c
	}

	var (
		origin string
		asJSON bool
	)

	getCmd := &cobra.Command{
		Use:   "get",
		Short: "List host log files through the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := newClient().Get(GetContext(), origin)
			if err != nil {
				return err
			}
			return printFiles(cmd.OutOrStdout(), files, asJSON)
		},
	}

	serviceLogsCmd := &cobra.Command{
		Use:   "service-logs SERVICE[,SERVICE...] [SERVICE...]",
		Short: "List service log files through the server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := newClient().GetServiceLogs(GetContext(), origin, splitServices(args))
			if err != nil {
				return err
			}
			return printFiles(cmd.OutOrStdout(), files, asJSON)
		},
	}

	describeCmd := &cobra.Command{
		Use:   "describe",
		Short: "Show the server's service description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := newClient().Describe(GetContext())
			if err != nil {
				return err
			}
			return printDescription(cmd.OutOrStdout(), desc, asJSON)
		},
	}

	for _, c := range []*cobra.Command{getCmd, serviceLogsCmd} {
		c.Flags().StringVar(&origin, "origin", defaultOrigin, "URI of the calling page")
	}
	for _, c := range []*cobra.Command{getCmd, serviceLogsCmd, describeCmd} {
		c.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
		clientCmd.AddCommand(c)
	}

	return clientCmd
}
