package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/browserplus/logaccess/internal/config"
)

// newConfigCmd creates the 'config' command group.
func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage logaccess configuration",
		Long: `Configuration management commands for logaccess.

Commands:
  init  - Write a configuration file with default values
  show  - Display current configuration
  path  - Show configuration file path`,
	}

	configCmd.AddCommand(newConfigInitCmd())
	configCmd.AddCommand(newConfigShowCmd())
	configCmd.AddCommand(newConfigPathCmd())

	return configCmd
}

// newConfigInitCmd creates the 'config init' command.
func newConfigInitCmd() *cobra.Command {
	var (
		force   bool
		domains []string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file",
		Long: `Write a configuration file with default values.

Use --domain (repeatable) to replace the default whitelist and --force to
overwrite an existing file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Configuration already exists at: %s\n", path)
					fmt.Fprintln(cmd.OutOrStdout(), "Use --force to overwrite or run 'config show' to view current config.")
					return nil
				}
			}

			cfg := config.NewServiceConfig()
			if len(domains) > 0 {
				cfg.SetDomainList(domains)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.SaveServiceConfig(cfg, path); err != nil {
				return err
			}

			GetLogger().Info().Str("path", path).Msg("Configuration written")
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration")
	cmd.Flags().StringArrayVar(&domains, "domain", nil, "Whitelisted domain (repeatable)")
	return cmd
}

// newConfigShowCmd creates the 'config show' command.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path, _ := configPath()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config file:    %s\n", path)
			fmt.Fprintln(out, "[whitelist]")
			for _, d := range cfg.DomainList() {
				fmt.Fprintf(out, "  domain:       %s\n", d)
			}
			fmt.Fprintln(out, "[layout]")
			fmt.Fprintf(out, "  vendor:       %s\n", cfg.Layout.Vendor)
			fmt.Fprintf(out, "  product:      %s\n", cfg.Layout.Product)
			fmt.Fprintf(out, "  service_data: %s\n", cfg.Layout.ServiceData)
			fmt.Fprintln(out, "[ipc]")
			socket := cfg.IPC.Socket
			if socket == "" {
				socket = "(default)"
			}
			fmt.Fprintf(out, "  socket:       %s\n", socket)
			fmt.Fprintln(out, "[logging]")
			fmt.Fprintf(out, "  level:        %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  file:         %t\n", cfg.Logging.File)
			return nil
		},
	}
}

// newConfigPathCmd creates the 'config path' command.
func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
