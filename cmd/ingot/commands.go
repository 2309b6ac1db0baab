package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/ingot/internal/app"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:           "ingot",
		Short:         "Terminal dashboard for the gold wallet API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			run := opts
			if !run.Headless && !term.IsTerminal(int(os.Stdout.Fd())) {
				run.Headless = true
			}
			return app.Run(cmd.Context(), run)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/ingot/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/ingot/prefs.toml)")
	flags.StringVar(&opts.APIBind, "api", "", "wallet API host:port or URL, overrides api_bind")
	flags.StringVar(&opts.LogFile, "log-file", "", "log file, overrides log_file")
	root.Flags().BoolVar(&opts.Headless, "headless", false, "poll and log status changes without the TUI")

	root.AddCommand(newStatusCmd(&opts), newVersionCmd())
	return root
}

func newStatusCmd(opts *app.Options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Fetch once and print the wallet summary and sync status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Status(cmd.Context(), *opts, cmd.OutOrStdout(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ingot version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "ingot", Version)
		},
	}
}
