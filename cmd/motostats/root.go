package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/motostats/internal/app"
	"github.com/five82/motostats/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	apiURL     string
	timeout    time.Duration
	verbose    bool
}

func (g *globalFlags) options() app.Options {
	return app.Options{
		ConfigPath: g.configPath,
		Overrides: config.Overrides{
			APIURL:  g.apiURL,
			Timeout: g.timeout,
			Verbose: g.verbose,
		},
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "motostats",
		Short: "Browse MotoGP riders, races and results",
		Long: `motostats is a read-only client for the MotoGP Stats API.

Run without arguments to start the interactive terminal UI. Use "serve" for
the HTML front end, or the data commands for one-shot tables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunTUI(cmd.Context(), flags.options())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/motostats/config.toml)")
	pf.StringVar(&flags.apiURL, "api-url", "", "API base URL")
	pf.DurationVar(&flags.timeout, "timeout", 0, "request timeout (e.g. 5s)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newServeCmd(flags),
		newRidersCmd(flags),
		newRiderCmd(flags),
		newRacesCmd(flags),
		newRaceCmd(flags),
		newResultsCmd(flags),
		newLogsCmd(flags),
		newVersionCmd(),
	)
	return root
}

func newServeCmd(flags *globalFlags) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTML front end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options()
			opts.Overrides.Listen = listen
			return app.Serve(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default 127.0.0.1:8080)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "motostats %s\n", version)
		},
	}
}
