package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/five82/motostats/internal/app"
	"github.com/five82/motostats/internal/logtail"
)

func newLogsCmd(flags *globalFlags) *cobra.Command {
	var (
		lines int
		raw   bool
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of the client log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(flags.options())
			if err != nil {
				return err
			}
			tail, err := logtail.Read(cfg.LogFile, lines)
			if err != nil {
				return fmt.Errorf("read log: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(tail) == 0 {
				fmt.Fprintf(out, "No log entries in %s\n", cfg.LogFile)
				return nil
			}
			if !raw {
				styles := logtail.PlainStyles()
				if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
					styles = logtail.ColorStyles()
				}
				tail = logtail.FormatLines(tail, styles)
			}
			for _, line := range tail {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines (0 for all)")
	cmd.Flags().BoolVar(&raw, "raw", false, "print JSON lines unformatted")
	return cmd
}
