package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/five82/motostats/internal/api"
	"github.com/five82/motostats/internal/app"
	"github.com/five82/motostats/internal/motogp"
)

// withClient opens a stderr-logging runtime for the duration of fn.
func withClient(flags *globalFlags, fn func(api.Fetcher) error) error {
	rt, err := app.Open(flags.options(), app.LogToStderr)
	if err != nil {
		return err
	}
	defer rt.Close()
	return fn(rt.Client)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func newRidersCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "riders",
		Short: "List riders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(flags, func(f api.Fetcher) error {
				riders, err := f.ListRiders(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if asJSON {
					return writeJSON(out, riders)
				}
				if len(riders) == 0 {
					_, err := fmt.Fprintln(out, "No riders.")
					return err
				}
				tw := newTable(out)
				fmt.Fprintln(tw, "ID\tNAME\tNATIONALITY\tSTATUS")
				for _, r := range riders {
					badge, ok := r.Badge()
					if !ok {
						badge = "-"
					}
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID, r.FullName(), badge, r.StatusLabel())
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newRiderCmd(flags *globalFlags) *cobra.Command {
	var (
		asJSON bool
		stats  bool
	)
	cmd := &cobra.Command{
		Use:   "rider <id>",
		Short: "Show one rider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withClient(flags, func(f api.Fetcher) error {
				out := cmd.OutOrStdout()
				if stats {
					s, err := f.GetRiderStats(cmd.Context(), id)
					if err != nil {
						return err
					}
					if asJSON {
						return writeJSON(out, s)
					}
					tw := newTable(out)
					writeRider(tw, s.Rider())
					fmt.Fprintf(tw, "Total races\t%d\n", s.TotalRaces)
					fmt.Fprintf(tw, "Total points\t%s\n", s.TotalPointsLabel())
					fmt.Fprintf(tw, "Best position\t%s\n", s.BestPositionLabel())
					return tw.Flush()
				}

				r, err := f.GetRider(cmd.Context(), id)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(out, r)
				}
				tw := newTable(out)
				writeRider(tw, r)
				return tw.Flush()
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&stats, "stats", false, "include career statistics")
	return cmd
}

func writeRider(w io.Writer, r motogp.Rider) {
	fmt.Fprintf(w, "ID\t%d\n", r.ID)
	fmt.Fprintf(w, "Name\t%s\n", r.FullName())
	if badge, ok := r.Badge(); ok {
		fmt.Fprintf(w, "Nationality\t%s\n", badge)
	}
	fmt.Fprintf(w, "Status\t%s\n", r.StatusLabel())
}

func newRacesCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "races",
		Short: "List race circuits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(flags, func(f api.Fetcher) error {
				races, err := f.ListRaceCircuits(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if asJSON {
					return writeJSON(out, races)
				}
				if len(races) == 0 {
					_, err := fmt.Fprintln(out, "No races.")
					return err
				}
				tw := newTable(out)
				fmt.Fprintln(tw, "ID\tCIRCUIT\tDATE\tSEASON")
				for _, r := range races {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", r.ID, r.CircuitLabel(), r.DateLabel(), r.SeasonID)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newRaceCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "race <id>",
		Short: "Show one race circuit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withClient(flags, func(f api.Fetcher) error {
				r, err := f.GetRaceCircuit(cmd.Context(), id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if asJSON {
					return writeJSON(out, r)
				}
				tw := newTable(out)
				fmt.Fprintf(tw, "ID\t%d\n", r.ID)
				fmt.Fprintf(tw, "Circuit\t%s\n", r.CircuitLabel())
				fmt.Fprintf(tw, "Date\t%s\n", r.DateLabel())
				fmt.Fprintf(tw, "Season\t%d\n", r.SeasonID)
				return tw.Flush()
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newResultsCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "results",
		Short: "List race results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(flags, func(f api.Fetcher) error {
				results, err := f.ListResults(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if asJSON {
					return writeJSON(out, results)
				}
				if len(results) == 0 {
					_, err := fmt.Fprintln(out, "No results.")
					return err
				}
				tw := newTable(out)
				fmt.Fprintln(tw, "ID\tRIDER\tRACE\tPOS\tPOINTS")
				for _, r := range results {
					fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\n", r.ID, r.RiderID, r.RaceCircuitID, r.PositionLabel(), r.PointsLabel())
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
