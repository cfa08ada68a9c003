package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/saju/internal/astro"
	"github.com/roach88/saju/internal/store"
)

// TableOptions holds flags shared by the table subcommands.
type TableOptions struct {
	*RootOptions
	DB        string
	FirstYear int
	LastYear  int
	Recompute bool
}

// TableReport describes a reference table snapshot.
type TableReport struct {
	Path        string            `json:"path"`
	FirstYear   int               `json:"first_year"`
	LastYear    int               `json:"last_year"`
	Terms       int               `json:"solar_terms"`
	NewMoons    int               `json:"new_moons"`
	Fingerprint string            `json:"fingerprint"`
	Meta        map[string]string `json:"meta,omitempty"`
	Matches     *bool             `json:"matches_model,omitempty"`
}

// NewTableCommand creates the table command group.
func NewTableCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TableOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Export or verify a reference table snapshot",
		Long: `Manage SQLite snapshots of the solar term and new moon reference table.

A snapshot can be passed to any command with --table-db to skip computing
the table at startup.`,
	}
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "snapshot database path (required)")
	_ = cmd.MarkPersistentFlagRequired("db")

	export := &cobra.Command{
		Use:   "export",
		Short: "Compute the reference table and save it",
		Example: `  saju table export --db table.db
  saju table export --db small.db --from 1989 --to 2001`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTableExport(cmd, opts)
		},
	}
	export.Flags().IntVar(&opts.FirstYear, "from", astro.DefaultFirstYear, "first Gregorian year")
	export.Flags().IntVar(&opts.LastYear, "to", astro.DefaultLastYear, "last Gregorian year")

	verify := &cobra.Command{
		Use:   "verify",
		Short: "Load and validate a snapshot",
		Long: `Load a snapshot, run the table consistency checks and compare its
fingerprint with the one recorded at export. With --recompute the same
range is rebuilt from the ephemeris model and compared as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTableVerify(cmd, opts)
		},
	}
	verify.Flags().BoolVar(&opts.Recompute, "recompute", false, "also compare against a freshly computed table")

	cmd.AddCommand(export, verify)
	return cmd
}

func runTableExport(cmd *cobra.Command, opts *TableOptions) error {
	f := newFormatter(cmd, opts.RootOptions)

	start := time.Now()
	tbl, err := astro.Compute(opts.FirstYear, opts.LastYear)
	if err != nil {
		return f.Fail(err)
	}
	slog.Info("reference table computed",
		"first_year", tbl.FirstYear(),
		"last_year", tbl.LastYear(),
		"duration", time.Since(start))

	st, err := store.Open(opts.DB)
	if err != nil {
		return f.Fail(WrapExitError(ExitCommandError, "open table database", err))
	}
	defer st.Close()

	f.VerboseLog("writing %d-%d to %s", tbl.FirstYear(), tbl.LastYear(), opts.DB)
	if err := st.SaveTable(cmd.Context(), tbl); err != nil {
		return f.Fail(WrapExitError(ExitCommandError, "save table", err))
	}
	report, err := describeTable(opts.DB, tbl)
	if err != nil {
		return f.Fail(err)
	}
	return f.Success(report, func(w io.Writer) {
		fmt.Fprintf(w, "✓ saved %d-%d to %s\n", report.FirstYear, report.LastYear, report.Path)
		fmt.Fprintf(w, "  %d solar terms, %d new moons\n", report.Terms, report.NewMoons)
		fmt.Fprintf(w, "  fingerprint %s\n", report.Fingerprint)
	})
}

func runTableVerify(cmd *cobra.Command, opts *TableOptions) error {
	f := newFormatter(cmd, opts.RootOptions)

	tbl, err := loadTable(cmd.Context(), opts.DB)
	if err != nil {
		return f.Fail(err)
	}
	report, err := describeTable(opts.DB, tbl)
	if err != nil {
		return f.Fail(err)
	}

	st, err := store.Open(opts.DB)
	if err != nil {
		return f.Fail(WrapExitError(ExitCommandError, "open table database", err))
	}
	report.Meta, err = st.Meta(cmd.Context())
	st.Close()
	if err != nil {
		return f.Fail(err)
	}

	if opts.Recompute {
		fresh, err := astro.Compute(tbl.FirstYear(), tbl.LastYear())
		if err != nil {
			return f.Fail(err)
		}
		fp, err := fresh.Fingerprint()
		if err != nil {
			return f.Fail(err)
		}
		match := fp == report.Fingerprint
		report.Matches = &match
		if !match {
			slog.Warn("snapshot differs from the ephemeris model",
				"snapshot", report.Fingerprint, "model", fp)
		}
	}

	if err := f.Success(report, func(w io.Writer) {
		fmt.Fprintf(w, "✓ %s: %d-%d, %d solar terms, %d new moons\n",
			report.Path, report.FirstYear, report.LastYear, report.Terms, report.NewMoons)
		fmt.Fprintf(w, "  fingerprint %s\n", report.Fingerprint)
		if report.Matches != nil {
			if *report.Matches {
				fmt.Fprintln(w, "  matches the ephemeris model")
			} else {
				fmt.Fprintln(w, "✗ differs from the ephemeris model")
			}
		}
	}); err != nil {
		return err
	}
	if report.Matches != nil && !*report.Matches {
		return &ExitError{Code: ExitFailure, Message: "snapshot differs from the ephemeris model", Reported: true}
	}
	return nil
}

func describeTable(path string, tbl *astro.Table) (TableReport, error) {
	fp, err := tbl.Fingerprint()
	if err != nil {
		return TableReport{}, err
	}
	return TableReport{
		Path:        path,
		FirstYear:   tbl.FirstYear(),
		LastYear:    tbl.LastYear(),
		Terms:       len(tbl.TermRows()),
		NewMoons:    len(tbl.MoonRows()),
		Fingerprint: fp,
	}, nil
}
