package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/roach88/saju/internal/astro"
	"github.com/roach88/saju/internal/config"
	"github.com/roach88/saju/internal/engine"
	"github.com/roach88/saju/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Policy  string // CUE policy file
	TableDB string // SQLite reference table snapshot
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the saju CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "saju",
		Short: "saju - four pillars and lunisolar calendar",
		Long:  "Computes four-pillar (saju) charts, lunisolar dates and luck periods from a solar-term reference table.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			setupLogging(opts.Verbose)
			if opts.Format == "json" {
				color.NoColor = true
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Policy, "policy", "", "CUE policy file (day boundary, age rule, zone, luck)")
	cmd.PersistentFlags().StringVar(&opts.TableDB, "table-db", "", "load the reference table from a SQLite snapshot instead of computing it")

	cmd.AddCommand(NewChartCommand(opts))
	cmd.AddCommand(NewLunarCommand(opts))
	cmd.AddCommand(NewSolarCommand(opts))
	cmd.AddCommand(NewTableCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// setupLogging sends slog output to stderr, Debug with --verbose.
func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// Engine builds the engine the global flags describe. With neither
// --policy nor --table-db the shared default engine is returned.
func (o *RootOptions) Engine(ctx context.Context) (*engine.Engine, error) {
	var opts []engine.Option
	if o.Policy != "" {
		p, err := config.Load(o.Policy)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "load policy", err)
		}
		if opts, err = p.Options(); err != nil {
			return nil, WrapExitError(ExitCommandError, "policy "+o.Policy, err)
		}
	}

	if o.TableDB != "" {
		tbl, err := loadTable(ctx, o.TableDB)
		if err != nil {
			return nil, err
		}
		return engine.New(tbl, opts...)
	}
	if len(opts) == 0 {
		return engine.Default()
	}

	slog.Debug("computing reference table", "first_year", astro.DefaultFirstYear, "last_year", astro.DefaultLastYear)
	tbl, err := astro.ComputeDefault()
	if err != nil {
		return nil, err
	}
	return engine.New(tbl, opts...)
}

func loadTable(ctx context.Context, path string) (*astro.Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, WrapExitError(ExitCommandError, "table database not found", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open table database", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()
	tbl, err := st.LoadTable(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("reference table loaded", "path", path, "first_year", tbl.FirstYear(), "last_year", tbl.LastYear())
	return tbl, nil
}
