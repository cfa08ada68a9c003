package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/saju/internal/engine"
	"github.com/roach88/saju/internal/harness"
	"github.com/roach88/saju/internal/ir"
)

// ChartOptions holds flags for the chart command.
type ChartOptions struct {
	*RootOptions
	Date   string
	Time   string
	Gender string
	Lunar  bool
	Leap   bool
	Luck   int
}

// NewChartCommand creates the chart command.
func NewChartCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ChartOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Compute a four-pillar chart",
		Long: `Compute the four pillars, lunar date, element balance and, when a
gender is given, the luck periods for a birth date.

Dates are civil dates in the policy zone (KST unless --policy says otherwise).
Without --time the hour is unknown and the hour pillar is left out.

Exit codes:
  0 - Chart computed
  1 - Input rejected (unsupported year, invalid lunar date, invalid gender)
  2 - Command error

Examples:
  saju chart --date 1990-05-15 --time 14:00 --gender female
  saju chart --date 1990-04-21 --lunar --gender m --luck 4
  saju chart --date 2020-04-10 --lunar --leap --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "birth date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&opts.Time, "time", "", "birth time HH:MM (omit if unknown)")
	cmd.Flags().StringVar(&opts.Gender, "gender", "", "male|female, adds luck periods")
	cmd.Flags().BoolVar(&opts.Lunar, "lunar", false, "--date is a lunisolar date")
	cmd.Flags().BoolVar(&opts.Leap, "leap", false, "with --lunar: the date is in the leap month")
	cmd.Flags().IntVar(&opts.Luck, "luck", 0, "number of luck periods (default from policy)")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func runChart(cmd *cobra.Command, opts *ChartOptions) error {
	f := newFormatter(cmd, opts.RootOptions)

	q, err := opts.query()
	if err != nil {
		return f.Fail(err)
	}
	eng, err := opts.Engine(cmd.Context())
	if err != nil {
		return f.Fail(err)
	}
	chart, err := eng.Compute(q)
	if err != nil {
		return f.Fail(err)
	}
	f.VerboseLog("query %s fingerprint %s", chart.QueryID, chart.Fingerprint)
	return f.Success(chart, func(w io.Writer) { renderChart(w, chart) })
}

func (o *ChartOptions) query() (engine.Query, error) {
	q := engine.Query{LuckCount: o.Luck}

	d, err := harness.ParseDate(o.Date)
	if err != nil {
		return q, err
	}
	if o.Leap && !o.Lunar {
		return q, NewExitError(ExitCommandError, "--leap requires --lunar")
	}
	if o.Lunar {
		q.Lunar = &engine.LunarInput{Year: d.Year, Month: d.Month, Day: d.Day, Leap: o.Leap}
	} else {
		q.Date = d
	}

	if o.Time != "" {
		h, m, err := harness.ParseClock(o.Time)
		if err != nil {
			return q, err
		}
		q.Date.Hour, q.Date.Minute = h, m
		q.HourKnown = true
	}
	if o.Gender != "" {
		g, err := ir.ParseGender(o.Gender)
		if err != nil {
			return q, err
		}
		q.Gender = &g
	}
	return q, nil
}
