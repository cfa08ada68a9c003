package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/saju/internal/engine"
	"github.com/roach88/saju/internal/harness"
	"github.com/roach88/saju/internal/ir"
)

// DateConversion is the payload of the lunar and solar commands.
type DateConversion struct {
	Solar     string           `json:"solar"`
	Lunar     ir.LunisolarDate `json:"lunar"`
	LeapMonth int              `json:"leap_month"`
	MonthDays int              `json:"month_days"`
}

// NewLunarCommand creates the lunar command (solar → lunar).
func NewLunarCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lunar <yyyy-mm-dd>",
		Short: "Convert a Gregorian date to the lunisolar calendar",
		Example: `  saju lunar 1990-05-15
  saju lunar 2020-06-01 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(cmd, rootOpts)
			d, err := harness.ParseDate(args[0])
			if err != nil {
				return f.Fail(err)
			}
			eng, err := rootOpts.Engine(cmd.Context())
			if err != nil {
				return f.Fail(err)
			}
			lunar, err := eng.SolarToLunar(d)
			if err != nil {
				return f.Fail(err)
			}
			conv, err := describeConversion(eng, d, lunar)
			if err != nil {
				return f.Fail(err)
			}
			return f.Success(conv, func(w io.Writer) {
				fmt.Fprintf(w, "%s → %s (lunar)\n", conv.Solar, formatLunar(conv))
			})
		},
	}
}

// SolarOptions holds flags for the solar command.
type SolarOptions struct {
	*RootOptions
	Leap bool
}

// NewSolarCommand creates the solar command (lunar → solar).
func NewSolarCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolarOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solar <yyyy-mm-dd>",
		Short: "Convert a lunisolar date to the Gregorian calendar",
		Example: `  saju solar 1990-04-21
  saju solar 2020-04-10 --leap`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(cmd, opts.RootOptions)
			d, err := harness.ParseDate(args[0])
			if err != nil {
				return f.Fail(err)
			}
			eng, err := opts.Engine(cmd.Context())
			if err != nil {
				return f.Fail(err)
			}
			lunar := ir.LunisolarDate{Year: d.Year, Month: d.Month, Day: d.Day, Leap: opts.Leap}
			solar, err := eng.LunarToSolar(lunar)
			if err != nil {
				return f.Fail(err)
			}
			conv, err := describeConversion(eng, solar, lunar)
			if err != nil {
				return f.Fail(err)
			}
			return f.Success(conv, func(w io.Writer) {
				fmt.Fprintf(w, "%s (lunar) → %s\n", formatLunar(conv), conv.Solar)
			})
		},
	}
	cmd.Flags().BoolVar(&opts.Leap, "leap", false, "the date is in the leap month")
	return cmd
}

// describeConversion adds the leap month of the lunar year and the length
// of the lunar month. Both stay zero for a lunar year that starts before
// the supported range (January dates of the first year).
func describeConversion(eng *engine.Engine, solar ir.GregorianDate, lunar ir.LunisolarDate) (DateConversion, error) {
	conv := DateConversion{Solar: solar.ISODate(), Lunar: lunar}
	months, err := eng.MonthsOf(lunar.Year)
	if ir.IsUnsupportedYear(err) {
		slog.Debug("month listing unavailable", "lunar_year", lunar.Year, "error", err)
		return conv, nil
	}
	if err != nil {
		return conv, err
	}
	for _, m := range months {
		if m.Leap {
			conv.LeapMonth = m.Number
		}
		if m.Number == lunar.Month && m.Leap == lunar.Leap {
			conv.MonthDays = m.Days
		}
	}
	return conv, nil
}

func formatLunar(c DateConversion) string {
	s := c.Lunar.String()
	if c.Lunar.Leap {
		s += " (leap month)"
	}
	return s
}
