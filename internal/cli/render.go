package cli

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/roach88/saju/internal/engine"
	"github.com/roach88/saju/internal/ganzhi"
)

var elementColors = map[ganzhi.Element]*color.Color{
	ganzhi.Wood:  color.New(color.FgGreen),
	ganzhi.Fire:  color.New(color.FgRed),
	ganzhi.Earth: color.New(color.FgYellow),
	ganzhi.Metal: color.New(color.FgHiWhite, color.Bold),
	ganzhi.Water: color.New(color.FgBlue),
}

func paint(e ganzhi.Element, s string) string {
	return elementColors[e].Sprint(s)
}

// renderChart prints a chart as four columns, hour first as charts are
// traditionally read right to left.
func renderChart(w io.Writer, c *engine.Chart) {
	when := c.Solar.ISODate()
	if c.HourKnown {
		when = fmt.Sprintf("%s %02d:%02d", when, c.Solar.Hour, c.Solar.Minute)
	}
	fmt.Fprintf(w, "%s %s (%s)\n", color.CyanString("Solar "), when, c.Policy.Zone)
	fmt.Fprintf(w, "%s %s\n", color.CyanString("Lunar "), c.Lunar.String())
	fmt.Fprintf(w, "%s %s %s %s\n", color.CyanString("Self  "),
		paint(c.DayMaster.Element, c.DayMaster.Stem), c.DayMaster.Label, c.Zodiac.Name)
	fmt.Fprintln(w)

	type column struct {
		title string
		view  *engine.PillarView
	}
	cols := []column{
		{"hour", c.Pillars.Hour},
		{"day", &c.Pillars.Day},
		{"month", &c.Pillars.Month},
		{"year", &c.Pillars.Year},
	}

	row := func(label string, cell func(v *engine.PillarView) string) {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%-8s", label)
		for _, col := range cols {
			s := "-"
			if col.view != nil {
				s = cell(col.view)
			}
			sb.WriteString(pad(s, 18))
		}
		fmt.Fprintln(w, strings.TrimRight(sb.String(), " "))
	}

	var header strings.Builder
	fmt.Fprintf(&header, "%-8s", "")
	for _, col := range cols {
		header.WriteString(pad(col.title, 18))
	}
	fmt.Fprintln(w, color.HiBlackString(strings.TrimRight(header.String(), " ")))

	row("stem", func(v *engine.PillarView) string {
		return paint(v.StemElement, v.Stem) + " " + v.StemElement.String()
	})
	row("branch", func(v *engine.PillarView) string {
		return paint(v.BranchElement, v.Branch) + " " + v.BranchElement.String()
	})
	row("hangul", func(v *engine.PillarView) string { return v.Hangul })
	row("ten god", func(v *engine.PillarView) string {
		if v.StemTenGod == nil {
			return "self/" + v.BranchTenGod.String()
		}
		return v.StemTenGod.String() + "/" + v.BranchTenGod.String()
	})
	row("hidden", func(v *engine.PillarView) string { return strings.Join(v.HiddenStems, "") })
	row("na yin", func(v *engine.PillarView) string { return v.NaYin })
	fmt.Fprintln(w)

	var bal strings.Builder
	for i, e := range ganzhi.Elements {
		if i > 0 {
			bal.WriteString("  ")
		}
		fmt.Fprintf(&bal, "%s %d%%", paint(e, e.String()), c.Elements.Percent[e])
	}
	fmt.Fprintf(w, "%s %s  (dominant %s, weak %s)\n", color.CyanString("Elements"),
		bal.String(), c.Elements.Dominant, c.Elements.Weak)

	if c.Luck != nil {
		fmt.Fprintf(w, "%s %s, starts at %s\n", color.CyanString("Luck    "),
			c.Luck.Direction, c.Luck.StartAge)
		for _, p := range c.Luck.Periods {
			fmt.Fprintf(w, "  %2d  %s %s  age %-6s - %-6s  %d-%d\n",
				p.Index,
				paint(p.Pillar.Stem().Element(), p.Pillar.Hanja()),
				p.Pillar.Hangul(),
				p.StartAge, p.EndAge,
				p.StartYear, p.EndYear)
		}
	}
}

// ansiEscape matches the SGR sequences fatih/color emits.
var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// pad right-pads s to width terminal columns. Hangul and CJK take two
// columns; colour escapes take none.
func pad(s string, width int) string {
	n := runewidth.StringWidth(ansiEscape.ReplaceAllString(s, ""))
	if n >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-n)
}
