package pillar

import (
	"fmt"
	"time"

	"github.com/roach88/saju/internal/astro"
	"github.com/roach88/saju/internal/calendar"
	"github.com/roach88/saju/internal/ganzhi"
	"github.com/roach88/saju/internal/ir"
)

// Day pillar anchor: 1900-01-01 (JDN 2415021) is 甲戌.
const (
	anchorDayNumber = 2415021
	anchorIndex     = 10
)

// Pillars is the four-pillar result. Hour is nil when the birth hour is
// unknown.
type Pillars struct {
	Year  ganzhi.StemBranch  `json:"year"`
	Month ganzhi.StemBranch  `json:"month"`
	Day   ganzhi.StemBranch  `json:"day"`
	Hour  *ganzhi.StemBranch `json:"hour"`
}

// Calculator computes pillars against a reference table.
type Calculator struct {
	ref         astro.Reference
	loc         *time.Location
	boundary    DayBoundary
	first, last int
}

// New returns a Calculator reading civil time in loc.
func New(ref astro.Reference, loc *time.Location, boundary DayBoundary) (*Calculator, error) {
	if loc == nil {
		return nil, ir.InvalidInput("pillar location is nil")
	}
	if boundary != DayBoundaryZiHour && boundary != DayBoundaryMidnight {
		return nil, ir.InvalidInput("unknown day boundary %d", int(boundary))
	}
	return &Calculator{
		ref:      ref,
		loc:      loc,
		boundary: boundary,
		first:    ref.FirstYear() + 1,
		last:     ref.LastYear() - 1,
	}, nil
}

// Boundary returns the configured day boundary policy.
func (c *Calculator) Boundary() DayBoundary { return c.boundary }

// Compute returns the pillars of civil date-time d. When hourKnown is false
// the clock fields are ignored and Hour is nil.
func (c *Calculator) Compute(d ir.GregorianDate, hourKnown bool) (Pillars, error) {
	if !hourKnown {
		d = d.DateOnly()
	}
	if err := d.Validate(); err != nil {
		return Pillars{}, err
	}
	if d.Year < c.first || d.Year > c.last {
		return Pillars{}, ir.UnsupportedYear(d.Year, c.first, c.last)
	}
	t := d.In(c.loc)

	year, err := c.YearPillar(t)
	if err != nil {
		return Pillars{}, err
	}
	month, err := c.MonthPillar(t)
	if err != nil {
		return Pillars{}, err
	}

	day := DayPillar(d)
	if hourKnown && d.Hour == 23 && c.boundary == DayBoundaryZiHour {
		day = day.Add(1)
	}
	p := Pillars{Year: year, Month: month, Day: day}
	if hourKnown {
		h := HourPillar(d)
		p.Hour = &h
	}
	return p, nil
}

// YearPillar returns the year pillar of instant t. The cycle year starts at
// Start of Spring.
func (c *Calculator) YearPillar(t time.Time) (ganzhi.StemBranch, error) {
	y := t.In(c.loc).Year()
	spring, err := c.ref.SolarTermMoment(y, astro.StartOfSpring)
	if err != nil {
		return 0, fmt.Errorf("year pillar: %w", err)
	}
	if t.Before(spring) {
		y--
	}
	return YearPillarOf(y), nil
}

// YearPillarOf returns the pillar of a cycle year (1984 is 甲子).
func YearPillarOf(year int) ganzhi.StemBranch {
	return ganzhi.FromIndex(year - 4)
}

// MonthPillar returns the month pillar of instant t.
func (c *Calculator) MonthPillar(t time.Time) (ganzhi.StemBranch, error) {
	sec, err := astro.SectionAt(c.ref, t)
	if err != nil {
		return 0, fmt.Errorf("month pillar: %w", err)
	}
	year, err := c.YearPillar(t)
	if err != nil {
		return 0, err
	}
	return MonthPillarOf(year.Stem(), SectionBranch(sec.Term)), nil
}

// SectionBranch maps a sectional term to its month branch: 小寒 opens the 丑
// month, 立春 the 寅 month, ... 大雪 the 子 month.
func SectionBranch(term int) ganzhi.Branch {
	return ganzhi.Branch(ganzhi.Mod(term/2+1, 12))
}

// MonthPillarOf applies the Five Tigers rule: the 寅 month of a 甲 or 己 year
// is 丙寅, of a 乙 or 庚 year 戊寅, and so on.
func MonthPillarOf(yearStem ganzhi.Stem, b ganzhi.Branch) ganzhi.StemBranch {
	tiger := ganzhi.StemJia.Add(int(yearStem)%5*2 + 2)
	stem := tiger.Add(ganzhi.Mod(int(b)-int(ganzhi.BranchYin), 12))
	return ganzhi.Pair(stem, b)
}

// DayPillar returns the pillar of the civil day of d, ignoring the clock.
func DayPillar(d ir.GregorianDate) ganzhi.StemBranch {
	return ganzhi.FromIndex(calendar.DayNumberOf(d) - anchorDayNumber + anchorIndex)
}

// HourBranch returns the two-hour slot of hour h: 23-00 子, 01-02 丑, ...
func HourBranch(h int) ganzhi.Branch {
	return ganzhi.Branch((h + 1) / 2 % 12)
}

// HourPillar returns the hour pillar of d. From 23:00 the hour belongs to the
// next day's 子 hour and takes its stem from that day.
func HourPillar(d ir.GregorianDate) ganzhi.StemBranch {
	dayStem := DayPillar(d).Stem()
	if d.Hour == 23 {
		dayStem = dayStem.Add(1)
	}
	return HourPillarOf(dayStem, HourBranch(d.Hour))
}

// HourPillarOf applies the Five Rats rule: the 子 hour of a 甲 or 己 day is
// 甲子, of a 乙 or 庚 day 丙子, and so on.
func HourPillarOf(dayStem ganzhi.Stem, b ganzhi.Branch) ganzhi.StemBranch {
	rat := ganzhi.StemJia.Add(int(dayStem) % 5 * 2)
	return ganzhi.Pair(rat.Add(int(b)), b)
}
