package calendar

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/roach88/saju/internal/astro"
	"github.com/roach88/saju/internal/ir"
)

// Month is one lunar month of the index.
type Month struct {
	Year   int              `json:"year"`
	Number int              `json:"month"`
	Leap   bool             `json:"is_leap_month"`
	Start  ir.GregorianDate `json:"start"`
	Days   int              `json:"days"`

	startDay int
}

type monthKey struct {
	year, number int
	leap         bool
}

// Converter maps Gregorian dates to lunisolar dates and back.
type Converter struct {
	loc    *time.Location
	months []Month
	byKey  map[monthKey]int

	// Supported Gregorian years, and the lunar years listed by MonthsOf.
	// Lunar dates of the partly indexed years either side convert when they
	// land on a supported civil day.
	first, last int
}

// New builds the month index from ref, reckoning civil days in loc. The
// supported years are one inside each end of ref's range.
func New(ref astro.Reference, loc *time.Location) (*Converter, error) {
	if loc == nil {
		return nil, ir.InvalidInput("calendar location is nil")
	}
	first, last := ref.FirstYear(), ref.LastYear()
	if last-first < 2 {
		return nil, ir.InconsistentTable("reference table %d-%d is too short for a calendar", first, last)
	}

	localDay := func(t time.Time) int {
		lt := t.In(loc)
		return DayNumber(lt.Year(), int(lt.Month()), lt.Day())
	}

	var moons, principals []int
	solstices := make(map[int]int, last-first+1)
	for y := first; y <= last; y++ {
		n, err := ref.NewMoonCount(y)
		if err != nil {
			return nil, fmt.Errorf("new moons of %d: %w", y, err)
		}
		for i := range n {
			t, err := ref.NewMoonMoment(y, i)
			if err != nil {
				return nil, fmt.Errorf("new moon %d of %d: %w", i, y, err)
			}
			moons = append(moons, localDay(t))
		}
		for term := 1; term < astro.TermsPerYear; term += 2 {
			t, err := ref.SolarTermMoment(y, term)
			if err != nil {
				return nil, fmt.Errorf("solar term %d of %d: %w", term, y, err)
			}
			principals = append(principals, localDay(t))
			if term == astro.WinterSolstice {
				solstices[y] = localDay(t)
			}
		}
	}
	if !sort.IntsAreSorted(moons) || !sort.IntsAreSorted(principals) {
		return nil, ir.InconsistentTable("reference moments are not in order")
	}

	c := &Converter{loc: loc, byKey: make(map[monthKey]int), first: first + 1, last: last - 1}
	for y := first; y < last; y++ {
		months, err := buildSui(y, solstices[y], solstices[y+1], moons, principals)
		if err != nil {
			return nil, err
		}
		c.months = append(c.months, months...)
	}
	for i, m := range c.months {
		c.byKey[monthKey{m.Year, m.Number, m.Leap}] = i
	}
	slog.Debug("lunar month index built",
		"months", len(c.months), "first", c.first, "last", c.last, "zone", loc.String())
	return c, nil
}

// monthStartingBefore returns the index of the latest new moon day <= day.
func monthStartingBefore(moons []int, day int) int {
	return sort.Search(len(moons), func(i int) bool { return moons[i] > day }) - 1
}

// buildSui numbers the months from the month holding the winter solstice of
// year y up to (not including) the month holding the next one. Only the
// opening new moons of both solstice months are needed, so the last sui of
// a table closes on the table's final December new moon.
func buildSui(y, solstice, nextSolstice int, moons, principals []int) ([]Month, error) {
	from := monthStartingBefore(moons, solstice)
	to := monthStartingBefore(moons, nextSolstice)
	if from < 0 || to <= from {
		return nil, ir.InconsistentTable("new moons do not bracket the %d winter solstice", y)
	}
	count := to - from
	if count != 12 && count != 13 {
		return nil, ir.InconsistentTable("sui starting %d has %d months", y, count)
	}

	hasPrincipal := func(start, end int) bool {
		i := sort.SearchInts(principals, start)
		return i < len(principals) && principals[i] < end
	}

	leapAt := -1
	if count == 13 {
		for i := from + 1; i < to; i++ {
			if !hasPrincipal(moons[i], moons[i+1]) {
				leapAt = i
				break
			}
		}
		if leapAt < 0 {
			return nil, ir.InconsistentTable("13-month sui starting %d has no month without a principal term", y)
		}
	}

	months := make([]Month, 0, count)
	number, year := 11, y
	for i := from; i < to; i++ {
		leap := i == leapAt
		if i > from && !leap {
			number = number%12 + 1
			if number == 1 {
				year = y + 1
			}
		}
		months = append(months, Month{
			Year:     year,
			Number:   number,
			Leap:     leap,
			Start:    DateOf(moons[i]),
			Days:     moons[i+1] - moons[i],
			startDay: moons[i],
		})
	}
	return months, nil
}

// FirstYear returns the first supported year.
func (c *Converter) FirstYear() int { return c.first }

// LastYear returns the last supported year.
func (c *Converter) LastYear() int { return c.last }

// Location returns the civil time zone months are reckoned in.
func (c *Converter) Location() *time.Location { return c.loc }

func (c *Converter) checkYear(year int) error {
	if year < c.first || year > c.last {
		return ir.UnsupportedYear(year, c.first, c.last)
	}
	return nil
}

// SolarToLunar returns the lunisolar date of the civil day d. The time of
// day is ignored.
func (c *Converter) SolarToLunar(d ir.GregorianDate) (ir.LunisolarDate, error) {
	if err := d.Validate(); err != nil {
		return ir.LunisolarDate{}, err
	}
	if err := c.checkYear(d.Year); err != nil {
		return ir.LunisolarDate{}, err
	}
	day := DayNumberOf(d)
	i := sort.Search(len(c.months), func(i int) bool { return c.months[i].startDay > day }) - 1
	if i < 0 {
		return ir.LunisolarDate{}, ir.UnsupportedYear(d.Year, c.first, c.last)
	}
	m := c.months[i]
	return ir.LunisolarDate{
		Year:  m.Year,
		Month: m.Number,
		Day:   day - m.startDay + 1,
		Leap:  m.Leap,
	}, nil
}

// LunarToSolar returns the Gregorian date of a lunisolar date.
func (c *Converter) LunarToSolar(d ir.LunisolarDate) (ir.GregorianDate, error) {
	m, err := c.month(d.Year, d.Month, d.Leap)
	if err != nil {
		return ir.GregorianDate{}, err
	}
	if d.Day < 1 || d.Day > m.Days {
		return ir.GregorianDate{}, ir.InvalidLunarDate(d, fmt.Sprintf("month has %d days", m.Days))
	}
	out := DateOf(m.startDay + d.Day - 1)
	if c.checkYear(d.Year) != nil {
		if err := c.checkYear(out.Year); err != nil {
			return ir.GregorianDate{}, err
		}
	}
	return out, nil
}

// month looks up a month of the index. A lunar date is accepted when its
// lunar year is supported, or when it falls on a supported civil day: lunar
// 12/1899 opens on 1900-01-01 and must convert back.
func (c *Converter) month(year, number int, leap bool) (Month, error) {
	if len(c.months) == 0 || year < c.months[0].Year || year > c.months[len(c.months)-1].Year {
		return Month{}, ir.UnsupportedYear(year, c.first, c.last)
	}
	d := ir.LunisolarDate{Year: year, Month: number, Day: 1, Leap: leap}
	if number < 1 || number > 12 {
		return Month{}, ir.InvalidLunarDate(d, "month must be 1-12")
	}
	i, ok := c.byKey[monthKey{year, number, leap}]
	if ok {
		return c.months[i], nil
	}
	// Edge years are only partly indexed.
	if err := c.checkYear(year); err != nil {
		return Month{}, err
	}
	if !leap {
		return Month{}, ir.InvalidLunarDate(d, "month not in index")
	}
	lm, _ := c.LeapMonth(year)
	if lm == 0 {
		return Month{}, ir.InvalidLunarDate(d, "year has no leap month")
	}
	return Month{}, ir.InvalidLunarDate(d, fmt.Sprintf("leap month of %d is %d", year, lm))
}

// MonthsOf lists the months of lunar year, in order.
func (c *Converter) MonthsOf(year int) ([]Month, error) {
	if err := c.checkYear(year); err != nil {
		return nil, err
	}
	start, ok := c.byKey[monthKey{year, 1, false}]
	if !ok {
		return nil, ir.InconsistentTable("lunar year %d has no first month", year)
	}
	var out []Month
	for i := start; i < len(c.months) && c.months[i].Year == year; i++ {
		out = append(out, c.months[i])
	}
	return out, nil
}

// LeapMonth returns the number of the leap month of lunar year, or 0.
func (c *Converter) LeapMonth(year int) (int, error) {
	months, err := c.MonthsOf(year)
	if err != nil {
		return 0, err
	}
	for _, m := range months {
		if m.Leap {
			return m.Number, nil
		}
	}
	return 0, nil
}

// DaysInMonth returns the length (29 or 30) of a lunar month.
func (c *Converter) DaysInMonth(year, month int, leap bool) (int, error) {
	m, err := c.month(year, month, leap)
	if err != nil {
		return 0, err
	}
	return m.Days, nil
}
