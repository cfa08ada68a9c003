package calendar

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/saju/internal/astro"
	"github.com/roach88/saju/internal/ir"
)

var kst = time.FixedZone("KST", 9*60*60)

func newConverter(t *testing.T, first, last int) (*Converter, *astro.Table) {
	t.Helper()
	tbl, err := astro.Compute(first, last)
	require.NoError(t, err)
	c, err := New(tbl, kst)
	require.NoError(t, err)
	return c, tbl
}

func TestSolarToLunarNewYears(t *testing.T) {
	c, _ := newConverter(t, 1989, 2025)

	for _, d := range []ir.GregorianDate{
		ir.Date(1990, 1, 27),
		ir.Date(2000, 2, 5),
		ir.Date(2020, 1, 25),
		ir.Date(2023, 1, 22),
		ir.Date(2024, 2, 10),
	} {
		t.Run(d.ISODate(), func(t *testing.T) {
			got, err := c.SolarToLunar(d)
			require.NoError(t, err)
			assert.Equal(t, ir.LunisolarDate{Year: d.Year, Month: 1, Day: 1}, got)

			prev, err := c.SolarToLunar(DateOf(DayNumberOf(d) - 1))
			require.NoError(t, err)
			assert.Equal(t, d.Year-1, prev.Year)
			assert.Equal(t, 12, prev.Month)
		})
	}
}

func TestSolarToLunarExample(t *testing.T) {
	c, _ := newConverter(t, 1989, 1991)

	got, err := c.SolarToLunar(ir.DateTime(1990, 5, 15, 14, 0))
	require.NoError(t, err)
	assert.Equal(t, ir.LunisolarDate{Year: 1990, Month: 4, Day: 21}, got)

	back, err := c.LunarToSolar(got)
	require.NoError(t, err)
	assert.Equal(t, ir.Date(1990, 5, 15), back)
}

func TestSolarToLunarIgnoresTimeOfDay(t *testing.T) {
	c, _ := newConverter(t, 2019, 2021)

	midnight, err := c.SolarToLunar(ir.DateTime(2020, 6, 1, 0, 0))
	require.NoError(t, err)
	late, err := c.SolarToLunar(ir.GregorianDate{Year: 2020, Month: 6, Day: 1, Hour: 23, Minute: 59, Second: 59})
	require.NoError(t, err)
	assert.Equal(t, midnight, late)
}

func TestLeapMonths(t *testing.T) {
	c, _ := newConverter(t, 1989, 2025)

	tests := []struct {
		year  int
		leap  int
		start ir.GregorianDate
		days  int
	}{
		{1990, 5, ir.Date(1990, 6, 23), 0},
		{2020, 4, ir.Date(2020, 5, 23), 29},
		{2023, 2, ir.Date(2023, 3, 22), 0},
		{2021, 0, ir.GregorianDate{}, 0},
		{2024, 0, ir.GregorianDate{}, 0},
	}
	for _, tt := range tests {
		t.Run(ir.Date(tt.year, 1, 1).ISODate(), func(t *testing.T) {
			leap, err := c.LeapMonth(tt.year)
			require.NoError(t, err)
			assert.Equal(t, tt.leap, leap)

			months, err := c.MonthsOf(tt.year)
			require.NoError(t, err)
			if tt.leap == 0 {
				assert.Len(t, months, 12)
				return
			}
			assert.Len(t, months, 13)
			got, err := c.LunarToSolar(ir.LunisolarDate{Year: tt.year, Month: tt.leap, Day: 1, Leap: true})
			require.NoError(t, err)
			assert.Equal(t, tt.start, got)
			if tt.days > 0 {
				n, err := c.DaysInMonth(tt.year, tt.leap, true)
				require.NoError(t, err)
				assert.Equal(t, tt.days, n)
			}
		})
	}

	got, err := c.SolarToLunar(ir.Date(2020, 6, 1))
	require.NoError(t, err)
	assert.Equal(t, ir.LunisolarDate{Year: 2020, Month: 4, Day: 10, Leap: true}, got)
	assert.Equal(t, "2020-L04-10", got.String())
}

func TestMonthsOfIsOrdered(t *testing.T) {
	c, _ := newConverter(t, 2019, 2021)

	months, err := c.MonthsOf(2020)
	require.NoError(t, err)
	require.NotEmpty(t, months)
	assert.Equal(t, 1, months[0].Number)
	assert.Equal(t, ir.Date(2020, 1, 25), months[0].Start)
	for i := 1; i < len(months); i++ {
		prev, cur := months[i-1], months[i]
		assert.Equal(t, DayNumberOf(prev.Start)+prev.Days, DayNumberOf(cur.Start))
		assert.Contains(t, []int{29, 30}, cur.Days)
	}
	assert.Equal(t, 12, months[len(months)-1].Number)
}

func TestLunarToSolarRejectsInvalidDates(t *testing.T) {
	c, _ := newConverter(t, 2019, 2022)

	tests := []struct {
		name string
		in   ir.LunisolarDate
	}{
		{"leap flag in a year without leap", ir.LunisolarDate{Year: 2021, Month: 4, Day: 1, Leap: true}},
		{"leap flag on the wrong month", ir.LunisolarDate{Year: 2020, Month: 5, Day: 1, Leap: true}},
		{"day past month end", ir.LunisolarDate{Year: 2020, Month: 4, Day: 30, Leap: true}},
		{"day zero", ir.LunisolarDate{Year: 2020, Month: 1, Day: 0}},
		{"month thirteen", ir.LunisolarDate{Year: 2020, Month: 13, Day: 1}},
		{"month zero", ir.LunisolarDate{Year: 2020, Month: 0, Day: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.LunarToSolar(tt.in)
			require.Error(t, err)
			assert.True(t, ir.IsInvalidLunarDate(err), "got %v", err)
		})
	}

	_, err := c.LunarToSolar(ir.LunisolarDate{Year: 2021, Month: 12, Day: 1})
	assert.NoError(t, err)
	_, err = c.LunarToSolar(ir.LunisolarDate{Year: 2019, Month: 1, Day: 1})
	assert.True(t, ir.IsUnsupportedYear(err))
}

func TestSupportedRange(t *testing.T) {
	c, _ := newConverter(t, 2019, 2022)
	assert.Equal(t, 2020, c.FirstYear())
	assert.Equal(t, 2021, c.LastYear())

	_, err := c.SolarToLunar(ir.Date(2019, 12, 31))
	assert.True(t, ir.IsUnsupportedYear(err))
	_, err = c.SolarToLunar(ir.Date(2022, 1, 1))
	assert.True(t, ir.IsUnsupportedYear(err))
	_, err = c.SolarToLunar(ir.Date(2021, 2, 30))
	assert.True(t, ir.IsInvalidInput(err))
}

func TestNewOverShortTables(t *testing.T) {
	for _, first := range []int{1899, 1950, 1989, 1998, 2019, 2023, 2099} {
		t.Run(ir.Date(first, 1, 1).ISODate(), func(t *testing.T) {
			c, _ := newConverter(t, first, first+2)
			assert.Equal(t, first+1, c.FirstYear())
			assert.Equal(t, first+1, c.LastYear())

			for day := DayNumber(first+1, 1, 1); day <= DayNumber(first+1, 12, 31); day++ {
				d := DateOf(day)
				l, err := c.SolarToLunar(d)
				require.NoError(t, err, d.ISODate())
				back, err := c.LunarToSolar(l)
				require.NoError(t, err, l.String())
				require.Equal(t, d, back, l.String())
			}
		})
	}
}

func TestRoundTripAtRangeEdges(t *testing.T) {
	c, _ := newConverter(t, 2019, 2022)

	// 2020-01-01 falls in the twelfth month of lunar 2019, which is only
	// partly indexed.
	l, err := c.SolarToLunar(ir.Date(2020, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, 2019, l.Year)
	assert.Equal(t, 12, l.Month)
	back, err := c.LunarToSolar(l)
	require.NoError(t, err)
	assert.Equal(t, ir.Date(2020, 1, 1), back)
	n, err := c.DaysInMonth(2019, 12, false)
	require.NoError(t, err)
	assert.Contains(t, []int{29, 30}, n)

	// Lunar 11/2019 lies entirely before the supported civil range.
	_, err = c.LunarToSolar(ir.LunisolarDate{Year: 2019, Month: 11, Day: 1})
	assert.True(t, ir.IsUnsupportedYear(err), "got %v", err)
	_, err = c.MonthsOf(2019)
	assert.True(t, ir.IsUnsupportedYear(err), "got %v", err)
	_, err = c.LunarToSolar(ir.LunisolarDate{Year: 2018, Month: 6, Day: 1})
	assert.True(t, ir.IsUnsupportedYear(err), "got %v", err)

	l, err = c.SolarToLunar(ir.Date(2021, 12, 31))
	require.NoError(t, err)
	back, err = c.LunarToSolar(l)
	require.NoError(t, err)
	assert.Equal(t, ir.Date(2021, 12, 31), back)
}

func TestNewOverDefaultTable(t *testing.T) {
	tbl, err := astro.ComputeDefault()
	require.NoError(t, err)
	c, err := New(tbl, kst)
	require.NoError(t, err)
	assert.Equal(t, 1900, c.FirstYear())
	assert.Equal(t, 2100, c.LastYear())

	l, err := c.SolarToLunar(ir.Date(1900, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, 1899, l.Year)
	back, err := c.LunarToSolar(l)
	require.NoError(t, err)
	assert.Equal(t, ir.Date(1900, 1, 1), back)

	for _, d := range []ir.GregorianDate{ir.Date(1900, 1, 30), ir.Date(2100, 12, 31)} {
		l, err := c.SolarToLunar(d)
		require.NoError(t, err, d.ISODate())
		back, err := c.LunarToSolar(l)
		require.NoError(t, err, l.String())
		assert.Equal(t, d, back)
	}

	months, err := c.MonthsOf(2100)
	require.NoError(t, err)
	assert.Equal(t, 1, months[0].Number)
}

func TestNewRejectsShortTables(t *testing.T) {
	tbl, err := astro.Compute(2020, 2021)
	require.NoError(t, err)
	_, err = New(tbl, kst)
	assert.True(t, ir.IsInconsistentTable(err))

	_, err = New(tbl, nil)
	assert.True(t, ir.IsInvalidInput(err))
}

// The full default range: every supported civil day survives a round trip,
// and every lunar year has at most one leap month, which holds no principal
// term.
func TestDefaultTableProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the full reference table")
	}
	tbl, err := astro.ComputeDefault()
	require.NoError(t, err)
	c, err := New(tbl, kst)
	require.NoError(t, err)

	_, err = c.SolarToLunar(ir.Date(1899, 12, 31))
	assert.True(t, ir.IsUnsupportedYear(err))
	_, err = c.SolarToLunar(ir.Date(2101, 1, 1))
	assert.True(t, ir.IsUnsupportedYear(err))

	for day := DayNumber(1900, 1, 1); day <= DayNumber(2100, 12, 31); day++ {
		d := DateOf(day)
		l, err := c.SolarToLunar(d)
		require.NoError(t, err, d.ISODate())
		back, err := c.LunarToSolar(l)
		require.NoError(t, err, l.String())
		if !assert.Equal(t, d, back, "%s -> %s", d.ISODate(), l) {
			return
		}
	}

	var principals []int
	for y := tbl.FirstYear(); y <= tbl.LastYear(); y++ {
		for term := 1; term < astro.TermsPerYear; term += 2 {
			m, err := tbl.SolarTermMoment(y, term)
			require.NoError(t, err)
			lt := m.In(kst)
			principals = append(principals, DayNumber(lt.Year(), int(lt.Month()), lt.Day()))
		}
	}

	for y := c.FirstYear(); y <= c.LastYear(); y++ {
		months, err := c.MonthsOf(y)
		require.NoError(t, err)
		leaps := 0
		for _, m := range months {
			if !m.Leap {
				continue
			}
			leaps++
			start := DayNumberOf(m.Start)
			i := sort.SearchInts(principals, start)
			assert.False(t, i < len(principals) && principals[i] < start+m.Days,
				"leap month %d of %d holds a principal term", m.Number, y)
		}
		assert.LessOrEqual(t, leaps, 1, "lunar year %d", y)
	}
}
