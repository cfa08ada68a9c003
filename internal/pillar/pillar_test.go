package pillar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/saju/internal/astro"
	"github.com/roach88/saju/internal/calendar"
	"github.com/roach88/saju/internal/ganzhi"
	"github.com/roach88/saju/internal/ir"
)

var kst = time.FixedZone("KST", 9*60*60)

func newCalculator(t *testing.T, first, last int, b DayBoundary) *Calculator {
	t.Helper()
	tbl, err := astro.Compute(first, last)
	require.NoError(t, err)
	c, err := New(tbl, kst, b)
	require.NoError(t, err)
	return c
}

func hanja(p ganzhi.StemBranch) string { return p.Hanja() }

func TestComputeReferenceChart(t *testing.T) {
	c := newCalculator(t, 1989, 1991, DayBoundaryZiHour)

	p, err := c.Compute(ir.DateTime(1990, 5, 15, 14, 0), true)
	require.NoError(t, err)
	assert.Equal(t, "庚午", hanja(p.Year))
	assert.Equal(t, "辛巳", hanja(p.Month))
	assert.Equal(t, "庚辰", hanja(p.Day))
	require.NotNil(t, p.Hour)
	assert.Equal(t, "癸未", hanja(*p.Hour))
}

func TestComputeWithoutHour(t *testing.T) {
	c := newCalculator(t, 1989, 1991, DayBoundaryZiHour)

	// The clock fields are ignored, including a 23:xx that would roll the day.
	p, err := c.Compute(ir.DateTime(1990, 5, 15, 23, 30), false)
	require.NoError(t, err)
	assert.Nil(t, p.Hour)
	assert.Equal(t, "庚辰", hanja(p.Day))
	assert.Equal(t, "辛巳", hanja(p.Month))
}

func TestYearAndMonthBeforeStartOfSpring(t *testing.T) {
	c := newCalculator(t, 1999, 2001, DayBoundaryZiHour)

	p, err := c.Compute(ir.DateTime(2000, 1, 1, 12, 0), true)
	require.NoError(t, err)
	assert.Equal(t, "己卯", hanja(p.Year))
	assert.Equal(t, "丙子", hanja(p.Month))
	assert.Equal(t, "戊午", hanja(p.Day))
}

func TestYearChangesAtStartOfSpring(t *testing.T) {
	c := newCalculator(t, 2023, 2025, DayBoundaryZiHour)

	// Start of Spring 2024 is 17:27 KST (08:27 UTC) on 4 February.
	before, err := c.Compute(ir.DateTime(2024, 2, 4, 17, 20), true)
	require.NoError(t, err)
	assert.Equal(t, "癸卯", hanja(before.Year))
	assert.Equal(t, "乙丑", hanja(before.Month))

	after, err := c.Compute(ir.DateTime(2024, 2, 4, 17, 35), true)
	require.NoError(t, err)
	assert.Equal(t, "甲辰", hanja(after.Year))
	assert.Equal(t, "丙寅", hanja(after.Month))

	p, err := c.Compute(ir.Date(2024, 2, 10), false)
	require.NoError(t, err)
	assert.Equal(t, "甲辰", hanja(p.Day))
}

func TestDayBoundaryPolicies(t *testing.T) {
	tests := []struct {
		name     string
		boundary DayBoundary
		at       ir.GregorianDate
		day      string
		hour     string
	}{
		{"zi 22:59", DayBoundaryZiHour, ir.DateTime(2000, 1, 1, 22, 59), "戊午", "癸亥"},
		{"zi 23:00", DayBoundaryZiHour, ir.DateTime(2000, 1, 1, 23, 0), "己未", "甲子"},
		{"zi 23:59", DayBoundaryZiHour, ir.DateTime(2000, 1, 1, 23, 59), "己未", "甲子"},
		{"zi 00:00", DayBoundaryZiHour, ir.DateTime(2000, 1, 2, 0, 0), "己未", "甲子"},
		{"midnight 22:59", DayBoundaryMidnight, ir.DateTime(2000, 1, 1, 22, 59), "戊午", "癸亥"},
		{"midnight 23:00", DayBoundaryMidnight, ir.DateTime(2000, 1, 1, 23, 0), "戊午", "甲子"},
		{"midnight 23:59", DayBoundaryMidnight, ir.DateTime(2000, 1, 1, 23, 59), "戊午", "甲子"},
		{"midnight 00:00", DayBoundaryMidnight, ir.DateTime(2000, 1, 2, 0, 0), "己未", "甲子"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCalculator(t, 1999, 2001, tt.boundary)
			p, err := c.Compute(tt.at, true)
			require.NoError(t, err)
			assert.Equal(t, tt.day, hanja(p.Day))
			require.NotNil(t, p.Hour)
			assert.Equal(t, tt.hour, hanja(*p.Hour))
		})
	}
}

func TestDayPillarPeriodicity(t *testing.T) {
	start := calendar.DayNumber(1900, 1, 1)
	for day := start; day < start+3*365; day += 7 {
		d := calendar.DateOf(day)
		later := calendar.DateOf(day + 60)
		assert.Equal(t, DayPillar(d), DayPillar(later), d.ISODate())
		assert.Equal(t, DayPillar(d).Add(1), DayPillar(calendar.DateOf(day+1)))
	}
}

func TestDayPillarAnchors(t *testing.T) {
	assert.Equal(t, "甲戌", hanja(DayPillar(ir.Date(1900, 1, 1))))
	assert.Equal(t, "甲子", hanja(DayPillar(ir.Date(1949, 10, 1))))
	assert.Equal(t, "戊午", hanja(DayPillar(ir.Date(2000, 1, 1))))
}

func TestHourBranchSlots(t *testing.T) {
	want := []ganzhi.Branch{
		ganzhi.BranchZi, ganzhi.BranchChou, ganzhi.BranchChou, ganzhi.BranchYin,
		ganzhi.BranchYin, ganzhi.BranchMao, ganzhi.BranchMao, ganzhi.BranchChen,
		ganzhi.BranchChen, ganzhi.BranchSi, ganzhi.BranchSi, ganzhi.BranchWu,
		ganzhi.BranchWu, ganzhi.BranchWei, ganzhi.BranchWei, ganzhi.BranchShen,
		ganzhi.BranchShen, ganzhi.BranchYou, ganzhi.BranchYou, ganzhi.BranchXu,
		ganzhi.BranchXu, ganzhi.BranchHai, ganzhi.BranchHai, ganzhi.BranchZi,
	}
	for h, b := range want {
		assert.Equal(t, b, HourBranch(h), "hour %d", h)
	}
}

func TestFiveTigersAndFiveRats(t *testing.T) {
	assert.Equal(t, "丙寅", hanja(MonthPillarOf(ganzhi.StemJia, ganzhi.BranchYin)))
	assert.Equal(t, "丙寅", hanja(MonthPillarOf(ganzhi.StemJi, ganzhi.BranchYin)))
	assert.Equal(t, "戊寅", hanja(MonthPillarOf(ganzhi.StemGeng, ganzhi.BranchYin)))
	assert.Equal(t, "甲寅", hanja(MonthPillarOf(ganzhi.StemGui, ganzhi.BranchYin)))
	assert.Equal(t, "丁丑", hanja(MonthPillarOf(ganzhi.StemJia, ganzhi.BranchChou)))

	assert.Equal(t, "甲子", hanja(HourPillarOf(ganzhi.StemJia, ganzhi.BranchZi)))
	assert.Equal(t, "丙子", hanja(HourPillarOf(ganzhi.StemGeng, ganzhi.BranchZi)))
	assert.Equal(t, "壬子", hanja(HourPillarOf(ganzhi.StemWu, ganzhi.BranchZi)))
	assert.Equal(t, "癸亥", hanja(HourPillarOf(ganzhi.StemWu, ganzhi.BranchHai)))

	assert.Equal(t, ganzhi.BranchChou, SectionBranch(0))
	assert.Equal(t, ganzhi.BranchYin, SectionBranch(2))
	assert.Equal(t, ganzhi.BranchZi, SectionBranch(22))
}

func TestComputeRejectsBadInput(t *testing.T) {
	c := newCalculator(t, 1999, 2001, DayBoundaryZiHour)

	_, err := c.Compute(ir.Date(1998, 6, 1), false)
	assert.True(t, ir.IsUnsupportedYear(err))
	_, err = c.Compute(ir.Date(2001, 6, 1), false)
	assert.True(t, ir.IsUnsupportedYear(err))
	_, err = c.Compute(ir.DateTime(2000, 6, 1, 24, 0), true)
	assert.True(t, ir.IsInvalidInput(err))

	_, err = New(c.ref, nil, DayBoundaryZiHour)
	assert.True(t, ir.IsInvalidInput(err))
}

func TestParseDayBoundary(t *testing.T) {
	b, err := ParseDayBoundary("Midnight")
	require.NoError(t, err)
	assert.Equal(t, DayBoundaryMidnight, b)

	b, err = ParseDayBoundary("zi_hour")
	require.NoError(t, err)
	assert.Equal(t, DayBoundaryZiHour, b)
	assert.Equal(t, "zi_hour", b.String())

	_, err = ParseDayBoundary("noon")
	assert.True(t, ir.IsInvalidInput(err))
}
