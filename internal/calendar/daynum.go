package calendar

import "github.com/roach88/saju/internal/ir"

// DayNumber returns the Julian Day Number of a proleptic Gregorian date
// (2000-01-01 is 2451545). Integer arithmetic only.
func DayNumber(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// FromDayNumber is the inverse of DayNumber.
func FromDayNumber(jdn int) (year, month, day int) {
	a := jdn + 32044
	b := (4*a + 3) / 146097
	c := a - 146097*b/4
	d := (4*c + 3) / 1461
	e := c - 1461*d/4
	m := (5*e + 2) / 153
	day = e - (153*m+2)/5 + 1
	month = m + 3 - 12*(m/10)
	year = 100*b + d - 4800 + m/10
	return year, month, day
}

// DayNumberOf returns the day number of the calendar date part of d.
func DayNumberOf(d ir.GregorianDate) int {
	return DayNumber(d.Year, d.Month, d.Day)
}

// DateOf returns the Gregorian date (midnight) of a day number.
func DateOf(jdn int) ir.GregorianDate {
	y, m, d := FromDayNumber(jdn)
	return ir.Date(y, m, d)
}
