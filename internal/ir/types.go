package ir

import (
	"fmt"
	"strings"
	"time"
)

// GregorianDate is a proleptic Gregorian civil date-time in the engine's
// configured civil zone.
type GregorianDate struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

// Date returns a GregorianDate at midnight.
func Date(year, month, day int) GregorianDate {
	return GregorianDate{Year: year, Month: month, Day: day}
}

// DateTime returns a GregorianDate with hour and minute set.
func DateTime(year, month, day, hour, minute int) GregorianDate {
	return GregorianDate{Year: year, Month: month, Day: day, Hour: hour, Minute: minute}
}

// Validate reports whether the date names a real calendar day and the clock
// fields are in range. It does not check the supported year range.
func (d GregorianDate) Validate() error {
	if d.Month < 1 || d.Month > 12 {
		return InvalidInput("month %d out of range 1-12", d.Month)
	}
	if d.Day < 1 || d.Day > DaysInGregorianMonth(d.Year, d.Month) {
		return InvalidInput("day %d does not exist in %04d-%02d", d.Day, d.Year, d.Month)
	}
	if d.Hour < 0 || d.Hour > 23 {
		return InvalidInput("hour %d out of range 0-23", d.Hour)
	}
	if d.Minute < 0 || d.Minute > 59 {
		return InvalidInput("minute %d out of range 0-59", d.Minute)
	}
	if d.Second < 0 || d.Second > 59 {
		return InvalidInput("second %d out of range 0-59", d.Second)
	}
	return nil
}

// DateOnly drops the clock fields.
func (d GregorianDate) DateOnly() GregorianDate {
	return Date(d.Year, d.Month, d.Day)
}

// In returns the instant this civil date-time names in loc.
func (d GregorianDate) In(loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, d.Hour, d.Minute, d.Second, 0, loc)
}

// FromTime returns the civil date-time of t in t's location.
func FromTime(t time.Time) GregorianDate {
	return GregorianDate{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// ISODate formats the date part as YYYY-MM-DD.
func (d GregorianDate) ISODate() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d GregorianDate) String() string {
	return fmt.Sprintf("%s %02d:%02d:%02d", d.ISODate(), d.Hour, d.Minute, d.Second)
}

// DaysInGregorianMonth returns the length of a proleptic Gregorian month.
func DaysInGregorianMonth(year, month int) int {
	switch month {
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// LunisolarDate is a date in the traditional lunisolar calendar.
// Month is 1-12; Leap marks the intercalary repeat of Month.
type LunisolarDate struct {
	Year  int  `json:"year"`
	Month int  `json:"month"`
	Day   int  `json:"day"`
	Leap  bool `json:"is_leap_month"`
}

// String formats the date as YYYY-MM-DD, with an "L" before a leap month.
func (d LunisolarDate) String() string {
	if d.Leap {
		return fmt.Sprintf("%04d-L%02d-%02d", d.Year, d.Month, d.Day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Gender selects the luck-period direction. The zero value is not a gender.
type Gender int

const (
	GenderMale Gender = iota + 1
	GenderFemale
)

// ParseGender accepts "male", "female", "m" and "f" in any case.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale, nil
	case "female", "f":
		return GenderFemale, nil
	default:
		return 0, InvalidGender(s)
	}
}

// Valid reports whether g is one of the two defined genders.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return fmt.Sprintf("Gender(%d)", int(g))
	}
}

// MarshalText renders "male" or "female".
func (g Gender) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, InvalidGender(g.String())
	}
	return []byte(g.String()), nil
}

// UnmarshalText accepts what ParseGender accepts.
func (g *Gender) UnmarshalText(text []byte) error {
	v, err := ParseGender(string(text))
	if err != nil {
		return err
	}
	*g = v
	return nil
}
