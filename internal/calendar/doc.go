// Package calendar converts between Gregorian dates and the traditional
// lunisolar calendar.
//
// Lunar months run from the civil day of one new moon to the day before the
// next, reckoned in a fixed civil time zone (Korea Standard Time unless
// configured otherwise). Months are numbered per sui, the span from one
// winter solstice to the next: the month holding the solstice is month 11.
// A sui with 13 months carries one leap month, the first month that holds no
// principal solar term; it repeats the number of the month before it. The
// lunar year changes at month 1.
//
// The month index is built once by New from an astro.Reference and is
// read-only afterwards, so a *Converter is safe for concurrent use.
package calendar
