// Package pillar derives the four sexagenary pillars (year, month, day,
// hour) of an Eight-Character chart.
//
// Year and month pillars follow the solar terms: the year changes at Start
// of Spring (立春) and the month at each sectional term. The day pillar is a
// plain 60-day count from a fixed anchor. The hour pillar splits the day into
// twelve two-hour slots starting at 23:00.
//
// Which day owns 23:00-23:59 is a policy (DayBoundary). Under the default
// DayBoundaryZiHour the day pillar rolls over at 23:00; under
// DayBoundaryMidnight it rolls over at 00:00. Either way the 子 hour that
// starts at 23:00 takes its stem from the following day.
package pillar
