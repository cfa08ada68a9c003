// Package engine is the facade over the lunisolar computation packages.
//
// An Engine owns one validated reference table and the converter, pillar
// calculator and luck scheduler built on it. Compute turns a Query (a solar
// or lunar birth date, an optional hour and an optional gender) into a
// Chart: lunar date, four pillars with their elements and ten-gods, the
// five-element balance and the luck periods.
//
// CONCURRENCY:
//
// Everything an Engine holds is built in New and never written again, so a
// single Engine serves any number of goroutines without locking. Default
// builds the full 1899-2101 table once per process behind sync.OnceValues;
// callers that race on first use all receive the same Engine (or the same
// error).
//
// POLICIES:
//
// Conventions that real calendars disagree on are options, not constants:
//
//   - WithDayBoundary: does 23:00 start the next day pillar (zi_hour, the
//     default) or does the day end at midnight.
//   - WithAgeRule: three days per year of luck start age (default) or the
//     proportional rule.
//   - WithLocation: civil time zone, Korea Standard Time by default.
//
// ERRORS:
//
// Every failure is an *ir.Error. A table that fails validation never yields
// an Engine (INCONSISTENT_TABLE); queries fail with UNSUPPORTED_YEAR,
// INVALID_LUNAR_DATE, INVALID_GENDER or INVALID_INPUT and nothing is
// defaulted silently.
package engine
